/*
 * trajectory_test.go, part of gochrom.
 *
 * Copyright 2021 Raul Mera A. (raulpuntomeraatusachpuntocl)
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package chrom

import (
	"fmt"
	"os"
	"strings"
	"testing"

	v3 "github.com/rmera/gochrom/v3"
)

//chromLine builds a CHROM record with the type label and the coordinates at
//their fixed columns.
func chromLine(label string, x, y, z float64) string {
	return fmt.Sprintf("%-16s%-2s%22s%8.3f %8.3f %8.3f", "CHROM", label, "", x, y, z)
}

//writeSample writes a small 2-frame, 4-bead ndb file and returns its path.
//Bead b in frame f (1-based) sits at (100*(f-1)+b, b+0.25, -b).
func writeSample(Te *testing.T) string {
	labels := []string{"A1", "B1", "A1", "B2"}
	var lines []string
	for f := 1; f <= 2; f++ {
		lines = append(lines, fmt.Sprintf("MODEL     %d", f))
		for b := 0; b < 4; b++ {
			x := float64(100*(f-1) + b)
			lines = append(lines, chromLine(labels[b], x, float64(b)+0.25, -float64(b)))
		}
		lines = append(lines, "ENDMDL")
	}
	lines = append(lines, "LOOPS 0 3", "END")
	name := Te.TempDir() + "/sample.ndb"
	err := os.WriteFile(name, []byte(strings.Join(lines, "\n")+"\n"), 0644)
	if err != nil {
		Te.Fatal(err)
	}
	return name
}

func TestLoad(Te *testing.T) {
	T, err := Load(writeSample(Te))
	if err != nil {
		Te.Fatal(err)
	}
	defer T.Close()
	fmt.Println(T)
	if T.Frames() != 2 {
		Te.Error("Expected 2 frames, got", T.Frames())
	}
	if T.Len() != 4 {
		Te.Error("Expected 4 beads, got", T.Len())
	}
	tt := T.Types()
	if len(tt) != 4 || tt[0] != "A1" || tt[1] != "B1" || tt[2] != "A1" || tt[3] != "B2" {
		Te.Error("Wrong type sequence:", tt)
	}
	u := T.UniqueTypes()
	if len(u) != 3 || u[0] != "A1" || u[1] != "B1" || u[2] != "B2" {
		Te.Error("Wrong unique types:", u)
	}
	a1 := T.TypeIndexes("A1")
	if len(a1) != 2 || a1[0] != 0 || a1[1] != 2 {
		Te.Error("Wrong A1 beads:", a1)
	}
	b1 := T.TypeIndexes("B1")
	if len(b1) != 1 || b1[0] != 1 {
		Te.Error("Wrong B1 beads:", b1)
	}
	if T.TypeIndexes("NA") != nil {
		Te.Error("A type with no beads should give nil")
	}
	loops, err := T.Loops()
	if err != nil {
		Te.Fatal(err)
	}
	if len(loops) != 1 || loops[0] != [2]int{0, 3} {
		Te.Error("Wrong loops:", loops)
	}
	c, err := T.Frame(2)
	if err != nil {
		Te.Fatal(err)
	}
	if c.At(3, 0) != 103 || c.At(3, 1) != 3.25 || c.At(3, 2) != -3 {
		Te.Error("Wrong coordinates in frame 2:", c.VecView(3))
	}
	//frames are 1-based
	if _, err := T.Frame(0); err == nil {
		Te.Error("Frame 0 should not exist")
	}
	if _, err := T.Frame(3); err == nil {
		Te.Error("Frame 3 should not exist")
	}
}

func TestNext(Te *testing.T) {
	T, err := Load(writeSample(Te))
	if err != nil {
		Te.Fatal(err)
	}
	defer T.Close()
	c := v3.Zeros(T.Len())
	read := 0
	for {
		err := T.Next(c)
		if err != nil {
			if _, ok := err.(LastFrameError); ok {
				break
			}
			Te.Fatal(err)
		}
		read++
		fmt.Println("frame", read, "first bead at", c.At(0, 0), c.At(0, 1), c.At(0, 2))
	}
	if read != T.Frames() {
		Te.Errorf("Read %d frames, expected %d", read, T.Frames())
	}
}

func TestXYZ(Te *testing.T) {
	T, err := Load(writeSample(Te))
	if err != nil {
		Te.Fatal(err)
	}
	defer T.Close()
	//the defaults cover every frame, every bead, all three axes
	xyz, err := T.XYZ(nil, nil, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if len(xyz) != 2 {
		Te.Fatal("Expected 2 frames in the tensor, got", len(xyz))
	}
	r, c := xyz[0].Dims()
	if r != 4 || c != 3 {
		Te.Errorf("Expected 4x3 frames, got %dx%d", r, c)
	}
	if xyz[1].At(2, 0) != 102 {
		Te.Error("Wrong value in the tensor:", xyz[1].At(2, 0))
	}
	//the tensor is a copy; scribbling on it must not reach the container
	xyz[0].Set(0, 0, 1e6)
	again, _ := T.XYZ(nil, nil, nil)
	if again[0].At(0, 0) == 1e6 {
		Te.Error("The tensor aliases container storage")
	}
	//bead selections keep the requested order
	sel, err := T.XYZ(nil, []int{3, 1, 2}, nil)
	if err != nil {
		Te.Fatal(err)
	}
	for i, want := range []float64{3, 1, 2} {
		if sel[0].At(i, 0) != want {
			Te.Errorf("Selected row %d is bead %1.0f, wanted %1.0f", i, sel[0].At(i, 0), want)
		}
	}
	//axis selections can permute: {Z,X} puts Z in the first column
	zx, err := T.XYZ(nil, []int{1}, []int{Z, X})
	if err != nil {
		Te.Fatal(err)
	}
	if _, c := zx[0].Dims(); c != 2 {
		Te.Fatal("Expected 2 columns")
	}
	if zx[0].At(0, 0) != -1 || zx[0].At(0, 1) != 1 {
		Te.Error("Wrong axis permutation:", zx[0].At(0, 0), zx[0].At(0, 1))
	}
	//frame subranges
	last, err := T.XYZ(&FrameRange{2, 3, 1}, nil, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if len(last) != 1 || last[0].At(0, 0) != 100 {
		Te.Error("Wrong frame subrange:", len(last))
	}
	skip, err := T.XYZ(&FrameRange{1, 0, 2}, nil, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if len(skip) != 1 || skip[0].At(0, 0) != 0 {
		Te.Error("Wrong skipping:", len(skip))
	}
	//and the ways a selection can be wrong
	for i, bad := range []func() error{
		func() error { _, err := T.XYZ(&FrameRange{0, 0, 1}, nil, nil); return err },
		func() error { _, err := T.XYZ(&FrameRange{1, 4, 1}, nil, nil); return err },
		func() error { _, err := T.XYZ(&FrameRange{1, 0, 0}, nil, nil); return err },
		func() error { _, err := T.XYZ(nil, []int{}, nil); return err },
		func() error { _, err := T.XYZ(nil, []int{1, 1}, nil); return err },
		func() error { _, err := T.XYZ(nil, []int{4}, nil); return err },
		func() error { _, err := T.XYZ(nil, nil, []int{3}); return err },
		func() error { _, err := T.XYZ(nil, nil, []int{X, X}); return err },
	} {
		if bad() == nil {
			Te.Error("Bad selection", i, "was accepted")
		}
	}
}

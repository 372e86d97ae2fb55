/*
 * ensemble_test.go, part of gochrom.
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

package ensemble

import (
	"fmt"
	"math"
	"testing"

	chrom "github.com/rmera/gochrom"
	"gonum.org/v1/gonum/mat"
)

func TestRG(Te *testing.T) {
	//all beads on the same point: the radius of gyration vanishes
	same := mat.NewDense(3, 3, []float64{2, 2, 2, 2, 2, 2, 2, 2, 2})
	//two beads 2 sigma apart: each sits 1 sigma from the center of mass
	apart := mat.NewDense(2, 3, []float64{0, 0, 0, 2, 0, 0})
	rg := RG(chrom.Tensor{same, apart})
	if len(rg) != 2 {
		Te.Fatal("Expected one value per frame, got", len(rg))
	}
	if rg[0] != 0.0 {
		Te.Error("Coincident beads should give zero, got", rg[0])
	}
	if math.Abs(rg[1]-1.0) > 1e-12 {
		Te.Error("Two beads 2 sigma apart should give 1, got", rg[1])
	}
	fmt.Println("radii of gyration:", rg)
}

func TestHiC(Te *testing.T) {
	frame := mat.NewDense(3, 3, []float64{
		0, 0, 0,
		1.78, 0, 0, //exactly at rc from the first bead
		100, 100, 100,
	})
	o := DefaultHiCOptions()
	calls := 0
	o.Cadence(1)
	o.Progress(func(frame, total int) { calls++ })
	P, err := HiC(chrom.Tensor{frame, frame}, o)
	if err != nil {
		Te.Fatal(err)
	}
	pdiag := 0.5 * (1.0 + math.Tanh(o.Mu()*o.Rc()))
	for i := 0; i < 3; i++ {
		if math.Abs(P.At(i, i)-pdiag) > 1e-12 {
			Te.Errorf("Diagonal %d is %f, wanted %f", i, P.At(i, i), pdiag)
		}
		for j := i + 1; j < 3; j++ {
			if P.At(i, j) != P.At(j, i) {
				Te.Errorf("Map not symmetric at %d,%d", i, j)
			}
		}
	}
	//beads at distance rc cross-link half the time
	if math.Abs(P.At(0, 1)-0.5) > 1e-12 {
		Te.Error("Contact probability at rc should be 0.5, got", P.At(0, 1))
	}
	//and far-apart beads essentially never
	if P.At(0, 2) > 1e-9 {
		Te.Error("Distant beads should not contact, got", P.At(0, 2))
	}
	if calls != 2 {
		Te.Error("Progress should have been reported twice, got", calls)
	}
	if _, err := HiC(chrom.Tensor{}); err == nil {
		Te.Error("An empty tensor should be an error")
	}
	odd := mat.NewDense(2, 3, nil)
	if _, err := HiC(chrom.Tensor{frame, odd}); err == nil {
		Te.Error("Frames of different sizes should be an error")
	}
}

func TestRDP(Te *testing.T) {
	//a lone bead is its own centroid, so it always lands in the first shell
	frame := mat.NewDense(1, 3, []float64{7, -7, 7})
	o := DefaultRDPOptions()
	o.Radius(4.0)
	o.Bins(4)
	radii, gr, err := RDP(chrom.Tensor{frame}, o)
	if err != nil {
		Te.Fatal(err)
	}
	if len(radii) != 5 {
		Te.Fatal("Expected 5 shell boundaries, got", len(radii))
	}
	for i, want := range []float64{0, 1, 2, 3, 4} {
		if radii[i] != want {
			Te.Error("Wrong shell boundaries:", radii)
			break
		}
	}
	if len(gr) != 4 {
		Te.Fatal("Expected 4 shell densities, got", len(gr))
	}
	want := 1.0 / (4 * math.Pi) //one bead over the innermost shell volume
	if math.Abs(gr[0]-want) > 1e-12 {
		Te.Errorf("Innermost density is %f, wanted %f", gr[0], want)
	}
	for k := 1; k < 4; k++ {
		if gr[k] != 0 {
			Te.Error("Outer shells should be empty:", gr)
			break
		}
	}
	fmt.Println("densities:", gr)
	if _, _, err := RDP(chrom.Tensor{}); err == nil {
		Te.Error("An empty tensor should be an error")
	}
}

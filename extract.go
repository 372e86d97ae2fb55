/*
 * extract.go, part of gochrom.
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

	"gonum.org/v1/gonum/mat"
)

//Tensor is the coordinate tensor extracted from a trajectory: one matrix of
//(selected beads x selected axes) per selected frame, in ascending frame
//order. It is a transient copy. It does not alias the container, so mutating
//it never touches stored frames.
type Tensor []*mat.Dense

//FrameRange selects an arithmetic progression of frames: Ini, Ini+Skip, ...
//Ini is 1-based and inclusive. End is exclusive; an End of zero (or any
//non-positive value) means "through the last frame". Skip must be positive.
type FrameRange struct {
	Ini, End, Skip int
}

//The X, Y and Z axis indexes, for use in axis selections.
const (
	X = iota
	Y
	Z
)

//XYZ extracts the 3D positions of the selected beads, on the selected axes,
//for the selected range of frames. A nil frames range means every frame. A
//nil bead selection means all beads; otherwise rows come out in the order
//requested, which may repeat no index. A nil axes selection means {X,Y,Z};
//subsets and permutations are honored, so axes {Z,X} yields 2 columns per
//bead, Z first. Every call re-reads the frames from the container.
func (T *Trajectory) XYZ(frames *FrameRange, beads []int, axes []int) (Tensor, error) {
	if !T.readable {
		return nil, CError{TrajUnIni, T.filename, []string{"XYZ"}, true}
	}
	if frames == nil {
		frames = &FrameRange{1, 0, 1}
	}
	ini, end, skip := frames.Ini, frames.End, frames.Skip
	if end <= 0 {
		end = T.nframes + 1 //through the last stored frame
	}
	if skip <= 0 || ini < 1 || end > T.nframes+1 {
		return nil, CError{fmt.Sprintf("%s: bad frame range [%d,%d,%d]", InvalidSelection, frames.Ini, frames.End, frames.Skip), T.filename, []string{"XYZ"}, true}
	}
	if beads == nil {
		beads = make([]int, T.nbeads)
		for i := range beads {
			beads[i] = i
		}
	} else {
		if len(beads) == 0 {
			return nil, CError{InvalidSelection + ": empty bead selection", T.filename, []string{"XYZ"}, true}
		}
		seen := make(map[int]bool, len(beads))
		for _, b := range beads {
			if b < 0 || b >= T.nbeads {
				return nil, CError{fmt.Sprintf("%s: bead %d out of range [0,%d)", InvalidSelection, b, T.nbeads), T.filename, []string{"XYZ"}, true}
			}
			if seen[b] {
				return nil, CError{fmt.Sprintf("%s: bead %d selected twice", InvalidSelection, b), T.filename, []string{"XYZ"}, true}
			}
			seen[b] = true
		}
	}
	if axes == nil {
		axes = []int{X, Y, Z}
	} else {
		if len(axes) < 1 || len(axes) > 3 {
			return nil, CError{fmt.Sprintf("%s: %d axes selected", InvalidSelection, len(axes)), T.filename, []string{"XYZ"}, true}
		}
		var seen [3]bool
		for _, a := range axes {
			if a < X || a > Z {
				return nil, CError{fmt.Sprintf("%s: axis %d out of range [0,2]", InvalidSelection, a), T.filename, []string{"XYZ"}, true}
			}
			if seen[a] {
				return nil, CError{fmt.Sprintf("%s: axis %d selected twice", InvalidSelection, a), T.filename, []string{"XYZ"}, true}
			}
			seen[a] = true
		}
	}
	ret := make(Tensor, 0, (end-ini+skip-1)/skip)
	for i := ini; i < end; i += skip {
		frame, err := T.Frame(i)
		if err != nil {
			return nil, errDecorate(err, "XYZ")
		}
		sel := mat.NewDense(len(beads), len(axes), nil)
		for bi, b := range beads {
			for ai, a := range axes {
				sel.Set(bi, ai, frame.At(b, a))
			}
		}
		ret = append(ret, sel)
	}
	return ret, nil
}

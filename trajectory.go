/*
 * trajectory.go, part of gochrom.
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
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/rmera/gochrom/cndb"
	"github.com/rmera/gochrom/ndb"
	v3 "github.com/rmera/gochrom/v3"
)

//Trajectory is a loaded ensemble of chromosomal 3D structures. It holds the
//open cndb container plus the metadata needed for selections: bead and frame
//counts, the per-bead type sequence and, for each type present, the beads
//carrying it. A Trajectory is immutable once loaded; the analysis functions
//only read from it.
type Trajectory struct {
	cndb     *cndb.CndbR
	filename string
	nbeads   int
	nframes  int
	codes    []int
	seq      []string
	indexes  map[string][]int
	current  int
	readable bool
}

//Load opens the trajectory at name for analysis. If name has the ndb
//extension, the file is converted first and the resulting cndb container,
//saved in the same directory, is the one opened. Frames are numbered from 1;
//there is no frame 0.
func Load(name string) (*Trajectory, error) {
	if strings.ToLower(filepath.Ext(name)) == ".ndb" {
		var err error
		name, err = ndb.Convert(name)
		if err != nil {
			return nil, errDecorate(err, "Load")
		}
	}
	r, _, err := cndb.New(name)
	if err != nil {
		return nil, errDecorate(err, "Load")
	}
	T := new(Trajectory)
	T.cndb = r
	T.filename = name
	if !r.Has("types") {
		r.Close()
		return nil, CError{CorruptTrajectory + ": no 'types' entry", name, []string{"Load"}, true}
	}
	tt, err := r.Ints("types")
	if err != nil {
		r.Close()
		return nil, errDecorate(err, "Load")
	}
	T.codes = make([]int, len(tt))
	T.seq = make([]string, len(tt))
	T.indexes = make(map[string][]int)
	for i, row := range tt {
		if len(row) != 1 {
			r.Close()
			return nil, CError{CorruptTrajectory + ": 'types' entry is not a column", name, []string{"Load"}, true}
		}
		label, err := ndb.TypeLabel(row[0])
		if err != nil {
			r.Close()
			return nil, errDecorate(err, "Load")
		}
		T.codes[i] = row[0]
		T.seq[i] = label
		T.indexes[label] = append(T.indexes[label], i)
	}
	T.nbeads = len(T.codes)
	//Frames are counted by name, not as "all keys minus one": a container
	//with a "loops" entry would otherwise report one frame too few.
	for _, k := range r.Keys() {
		if _, err := strconv.Atoi(k); err == nil {
			T.nframes++
		}
	}
	if T.nframes == 0 {
		r.Close()
		return nil, CError{CorruptTrajectory + ": no frames", name, []string{"Load"}, true}
	}
	T.current = 1
	T.readable = true
	return T, nil
}

//Len returns the number of beads in each frame of the trajectory.
func (T *Trajectory) Len() int {
	return T.nbeads
}

//Frames returns the number of frames in the trajectory.
func (T *Trajectory) Frames() int {
	return T.nframes
}

//FileName returns the path of the cndb container backing the trajectory.
func (T *Trajectory) FileName() string {
	return T.filename
}

//Readable returns true if the handle is readable (if it is possible to call
//Next on it)
func (T *Trajectory) Readable() bool {
	return T.readable
}

//Frame returns the coordinates of the ith frame (1-based). The returned
//matrix is a copy; the caller can mutate it freely.
func (T *Trajectory) Frame(i int) (*v3.Matrix, error) {
	if !T.readable {
		return nil, CError{TrajUnIni, T.filename, []string{"Frame"}, true}
	}
	if i < 1 || i > T.nframes {
		return nil, CError{fmt.Sprintf("%s: frame %d out of range [1,%d]", InvalidSelection, i, T.nframes), T.filename, []string{"Frame"}, true}
	}
	coords, err := T.cndb.Coords(strconv.Itoa(i))
	if err != nil {
		return nil, CError{fmt.Sprintf("%s: can't read frame %d: %s", CorruptTrajectory, i, err.Error()), T.filename, []string{"Frame"}, true}
	}
	if coords.NVecs() != T.nbeads {
		return nil, CError{fmt.Sprintf("%s: frame %d has %d beads, %d expected", CorruptTrajectory, i, coords.NVecs(), T.nbeads), T.filename, []string{"Frame"}, true}
	}
	return coords, nil
}

//Next puts in the given matrix the coordinates for the next frame of the
//trajectory, or discards the frame if given nil. Returns a LastFrameError
//past the last frame.
func (T *Trajectory) Next(c *v3.Matrix) error {
	if !T.readable {
		return CError{TrajUnIni, T.filename, []string{"Next"}, true}
	}
	if T.current > T.nframes {
		return newlastFrameError(T.filename, "Next")
	}
	if c == nil {
		T.current++
		return nil
	}
	coords, err := T.Frame(T.current)
	if err != nil {
		return errDecorate(err, "Next")
	}
	if c.NVecs() != T.nbeads {
		return CError{fmt.Sprintf("%d beads in the given matrix, but %d expected", c.NVecs(), T.nbeads), T.filename, []string{"Next"}, true}
	}
	c.Copy(coords)
	T.current++
	return nil
}

//Types returns the type label of every bead, in bead order.
func (T *Trajectory) Types() []string {
	ret := make([]string, len(T.seq))
	copy(ret, T.seq)
	return ret
}

//UniqueTypes returns the distinct type labels present in the trajectory,
//sorted.
func (T *Trajectory) UniqueTypes() []string {
	ret := make([]string, 0, len(T.indexes))
	for k := range T.indexes {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

//TypeIndexes returns the indexes of the beads carrying the given type label,
//in ascending bead order, or nil if no bead carries it.
func (T *Trajectory) TypeIndexes(label string) []int {
	idx, ok := T.indexes[label]
	if !ok {
		return nil
	}
	ret := make([]int, len(idx))
	copy(ret, idx)
	return ret
}

//Loops returns the loop anchor pairs stored with the trajectory, or nil if
//the source had none.
func (T *Trajectory) Loops() ([][2]int, error) {
	if !T.cndb.Has("loops") {
		return nil, nil
	}
	ll, err := T.cndb.Ints("loops")
	if err != nil {
		return nil, errDecorate(err, "Loops")
	}
	ret := make([][2]int, len(ll))
	for i, l := range ll {
		if len(l) != 2 {
			return nil, CError{CorruptTrajectory + ": 'loops' entry does not hold pairs", T.filename, []string{"Loops"}, true}
		}
		ret[i] = [2]int{l[0], l[1]}
	}
	return ret, nil
}

//Close releases the container. The trajectory can not be used after this
//call.
func (T *Trajectory) Close() {
	if T == nil || !T.readable {
		return
	}
	T.cndb.Close()
	T.readable = false
}

//String produces a one-line summary of the trajectory.
func (T *Trajectory) String() string {
	return fmt.Sprintf("Cndb file %s has %d frames, with %d beads and %d bead types %v", T.filename, T.nframes, T.nbeads, len(T.indexes), T.UniqueTypes())
}

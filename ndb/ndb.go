/*
 * ndb.go, part of gochrom.
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

//Package ndb reads the Nucleome Data Bank text format for chromosomal 3D
//structures, and converts it to the cndb container handled by the cndb
//package. The format is PDB-flavored: fixed-column records tagged by the
//first 6 characters of each line. The records gochrom cares about are
//MODEL (starts a structure), CHROM (one bead: type label and cartesian
//coordinates), ENDMDL (closes the structure) and LOOPS (one loop anchor
//pair). Every other record is ignored.
package ndb

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rmera/gochrom/cndb"
	v3 "github.com/rmera/gochrom/v3"
)

//The fixed column ranges of a CHROM record (0-based, end-exclusive), and
//the tag width. They follow the NDB format documentation.
const (
	tagEnd    = 6
	typeStart = 16
	typeEnd   = 18
	xStart    = 40
	xEnd      = 48
	yStart    = 49
	yEnd      = 57
	zStart    = 58
	zEnd      = 66
)

//The bead type tables. The NDB format names 7 chromatin subcompartment
//labels; each maps to a stable storage code. "UN" and "NA" are the same
//category (unknown/unassigned): both encode to 6, and 6 decodes to "NA".
var typeCode = map[string]int{
	"A1": 0,
	"A2": 1,
	"B1": 2,
	"B2": 3,
	"B3": 4,
	"B4": 5,
	"UN": 6,
	"NA": 6,
}

var typeLabel = [7]string{"A1", "A2", "B1", "B2", "B3", "B4", "NA"}

//TypeCode returns the storage code for a bead type label.
func TypeCode(label string) (int, error) {
	c, ok := typeCode[label]
	if !ok {
		return -1, Error{fmt.Sprintf("%s: '%s'", UnknownBeadType, label), "", []string{"TypeCode"}, true}
	}
	return c, nil
}

//TypeLabel returns the bead type label for a storage code.
func TypeLabel(code int) (string, error) {
	if code < 0 || code >= len(typeLabel) {
		return "", Error{fmt.Sprintf("%s: %d", UnknownBeadTypeCode, code), "", []string{"TypeLabel"}, true}
	}
	return typeLabel[code], nil
}

//Parsed holds the contents of an ndb file: the per-bead type labels (from
//the first structure; the sequence is fixed across the ensemble), one
//coordinate set per structure with its 1-based frame number, and the loop
//anchor pairs, if any LOOPS records were present.
type Parsed struct {
	Types   []string
	Frames  []*v3.Matrix
	Numbers []int
	Loops   [][2]int
}

//Parse reads an ndb stream. The filename is only used to report errors.
func Parse(r io.Reader, filename string) (*Parsed, error) {
	ret := new(Parsed)
	var types []string
	var data []float64 //row-major accumulation for the current frame
	frame := 0
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*64), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		entry := line
		if len(entry) > tagEnd {
			entry = entry[0:tagEnd]
		}
		//Tags are matched by containment, not by exact column position.
		//Sloppier than PDB, but it is what the reference tooling does, and
		//some ndb writers pad or shift the tag.
		switch {
		case strings.Contains(entry, "MODEL"):
			frame++
		case strings.Contains(entry, "CHROM"):
			if len(line) < zEnd {
				return nil, Error{fmt.Sprintf("%s: CHROM record too short: '%s'", WrongFormat, line), filename, []string{"Parse"}, true}
			}
			types = append(types, line[typeStart:typeEnd])
			for _, cols := range [3][2]int{{xStart, xEnd}, {yStart, yEnd}, {zStart, zEnd}} {
				val, err := strconv.ParseFloat(strings.TrimSpace(line[cols[0]:cols[1]]), 64)
				if err != nil {
					return nil, Error{fmt.Sprintf("%s: bad coordinate in '%s': %s", WrongFormat, line, err.Error()), filename, []string{"Parse"}, true}
				}
				data = append(data, val)
			}
		case strings.Contains(entry, "ENDMDL"):
			if len(data) == 0 {
				return nil, Error{fmt.Sprintf("%s: structure %d has no CHROM records", WrongFormat, frame), filename, []string{"Parse"}, true}
			}
			if ret.Types == nil {
				//The type sequence is committed once, from the first
				//structure. Later structures just repeat it.
				ret.Types = types
			}
			coords, err := v3.NewMatrix(append([]float64{}, data...))
			if err != nil {
				return nil, errDecorate(err, "Parse")
			}
			ret.Frames = append(ret.Frames, coords)
			ret.Numbers = append(ret.Numbers, frame)
			types = nil
			data = data[0:0]
		case strings.Contains(entry, "LOOPS"):
			info := strings.Fields(line)
			if len(info) < 3 {
				return nil, Error{fmt.Sprintf("%s: LOOPS record too short: '%s'", WrongFormat, line), filename, []string{"Parse"}, true}
			}
			i, err1 := strconv.Atoi(info[1])
			j, err2 := strconv.Atoi(info[2])
			if err1 != nil || err2 != nil {
				return nil, Error{fmt.Sprintf("%s: bad LOOPS record: '%s'", WrongFormat, line), filename, []string{"Parse"}, true}
			}
			ret.Loops = append(ret.Loops, [2]int{i, j})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, Error{ReadError + ": " + err.Error(), filename, []string{"Parse"}, true}
	}
	return ret, nil
}

//ParseFile reads the ndb file at name.
func ParseFile(name string) (*Parsed, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"ParseFile"}, true}
	}
	defer f.Close()
	ret, err := Parse(f, name)
	if err != nil {
		return nil, errDecorate(err, "ParseFile")
	}
	return ret, nil
}

//Convert parses the ndb file at name and writes a cndb container next to
//it, with the same base name. It returns the path of the new container.
//The container gets one entry per structure, keyed by its 1-based frame
//number, plus the encoded type sequence under "types" and, only if the
//source had at least one LOOPS record, the anchor pairs under "loops".
//A pre-existing container at that path is overwritten.
func Convert(name string) (string, error) {
	base := strings.TrimSuffix(name, ".ndb")
	p, err := ParseFile(base + ".ndb")
	if err != nil {
		return "", errDecorate(err, "Convert")
	}
	codes := make([][]int, len(p.Types))
	for i, label := range p.Types {
		c, err := TypeCode(label)
		if err != nil {
			return "", errDecorate(err, "Convert")
		}
		codes[i] = []int{c}
	}
	out := base + ".cndb"
	w, err := cndb.NewWriter(out, nil)
	if err != nil {
		return "", errDecorate(err, "Convert")
	}
	if err := w.PutInts("types", codes); err != nil {
		w.Close()
		return "", errDecorate(err, "Convert")
	}
	for i, coords := range p.Frames {
		if err := w.PutMatrix(strconv.Itoa(p.Numbers[i]), coords); err != nil {
			w.Close()
			return "", errDecorate(err, "Convert")
		}
	}
	if len(p.Loops) > 0 {
		loops := make([][]int, len(p.Loops))
		for i, l := range p.Loops {
			loops[i] = []int{l[0], l[1]}
		}
		if err := w.PutInts("loops", loops); err != nil {
			w.Close()
			return "", errDecorate(err, "Convert")
		}
	}
	if err := w.Close(); err != nil {
		return "", errDecorate(err, "Convert")
	}
	return out, nil
}

//Errors

//errDecorate is a helper function that asserts that the error implements
//chrom.Error and decorates the error with the caller's name before returning it.
//if used with a non-chrom.Error error, it will cause a panic.
func errDecorate(err error, caller string) error {
	err2 := err.(interface {
		Error() string
		Decorate(string) []string
	})
	err2.Decorate(caller)
	return err
}

//Error is the general structure for ndb format errors. It fulfills
//chrom.Error and chrom.TrajError.
type Error struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err Error) Error() string {
	if err.filename == "" {
		return fmt.Sprintf("ndb error: %s", err.message)
	}
	return fmt.Sprintf("ndb file %s error: %s", err.filename, err.message)
}

//Decorate adds new information to the error
func (E Error) Decorate(deco string) []string {
	//Even though this method does not use a pointer as a receiver, and tries to alter the receiver,
	//it should work, since E.deco is a slice, and hence a pointer itself.
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//FileName returns the file to which the failing trajectory was associated
func (err Error) FileName() string { return err.filename }

//Format returns the format of the file (always "ndb") associated to the error
func (err Error) Format() string { return "ndb" }

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

const (
	ReadError           = "Error reading ndb file"
	UnableToOpen        = "Unable to open file"
	WrongFormat         = "Wrong format in the ndb file or record"
	UnknownBeadType     = "Unknown bead type label"
	UnknownBeadTypeCode = "Unknown bead type code"
)

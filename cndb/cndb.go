/*
 * cndb.go, part of gochrom.
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

//Package cndb implements the compact nucleome data bank container, a
//compressed store of named numeric arrays. A cndb file holds the whole
//ensemble for one trajectory: one Nx3 array per frame, keyed by the decimal
//string of its 1-based frame number, an Nx1 "types" array with the bead type
//codes, and, optionally, an Lx2 "loops" array with loop anchor pairs. The
//package itself does not interpret the keys; it only knows how to store and
//retrieve arrays by name.
//
//The on-disk layout is a compressed line-text stream: an optional metadata
//header of key=value lines closed by a "**" line, followed by one entry per
//array. Each entry starts with ">> key rows cols prec" and is followed by
//rows lines of cols fixed-point integers (the value times 10^prec). The
//compression backend is chosen from the last letter of the file name, with
//zstd as the default.
package cndb

import (
	"bufio"
	"compress/flate"
	"compress/gzip"
	"compress/lzw"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	v3 "github.com/rmera/gochrom/v3"
	"gonum.org/v1/gonum/mat"
)

const (
	lzwLitwidth int = 8
)

//Write!

//CndbW is the handle for a cndb container open for writing. Entries are
//written to a temporary file and only moved to the final path when Close
//succeeds, so a crash mid-write never leaves a half-written container
//under the real name.
type CndbW struct {
	f         *os.File
	h         io.WriteCloser
	filename  string
	tmpname   string
	keys      map[string]bool
	writeable bool
	prec      int
}

//NewWriter creates a new cndb container at name. Only the first map given in
//header is written as metadata; a "prec" entry in it sets the fixed-point
//precision used for float arrays (default 2, i.e. values kept to 0.01).
func NewWriter(name string, header map[string]string, compressionLevel ...int) (*CndbW, error) {
	var level int = 11 //For python compatibility
	if len(compressionLevel) > 0 {
		level = compressionLevel[0]
	}
	S := new(CndbW)
	S.filename = name
	S.tmpname = name + ".tmp"
	var err error
	S.f, err = os.Create(S.tmpname)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"NewWriter"}, true}
	}
	S.h, err = anyNewWriter(name, S.f, level)
	if err != nil {
		S.f.Close()
		os.Remove(S.tmpname)
		return nil, Error{"Can't set up compression: " + err.Error(), name, []string{"NewWriter"}, true}
	}
	S.keys = make(map[string]bool)
	S.writeable = true
	S.prec = 2 //the default
	if header != nil {
		if p, ok := header["prec"]; ok && p != "2" {
			prec, err := strconv.Atoi(p)
			if err == nil {
				S.prec = prec
			} else {
				log.Printf("Invalid precision for container %s. Will use the default", S.filename)
			}
		}
		headerstr := ""
		for k, v := range header {
			headerstr += fmt.Sprintf("%s=%v\n", k, v)
		}
		S.h.Write([]byte(headerstr))
	}
	S.h.Write([]byte("**\n"))
	return S, nil
}

//anyNewWriter returns a compressing WriteCloser for a, chosen from the last
//letter of name. zstd is the default, and what the regular ".cndb" extension
//gets.
func anyNewWriter(name string, a io.Writer, level int) (io.WriteCloser, error) {
	zwriter := func(a io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(a, level)
	}
	gzipwriter := func(a io.Writer) (io.WriteCloser, error) { return gzip.NewWriterLevel(a, level) }
	zstdwriter := func(a io.Writer) (io.WriteCloser, error) {
		return zstd.NewWriter(a, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	}
	var ret func(io.Writer) (io.WriteCloser, error)
	switch strings.ToLower(name)[len(name)-1] {
	case 'l':
		ret = func(a io.Writer) (io.WriteCloser, error) { return lzw.NewWriter(a, lzw.MSB, lzwLitwidth), nil }
	case 'z':
		ret = gzipwriter
	case 'r':
		ret = zwriter
	default:
		ret = zstdwriter
	}
	return ret(a)
}

//PutDense writes the dense array d under key, with the writer's fixed-point
//precision.
func (S *CndbW) PutDense(key string, d *mat.Dense) error {
	if d == nil {
		return Error{NilArray, S.filename, []string{"PutDense"}, true}
	}
	r, c := d.Dims()
	return S.putArray(key, r, c, S.prec, d.At)
}

//PutMatrix writes the coordinate set c under key. Equivalent to PutDense on
//the underlying array.
func (S *CndbW) PutMatrix(key string, c *v3.Matrix) error {
	if c == nil {
		return Error{NilArray, S.filename, []string{"PutMatrix"}, true}
	}
	err := S.PutDense(key, v3.Matrix2Dense(c))
	if err != nil {
		err = errDecorate(err, "PutMatrix")
	}
	return err
}

//PutInts writes the integer array a under key, with precision 0 (integers
//are stored exactly).
func (S *CndbW) PutInts(key string, a [][]int) error {
	r := len(a)
	c := 0
	if r > 0 {
		c = len(a[0])
	}
	for _, row := range a {
		if len(row) != c {
			return Error{WrongFormat + ": ragged integer array", S.filename, []string{"PutInts"}, true}
		}
	}
	return S.putArray(key, r, c, 0, func(i, j int) float64 { return float64(a[i][j]) })
}

func (S *CndbW) putArray(key string, rows, cols, prec int, at func(i, j int) float64) error {
	if !S.writeable {
		return Error{ContainerUnIniWrite, S.filename, []string{"putArray"}, true}
	}
	if key == "" || strings.ContainsAny(key, " \n") {
		return Error{fmt.Sprintf("Invalid key '%s'", key), S.filename, []string{"putArray"}, true}
	}
	if S.keys[key] {
		return Error{fmt.Sprintf("%s: '%s'", DuplicateKey, key), S.filename, []string{"putArray"}, true}
	}
	if _, err := S.h.Write([]byte(fmt.Sprintf(">> %s %d %d %d\n", key, rows, cols, prec))); err != nil {
		return Error{err.Error(), S.filename, []string{"putArray"}, true}
	}
	p := math.Pow(10.0, float64(prec))
	fields := make([]string, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			fields[j] = strconv.Itoa(int(math.RoundToEven(at(i, j) * p)))
		}
		if _, err := S.h.Write([]byte(strings.Join(fields, " ") + "\n")); err != nil {
			return Error{err.Error(), S.filename, []string{"putArray"}, true}
		}
	}
	S.keys[key] = true
	return nil
}

//Len returns the number of arrays written so far.
func (S *CndbW) Len() int {
	return len(S.keys)
}

//Close finalizes the container, flushing the compressor and moving the file
//to its final path. The handle can not be used after this call. If Close
//returns an error no file is left at the final path.
func (S *CndbW) Close() error {
	if S == nil || !S.writeable {
		return nil
	}
	S.writeable = false
	if err := S.h.Close(); err != nil {
		S.f.Close()
		os.Remove(S.tmpname)
		return Error{err.Error(), S.filename, []string{"Close"}, true}
	}
	if err := S.f.Close(); err != nil {
		os.Remove(S.tmpname)
		return Error{err.Error(), S.filename, []string{"Close"}, true}
	}
	if err := os.Rename(S.tmpname, S.filename); err != nil {
		os.Remove(S.tmpname)
		return Error{err.Error(), S.filename, []string{"Close"}, true}
	}
	return nil
}

//Read!

//CndbR is the handle for a cndb container open for reading. The whole stream
//is decoded into memory on open, which matches how the containers are used:
//the analyses materialize every frame anyway, and the compressed stream does
//not allow cheap random access. The underlying file is closed before New
//returns, so there is no descriptor to leak afterwards.
type CndbR struct {
	filename string
	keys     []string
	arrays   map[string]*mat.Dense
	readable bool
}

//This will cause additional indirections
//but I suppose it won't matter, as each call will
//take enough time to make those delays irrelevant.
//Also, why couldn't *zstd.Decoder implement io.ReadCloser? :-(
type stdql struct {
	closeql func()
	*zstd.Decoder
}

//Close closes the object. It can not be used after this call
func (s stdql) Close() error {
	s.closeql()
	return nil
}

func anyNewReader(name string, a io.Reader) (io.ReadCloser, error) {
	zreader := func(a io.Reader) (io.ReadCloser, error) {
		return flate.NewReader(a), nil
	}
	zstdreader := func(a io.Reader) (io.ReadCloser, error) {
		r, err := zstd.NewReader(a)
		if err != nil {
			return nil, err
		}
		return &stdql{r.Close, r}, nil
	}
	gzreader := func(a io.Reader) (io.ReadCloser, error) { return gzip.NewReader(a) }
	var ret func(io.Reader) (io.ReadCloser, error)
	switch strings.ToLower(name)[len(name)-1] {
	case 'l':
		ret = func(a io.Reader) (io.ReadCloser, error) { return lzw.NewReader(a, lzw.MSB, lzwLitwidth), nil }
	case 'z':
		ret = gzreader
	case 'r':
		ret = zreader
	default:
		ret = zstdreader
	}
	return ret(a)
}

//New opens a cndb container for reading, and returns a pointer to the handle,
//a map with the metadata (or nil, if no metadata is found) and error or nil.
func New(name string) (*CndbR, map[string]string, error) {
	S := new(CndbR)
	S.filename = name
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"New"}, true}
	}
	defer f.Close()
	zr, err := anyNewReader(name, bufio.NewReader(f))
	if err != nil {
		return nil, nil, Error{"Can't read header: " + err.Error(), name, []string{"New"}, true}
	}
	defer zr.Close()
	h := bufio.NewReader(zr)
	var m map[string]string
	for {
		str, err := h.ReadString('\n')
		if err != nil {
			return nil, nil, Error{"Can't read header: " + err.Error(), name, []string{"New"}, true}
		}
		str = strings.TrimSuffix(str, "\n")
		if strings.Contains(str, "**") {
			break
		}
		kv := strings.SplitN(str, "=", 2)
		if len(kv) != 2 {
			return nil, nil, Error{"Malformed header line: " + str, name, []string{"New"}, true}
		}
		if m == nil {
			m = make(map[string]string)
		}
		m[kv[0]] = kv[1]
	}
	S.arrays = make(map[string]*mat.Dense)
	for {
		str, err := h.ReadString('\n')
		if err != nil {
			if err == io.EOF && str == "" {
				break //the container just ended.
			}
			return nil, nil, Error{ReadError + ": " + err.Error(), name, []string{"New"}, true}
		}
		key, d, err := S.readEntry(strings.TrimSuffix(str, "\n"), h)
		if err != nil {
			return nil, nil, errDecorate(err, "New")
		}
		if _, ok := S.arrays[key]; ok {
			return nil, nil, Error{fmt.Sprintf("%s: '%s'", DuplicateKey, key), name, []string{"New"}, true}
		}
		S.keys = append(S.keys, key)
		S.arrays[key] = d
	}
	S.readable = true
	return S, m, nil
}

//readEntry parses one ">> key rows cols prec" entry whose first line is
//already in head, consuming the value lines from h.
func (S *CndbR) readEntry(head string, h *bufio.Reader) (string, *mat.Dense, error) {
	fields := strings.Fields(head)
	if len(fields) != 5 || fields[0] != ">>" {
		return "", nil, Error{WrongFormat + ": bad entry header '" + head + "'", S.filename, []string{"readEntry"}, true}
	}
	key := fields[1]
	rows, err1 := strconv.Atoi(fields[2])
	cols, err2 := strconv.Atoi(fields[3])
	prec, err3 := strconv.Atoi(fields[4])
	if err1 != nil || err2 != nil || err3 != nil || rows < 0 || cols < 0 {
		return "", nil, Error{WrongFormat + ": bad entry header '" + head + "'", S.filename, []string{"readEntry"}, true}
	}
	p := math.Pow(10.0, float64(prec))
	data := make([]float64, rows*cols)
	for i := 0; i < rows; i++ {
		line, err := h.ReadString('\n')
		if err != nil && !(err == io.EOF && line != "") {
			return "", nil, Error{fmt.Sprintf("%s: entry '%s' truncated at row %d", WrongFormat, key, i), S.filename, []string{"readEntry"}, true}
		}
		vals := strings.Fields(line)
		if len(vals) != cols {
			return "", nil, Error{fmt.Sprintf("%s: entry '%s' row %d has %d values, %d expected", WrongFormat, key, i, len(vals), cols), S.filename, []string{"readEntry"}, true}
		}
		for j, v := range vals {
			n, err := strconv.Atoi(v)
			if err != nil {
				return "", nil, Error{fmt.Sprintf("Can't parse value %d of entry '%s': %s", j, key, err.Error()), S.filename, []string{"readEntry"}, true}
			}
			data[i*cols+j] = float64(n) / p
		}
	}
	if rows == 0 || cols == 0 {
		return key, &mat.Dense{}, nil
	}
	return key, mat.NewDense(rows, cols, data), nil
}

//Readable returns true if the handle can still be read from.
func (S *CndbR) Readable() bool {
	return S.readable
}

//Keys returns the names of all arrays in the container, in file order.
func (S *CndbR) Keys() []string {
	ret := make([]string, len(S.keys))
	copy(ret, S.keys)
	return ret
}

//Has returns whether the container holds an array under key.
func (S *CndbR) Has(key string) bool {
	_, ok := S.arrays[key]
	return ok
}

//Len returns the number of arrays in the container.
func (S *CndbR) Len() int {
	return len(S.keys)
}

//Array returns a copy of the array stored under key. The copy is the
//caller's: mutating it does not touch the container.
func (S *CndbR) Array(key string) (*mat.Dense, error) {
	if !S.readable {
		return nil, Error{ContainerUnIniRead, S.filename, []string{"Array"}, true}
	}
	d, ok := S.arrays[key]
	if !ok {
		return nil, Error{fmt.Sprintf("%s: '%s'", KeyNotFound, key), S.filename, []string{"Array"}, true}
	}
	r, _ := d.Dims()
	if r == 0 {
		return &mat.Dense{}, nil
	}
	return mat.DenseCopyOf(d), nil
}

//Coords returns the array stored under key as a coordinate Matrix. The
//array must have 3 columns.
func (S *CndbR) Coords(key string) (*v3.Matrix, error) {
	d, err := S.Array(key)
	if err != nil {
		return nil, errDecorate(err, "Coords")
	}
	_, c := d.Dims()
	if c != 3 {
		return nil, Error{fmt.Sprintf("%s: entry '%s' has %d columns, 3 expected", WrongFormat, key, c), S.filename, []string{"Coords"}, true}
	}
	return v3.Dense2Matrix(d), nil
}

//Ints returns the array stored under key as integers. Values are truncated
//toward zero if the array was stored with a non-zero precision.
func (S *CndbR) Ints(key string) ([][]int, error) {
	d, err := S.Array(key)
	if err != nil {
		return nil, errDecorate(err, "Ints")
	}
	r, c := d.Dims()
	ret := make([][]int, r)
	for i := 0; i < r; i++ {
		ret[i] = make([]int, c)
		for j := 0; j < c; j++ {
			ret[i][j] = int(d.At(i, j))
		}
	}
	return ret, nil
}

//Close closes the object, and marks it as unreadable.
func (S *CndbR) Close() {
	if S == nil || !S.readable {
		return
	}
	S.readable = false
	S.arrays = nil
	S.keys = nil
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

//Error is the general structure for cndb container errors. It fulfills
//chrom.Error and chrom.TrajError.
type Error struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("cndb file %s error: %s", err.filename, err.message)
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

//FileName returns the file to which the failing container was associated
func (err Error) FileName() string { return err.filename }

//Format returns the format of the file (always "cndb") associated to the error
func (err Error) Format() string { return "cndb" }

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

const (
	ContainerUnIniRead  = "Container uninitialized to read"
	ContainerUnIniWrite = "Container uninitialized to write"
	ReadError           = "Error reading container"
	UnableToOpen        = "Unable to open file"
	NilArray            = "Given nil array"
	WrongFormat         = "Wrong format in the cndb file or entry"
	DuplicateKey        = "Duplicate key in container"
	KeyNotFound         = "Key not found in container"
)

/*
 * errors.go, part of gochrom.
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

import "fmt"

//errDecorate is a helper function that asserts that the error implements
//Error and decorates it with the caller's name before returning it.
//if used with a non-Error error, it will cause a panic.
func errDecorate(err error, caller string) error {
	err2 := err.(Error)
	err2.Decorate(caller)
	return err
}

//CError is the concrete error type of the chrom package. It fulfills
//Error and TrajError.
type CError struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err CError) Error() string {
	if err.filename == "" {
		return fmt.Sprintf("goChrom: %s", err.message)
	}
	return fmt.Sprintf("goChrom: trajectory %s: %s", err.filename, err.message)
}

//Decorate adds new information to the error
func (E CError) Decorate(deco string) []string {
	//Even though this method does not use a pointer as a receiver, and tries to alter the receiver,
	//it should work, since E.deco is a slice, and hence a pointer itself.
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//FileName returns the file to which the failing trajectory was associated
func (err CError) FileName() string { return err.filename }

//Format returns the format of the trajectory associated to the error
func (err CError) Format() string { return "cndb" }

//Critical returns true if the error is critical, false otherwise
func (err CError) Critical() bool { return err.critical }

const (
	TrajUnIni         = "Trajectory object uninitialized to read"
	CorruptTrajectory = "Corrupt trajectory"
	InvalidSelection  = "Invalid frame, bead or axis selection"
)

//lastFrameError implements LastFrameError
type lastFrameError struct {
	deco     []string
	fileName string
}

//NormalLastFrameTermination does nothing
func (E lastFrameError) NormalLastFrameTermination() {}

func (E lastFrameError) FileName() string { return E.fileName }

func (E lastFrameError) Error() string { return "EOF" }

func (E lastFrameError) Critical() bool { return false }

func (E lastFrameError) Format() string { return "cndb" }

func (E lastFrameError) Decorate(deco string) []string {
	//Even though this method does not use a pointer as a receiver, and tries to alter the receiver,
	//it should work, since E.deco is a slice, and hence a pointer itself.
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func newlastFrameError(filename string, caller string) *lastFrameError {
	e := new(lastFrameError)
	e.fileName = filename
	e.deco = []string{caller}
	return e
}

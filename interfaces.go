/*
 * interfaces.go, part of gochrom.
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

import v3 "github.com/rmera/gochrom/v3"

// Traj is an interface for any trajectory object that can produce its frames
// in sequence, whatever the storage behind it.
type Traj interface {

	//Is the trajectory ready to be read?
	Readable() bool

	//reads the next frame and puts it in output, or discards it if output
	//is nil. Returns a LastFrameError past the last frame.
	Next(output *v3.Matrix) error

	//Returns the number of beads per frame
	Len() int
}

//Errors

// Error is the interface for errors that all packages in this library
// implement. The Decorate method allows to add and retrieve info from the
// error, without changing its type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Each call appends the given string (the caller's name, plus any relevant information) to the decoration slice, and returns the slice. If passed an empty string, it just returns the current value.
}

// TrajError is the interface for errors in trajectories and containers.
type TrajError interface {
	Error
	Critical() bool
	FileName() string
	Format() string
}

// LastFrameError has a useless function to distinguish the harmless errors
// (i.e. last frame) so they can be filtered in a typeswitch that looks for
// this interface.
type LastFrameError interface {
	TrajError
	NormalLastFrameTermination() //does nothing, just to separate this interface from other TrajError's
}

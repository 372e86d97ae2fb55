/*
 * options.go, part of gochrom.
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

//RDPOptions holds the parameters of the radial density profile.
type RDPOptions struct {
	radius float64
	bins   int
}

//DefaultRDPOptions returns an RDPOptions with the default parameters: a
//sphere of radius 20 (in simulation length units) split in 200 shells. The
//radius should be adapted to the simulated chromosome length.
func DefaultRDPOptions() *RDPOptions {
	ret := new(RDPOptions)
	ret.radius = 20.0
	ret.bins = 200
	return ret
}

//Radius returns the radius of the sphere considered in the calculation, and
//sets it to the value given, if a valid (positive) one is given.
func (r *RDPOptions) Radius(radius ...float64) float64 {
	ret := r.radius
	if len(radius) > 0 && radius[0] > 0 {
		r.radius = radius[0]
	}
	return ret
}

//Bins returns the number of spherical shells the sphere is split into, and
//sets it, if a valid value is given.
func (r *RDPOptions) Bins(bins ...int) int {
	ret := r.bins
	if len(bins) > 0 && bins[0] > 0 {
		r.bins = bins[0]
	}
	return ret
}

//HiCOptions holds the parameters of the contact probability map. Mu and Rc
//shape the crosslink probability function f(r) = (1 + tanh(mu*(rc-r)))/2,
//so f(Rc) = 0.5.
type HiCOptions struct {
	mu       float64
	rc       float64
	cadence  int
	progress func(frame, total int)
}

//DefaultHiCOptions returns a HiCOptions with the default parameters,
//mu = 3.22 and rc = 1.78, and no progress reporting.
func DefaultHiCOptions() *HiCOptions {
	ret := new(HiCOptions)
	ret.mu = 3.22
	ret.rc = 1.78
	ret.cadence = 500
	return ret
}

//Mu returns the steepness parameter of the crosslink probability function,
//and sets it, if a valid value is given.
func (r *HiCOptions) Mu(mu ...float64) float64 {
	ret := r.mu
	if len(mu) > 0 && mu[0] > 0 {
		r.mu = mu[0]
	}
	return ret
}

//Rc returns the inflection distance of the crosslink probability function,
//and sets it, if a valid value is given.
func (r *HiCOptions) Rc(rc ...float64) float64 {
	ret := r.rc
	if len(rc) > 0 && rc[0] > 0 {
		r.rc = rc[0]
	}
	return ret
}

//Cadence returns how many frames go between progress reports, and sets it,
//if a valid value is given.
func (r *HiCOptions) Cadence(cadence ...int) int {
	ret := r.cadence
	if len(cadence) > 0 && cadence[0] > 0 {
		r.cadence = cadence[0]
	}
	return ret
}

//Progress returns the progress callback, and sets it, if one is given. The
//callback, when non-nil, is invoked every Cadence frames during the contact
//map accumulation with the current frame index and the total frame count.
//The default is nil: the calculation is silent.
func (r *HiCOptions) Progress(progress ...func(frame, total int)) func(frame, total int) {
	ret := r.progress
	if len(progress) > 0 {
		r.progress = progress[0]
	}
	return ret
}

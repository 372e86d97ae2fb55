/*
 * ensemble.go, part of gochrom.
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

//Package ensemble computes summary statistics over coordinate tensors
//extracted from a chromosome trajectory: the radius of gyration of each
//frame, the radial density profile around the centroid, and the in-silico
//Hi-C contact probability map. All three are pure functions of the tensor;
//each frame contributes independently and results are reduced by sum or
//average, so callers may split a tensor and merge partial results if they
//want frame-level parallelism.
package ensemble

import (
	"fmt"
	"math"

	"github.com/rmera/gochrom/histo"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	chrom "github.com/rmera/gochrom"
)

//RG calculates the radius of gyration of every frame in the tensor, in
//units of sigma, preserving frame order. For each frame the coordinates are
//centered on their mean and the square root of the summed per-axis
//population variances (the trace of the gyration tensor) is taken.
func RG(xyz chrom.Tensor) []float64 {
	rg := make([]float64, 0, len(xyz))
	col := []float64(nil)
	for _, frame := range xyz {
		r, c := frame.Dims()
		if len(col) != r {
			col = make([]float64, r)
		}
		sum := 0.0
		for j := 0; j < c; j++ {
			mat.Col(col, j, frame)
			m := stat.Mean(col, nil)
			v := 0.0
			for _, x := range col {
				v += (x - m) * (x - m)
			}
			sum += v / float64(r)
		}
		rg = append(rg, math.Sqrt(sum))
	}
	return rg
}

//centroidDistances returns the distance of each bead in the frame to the
//frame's centroid (the mean position over beads).
func centroidDistances(frame *mat.Dense) []float64 {
	r, c := frame.Dims()
	cen := make([]float64, c)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, frame)
		cen[j] = stat.Mean(col, nil)
	}
	d := make([]float64, r)
	for i := 0; i < r; i++ {
		s := 0.0
		for j := 0; j < c; j++ {
			v := frame.At(i, j) - cen[j]
			s += v * v
		}
		d[i] = math.Sqrt(s)
	}
	return d
}

//RDP calculates the radial density profile: how densely beads populate the
//spherical shells around the per-frame centroid, averaged over the whole
//tensor. It returns the shell boundary radii (0, dr, 2dr ... R, with
//dr = radius/bins, so one more value than there are shells) and the averaged
//density of each shell. Shell k counts the beads whose distance to the
//centroid falls in [k*dr, (k+1)*dr); its count is normalized by the shell
//surface volume 4*pi*dr*r^2 taken at the shell's accumulation radius
//r = (k+1)*dr. The innermost shells are normalized by a vanishing volume,
//so their density grows without bound as dr shrinks; that is a property of
//the estimator, not a defect.
//
//Details about the profile can be found in Oliveira Jr. et al., J. Mol.
//Biol. 433 (2021) and Di Pierro et al., PNAS 113 (2016).
func RDP(xyz chrom.Tensor, options ...*RDPOptions) ([]float64, []float64, error) {
	var o *RDPOptions
	if len(options) > 0 && options[0] != nil {
		o = options[0]
	} else {
		o = DefaultRDPOptions()
	}
	if len(xyz) == 0 {
		return nil, nil, Error{NoFrames, []string{"RDP"}, true}
	}
	bins := o.bins
	dr := o.radius / float64(bins)
	dividers := make([]float64, bins+1)
	for i := range dividers {
		dividers[i] = float64(i) * dr
	}
	acc := histo.NewData(dividers, nil)
	for _, frame := range xyz {
		acc.AddData(centroidDistances(frame)...)
	}
	gr := acc.Copy()
	nframes := float64(len(xyz))
	for k := range gr {
		raddi := float64(k+1) * dr
		gr[k] = gr[k] / (4 * math.Pi * dr * raddi * raddi) / nframes
	}
	return dividers, gr, nil
}

//HiC calculates the in-silico Hi-C map: the contact probability matrix of
//the selected beads, averaged over every frame in the tensor. For each
//frame, each pair of beads contributes its crosslink probability
//f(r) = (1 + tanh(mu*(rc-r)))/2, where r is the spatial distance between
//the two beads in that frame. The result is symmetric, and its diagonal is
//f(0) regardless of the input geometry. If a progress callback was set in
//the options it is invoked every Cadence frames.
func HiC(xyz chrom.Tensor, options ...*HiCOptions) (*mat.Dense, error) {
	var o *HiCOptions
	if len(options) > 0 && options[0] != nil {
		o = options[0]
	} else {
		o = DefaultHiCOptions()
	}
	if len(xyz) == 0 {
		return nil, Error{NoFrames, []string{"HiC"}, true}
	}
	n, _ := xyz[0].Dims()
	P := mat.NewDense(n, n, nil)
	pdiag := prob(0, o.mu, o.rc)
	total := len(xyz)
	for i, frame := range xyz {
		r, c := frame.Dims()
		if r != n {
			return nil, Error{fmt.Sprintf("%s: frame %d has %d beads, %d expected", FrameMismatch, i, r, n), []string{"HiC"}, true}
		}
		for a := 0; a < n; a++ {
			P.Set(a, a, P.At(a, a)+pdiag)
			for b := a + 1; b < n; b++ {
				d := 0.0
				for j := 0; j < c; j++ {
					v := frame.At(a, j) - frame.At(b, j)
					d += v * v
				}
				p := prob(math.Sqrt(d), o.mu, o.rc)
				P.Set(a, b, P.At(a, b)+p)
				P.Set(b, a, P.At(b, a)+p)
			}
		}
		if o.progress != nil && i%o.cadence == 0 {
			o.progress(i, total)
		}
	}
	P.Scale(1/float64(total), P)
	return P, nil
}

//prob is the crosslink probability for two beads at distance r.
func prob(r, mu, rc float64) float64 {
	return 0.5 * (1.0 + math.Tanh(mu*(rc-r)))
}

//Errors

//Error is the concrete error type of the ensemble package. It fulfills
//chrom.Error.
type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("goChrom/ensemble: %s", err.message)
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

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

const (
	NoFrames      = "The tensor contains no frames"
	FrameMismatch = "Frames in the tensor have different bead counts"
)

/*
 * histo.go, part of gochrom.
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

//Package histo implements a simple 1D histogram. gochrom uses it to count
//beads into the radial shells of a density profile, but nothing in the
//package is specific to distances.
package histo

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

//Data is a histogram. Bin i covers [dividers[i], dividers[i+1]), so there is
//one bin less than there are dividers. Data points below the first divider
//or at or above the last one are omitted.
type Data struct {
	total    int
	dividers []float64
	histo    []float64
}

//NewData returns a new histogram from the dividers and rawdata given.
//rawdata can be nil; in that case an empty histogram is created.
func NewData(dividers []float64, rawdata []float64) *Data {
	d := new(Data)
	//I prefer to copy the slice to avoid somebody changing it from outside
	d.dividers = make([]float64, len(dividers))
	copy(d.dividers, dividers)
	d.histo = make([]float64, len(dividers)-1)
	if rawdata != nil {
		d.ReHisto(d.dividers, rawdata)
	}
	return d
}

//AddData adds the given data point(s) to the histogram.
func (D *Data) AddData(point ...float64) {
	for _, v := range point {
		for j, w := range D.dividers {
			//Values that are larger than the last divider are just omitted.
			if j == len(D.dividers)-1 {
				break
			}
			if w <= v && v < D.dividers[j+1] {
				D.histo[j]++
				D.total++
				break
			}
		}
	}
}

//ReHisto replaces the contents of the histogram with a fresh binning of
//rawdata over dividers. rawdata gets sorted in place.
func (D *Data) ReHisto(dividers, rawdata []float64) {
	sort.Float64s(rawdata)
	//stat.Histogram just panics instead of omitting the values that are off
	//limits, so we remove them here before the call.
	maxi := sort.SearchFloat64s(rawdata, dividers[len(dividers)-1])
	mini := sort.SearchFloat64s(rawdata, dividers[0])
	if maxi < len(rawdata) {
		rawdata = rawdata[:maxi]
	}
	if mini != 0 {
		rawdata = rawdata[mini:]
	}
	D.total = len(rawdata) //as this could have been modified
	D.histo = stat.Histogram(nil, dividers, rawdata, nil)
}

//Total returns the number of data points counted into the histogram.
func (D *Data) Total() int {
	return D.total
}

//View returns the bin counts. It is not a copy; the caller should not
//modify it.
func (D *Data) View() []float64 {
	return D.histo
}

//Copy returns a copy of the bin counts, in dest if one with enough space
//is given.
func (D *Data) Copy(dest ...[]float64) []float64 {
	d := getCopySlice(len(D.histo), dest...)
	return floats.ScaleTo(d, 1, D.histo)
}

//CopyDividers returns a copy of the dividers, in dest if one with enough
//space is given.
func (D *Data) CopyDividers(dest ...[]float64) []float64 {
	d := getCopySlice(len(D.dividers), dest...)
	return floats.ScaleTo(d, 1, D.dividers)
}

//Sum returns the sum of all bin counts.
func (D *Data) Sum() float64 {
	return floats.Sum(D.histo)
}

//Add adds the histograms a and b putting the result in the receiver.
//The dividers of a and b must match.
func (D *Data) Add(a, b *Data) {
	if len(a.dividers) != len(b.dividers) || !floats.Equal(a.dividers, b.dividers) {
		panic("goChrom/histo.Data.Add: Dividers must match in added histograms")
	}
	D.dividers = a.CopyDividers(D.dividers)
	if len(D.histo) != len(a.histo) {
		D.histo = make([]float64, len(a.histo))
	}
	for i := range a.histo {
		D.histo[i] = a.histo[i] + b.histo[i]
	}
	D.total = a.total + b.total
}

//String prints a -hopefully- pretty string representation of the histogram.
func (D *Data) String() string {
	ret := fmt.Sprintf("TotalData: %d\n", D.total)
	d := make([]string, 0, len(D.dividers)-1)
	h := make([]string, 0, len(D.dividers)-1)
	for i, v := range D.histo {
		d = append(d, fmt.Sprintf("%4.2f-%4.2f", D.dividers[i], D.dividers[i+1]))
		h = append(h, fmt.Sprintf("%9.3f", v))
	}
	return ret + fmt.Sprintf("%s\n%s", strings.Join(d, " "), strings.Join(h, " "))
}

func getCopySlice(N int, dest ...[]float64) []float64 {
	var d []float64
	if len(dest) > 0 && len(dest[0]) >= N {
		d = dest[0][:N] //floats.ScaleTo wants both slices to _match_
	} else {
		d = make([]float64, N)
	}
	return d
}

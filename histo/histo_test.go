/*
 * histo_test.go, part of gochrom.
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

package histo

import (
	"fmt"
	"testing"
)

func TestAddData(Te *testing.T) {
	D := NewData([]float64{0, 1, 2, 3}, nil)
	D.AddData(0.5, 1.5, 1.9, 2.0)
	h := D.View()
	if h[0] != 1 || h[1] != 2 || h[2] != 1 {
		Te.Error("Wrong binning:", h)
	}
	//points at or past the last divider, or below the first one, are omitted
	D.AddData(3.0, -0.1, 57)
	if D.Sum() != 4 || D.Total() != 4 {
		Te.Error("Out-of-range points should not be counted:", D.View(), D.Total())
	}
	fmt.Println(D)
}

func TestReHisto(Te *testing.T) {
	D := NewData([]float64{0, 1, 2}, []float64{0.5, 0.7, 1.5, 2.5, -1})
	h := D.View()
	if h[0] != 2 || h[1] != 1 {
		Te.Error("Wrong binning from raw data:", h)
	}
	if D.Total() != 3 {
		Te.Error("Off-limits raw data should be trimmed, total:", D.Total())
	}
}

func TestAdd(Te *testing.T) {
	div := []float64{0, 1, 2}
	A := NewData(div, []float64{0.5})
	B := NewData(div, []float64{0.1, 1.1})
	C := NewData(div, nil)
	C.Add(A, B)
	h := C.View()
	if h[0] != 2 || h[1] != 1 || C.Total() != 3 {
		Te.Error("Wrong histogram addition:", h, C.Total())
	}
	//adding in place works too, as the receiver can be one of the operands
	A.Add(A, B)
	if A.View()[0] != 2 {
		Te.Error("In-place addition failed:", A.View())
	}
	d := C.CopyDividers()
	d[0] = 42
	if C.CopyDividers()[0] != 0 {
		Te.Error("CopyDividers must return a copy")
	}
}

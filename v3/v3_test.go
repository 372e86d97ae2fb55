/*
 * v3_test.go, part of gochrom.
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

package v3

import (
	"fmt"
	"testing"
)

func TestNewMatrix(Te *testing.T) {
	A, err := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	if err != nil {
		Te.Fatal(err)
	}
	if A.NVecs() != 2 {
		Te.Errorf("Expected 2 vectors, got %d", A.NVecs())
	}
	if A.At(1, 2) != 6 {
		Te.Errorf("Wrong element read back: %f", A.At(1, 2))
	}
	_, err = NewMatrix([]float64{1, 2, 3, 4})
	if err == nil {
		Te.Error("A slice of length 4 should not produce a Matrix")
	}
	fmt.Println("matrix built:", A)
}

func TestSomeVecs(Te *testing.T) {
	A, _ := NewMatrix([]float64{
		0, 0, 0,
		1, 1, 1,
		2, 2, 2,
		3, 3, 3,
	})
	B := Zeros(3)
	B.SomeVecs(A, []int{3, 1, 2})
	//the rows must come out in the requested order, not sorted
	for i, want := range []float64{3, 1, 2} {
		if B.At(i, 0) != want {
			Te.Errorf("Row %d is vector %1.0f, wanted %1.0f", i, B.At(i, 0), want)
		}
	}
	err := B.SomeVecsSafe(A, []int{0, 1, 2, 3})
	if err == nil {
		Te.Error("SomeVecsSafe should have complained about the dimensions")
	}
	fmt.Println("SomeVecsSafe error, as expected:", err)
}

func TestVecView(Te *testing.T) {
	A, _ := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	v := A.VecView(1)
	if v.At(0, 0) != 4 || v.At(0, 2) != 6 {
		Te.Error("VecView returned the wrong vector", v)
	}
	//views alias the original matrix
	v.Set(0, 0, 40)
	if A.At(1, 0) != 40 {
		Te.Error("A change in the view was not reflected in the matrix")
	}
	A.SwapVecs(0, 1)
	if A.At(0, 0) != 40 || A.At(1, 0) != 1 {
		Te.Error("SwapVecs didn't swap", A)
	}
}

/*
Copyright © 2024 the ROMS Tools authors.
This file is part of ROMS Tools.

ROMS Tools is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

ROMS Tools is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with ROMS Tools.  If not, see <http://www.gnu.org/licenses/>.
*/

package roms

import (
	"errors"
	"math"
	"testing"

	"github.com/ctessum/sparse"
)

// columnField builds a (len(col), nj, ni) array with the vertical
// profile col replicated in every column.
func columnField(col []float64, nj, ni int) *sparse.DenseArray {
	a := sparse.ZerosDense(len(col), nj, ni)
	for k, v := range col {
		for j := 0; j < nj*ni; j++ {
			a.Elements[k*nj*ni+j] = v
		}
	}
	return a
}

// uniformField builds a (nj, ni) array filled with v.
func uniformField(v float64, nj, ni int) *sparse.DenseArray {
	a := sparse.ZerosDense(nj, ni)
	for i := range a.Elements {
		a.Elements[i] = v
	}
	return a
}

func TestIsoSlice(t *testing.T) {
	// One crossing of 0.5 between the second and third sample; the
	// sliced field is the property itself, so the result is the
	// isosurface value.
	prop := columnField([]float64{-1, 0, 1, 2}, 2, 2)
	got, err := IsoSlice(prop, prop, 0.5, 0, false)
	if err != nil {
		t.Fatal(err)
	}
	arrayCompare(t, got, uniformField(0.5, 2, 2), 1e-12, "single crossing")
}

func TestIsoSliceInterpolatesField(t *testing.T) {
	v := columnField([]float64{10, 20, 30, 40}, 2, 2)
	prop := columnField([]float64{-1, 0, 1, 2}, 2, 2)
	got, err := IsoSlice(v, prop, 0.5, 0, false)
	if err != nil {
		t.Fatal(err)
	}
	arrayCompare(t, got, uniformField(25, 2, 2), 1e-12, "interpolated field")
}

func TestIsoSliceMultipleCrossings(t *testing.T) {
	// Two crossings at v=15 and v=35 average to 25.
	v := columnField([]float64{10, 20, 30, 40}, 2, 2)
	prop := columnField([]float64{-1, 1, 1, -1}, 2, 2)
	got, err := IsoSlice(v, prop, 0, 0, false)
	if err != nil {
		t.Fatal(err)
	}
	arrayCompare(t, got, uniformField(25, 2, 2), 1e-12, "averaged crossings")
}

func TestIsoSliceTouchingIsNotCrossing(t *testing.T) {
	// The property touches the isosurface value without changing
	// sign, so masking leaves every column as NaN.
	v := columnField([]float64{10, 20, 30}, 2, 2)
	prop := columnField([]float64{1, 0, 1}, 2, 2)
	got, err := IsoSlice(v, prop, 0, 0, true)
	var warn OutOfRangeWarning
	if !errors.As(err, &warn) {
		t.Fatalf("want OutOfRangeWarning, got %v", err)
	}
	if !math.IsNaN(got.Elements[0]) {
		t.Errorf("want NaN but have %g", got.Elements[0])
	}
}

func TestIsoSliceSkipsNaNSamples(t *testing.T) {
	// NaN samples above a valid crossing neither cross nor mask the
	// column: the crossing below is still found.
	v := columnField([]float64{10, 20, 30, 40}, 2, 2)
	prop := columnField([]float64{-1, 1, math.NaN(), math.NaN()}, 2, 2)
	got, err := IsoSlice(v, prop, 0, 0, true)
	if err != nil {
		t.Fatal(err)
	}
	arrayCompare(t, got, uniformField(15, 2, 2), 1e-12, "crossing below gaps")
}

func TestIsoSliceMasking(t *testing.T) {
	// Columns without a crossing are masked, and as long as one
	// column crosses no warning is returned.
	v := denseFromSlice([]float64{
		10, 10, 10, 10,
		20, 20, 20, 20,
	}, 2, 2, 2)
	prop := denseFromSlice([]float64{
		-1, -1, 1, 1,
		1, 1, 2, 2,
	}, 2, 2, 2)
	got, err := IsoSlice(v, prop, 0, 0, true)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got.Elements[0]-15) > 1e-12 {
		t.Errorf("crossing column: want 15 but have %g", got.Elements[0])
	}
	if !math.IsNaN(got.Elements[3]) {
		t.Errorf("masked column: want NaN but have %g", got.Elements[3])
	}
}

func TestIsoSliceOutOfRangeWarning(t *testing.T) {
	prop := columnField([]float64{1, 2, 3, 4}, 2, 2)
	got, err := IsoSlice(prop, prop, 100, 0, true)
	var warn OutOfRangeWarning
	if !errors.As(err, &warn) {
		t.Fatalf("want OutOfRangeWarning, got %v", err)
	}
	if warn.Min != 1 || warn.Max != 4 {
		t.Errorf("want property range [1, 4] but have [%g, %g]", warn.Min, warn.Max)
	}
	if got == nil {
		t.Fatal("a warning should accompany a valid result")
	}
	if !math.IsNaN(got.Elements[0]) {
		t.Errorf("want NaN but have %g", got.Elements[0])
	}
}

func TestIsoSliceAxis(t *testing.T) {
	// Slicing away the trailing axis of a (2, 2, 4) array gives the
	// same values as slicing axis 0 of its transpose.
	v := sparse.ZerosDense(2, 2, 4)
	prop := sparse.ZerosDense(2, 2, 4)
	vcol := []float64{10, 20, 30, 40}
	pcol := []float64{-1, 0, 1, 2}
	for j := 0; j < 4; j++ {
		copy(v.Elements[j*4:], vcol)
		copy(prop.Elements[j*4:], pcol)
	}
	got, err := IsoSlice(v, prop, 0.5, 2, false)
	if err != nil {
		t.Fatal(err)
	}
	arrayCompare(t, got, uniformField(25, 2, 2), 1e-12, "trailing axis")
}

func TestIsoSliceShapeErrors(t *testing.T) {
	var shapeErr ShapeError
	_, err := IsoSlice(sparse.ZerosDense(4, 4), sparse.ZerosDense(4, 4), 0, 0, false)
	if !errors.As(err, &shapeErr) {
		t.Errorf("2-d input: want ShapeError, got %v", err)
	}
	// Singleton axes do not count toward the required rank.
	_, err = IsoSlice(sparse.ZerosDense(1, 4, 3), sparse.ZerosDense(1, 4, 3), 0, 0, false)
	if !errors.As(err, &shapeErr) {
		t.Errorf("singleton leading axis: want ShapeError, got %v", err)
	}
	_, err = IsoSlice(sparse.ZerosDense(4, 3, 2), sparse.ZerosDense(4, 2, 3), 0, 0, false)
	if !errors.As(err, &shapeErr) {
		t.Errorf("mismatched shapes: want ShapeError, got %v", err)
	}
}

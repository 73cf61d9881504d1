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

func TestZSliceLinearMode(t *testing.T) {
	z := denseFromSlice([]float64{-4, -3, -2, -1}, 4, 1, 1)
	q := denseFromSlice([]float64{0, 2, 4, 6}, 4, 1, 1)
	got, err := ZSlice(z, q, -2.5, "linear")
	if err != nil {
		t.Fatal(err)
	}
	arrayCompare(t, got, denseFromSlice([]float64{3}, 1, 1), 1e-12, "linear mode")
}

func TestZSlicePromotesRank(t *testing.T) {
	// 1-d columns are promoted to (K, 1, 1).
	z := denseFromSlice([]float64{-4, -3, -2, -1}, 4)
	q := denseFromSlice([]float64{0, 2, 4, 6}, 4)
	got, err := ZSlice(z, q, -2.5, "linear")
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got.Elements[0]-3) > 1e-12 {
		t.Errorf("want 3 but have %g", got.Elements[0])
	}
}

func TestZSliceMasksOutOfRange(t *testing.T) {
	z := denseFromSlice([]float64{-4, -3, -2, -1}, 4, 1, 1)
	q := denseFromSlice([]float64{0, 2, 4, 6}, 4, 1, 1)
	got, err := ZSlice(z, q, -10, "linear")
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsNaN(got.Elements[0]) {
		t.Errorf("want NaN but have %g", got.Elements[0])
	}
}

func TestZSliceUnknownModeFallsBack(t *testing.T) {
	z := denseFromSlice([]float64{-4, -3, -2, -1, 0}, 5, 1, 1)
	q := denseFromSlice([]float64{-4, -3, -2, -1, 0}, 5, 1, 1)
	got, err := ZSlice(z, q, -2.5, "cubic")
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got.Elements[0]+2.5) > 1e-9 {
		t.Errorf("want -2.5 but have %g", got.Elements[0])
	}
}

func TestZSliceShapeError(t *testing.T) {
	z := sparse.ZerosDense(4, 2, 2)
	q := sparse.ZerosDense(4, 2, 3)
	_, err := ZSlice(z, q, 0, "linear")
	var shapeErr ShapeError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("want ShapeError, got %v", err)
	}
}

func TestIsoIntegrate(t *testing.T) {
	zW := denseFromSlice([]float64{-4, -3, -2, -1, 0}, 5, 1, 1)
	q := denseFromSlice([]float64{1, 1, 1, 1}, 4, 1, 1)
	got, err := IsoIntegrate(zW, q, -3.2)
	if err != nil {
		t.Fatal(err)
	}
	arrayCompare(t, got, denseFromSlice([]float64{3.2}, 1, 1), 1e-12, "integrate")
}

func TestIsoIntegrateField(t *testing.T) {
	// Integrating down to the depth of an isosurface of the field
	// itself.
	zW := denseFromSlice([]float64{-4, -3, -2, -1, 0}, 5, 1, 1)
	q := denseFromSlice([]float64{1, 1, 1, 1}, 4, 1, 1)
	bound := denseFromSlice([]float64{-2}, 1, 1)
	got, err := IsoIntegrateField(zW, q, bound)
	if err != nil {
		t.Fatal(err)
	}
	arrayCompare(t, got, denseFromSlice([]float64{2}, 1, 1), 1e-12, "integrate field")
}

func TestSurfaceDepth(t *testing.T) {
	z := denseFromSlice([]float64{-4, -3, -2, -1}, 4, 1, 1)
	q := denseFromSlice([]float64{0, 1, 2, 3}, 4, 1, 1)
	got, err := Surface(z, q, 1.5)
	if err != nil {
		t.Fatal(err)
	}
	arrayCompare(t, got, denseFromSlice([]float64{-2.5}, 1, 1), 1e-12, "surface depth")
}

func TestSurfaceMasksNoCrossing(t *testing.T) {
	z := denseFromSlice([]float64{-4, -3, -2, -1}, 4, 1, 1)
	q := denseFromSlice([]float64{0, 1, 2, 3}, 4, 1, 1)
	got, err := Surface(z, q, 10)
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsNaN(got.Elements[0]) {
		t.Errorf("want NaN but have %g", got.Elements[0])
	}
}

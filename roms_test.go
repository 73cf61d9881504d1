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
	"math"
	"reflect"
	"testing"

	"github.com/ctessum/sparse"
)

// arrayCompare checks have against want elementwise within tolerance.
// NaN elements must be NaN in both arrays.
func arrayCompare(t *testing.T, have, want *sparse.DenseArray, tolerance float64, name string) {
	t.Helper()
	if !reflect.DeepEqual(want.Shape, have.Shape) {
		t.Errorf("%s: want shape %v but have shape %v", name, want.Shape, have.Shape)
		return
	}
	for i, wantv := range want.Elements {
		havev := have.Elements[i]
		if math.IsNaN(wantv) != math.IsNaN(havev) {
			t.Errorf("%s, element %d: want %g but have %g", name, i, wantv, havev)
			continue
		}
		if math.Abs(havev-wantv) > tolerance {
			t.Errorf("%s, element %d: want %g but have %g", name, i, wantv, havev)
		}
	}
}

// denseFromSlice builds a DenseArray of the given shape from literal
// elements.
func denseFromSlice(elements []float64, shape ...int) *sparse.DenseArray {
	a := sparse.ZerosDense(shape...)
	if len(elements) != len(a.Elements) {
		panic("test data does not match shape")
	}
	copy(a.Elements, elements)
	return a
}

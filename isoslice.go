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

	"github.com/ctessum/sparse"
	"gonum.org/v1/gonum/floats"
)

// IsoSlice projects the field v onto the surface where the property
// field prop equals isoval, removing the given axis from the result.
// For example, with salinity s, depth z and velocity u on the same
// grid:
//
//	sAt5m, _ := roms.IsoSlice(s, z, -5, 0, true)  // s at z == -5
//	zAtS30, _ := roms.IsoSlice(z, s, 30, 0, true) // z at s == 30
//	uAtS30, _ := roms.IsoSlice(u, s, 30, 0, true) // u at s == 30
//
// Crossings are detected where prop-isoval changes sign between
// adjacent samples along axis (a strict sign change: columns where the
// property only touches isoval yield no crossing), and v is linearly
// interpolated at each one. Columns with several crossings average
// them.
//
// If masking is true, columns with no crossing are set to NaN, and if
// every column is masked the result is returned together with an
// OutOfRangeWarning describing the property range; the caller may
// treat the warning as non-fatal.
//
// v must have at least three non-singleton dimensions and the same
// shape as prop; otherwise a ShapeError is returned.
func IsoSlice(v, prop *sparse.DenseArray, isoval float64, axis int, masking bool) (*sparse.DenseArray, error) {
	if squeezedRank(v) <= 2 {
		return nil, ShapeError{Op: "isoslice", Want: []int{-1, -1, -1}, Have: v.Shape}
	}
	if !sameShape(v.Shape, prop.Shape) {
		return nil, ShapeError{Op: "isoslice", Want: v.Shape, Have: prop.Shape}
	}

	vv := swapAxes(v, 0, axis)
	pp := swapAxes(prop, 0, axis)
	nk := vv.Shape[0]
	ncol := len(vv.Elements) / nk

	sums := make([]float64, ncol)
	counts := make([]int, ncol)
	for k := 0; k < nk-1; k++ {
		for j := 0; j < ncol; j++ {
			pl := pp.Elements[k*ncol+j] - isoval
			ph := pp.Elements[(k+1)*ncol+j] - isoval
			// Strict sign change; NaN samples never cross.
			if !(pl*ph < 0) {
				continue
			}
			vl := vv.Elements[k*ncol+j]
			vh := vv.Elements[(k+1)*ncol+j]
			sums[j] += vl - pl*(vh-vl)/(ph-pl)
			counts[j]++
		}
	}

	result := sparse.ZerosDense(vv.Shape[1:]...)
	anyCrossing := false
	for j := range sums {
		switch {
		case counts[j] > 0:
			result.Elements[j] = sums[j] / float64(counts[j])
			anyCrossing = true
		case masking:
			result.Elements[j] = math.NaN()
		}
	}
	if masking && !anyCrossing {
		return result, OutOfRangeWarning{
			IsoVal: isoval,
			Min:    floats.Min(prop.Elements),
			Max:    floats.Max(prop.Elements),
		}
	}
	return result, nil
}

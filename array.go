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
)

// atLeastND returns a with singleton axes prepended until it has at
// least n dimensions. The element slice is shared, not copied.
func atLeastND(a *sparse.DenseArray, n int) *sparse.DenseArray {
	if len(a.Shape) >= n {
		return a
	}
	shape := make([]int, n)
	for i := 0; i < n-len(a.Shape); i++ {
		shape[i] = 1
	}
	copy(shape[n-len(a.Shape):], a.Shape)
	out := sparse.ZerosDense(shape...)
	out.Elements = a.Elements
	return out
}

// squeeze returns a copy of a with all singleton axes removed. An array
// that is singleton in every axis squeezes to a single-element 1-d array.
func squeeze(a *sparse.DenseArray) *sparse.DenseArray {
	var shape []int
	for _, d := range a.Shape {
		if d != 1 {
			shape = append(shape, d)
		}
	}
	if len(shape) == 0 {
		shape = []int{1}
	}
	out := sparse.ZerosDense(shape...)
	copy(out.Elements, a.Elements)
	return out
}

// squeezedRank is the number of non-singleton axes of a.
func squeezedRank(a *sparse.DenseArray) int {
	n := 0
	for _, d := range a.Shape {
		if d != 1 {
			n++
		}
	}
	return n
}

// swapAxes returns a copy of a with axes ax1 and ax2 interchanged.
func swapAxes(a *sparse.DenseArray, ax1, ax2 int) *sparse.DenseArray {
	if ax1 == ax2 {
		return a.Copy()
	}
	shape := make([]int, len(a.Shape))
	copy(shape, a.Shape)
	shape[ax1], shape[ax2] = shape[ax2], shape[ax1]
	out := sparse.ZerosDense(shape...)
	src := make([]int, len(a.Shape))
	for i := range out.Elements {
		idx := out.IndexNd(i)
		copy(src, idx)
		src[ax1], src[ax2] = idx[ax2], idx[ax1]
		out.Elements[i] = a.Get(src...)
	}
	return out
}

// sameShape reports whether two shapes are identical.
func sameShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// broadcastShape returns the elementwise maximum of the given shapes.
// All shapes must have equal rank, and each axis must either agree or
// be singleton.
func broadcastShape(op string, shapes ...[]int) ([]int, error) {
	out := make([]int, len(shapes[0]))
	copy(out, shapes[0])
	for _, s := range shapes[1:] {
		if len(s) != len(out) {
			return nil, ShapeError{Op: op, Want: out, Have: s}
		}
		for i, d := range s {
			switch {
			case d == out[i] || d == 1:
			case out[i] == 1:
				out[i] = d
			default:
				return nil, ShapeError{Op: op, Want: out, Have: s}
			}
		}
	}
	return out, nil
}

// broadcastGet retrieves the element of a at idx, treating singleton
// axes of a as constant along that axis.
func broadcastGet(a *sparse.DenseArray, idx []int) float64 {
	clamped := make([]int, len(idx))
	for i, d := range a.Shape {
		if d == 1 {
			clamped[i] = 0
		} else {
			clamped[i] = idx[i]
		}
	}
	return a.Get(clamped...)
}

// MaskNaN returns an integer mask array with ones wherever a is NaN.
func MaskNaN(a *sparse.DenseArray) *sparse.DenseArrayInt {
	mask := sparse.ZerosDenseInt(a.Shape...)
	for i, v := range a.Elements {
		if math.IsNaN(v) {
			mask.Elements[i] = 1
		}
	}
	return mask
}

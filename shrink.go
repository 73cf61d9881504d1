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

import "github.com/ctessum/sparse"

// Shrink returns a copy of a whose trailing axes have been reduced so
// that no axis is longer than the corresponding trailing element of
// shape. Staggered model grids (rho, u, v, psi points) differ by one or
// two cells per axis; Shrink reconciles them so fields can be combined
// elementwise. Per axis, an excess of two or more is removed by
// trimming one cell from each end, and a remaining excess of one is
// removed by averaging adjacent cells. Axes already at or below the
// target are left alone; Shrink never grows an array.
//
// If shape has more elements than a has axes, its trailing elements
// apply. A 1-d array is matched against the last element of shape.
func Shrink(a *sparse.DenseArray, shape ...int) (*sparse.DenseArray, error) {
	if len(shape) == 0 {
		return nil, ShapeError{Op: "shrink", Want: shape, Have: a.Shape}
	}
	if len(a.Shape) == 1 {
		out := a.Copy()
		dim := shape[len(shape)-1]
		for out.Shape[0] > dim {
			if out.Shape[0]-dim >= 2 {
				out = trimEnds(out, 0)
			} else {
				out = averageAdjacent(out, 0)
			}
		}
		return out, nil
	}
	if len(shape) < len(a.Shape) {
		return nil, ShapeError{Op: "shrink", Want: shape, Have: a.Shape}
	}
	out := a.Copy()
	offset := len(shape) - len(a.Shape)
	for axis := 0; axis < len(a.Shape); axis++ {
		dim := shape[offset+axis]
		for out.Shape[axis] > dim {
			if out.Shape[axis]-dim >= 2 {
				out = trimEnds(out, axis)
			}
			if out.Shape[axis]-dim == 1 {
				out = averageAdjacent(out, axis)
			}
		}
	}
	return out, nil
}

// ShrinkTogether reduces two arrays of equal rank to a common shape,
// the elementwise minimum of their shapes, using the Shrink policy on
// each. It returns a DimensionMismatchError if the ranks differ.
func ShrinkTogether(a, b *sparse.DenseArray) (*sparse.DenseArray, *sparse.DenseArray, error) {
	if len(a.Shape) != len(b.Shape) {
		return nil, nil, DimensionMismatchError{Op: "shrink", Want: len(a.Shape), Have: len(b.Shape)}
	}
	as, err := Shrink(a, b.Shape...)
	if err != nil {
		return nil, nil, err
	}
	bs, err := Shrink(b, as.Shape...)
	if err != nil {
		return nil, nil, err
	}
	return as, bs, nil
}

// trimEnds removes the first and last slice of a along axis.
func trimEnds(a *sparse.DenseArray, axis int) *sparse.DenseArray {
	shape := make([]int, len(a.Shape))
	copy(shape, a.Shape)
	shape[axis] -= 2
	out := sparse.ZerosDense(shape...)
	src := make([]int, len(shape))
	for i := range out.Elements {
		idx := out.IndexNd(i)
		copy(src, idx)
		src[axis]++
		out.Elements[i] = a.Get(src...)
	}
	return out
}

// averageAdjacent replaces each pair of adjacent slices of a along axis
// with their mean, reducing the axis length by one.
func averageAdjacent(a *sparse.DenseArray, axis int) *sparse.DenseArray {
	shape := make([]int, len(a.Shape))
	copy(shape, a.Shape)
	shape[axis]--
	out := sparse.ZerosDense(shape...)
	src := make([]int, len(shape))
	for i := range out.Elements {
		idx := out.IndexNd(i)
		copy(src, idx)
		lo := a.Get(src...)
		src[axis]++
		out.Elements[i] = 0.5 * (lo + a.Get(src...))
	}
	return out
}

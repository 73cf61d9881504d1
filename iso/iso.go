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

// Package iso holds the column-wise kernels for vertical isosurface
// interpolation and integration on (level, eta, xi) arrays. Columns
// where a kernel has no valid result are set to the sentinel Fill.
package iso

import (
	"fmt"

	"github.com/ctessum/sparse"
	"gonum.org/v1/gonum/interp"
)

// Fill marks columns with no valid result.
const Fill = 1e20

// Mode selects the vertical interpolation scheme for ZSlice.
type Mode int

const (
	// Linear interpolates linearly between the two samples
	// bracketing the target depth.
	Linear Mode = iota
	// Spline fits a natural cubic spline to the whole column.
	Spline
)

// ZSlice interpolates the field q to the depth zo within each vertical
// column, using z as the depth of each sample. z and q must both have
// shape (K, J, I) and zo shape (J, I). Columns whose depth range does
// not contain zo are set to Fill. Columns too short or not monotonic
// enough for a spline fit fall back to linear interpolation.
func ZSlice(z, q, zo *sparse.DenseArray, mode Mode) (*sparse.DenseArray, error) {
	if err := checkShapes("zslice", z, q, zo); err != nil {
		return nil, err
	}
	nk, ncol := z.Shape[0], zo.Shape[0]*zo.Shape[1]
	out := sparse.ZerosDense(zo.Shape...)
	xs := make([]float64, nk)
	ys := make([]float64, nk)
	for j := 0; j < ncol; j++ {
		column(z, j, ncol, xs)
		column(q, j, ncol, ys)
		orientUp(xs, ys)
		out.Elements[j] = interpolate(xs, ys, zo.Elements[j], mode)
	}
	return out, nil
}

// Integrate computes the vertical integral of q from the depth zIso up
// to the free surface in each column. zW holds the depths of the K+1
// cell faces bounding the K cells of q, ordered bottom to top. A zIso
// below the bottom face integrates the whole column.
func Integrate(zW, q, zIso *sparse.DenseArray) (*sparse.DenseArray, error) {
	if len(zW.Shape) != 3 || len(q.Shape) != 3 {
		return nil, fmt.Errorf("iso: integrate: need 3-d arrays, got %v and %v", zW.Shape, q.Shape)
	}
	if zW.Shape[0] != q.Shape[0]+1 || zW.Shape[1] != q.Shape[1] || zW.Shape[2] != q.Shape[2] {
		return nil, fmt.Errorf("iso: integrate: face array %v does not bound cell array %v", zW.Shape, q.Shape)
	}
	if zIso.Shape[0] != q.Shape[1] || zIso.Shape[1] != q.Shape[2] {
		return nil, fmt.Errorf("iso: integrate: target shape %v does not match horizontal shape %v", zIso.Shape, q.Shape[1:])
	}
	nk, ncol := q.Shape[0], zIso.Shape[0]*zIso.Shape[1]
	out := sparse.ZerosDense(zIso.Shape...)
	for j := 0; j < ncol; j++ {
		target := zIso.Elements[j]
		total := 0.
		for k := 0; k < nk; k++ {
			lo := zW.Elements[k*ncol+j]
			hi := zW.Elements[(k+1)*ncol+j]
			if lo < target {
				lo = target
			}
			if hi > lo {
				total += q.Elements[k*ncol+j] * (hi - lo)
			}
		}
		out.Elements[j] = total
	}
	return out, nil
}

// Surface finds the depth of the isosurface q == qo in each column:
// the value of z, linearly interpolated, at the shallowest crossing of
// q through qo. z and q must both have shape (K, J, I) and qo shape
// (J, I). Columns that never cross qo are set to Fill.
func Surface(z, q, qo *sparse.DenseArray) (*sparse.DenseArray, error) {
	if err := checkShapes("surface", z, q, qo); err != nil {
		return nil, err
	}
	nk, ncol := z.Shape[0], qo.Shape[0]*qo.Shape[1]
	out := sparse.ZerosDense(qo.Shape...)
	for j := 0; j < ncol; j++ {
		target := qo.Elements[j]
		out.Elements[j] = Fill
		for k := nk - 1; k > 0; k-- {
			a := q.Elements[k*ncol+j] - target
			b := q.Elements[(k-1)*ncol+j] - target
			if a == 0 {
				out.Elements[j] = z.Elements[k*ncol+j]
				break
			}
			if a*b < 0 {
				zk := z.Elements[k*ncol+j]
				zk1 := z.Elements[(k-1)*ncol+j]
				out.Elements[j] = zk - a*(zk1-zk)/(b-a)
				break
			}
			if k == 1 && b == 0 {
				out.Elements[j] = z.Elements[(k-1)*ncol+j]
			}
		}
	}
	return out, nil
}

func checkShapes(op string, z, q, target *sparse.DenseArray) error {
	if len(z.Shape) != 3 || len(q.Shape) != 3 {
		return fmt.Errorf("iso: %s: need 3-d arrays, got %v and %v", op, z.Shape, q.Shape)
	}
	for i := range z.Shape {
		if z.Shape[i] != q.Shape[i] {
			return fmt.Errorf("iso: %s: z shape %v does not match q shape %v", op, z.Shape, q.Shape)
		}
	}
	if target.Shape[0] != z.Shape[1] || target.Shape[1] != z.Shape[2] {
		return fmt.Errorf("iso: %s: target shape %v does not match horizontal shape %v", op, target.Shape, z.Shape[1:])
	}
	return nil
}

// column copies vertical profile j out of the (K, J*I)-strided array a.
func column(a *sparse.DenseArray, j, ncol int, dst []float64) {
	for k := range dst {
		dst[k] = a.Elements[k*ncol+j]
	}
}

// orientUp reverses both profiles in place if depth decreases with
// index, so xs ascends for interpolation.
func orientUp(xs, ys []float64) {
	if len(xs) < 2 || xs[0] <= xs[len(xs)-1] {
		return
	}
	for i, j := 0, len(xs)-1; i < j; i, j = i+1, j-1 {
		xs[i], xs[j] = xs[j], xs[i]
		ys[i], ys[j] = ys[j], ys[i]
	}
}

func interpolate(xs, ys []float64, target float64, mode Mode) float64 {
	n := len(xs)
	if n < 2 {
		return Fill
	}
	if mode == Spline && n >= 3 && strictlyIncreasing(xs) {
		if target < xs[0] || target > xs[n-1] {
			return Fill
		}
		var nc interp.NaturalCubic
		if err := nc.Fit(xs, ys); err == nil {
			return nc.Predict(target)
		}
	}
	// Linear bracket scan; also the fallback for columns a spline
	// cannot fit. NaN samples never bracket.
	for k := 0; k < n-1; k++ {
		a := xs[k] - target
		b := xs[k+1] - target
		if !(a*b <= 0) {
			continue
		}
		if b == a {
			return ys[k]
		}
		return ys[k] - a*(ys[k+1]-ys[k])/(b-a)
	}
	return Fill
}

func strictlyIncreasing(xs []float64) bool {
	for i := 1; i < len(xs); i++ {
		if !(xs[i] > xs[i-1]) { // also rejects NaN
			return false
		}
	}
	return true
}

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
	"github.com/ctessum/geom"
	"github.com/ctessum/sparse"
)

// ArgNearest returns the indices of the grid points nearest to the
// point xo, measured by squared Euclidean distance in coordinate
// space. x holds one coordinate array per dimension of xo; each must
// have rank len(xo), but singleton axes may stand in for dimensions a
// coordinate does not vary along (for example a 1-d longitude vector
// broadcast against a 1-d latitude vector). scale, if non-nil, gives a
// per-dimension factor applied to both x and xo before measuring.
//
// Every index tuple attaining the minimum distance is returned, so
// ties yield more than one result.
func ArgNearest(x []*sparse.DenseArray, xo []float64, scale []float64) ([][]int, error) {
	if len(x) != len(xo) {
		return nil, DimensionMismatchError{Op: "arg_nearest", Want: len(xo), Have: len(x)}
	}
	for _, p := range x {
		if len(p.Shape) != len(xo) {
			return nil, DimensionMismatchError{Op: "arg_nearest", Want: len(xo), Have: len(p.Shape)}
		}
	}
	if scale != nil && len(scale) != len(x) {
		return nil, DimensionMismatchError{Op: "arg_nearest", Want: len(x), Have: len(scale)}
	}

	shapes := make([][]int, len(x))
	for i, p := range x {
		shapes[i] = p.Shape
	}
	shape, err := broadcastShape("arg_nearest", shapes...)
	if err != nil {
		return nil, err
	}

	dist := sparse.ZerosDense(shape...)
	for i := range dist.Elements {
		idx := dist.IndexNd(i)
		d := 0.
		for dim, p := range x {
			v, vo := broadcastGet(p, idx), xo[dim]
			if scale != nil {
				v *= scale[dim]
				vo *= scale[dim]
			}
			d += (v - vo) * (v - vo)
		}
		dist.Elements[i] = d
	}

	min := dist.Elements[0]
	for _, d := range dist.Elements[1:] {
		if d < min {
			min = d
		}
	}
	var out [][]int
	for i, d := range dist.Elements {
		if d == min {
			out = append(out, dist.IndexNd(i))
		}
	}
	return out, nil
}

// NearestPoint returns the indices of the grid cell whose coordinates
// (lon, lat) are nearest to p, with longitude distances scaled to
// account for meridional convergence at the point's latitude. lon and
// lat must have equal rank. Where several cells tie, the first in
// array order is returned.
func NearestPoint(lon, lat *sparse.DenseArray, p geom.Point) ([]int, error) {
	scale := []float64{cosDeg(p.Y), 1}
	idx, err := ArgNearest([]*sparse.DenseArray{lon, lat}, []float64{p.X, p.Y}, scale)
	if err != nil {
		return nil, err
	}
	return idx[0], nil
}

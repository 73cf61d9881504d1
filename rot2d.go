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

// Rot2D rotates the vector field (x, y) counterclockwise by the angle
// field ang [radians], elementwise. Model velocity components are
// stored along curvilinear grid axes; rotating by the grid angle
// yields eastward and northward components. All three arrays must have
// the same shape.
func Rot2D(x, y, ang *sparse.DenseArray) (xr, yr *sparse.DenseArray, err error) {
	if !sameShape(x.Shape, y.Shape) {
		return nil, nil, ShapeError{Op: "rot2d", Want: x.Shape, Have: y.Shape}
	}
	if !sameShape(x.Shape, ang.Shape) {
		return nil, nil, ShapeError{Op: "rot2d", Want: x.Shape, Have: ang.Shape}
	}
	xr = sparse.ZerosDense(x.Shape...)
	yr = sparse.ZerosDense(x.Shape...)
	for i, xv := range x.Elements {
		sin, cos := math.Sincos(ang.Elements[i])
		xr.Elements[i] = xv*cos - y.Elements[i]*sin
		yr.Elements[i] = xv*sin + y.Elements[i]*cos
	}
	return xr, yr, nil
}

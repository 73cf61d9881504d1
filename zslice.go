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

	log "github.com/sirupsen/logrus"

	"github.com/coastalsim/roms/iso"
	"github.com/ctessum/sparse"
)

// ZSlice interpolates the field q to the constant depth qo, using z as
// the depth of each sample. mode is "linear" or "spline" (the
// default); an unrecognized mode falls back to spline with a logged
// warning. z and q are promoted to three dimensions if needed and must
// have the same shape. Columns whose depth range does not contain qo
// are set to NaN.
func ZSlice(z, q *sparse.DenseArray, qo float64, mode string) (*sparse.DenseArray, error) {
	imode := iso.Spline
	switch mode {
	case "linear":
		imode = iso.Linear
	case "spline", "":
	default:
		log.WithField("mode", mode).Warn("roms: zslice: unsupported mode, defaulting to spline")
	}
	z = atLeastND(z, 3)
	q = atLeastND(q, 3)
	if !sameShape(z.Shape, q.Shape) {
		return nil, ShapeError{Op: "zslice", Want: z.Shape, Have: q.Shape}
	}
	out, err := iso.ZSlice(z, q, constField(qo, z.Shape[1:]), imode)
	if err != nil {
		return nil, err
	}
	maskFill(out)
	return out, nil
}

// IsoIntegrate computes the vertical integral of q from the constant
// depth zIso up to the free surface. zW holds the depths of the cell
// faces bounding the cells of q: its vertical axis is one longer.
func IsoIntegrate(zW, q *sparse.DenseArray, zIso float64) (*sparse.DenseArray, error) {
	q = atLeastND(q, 3)
	return iso.Integrate(atLeastND(zW, 3), q, constField(zIso, q.Shape[1:]))
}

// IsoIntegrateField is IsoIntegrate with a separate integration bound
// for each water column, for example the output of Surface.
func IsoIntegrateField(zW, q, zIso *sparse.DenseArray) (*sparse.DenseArray, error) {
	return iso.Integrate(atLeastND(zW, 3), atLeastND(q, 3), zIso)
}

// Surface finds the depth of the isosurface q == qo: the value of z at
// the shallowest crossing of q through qo in each column. z and q must
// have the same shape. Columns that never cross qo are set to NaN.
func Surface(z, q *sparse.DenseArray, qo float64) (*sparse.DenseArray, error) {
	z = atLeastND(z, 3)
	q = atLeastND(q, 3)
	if !sameShape(z.Shape, q.Shape) {
		return nil, ShapeError{Op: "surface", Want: z.Shape, Have: q.Shape}
	}
	out, err := iso.Surface(z, q, constField(qo, z.Shape[1:]))
	if err != nil {
		return nil, err
	}
	maskFill(out)
	return out, nil
}

// constField builds an array of the given shape filled with val.
func constField(val float64, shape []int) *sparse.DenseArray {
	out := sparse.ZerosDense(shape...)
	for i := range out.Elements {
		out.Elements[i] = val
	}
	return out
}

// maskFill replaces the kernel sentinel with NaN in place.
func maskFill(a *sparse.DenseArray) {
	for i, v := range a.Elements {
		if v == iso.Fill {
			a.Elements[i] = math.NaN()
		}
	}
}

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
	"fmt"

	"github.com/ctessum/sparse"
	"gonum.org/v1/gonum/floats"
)

// RestState requests a depth field for zeta == 0, the rest surface,
// instead of a model record.
const RestState = -1

// Candidate variable and dimension names for the two model output
// schema versions: the 2.x names come first, then their 3.x renames.
var (
	scRNames  = []string{"sc_r", "s_rho"}
	scWNames  = []string{"sc_w", "s_w"}
	nDimNames = []string{"N", "s_rho"}
)

// ZAtR computes depths (positive up, zero at the rest surface) at the
// vertical rho points of every horizontal grid cell in ds. record
// selects the free-surface (zeta) snapshot to include; RestState uses
// zeta == 0. The result has shape (N, eta, xi) with singleton axes
// removed.
//
// Land cells, where the bottom depth h is zero, divide by zero in the
// surface-following correction; the resulting Inf or NaN values
// propagate unmasked.
func ZAtR(ds Dataset, record int) (*sparse.DenseArray, error) {
	return zAt(ds, record, "Cs_r", scRNames, 0)
}

// ZAtW computes depths at the vertical w points, the cell faces
// staggered about the rho points: the vertical axis has length N+1.
func ZAtW(ds Dataset, record int) (*sparse.DenseArray, error) {
	return zAt(ds, record, "Cs_w", scWNames, 1)
}

func zAt(ds Dataset, record int, csName string, scNames []string, extraLevels int) (*sparse.DenseArray, error) {
	h, err := ds.Variable("h")
	if err != nil {
		return nil, err
	}
	h = atLeastND(h, 2)
	hcArr, err := ds.Variable("hc")
	if err != nil {
		return nil, err
	}
	hc := hcArr.Elements[0]
	cs, err := ds.Variable(csName)
	if err != nil {
		return nil, err
	}
	sc, err := FirstVariable(ds, scNames...)
	if err != nil {
		return nil, err
	}
	n, err := firstDimLen(ds, nDimNames...)
	if err != nil {
		return nil, err
	}
	n += extraLevels
	if len(sc.Elements) < n || len(cs.Elements) < n {
		return nil, ShapeError{Op: "depth field", Want: []int{n}, Have: sc.Shape}
	}

	var zeta *sparse.DenseArray
	if record == RestState {
		zeta = sparse.ZerosDense(h.Shape...)
	} else {
		zeta, err = ds.VariableAt("zeta", record)
		if err != nil {
			return nil, err
		}
	}
	if len(zeta.Shape) == 2 {
		zeta = atLeastND(zeta, 3) // prepend a record axis
	}
	if !sameShape(zeta.Shape[1:], h.Shape) {
		return nil, ShapeError{Op: "depth field", Want: h.Shape, Have: zeta.Shape[1:]}
	}

	nt := zeta.Shape[0]
	nxy := len(h.Elements)
	shape := append([]int{nt, n}, h.Shape...)
	z := sparse.ZerosDense(shape...)
	for t := 0; t < nt; t++ {
		for k := 0; k < n; k++ {
			for i, hv := range h.Elements {
				z0 := (sc.Elements[k]-cs.Elements[k])*hc + cs.Elements[k]*hv
				z.Elements[(t*n+k)*nxy+i] = z0 + zeta.Elements[t*nxy+i]*(1+z0/hv)
			}
		}
	}
	return squeeze(z), nil
}

// DepthSummary describes the range of a depth field, for reporting.
func DepthSummary(z *sparse.DenseArray) string {
	return fmt.Sprintf("%d levels, depth range [%g, %g]",
		z.Shape[0], floats.Min(z.Elements), floats.Max(z.Elements))
}

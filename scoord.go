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
	"math"

	"github.com/ctessum/sparse"
)

// sigmaLevels returns the normalized terrain-following coordinates for
// a water column with n rho-levels: scW holds the n+1 cell-face values
// from -1 to 0 with spacing 1/n, and scR holds the n cell-center
// values, the midpoints of consecutive face pairs.
func sigmaLevels(n int) (scR, scW []float64) {
	scW = make([]float64, n+1)
	for k := 0; k <= n; k++ {
		scW[k] = -1 + float64(k)/float64(n)
	}
	scR = make([]float64, n)
	for k := 0; k < n; k++ {
		scR[k] = 0.5 * (scW[k] + scW[k+1])
	}
	return scR, scW
}

// stretching evaluates the S-coordinate stretching curve of Song and
// Haidvogel (1994) at the normalized coordinates sc. thetaS controls
// surface focusing and must be nonzero; thetaB in [0,1] controls bottom
// focusing.
func stretching(sc []float64, thetaB, thetaS float64) []float64 {
	cs := make([]float64, len(sc))
	for k, s := range sc {
		cs[k] = (1-thetaB)*math.Sinh(thetaS*s)/math.Sinh(thetaS) +
			0.5*thetaB*(math.Tanh(thetaS*(s+0.5))-math.Tanh(0.5*thetaS))/math.Tanh(0.5*thetaS)
	}
	return cs
}

// depthFromCurve combines a stretching curve with the bottom depth h
// and critical depth hc into a depth field with a prepended vertical
// axis: z[k] = (sc[k]-cs[k])*hc + cs[k]*h.
func depthFromCurve(h *sparse.DenseArray, hc float64, sc, cs []float64) *sparse.DenseArray {
	shape := append([]int{len(sc)}, h.Shape...)
	z := sparse.ZerosDense(shape...)
	for k := range sc {
		for i, hv := range h.Elements {
			z.Elements[k*len(h.Elements)+i] = (sc[k]-cs[k])*hc + cs[k]*hv
		}
	}
	return z
}

// SCoordR returns rest-state depths (positive up, zero at the rest
// surface) at the n vertical rho points for the given bottom depth
// field h, critical depth hc, and focusing parameters thetaB and
// thetaS. The result has shape (n, h...) with singleton axes removed.
// Land cells with h == 0 produce Inf or NaN depths, which propagate.
func SCoordR(h *sparse.DenseArray, hc, thetaB, thetaS float64, n int) (*sparse.DenseArray, error) {
	if err := checkStretchParams(thetaS, n); err != nil {
		return nil, err
	}
	scR, _ := sigmaLevels(n)
	return squeeze(depthFromCurve(h, hc, scR, stretching(scR, thetaB, thetaS))), nil
}

// SCoordW returns rest-state depths at the n+1 vertical w points, the
// cell faces staggered about the rho points of SCoordR. The result has
// shape (n+1, h...) with singleton axes removed.
func SCoordW(h *sparse.DenseArray, hc, thetaB, thetaS float64, n int) (*sparse.DenseArray, error) {
	if err := checkStretchParams(thetaS, n); err != nil {
		return nil, err
	}
	_, scW := sigmaLevels(n)
	return squeeze(depthFromCurve(h, hc, scW, stretching(scW, thetaB, thetaS))), nil
}

func checkStretchParams(thetaS float64, n int) error {
	if thetaS == 0 {
		return fmt.Errorf("roms: s-coordinate: theta_s must be nonzero")
	}
	if n < 1 {
		return fmt.Errorf("roms: s-coordinate: need at least one vertical level, got %d", n)
	}
	return nil
}

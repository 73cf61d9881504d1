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

	"github.com/ctessum/geom"
	"github.com/ctessum/sparse"
	"github.com/ctessum/unit"
)

// WGS84 reference ellipsoid semi-axes [m].
const (
	WGS84Major = 6378137.0
	WGS84Minor = 6356752.3142
)

// A DistanceFunc returns the surface distance in meters between two
// (longitude, latitude) points given in degrees.
type DistanceFunc func(lon1, lat1, lon2, lat2 float64) float64

// GCDist computes great-circle distances [m] between pairs of points,
// elementwise over the broadcast of the four coordinate arrays, on the
// WGS84 ellipsoid. All arrays must have equal rank; singleton axes
// broadcast.
func GCDist(lon1, lat1, lon2, lat2 *sparse.DenseArray) (*sparse.DenseArray, error) {
	return GCDistFunc(lon1, lat1, lon2, lat2, func(ln1, lt1, ln2, lt2 float64) float64 {
		return EllipsoidDistance(WGS84Major, WGS84Minor, ln1, lt1, ln2, lt2)
	})
}

// GCDistFunc is GCDist with a caller-supplied distance routine.
func GCDistFunc(lon1, lat1, lon2, lat2 *sparse.DenseArray, dist DistanceFunc) (*sparse.DenseArray, error) {
	shape, err := broadcastShape("gc_dist", lon1.Shape, lat1.Shape, lon2.Shape, lat2.Shape)
	if err != nil {
		return nil, err
	}
	out := sparse.ZerosDense(shape...)
	for i := range out.Elements {
		idx := out.IndexNd(i)
		out.Elements[i] = dist(
			broadcastGet(lon1, idx), broadcastGet(lat1, idx),
			broadcastGet(lon2, idx), broadcastGet(lat2, idx))
	}
	return out, nil
}

// Distance returns the WGS84 surface distance [m] between two
// (longitude, latitude) points given in degrees.
func Distance(p1, p2 geom.Point) float64 {
	return EllipsoidDistance(WGS84Major, WGS84Minor, p1.X, p1.Y, p2.X, p2.Y)
}

// DistanceUnit is Distance with an attached unit of meters.
func DistanceUnit(p1, p2 geom.Point) *unit.Unit {
	return unit.New(Distance(p1, p2), unit.Meter)
}

// EllipsoidDistance returns the surface distance [m] between two
// (longitude, latitude) points given in degrees, on the ellipsoid with
// the given semi-major and semi-minor axes [m], using Vincenty's
// inverse formula. Near-antipodal point pairs, where the iteration
// does not converge, fall back to a spherical great-circle estimate on
// the mean radius.
func EllipsoidDistance(major, minor, lon1, lat1, lon2, lat2 float64) float64 {
	if lon1 == lon2 && lat1 == lat2 {
		return 0
	}
	f := (major - minor) / major
	l := radians(lon2 - lon1)
	u1 := math.Atan((1 - f) * math.Tan(radians(lat1)))
	u2 := math.Atan((1 - f) * math.Tan(radians(lat2)))
	sinU1, cosU1 := math.Sincos(u1)
	sinU2, cosU2 := math.Sincos(u2)

	lambda := l
	var sinSigma, cosSigma, sigma, cos2Alpha, cos2SigmaM float64
	converged := false
	for iter := 0; iter < 200; iter++ {
		sinLambda, cosLambda := math.Sincos(lambda)
		sinSigma = math.Hypot(cosU2*sinLambda,
			cosU1*sinU2-sinU1*cosU2*cosLambda)
		if sinSigma == 0 { // coincident points
			return 0
		}
		cosSigma = sinU1*sinU2 + cosU1*cosU2*cosLambda
		sigma = math.Atan2(sinSigma, cosSigma)
		sinAlpha := cosU1 * cosU2 * sinLambda / sinSigma
		cos2Alpha = 1 - sinAlpha*sinAlpha
		if cos2Alpha == 0 { // equatorial line
			cos2SigmaM = 0
		} else {
			cos2SigmaM = cosSigma - 2*sinU1*sinU2/cos2Alpha
		}
		c := f / 16 * cos2Alpha * (4 + f*(4-3*cos2Alpha))
		lambdaPrev := lambda
		lambda = l + (1-c)*f*sinAlpha*
			(sigma+c*sinSigma*(cos2SigmaM+c*cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)))
		if math.Abs(lambda-lambdaPrev) < 1e-12 {
			converged = true
			break
		}
	}
	if !converged {
		return haversine((major+minor)/2, lon1, lat1, lon2, lat2)
	}

	u2sq := cos2Alpha * (major*major - minor*minor) / (minor * minor)
	a := 1 + u2sq/16384*(4096+u2sq*(-768+u2sq*(320-175*u2sq)))
	b := u2sq / 1024 * (256 + u2sq*(-128+u2sq*(74-47*u2sq)))
	deltaSigma := b * sinSigma * (cos2SigmaM + b/4*
		(cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)-
			b/6*cos2SigmaM*(-3+4*sinSigma*sinSigma)*(-3+4*cos2SigmaM*cos2SigmaM)))
	return minor * a * (sigma - deltaSigma)
}

// haversine is the spherical great-circle distance on a sphere of
// radius r [m].
func haversine(r, lon1, lat1, lon2, lat2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLon := radians(lon2 - lon1)
	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + cosDeg(lat1)*cosDeg(lat2)*sinLon*sinLon
	return 2 * r * math.Asin(math.Min(1, math.Sqrt(h)))
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func cosDeg(deg float64) float64 { return math.Cos(radians(deg)) }

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

// Package roms provides numerical diagnostics for output from ocean
// circulation models that use terrain-following (sigma or S) vertical
// coordinates, such as the Regional Ocean Modeling System (ROMS).
//
// Model fields are held in dense N-dimensional arrays
// (github.com/ctessum/sparse.DenseArray) with axes ordered
// (time, vertical level, horizontal...), trailing axis varying fastest.
// All functions are pure: they allocate fresh output arrays and hold no
// state between calls.
package roms

import "fmt"

// A ShapeError reports arrays whose shapes or ranks are incompatible
// with the requested operation.
type ShapeError struct {
	Op         string
	Want, Have []int
}

func (e ShapeError) Error() string {
	return fmt.Sprintf("roms: %s: incompatible array shapes %v and %v", e.Op, e.Want, e.Have)
}

// A DimensionMismatchError reports coordinate-array or scale-factor
// counts that do not match the dimensionality of the target point.
type DimensionMismatchError struct {
	Op         string
	Want, Have int
}

func (e DimensionMismatchError) Error() string {
	return fmt.Sprintf("roms: %s: want %d dimensions but have %d", e.Op, e.Want, e.Have)
}

// An UnsupportedTypeError reports a dataset input that cannot be
// resolved to a usable NetCDF source.
type UnsupportedTypeError struct {
	Op    string
	Value string
}

func (e UnsupportedTypeError) Error() string {
	return fmt.Sprintf("roms: %s: unsupported input %q", e.Op, e.Value)
}

// An OutOfRangeWarning is returned by IsoSlice, together with a fully
// masked result, when the iso-value lies outside the range of the
// property field everywhere. It is advisory: the accompanying result is
// still valid (all elements NaN).
type OutOfRangeWarning struct {
	IsoVal   float64
	Min, Max float64
}

func (w OutOfRangeWarning) Error() string {
	return fmt.Sprintf("roms: property==%g out of range (%g, %g)", w.IsoVal, w.Min, w.Max)
}

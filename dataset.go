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
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
)

// A Dataset provides read access to the named variables and dimensions
// of a model history file or a set of such files.
//
// There are three implementations: a single NetCDF file (OpenDataset),
// a set of files concatenated along the record dimension (OpenFileSet),
// and an already-open NetCDF handle (HandleDataset).
type Dataset interface {
	// Variable returns the complete array for the named variable,
	// widened to float64 regardless of its on-disk element type.
	Variable(name string) (*sparse.DenseArray, error)

	// VariableAt returns the array for the named variable at a single
	// index of its leading (record) dimension; the returned array does
	// not include the record axis.
	VariableAt(name string, record int) (*sparse.DenseArray, error)

	// DimLen returns the length of the named dimension. For the record
	// dimension it is the total record count, summed over all files
	// for a file set.
	DimLen(name string) (int, error)

	Close() error
}

// OpenDataset opens the NetCDF file at path. If path contains glob
// metacharacters it is expanded and the matches are opened as a file
// set, mirroring the wildcard behavior of multi-file model output.
func OpenDataset(path string) (Dataset, error) {
	if strings.ContainsAny(path, "*?[") {
		matches, err := filepath.Glob(path)
		if err != nil {
			return nil, fmt.Errorf("roms: open dataset %s: %v", path, err)
		}
		if len(matches) == 0 {
			return nil, UnsupportedTypeError{Op: "open dataset", Value: path}
		}
		return OpenFileSet(matches)
	}
	return openFile(path)
}

// OpenFileSet opens the given NetCDF files, sorted by name, as a single
// dataset concatenated along the record dimension. Non-record variables
// and fixed dimensions are taken from the first file.
func OpenFileSet(paths []string) (Dataset, error) {
	if len(paths) == 0 {
		return nil, UnsupportedTypeError{Op: "open file set", Value: "empty file list"}
	}
	sorted := make([]string, len(paths))
	copy(sorted, paths)
	sort.Strings(sorted)
	fs := &fileSetDataset{}
	for _, p := range sorted {
		fd, err := openFile(p)
		if err != nil {
			fs.Close()
			return nil, err
		}
		nrec, err := fd.records()
		if err != nil {
			fs.Close()
			return nil, err
		}
		fs.files = append(fs.files, fd)
		fs.recs = append(fs.recs, nrec)
	}
	return fs, nil
}

// HandleDataset wraps an already-open NetCDF handle as a Dataset.
// Closing the returned Dataset does not close the underlying storage.
//
// Because the handle carries no record count, record variables and the
// record dimension are unavailable through the wrapper: Variable and
// DimLen return an error for them, though VariableAt still reads a
// single record. Use OpenDataset when record access is needed.
func HandleDataset(f *cdf.File) Dataset {
	return &fileDataset{f: f}
}

// FirstVariable returns the array for the first of the candidate
// variable names present in ds. Model output schemas renamed several
// variables between versions (sc_r became s_rho, sc_w became s_w), so
// callers pass the candidates in preference order.
func FirstVariable(ds Dataset, names ...string) (*sparse.DenseArray, error) {
	var firstErr error
	for _, name := range names {
		a, err := ds.Variable(name)
		if err == nil {
			return a, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, fmt.Errorf("roms: no variable named any of %v: %v", names, firstErr)
}

// firstDimLen is the dimension-name analogue of FirstVariable.
func firstDimLen(ds Dataset, names ...string) (int, error) {
	var firstErr error
	for _, name := range names {
		n, err := ds.DimLen(name)
		if err == nil {
			return n, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return 0, fmt.Errorf("roms: no dimension named any of %v: %v", names, firstErr)
}

// fileDataset is a Dataset backed by one NetCDF file.
type fileDataset struct {
	f  *cdf.File
	rw *os.File // nil when wrapping a caller-owned handle
}

func openFile(path string) (*fileDataset, error) {
	rw, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("roms: open dataset: %v", err)
	}
	f, err := cdf.Open(rw)
	if err != nil {
		rw.Close()
		return nil, fmt.Errorf("roms: open dataset %s: %v", path, err)
	}
	return &fileDataset{f: f, rw: rw}, nil
}

func (d *fileDataset) Variable(name string) (*sparse.DenseArray, error) {
	if !d.hasVariable(name) {
		return nil, fmt.Errorf("roms: dataset: variable %s not in file", name)
	}
	dims := d.f.Header.Lengths(name)
	if len(dims) > 0 && dims[0] == 0 { // record variable
		nrec, err := d.records()
		if err != nil {
			return nil, err
		}
		dims = append([]int{nrec}, dims[1:]...)
		start := make([]int, len(dims))
		end := make([]int, len(dims))
		copy(end, dims)
		return d.read(name, start, end, dims)
	}
	if len(dims) == 0 { // scalar variable
		dims = []int{1}
	}
	return d.read(name, nil, nil, dims)
}

func (d *fileDataset) VariableAt(name string, record int) (*sparse.DenseArray, error) {
	if !d.hasVariable(name) {
		return nil, fmt.Errorf("roms: dataset: variable %s not in file", name)
	}
	dims := d.f.Header.Lengths(name)
	if len(dims) == 0 {
		return nil, fmt.Errorf("roms: dataset: variable %s has no record dimension", name)
	}
	start := make([]int, len(dims))
	end := make([]int, len(dims))
	copy(end, dims)
	start[0], end[0] = record, record+1
	return d.read(name, start, end, dims[1:])
}

func (d *fileDataset) DimLen(name string) (int, error) {
	length, isRecord, err := d.dimLen(name)
	if err != nil {
		return 0, err
	}
	if isRecord {
		return d.records()
	}
	return length, nil
}

// dimLen finds the named dimension by scanning the dimensions of each
// variable, reporting whether it is the record (unlimited) dimension.
func (d *fileDataset) dimLen(name string) (length int, isRecord bool, err error) {
	for _, v := range d.f.Header.Variables() {
		lengths := d.f.Header.Lengths(v)
		for i, dim := range d.f.Header.Dimensions(v) {
			if dim == name {
				return lengths[i], lengths[i] == 0, nil
			}
		}
	}
	return 0, false, fmt.Errorf("roms: dataset: dimension %s not in file", name)
}

func (d *fileDataset) Close() error {
	if d.rw == nil {
		return nil
	}
	return d.rw.Close()
}

func (d *fileDataset) hasVariable(name string) bool {
	for _, v := range d.f.Header.Variables() {
		if v == name {
			return true
		}
	}
	return false
}

// read reads the hyperslab [start, end) of the named variable and
// returns it shaped as dims.
func (d *fileDataset) read(name string, start, end, dims []int) (*sparse.DenseArray, error) {
	nread := 1
	for _, dim := range dims {
		nread *= dim
	}
	r := d.f.Reader(name, start, end)
	buf := r.Zero(nread)
	if _, err := r.Read(buf); err != nil {
		return nil, fmt.Errorf("roms: dataset: reading variable %s: %v", name, err)
	}
	data := sparse.ZerosDense(dims...)
	if err := widen(buf, data.Elements); err != nil {
		return nil, fmt.Errorf("roms: dataset: variable %s: %v", name, err)
	}
	return data, nil
}

// records returns the length of the record dimension, stored as the
// numrecs field at byte offset 4 of a classic-format NetCDF header.
func (d *fileDataset) records() (int, error) {
	if d.rw == nil {
		return 0, fmt.Errorf("roms: dataset: record count unavailable for wrapped handle")
	}
	var buf [4]byte
	if _, err := d.rw.ReadAt(buf[:], 4); err != nil {
		return 0, fmt.Errorf("roms: dataset: reading record count: %v", err)
	}
	n := int32(buf[0])<<24 | int32(buf[1])<<16 | int32(buf[2])<<8 | int32(buf[3])
	if n < 0 {
		return 0, fmt.Errorf("roms: dataset: indeterminate record count")
	}
	return int(n), nil
}

// widen converts a typed buffer read from a NetCDF file into float64
// elements. Grid files store doubles; history files commonly store
// packed floats or integers.
func widen(buf interface{}, out []float64) error {
	switch b := buf.(type) {
	case []float64:
		copy(out, b)
	case []float32:
		for i, v := range b {
			out[i] = float64(v)
		}
	case []int32:
		for i, v := range b {
			out[i] = float64(v)
		}
	case []int16:
		for i, v := range b {
			out[i] = float64(v)
		}
	case []uint8:
		for i, v := range b {
			out[i] = float64(v)
		}
	default:
		return fmt.Errorf("unsupported element type %T", buf)
	}
	return nil
}

// fileSetDataset concatenates several files along the record dimension.
type fileSetDataset struct {
	files []*fileDataset
	recs  []int
}

func (d *fileSetDataset) Variable(name string) (*sparse.DenseArray, error) {
	first := d.files[0]
	if !first.hasVariable(name) {
		return nil, fmt.Errorf("roms: dataset: variable %s not in file", name)
	}
	dims := first.f.Header.Lengths(name)
	if len(dims) == 0 || dims[0] != 0 {
		// Non-record variables are the same in every file.
		return first.Variable(name)
	}
	total := 0
	for _, r := range d.recs {
		total += r
	}
	shape := append([]int{total}, dims[1:]...)
	out := sparse.ZerosDense(shape...)
	offset := 0
	for _, f := range d.files {
		a, err := f.Variable(name)
		if err != nil {
			return nil, err
		}
		copy(out.Elements[offset:], a.Elements)
		offset += len(a.Elements)
	}
	return out, nil
}

func (d *fileSetDataset) VariableAt(name string, record int) (*sparse.DenseArray, error) {
	n := record
	total := 0
	for i, nrec := range d.recs {
		total += nrec
		if n < nrec {
			return d.files[i].VariableAt(name, n)
		}
		n -= nrec
	}
	return nil, fmt.Errorf("roms: dataset: record %d out of range (%d records)", record, total)
}

func (d *fileSetDataset) DimLen(name string) (int, error) {
	length, isRecord, err := d.files[0].dimLen(name)
	if err != nil {
		return 0, err
	}
	if isRecord {
		total := 0
		for _, r := range d.recs {
			total += r
		}
		return total, nil
	}
	return length, nil
}

func (d *fileSetDataset) Close() error {
	var firstErr error
	for _, f := range d.files {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

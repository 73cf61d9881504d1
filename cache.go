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
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/ctessum/requestcache"
	"github.com/ctessum/sparse"
)

// A CachedDataset wraps a Dataset with an in-memory deduplicating
// cache of variable reads. Post-processing sessions tend to request
// the same staggered-grid variables once per diagnostic, and file-set
// reads are comparatively expensive. Results are shared, so callers
// must copy an array before modifying it.
type CachedDataset struct {
	ds Dataset

	// CacheSize is the maximum number of arrays to hold in memory.
	CacheSize int

	init  sync.Once
	cache *requestcache.Cache
}

// NewCachedDataset creates a CachedDataset holding up to size arrays.
func NewCachedDataset(ds Dataset, size int) *CachedDataset {
	return &CachedDataset{ds: ds, CacheSize: size}
}

type variableRequest struct {
	name   string
	record int // -1 for a full read
}

func (c *CachedDataset) initCache() {
	c.init.Do(func() {
		c.cache = requestcache.NewCache(func(ctx context.Context, request interface{}) (interface{}, error) {
			r := request.(variableRequest)
			if r.record < 0 {
				return c.ds.Variable(r.name)
			}
			return c.ds.VariableAt(r.name, r.record)
		}, runtime.GOMAXPROCS(-1),
			requestcache.Deduplicate(), requestcache.Memory(c.CacheSize))
	})
}

func (c *CachedDataset) get(name string, record int) (*sparse.DenseArray, error) {
	c.initCache()
	req := c.cache.NewRequest(context.TODO(),
		variableRequest{name: name, record: record},
		fmt.Sprintf("%s_%d", name, record))
	result, err := req.Result()
	if err != nil {
		return nil, err
	}
	return result.(*sparse.DenseArray), nil
}

// Variable implements the Dataset interface.
func (c *CachedDataset) Variable(name string) (*sparse.DenseArray, error) {
	return c.get(name, -1)
}

// VariableAt implements the Dataset interface.
func (c *CachedDataset) VariableAt(name string, record int) (*sparse.DenseArray, error) {
	if record < 0 {
		return nil, fmt.Errorf("roms: dataset: negative record index %d", record)
	}
	return c.get(name, record)
}

// DimLen implements the Dataset interface.
func (c *CachedDataset) DimLen(name string) (int, error) {
	return c.ds.DimLen(name)
}

// Close implements the Dataset interface. Cached arrays remain valid
// after closing.
func (c *CachedDataset) Close() error {
	return c.ds.Close()
}

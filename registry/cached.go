// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/pbaasd/currency"
)

// cache sweep period
const cleanupInterval = 10 * time.Minute

// Cached - a registry that remembers the answers of a slower one
//
// only successful lookups are cached
type Cached struct {
	source Registry
	cache  *cache.Cache
}

// NewCached - wrap a registry, entries expire after the given time
func NewCached(source Registry, expiration time.Duration) *Cached {
	return &Cached{
		source: source,
		cache:  cache.New(expiration, cleanupInterval),
	}
}

// Definition - look up one currency
func (c *Cached) Definition(id currency.ID) (*Definition, error) {
	key := string(id[:])
	if v, found := c.cache.Get(key); found {
		return v.(*Definition), nil
	}
	d, err := c.source.Definition(id)
	if nil != err {
		return nil, err
	}
	c.cache.Set(key, d, cache.DefaultExpiration)
	return d, nil
}

// Flush - forget everything
func (c *Cached) Flush() {
	c.cache.Flush()
}

// Count - number of cached definitions
func (c *Cached) Count() int {
	return c.cache.ItemCount()
}

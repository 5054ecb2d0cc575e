// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	cache "github.com/patrickmn/go-cache"
)

// Cache - writes staged by the open transaction, keyed by the
// prefixed database key
type Cache interface {
	Get(string) ([]byte, bool)
	Set(int, string, []byte)
	Clear()
	Len() int
}

// kinds of staged write
const (
	dbPut = iota
	dbDelete
)

type stagedWrite struct {
	deleted bool
	value   []byte
}

type stagingCache struct {
	writes *cache.Cache
}

// staged writes must survive until commit or abort, so nothing
// expires and no janitor runs
func newCache() Cache {
	return &stagingCache{
		writes: cache.New(cache.NoExpiration, 0),
	}
}

// Get - found is true for any staged write; a staged delete has a
// nil value
func (s *stagingCache) Get(key string) ([]byte, bool) {
	item, found := s.writes.Get(key)
	if !found {
		return nil, false
	}
	w := item.(stagedWrite)
	if w.deleted {
		return nil, true
	}
	return w.value, true
}

func (s *stagingCache) Set(kind int, key string, value []byte) {
	w := stagedWrite{
		deleted: dbDelete == kind,
	}
	if !w.deleted {
		w.value = value
	}
	s.writes.Set(key, w, cache.NoExpiration)
}

func (s *stagingCache) Clear() {
	s.writes.Flush()
}

// Len - number of distinct keys staged
func (s *stagingCache) Len() int {
	return s.writes.ItemCount()
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/pbaasd/fault"
)

// FetchCursor - resumable forward scan over committed pool entries
type FetchCursor struct {
	pool *PoolHandle
	span util.Range
}

// NewFetchCursor - a cursor over the whole pool
func (p *PoolHandle) NewFetchCursor() *FetchCursor {
	return &FetchCursor{
		pool: p,
		span: util.Range{Start: []byte{p.prefix}, Limit: p.limit},
	}
}

// NewFetchCursorWithPrefix - a cursor over keys beginning with keyPrefix
func (p *PoolHandle) NewFetchCursorWithPrefix(keyPrefix []byte) *FetchCursor {
	return &FetchCursor{
		pool: p,
		span: *util.BytesPrefix(p.prefixKey(keyPrefix)),
	}
}

// Seek - restart the scan at key
func (cursor *FetchCursor) Seek(key []byte) *FetchCursor {
	cursor.span.Start = cursor.pool.prefixKey(key)
	return cursor
}

// Fetch - up to count elements after the previous Fetch
func (cursor *FetchCursor) Fetch(count int) ([]Element, error) {
	if nil == cursor {
		return nil, fault.ErrInvalidCursor
	}
	if count <= 0 {
		return nil, fault.ErrInvalidCount
	}

	poolData.RLock()
	defer poolData.RUnlock()

	results := make([]Element, 0, count)
	err := cursor.walk(func(e Element) (bool, error) {
		results = append(results, e)
		return len(results) < count, nil
	})
	if n := len(results); n > 0 {
		// smallest key strictly greater than the last one returned
		cursor.span.Start = append(cursor.pool.prefixKey(results[n-1].Key), 0x00)
	}
	return results, err
}

// Map - apply f to each element in turn, stopping at the first error
//
// f may read the pools, so no lock is held here
func (cursor *FetchCursor) Map(f func(key []byte, value []byte) error) error {
	if nil == cursor {
		return fault.ErrInvalidCursor
	}
	return cursor.walk(func(e Element) (bool, error) {
		if err := f(e.Key, e.Value); nil != err {
			return false, err
		}
		return true, nil
	})
}

func (cursor *FetchCursor) walk(visit func(Element) (bool, error)) error {
	if nil == cursor.pool.dataAccess {
		return nil
	}

	iter := cursor.pool.dataAccess.Iterator(&cursor.span)
	defer iter.Release()

	for iter.Next() {
		more, err := visit(elementAt(iter))
		if nil != err {
			return err
		}
		if !more {
			break
		}
	}
	return iter.Error()
}

// copy out the current entry without its pool prefix; the iterator's
// slices are reused by the next move
func elementAt(iter iterator.Iterator) Element {
	key := iter.Key()
	value := iter.Value()
	e := Element{
		Key:   make([]byte, len(key)-1),
		Value: make([]byte, len(value)),
	}
	copy(e.Key, key[1:])
	copy(e.Value, value)
	return e
}

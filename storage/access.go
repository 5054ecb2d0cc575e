// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/pbaasd/fault"
)

// Access - the single write batch over the ledger database
//
// reads see the batch's staged writes first; iterators only see
// committed data
type Access interface {
	Abort()
	Begin() error
	Commit() error
	Delete([]byte)
	Get([]byte) ([]byte, error)
	Has([]byte) (bool, error)
	InUse() bool
	Iterator(*ldb_util.Range) iterator.Iterator
	Pending() int
	Put([]byte, []byte)
}

type batchAccess struct {
	sync.Mutex
	open   bool
	db     *leveldb.DB
	batch  *leveldb.Batch
	staged Cache
}

func newAccess(db *leveldb.DB, staged Cache) Access {
	return &batchAccess{
		db:     db,
		batch:  new(leveldb.Batch),
		staged: staged,
	}
}

func (b *batchAccess) Begin() error {
	b.Lock()
	defer b.Unlock()

	if b.open {
		return fault.ErrTransactionInUse
	}
	b.open = true
	return nil
}

func (b *batchAccess) InUse() bool {
	b.Lock()
	defer b.Unlock()
	return b.open
}

// Pending - number of keys written since Begin
func (b *batchAccess) Pending() int {
	return b.staged.Len()
}

func (b *batchAccess) Put(key []byte, value []byte) {
	v := make([]byte, len(value))
	copy(v, value)
	b.staged.Set(dbPut, string(key), v)
	b.batch.Put(key, v)
}

func (b *batchAccess) Delete(key []byte) {
	b.staged.Set(dbDelete, string(key), nil)
	b.batch.Delete(key)
}

// Commit - an empty batch is not written
func (b *batchAccess) Commit() error {
	b.Lock()
	defer b.Unlock()

	var err error
	if b.batch.Len() > 0 {
		err = b.db.Write(b.batch, nil)
	}
	b.release()
	return err
}

func (b *batchAccess) Abort() {
	b.Lock()
	defer b.Unlock()
	b.release()
}

// caller holds the lock
func (b *batchAccess) release() {
	b.batch.Reset()
	b.staged.Clear()
	b.open = false
}

func (b *batchAccess) Get(key []byte) ([]byte, error) {
	if value, staged := b.staged.Get(string(key)); staged {
		if nil == value {
			return nil, leveldb.ErrNotFound
		}
		return value, nil
	}
	return b.db.Get(key, nil)
}

func (b *batchAccess) Has(key []byte) (bool, error) {
	if value, staged := b.staged.Get(string(key)); staged {
		return nil != value, nil
	}
	return b.db.Has(key, nil)
}

func (b *batchAccess) Iterator(searchRange *ldb_util.Range) iterator.Iterator {
	return b.db.NewIterator(searchRange, nil)
}

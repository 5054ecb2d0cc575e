// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

// Transaction - a batch of writes applied atomically on commit
type Transaction interface {
	Abort()
	Begin() error
	Commit() error
	Delete(*PoolHandle, []byte)
	Get(*PoolHandle, []byte) []byte
	Has(*PoolHandle, []byte) bool
	InUse() bool
	Put(*PoolHandle, []byte, []byte)
}

// TransactionImpl - transaction over the single database access
type TransactionImpl struct {
	access Access
}

func newTransaction(access Access) Transaction {
	return &TransactionImpl{
		access: access,
	}
}

func (t *TransactionImpl) Begin() error {
	return t.access.Begin()
}

func (t *TransactionImpl) Put(handle *PoolHandle, key []byte, value []byte) {
	handle.put(key, value)
}

func (t *TransactionImpl) Delete(handle *PoolHandle, key []byte) {
	handle.remove(key)
}

// Get - pending writes in this batch are visible
func (t *TransactionImpl) Get(handle *PoolHandle, key []byte) []byte {
	return handle.Get(key)
}

func (t *TransactionImpl) Has(handle *PoolHandle, key []byte) bool {
	return handle.Has(key)
}

func (t *TransactionImpl) InUse() bool {
	return t.access.InUse()
}

func (t *TransactionImpl) Commit() error {
	return t.access.Commit()
}

func (t *TransactionImpl) Abort() {
	t.access.Abort()
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/bitmark-inc/pbaasd/crosschain"
	"github.com/bitmark-inc/pbaasd/fault"
	"github.com/bitmark-inc/pbaasd/merkle"
	"github.com/bitmark-inc/pbaasd/transactionrecord"
)

// txId ++ vout
func settledKey(ref merkle.UTXORef) []byte {
	key := make([]byte, merkle.DigestLength+4)
	copy(key, ref.Hash[:])
	binary.BigEndian.PutUint32(key[merkle.DigestLength:], ref.N)
	return key
}

// AddSettled - mark an export as imported in the transaction
func AddSettled(trx Transaction, ref merkle.UTXORef, imp *crosschain.Import) error {
	if nil == imp {
		return fault.ErrInvalidImport
	}
	packed, err := transactionrecord.Pack(imp)
	if nil != err {
		return err
	}
	key := settledKey(ref)
	if trx.Has(Pool.Settled, key) {
		return fault.ErrAlreadySettled
	}
	trx.Put(Pool.Settled, key, packed)
	return nil
}

// IsSettled - true if an import of the export has been committed
func IsSettled(ref merkle.UTXORef) bool {
	return Pool.Settled.Has(settledKey(ref))
}

// SettledImport - the import that settled an export
func SettledImport(ref merkle.UTXORef) (*crosschain.Import, error) {
	buffer := Pool.Settled.Get(settledKey(ref))
	if nil == buffer {
		return nil, fault.ErrExportNotSettled
	}
	record, err := transactionrecord.Packed(buffer).Unpack()
	if nil != err {
		return nil, err
	}
	imp, ok := record.(*crosschain.Import)
	if !ok {
		return nil, fault.ErrNotTransactionPack
	}
	return imp, nil
}

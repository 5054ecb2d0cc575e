// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/bitmark-inc/pbaasd/currency"
	"github.com/bitmark-inc/pbaasd/fault"
	"github.com/bitmark-inc/pbaasd/registry"
	"github.com/bitmark-inc/pbaasd/transactionrecord"
)

// AddDefinition - store a currency definition in the transaction
func AddDefinition(trx Transaction, d *registry.Definition) error {
	if nil == d {
		return fault.ErrInvalidDefinition
	}
	id, err := d.ID()
	if nil != err {
		return err
	}
	packed, err := transactionrecord.Pack(d)
	if nil != err {
		return err
	}
	if trx.Has(Pool.Definitions, id[:]) {
		return fault.ErrDuplicateCurrency
	}
	trx.Put(Pool.Definitions, id[:], packed)
	return nil
}

// Registry - currency definitions held in the database
type Registry struct{}

// Definition - look up a committed definition
func (Registry) Definition(id currency.ID) (*registry.Definition, error) {
	buffer := Pool.Definitions.Get(id[:])
	if nil == buffer {
		return nil, fault.ErrCurrencyNotFound
	}
	record, err := transactionrecord.Packed(buffer).Unpack()
	if nil != err {
		return nil, err
	}
	d, ok := record.(*registry.Definition)
	if !ok {
		return nil, fault.ErrNotTransactionPack
	}
	return d, nil
}

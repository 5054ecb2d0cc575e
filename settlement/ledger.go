// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package settlement

import (
	"github.com/bitmark-inc/pbaasd/crosschain"
	"github.com/bitmark-inc/pbaasd/currency"
	"github.com/bitmark-inc/pbaasd/currencystate"
	"github.com/bitmark-inc/pbaasd/merkle"
	"github.com/bitmark-inc/pbaasd/notarization"
	"github.com/bitmark-inc/pbaasd/registry"
	"github.com/bitmark-inc/pbaasd/storage"
)

// Ledger - persistent state read and written by settlement
type Ledger interface {
	AddDefinition(*registry.Definition) error
	AddNotarization(*notarization.Notarization) error
	CurrencyState(currency.ID) (*currencystate.CurrencyState, error)
	IsSettled(merkle.UTXORef) bool
	Settle(merkle.UTXORef, *crosschain.Import) error
}

// Database - the ledger held in the storage pools
//
// storage must be initialised first
type Database struct{}

// AddDefinition - store a currency definition
func (Database) AddDefinition(d *registry.Definition) error {
	return write(func(trx storage.Transaction) error {
		return storage.AddDefinition(trx, d)
	})
}

// AddNotarization - store an accepted notarization
func (Database) AddNotarization(n *notarization.Notarization) error {
	return write(func(trx storage.Transaction) error {
		return storage.AddNotarization(trx, n)
	})
}

// CurrencyState - state from the latest stored notarization
func (Database) CurrencyState(id currency.ID) (*currencystate.CurrencyState, error) {
	return storage.LatestCurrencyState(id)
}

// IsSettled - true if the export has been imported
func (Database) IsSettled(ref merkle.UTXORef) bool {
	return storage.IsSettled(ref)
}

// Settle - record the import settling an export
func (Database) Settle(ref merkle.UTXORef, imp *crosschain.Import) error {
	return write(func(trx storage.Transaction) error {
		return storage.AddSettled(trx, ref, imp)
	})
}

func write(f func(trx storage.Transaction) error) error {
	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}
	err = f(trx)
	if nil != err {
		trx.Abort()
		return err
	}
	return trx.Commit()
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/bitmark-inc/pbaasd/currency"
	"github.com/bitmark-inc/pbaasd/currencystate"
	"github.com/bitmark-inc/pbaasd/fault"
	"github.com/bitmark-inc/pbaasd/notarization"
	"github.com/bitmark-inc/pbaasd/transactionrecord"
)

// currencyID ++ height
func notarizationKey(id currency.ID, height uint32) []byte {
	key := make([]byte, currency.IDLength+4)
	copy(key, id[:])
	binary.BigEndian.PutUint32(key[currency.IDLength:], height)
	return key
}

// AddNotarization - record an accepted notarization in the transaction
//
// only one notarization is kept for each currency and height
func AddNotarization(trx Transaction, n *notarization.Notarization) error {
	if nil == n {
		return fault.ErrInvalidNotarization
	}
	packed, err := transactionrecord.Pack(n)
	if nil != err {
		return err
	}
	key := notarizationKey(n.CurrencyID, n.NotarizationHeight)
	if trx.Has(Pool.Notarizations, key) {
		return fault.ErrNotarizationExists
	}
	trx.Put(Pool.Notarizations, key, packed)
	return nil
}

// NotarizationAt - the notarization recorded for a currency at a height
func NotarizationAt(id currency.ID, height uint32) (*notarization.Notarization, error) {
	buffer := Pool.Notarizations.Get(notarizationKey(id, height))
	if nil == buffer {
		return nil, fault.ErrNotarizationNotFound
	}
	return unpackNotarization(buffer)
}

// LatestNotarization - the highest committed notarization of a currency
func LatestNotarization(id currency.ID) (*notarization.Notarization, error) {
	element, found := Pool.Notarizations.LastElementWithPrefix(id[:])
	if !found {
		return nil, fault.ErrNotarizationNotFound
	}
	return unpackNotarization(element.Value)
}

// Notarizations - committed history of a currency, lowest height first
func Notarizations(id currency.ID) ([]*notarization.Notarization, error) {
	history := []*notarization.Notarization{}
	cursor := Pool.Notarizations.NewFetchCursorWithPrefix(id[:])
	err := cursor.Map(func(key []byte, value []byte) error {
		n, err := unpackNotarization(value)
		if nil != err {
			return err
		}
		history = append(history, n)
		return nil
	})
	if nil != err {
		return nil, err
	}
	return history, nil
}

// LatestCurrencyState - the currency state of the highest committed
// notarization of a currency
func LatestCurrencyState(id currency.ID) (*currencystate.CurrencyState, error) {
	n, err := LatestNotarization(id)
	if nil != err {
		return nil, err
	}
	if !n.CurrencyState.IsValid() {
		return nil, fault.ErrCurrencyNotFound
	}
	state := n.CurrencyState.Clone()
	return &state, nil
}

func unpackNotarization(buffer []byte) (*notarization.Notarization, error) {
	record, err := transactionrecord.Packed(buffer).Unpack()
	if nil != err {
		return nil, err
	}
	n, ok := record.(*notarization.Notarization)
	if !ok {
		return nil, fault.ErrNotTransactionPack
	}
	return n, nil
}

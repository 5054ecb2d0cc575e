// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"github.com/bitmark-inc/pbaasd/crosschain"
	"github.com/bitmark-inc/pbaasd/currencystate"
	"github.com/bitmark-inc/pbaasd/fault"
	"github.com/bitmark-inc/pbaasd/notarization"
	"github.com/bitmark-inc/pbaasd/registry"
	"github.com/bitmark-inc/pbaasd/transfer"
	"github.com/bitmark-inc/pbaasd/util"
)

// Unpack - turn a byte slice into a record
//
// the whole slice must be exactly one record; decoding is structural
// only, so the caller still runs Validate on the result
//
// must cast result to correct type
//
// e.g.
//   switch r := result.(type) {
//   case *notarization.Notarization:
func (record Packed) Unpack() (r Record, e error) {

	defer func() {
		if x := recover(); nil != x {
			r = nil
			e = fault.ErrNotTransactionPack
		}
	}()

	u := util.NewUnpacker(record)
	tag := TagType(u.Uint64())
	if nil != u.Err() {
		return nil, fault.ErrNotTransactionPack
	}

	switch tag {
	case CurrencyStateTag:
		s := currencystate.ReadCurrencyState(u)
		r = &s

	case CoinbaseCurrencyStateTag:
		c := currencystate.ReadCoinbaseCurrencyState(u)
		r = &c

	case NotarizationTag:
		n := notarization.Read(u)
		r = &n

	case ReserveTransferTag:
		t := transfer.Read(u)
		r = &t

	case CrossChainExportTag:
		x := crosschain.ReadExport(u)
		r = &x

	case CrossChainImportTag:
		i := crosschain.ReadImport(u)
		r = &i

	case CurrencyDefinitionTag:
		d := registry.ReadDefinition(u)
		r = &d

	default:
		return nil, fault.ErrInvalidTag
	}

	if err := u.Finish(); nil != err {
		return nil, err
	}
	return r, nil
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package crosschain

import (
	"github.com/bitmark-inc/pbaasd/currency"
	"github.com/bitmark-inc/pbaasd/currencystate"
	"github.com/bitmark-inc/pbaasd/fault"
	"github.com/bitmark-inc/pbaasd/merkle"
	"github.com/bitmark-inc/pbaasd/transfer"
)

// Pricer - the prices of the import currency against its reserves
//
// *currencystate.CurrencyState satisfies this
type Pricer interface {
	PricedCurrency() currency.ID
	ReserveIndex(currency.ID) int
	PriceInReserve(int, bool) (int64, error)
}

// Reconcile - check that an import settles exactly the export found
// at ref
//
// the export must be complete, i.e. merged with its supplementals
//
// the import must be for the export's destination currency and come
// from its source system, so the committed transfers are priced by
// the currency they were sent to
//
// the disbursement must equal the batch total less fees and burns,
// with every conversion re-priced against the import currency
func Reconcile(ref merkle.UTXORef, exp *Export, imp *Import, pricer Pricer) error {
	if nil == exp || nil == imp {
		return fault.ErrInvalidImport
	}
	if exp.IsSupplemental() {
		return fault.ErrInvalidExport
	}
	if err := exp.Validate(); nil != err {
		return err
	}
	if err := imp.Validate(); nil != err {
		return err
	}
	if imp.ExportRef() != ref {
		return fault.ErrExportReferenceMismatch
	}
	if imp.HashTransfers != exp.HashTransfers {
		return fault.ErrTransferHashMismatch
	}
	if imp.ImportCurrencyID != exp.DestCurrencyID {
		return fault.ErrImportCurrencyMismatch
	}
	if imp.SourceSystemID != exp.SourceSystemID {
		return fault.ErrSourceSystemMismatch
	}
	if !imp.ImportValue.Equal(exp.TotalAmounts) {
		return fault.ErrImportValueMismatch
	}

	expected, err := exp.TotalAmounts.Sub(exp.TotalFees)
	if nil != err {
		return err
	}
	expected, err = expected.Sub(exp.TotalBurned)
	if nil != err {
		return err
	}

	for i := range exp.Transfers {
		expected, err = reprice(expected, &exp.Transfers[i], imp.ImportCurrencyID, pricer)
		if nil != err {
			return err
		}
	}

	if expected.HasNegative() {
		return fault.ErrConservationViolation
	}
	if !imp.TotalReserveOutMap.Equal(expected) {
		return fault.ErrConservationViolation
	}
	return nil
}

// apply one transfer's conversion to the expected disbursement
func reprice(expected currency.ValueMap, r *transfer.ReserveTransfer, importID currency.ID, pricer Pricer) (currency.ValueMap, error) {
	source, amount := r.FirstValue()

	if r.IsMint() {
		if source != importID || r.IsConversion() || r.IsPreConversion() {
			return nil, fault.ErrConservationViolation
		}
		return expected, nil
	}
	if r.IsBurn() || r.IsRefund() {
		return expected, nil
	}
	if !r.IsConversion() && !r.IsPreConversion() {
		return expected, nil
	}
	if nil == pricer {
		return nil, fault.ErrMissingPricer
	}
	if pricer.PricedCurrency() != importID {
		return nil, fault.ErrUnsupportedConversion
	}

	target := r.FinalDestCurrency()
	converted, err := convert(amount, source, target, importID, pricer)
	if nil != err {
		return nil, err
	}
	expected, err = expected.Sub(currency.ValueMap{source: amount})
	if nil != err {
		return nil, err
	}
	return expected.Add(currency.ValueMap{target: converted})
}

// reserve to native uses the rounded up price and native to reserve
// the rounded down one, so conversion never pays out more than it takes
func convert(amount int64, source currency.ID, target currency.ID, native currency.ID, pricer Pricer) (int64, error) {
	switch {
	case source == target:
		return 0, fault.ErrUnsupportedConversion

	case target == native:
		return toNative(amount, source, pricer)

	case source == native:
		return fromNative(amount, target, pricer)

	default:
		n, err := toNative(amount, source, pricer)
		if nil != err {
			return 0, err
		}
		return fromNative(n, target, pricer)
	}
}

func toNative(amount int64, reserve currency.ID, pricer Pricer) (int64, error) {
	i := pricer.ReserveIndex(reserve)
	if i < 0 {
		return 0, fault.ErrReserveNotFound
	}
	price, err := pricer.PriceInReserve(i, true)
	if nil != err {
		return 0, err
	}
	return currencystate.ReserveToNativeRaw(amount, price)
}

func fromNative(amount int64, reserve currency.ID, pricer Pricer) (int64, error) {
	i := pricer.ReserveIndex(reserve)
	if i < 0 {
		return 0, fault.ErrReserveNotFound
	}
	price, err := pricer.PriceInReserve(i, false)
	if nil != err {
		return 0, err
	}
	return currencystate.NativeToReserveRaw(amount, price)
}

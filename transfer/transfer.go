// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transfer

import (
	"github.com/bitmark-inc/pbaasd/currency"
	"github.com/bitmark-inc/pbaasd/destination"
	"github.com/bitmark-inc/pbaasd/fault"
)

// Version - current record version
const Version = 1

// Flags - reserve transfer bit set
type Flags uint32

// possible flag bits
const (
	FlagValid            Flags = 0x0001
	FlagConvert          Flags = 0x0002
	FlagPreConvert       Flags = 0x0004
	FlagFeeOutput        Flags = 0x0008
	FlagDoubleSend       Flags = 0x0010
	FlagMint             Flags = 0x0020
	FlagCrossSystem      Flags = 0x0040
	FlagBurnChangePrice  Flags = 0x0080
	FlagBurnChangeWeight Flags = 0x0100
	FlagImportToSource   Flags = 0x0200
	FlagReserveToReserve Flags = 0x0400
	FlagRefund           Flags = 0x0800
	FlagIdentityExport   Flags = 0x1000
	FlagCurrencyExport   Flags = 0x2000
	FlagArbitrageOnly    Flags = 0x4000
)

// TokenOutput - a versioned multi-currency value
type TokenOutput struct {
	Version uint32
	Values  currency.ValueMap
}

// ReserveTransfer - one transfer instruction
//
// DestSystemID is only carried for a cross-system transfer and
// SecondReserveID only for reserve to reserve, where DestCurrencyID
// is the fractional currency the conversion goes through
type ReserveTransfer struct {
	TokenOutput
	Flags           Flags
	FeeCurrencyID   currency.ID
	Fees            int64
	DestCurrencyID  currency.ID
	DestSystemID    currency.ID
	SecondReserveID currency.ID
	Destination     destination.Destination
}

func (t *ReserveTransfer) has(f Flags) bool {
	return f == t.Flags&f
}

// IsValid - carries the valid bit
func (t *ReserveTransfer) IsValid() bool { return t.has(FlagValid) }

// IsConversion - converts at the destination
func (t *ReserveTransfer) IsConversion() bool { return t.has(FlagConvert) }

// IsPreConversion - converts at launch
func (t *ReserveTransfer) IsPreConversion() bool { return t.has(FlagPreConvert) }

// IsFeeOutput - pays the exporter
func (t *ReserveTransfer) IsFeeOutput() bool { return t.has(FlagFeeOutput) }

// IsMint - creates its value in the destination currency
func (t *ReserveTransfer) IsMint() bool { return t.has(FlagMint) }

// IsCrossSystem - leaves this system
func (t *ReserveTransfer) IsCrossSystem() bool { return t.has(FlagCrossSystem) }

// IsBurnChangePrice - value is destroyed to raise the price
func (t *ReserveTransfer) IsBurnChangePrice() bool { return t.has(FlagBurnChangePrice) }

// IsBurnChangeWeight - value is destroyed to change the weights
func (t *ReserveTransfer) IsBurnChangeWeight() bool { return t.has(FlagBurnChangeWeight) }

// IsBurn - either kind of burn
func (t *ReserveTransfer) IsBurn() bool {
	return t.IsBurnChangePrice() || t.IsBurnChangeWeight()
}

// IsImportToSource - import on the source system
func (t *ReserveTransfer) IsImportToSource() bool { return t.has(FlagImportToSource) }

// IsReserveToReserve - one reserve to another through the fractional currency
func (t *ReserveTransfer) IsReserveToReserve() bool { return t.has(FlagReserveToReserve) }

// IsRefund - returns value to its sender
func (t *ReserveTransfer) IsRefund() bool { return t.has(FlagRefund) }

// IsArbitrageOnly - may only be used for arbitrage
func (t *ReserveTransfer) IsArbitrageOnly() bool { return t.has(FlagArbitrageOnly) }

// FinalDestCurrency - the currency the recipient ends up with
func (t *ReserveTransfer) FinalDestCurrency() currency.ID {
	if t.IsReserveToReserve() {
		return t.SecondReserveID
	}
	return t.DestCurrencyID
}

// FirstValue - the single currency and amount carried
func (t *ReserveTransfer) FirstValue() (currency.ID, int64) {
	for id, v := range t.Values {
		return id, v
	}
	return currency.ID{}, 0
}

// TotalCurrencyOut - the carried value plus the fee in its currency
func (t *ReserveTransfer) TotalCurrencyOut() (currency.ValueMap, error) {
	if 0 == t.Fees {
		return t.Values.Clone(), nil
	}
	return t.Values.Add(currency.ValueMap{t.FeeCurrencyID: t.Fees})
}

// Validate - checks that do not need any chain context
func (t *ReserveTransfer) Validate() error {
	return t.validate(maxNesting)
}

const maxNesting = 1

func (t *ReserveTransfer) validate(depth int) error {
	if !t.IsValid() {
		return fault.ErrInvalidTransfer
	}
	if 1 != len(t.Values) {
		return fault.ErrInvalidTransfer
	}
	if t.Values.HasNegative() {
		return fault.ErrNegativeBalance
	}
	for _, v := range t.Values {
		if !currency.ValidAmount(v) {
			return fault.ErrAmountOutOfRange
		}
	}
	if t.Fees < 0 {
		return fault.ErrNegativeFee
	}
	if !currency.ValidAmount(t.Fees) {
		return fault.ErrAmountOutOfRange
	}
	if t.IsConversion() && t.IsPreConversion() {
		return fault.ErrInvalidTransfer
	}
	if t.IsCrossSystem() == t.DestSystemID.IsNull() {
		return fault.ErrInvalidTransfer
	}
	if t.IsReserveToReserve() == t.SecondReserveID.IsNull() {
		return fault.ErrInvalidTransfer
	}
	if t.IsReserveToReserve() && !t.IsConversion() {
		return fault.ErrInvalidTransfer
	}
	if !t.Destination.Valid() {
		return fault.ErrInvalidDestination
	}
	if _, ok := t.Destination.Address.(destination.NestedTransfer); ok {
		if depth <= 0 {
			return fault.ErrInvalidDestination
		}
		nested, err := t.Nested()
		if nil != err {
			return fault.ErrInvalidDestination
		}
		return nested.validate(depth - 1)
	}
	return nil
}

// Nested - decode the transfer carried by a nested transfer destination
func (t *ReserveTransfer) Nested() (*ReserveTransfer, error) {
	n, ok := t.Destination.Address.(destination.NestedTransfer)
	if !ok {
		return nil, fault.ErrInvalidDestination
	}
	nested, err := Unpack(n)
	if nil != err {
		return nil, err
	}
	return &nested, nil
}

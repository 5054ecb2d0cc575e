// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package currencystate

import (
	"github.com/shopspring/decimal"

	"github.com/bitmark-inc/pbaasd/currency"
)

// decimal estimates follow the integer formulas step for step, they
// are for display only and never feed a validated amount

var decimalUnit = decimal.New(currency.Unit, 0)

// PriceInReserveDecimal - unrounded price of one unit in reserve i,
// in minimal reserve units
func (s *CurrencyState) PriceInReserveDecimal(i int) decimal.Decimal {
	if i < 0 || i >= len(s.Reserves) {
		return decimal.Zero
	}
	if !s.IsFractional() {
		return decimal.New(s.Reserves[i], 0)
	}
	if i >= len(s.Weights) {
		return decimal.Zero
	}
	weight := s.Weights[i]
	if 0 == s.Supply || 0 == weight {
		return decimal.New(weight, 0)
	}
	reserve := s.Reserves[i]
	if 0 == reserve {
		reserve = currency.Unit
	}
	numerator := decimal.New(reserve, 0).Mul(decimalUnit).Mul(decimalUnit)
	denominator := decimal.New(s.Supply, 0).Mul(decimal.New(weight, 0))
	return numerator.Div(denominator)
}

// ReserveToNativeDecimal - amount*Unit/price without truncation
func ReserveToNativeDecimal(amount int64, price decimal.Decimal) decimal.Decimal {
	if price.IsZero() {
		return decimal.Zero
	}
	return decimal.New(amount, 0).Mul(decimalUnit).Div(price)
}

// NativeToReserveDecimal - amount*price/Unit without truncation
func NativeToReserveDecimal(amount int64, price decimal.Decimal) decimal.Decimal {
	return decimal.New(amount, 0).Mul(price).Div(decimalUnit)
}

// EstimateReserveToNative - display estimate of a reserve map's value
// in this currency, the self entry is counted directly
func (s *CurrencyState) EstimateReserveToNative(reserves currency.ValueMap) decimal.Decimal {
	total := decimal.Zero
	for i, c := range s.Currencies {
		if amount, ok := reserves[c]; ok {
			total = total.Add(ReserveToNativeDecimal(amount, s.PriceInReserveDecimal(i)))
		}
	}
	if self, ok := reserves[s.CurrencyID]; ok {
		total = total.Add(decimal.New(self, 0))
	}
	return total
}

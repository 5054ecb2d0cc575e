// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package currency

import (
	"github.com/shopspring/decimal"

	"github.com/bitmark-inc/pbaasd/fault"
)

// fixed point precision of every amount
const (
	Decimals = 8
	Unit     = 100000000 // 10^Decimals minimal units
)

// MaxAmount - largest magnitude of any single amount, also the bound
// for every sum held in a ValueMap
const MaxAmount int64 = 1000000000 * Unit

// ValidAmount - true if the amount lies in [-MaxAmount, MaxAmount]
func ValidAmount(amount int64) bool {
	return amount >= -MaxAmount && amount <= MaxAmount
}

// FormatAmount - fixed eight decimal text, e.g. 150000000 → "1.50000000"
func FormatAmount(amount int64) string {
	return decimal.New(amount, -Decimals).StringFixed(Decimals)
}

// ParseAmount - inverse of FormatAmount, accepts up to eight decimals
func ParseAmount(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if nil != err {
		return 0, fault.ErrInvalidAmount
	}
	scaled := d.Mul(decimal.New(Unit, 0))
	if !scaled.Equal(scaled.Truncate(0)) {
		return 0, fault.ErrInvalidAmount
	}
	if scaled.GreaterThan(decimal.New(MaxAmount, 0)) || scaled.LessThan(decimal.New(-MaxAmount, 0)) {
		return 0, fault.ErrAmountOutOfRange
	}
	return scaled.IntPart(), nil
}

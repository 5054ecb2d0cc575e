// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package currencystate

import (
	"math"

	"github.com/holiman/uint256"

	"github.com/bitmark-inc/pbaasd/currency"
	"github.com/bitmark-inc/pbaasd/fault"
)

// all consensus prices use 256 bit unsigned intermediates
var (
	bigOne        = uint256.NewInt(1)
	bigUnit       = uint256.NewInt(currency.Unit)
	bigUnitSquare = uint256.NewInt(currency.Unit * currency.Unit)
	bigGasScale   = uint256.NewInt(currency.Unit * 1000)
	bigMaxAmount  = uint256.NewInt(math.MaxInt64)
)

func toAmount(v *uint256.Int) (int64, error) {
	if v.Gt(bigMaxAmount) {
		return 0, fault.ErrConversionOverflow
	}
	return int64(v.Uint64()), nil
}

// PriceInReserve - price of one unit of this currency in reserve i
//
// an index beyond the reserves is priced at zero
func (s *CurrencyState) PriceInReserve(i int, roundUp bool) (int64, error) {
	if i < 0 || i >= len(s.Reserves) {
		return 0, nil
	}
	if !s.IsFractional() {
		return s.Reserves[i], nil
	}
	if i >= len(s.Weights) {
		fault.Panicf("currency state %s: reserve index %d beyond %d weights", s.CurrencyID, i, len(s.Weights))
	}
	weight := s.Weights[i]
	if 0 == s.Supply || 0 == weight {
		return weight, nil
	}

	reserve := s.Reserves[i]
	if 0 == reserve {
		reserve = currency.Unit
	}
	if reserve < 0 || weight < 0 || s.Supply < 0 {
		return 0, fault.ErrInvalidCurrencyState
	}

	numerator := new(uint256.Int).Mul(uint256.NewInt(uint64(reserve)), bigUnitSquare)
	denominator := new(uint256.Int).Mul(uint256.NewInt(uint64(s.Supply)), uint256.NewInt(uint64(weight)))
	quotient := new(uint256.Int).Div(numerator, denominator)
	if roundUp && !new(uint256.Int).Mod(numerator, denominator).IsZero() {
		quotient.Add(quotient, bigOne)
	}
	return toAmount(quotient)
}

// PricesInReserve - PriceInReserve for every reserve currency
func (s *CurrencyState) PricesInReserve(roundUp bool) ([]int64, error) {
	prices := make([]int64, len(s.Currencies))
	for i := range s.Currencies {
		p, err := s.PriceInReserve(i, roundUp)
		if nil != err {
			return nil, err
		}
		prices[i] = p
	}
	return prices, nil
}

// ReserveToNativeRaw - amount*Unit/price, a zero price gives zero
func ReserveToNativeRaw(amount int64, price int64) (int64, error) {
	if amount < 0 || price < 0 {
		return 0, fault.ErrConversionOverflow
	}
	if 0 == price {
		return 0, nil
	}
	v := new(uint256.Int).Mul(uint256.NewInt(uint64(amount)), bigUnit)
	v.Div(v, uint256.NewInt(uint64(price)))
	return toAmount(v)
}

// NativeToReserveRaw - amount*price/Unit
func NativeToReserveRaw(amount int64, price int64) (int64, error) {
	if amount < 0 || price < 0 {
		return 0, fault.ErrConversionOverflow
	}
	v := new(uint256.Int).Mul(uint256.NewInt(uint64(amount)), uint256.NewInt(uint64(price)))
	v.Div(v, bigUnit)
	return toAmount(v)
}

// NativeGasToReserveRaw - convert a gas amount using a rate quoted
// per hundredth of a unit, a zero rate leaves the amount unchanged
func NativeGasToReserveRaw(amount int64, rate int64) (int64, error) {
	if 0 == rate {
		return amount, nil
	}
	if amount < 0 || rate < 0 {
		return 0, fault.ErrConversionOverflow
	}
	rate /= currency.Unit / 100
	v := new(uint256.Int).Mul(uint256.NewInt(uint64(amount)), uint256.NewInt(uint64(rate)))
	v.Div(v, bigGasScale)
	return toAmount(v)
}

// ReserveToNative - convert using this state's own rounded down price
func (s *CurrencyState) ReserveToNative(amount int64, i int) (int64, error) {
	price, err := s.PriceInReserve(i, false)
	if nil != err {
		return 0, err
	}
	return ReserveToNativeRaw(amount, price)
}

// NativeToReserve - convert using this state's own rounded down price
func (s *CurrencyState) NativeToReserve(amount int64, i int) (int64, error) {
	price, err := s.PriceInReserve(i, false)
	if nil != err {
		return 0, err
	}
	return NativeToReserveRaw(amount, price)
}

// ReserveToNativeMap - fold every reserve present in the map at the
// given rates, one rate per reserve currency
func (s *CurrencyState) ReserveToNativeMap(reserves currency.ValueMap, rates []int64) (int64, error) {
	if len(rates) != len(s.Currencies) {
		return 0, fault.ErrCountMismatch
	}
	total := int64(0)
	for i, c := range s.Currencies {
		amount, ok := reserves[c]
		if !ok {
			continue
		}
		n, err := ReserveToNativeRaw(amount, rates[i])
		if nil != err {
			return 0, err
		}
		total, err = addAmount(total, n)
		if nil != err {
			return 0, err
		}
	}
	return total, nil
}

// ReserveToNativeTotal - value of a reserve map in this currency at
// the state's own prices, an entry for this currency itself is
// counted directly
func (s *CurrencyState) ReserveToNativeTotal(reserves currency.ValueMap) (int64, error) {
	prices, err := s.PricesInReserve(false)
	if nil != err {
		return 0, err
	}
	total, err := s.ReserveToNativeMap(reserves, prices)
	if nil != err {
		return 0, err
	}
	if self, ok := reserves[s.CurrencyID]; ok {
		return addAmount(total, self)
	}
	return total, nil
}

// NativeToReserveMap - convert per reserve native amounts at the
// given rates, both slices are parallel to Currencies
func (s *CurrencyState) NativeToReserveMap(natives []int64, rates []int64) (currency.ValueMap, error) {
	if len(natives) != len(s.Currencies) || len(rates) != len(s.Currencies) {
		return nil, fault.ErrCountMismatch
	}
	m := make(currency.ValueMap, len(s.Currencies))
	for i, c := range s.Currencies {
		r, err := NativeToReserveRaw(natives[i], rates[i])
		if nil != err {
			return nil, err
		}
		m[c] = r
	}
	return m, nil
}

func addAmount(a int64, b int64) (int64, error) {
	if !currency.ValidAmount(a) || !currency.ValidAmount(b) || !currency.ValidAmount(a+b) {
		return 0, fault.ErrConversionOverflow
	}
	return a + b, nil
}

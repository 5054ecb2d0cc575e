// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package currencystate_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/pbaasd/currency"
	"github.com/bitmark-inc/pbaasd/currencystate"
	"github.com/bitmark-inc/pbaasd/fault"
)

const unit = currency.Unit

var (
	selfID    = currency.ID{0xaa}
	reserveR  = currency.ID{0x01}
	reserveS  = currency.ID{0x02}
	reserveNo = currency.ID{0x03}
)

func fractional(reserves []int64, weights []int64, supply int64) *currencystate.CurrencyState {
	ids := []currency.ID{reserveR, reserveS}[:len(reserves)]
	return &currencystate.CurrencyState{
		Version:    currencystate.Version,
		Flags:      currencystate.FlagFractional,
		CurrencyID: selfID,
		Currencies: ids,
		Weights:    weights,
		Reserves:   reserves,
		Supply:     supply,
	}
}

func TestPriceInReserveNonFractional(t *testing.T) {
	s := &currencystate.CurrencyState{
		Version:    currencystate.Version,
		CurrencyID: selfID,
		Currencies: []currency.ID{reserveR},
		Weights:    []int64{0},
		Reserves:   []int64{500000000},
		Supply:     123456,
	}
	for _, roundUp := range []bool{false, true} {
		price, err := s.PriceInReserve(0, roundUp)
		assert.Nil(t, err, "roundUp: %v", roundUp)
		assert.Equal(t, int64(500000000), price, "roundUp: %v", roundUp)
	}
}

func TestPriceInReserveFractional(t *testing.T) {
	items := []struct {
		state *currencystate.CurrencyState
		index int
		down  int64
		up    int64
	}{
		{fractional([]int64{50 * unit}, []int64{unit / 2}, 100*unit), 0, unit, unit},
		{fractional([]int64{1}, []int64{1}, 3), 0, 3333333333333333, 3333333333333334},
		{fractional([]int64{0}, []int64{unit / 2}, 100*unit), 0, 2000000, 2000000}, // zero reserve is one unit
		{fractional([]int64{50 * unit}, []int64{unit / 2}, 0), 0, unit / 2, unit / 2},
		{fractional([]int64{50 * unit, 10 * unit}, []int64{unit, 0}, 100*unit), 1, 0, 0},
		{fractional([]int64{50 * unit}, []int64{unit / 2}, 100*unit), 1, 0, 0}, // beyond the reserves
	}
	for i, item := range items {
		down, err := item.state.PriceInReserve(item.index, false)
		assert.Nil(t, err, "%d: down", i)
		assert.Equal(t, item.down, down, "%d: down", i)

		up, err := item.state.PriceInReserve(item.index, true)
		assert.Nil(t, err, "%d: up", i)
		assert.Equal(t, item.up, up, "%d: up", i)
	}
}

func TestPriceInReserveOverflow(t *testing.T) {
	s := fractional([]int64{currency.MaxAmount}, []int64{1}, 1)
	_, err := s.PriceInReserve(0, false)
	assert.Equal(t, fault.ErrConversionOverflow, err, "overflow")
}

func TestPriceInReserveInconsistent(t *testing.T) {
	s := fractional([]int64{unit, unit}, []int64{unit}, unit)
	assert.Panics(t, func() {
		s.PriceInReserve(1, false)
	}, "weights shorter than reserves")
}

func TestPriceRoundingBound(t *testing.T) {
	reserves := []int64{1, 7, 999, unit, 3 * unit, 123456789012, currency.MaxAmount / 1000}
	weights := []int64{1, 3, unit / 7, unit / 2, unit}
	supplies := []int64{1, 11, unit, 77 * unit, 1000000 * unit}
	for _, r := range reserves {
		for _, w := range weights {
			for _, supply := range supplies {
				s := fractional([]int64{r}, []int64{w}, supply)
				down, err1 := s.PriceInReserve(0, false)
				up, err2 := s.PriceInReserve(0, true)
				if nil != err1 || nil != err2 {
					assert.Equal(t, err1, err2, "r: %d  w: %d  s: %d", r, w, supply)
					continue
				}
				assert.True(t, up >= down, "r: %d  w: %d  s: %d", r, w, supply)
				assert.True(t, up-down <= 1, "r: %d  w: %d  s: %d", r, w, supply)
			}
		}
	}
}

func TestConversionRaw(t *testing.T) {
	n, err := currencystate.ReserveToNativeRaw(10*unit, 2*unit)
	assert.Nil(t, err, "reserve to native")
	assert.Equal(t, int64(5*unit), n, "reserve to native")

	r, err := currencystate.NativeToReserveRaw(5*unit, 2*unit)
	assert.Nil(t, err, "native to reserve")
	assert.Equal(t, int64(10*unit), r, "native to reserve")

	n, err = currencystate.ReserveToNativeRaw(10*unit, 0)
	assert.Nil(t, err, "zero price")
	assert.Equal(t, int64(0), n, "zero price")
}

func TestConversionOverflow(t *testing.T) {
	_, err := currencystate.ReserveToNativeRaw(math.MaxInt64, 1)
	assert.Equal(t, fault.ErrConversionOverflow, err, "reserve to native")

	_, err = currencystate.ReserveToNativeRaw(currency.MaxAmount, 1)
	assert.Equal(t, fault.ErrConversionOverflow, err, "max amount")

	_, err = currencystate.NativeToReserveRaw(math.MaxInt64, math.MaxInt64)
	assert.Equal(t, fault.ErrConversionOverflow, err, "native to reserve")

	_, err = currencystate.ReserveToNativeRaw(-1, unit)
	assert.Equal(t, fault.ErrConversionOverflow, err, "negative amount")

	// largest value that still fits is returned exactly
	n, err := currencystate.NativeToReserveRaw(math.MaxInt64, unit)
	assert.Nil(t, err, "identity price")
	assert.Equal(t, int64(math.MaxInt64), n, "identity price")
}

func TestConversionRoundTrip(t *testing.T) {
	amounts := []int64{0, 1, 2, 99, unit - 1, unit, 12345678901, currency.MaxAmount}

	// reserve → native → reserve loses at most one unit while the
	// price is at most one unit
	for _, price := range []int64{1, 3, 777, unit / 3, unit - 1, unit} {
		for _, x := range amounts {
			n, err := currencystate.ReserveToNativeRaw(x, price)
			if nil != err {
				assert.Equal(t, fault.ErrConversionOverflow, err, "x: %d  price: %d", x, price)
				continue
			}
			back, err := currencystate.NativeToReserveRaw(n, price)
			assert.Nil(t, err, "x: %d  price: %d", x, price)
			assert.True(t, back >= x-1 && back <= x+1, "x: %d  price: %d  back: %d", x, price, back)
		}
	}

	// native → reserve → native is the mirror case
	for _, price := range []int64{unit, unit + 1, 3 * unit, 500000000, 98765 * unit} {
		for _, x := range amounts {
			r, err := currencystate.NativeToReserveRaw(x, price)
			if nil != err {
				continue
			}
			back, err := currencystate.ReserveToNativeRaw(r, price)
			assert.Nil(t, err, "x: %d  price: %d", x, price)
			assert.True(t, back >= x-1 && back <= x+1, "x: %d  price: %d  back: %d", x, price, back)
		}
	}
}

func TestStateConversions(t *testing.T) {
	s := fractional([]int64{50 * unit, 20 * unit}, []int64{unit / 2, unit / 2}, 100*unit)

	prices, err := s.PricesInReserve(false)
	assert.Nil(t, err, "prices")
	assert.Equal(t, []int64{unit, 40000000}, prices, "prices")

	n, err := s.ReserveToNative(10*unit, 0)
	assert.Nil(t, err, "scalar")
	assert.Equal(t, int64(10*unit), n, "scalar")

	r, err := s.NativeToReserve(10*unit, 1)
	assert.Nil(t, err, "scalar")
	assert.Equal(t, int64(4*unit), r, "scalar")

	total, err := s.ReserveToNativeTotal(currency.ValueMap{
		reserveR:  10 * unit,
		reserveS:  2 * unit,
		reserveNo: 1000 * unit, // not a reserve, skipped
		selfID:    3 * unit,    // counted directly
	})
	assert.Nil(t, err, "total")
	assert.Equal(t, int64(10*unit+5*unit+3*unit), total, "total")

	native, err := s.ReserveToNativeMap(currency.ValueMap{reserveS: 4 * unit}, []int64{unit, 2 * unit})
	assert.Nil(t, err, "map")
	assert.Equal(t, int64(2*unit), native, "map")

	_, err = s.ReserveToNativeMap(currency.ValueMap{}, []int64{unit})
	assert.Equal(t, fault.ErrCountMismatch, err, "rate count")

	m, err := s.NativeToReserveMap([]int64{unit, 2 * unit}, []int64{unit, unit / 2})
	assert.Nil(t, err, "native map")
	assert.Equal(t, currency.ValueMap{reserveR: unit, reserveS: unit}, m, "native map")
}

func TestNativeGasToReserveRaw(t *testing.T) {
	n, err := currencystate.NativeGasToReserveRaw(12345, 0)
	assert.Nil(t, err, "zero rate")
	assert.Equal(t, int64(12345), n, "zero rate")

	n, err = currencystate.NativeGasToReserveRaw(10*unit, 5*unit)
	assert.Nil(t, err, "rate")
	assert.Equal(t, int64(5), n, "rate")
}

func TestDecimalEstimate(t *testing.T) {
	s := fractional([]int64{1}, []int64{1}, 3)
	estimate := s.PriceInReserveDecimal(0)
	assert.Equal(t, "3333333333333333.33", estimate.StringFixed(2), "estimate")

	down, _ := s.PriceInReserve(0, false)
	up, _ := s.PriceInReserve(0, true)
	assert.True(t, estimate.IntPart() >= down, "floor")
	assert.True(t, estimate.IntPart() < up, "ceiling")

	s = fractional([]int64{50 * unit, 20 * unit}, []int64{unit / 2, unit / 2}, 100*unit)
	total := s.EstimateReserveToNative(currency.ValueMap{reserveR: 10 * unit, selfID: 3 * unit})
	assert.Equal(t, int64(13*unit), total.IntPart(), "map estimate")
}

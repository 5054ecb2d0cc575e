// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package currencystate

import (
	"github.com/bitmark-inc/pbaasd/currency"
	"github.com/bitmark-inc/pbaasd/fault"
)

// CoinbaseCurrencyState - a currency state plus the flows of the
// block that produced it
//
// every vector is parallel to Currencies
type CoinbaseCurrencyState struct {
	CurrencyState

	ReserveIn          []int64
	PrimaryCurrencyIn  []int64
	ReserveOut         []int64
	ConversionPrice    []int64
	ViaConversionPrice []int64
	Fees               []int64
	ConversionFees     []int64
	PriorWeights       []int64

	PrimaryCurrencyFees           int64
	PrimaryCurrencyConversionFees int64
	PrimaryCurrencyOut            int64
	PreConvertedOut               int64
}

// NewCoinbaseCurrencyState - zero flows for the given state
func NewCoinbaseCurrencyState(state CurrencyState) CoinbaseCurrencyState {
	n := len(state.Currencies)
	return CoinbaseCurrencyState{
		CurrencyState:      state,
		ReserveIn:          make([]int64, n),
		PrimaryCurrencyIn:  make([]int64, n),
		ReserveOut:         make([]int64, n),
		ConversionPrice:    make([]int64, n),
		ViaConversionPrice: make([]int64, n),
		Fees:               make([]int64, n),
		ConversionFees:     make([]int64, n),
		PriorWeights:       append([]int64(nil), state.Weights...),
	}
}

func (c *CoinbaseCurrencyState) vectors() [][]int64 {
	return [][]int64{
		c.ReserveIn,
		c.PrimaryCurrencyIn,
		c.ReserveOut,
		c.ConversionPrice,
		c.ViaConversionPrice,
		c.Fees,
		c.ConversionFees,
		c.PriorWeights,
	}
}

// Validate - base checks and one flow entry per currency
func (c *CoinbaseCurrencyState) Validate() error {
	err := c.CurrencyState.Validate()
	if nil != err {
		return err
	}
	n := len(c.Currencies)
	for _, v := range c.vectors() {
		if len(v) != n {
			return fault.ErrCountMismatch
		}
		for _, a := range v {
			if !currency.ValidAmount(a) {
				return fault.ErrAmountOutOfRange
			}
		}
	}
	for _, a := range []int64{c.PrimaryCurrencyFees, c.PrimaryCurrencyConversionFees, c.PrimaryCurrencyOut, c.PreConvertedOut} {
		if !currency.ValidAmount(a) {
			return fault.ErrAmountOutOfRange
		}
	}
	return nil
}

// NextState - the currency state the following block starts from
//
// each reserve gains its reserve in and loses its reserve out, supply
// gains the primary currency minted and loses the primary currency
// converted back, and Emitted records what this block minted
func (c *CoinbaseCurrencyState) NextState() (CurrencyState, error) {
	err := c.Validate()
	if nil != err {
		return CurrencyState{}, err
	}

	next := c.CurrencyState.Clone()
	for i := range next.Reserves {
		r, err := addAmount(next.Reserves[i], c.ReserveIn[i])
		if nil != err {
			return CurrencyState{}, err
		}
		r, err = addAmount(r, -c.ReserveOut[i])
		if nil != err {
			return CurrencyState{}, err
		}
		if r < 0 {
			return CurrencyState{}, fault.ErrNegativeBalance
		}
		next.Reserves[i] = r
	}

	supply, err := addAmount(next.Supply, c.PrimaryCurrencyOut)
	if nil != err {
		return CurrencyState{}, err
	}
	for _, in := range c.PrimaryCurrencyIn {
		supply, err = addAmount(supply, -in)
		if nil != err {
			return CurrencyState{}, err
		}
	}
	if supply < 0 {
		return CurrencyState{}, fault.ErrNegativeBalance
	}
	next.Supply = supply
	next.Emitted = c.PrimaryCurrencyOut
	return next, nil
}

// ReserveInMap - reserve inflow keyed by currency
func (c *CoinbaseCurrencyState) ReserveInMap() currency.ValueMap {
	return vectorMap(c.Currencies, c.ReserveIn)
}

// ReserveOutMap - reserve outflow keyed by currency
func (c *CoinbaseCurrencyState) ReserveOutMap() currency.ValueMap {
	return vectorMap(c.Currencies, c.ReserveOut)
}

// FeesMap - fees keyed by currency
func (c *CoinbaseCurrencyState) FeesMap() currency.ValueMap {
	return vectorMap(c.Currencies, c.Fees)
}

func vectorMap(ids []currency.ID, amounts []int64) currency.ValueMap {
	m := make(currency.ValueMap, len(ids))
	for i, id := range ids {
		if i < len(amounts) && 0 != amounts[i] {
			m[id] = amounts[i]
		}
	}
	return m
}

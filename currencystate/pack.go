// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package currencystate

import (
	"math"

	"github.com/bitmark-inc/pbaasd/currency"
	"github.com/bitmark-inc/pbaasd/fault"
	"github.com/bitmark-inc/pbaasd/util"
)

// PackInto - append the canonical encoding
//
//	version flags currencyID
//	currencies weights reserves   {each a counted vector}
//	initialSupply emitted supply
func (s *CurrencyState) PackInto(p *util.Packer) {
	p.Uint64(uint64(s.Version))
	p.Uint64(uint64(s.Flags))
	p.Fixed(s.CurrencyID[:])
	currency.PackIDs(p, s.Currencies)
	currency.PackAmounts(p, s.Weights)
	currency.PackAmounts(p, s.Reserves)
	p.Int64(s.InitialSupply)
	p.Int64(s.Emitted)
	p.Int64(s.Supply)
}

// Pack - canonical encoding as a new buffer
func (s *CurrencyState) Pack() []byte {
	p := util.Packer{}
	s.PackInto(&p)
	return p
}

// ReadCurrencyState - decode from an unpacker
func ReadCurrencyState(u *util.Unpacker) CurrencyState {
	version := u.Uint64()
	flags := u.Uint64()
	if version > math.MaxUint32 || flags > math.MaxUint16 {
		u.Fail(fault.ErrInvalidCount)
	}
	s := CurrencyState{
		Version: uint32(version),
		Flags:   Flags(flags),
	}
	s.CurrencyID = currency.ReadID(u)
	s.Currencies = currency.ReadIDs(u)
	s.Weights = currency.ReadAmounts(u)
	s.Reserves = currency.ReadAmounts(u)
	s.InitialSupply = u.Int64()
	s.Emitted = u.Int64()
	s.Supply = u.Int64()
	if nil != u.Err() {
		return CurrencyState{}
	}
	return s
}

// UnpackCurrencyState - decode a complete buffer
func UnpackCurrencyState(buffer []byte) (CurrencyState, error) {
	u := util.NewUnpacker(buffer)
	s := ReadCurrencyState(u)
	if err := u.Finish(); nil != err {
		return CurrencyState{}, err
	}
	return s, nil
}

// PackInto - base state then every flow vector and scalar
func (c *CoinbaseCurrencyState) PackInto(p *util.Packer) {
	c.CurrencyState.PackInto(p)
	for _, v := range c.vectors() {
		currency.PackAmounts(p, v)
	}
	p.Int64(c.PrimaryCurrencyFees)
	p.Int64(c.PrimaryCurrencyConversionFees)
	p.Int64(c.PrimaryCurrencyOut)
	p.Int64(c.PreConvertedOut)
}

// Pack - canonical encoding as a new buffer
func (c *CoinbaseCurrencyState) Pack() []byte {
	p := util.Packer{}
	c.PackInto(&p)
	return p
}

// ReadCoinbaseCurrencyState - decode from an unpacker
func ReadCoinbaseCurrencyState(u *util.Unpacker) CoinbaseCurrencyState {
	c := CoinbaseCurrencyState{
		CurrencyState: ReadCurrencyState(u),
	}
	c.ReserveIn = currency.ReadAmounts(u)
	c.PrimaryCurrencyIn = currency.ReadAmounts(u)
	c.ReserveOut = currency.ReadAmounts(u)
	c.ConversionPrice = currency.ReadAmounts(u)
	c.ViaConversionPrice = currency.ReadAmounts(u)
	c.Fees = currency.ReadAmounts(u)
	c.ConversionFees = currency.ReadAmounts(u)
	c.PriorWeights = currency.ReadAmounts(u)
	c.PrimaryCurrencyFees = u.Int64()
	c.PrimaryCurrencyConversionFees = u.Int64()
	c.PrimaryCurrencyOut = u.Int64()
	c.PreConvertedOut = u.Int64()
	if nil != u.Err() {
		return CoinbaseCurrencyState{}
	}
	return c
}

// UnpackCoinbaseCurrencyState - decode a complete buffer
func UnpackCoinbaseCurrencyState(buffer []byte) (CoinbaseCurrencyState, error) {
	u := util.NewUnpacker(buffer)
	c := ReadCoinbaseCurrencyState(u)
	if err := u.Finish(); nil != err {
		return CoinbaseCurrencyState{}, err
	}
	return c, nil
}

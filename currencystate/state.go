// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package currencystate

import (
	"github.com/bitmark-inc/pbaasd/currency"
	"github.com/bitmark-inc/pbaasd/fault"
)

// record versions
const (
	VersionInvalid = 0
	Version        = 1
)

// Flags - currency state bit set
type Flags uint16

// possible flag bits
const (
	FlagFractional      Flags = 0x01
	FlagPrelaunch       Flags = 0x02
	FlagRefunding       Flags = 0x04
	FlagLaunchClear     Flags = 0x08
	FlagLaunchConfirmed Flags = 0x10
	FlagLaunchComplete  Flags = 0x20
)

// CurrencyState - economic parameters of one currency at one height
//
// Currencies, Weights and Reserves are parallel arrays
type CurrencyState struct {
	Version       uint32
	Flags         Flags
	CurrencyID    currency.ID
	Currencies    []currency.ID
	Weights       []int64
	Reserves      []int64
	InitialSupply int64
	Emitted       int64
	Supply        int64
}

// IsValid - has a version and names a currency
func (s *CurrencyState) IsValid() bool {
	return VersionInvalid != s.Version && !s.CurrencyID.IsNull()
}

// IsFractional - priced from reserves and weights
func (s *CurrencyState) IsFractional() bool {
	return 0 != s.Flags&FlagFractional
}

// IsPrelaunch - launch period has not finished
func (s *CurrencyState) IsPrelaunch() bool {
	return 0 != s.Flags&FlagPrelaunch
}

// IsRefunding - launch failed and pre-conversions are returned
func (s *CurrencyState) IsRefunding() bool {
	return 0 != s.Flags&FlagRefunding
}

// IsLaunchClear - first block after the launch period
func (s *CurrencyState) IsLaunchClear() bool {
	return 0 != s.Flags&FlagLaunchClear
}

// IsLaunchConfirmed - launch conditions were met
func (s *CurrencyState) IsLaunchConfirmed() bool {
	return 0 != s.Flags&FlagLaunchConfirmed
}

// IsLaunchComplete - launch processing is finished
func (s *CurrencyState) IsLaunchComplete() bool {
	return 0 != s.Flags&FlagLaunchComplete
}

// PricedCurrency - the currency whose reserves this state prices
func (s *CurrencyState) PricedCurrency() currency.ID {
	return s.CurrencyID
}

// ReserveIndex - position of a reserve currency, or -1
func (s *CurrencyState) ReserveIndex(id currency.ID) int {
	for i, c := range s.Currencies {
		if c == id {
			return i
		}
	}
	return -1
}

// Validate - structural checks done when a state is decoded or built
//
// weights summing to one unit is the concern of the currency
// definition, not of this layer
func (s *CurrencyState) Validate() error {
	if !s.IsValid() {
		return fault.ErrInvalidCurrencyState
	}
	n := len(s.Currencies)
	if n > currency.MaxCurrencies {
		return fault.ErrTooManyCurrencies
	}
	if len(s.Weights) != n || len(s.Reserves) != n {
		return fault.ErrCountMismatch
	}
	seen := make(map[currency.ID]struct{}, n)
	for i, c := range s.Currencies {
		if _, ok := seen[c]; ok {
			return fault.ErrDuplicateCurrency
		}
		seen[c] = struct{}{}
		if s.Weights[i] < 0 || s.Reserves[i] < 0 {
			return fault.ErrInvalidCurrencyState
		}
		if !currency.ValidAmount(s.Weights[i]) || !currency.ValidAmount(s.Reserves[i]) {
			return fault.ErrAmountOutOfRange
		}
	}
	for _, a := range []int64{s.InitialSupply, s.Emitted, s.Supply} {
		if a < 0 || !currency.ValidAmount(a) {
			return fault.ErrAmountOutOfRange
		}
	}
	return nil
}

// Clone - deep copy
func (s *CurrencyState) Clone() CurrencyState {
	c := *s
	c.Currencies = append([]currency.ID(nil), s.Currencies...)
	c.Weights = append([]int64(nil), s.Weights...)
	c.Reserves = append([]int64(nil), s.Reserves...)
	return c
}

// ReserveMap - reserves keyed by currency
func (s *CurrencyState) ReserveMap() currency.ValueMap {
	m := make(currency.ValueMap, len(s.Currencies))
	for i, c := range s.Currencies {
		if i < len(s.Reserves) {
			m[c] = s.Reserves[i]
		}
	}
	return m
}

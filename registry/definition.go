// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"github.com/bitmark-inc/pbaasd/currency"
	"github.com/bitmark-inc/pbaasd/currencystate"
	"github.com/bitmark-inc/pbaasd/fault"
)

// definition versions
const (
	VersionInvalid = 0
	Version        = 1
)

// Options - currency option bits
type Options uint32

// possible option bits
const (
	OptionFractional Options = 0x01
	OptionToken      Options = 0x20
	OptionGateway    Options = 0x80
)

// Definition - the launch parameters of one currency
//
// Conversions are the fixed launch prices of a non-fractional
// currency; the preconversion limits bound what may be converted
// before launch, a zero maximum meaning no limit
type Definition struct {
	Version          uint32
	Options          Options
	Name             string
	Parent           currency.ID
	SystemID         currency.ID
	Currencies       []currency.ID
	Weights          []int64
	Conversions      []int64
	MinPreconversion []int64
	MaxPreconversion []int64
	InitialSupply    int64
	StartBlock       uint32
	EndBlock         uint32
	ImportFee        int64
	ExportFee        int64
}

// IsFractional - priced from reserves
func (d *Definition) IsFractional() bool {
	return 0 != d.Options&OptionFractional
}

// ID - derived from the name and parent
func (d *Definition) ID() (currency.ID, error) {
	return currency.IDFromName(d.Name, d.Parent)
}

// Validate - consistency of the launch parameters
func (d *Definition) Validate() error {
	if VersionInvalid == d.Version {
		return fault.ErrInvalidDefinition
	}
	id, err := d.ID()
	if nil != err {
		return err
	}
	if d.SystemID.IsNull() {
		return fault.ErrInvalidDefinition
	}

	n := len(d.Currencies)
	if n > currency.MaxCurrencies {
		return fault.ErrTooManyCurrencies
	}
	seen := make(map[currency.ID]struct{}, n)
	for _, c := range d.Currencies {
		if c == id || c.IsNull() {
			return fault.ErrInvalidDefinition
		}
		if _, ok := seen[c]; ok {
			return fault.ErrDuplicateCurrency
		}
		seen[c] = struct{}{}
	}

	for _, v := range [][]int64{d.Conversions, d.MinPreconversion, d.MaxPreconversion} {
		if 0 != len(v) && n != len(v) {
			return fault.ErrCountMismatch
		}
		for _, a := range v {
			if a < 0 || !currency.ValidAmount(a) {
				return fault.ErrAmountOutOfRange
			}
		}
	}
	if 0 != len(d.MinPreconversion) && 0 != len(d.MaxPreconversion) {
		for i := range d.MinPreconversion {
			if 0 != d.MaxPreconversion[i] && d.MaxPreconversion[i] < d.MinPreconversion[i] {
				return fault.ErrInvalidDefinition
			}
		}
	}

	if d.IsFractional() {
		if 0 == n || n != len(d.Weights) {
			return fault.ErrInvalidWeights
		}
		total := int64(0)
		for _, w := range d.Weights {
			if w <= 0 || w > currency.Unit {
				return fault.ErrInvalidWeights
			}
			total += w
		}
		if currency.Unit != total {
			return fault.ErrInvalidWeights
		}
	} else if 0 != len(d.Weights) {
		return fault.ErrInvalidWeights
	}

	for _, a := range []int64{d.InitialSupply, d.ImportFee, d.ExportFee} {
		if a < 0 || !currency.ValidAmount(a) {
			return fault.ErrAmountOutOfRange
		}
	}
	if 0 != d.EndBlock && d.EndBlock < d.StartBlock {
		return fault.ErrInvalidHeightRange
	}
	return nil
}

// InitialState - the currency state before launch
//
// a fractional currency starts with empty reserves, any other carries
// its launch prices in the reserve slots
func (d *Definition) InitialState() (currencystate.CurrencyState, error) {
	err := d.Validate()
	if nil != err {
		return currencystate.CurrencyState{}, err
	}
	id, _ := d.ID()

	n := len(d.Currencies)
	s := currencystate.CurrencyState{
		Version:       currencystate.Version,
		Flags:         currencystate.FlagPrelaunch,
		CurrencyID:    id,
		InitialSupply: d.InitialSupply,
		Supply:        d.InitialSupply,
	}
	if 0 == n {
		return s, nil
	}
	s.Currencies = append([]currency.ID(nil), d.Currencies...)
	s.Reserves = make([]int64, n)
	if d.IsFractional() {
		s.Flags |= currencystate.FlagFractional
		s.Weights = append([]int64(nil), d.Weights...)
	} else {
		s.Weights = make([]int64, n)
		copy(s.Reserves, d.Conversions)
	}
	return s, nil
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/pbaasd/currency"
	"github.com/bitmark-inc/pbaasd/currencystate"
)

type reservePrice struct {
	Currency currency.ID `json:"currency"`
	Price    string      `json:"price"`
	Estimate string      `json:"estimate,omitempty"`
}

type conversion struct {
	Reserve  currency.ID `json:"reserve"`
	Amount   string      `json:"amount"`
	Native   string      `json:"native"`
	Estimate string      `json:"estimate,omitempty"`
}

type priceResult struct {
	CurrencyID currency.ID    `json:"currencyid"`
	Fractional bool           `json:"fractional"`
	Prices     []reservePrice `json:"prices"`
	Conversion *conversion    `json:"conversion,omitempty"`
}

func runPrice(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	record, _, err := readRecord(m, "state", c.String("state"))
	if nil != err {
		return err
	}

	var state *currencystate.CurrencyState
	switch r := record.(type) {
	case *currencystate.CurrencyState:
		state = r
	case *currencystate.CoinbaseCurrencyState:
		state = &r.CurrencyState
	default:
		return ErrNotCurrencyState
	}
	if err := state.Validate(); nil != err {
		return err
	}

	estimate := c.Bool("estimate")

	prices, err := state.PricesInReserve(false)
	if nil != err {
		return err
	}
	result := priceResult{
		CurrencyID: state.CurrencyID,
		Fractional: state.IsFractional(),
		Prices:     make([]reservePrice, len(prices)),
	}
	for i, p := range prices {
		result.Prices[i] = reservePrice{
			Currency: state.Currencies[i],
			Price:    currency.FormatAmount(p),
		}
		if estimate {
			result.Prices[i].Estimate = state.PriceInReserveDecimal(i).Shift(-currency.Decimals).String()
		}
	}

	if s := c.String("reserve"); "" != s {
		reserve, err := currency.IDFromString(s)
		if nil != err {
			return fmt.Errorf("reserve: %s", err)
		}
		i := state.ReserveIndex(reserve)
		if i < 0 {
			return ErrReserveNotInState
		}
		amount, err := currency.ParseAmount(c.String("amount"))
		if nil != err {
			return fmt.Errorf("amount: %s", err)
		}
		native, err := state.ReserveToNative(amount, i)
		if nil != err {
			return err
		}
		result.Conversion = &conversion{
			Reserve: reserve,
			Amount:  currency.FormatAmount(amount),
			Native:  currency.FormatAmount(native),
		}
		if estimate {
			v := state.EstimateReserveToNative(currency.ValueMap{reserve: amount})
			result.Conversion.Estimate = v.Shift(-currency.Decimals).String()
		}
	}

	return printJson(m.w, result)
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package currencystate

import (
	"encoding/json"

	"github.com/bitmark-inc/pbaasd/currency"
)

type reserveRow struct {
	CurrencyID     currency.ID `json:"currencyid"`
	Weight         string      `json:"weight"`
	Reserves       string      `json:"reserves"`
	PriceInReserve string      `json:"priceinreserve,omitempty"`
	PriceEstimate  string      `json:"priceestimate,omitempty"`
}

type stateJSON struct {
	Flags             Flags        `json:"flags"`
	Version           uint32       `json:"version"`
	CurrencyID        currency.ID  `json:"currencyid"`
	ReserveCurrencies []reserveRow `json:"reservecurrencies,omitempty"`
	LaunchCurrencies  []reserveRow `json:"launchcurrencies,omitempty"`
	InitialSupply     string       `json:"initialsupply"`
	Emitted           string       `json:"emitted"`
	Supply            string       `json:"supply"`
}

func amountAt(v []int64, i int) int64 {
	if i < len(v) {
		return v[i]
	}
	return 0
}

func (s *CurrencyState) toJSON() stateJSON {
	j := stateJSON{
		Flags:         s.Flags,
		Version:       s.Version,
		CurrencyID:    s.CurrencyID,
		InitialSupply: currency.FormatAmount(s.InitialSupply),
		Emitted:       currency.FormatAmount(s.Emitted),
		Supply:        currency.FormatAmount(s.Supply),
	}
	if !s.IsValid() {
		return j
	}
	rows := make([]reserveRow, len(s.Currencies))
	for i, c := range s.Currencies {
		rows[i] = reserveRow{
			CurrencyID:    c,
			Weight:        currency.FormatAmount(amountAt(s.Weights, i)),
			Reserves:      currency.FormatAmount(amountAt(s.Reserves, i)),
			PriceEstimate: s.PriceInReserveDecimal(i).Div(decimalUnit).StringFixed(currency.Decimals),
		}
		if price, err := s.PriceInReserve(i, false); nil == err {
			rows[i].PriceInReserve = currency.FormatAmount(price)
		}
	}
	if s.IsFractional() {
		j.ReserveCurrencies = rows
	} else {
		j.LaunchCurrencies = rows
	}
	return j
}

// MarshalJSON - diagnostic rendering with a price row per reserve
func (s CurrencyState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.toJSON())
}

// UnmarshalJSON - accepts the MarshalJSON form, prices are ignored
func (s *CurrencyState) UnmarshalJSON(data []byte) error {
	var j stateJSON
	err := json.Unmarshal(data, &j)
	if nil != err {
		return err
	}
	result := CurrencyState{
		Version:    j.Version,
		Flags:      j.Flags,
		CurrencyID: j.CurrencyID,
	}
	rows := j.LaunchCurrencies
	if result.IsFractional() {
		rows = j.ReserveCurrencies
	}
	for _, row := range rows {
		w, err := currency.ParseAmount(row.Weight)
		if nil != err {
			return err
		}
		r, err := currency.ParseAmount(row.Reserves)
		if nil != err {
			return err
		}
		result.Currencies = append(result.Currencies, row.CurrencyID)
		result.Weights = append(result.Weights, w)
		result.Reserves = append(result.Reserves, r)
	}
	for _, item := range []struct {
		text   string
		amount *int64
	}{
		{j.InitialSupply, &result.InitialSupply},
		{j.Emitted, &result.Emitted},
		{j.Supply, &result.Supply},
	} {
		if "" == item.text {
			continue
		}
		*item.amount, err = currency.ParseAmount(item.text)
		if nil != err {
			return err
		}
	}
	*s = result
	return nil
}

type flowRow struct {
	ReserveIn           string `json:"reservein"`
	PrimaryCurrencyIn   string `json:"primarycurrencyin"`
	ReserveOut          string `json:"reserveout"`
	LastConversionPrice string `json:"lastconversionprice"`
	ViaConversionPrice  string `json:"viaconversionprice"`
	Fees                string `json:"fees"`
	ConversionFees      string `json:"conversionfees"`
	PriorWeights        string `json:"priorweights"`
}

type coinbaseJSON struct {
	stateJSON
	Currencies                    map[string]flowRow `json:"currencies,omitempty"`
	PrimaryCurrencyFees           string             `json:"primarycurrencyfees"`
	PrimaryCurrencyConversionFees string             `json:"primarycurrencyconversionfees"`
	PrimaryCurrencyOut            string             `json:"primarycurrencyout"`
	PreConvertedOut               string             `json:"preconvertedout"`
}

// MarshalJSON - base rendering plus one flow row per currency
func (c CoinbaseCurrencyState) MarshalJSON() ([]byte, error) {
	j := coinbaseJSON{
		stateJSON:                     c.CurrencyState.toJSON(),
		PrimaryCurrencyFees:           currency.FormatAmount(c.PrimaryCurrencyFees),
		PrimaryCurrencyConversionFees: currency.FormatAmount(c.PrimaryCurrencyConversionFees),
		PrimaryCurrencyOut:            currency.FormatAmount(c.PrimaryCurrencyOut),
		PreConvertedOut:               currency.FormatAmount(c.PreConvertedOut),
	}
	if 0 != len(c.Currencies) {
		j.Currencies = make(map[string]flowRow, len(c.Currencies))
		for i, id := range c.Currencies {
			j.Currencies[id.String()] = flowRow{
				ReserveIn:           currency.FormatAmount(amountAt(c.ReserveIn, i)),
				PrimaryCurrencyIn:   currency.FormatAmount(amountAt(c.PrimaryCurrencyIn, i)),
				ReserveOut:          currency.FormatAmount(amountAt(c.ReserveOut, i)),
				LastConversionPrice: currency.FormatAmount(amountAt(c.ConversionPrice, i)),
				ViaConversionPrice:  currency.FormatAmount(amountAt(c.ViaConversionPrice, i)),
				Fees:                currency.FormatAmount(amountAt(c.Fees, i)),
				ConversionFees:      currency.FormatAmount(amountAt(c.ConversionFees, i)),
				PriorWeights:        currency.FormatAmount(amountAt(c.PriorWeights, i)),
			}
		}
	}
	return json.Marshal(j)
}

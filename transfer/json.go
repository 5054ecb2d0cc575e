// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transfer

import (
	"encoding/json"

	"github.com/bitmark-inc/pbaasd/currency"
	"github.com/bitmark-inc/pbaasd/destination"
)

type transferJSON struct {
	Version          uint32                  `json:"version"`
	CurrencyValues   currency.ValueMap       `json:"currencyvalues"`
	Flags            Flags                   `json:"flags"`
	CrossSystem      bool                    `json:"crosssystem,omitempty"`
	ExportTo         *currency.ID            `json:"exportto,omitempty"`
	Refund           bool                    `json:"refund,omitempty"`
	ImportToSource   bool                    `json:"importtosource,omitempty"`
	Convert          bool                    `json:"convert,omitempty"`
	PreConvert       bool                    `json:"preconvert,omitempty"`
	FeeOutput        bool                    `json:"feeoutput,omitempty"`
	ReserveToReserve bool                    `json:"reservetoreserve,omitempty"`
	BurnChangePrice  bool                    `json:"burnchangeprice,omitempty"`
	BurnChangeWeight bool                    `json:"burnchangeweight,omitempty"`
	Mint             bool                    `json:"mint,omitempty"`
	ArbitrageOnly    bool                    `json:"arbitrageonly,omitempty"`
	FeeCurrencyID    currency.ID             `json:"feecurrencyid"`
	Fees             string                  `json:"fees"`
	DestCurrencyID   currency.ID             `json:"destinationcurrencyid"`
	Via              *currency.ID            `json:"via,omitempty"`
	Destination      destination.Destination `json:"destination"`
}

// MarshalJSON - diagnostic rendering
func (t ReserveTransfer) MarshalJSON() ([]byte, error) {
	j := transferJSON{
		Version:          t.Version,
		CurrencyValues:   t.Values,
		Flags:            t.Flags,
		CrossSystem:      t.IsCrossSystem(),
		Refund:           t.IsRefund(),
		ImportToSource:   t.IsImportToSource(),
		Convert:          t.IsConversion(),
		PreConvert:       t.IsPreConversion(),
		FeeOutput:        t.IsFeeOutput(),
		ReserveToReserve: t.IsReserveToReserve(),
		BurnChangePrice:  t.IsBurnChangePrice(),
		BurnChangeWeight: t.IsBurnChangeWeight(),
		Mint:             t.IsMint(),
		ArbitrageOnly:    t.IsArbitrageOnly(),
		FeeCurrencyID:    t.FeeCurrencyID,
		Fees:             currency.FormatAmount(t.Fees),
		DestCurrencyID:   t.FinalDestCurrency(),
		Destination:      t.Destination,
	}
	if t.IsCrossSystem() {
		j.ExportTo = &t.DestSystemID
	}
	if t.IsReserveToReserve() {
		j.Via = &t.DestCurrencyID
	}
	return json.Marshal(j)
}

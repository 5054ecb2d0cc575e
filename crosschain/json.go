// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package crosschain

import (
	"encoding/json"

	"github.com/bitmark-inc/pbaasd/currency"
	"github.com/bitmark-inc/pbaasd/destination"
	"github.com/bitmark-inc/pbaasd/merkle"
	"github.com/bitmark-inc/pbaasd/transfer"
)

type exportJSON struct {
	Version           uint32                     `json:"version"`
	Flags             ExportFlags                `json:"flags"`
	SourceHeightStart *uint32                    `json:"sourceheightstart,omitempty"`
	SourceHeightEnd   *uint32                    `json:"sourceheightend,omitempty"`
	SourceSystemID    *currency.ID               `json:"sourcesystemid,omitempty"`
	DestSystemID      *currency.ID               `json:"destinationsystemid,omitempty"`
	DestCurrencyID    *currency.ID               `json:"destinationcurrencyid,omitempty"`
	NumInputs         *int32                     `json:"numinputs,omitempty"`
	TotalAmounts      currency.ValueMap          `json:"totalamounts,omitempty"`
	TotalFees         currency.ValueMap          `json:"totalfees,omitempty"`
	HashTransfers     *merkle.Digest             `json:"hashtransfers,omitempty"`
	TotalBurned       currency.ValueMap          `json:"totalburned,omitempty"`
	RewardAddress     *destination.Destination   `json:"rewardaddress,omitempty"`
	FirstInput        *int32                     `json:"firstinput,omitempty"`
	IsSupplemental    bool                       `json:"issupplemental,omitempty"`
	Transfers         []transfer.ReserveTransfer `json:"transfers"`
}

// MarshalJSON - diagnostic rendering
func (e Export) MarshalJSON() ([]byte, error) {
	j := exportJSON{
		Version:   e.Version,
		Flags:     e.Flags,
		Transfers: e.Transfers,
	}
	if nil == j.Transfers {
		j.Transfers = []transfer.ReserveTransfer{}
	}
	if e.IsSupplemental() {
		j.IsSupplemental = true
		return json.Marshal(j)
	}
	j.SourceHeightStart = &e.SourceHeightStart
	j.SourceHeightEnd = &e.SourceHeightEnd
	j.SourceSystemID = &e.SourceSystemID
	j.DestSystemID = &e.DestSystemID
	j.DestCurrencyID = &e.DestCurrencyID
	j.NumInputs = &e.NumInputs
	j.TotalAmounts = e.TotalAmounts
	j.TotalFees = e.TotalFees
	j.HashTransfers = &e.HashTransfers
	j.TotalBurned = e.TotalBurned
	j.RewardAddress = &e.Exporter
	j.FirstInput = &e.FirstInput
	return json.Marshal(j)
}

type importJSON struct {
	Version            uint32            `json:"version"`
	Flags              ImportFlags       `json:"flags"`
	SourceSystemID     currency.ID       `json:"sourcesystemid"`
	SourceSystemHeight uint32            `json:"sourceheight"`
	ImportCurrencyID   currency.ID       `json:"importcurrencyid"`
	ImportValue        currency.ValueMap `json:"valuein"`
	TotalReserveOutMap currency.ValueMap `json:"tokensout"`
	NumOutputs         int32             `json:"numoutputs"`
	HashTransfers      merkle.Digest     `json:"hashtransfers"`
	ExportTxID         merkle.Digest     `json:"exporttxid"`
	ExportTxOutNum     uint32            `json:"exporttxout"`
}

// MarshalJSON - diagnostic rendering
func (i Import) MarshalJSON() ([]byte, error) {
	return json.Marshal(importJSON(i))
}

// UnmarshalJSON - inverse of MarshalJSON
func (i *Import) UnmarshalJSON(data []byte) error {
	var j importJSON
	if err := json.Unmarshal(data, &j); nil != err {
		return err
	}
	*i = Import(j)
	return nil
}

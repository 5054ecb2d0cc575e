// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package destination

import (
	"encoding/hex"
	"encoding/json"

	"github.com/bitmark-inc/pbaasd/currency"
)

type nftJSON struct {
	Contract string `json:"contract"`
	TokenID  string `json:"tokenid"`
}

type destinationJSON struct {
	Address        interface{}   `json:"address,omitempty"`
	SerializedData string        `json:"serializeddata,omitempty"`
	NestedTransfer string        `json:"nestedtransfer,omitempty"`
	Undefined      *string       `json:"undefined,omitempty"`
	AuxDests       []Destination `json:"auxdests,omitempty"`
	Gateway        *currency.ID  `json:"gateway,omitempty"`
	Fees           string        `json:"fees,omitempty"`
	Type           byte          `json:"type"`
}

// MarshalJSON - diagnostic rendering
func (d Destination) MarshalJSON() ([]byte, error) {
	j := destinationJSON{
		Type:     d.TypeByte(),
		AuxDests: d.Aux,
	}
	switch a := d.Address.(type) {
	case EthNFT:
		j.Address = nftJSON{
			Contract: "0x" + hex.EncodeToString(a.Contract[:]),
			TokenID:  "0x" + hex.EncodeToString(a.TokenID[:]),
		}
	case FullIdentity, CurrencyRegistration:
		j.SerializedData = a.String()
	case NestedTransfer:
		j.NestedTransfer = a.String()
	case nil, Invalid:
		empty := ""
		j.Undefined = &empty
	default:
		j.Address = a.String()
	}
	if nil != d.Gateway {
		j.Gateway = &d.Gateway.ID
		j.Fees = currency.FormatAmount(d.Gateway.Fees)
	}
	return json.Marshal(j)
}

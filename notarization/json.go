// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package notarization

import (
	"encoding/json"

	"github.com/bitmark-inc/pbaasd/currency"
	"github.com/bitmark-inc/pbaasd/currencystate"
	"github.com/bitmark-inc/pbaasd/destination"
	"github.com/bitmark-inc/pbaasd/merkle"
)

type proofRootJSON struct {
	Version      uint32        `json:"version"`
	Type         ProofRootType `json:"type"`
	SystemID     currency.ID   `json:"systemid"`
	RootHeight   uint32        `json:"height"`
	StateRoot    merkle.Digest `json:"stateroot"`
	BlockHash    merkle.Digest `json:"blockhash"`
	CompactPower merkle.Digest `json:"power"`
}

// MarshalJSON - diagnostic rendering
func (r ProofRoot) MarshalJSON() ([]byte, error) {
	return json.Marshal(proofRootJSON(r))
}

type nodeJSON struct {
	NetworkAddress string      `json:"networkaddress"`
	NodeIdentity   currency.ID `json:"nodeidentity"`
}

type notarizationJSON struct {
	Version                   uint32                                   `json:"version"`
	IsDefinition              bool                                     `json:"isdefinition,omitempty"`
	IsBlockOne                bool                                     `json:"isblockonenotarization,omitempty"`
	Prelaunch                 bool                                     `json:"prelaunch,omitempty"`
	LaunchCleared             bool                                     `json:"launchcleared,omitempty"`
	Refunding                 bool                                     `json:"refunding,omitempty"`
	LaunchConfirmed           bool                                     `json:"launchconfirmed,omitempty"`
	LaunchComplete            bool                                     `json:"launchcomplete,omitempty"`
	ContractUpgrade           bool                                     `json:"contractupgrade,omitempty"`
	IsMirror                  bool                                     `json:"ismirror,omitempty"`
	SameChain                 bool                                     `json:"samechain,omitempty"`
	Proposer                  *destination.Destination                 `json:"proposer,omitempty"`
	CurrencyID                currency.ID                              `json:"currencyid"`
	NotarizationHeight        uint32                                   `json:"notarizationheight"`
	CurrencyState             currencystate.CurrencyState              `json:"currencystate"`
	PrevNotarizationTxID      merkle.Digest                            `json:"prevnotarizationtxid"`
	PrevNotarizationOut       uint32                                   `json:"prevnotarizationout"`
	PrevHeight                uint32                                   `json:"prevheight"`
	HashPrevCrossNotarization merkle.Digest                            `json:"hashprevcrossnotarization"`
	CurrencyStates            []map[string]currencystate.CurrencyState `json:"currencystates,omitempty"`
	ProofRoots                []ProofRoot                              `json:"proofroots,omitempty"`
	Nodes                     []nodeJSON                               `json:"nodes,omitempty"`
}

// MarshalJSON - diagnostic rendering, maps become arrays in ascending
// ID order
func (n Notarization) MarshalJSON() ([]byte, error) {
	j := notarizationJSON{
		Version:                   n.Version,
		IsDefinition:              n.IsDefinition(),
		IsBlockOne:                n.IsBlockOne(),
		Prelaunch:                 n.IsPrelaunch(),
		LaunchCleared:             n.IsLaunchCleared(),
		Refunding:                 n.IsRefunding(),
		LaunchConfirmed:           n.IsLaunchConfirmed(),
		LaunchComplete:            n.IsLaunchComplete(),
		ContractUpgrade:           n.IsContractUpgrade(),
		IsMirror:                  n.IsMirror(),
		SameChain:                 n.IsSameChain(),
		CurrencyID:                n.CurrencyID,
		NotarizationHeight:        n.NotarizationHeight,
		CurrencyState:             n.CurrencyState,
		PrevNotarizationTxID:      n.PrevNotarization.Hash,
		PrevNotarizationOut:       n.PrevNotarization.N,
		PrevHeight:                n.PrevHeight,
		HashPrevCrossNotarization: n.HashPrevCrossNotarization,
	}
	if nil != n.Proposer.Address {
		j.Proposer = &n.Proposer
	}

	ids := make([]currency.ID, 0, len(n.CurrencyStates))
	for id := range n.CurrencyStates {
		ids = append(ids, id)
	}
	sortIDs(ids)
	for _, id := range ids {
		j.CurrencyStates = append(j.CurrencyStates, map[string]currencystate.CurrencyState{
			id.String(): n.CurrencyStates[id],
		})
	}

	ids = ids[:0]
	for id := range n.ProofRoots {
		ids = append(ids, id)
	}
	sortIDs(ids)
	for _, id := range ids {
		j.ProofRoots = append(j.ProofRoots, n.ProofRoots[id])
	}

	for _, node := range n.Nodes {
		j.Nodes = append(j.Nodes, nodeJSON(node))
	}
	return json.Marshal(j)
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package notarization

import (
	"github.com/bitmark-inc/pbaasd/currency"
	"github.com/bitmark-inc/pbaasd/currencystate"
	"github.com/bitmark-inc/pbaasd/fault"
)

// Mirror - the record in the requested view
//
// the input is never modified; on success a new record is returned
// with the primary currency swapped for the other proof root's system:
//
//	height         ← the other system's proof root height
//	CurrencyStates ← old primary state added, new primary state removed
//	CurrencyState  ← new primary state (zero if none was held)
//	CurrencyID     ← the other system
//
// un-mirroring also drops the proposer's aux destinations
func Mirror(n *Notarization, wantMirror bool, localSystemID currency.ID) (*Notarization, error) {
	if nil == n {
		return nil, fault.ErrInvalidNotarization
	}
	if wantMirror == n.IsMirror() {
		return n.Clone(), nil
	}

	if 2 != len(n.ProofRoots) {
		return nil, fault.ErrWrongProofRootCount
	}
	if _, ok := n.CurrencyStates[n.CurrencyID]; ok {
		return nil, fault.ErrAlreadyMirrored
	}
	if _, ok := n.ProofRoots[localSystemID]; !ok {
		return nil, fault.ErrMissingLocalProofRoot
	}
	if n.CurrencyID != localSystemID {
		if _, ok := n.CurrencyStates[localSystemID]; !ok {
			return nil, fault.ErrMissingLocalCurrencyState
		}
	}

	newID := otherSystem(n)

	m := n.Clone()
	m.NotarizationHeight = n.ProofRoots[newID].RootHeight
	if nil == m.CurrencyStates {
		m.CurrencyStates = make(map[currency.ID]currencystate.CurrencyState)
	}
	m.CurrencyStates[n.CurrencyID] = m.CurrencyState
	m.CurrencyState = m.CurrencyStates[newID]
	delete(m.CurrencyStates, newID)
	m.CurrencyID = newID

	m.SetFlag(FlagMirror, wantMirror)
	if !wantMirror {
		m.Proposer = m.Proposer.WithoutAux()
	}
	return m, nil
}

// the proof root system that is not the current primary, taking the
// lower ID when the primary is neither
func otherSystem(n *Notarization) currency.ID {
	ids := make([]currency.ID, 0, len(n.ProofRoots))
	for id := range n.ProofRoots {
		ids = append(ids, id)
	}
	sortIDs(ids)
	for _, id := range ids {
		if id != n.CurrencyID {
			return id
		}
	}
	return ids[0]
}

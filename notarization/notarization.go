// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package notarization

import (
	"github.com/bitmark-inc/pbaasd/currency"
	"github.com/bitmark-inc/pbaasd/currencystate"
	"github.com/bitmark-inc/pbaasd/destination"
	"github.com/bitmark-inc/pbaasd/fault"
	"github.com/bitmark-inc/pbaasd/merkle"
)

// record versions
const (
	VersionInvalid = 0
	Version        = 1
)

// limits on the decoded maps and lists
const (
	MaxProofRoots  = 64
	MaxNodes       = 32
	MaxAddressSize = 512
)

// Flags - notarization bit set
type Flags uint32

// possible flag bits
const (
	FlagDefinition      Flags = 0x0001
	FlagPrelaunch       Flags = 0x0002
	FlagLaunchCleared   Flags = 0x0008
	FlagRefunding       Flags = 0x0010
	FlagMirror          Flags = 0x0020
	FlagBlockOne        Flags = 0x0040
	FlagSameChain       Flags = 0x0080
	FlagLaunchConfirmed Flags = 0x0100
	FlagLaunchComplete  Flags = 0x0200
	FlagContractUpgrade Flags = 0x0400
)

// ProofRootType - kind of system a proof root describes
type ProofRootType uint16

// proof root types
const (
	ProofRootInvalid  ProofRootType = 0
	ProofRootPBaaS    ProofRootType = 1
	ProofRootEthereum ProofRootType = 2
)

// ProofRoot - height and roots of one system's chain
type ProofRoot struct {
	Version      uint32
	Type         ProofRootType
	SystemID     currency.ID
	RootHeight   uint32
	StateRoot    merkle.Digest
	BlockHash    merkle.Digest
	CompactPower merkle.Digest
}

// IsValid - non-zero version and type with a system
func (r ProofRoot) IsValid() bool {
	return VersionInvalid != r.Version && ProofRootInvalid != r.Type && !r.SystemID.IsNull()
}

// NodeData - contact hint for a peer of the notarized system
type NodeData struct {
	NetworkAddress string
	NodeIdentity   currency.ID
}

// Notarization - the record itself
//
// while native CurrencyState describes CurrencyID
type Notarization struct {
	Version                   uint32
	Flags                     Flags
	Proposer                  destination.Destination
	CurrencyID                currency.ID
	NotarizationHeight        uint32
	CurrencyState             currencystate.CurrencyState
	PrevNotarization          merkle.UTXORef
	PrevHeight                uint32
	HashPrevCrossNotarization merkle.Digest
	CurrencyStates            map[currency.ID]currencystate.CurrencyState
	ProofRoots                map[currency.ID]ProofRoot
	Nodes                     []NodeData
}

func (n *Notarization) has(f Flags) bool {
	return 0 != n.Flags&f
}

// IsDefinition - made when the currency was defined
func (n *Notarization) IsDefinition() bool { return n.has(FlagDefinition) }

// IsBlockOne - made in block one of the notarized chain
func (n *Notarization) IsBlockOne() bool { return n.has(FlagBlockOne) }

// IsPrelaunch - currency has not launched yet
func (n *Notarization) IsPrelaunch() bool { return n.has(FlagPrelaunch) }

// IsLaunchCleared - launch conditions have been evaluated
func (n *Notarization) IsLaunchCleared() bool { return n.has(FlagLaunchCleared) }

// IsRefunding - launch failed and preconversions are refunded
func (n *Notarization) IsRefunding() bool { return n.has(FlagRefunding) }

// IsLaunchConfirmed - launch succeeded
func (n *Notarization) IsLaunchConfirmed() bool { return n.has(FlagLaunchConfirmed) }

// IsLaunchComplete - launch has been fully processed
func (n *Notarization) IsLaunchComplete() bool { return n.has(FlagLaunchComplete) }

// IsContractUpgrade - carries a contract upgrade
func (n *Notarization) IsContractUpgrade() bool { return n.has(FlagContractUpgrade) }

// IsMirror - held in the peer system's view
func (n *Notarization) IsMirror() bool { return n.has(FlagMirror) }

// IsSameChain - notarizes a currency of the chain it is on
func (n *Notarization) IsSameChain() bool { return n.has(FlagSameChain) }

// SetFlag - set or clear flag bits
func (n *Notarization) SetFlag(f Flags, on bool) {
	if on {
		n.Flags |= f
	} else {
		n.Flags &^= f
	}
}

// Clone - deep copy, nothing is shared with the original
func (n *Notarization) Clone() *Notarization {
	c := *n
	c.Proposer = cloneDestination(n.Proposer)
	c.CurrencyState = n.CurrencyState.Clone()
	if nil != n.CurrencyStates {
		c.CurrencyStates = make(map[currency.ID]currencystate.CurrencyState, len(n.CurrencyStates))
		for id, s := range n.CurrencyStates {
			c.CurrencyStates[id] = s.Clone()
		}
	}
	if nil != n.ProofRoots {
		c.ProofRoots = make(map[currency.ID]ProofRoot, len(n.ProofRoots))
		for id, r := range n.ProofRoots {
			c.ProofRoots[id] = r
		}
	}
	if nil != n.Nodes {
		c.Nodes = append([]NodeData(nil), n.Nodes...)
	}
	return &c
}

// a destination round trip through its encoding shares no storage
func cloneDestination(d destination.Destination) destination.Destination {
	if nil == d.Address {
		return d
	}
	c, err := destination.Unpack(d.Pack())
	if nil != err {
		return d
	}
	return c
}

// Validate - structural checks on a decoded or built record
func (n *Notarization) Validate() error {
	if VersionInvalid == n.Version {
		return fault.ErrInvalidNotarization
	}
	if n.CurrencyID.IsNull() {
		return fault.ErrInvalidCurrencyID
	}
	if n.CurrencyState.IsValid() {
		if err := n.CurrencyState.Validate(); nil != err {
			return err
		}
		if !n.IsMirror() && n.CurrencyState.CurrencyID != n.CurrencyID {
			return fault.ErrInvalidNotarization
		}
	}
	for id, s := range n.CurrencyStates {
		if id.IsNull() || s.CurrencyID != id {
			return fault.ErrInvalidNotarization
		}
		if err := s.Validate(); nil != err {
			return err
		}
	}
	for id, r := range n.ProofRoots {
		if !r.IsValid() || r.SystemID != id {
			return fault.ErrInvalidNotarization
		}
	}
	if len(n.ProofRoots) > MaxProofRoots {
		return fault.ErrTooManyProofRoots
	}
	if len(n.Nodes) > MaxNodes {
		return fault.ErrTooManyNodes
	}
	if nil != n.Proposer.Address && !n.Proposer.Valid() {
		return fault.ErrInvalidDestination
	}
	return nil
}

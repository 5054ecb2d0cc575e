// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package notarization

import (
	"math"
	"sort"

	"github.com/bitmark-inc/pbaasd/currency"
	"github.com/bitmark-inc/pbaasd/currencystate"
	"github.com/bitmark-inc/pbaasd/destination"
	"github.com/bitmark-inc/pbaasd/fault"
	"github.com/bitmark-inc/pbaasd/merkle"
	"github.com/bitmark-inc/pbaasd/util"
)

// PackInto - append the canonical encoding of a proof root
func (r *ProofRoot) PackInto(p *util.Packer) {
	p.Uint64(uint64(r.Version))
	p.Uint64(uint64(r.Type))
	p.Fixed(r.SystemID[:])
	p.Uint64(uint64(r.RootHeight))
	p.Fixed(r.StateRoot[:])
	p.Fixed(r.BlockHash[:])
	p.Fixed(r.CompactPower[:])
}

// ReadProofRoot - decode a proof root
func ReadProofRoot(u *util.Unpacker) ProofRoot {
	r := ProofRoot{
		Version: readUint32(u),
	}
	t := u.Uint64()
	if t > math.MaxUint16 {
		u.Fail(fault.ErrInvalidCount)
	}
	r.Type = ProofRootType(t)
	r.SystemID = currency.ReadID(u)
	r.RootHeight = readUint32(u)
	r.StateRoot = readDigest(u)
	r.BlockHash = readDigest(u)
	r.CompactPower = readDigest(u)
	return r
}

// PackInto - append the canonical encoding
//
//	version flags proposer currencyID height currencyState
//	prevNotarization prevHeight hashPrevCrossNotarization
//	count (id state)*     {ascending id}
//	count (id root)*      {ascending id}
//	count (address identity)*
func (n *Notarization) PackInto(p *util.Packer) {
	p.Uint64(uint64(n.Version))
	p.Uint64(uint64(n.Flags))
	n.Proposer.PackInto(p)
	p.Fixed(n.CurrencyID[:])
	p.Uint64(uint64(n.NotarizationHeight))
	n.CurrencyState.PackInto(p)
	n.PrevNotarization.PackInto(p)
	p.Uint64(uint64(n.PrevHeight))
	p.Fixed(n.HashPrevCrossNotarization[:])

	ids := make([]currency.ID, 0, len(n.CurrencyStates))
	for id := range n.CurrencyStates {
		ids = append(ids, id)
	}
	sortIDs(ids)
	p.Uint64(uint64(len(ids)))
	for _, id := range ids {
		s := n.CurrencyStates[id]
		p.Fixed(id[:])
		s.PackInto(p)
	}

	ids = make([]currency.ID, 0, len(n.ProofRoots))
	for id := range n.ProofRoots {
		ids = append(ids, id)
	}
	sortIDs(ids)
	p.Uint64(uint64(len(ids)))
	for _, id := range ids {
		r := n.ProofRoots[id]
		p.Fixed(id[:])
		r.PackInto(p)
	}

	p.Uint64(uint64(len(n.Nodes)))
	for _, node := range n.Nodes {
		p.Bytes([]byte(node.NetworkAddress))
		p.Fixed(node.NodeIdentity[:])
	}
}

// Pack - canonical encoding as a new buffer
func (n *Notarization) Pack() []byte {
	p := util.Packer{}
	n.PackInto(&p)
	return p
}

// Read - decode a notarization, the unpacker carries any error
func Read(u *util.Unpacker) Notarization {
	n := Notarization{
		Version: readUint32(u),
		Flags:   Flags(readUint32(u)),
	}
	n.Proposer = destination.Read(u)
	n.CurrencyID = currency.ReadID(u)
	n.NotarizationHeight = readUint32(u)
	n.CurrencyState = currencystate.ReadCurrencyState(u)
	n.PrevNotarization = merkle.ReadUTXORef(u)
	n.PrevHeight = readUint32(u)
	n.HashPrevCrossNotarization = readDigest(u)

	count := u.Count(currency.MaxCurrencies, fault.ErrTooManyCurrencies)
	if count > 0 {
		n.CurrencyStates = make(map[currency.ID]currencystate.CurrencyState, count)
	}
	previous := currency.ID{}
	for i := 0; i < count && nil == u.Err(); i += 1 {
		id := currency.ReadID(u)
		if i > 0 {
			checkOrder(u, previous, id)
		}
		n.CurrencyStates[id] = currencystate.ReadCurrencyState(u)
		previous = id
	}

	count = u.Count(MaxProofRoots, fault.ErrTooManyProofRoots)
	if count > 0 {
		n.ProofRoots = make(map[currency.ID]ProofRoot, count)
	}
	for i := 0; i < count && nil == u.Err(); i += 1 {
		id := currency.ReadID(u)
		if i > 0 {
			checkOrder(u, previous, id)
		}
		n.ProofRoots[id] = ReadProofRoot(u)
		previous = id
	}

	count = u.Count(MaxNodes, fault.ErrTooManyNodes)
	if count > 0 {
		n.Nodes = make([]NodeData, 0, count)
	}
	for i := 0; i < count && nil == u.Err(); i += 1 {
		address := u.Bytes(MaxAddressSize, fault.ErrDestinationTooLong)
		identity := currency.ReadID(u)
		n.Nodes = append(n.Nodes, NodeData{
			NetworkAddress: string(address),
			NodeIdentity:   identity,
		})
	}

	if nil != u.Err() {
		return Notarization{}
	}
	return n
}

// Unpack - decode a complete buffer holding exactly one notarization
func Unpack(buffer []byte) (Notarization, error) {
	u := util.NewUnpacker(buffer)
	n := Read(u)
	if err := u.Finish(); nil != err {
		return Notarization{}, err
	}
	return n, nil
}

func checkOrder(u *util.Unpacker, previous currency.ID, id currency.ID) {
	switch {
	case previous == id:
		u.Fail(fault.ErrDuplicateCurrency)
	case !previous.Less(id):
		u.Fail(fault.ErrUnorderedKeys)
	}
}

func sortIDs(ids []currency.ID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i].Less(ids[j]) })
}

func readUint32(u *util.Unpacker) uint32 {
	n := u.Uint64()
	if n > math.MaxUint32 {
		u.Fail(fault.ErrInvalidCount)
	}
	return uint32(n)
}

func readDigest(u *util.Unpacker) merkle.Digest {
	var d merkle.Digest
	copy(d[:], u.Fixed(merkle.DigestLength))
	return d
}

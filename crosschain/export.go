// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package crosschain

import (
	"github.com/bitmark-inc/pbaasd/currency"
	"github.com/bitmark-inc/pbaasd/destination"
	"github.com/bitmark-inc/pbaasd/fault"
	"github.com/bitmark-inc/pbaasd/merkle"
	"github.com/bitmark-inc/pbaasd/transfer"
	"github.com/bitmark-inc/pbaasd/util"
)

// record versions
const (
	VersionInvalid = 0
	Version        = 1
)

// MaxTransfers - largest batch a single export may commit to
const MaxTransfers = 1024

// ExportFlags - export bit set
type ExportFlags uint32

// possible export flag bits
const (
	ExportDefinition   ExportFlags = 0x01
	ExportPostLaunch   ExportFlags = 0x02
	ExportClearLaunch  ExportFlags = 0x04
	ExportPrelaunch    ExportFlags = 0x08
	ExportSupplemental ExportFlags = 0x10
	ExportEvidenceOnly ExportFlags = 0x20
	ExportGateway      ExportFlags = 0x40
	ExportSystemThread ExportFlags = 0x80
)

// Export - an outbound batch commitment
//
// a supplemental record only carries Version, Flags and Transfers
type Export struct {
	Version           uint32
	Flags             ExportFlags
	SourceHeightStart uint32
	SourceHeightEnd   uint32
	SourceSystemID    currency.ID
	DestSystemID      currency.ID
	DestCurrencyID    currency.ID
	NumInputs         int32
	TotalAmounts      currency.ValueMap
	TotalFees         currency.ValueMap
	HashTransfers     merkle.Digest
	TotalBurned       currency.ValueMap
	Exporter          destination.Destination
	FirstInput        int32
	Transfers         []transfer.ReserveTransfer
}

// IsSupplemental - carries only additional transfers
func (e *Export) IsSupplemental() bool {
	return 0 != e.Flags&ExportSupplemental
}

// HashTransfers - the batch commitment
//
//	SHA3-256( varint(count) ++ (varint(length) ++ packed transfer)* )
func HashTransfers(transfers []transfer.ReserveTransfer) merkle.Digest {
	p := util.Packer{}
	p.Uint64(uint64(len(transfers)))
	for i := range transfers {
		p.Bytes(transfers[i].Pack())
	}
	return merkle.NewDigest(p)
}

type totals struct {
	amounts currency.ValueMap
	fees    currency.ValueMap
	burned  currency.ValueMap
}

// sum every transfer, each of which must pass its own validation
func sumTransfers(transfers []transfer.ReserveTransfer) (*totals, error) {
	t := &totals{
		amounts: currency.ValueMap{},
		fees:    currency.ValueMap{},
		burned:  currency.ValueMap{},
	}
	for i := range transfers {
		r := &transfers[i]
		err := r.Validate()
		if nil != err {
			return nil, err
		}
		out, err := r.TotalCurrencyOut()
		if nil != err {
			return nil, err
		}
		t.amounts, err = t.amounts.Add(out)
		if nil != err {
			return nil, err
		}
		if 0 != r.Fees {
			t.fees, err = t.fees.Add(currency.ValueMap{r.FeeCurrencyID: r.Fees})
			if nil != err {
				return nil, err
			}
		}
		if r.IsBurn() {
			t.burned, err = t.burned.Add(r.Values)
			if nil != err {
				return nil, err
			}
		}
	}
	t.amounts = canonical(t.amounts)
	t.fees = canonical(t.fees)
	t.burned = canonical(t.burned)
	return t, nil
}

// zero entries removed and nil when nothing is left, the decoded form
func canonical(m currency.ValueMap) currency.ValueMap {
	c := m.Canonical()
	if 0 == len(c) {
		return nil
	}
	return c
}

// NewExport - build an authoritative export over a complete batch
//
// the header supplies heights, systems, exporter and first input; the
// totals, input count and commitment are computed here
func NewExport(header Export, transfers []transfer.ReserveTransfer) (*Export, error) {
	if header.IsSupplemental() {
		return nil, fault.ErrInvalidExport
	}
	if len(transfers) > MaxTransfers {
		return nil, fault.ErrTooManyTransfers
	}
	if header.SourceHeightStart > header.SourceHeightEnd {
		return nil, fault.ErrInvalidHeightRange
	}
	t, err := sumTransfers(transfers)
	if nil != err {
		return nil, err
	}

	e := header
	e.Version = Version
	e.NumInputs = int32(len(transfers))
	e.TotalAmounts = t.amounts
	e.TotalFees = t.fees
	e.TotalBurned = t.burned
	e.HashTransfers = HashTransfers(transfers)
	e.Transfers = append([]transfer.ReserveTransfer(nil), transfers...)
	return &e, nil
}

// Split - move all transfers past the first n into supplemental
// records of at most n transfers each
func (e *Export) Split(n int) (*Export, []*Export) {
	if n <= 0 || len(e.Transfers) <= n {
		return e, nil
	}
	head := *e
	head.Transfers = e.Transfers[:n]

	var supplementals []*Export
	for rest := e.Transfers[n:]; 0 != len(rest); {
		k := n
		if k > len(rest) {
			k = len(rest)
		}
		supplementals = append(supplementals, &Export{
			Version:   e.Version,
			Flags:     ExportSupplemental,
			Transfers: rest[:k],
		})
		rest = rest[k:]
	}
	return &head, supplementals
}

// Merge - rebuild the complete batch from this authoritative record
// and its supplementals, in order
func (e *Export) Merge(supplementals ...*Export) (*Export, error) {
	if e.IsSupplemental() {
		return nil, fault.ErrInvalidExport
	}
	merged := *e
	merged.Transfers = append([]transfer.ReserveTransfer(nil), e.Transfers...)
	for _, s := range supplementals {
		if nil == s || !s.IsSupplemental() {
			return nil, fault.ErrInvalidExport
		}
		if err := s.validateSupplemental(); nil != err {
			return nil, err
		}
		merged.Transfers = append(merged.Transfers, s.Transfers...)
	}
	if err := merged.Validate(); nil != err {
		return nil, err
	}
	return &merged, nil
}

// Validate - an authoritative export must hold its complete batch and
// every header total must equal the recomputation over it
func (e *Export) Validate() error {
	if VersionInvalid == e.Version {
		return fault.ErrInvalidExport
	}
	if e.IsSupplemental() {
		return e.validateSupplemental()
	}
	if e.SourceHeightStart > e.SourceHeightEnd {
		return fault.ErrInvalidHeightRange
	}
	if e.NumInputs < 0 || int(e.NumInputs) != len(e.Transfers) {
		return fault.ErrCountMismatch
	}
	if len(e.Transfers) > MaxTransfers {
		return fault.ErrTooManyTransfers
	}
	if HashTransfers(e.Transfers) != e.HashTransfers {
		return fault.ErrTransferHashMismatch
	}
	t, err := sumTransfers(e.Transfers)
	if nil != err {
		return err
	}
	if !t.amounts.Equal(e.TotalAmounts) {
		return fault.ErrTotalsMismatch
	}
	if !t.fees.Equal(e.TotalFees) {
		return fault.ErrFeesMismatch
	}
	if !t.burned.Equal(e.TotalBurned) {
		return fault.ErrBurnedMismatch
	}
	if nil != e.Exporter.Address && !e.Exporter.Valid() {
		return fault.ErrInvalidDestination
	}
	return nil
}

// IsPartial - a head record whose remaining transfers travel in
// supplementals
func (e *Export) IsPartial() bool {
	return !e.IsSupplemental() && int(e.NumInputs) > len(e.Transfers)
}

// ValidateHeader - the checks possible on a head record before its
// supplementals are merged
func (e *Export) ValidateHeader() error {
	if VersionInvalid == e.Version || e.IsSupplemental() {
		return fault.ErrInvalidExport
	}
	if e.SourceHeightStart > e.SourceHeightEnd {
		return fault.ErrInvalidHeightRange
	}
	if int(e.NumInputs) < len(e.Transfers) {
		return fault.ErrCountMismatch
	}
	if e.NumInputs > MaxTransfers {
		return fault.ErrTooManyTransfers
	}
	for i := range e.Transfers {
		if err := e.Transfers[i].Validate(); nil != err {
			return err
		}
	}
	if nil != e.Exporter.Address && !e.Exporter.Valid() {
		return fault.ErrInvalidDestination
	}
	return nil
}

func (e *Export) validateSupplemental() error {
	if 0 != len(e.TotalAmounts) || 0 != len(e.TotalFees) || 0 != len(e.TotalBurned) ||
		0 != e.NumInputs || !e.HashTransfers.IsZero() {
		return fault.ErrSupplementalHasTotals
	}
	if 0 == len(e.Transfers) {
		return fault.ErrInvalidExport
	}
	for i := range e.Transfers {
		if err := e.Transfers[i].Validate(); nil != err {
			return err
		}
	}
	return nil
}

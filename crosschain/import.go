// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package crosschain

import (
	"github.com/bitmark-inc/pbaasd/currency"
	"github.com/bitmark-inc/pbaasd/fault"
	"github.com/bitmark-inc/pbaasd/merkle"
)

// ImportFlags - import bit set
type ImportFlags uint32

// possible import flag bits
const (
	ImportDefinition    ImportFlags = 0x01
	ImportInitialLaunch ImportFlags = 0x02
	ImportPostLaunch    ImportFlags = 0x04
	ImportSameChain     ImportFlags = 0x08
	ImportHasSupplement ImportFlags = 0x10
	ImportSupplemental  ImportFlags = 0x20
	ImportSourceSystem  ImportFlags = 0x40
)

// Import - an inbound settlement of one export
type Import struct {
	Version            uint32
	Flags              ImportFlags
	SourceSystemID     currency.ID
	SourceSystemHeight uint32
	ImportCurrencyID   currency.ID
	ImportValue        currency.ValueMap
	TotalReserveOutMap currency.ValueMap
	NumOutputs         int32
	HashTransfers      merkle.Digest
	ExportTxID         merkle.Digest
	ExportTxOutNum     uint32
}

// ExportRef - the export output this import settles
func (i *Import) ExportRef() merkle.UTXORef {
	return merkle.UTXORef{
		Hash: i.ExportTxID,
		N:    i.ExportTxOutNum,
	}
}

// IsSameChain - export and import are on the same system
func (i *Import) IsSameChain() bool {
	return 0 != i.Flags&ImportSameChain
}

// Validate - checks that do not need the paired export
func (i *Import) Validate() error {
	if VersionInvalid == i.Version {
		return fault.ErrInvalidImport
	}
	if i.ImportCurrencyID.IsNull() {
		return fault.ErrInvalidCurrencyID
	}
	if i.NumOutputs < 0 {
		return fault.ErrInvalidImport
	}
	if i.ImportValue.HasNegative() || i.TotalReserveOutMap.HasNegative() {
		return fault.ErrNegativeBalance
	}
	return nil
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"encoding/hex"

	"github.com/bitmark-inc/pbaasd/crosschain"
	"github.com/bitmark-inc/pbaasd/currencystate"
	"github.com/bitmark-inc/pbaasd/merkle"
	"github.com/bitmark-inc/pbaasd/notarization"
	"github.com/bitmark-inc/pbaasd/registry"
	"github.com/bitmark-inc/pbaasd/transfer"
	"github.com/bitmark-inc/pbaasd/util"
)

// TagType - type code for output payloads
type TagType uint64

// enumerate the possible record types
// this is encoded a Varint64 at start of "Packed"
const (
	// null marks beginning of list - not used as a record type
	NullTag = TagType(iota)

	// valid record types
	CurrencyStateTag         = TagType(iota) // currency state
	CoinbaseCurrencyStateTag = TagType(iota) // currency state with block flows
	NotarizationTag          = TagType(iota) // notarization
	ReserveTransferTag       = TagType(iota) // single reserve transfer
	CrossChainExportTag      = TagType(iota) // export batch or supplement
	CrossChainImportTag      = TagType(iota) // import settling an export
	CurrencyDefinitionTag    = TagType(iota) // currency launch parameters

	// this item must be last
	InvalidTag = TagType(iota)
)

// Packed - packed records are just a byte slice
type Packed []byte

// Record - anything that can be carried in an output payload
type Record interface {
	PackInto(p *util.Packer)
	Validate() error
}

// Type - returns the record type code
func (record Packed) Type() TagType {
	recordType, n := util.FromVarint64(record)
	if 0 == n {
		return NullTag
	}
	return TagType(recordType)
}

// tagOf - the tag for a record, InvalidTag if it has none
func tagOf(record Record) TagType {
	switch record.(type) {
	case *currencystate.CurrencyState:
		return CurrencyStateTag
	case *currencystate.CoinbaseCurrencyState:
		return CoinbaseCurrencyStateTag
	case *notarization.Notarization:
		return NotarizationTag
	case *transfer.ReserveTransfer:
		return ReserveTransferTag
	case *crosschain.Export:
		return CrossChainExportTag
	case *crosschain.Import:
		return CrossChainImportTag
	case *registry.Definition:
		return CurrencyDefinitionTag
	default:
		return InvalidTag
	}
}

// RecordName - returns the name of a record as a string
func RecordName(record interface{}) (string, bool) {
	switch record.(type) {
	case *currencystate.CurrencyState, currencystate.CurrencyState:
		return "CurrencyState", true

	case *currencystate.CoinbaseCurrencyState, currencystate.CoinbaseCurrencyState:
		return "CoinbaseCurrencyState", true

	case *notarization.Notarization, notarization.Notarization:
		return "Notarization", true

	case *transfer.ReserveTransfer, transfer.ReserveTransfer:
		return "ReserveTransfer", true

	case *crosschain.Export, crosschain.Export:
		return "CrossChainExport", true

	case *crosschain.Import, crosschain.Import:
		return "CrossChainImport", true

	case *registry.Definition, registry.Definition:
		return "CurrencyDefinition", true

	default:
		return "*unknown*", false
	}
}

// MakeLink - digest identifying a packed record
func (record Packed) MakeLink() merkle.Digest {
	return merkle.NewDigest(record)
}

// MarshalText - convert a packed to its hex JSON form
func (record Packed) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(len(record))
	b := make([]byte, size)
	hex.Encode(b, record)
	return b, nil
}

// UnmarshalText - convert a packed from its hex JSON form
func (record *Packed) UnmarshalText(s []byte) error {
	size := hex.DecodedLen(len(s))
	*record = make([]byte, size)
	_, err := hex.Decode(*record, s)
	return err
}

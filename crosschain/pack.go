// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package crosschain

import (
	"math"

	"github.com/bitmark-inc/pbaasd/currency"
	"github.com/bitmark-inc/pbaasd/destination"
	"github.com/bitmark-inc/pbaasd/fault"
	"github.com/bitmark-inc/pbaasd/merkle"
	"github.com/bitmark-inc/pbaasd/transfer"
	"github.com/bitmark-inc/pbaasd/util"
)

// PackInto - append the canonical encoding
//
//	version flags
//	heightStart heightEnd sourceSystem destSystem destCurrency
//	numInputs totalAmounts totalFees hash totalBurned
//	exporter firstInput                    {not if SUPPLEMENTAL}
//	count transfer*
func (e *Export) PackInto(p *util.Packer) {
	p.Uint64(uint64(e.Version))
	p.Uint64(uint64(e.Flags))
	if !e.IsSupplemental() {
		p.Uint64(uint64(e.SourceHeightStart))
		p.Uint64(uint64(e.SourceHeightEnd))
		p.Fixed(e.SourceSystemID[:])
		p.Fixed(e.DestSystemID[:])
		p.Fixed(e.DestCurrencyID[:])
		p.Int64(int64(e.NumInputs))
		e.TotalAmounts.PackInto(p)
		e.TotalFees.PackInto(p)
		p.Fixed(e.HashTransfers[:])
		e.TotalBurned.PackInto(p)
		e.Exporter.PackInto(p)
		p.Int64(int64(e.FirstInput))
	}
	p.Uint64(uint64(len(e.Transfers)))
	for i := range e.Transfers {
		e.Transfers[i].PackInto(p)
	}
}

// Pack - canonical encoding as a new buffer
func (e *Export) Pack() []byte {
	p := util.Packer{}
	e.PackInto(&p)
	return p
}

func readUint32(u *util.Unpacker) uint32 {
	n := u.Uint64()
	if n > math.MaxUint32 {
		u.Fail(fault.ErrInvalidCount)
	}
	return uint32(n)
}

func readInt32(u *util.Unpacker) int32 {
	n := u.Int64()
	if n > math.MaxInt32 || n < math.MinInt32 {
		u.Fail(fault.ErrInvalidCount)
	}
	return int32(n)
}

func readDigest(u *util.Unpacker) merkle.Digest {
	var d merkle.Digest
	copy(d[:], u.Fixed(merkle.DigestLength))
	return d
}

// ReadExport - decode one export, the unpacker carries any error
func ReadExport(u *util.Unpacker) Export {
	e := Export{
		Version: readUint32(u),
		Flags:   ExportFlags(readUint32(u)),
	}
	if !e.IsSupplemental() {
		e.SourceHeightStart = readUint32(u)
		e.SourceHeightEnd = readUint32(u)
		e.SourceSystemID = currency.ReadID(u)
		e.DestSystemID = currency.ReadID(u)
		e.DestCurrencyID = currency.ReadID(u)
		e.NumInputs = readInt32(u)
		e.TotalAmounts = currency.ReadValueMap(u)
		e.TotalFees = currency.ReadValueMap(u)
		e.HashTransfers = readDigest(u)
		e.TotalBurned = currency.ReadValueMap(u)
		e.Exporter = destination.Read(u)
		e.FirstInput = readInt32(u)
	}
	n := u.Count(MaxTransfers, fault.ErrTooManyTransfers)
	if n > 0 {
		e.Transfers = make([]transfer.ReserveTransfer, 0, n)
	}
	for i := 0; i < n && nil == u.Err(); i += 1 {
		e.Transfers = append(e.Transfers, transfer.Read(u))
	}
	if nil != u.Err() {
		return Export{}
	}
	return e
}

// UnpackExport - decode a complete buffer holding exactly one export
func UnpackExport(buffer []byte) (Export, error) {
	u := util.NewUnpacker(buffer)
	e := ReadExport(u)
	if err := u.Finish(); nil != err {
		return Export{}, err
	}
	return e, nil
}

// PackInto - append the canonical encoding
//
//	version flags sourceSystem sourceHeight importCurrency
//	importValue totalReserveOut numOutputs hash exportTxID exportTxOut
func (i *Import) PackInto(p *util.Packer) {
	p.Uint64(uint64(i.Version))
	p.Uint64(uint64(i.Flags))
	p.Fixed(i.SourceSystemID[:])
	p.Uint64(uint64(i.SourceSystemHeight))
	p.Fixed(i.ImportCurrencyID[:])
	i.ImportValue.PackInto(p)
	i.TotalReserveOutMap.PackInto(p)
	p.Int64(int64(i.NumOutputs))
	p.Fixed(i.HashTransfers[:])
	i.ExportRef().PackInto(p)
}

// Pack - canonical encoding as a new buffer
func (i *Import) Pack() []byte {
	p := util.Packer{}
	i.PackInto(&p)
	return p
}

// ReadImport - decode one import, the unpacker carries any error
func ReadImport(u *util.Unpacker) Import {
	i := Import{
		Version:            readUint32(u),
		Flags:              ImportFlags(readUint32(u)),
		SourceSystemID:     currency.ReadID(u),
		SourceSystemHeight: readUint32(u),
		ImportCurrencyID:   currency.ReadID(u),
		ImportValue:        currency.ReadValueMap(u),
		TotalReserveOutMap: currency.ReadValueMap(u),
		NumOutputs:         readInt32(u),
		HashTransfers:      readDigest(u),
	}
	ref := merkle.ReadUTXORef(u)
	i.ExportTxID = ref.Hash
	i.ExportTxOutNum = ref.N
	if nil != u.Err() {
		return Import{}
	}
	return i
}

// UnpackImport - decode a complete buffer holding exactly one import
func UnpackImport(buffer []byte) (Import, error) {
	u := util.NewUnpacker(buffer)
	i := ReadImport(u)
	if err := u.Finish(); nil != err {
		return Import{}, err
	}
	return i, nil
}

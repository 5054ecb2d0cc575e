// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"math"

	"github.com/bitmark-inc/pbaasd/currency"
	"github.com/bitmark-inc/pbaasd/fault"
	"github.com/bitmark-inc/pbaasd/util"
)

// PackInto - append the canonical encoding
//
//	version options name parent systemID currencies
//	weights conversions minPreconversion maxPreconversion
//	initialSupply startBlock endBlock importFee exportFee
func (d *Definition) PackInto(p *util.Packer) {
	p.Uint64(uint64(d.Version))
	p.Uint64(uint64(d.Options))
	p.Bytes([]byte(d.Name))
	p.Fixed(d.Parent[:])
	p.Fixed(d.SystemID[:])
	currency.PackIDs(p, d.Currencies)
	currency.PackAmounts(p, d.Weights)
	currency.PackAmounts(p, d.Conversions)
	currency.PackAmounts(p, d.MinPreconversion)
	currency.PackAmounts(p, d.MaxPreconversion)
	p.Int64(d.InitialSupply)
	p.Uint64(uint64(d.StartBlock))
	p.Uint64(uint64(d.EndBlock))
	p.Int64(d.ImportFee)
	p.Int64(d.ExportFee)
}

// Pack - canonical encoding as a new buffer
func (d *Definition) Pack() []byte {
	p := util.Packer{}
	d.PackInto(&p)
	return p
}

func readUint32(u *util.Unpacker) uint32 {
	n := u.Uint64()
	if n > math.MaxUint32 {
		u.Fail(fault.ErrInvalidCount)
	}
	return uint32(n)
}

// ReadDefinition - decode a definition, the unpacker carries any error
func ReadDefinition(u *util.Unpacker) Definition {
	d := Definition{
		Version: readUint32(u),
		Options: Options(readUint32(u)),
	}
	d.Name = string(u.Bytes(currency.MaxNameLength, fault.ErrNameTooLong))
	d.Parent = currency.ReadID(u)
	d.SystemID = currency.ReadID(u)
	d.Currencies = currency.ReadIDs(u)
	d.Weights = currency.ReadAmounts(u)
	d.Conversions = currency.ReadAmounts(u)
	d.MinPreconversion = currency.ReadAmounts(u)
	d.MaxPreconversion = currency.ReadAmounts(u)
	d.InitialSupply = u.Int64()
	d.StartBlock = readUint32(u)
	d.EndBlock = readUint32(u)
	d.ImportFee = u.Int64()
	d.ExportFee = u.Int64()
	if nil != u.Err() {
		return Definition{}
	}
	return d
}

// UnpackDefinition - decode a complete buffer
func UnpackDefinition(buffer []byte) (Definition, error) {
	u := util.NewUnpacker(buffer)
	d := ReadDefinition(u)
	if err := u.Finish(); nil != err {
		return Definition{}, err
	}
	return d, nil
}

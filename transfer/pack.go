// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transfer

import (
	"math"

	"github.com/bitmark-inc/pbaasd/currency"
	"github.com/bitmark-inc/pbaasd/destination"
	"github.com/bitmark-inc/pbaasd/fault"
	"github.com/bitmark-inc/pbaasd/util"
)

// PackInto - append the canonical encoding
//
//	version values
//	flags feeCurrencyID fees destCurrencyID
//	destSystemID     {only if CROSS_SYSTEM}
//	secondReserveID  {only if RESERVE_TO_RESERVE}
//	destination
func (t *ReserveTransfer) PackInto(p *util.Packer) {
	p.Uint64(uint64(t.Version))
	t.Values.PackInto(p)
	p.Uint64(uint64(t.Flags))
	p.Fixed(t.FeeCurrencyID[:])
	p.Int64(t.Fees)
	p.Fixed(t.DestCurrencyID[:])
	if t.IsCrossSystem() {
		p.Fixed(t.DestSystemID[:])
	}
	if t.IsReserveToReserve() {
		p.Fixed(t.SecondReserveID[:])
	}
	t.Destination.PackInto(p)
}

// Pack - canonical encoding as a new buffer
func (t *ReserveTransfer) Pack() []byte {
	p := util.Packer{}
	t.PackInto(&p)
	return p
}

// Read - decode one transfer, the unpacker carries any error
func Read(u *util.Unpacker) ReserveTransfer {
	t := ReserveTransfer{}

	version := u.Uint64()
	if version > math.MaxUint32 {
		u.Fail(fault.ErrInvalidCount)
	}
	t.Version = uint32(version)
	t.Values = currency.ReadValueMap(u)

	flags := u.Uint64()
	if flags > math.MaxUint32 {
		u.Fail(fault.ErrInvalidCount)
	}
	t.Flags = Flags(flags)
	t.FeeCurrencyID = currency.ReadID(u)
	t.Fees = u.Int64()
	t.DestCurrencyID = currency.ReadID(u)
	if t.IsCrossSystem() {
		t.DestSystemID = currency.ReadID(u)
	}
	if t.IsReserveToReserve() {
		t.SecondReserveID = currency.ReadID(u)
	}
	t.Destination = destination.Read(u)

	if nil != u.Err() {
		return ReserveTransfer{}
	}
	return t
}

// Unpack - decode a complete buffer holding exactly one transfer
func Unpack(buffer []byte) (ReserveTransfer, error) {
	u := util.NewUnpacker(buffer)
	t := Read(u)
	if err := u.Finish(); nil != err {
		return ReserveTransfer{}, err
	}
	return t, nil
}

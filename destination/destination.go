// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package destination

import (
	"github.com/bitmark-inc/pbaasd/currency"
	"github.com/bitmark-inc/pbaasd/fault"
	"github.com/bitmark-inc/pbaasd/util"
)

// flag bits layered on the base kind in the wire type byte
const (
	FlagAux     = 0x40
	FlagGateway = 0x80
	kindMask    = 0x3f
)

// size limits
const (
	MaxPayloadLength = 8192
	MaxAuxCount      = 16
)

// Gateway - a gateway that must route the transfer, and its fee
type Gateway struct {
	ID   currency.ID
	Fees int64
}

// Destination - a transfer target
//
// Aux holds alternate targets, one level deep only
type Destination struct {
	Address Address
	Aux     []Destination
	Gateway *Gateway
}

// New - a destination without attachments
func New(a Address) Destination {
	return Destination{
		Address: a,
	}
}

// Kind - base kind, KindInvalid for a missing address
func (d Destination) Kind() Kind {
	if nil == d.Address {
		return KindInvalid
	}
	return d.Address.Kind()
}

// Valid - false for the Invalid variant, a nested aux list or a
// negative gateway fee
func (d Destination) Valid() bool {
	if KindInvalid == d.Kind() {
		return false
	}
	for _, aux := range d.Aux {
		if 0 != len(aux.Aux) || KindInvalid == aux.Kind() {
			return false
		}
	}
	if nil != d.Gateway && (d.Gateway.Fees < 0 || d.Gateway.ID.IsNull()) {
		return false
	}
	return true
}

// WithoutAux - copy with the alternate destinations removed
func (d Destination) WithoutAux() Destination {
	d.Aux = nil
	if nil != d.Gateway {
		g := *d.Gateway
		d.Gateway = &g
	}
	return d
}

// TypeByte - base kind plus attachment flags as carried on the wire
func (d Destination) TypeByte() byte {
	t := byte(d.Kind())
	if 0 != len(d.Aux) {
		t |= FlagAux
	}
	if nil != d.Gateway {
		t |= FlagGateway
	}
	return t
}

// PackInto - append the canonical encoding
//
//	type    {base kind | AUX | GATEWAY}
//	payload {length prefixed}
//	count (length prefixed destination)*   {only if AUX}
//	gatewayID fees                        {only if GATEWAY}
func (d Destination) PackInto(p *util.Packer) {
	p.Fixed([]byte{d.TypeByte()})
	var payload []byte
	if nil != d.Address {
		payload = d.Address.Payload()
	}
	p.Bytes(payload)
	if 0 != len(d.Aux) {
		p.Uint64(uint64(len(d.Aux)))
		for _, aux := range d.Aux {
			p.Bytes(aux.Pack())
		}
	}
	if nil != d.Gateway {
		p.Fixed(d.Gateway.ID[:])
		p.Int64(d.Gateway.Fees)
	}
}

// Pack - canonical encoding as a new buffer
func (d Destination) Pack() []byte {
	p := util.Packer{}
	d.PackInto(&p)
	return p
}

// Read - decode a destination
//
// structural damage (truncation, oversize fields) is an error, while
// an unknown kind, a malformed payload, a nested or undecodable aux
// entry or a negative gateway fee give the Invalid destination
func Read(u *util.Unpacker) Destination {
	t := u.Fixed(1)
	payload := u.Bytes(MaxPayloadLength, fault.ErrDestinationTooLong)
	if nil != u.Err() {
		return Destination{}
	}
	typeByte := t[0]
	invalid := false

	address, ok := newAddress(Kind(typeByte&kindMask), payload)
	if !ok {
		invalid = true
	}

	var aux []Destination
	if 0 != typeByte&FlagAux {
		n := u.Count(MaxAuxCount, fault.ErrTooManyAuxDestinations)
		for i := 0; i < n; i += 1 {
			entry := u.Bytes(MaxPayloadLength, fault.ErrDestinationTooLong)
			if nil != u.Err() {
				return Destination{}
			}
			a, err := Unpack(entry)
			if nil != err || 0 != len(a.Aux) || 0 != entry[0]&FlagAux || !a.Valid() {
				invalid = true
				continue
			}
			aux = append(aux, a)
		}
	}

	var gateway *Gateway
	if 0 != typeByte&FlagGateway {
		gateway = &Gateway{
			ID: currency.ReadID(u),
		}
		gateway.Fees = u.Int64()
		if gateway.Fees < 0 || gateway.ID.IsNull() {
			invalid = true
		}
	}
	if nil != u.Err() {
		return Destination{}
	}

	if invalid {
		return Destination{
			Address: Invalid{},
		}
	}
	return Destination{
		Address: address,
		Aux:     aux,
		Gateway: gateway,
	}
}

// Unpack - decode a complete buffer
func Unpack(buffer []byte) (Destination, error) {
	u := util.NewUnpacker(buffer)
	d := Read(u)
	if err := u.Finish(); nil != err {
		return Destination{}, err
	}
	return d, nil
}

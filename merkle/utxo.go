// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/bitmark-inc/pbaasd/fault"
	"github.com/bitmark-inc/pbaasd/util"
)

// UTXORef - a transaction output: transaction id and output index
type UTXORef struct {
	Hash Digest
	N    uint32
}

// IsNull - true for the zero reference
func (r UTXORef) IsNull() bool {
	return r.Hash.IsZero() && 0 == r.N
}

// String - txid:n
func (r UTXORef) String() string {
	return fmt.Sprintf("%s:%d", r.Hash, r.N)
}

// ParseUTXORef - inverse of String
func ParseUTXORef(s string) (UTXORef, error) {
	i := strings.LastIndexByte(s, ':')
	if i < 0 {
		return UTXORef{}, fault.ErrInvalidDigest
	}
	hash, err := DigestFromString(s[:i])
	if nil != err {
		return UTXORef{}, err
	}
	n, err := strconv.ParseUint(s[i+1:], 10, 32)
	if nil != err {
		return UTXORef{}, fault.ErrInvalidCount
	}
	return UTXORef{Hash: hash, N: uint32(n)}, nil
}

// PackInto - fixed digest then Varint64 index
func (r UTXORef) PackInto(p *util.Packer) {
	p.Fixed(r.Hash[:])
	p.Uint64(uint64(r.N))
}

// ReadUTXORef - decode a reference
func ReadUTXORef(u *util.Unpacker) UTXORef {
	var r UTXORef
	copy(r.Hash[:], u.Fixed(DigestLength))
	n := u.Uint64()
	if n > 0xffffffff {
		u.Fail(fault.ErrInvalidCount)
	}
	r.N = uint32(n)
	return r
}

type utxoJSON struct {
	TxID    Digest `json:"txid"`
	VoutNum uint32 `json:"voutnum"`
}

// MarshalJSON - {"txid": …, "voutnum": …}
func (r UTXORef) MarshalJSON() ([]byte, error) {
	return json.Marshal(utxoJSON{TxID: r.Hash, VoutNum: r.N})
}

// UnmarshalJSON - inverse of MarshalJSON
func (r *UTXORef) UnmarshalJSON(data []byte) error {
	var j utxoJSON
	err := json.Unmarshal(data, &j)
	if nil != err {
		return err
	}
	r.Hash = j.TxID
	r.N = j.VoutNum
	return nil
}

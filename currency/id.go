// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package currency

import (
	"bytes"
	"crypto/sha256"
	"strings"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/pbaasd/fault"
)

// IDLength - number of bytes in a currency, system or identity ID
const IDLength = 20

// version bytes of the base58check text forms
const (
	KeyIDVersion     = 60  // "R" addresses
	ScriptIDVersion  = 85  // "b" addresses
	QuantumIDVersion = 58  // "Q" addresses
	IdentityVersion  = 102 // "i" addresses, also used for currency IDs
)

const checksumLength = 4

// maximum bytes in a currency name
const MaxNameLength = 64

// ID - currency, system or identity identifier
type ID [IDLength]byte

// IDFromBytes - convert and validate a binary ID
func IDFromBytes(buffer []byte) (ID, error) {
	var id ID
	if IDLength != len(buffer) {
		return id, fault.ErrInvalidCurrencyID
	}
	copy(id[:], buffer)
	return id, nil
}

// IDFromName - derive the ID of a currency from its name and the ID
// of its parent, names are case insensitive
func IDFromName(name string, parent ID) (ID, error) {
	var id ID
	if "" == name {
		return id, fault.ErrEmptyName
	}
	if len(name) > MaxNameLength {
		return id, fault.ErrNameTooLong
	}

	h := sha3.New256()
	if !parent.IsNull() {
		h.Write(parent[:])
	}
	h.Write([]byte(strings.ToLower(name)))
	copy(id[:], h.Sum(nil))
	return id, nil
}

// IDFromString - parse the base58check text form
func IDFromString(s string) (ID, error) {
	var id ID
	version, payload, err := DecodeBase58Check(s)
	if nil != err || IdentityVersion != version || IDLength != len(payload) {
		return id, fault.ErrInvalidCurrencyID
	}
	copy(id[:], payload)
	return id, nil
}

// EncodeBase58Check - version byte, payload and four byte double
// SHA-256 checksum as base58
func EncodeBase58Check(version byte, payload []byte) string {
	data := make([]byte, 0, 1+len(payload)+checksumLength)
	data = append(data, version)
	data = append(data, payload...)
	data = append(data, checksum(data)...)
	return base58.Encode(data)
}

// DecodeBase58Check - split and verify a base58check string
func DecodeBase58Check(s string) (byte, []byte, error) {
	data, err := base58.Decode(s)
	if nil != err || len(data) < 1+checksumLength {
		return 0, nil, fault.ErrInvalidAddress
	}
	n := len(data) - checksumLength
	if !bytes.Equal(checksum(data[:n]), data[n:]) {
		return 0, nil, fault.ErrInvalidAddress
	}
	return data[0], data[1:n], nil
}

func checksum(data []byte) []byte {
	first := sha256.Sum256(data)
	second := sha256.Sum256(first[:])
	return second[:checksumLength]
}

// IsNull - true for the all zero ID
func (id ID) IsNull() bool {
	return id == ID{}
}

// Less - byte order, the only order used for hashing and packing
func (id ID) Less(other ID) bool {
	return bytes.Compare(id[:], other[:]) < 0
}

// String - base58check text form
func (id ID) String() string {
	return EncodeBase58Check(IdentityVersion, id[:])
}

// GoString - for %#v
func (id ID) GoString() string {
	return "<ID:" + id.String() + ">"
}

// MarshalText - convert an ID into JSON
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText - convert an ID from JSON
func (id *ID) UnmarshalText(s []byte) error {
	i, err := IDFromString(string(s))
	if nil != err {
		return err
	}
	*id = i
	return nil
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package destination

import (
	"encoding/hex"

	"github.com/bitmark-inc/pbaasd/currency"
)

// Kind - base type of a destination as carried on the wire
type Kind uint8

// possible base kinds
const (
	KindInvalid          Kind = 0
	KindPublicKey        Kind = 1
	KindKeyID            Kind = 2
	KindScriptID         Kind = 3
	KindIdentityID       Kind = 4
	KindFullIdentity     Kind = 5
	KindRegisterCurrency Kind = 6
	KindQuantumID        Kind = 7
	KindNestedTransfer   Kind = 8
	KindEthAddress       Kind = 9
	KindEthNFT           Kind = 10
	KindRaw              Kind = 11
)

// String - short name for JSON and logs
func (k Kind) String() string {
	switch k {
	case KindPublicKey:
		return "pk"
	case KindKeyID:
		return "pkh"
	case KindScriptID:
		return "sh"
	case KindIdentityID:
		return "id"
	case KindFullIdentity:
		return "fullid"
	case KindRegisterCurrency:
		return "registercurrency"
	case KindQuantumID:
		return "quantum"
	case KindNestedTransfer:
		return "nestedtransfer"
	case KindEthAddress:
		return "eth"
	case KindEthNFT:
		return "ethnft"
	case KindRaw:
		return "raw"
	default:
		return "invalid"
	}
}

// Address - the base variant of a destination
//
// the set of implementations is closed, every one is declared below
type Address interface {
	Kind() Kind
	Payload() []byte
	String() string
	address()
}

// PublicKey - compressed or uncompressed secp256k1 public key
type PublicKey []byte

// KeyID - hash of a public key
type KeyID [20]byte

// ScriptID - hash of a script
type ScriptID [20]byte

// IdentityID - an identity on some system
type IdentityID currency.ID

// QuantumID - quantum safe key hash
type QuantumID [20]byte

// EthAddress - account on an Ethereum style chain
type EthAddress [20]byte

// EthNFT - a token of an Ethereum style NFT contract
type EthNFT struct {
	Contract [20]byte
	TokenID  [32]byte
}

// FullIdentity - a complete serialised identity
type FullIdentity []byte

// CurrencyRegistration - a complete serialised currency definition
type CurrencyRegistration []byte

// Raw - opaque bytes understood only by the destination system
type Raw []byte

// NestedTransfer - a packed reserve transfer to execute on arrival
type NestedTransfer []byte

// Invalid - anything that could not be resolved, consumers must reject it
type Invalid struct{}

func (PublicKey) Kind() Kind            { return KindPublicKey }
func (KeyID) Kind() Kind                { return KindKeyID }
func (ScriptID) Kind() Kind             { return KindScriptID }
func (IdentityID) Kind() Kind           { return KindIdentityID }
func (QuantumID) Kind() Kind            { return KindQuantumID }
func (EthAddress) Kind() Kind           { return KindEthAddress }
func (EthNFT) Kind() Kind               { return KindEthNFT }
func (FullIdentity) Kind() Kind         { return KindFullIdentity }
func (CurrencyRegistration) Kind() Kind { return KindRegisterCurrency }
func (Raw) Kind() Kind                  { return KindRaw }
func (NestedTransfer) Kind() Kind       { return KindNestedTransfer }
func (Invalid) Kind() Kind              { return KindInvalid }

func (a PublicKey) Payload() []byte            { return []byte(a) }
func (a KeyID) Payload() []byte                { return a[:] }
func (a ScriptID) Payload() []byte             { return a[:] }
func (a IdentityID) Payload() []byte           { return a[:] }
func (a QuantumID) Payload() []byte            { return a[:] }
func (a EthAddress) Payload() []byte           { return a[:] }
func (a FullIdentity) Payload() []byte         { return []byte(a) }
func (a CurrencyRegistration) Payload() []byte { return []byte(a) }
func (a Raw) Payload() []byte                  { return []byte(a) }
func (a NestedTransfer) Payload() []byte       { return []byte(a) }
func (Invalid) Payload() []byte                { return nil }

// Payload - contract then token id
func (a EthNFT) Payload() []byte {
	b := make([]byte, 0, len(a.Contract)+len(a.TokenID))
	b = append(b, a.Contract[:]...)
	return append(b, a.TokenID[:]...)
}

func (a PublicKey) String() string            { return hex.EncodeToString(a) }
func (a KeyID) String() string                { return currency.EncodeBase58Check(currency.KeyIDVersion, a[:]) }
func (a ScriptID) String() string             { return currency.EncodeBase58Check(currency.ScriptIDVersion, a[:]) }
func (a IdentityID) String() string           { return currency.ID(a).String() }
func (a QuantumID) String() string            { return currency.EncodeBase58Check(currency.QuantumIDVersion, a[:]) }
func (a EthAddress) String() string           { return "0x" + hex.EncodeToString(a[:]) }
func (a FullIdentity) String() string         { return hex.EncodeToString(a) }
func (a CurrencyRegistration) String() string { return hex.EncodeToString(a) }
func (a Raw) String() string                  { return hex.EncodeToString(a) }
func (a NestedTransfer) String() string       { return hex.EncodeToString(a) }
func (Invalid) String() string                { return "" }

// String - contract and token as hex
func (a EthNFT) String() string {
	return "0x" + hex.EncodeToString(a.Contract[:]) + ":0x" + hex.EncodeToString(a.TokenID[:])
}

func (PublicKey) address()            {}
func (KeyID) address()                {}
func (ScriptID) address()             {}
func (IdentityID) address()           {}
func (QuantumID) address()            {}
func (EthAddress) address()           {}
func (EthNFT) address()               {}
func (FullIdentity) address()         {}
func (CurrencyRegistration) address() {}
func (Raw) address()                  {}
func (NestedTransfer) address()       {}
func (Invalid) address()              {}

// build the variant for a base kind from its payload, false if the
// kind is unknown or the payload has the wrong shape
func newAddress(kind Kind, payload []byte) (Address, bool) {
	switch kind {
	case KindPublicKey:
		if 33 != len(payload) && 65 != len(payload) {
			return nil, false
		}
		return PublicKey(clone(payload)), true
	case KindKeyID:
		a, ok := fixed20(payload)
		return KeyID(a), ok
	case KindScriptID:
		a, ok := fixed20(payload)
		return ScriptID(a), ok
	case KindIdentityID:
		a, ok := fixed20(payload)
		return IdentityID(a), ok
	case KindQuantumID:
		a, ok := fixed20(payload)
		return QuantumID(a), ok
	case KindEthAddress:
		a, ok := fixed20(payload)
		return EthAddress(a), ok
	case KindEthNFT:
		var a EthNFT
		if 52 != len(payload) {
			return nil, false
		}
		copy(a.Contract[:], payload[:20])
		copy(a.TokenID[:], payload[20:])
		return a, true
	case KindFullIdentity:
		return FullIdentity(clone(payload)), 0 != len(payload)
	case KindRegisterCurrency:
		return CurrencyRegistration(clone(payload)), 0 != len(payload)
	case KindRaw:
		return Raw(clone(payload)), true
	case KindNestedTransfer:
		return NestedTransfer(clone(payload)), 0 != len(payload)
	default:
		return nil, false
	}
}

func fixed20(payload []byte) ([20]byte, bool) {
	var a [20]byte
	if 20 != len(payload) {
		return a, false
	}
	copy(a[:], payload)
	return a, true
}

func clone(b []byte) []byte {
	return append([]byte{}, b...)
}

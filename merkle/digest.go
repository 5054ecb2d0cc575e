// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import (
	"encoding/hex"
	"fmt"
	"hash"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/pbaasd/fault"
)

// DigestLength - number of bytes in the digest
const DigestLength = 32

// Digest - a SHA3-256 hash
//
// stored as little endian byte array and displayed as big endian
// hex, the same convention is used for transaction ids
type Digest [DigestLength]byte

// NewDigest - hash a byte slice
func NewDigest(record []byte) Digest {
	return sha3.Sum256(record)
}

// Hasher - incremental digest for records written in pieces
type Hasher struct {
	h hash.Hash
}

// NewHasher - start an incremental digest
func NewHasher() *Hasher {
	return &Hasher{
		h: sha3.New256(),
	}
}

// Write - add more data, never fails
func (h *Hasher) Write(data []byte) (int, error) {
	return h.h.Write(data)
}

// Sum - the digest of everything written so far
func (h *Hasher) Sum() Digest {
	var d Digest
	copy(d[:], h.h.Sum(nil))
	return d
}

// IsZero - true for the all zero digest
func (digest Digest) IsZero() bool {
	return digest == Digest{}
}

func reversed(d Digest) []byte {
	result := make([]byte, DigestLength)
	for i := 0; i < DigestLength; i += 1 {
		result[i] = d[DigestLength-1-i]
	}
	return result
}

// String - big endian hex for the fmt package
func (digest Digest) String() string {
	return hex.EncodeToString(reversed(digest))
}

// GoString - for %#v
func (digest Digest) GoString() string {
	return "<SHA3-256:" + digest.String() + ">"
}

// MarshalText - big endian hex text
func (digest Digest) MarshalText() ([]byte, error) {
	return []byte(digest.String()), nil
}

// UnmarshalText - big endian hex text into a digest
func (digest *Digest) UnmarshalText(s []byte) error {
	d, err := DigestFromString(string(s))
	if nil != err {
		return err
	}
	*digest = d
	return nil
}

// DigestFromString - parse the big endian hex form
func DigestFromString(s string) (Digest, error) {
	var digest Digest
	if len(s) != hex.EncodedLen(DigestLength) {
		return digest, fault.ErrInvalidDigest
	}
	buffer, err := hex.DecodeString(s)
	if nil != err {
		return digest, fault.ErrInvalidDigest
	}
	for i, v := range buffer {
		digest[DigestLength-1-i] = v
	}
	return digest, nil
}

// DigestFromBytes - convert and validate little endian binary byte slice to a digest
func DigestFromBytes(digest *Digest, buffer []byte) error {
	if DigestLength != len(buffer) {
		return fault.ErrInvalidDigest
	}
	copy(digest[:], buffer)
	return nil
}

// Format - for %x and %v verbs keep the display order
func (digest Digest) Format(f fmt.State, verb rune) {
	switch verb {
	case 'x':
		fmt.Fprint(f, hex.EncodeToString(digest[:]))
	case 'v':
		if f.Flag('#') {
			fmt.Fprint(f, digest.GoString())
			return
		}
		fmt.Fprint(f, digest.String())
	default:
		fmt.Fprint(f, digest.String())
	}
}

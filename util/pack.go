// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"github.com/bitmark-inc/pbaasd/fault"
)

// Packer - accumulates a canonical binary encoding
//
// every integer is a Varint64, signed integers are zig-zag mapped
// first and variable length fields carry a Varint64 length prefix
type Packer []byte

// Uint64 - append an unsigned integer
func (p *Packer) Uint64(value uint64) {
	*p = append(*p, ToVarint64(value)...)
}

// Int64 - append a signed integer
func (p *Packer) Int64(value int64) {
	*p = append(*p, ToVarint64(ZigZag64(value))...)
}

// Bool - append a boolean as a single byte
func (p *Packer) Bool(value bool) {
	if value {
		*p = append(*p, 1)
	} else {
		*p = append(*p, 0)
	}
}

// Bytes - append a length prefixed byte string
func (p *Packer) Bytes(data []byte) {
	*p = append(*p, ToVarint64(uint64(len(data)))...)
	*p = append(*p, data...)
}

// Fixed - append data whose length is implied by its type
func (p *Packer) Fixed(data []byte) {
	*p = append(*p, data...)
}

// Unpacker - bounded reader for data produced by Packer
//
// the first error encountered is sticky, all later reads return zero
// values, so a decoder can read a whole record and check Err once
type Unpacker struct {
	buffer []byte
	offset int
	err    error
}

// NewUnpacker - start reading at the beginning of buffer
func NewUnpacker(buffer []byte) *Unpacker {
	return &Unpacker{
		buffer: buffer,
	}
}

// Err - the first error seen
func (u *Unpacker) Err() error {
	return u.err
}

// Fail - record an error unless one is already present
func (u *Unpacker) Fail(err error) {
	if nil == u.err {
		u.err = err
	}
}

// Offset - number of bytes consumed so far
func (u *Unpacker) Offset() int {
	return u.offset
}

// Remaining - number of unread bytes
func (u *Unpacker) Remaining() int {
	return len(u.buffer) - u.offset
}

// Finish - the error state, or ErrTrailingData if anything is unread
func (u *Unpacker) Finish() error {
	if nil != u.err {
		return u.err
	}
	if u.offset != len(u.buffer) {
		return fault.ErrTrailingData
	}
	return nil
}

// Uint64 - read a minimally encoded Varint64
func (u *Unpacker) Uint64() uint64 {
	if nil != u.err {
		return 0
	}
	value, count := FromVarint64(u.buffer[u.offset:])
	if 0 == count {
		u.err = fault.ErrTruncatedRecord
		return 0
	}
	if !IsMinimalVarint64(value, count) {
		u.err = fault.ErrNonCanonicalVarint
		return 0
	}
	u.offset += count
	return value
}

// Int64 - read a zig-zag mapped signed integer
func (u *Unpacker) Int64() int64 {
	return UnZigZag64(u.Uint64())
}

// Bool - read a single byte that must be zero or one
func (u *Unpacker) Bool() bool {
	b := u.Fixed(1)
	if nil == b {
		return false
	}
	switch b[0] {
	case 0:
		return false
	case 1:
		return true
	default:
		u.Fail(fault.ErrInvalidBoolean)
		return false
	}
}

// Count - read an element count that must not exceed maximum
func (u *Unpacker) Count(maximum int, tooMany error) int {
	n := u.Uint64()
	if nil != u.err {
		return 0
	}
	if n > uint64(maximum) {
		u.err = tooMany
		return 0
	}
	return int(n)
}

// Bytes - read a length prefixed byte string of at most maximum bytes
//
// the result is a copy, it does not alias the input buffer
func (u *Unpacker) Bytes(maximum int, tooLong error) []byte {
	n := u.Count(maximum, tooLong)
	if nil != u.err {
		return nil
	}
	b := u.Fixed(n)
	if nil == b {
		return nil
	}
	return append([]byte{}, b...)
}

// Fixed - read exactly n bytes, the result aliases the input buffer
func (u *Unpacker) Fixed(n int) []byte {
	if nil != u.err {
		return nil
	}
	if n < 0 || u.Remaining() < n {
		u.err = fault.ErrTruncatedRecord
		return nil
	}
	b := u.buffer[u.offset : u.offset+n]
	u.offset += n
	return b
}

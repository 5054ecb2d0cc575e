// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/pbaasd/fault"
	"github.com/bitmark-inc/pbaasd/util"
)

func TestPackUnpack(t *testing.T) {
	p := util.Packer{}
	p.Uint64(300)
	p.Int64(-5)
	p.Bool(true)
	p.Bytes([]byte("hello"))
	p.Fixed([]byte{1, 2, 3})

	assert.Equal(t, []byte{0xac, 0x02, 0x09, 0x01, 0x05, 'h', 'e', 'l', 'l', 'o', 1, 2, 3}, []byte(p), "packed")

	u := util.NewUnpacker(p)
	assert.Equal(t, uint64(300), u.Uint64(), "uint")
	assert.Equal(t, int64(-5), u.Int64(), "int")
	assert.True(t, u.Bool(), "bool")
	assert.Equal(t, []byte("hello"), u.Bytes(10, fault.ErrNameTooLong), "bytes")
	assert.Equal(t, []byte{1, 2, 3}, u.Fixed(3), "fixed")
	assert.Nil(t, u.Finish(), "finish")
}

func TestUnpackErrors(t *testing.T) {
	u := util.NewUnpacker([]byte{0x05, 'a', 'b'})
	assert.Nil(t, u.Bytes(10, fault.ErrNameTooLong), "truncated bytes")
	assert.Equal(t, fault.ErrTruncatedRecord, u.Err(), "truncated")

	// error is sticky
	assert.Equal(t, uint64(0), u.Uint64(), "after error")
	assert.Equal(t, fault.ErrTruncatedRecord, u.Finish(), "finish")

	u = util.NewUnpacker([]byte{0x05, 'a', 'b', 'c', 'd', 'e'})
	u.Bytes(4, fault.ErrNameTooLong)
	assert.Equal(t, fault.ErrNameTooLong, u.Err(), "too long")

	u = util.NewUnpacker([]byte{0x01, 0x02})
	u.Uint64()
	assert.Equal(t, fault.ErrTrailingData, u.Finish(), "trailing")

	u = util.NewUnpacker([]byte{0x80, 0x00})
	u.Uint64()
	assert.Equal(t, fault.ErrNonCanonicalVarint, u.Err(), "padded")

	u = util.NewUnpacker([]byte{0x02})
	u.Bool()
	assert.Equal(t, fault.ErrInvalidBoolean, u.Err(), "bool")

	u = util.NewUnpacker([]byte{})
	u.Fixed(1)
	assert.Equal(t, fault.ErrTruncatedRecord, u.Err(), "empty")
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/pbaasd/util"
)

// amounts and heights as they appear in packed records
var encodings = []struct {
	name    string
	value   uint64
	encoded []byte
}{
	{"zero", 0, []byte{0x00}},
	{"single byte", 127, []byte{0x7f}},
	{"first extension", 128, []byte{0x80, 0x01}},
	{"height", 1000000, []byte{0xc0, 0x84, 0x3d}},
	{"one coin", 100000000, []byte{0x80, 0xc2, 0xd7, 0x2f}},
	{"max signed", 0x7fffffffffffffff, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f}},
	{"top bit", 0x8000000000000000, []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80}},
	{"max", 0xffffffffffffffff, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
}

func TestVarint64Encoding(t *testing.T) {
	for _, item := range encodings {
		assert.Equal(t, item.encoded, util.ToVarint64(item.value), "%s: encode", item.name)

		buffer := append(append([]byte{}, item.encoded...), 0xff, 0x01)
		value, count := util.FromVarint64(buffer)
		assert.Equal(t, item.value, value, "%s: decode", item.name)
		assert.Equal(t, len(item.encoded), count, "%s: count", item.name)
		assert.True(t, util.IsMinimalVarint64(value, count), "%s: minimal", item.name)
	}
}

func TestVarint64Truncated(t *testing.T) {
	for _, buffer := range [][]byte{
		{},
		{0x80},
		{0xc0, 0x84},
		{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
	} {
		value, count := util.FromVarint64(buffer)
		assert.Equal(t, uint64(0), value, "value for %x", buffer)
		assert.Equal(t, 0, count, "count for %x", buffer)
	}
}

func TestVarint64Padded(t *testing.T) {
	value, count := util.FromVarint64([]byte{0x80, 0x00})
	assert.Equal(t, uint64(0), value, "value")
	assert.Equal(t, 2, count, "count")
	assert.False(t, util.IsMinimalVarint64(value, count), "padded zero accepted")
}

func TestZigZag64(t *testing.T) {
	items := []struct {
		signed   int64
		unsigned uint64
	}{
		{0, 0},
		{-1, 1},
		{1, 2},
		{-100000000, 199999999},
		{0x7fffffffffffffff, 0xfffffffffffffffe},
		{-0x8000000000000000, 0xffffffffffffffff},
	}
	for _, item := range items {
		assert.Equal(t, item.unsigned, util.ZigZag64(item.signed), "zigzag %d", item.signed)
		assert.Equal(t, item.signed, util.UnZigZag64(item.unsigned), "unzigzag %d", item.unsigned)
	}
}

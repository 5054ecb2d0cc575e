// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/pbaasd/fault"
	"github.com/bitmark-inc/pbaasd/merkle"
)

func TestParseUTXORef(t *testing.T) {
	r, err := merkle.ParseUTXORef(stringDigest + ":7")
	assert.Nil(t, err, "parse")
	assert.Equal(t, expected, r.Hash, "hash")
	assert.Equal(t, uint32(7), r.N, "vout")
	assert.Equal(t, stringDigest+":7", r.String(), "string")

	_, err = merkle.ParseUTXORef(stringDigest)
	assert.Equal(t, fault.ErrInvalidDigest, err, "no vout")

	_, err = merkle.ParseUTXORef(stringDigest + ":x")
	assert.Equal(t, fault.ErrInvalidCount, err, "bad vout")

	_, err = merkle.ParseUTXORef(stringDigest + ":4294967296")
	assert.Equal(t, fault.ErrInvalidCount, err, "vout overflow")

	_, err = merkle.ParseUTXORef("abc:1")
	assert.Equal(t, fault.ErrInvalidDigest, err, "bad hash")
}

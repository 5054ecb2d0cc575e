// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/pbaasd/chain"
	"github.com/bitmark-inc/pbaasd/fault"
)

func TestValid(t *testing.T) {
	for _, name := range []string{chain.Verus, chain.Testing, chain.Local} {
		assert.True(t, chain.Valid(name), name)
	}
	for _, name := range []string{"", "bitmark", "VRSC"} {
		assert.False(t, chain.Valid(name), name)
	}
}

func TestSystemID(t *testing.T) {
	id, err := chain.SystemID(chain.Verus)
	assert.Nil(t, err, "verus")
	assert.Equal(t, "i4aZWqRz2zxfThM1adxLXkcZQebPiVZr67", id.String(), "verus system")

	testnet, err := chain.SystemID(chain.Testing)
	assert.Nil(t, err, "testing")
	assert.NotEqual(t, id, testnet, "distinct systems")

	_, err = chain.SystemID("bitmark")
	assert.Equal(t, fault.ErrInvalidChain, err, "unknown chain")
}

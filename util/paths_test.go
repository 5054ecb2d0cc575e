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

func TestEnsureAbsolute(t *testing.T) {
	items := []struct {
		directory string
		path      string
		expected  string
	}{
		{"/data", "log", "/data/log"},
		{"/data/", "./a/../b", "/data/b"},
		{"/data", "/var/log", "/var/log"},
		{"/data", "/var//log/", "/var/log"},
	}
	for i, item := range items {
		assert.Equal(t, item.expected, util.EnsureAbsolute(item.directory, item.path), "item: %d", i)
	}
}

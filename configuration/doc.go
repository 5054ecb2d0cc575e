// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - Lua configuration for pbaasd
//
// a configuration is a Lua chunk returning one table whose keys match
// the gluamapper tags of the target struct. The full standard library
// is open, and env() reads deployment settings from the environment:
//
//	M.chain = env("PBAASD_CHAIN", "vrsctest")
package configuration

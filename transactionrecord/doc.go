// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package transactionrecord - the tagged envelope around every record
// carried in a transaction output
//
//	Varint64(tag) ++ record encoding
package transactionrecord

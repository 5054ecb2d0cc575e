// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package currency - identifiers, fixed point amounts and the
// ValueMap multi-currency ledger
//
// all amounts are int64 counts of 10^-8 units, the text form of an
// amount always has eight decimals
package currency

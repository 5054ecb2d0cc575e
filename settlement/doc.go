// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package settlement - accept notarizations and settle cross-chain
// imports against their exports
//
// records arrive as tagged transaction records with the transaction
// output holding them; an export is held until the import naming it
// arrives, then the pair is reconciled and the settlement recorded
package settlement

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package crosschain - batched transfers leaving one system and the
// import records that settle them on another
//
// An export commits to an ordered batch of reserve transfers by a
// SHA3-256 hash.  Large batches are split into an authoritative record,
// which carries the header totals and the first transfers, followed by
// supplemental records that carry only further transfers.
//
// An import claims to settle exactly one export.  Reconcile checks the
// claim: same commitment, same value in, and disbursed value equal to
// what the batch actually pays out after fees, burns and conversions.
package crosschain

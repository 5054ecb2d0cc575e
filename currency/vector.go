// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package currency

import (
	"github.com/bitmark-inc/pbaasd/fault"
	"github.com/bitmark-inc/pbaasd/util"
)

// PackIDs - count then each ID in the given order
func PackIDs(p *util.Packer, ids []ID) {
	p.Uint64(uint64(len(ids)))
	for _, id := range ids {
		p.Fixed(id[:])
	}
}

// ReadIDs - decode an ordered ID list, duplicates are rejected
func ReadIDs(u *util.Unpacker) []ID {
	n := u.Count(MaxCurrencies, fault.ErrTooManyCurrencies)
	if nil != u.Err() {
		return nil
	}
	if 0 == n {
		return nil
	}
	ids := make([]ID, 0, n)
	seen := make(map[ID]struct{}, n)
	for i := 0; i < n; i += 1 {
		id := ReadID(u)
		if nil != u.Err() {
			return nil
		}
		if _, ok := seen[id]; ok {
			u.Fail(fault.ErrDuplicateCurrency)
			return nil
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// PackAmounts - count then each amount zig-zag encoded
func PackAmounts(p *util.Packer, amounts []int64) {
	p.Uint64(uint64(len(amounts)))
	for _, a := range amounts {
		p.Int64(a)
	}
}

// ReadAmounts - decode an amount vector, every entry must be in range
func ReadAmounts(u *util.Unpacker) []int64 {
	n := u.Count(MaxCurrencies, fault.ErrTooManyCurrencies)
	if nil != u.Err() {
		return nil
	}
	if 0 == n {
		return nil
	}
	amounts := make([]int64, n)
	for i := range amounts {
		amounts[i] = u.Int64()
		if nil != u.Err() {
			return nil
		}
		if !ValidAmount(amounts[i]) {
			u.Fail(fault.ErrAmountOutOfRange)
			return nil
		}
	}
	return amounts
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"github.com/bitmark-inc/pbaasd/crosschain"
	"github.com/bitmark-inc/pbaasd/fault"
	"github.com/bitmark-inc/pbaasd/util"
)

// Pack - validate a record and pack it as Varint64(tag) followed by
// the record's own encoding
func Pack(record Record) (Packed, error) {
	if nil == record {
		return nil, fault.ErrNotTransactionPack
	}
	tag := tagOf(record)
	if InvalidTag == tag {
		return nil, fault.ErrInvalidTag
	}
	if err := validate(record); nil != err {
		return nil, err
	}
	p := util.Packer{}
	p.Uint64(uint64(tag))
	record.PackInto(&p)
	return Packed(p), nil
}

// a split export head is checked without its supplementals
func validate(record Record) error {
	if e, ok := record.(*crosschain.Export); ok && e.IsPartial() {
		return e.ValidateHeader()
	}
	return record.Validate()
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/bitmark-inc/pbaasd/transactionrecord"
)

// decode a hex flag value to a record
func readRecord(m *metadata, name string, value string) (transactionrecord.Record, transactionrecord.Packed, error) {
	if "" == value {
		return nil, nil, fmt.Errorf("%s: %s", name, ErrEmptyArgument)
	}

	var packed transactionrecord.Packed
	err := packed.UnmarshalText([]byte(value))
	if nil != err {
		return nil, nil, fmt.Errorf("%s: %s", name, err)
	}
	if m.verbose {
		fmt.Fprintf(m.e, "%s: %d bytes  tag: %d\n", name, len(packed), packed.Type())
	}

	record, err := packed.Unpack()
	if nil != err {
		return nil, nil, fmt.Errorf("%s: %s", name, err)
	}
	return record, packed, nil
}

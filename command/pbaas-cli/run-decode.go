// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/pbaasd/merkle"
	"github.com/bitmark-inc/pbaasd/transactionrecord"
)

type decodeResult struct {
	Type   string                   `json:"type"`
	Link   merkle.Digest            `json:"link"`
	Valid  bool                     `json:"valid"`
	Error  string                   `json:"error,omitempty"`
	Record transactionrecord.Record `json:"record"`
}

func runDecode(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	record, packed, err := readRecord(m, "record", c.String("record"))
	if nil != err {
		return err
	}

	name, _ := transactionrecord.RecordName(record)
	result := decodeResult{
		Type:   name,
		Link:   packed.MakeLink(),
		Valid:  true,
		Record: record,
	}
	if err := record.Validate(); nil != err {
		result.Valid = false
		result.Error = err.Error()
	}

	return printJson(m.w, result)
}

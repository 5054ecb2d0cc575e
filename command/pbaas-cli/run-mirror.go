// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/pbaasd/notarization"
	"github.com/bitmark-inc/pbaasd/transactionrecord"
)

func runMirror(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	record, _, err := readRecord(m, "notarization", c.String("notarization"))
	if nil != err {
		return err
	}
	n, ok := record.(*notarization.Notarization)
	if !ok {
		return ErrNotNotarization
	}

	result, err := notarization.Mirror(n, !c.Bool("native"), m.systemID)
	if nil != err {
		return err
	}
	if err := result.Validate(); nil != err {
		return err
	}

	packed, err := transactionrecord.Pack(result)
	if nil != err {
		return err
	}
	return printJson(m.w, struct {
		Packed       transactionrecord.Packed   `json:"packed"`
		Notarization *notarization.Notarization `json:"notarization"`
	}{
		Packed:       packed,
		Notarization: result,
	})
}

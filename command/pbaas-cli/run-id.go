// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/pbaasd/currency"
)

type idResult struct {
	Name   string      `json:"name"`
	Parent currency.ID `json:"parent"`
	ID     currency.ID `json:"id"`
}

func runID(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	name := c.String("name")
	if "" == name {
		return fmt.Errorf("name: %s", ErrEmptyArgument)
	}

	parent := m.systemID
	if s := c.String("parent"); "" != s {
		var err error
		parent, err = currency.IDFromString(s)
		if nil != err {
			return fmt.Errorf("parent: %s", err)
		}
	}

	id, err := currency.IDFromName(name, parent)
	if nil != err {
		return err
	}

	return printJson(m.w, idResult{
		Name:   name,
		Parent: parent,
		ID:     id,
	})
}

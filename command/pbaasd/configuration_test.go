// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/pbaasd/chain"
	"github.com/bitmark-inc/pbaasd/currency"
	"github.com/bitmark-inc/pbaasd/fault"
	"github.com/bitmark-inc/pbaasd/registry"
)

const sampleConfiguration = `
local M = {}
M.data_directory = "."
M.chain = "LOCAL"
M.pending_expiry = "2h"
M.currencies = {
    {
        name = "basket",
        fractional = true,
        currencies = { "%s" },
        weights = { "1" },
        initial_supply = "100",
        start_block = 10,
    },
}
M.logging = {
    size = 4096,
    levels = { DEFAULT = "info" },
}
return M
`

func writeConfiguration(t *testing.T, content string) (string, string) {
	dir, err := ioutil.TempDir("", "pbaasd")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	fileName := filepath.Join(dir, "pbaasd.conf")
	err = ioutil.WriteFile(fileName, []byte(content), 0600)
	if nil != err {
		t.Fatalf("write error: %s", err)
	}
	return dir, fileName
}

func TestGetConfiguration(t *testing.T) {
	systemID, err := chain.SystemID(chain.Local)
	assert.Nil(t, err, "system")

	dir, fileName := writeConfiguration(t, fmt.Sprintf(sampleConfiguration, systemID))
	defer os.RemoveAll(dir)

	options, err := getConfiguration(fileName)
	if !assert.Nil(t, err, "configuration") {
		return
	}

	absDir, _ := filepath.Abs(dir)
	assert.Equal(t, chain.Local, options.Chain, "chain lower cased")
	assert.Equal(t, 2*time.Hour, options.pendingExpiry, "pending expiry")
	assert.Equal(t, 10*time.Minute, options.registryExpiry, "registry default")
	assert.Equal(t, filepath.Join(absDir, "data", chain.Local), options.Database.Name, "database default")
	assert.Equal(t, filepath.Join(absDir, "log"), options.Logging.Directory, "log directory")
	assert.EqualValues(t, 4096, options.Logging.Size, "log size")
	assert.Equal(t, defaultLogFile, options.Logging.File, "log file default")
	assert.Equal(t, "info", options.Logging.Levels[logger.DefaultTag], "log level")

	info, err := os.Stat(filepath.Join(absDir, "data"))
	assert.Nil(t, err, "database directory created")
	assert.True(t, info.IsDir(), "database directory")

	if !assert.Equal(t, 1, len(options.Currencies), "currencies") {
		return
	}
	d, err := options.Currencies[0].definition(systemID)
	if !assert.Nil(t, err, "definition") {
		return
	}
	assert.True(t, d.IsFractional(), "fractional")
	assert.Equal(t, systemID, d.Parent, "default parent")
	assert.Equal(t, systemID, d.SystemID, "system")
	assert.Equal(t, []currency.ID{systemID}, d.Currencies, "reserves")
	assert.Equal(t, []int64{currency.Unit}, d.Weights, "weights")
	assert.Equal(t, int64(100*currency.Unit), d.InitialSupply, "supply")
	assert.Equal(t, uint32(10), d.StartBlock, "start")
}

func TestGetConfigurationErrors(t *testing.T) {
	items := []string{
		`return { data_directory = ".", chain = "bitmark" }`,
		`return { data_directory = "" }`,
		`return { data_directory = ".", pending_expiry = "soon" }`,
		`return { data_directory = ".", database = { name = "a/b" } }`,
		`return "not a table"`,
	}
	for i, content := range items {
		dir, fileName := writeConfiguration(t, content)
		_, err := getConfiguration(fileName)
		assert.NotNil(t, err, "item: %d", i)
		os.RemoveAll(dir)
	}
}

func TestCurrencyDefinition(t *testing.T) {
	systemID, _ := chain.SystemID(chain.Local)

	c := CurrencyType{
		Name:        "fixed",
		Currencies:  []string{systemID.String()},
		Conversions: []string{"0.5"},
		ImportFee:   "0.0001",
	}
	d, err := c.definition(systemID)
	if !assert.Nil(t, err, "fixed") {
		return
	}
	assert.False(t, d.IsFractional(), "not fractional")
	assert.Equal(t, []int64{currency.Unit / 2}, d.Conversions, "conversions")
	assert.Equal(t, int64(10000), d.ImportFee, "import fee")
	assert.Equal(t, uint32(registry.Version), d.Version, "version")

	c.Conversions = []string{"half"}
	_, err = c.definition(systemID)
	assert.Equal(t, fault.ErrInvalidAmount, errors.Cause(err), "bad amount")

	c.Conversions = nil
	c.Parent = "not-an-address"
	_, err = c.definition(systemID)
	assert.NotNil(t, err, "bad parent")

	c.Parent = ""
	c.Fractional = true
	_, err = c.definition(systemID)
	assert.Equal(t, fault.ErrInvalidWeights, errors.Cause(err), "missing weights")
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/pbaasd/chain"
	"github.com/bitmark-inc/pbaasd/configuration"
	"github.com/bitmark-inc/pbaasd/currency"
	"github.com/bitmark-inc/pbaasd/registry"
	"github.com/bitmark-inc/pbaasd/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultLevelDBDirectory = "data"
	defaultVerusDatabase    = chain.Verus
	defaultTestingDatabase  = chain.Testing
	defaultLocalDatabase    = chain.Local

	defaultLogDirectory = "log"
	defaultLogFile      = "pbaasd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultRateBurst = 100 // records accepted at once when rate limited

	defaultPendingExpiry  = "24h"
	defaultRegistryExpiry = "10m"
)

// LoglevelMap - to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		logger.DefaultTag: "critical",
	}
)

// DatabaseType - leveldb location
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// CurrencyType - a currency launched by this node
//
// currencies and parent are i-addresses, a blank parent is the chain's
// own system; all amounts are decimal text
type CurrencyType struct {
	Name             string   `gluamapper:"name" json:"name"`
	Parent           string   `gluamapper:"parent" json:"parent"`
	Fractional       bool     `gluamapper:"fractional" json:"fractional"`
	Token            bool     `gluamapper:"token" json:"token"`
	Currencies       []string `gluamapper:"currencies" json:"currencies"`
	Weights          []string `gluamapper:"weights" json:"weights"`
	Conversions      []string `gluamapper:"conversions" json:"conversions"`
	MinPreconversion []string `gluamapper:"min_preconversion" json:"min_preconversion"`
	MaxPreconversion []string `gluamapper:"max_preconversion" json:"max_preconversion"`
	InitialSupply    string   `gluamapper:"initial_supply" json:"initial_supply"`
	StartBlock       uint32   `gluamapper:"start_block" json:"start_block"`
	EndBlock         uint32   `gluamapper:"end_block" json:"end_block"`
	ImportFee        string   `gluamapper:"import_fee" json:"import_fee"`
	ExportFee        string   `gluamapper:"export_fee" json:"export_fee"`
}

// Configuration - the whole configuration file
type Configuration struct {
	DataDirectory  string               `gluamapper:"data_directory" json:"data_directory"`
	PidFile        string               `gluamapper:"pidfile" json:"pidfile"`
	Chain          string               `gluamapper:"chain" json:"chain"`
	PendingExpiry  string               `gluamapper:"pending_expiry" json:"pending_expiry"`
	RegistryExpiry string               `gluamapper:"registry_expiry" json:"registry_expiry"`
	RateLimit      float64              `gluamapper:"rate_limit" json:"rate_limit"`
	RateBurst      int                  `gluamapper:"rate_burst" json:"rate_burst"`
	Database       DatabaseType         `gluamapper:"database" json:"database"`
	Currencies     []CurrencyType       `gluamapper:"currencies" json:"currencies"`
	Logging        logger.Configuration `gluamapper:"logging" json:"logging"`

	pendingExpiry  time.Duration
	registryExpiry time.Duration
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory:  defaultDataDirectory,
		PidFile:        "", // no PidFile by default
		Chain:          chain.Verus,
		PendingExpiry:  defaultPendingExpiry,
		RegistryExpiry: defaultRegistryExpiry,

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      defaultVerusDatabase,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options); err != nil {
		return nil, err
	}

	// abort if the chain name is not recognised
	options.Chain = strings.ToLower(options.Chain)
	if !chain.Valid(options.Chain) {
		return nil, fmt.Errorf("Chain: %q is not supported", options.Chain)
	}

	// if database was not changed from default
	if options.Database.Name == defaultVerusDatabase {
		switch options.Chain {
		case chain.Verus:
			// already correct default
		case chain.Testing:
			options.Database.Name = defaultTestingDatabase
		case chain.Local:
			options.Database.Name = defaultLocalDatabase
		default:
			return nil, fmt.Errorf("Chain: %s no default database setting", options.Chain)
		}
	}

	if options.RateLimit < 0 || options.RateBurst < 0 {
		return nil, fmt.Errorf("rate_limit: %g  rate_burst: %d must not be negative", options.RateLimit, options.RateBurst)
	}
	if 0 == options.RateBurst {
		options.RateBurst = defaultRateBurst
	}

	options.pendingExpiry, err = time.ParseDuration(options.PendingExpiry)
	if nil != err {
		return nil, errors.Wrap(err, "pending_expiry")
	}
	options.registryExpiry, err = time.ParseDuration(options.RegistryExpiry)
	if nil != err {
		return nil, errors.Wrap(err, "registry_expiry")
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("Path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("Path: %q is not a directory", options.DataDirectory)
	}

	// optional absolute paths i.e. blank or an absolute path
	if "" != options.PidFile {
		options.PidFile = util.EnsureAbsolute(options.DataDirectory, options.PidFile)
	}

	// fail if any of these are not simple file names i.e. must
	// not contain path seperator
	for _, f := range []string{options.Database.Name, options.Logging.File} {
		switch filepath.Dir(f) {
		case "", ".":
		default:
			return nil, fmt.Errorf("Files: %q is not plain name", f)
		}
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{
		&options.Database.Directory,
		&options.Logging.Directory,
	} {
		*d = util.EnsureAbsolute(options.DataDirectory, *d)
		if err := os.MkdirAll(*d, 0700); nil != err {
			return nil, err
		}
	}
	options.Database.Name = util.EnsureAbsolute(options.Database.Directory, options.Database.Name)

	// done
	return options, nil
}

// convert a configured currency to its launch definition
func (c *CurrencyType) definition(systemID currency.ID) (*registry.Definition, error) {
	d := &registry.Definition{
		Version:    registry.Version,
		Name:       c.Name,
		Parent:     systemID,
		SystemID:   systemID,
		StartBlock: c.StartBlock,
		EndBlock:   c.EndBlock,
	}
	if c.Fractional {
		d.Options |= registry.OptionFractional
	}
	if c.Token {
		d.Options |= registry.OptionToken
	}

	var err error
	if "" != c.Parent {
		d.Parent, err = currency.IDFromString(c.Parent)
		if nil != err {
			return nil, errors.Wrapf(err, "currency: %q  parent", c.Name)
		}
	}

	for _, s := range c.Currencies {
		id, err := currency.IDFromString(s)
		if nil != err {
			return nil, errors.Wrapf(err, "currency: %q  reserve: %q", c.Name, s)
		}
		d.Currencies = append(d.Currencies, id)
	}

	vectors := []struct {
		name   string
		text   []string
		result *[]int64
	}{
		{"weights", c.Weights, &d.Weights},
		{"conversions", c.Conversions, &d.Conversions},
		{"min_preconversion", c.MinPreconversion, &d.MinPreconversion},
		{"max_preconversion", c.MaxPreconversion, &d.MaxPreconversion},
	}
	for _, v := range vectors {
		for _, s := range v.text {
			a, err := currency.ParseAmount(s)
			if nil != err {
				return nil, errors.Wrapf(err, "currency: %q  %s: %q", c.Name, v.name, s)
			}
			*v.result = append(*v.result, a)
		}
	}

	scalars := []struct {
		name   string
		text   string
		result *int64
	}{
		{"initial_supply", c.InitialSupply, &d.InitialSupply},
		{"import_fee", c.ImportFee, &d.ImportFee},
		{"export_fee", c.ExportFee, &d.ExportFee},
	}
	for _, v := range scalars {
		if "" == v.text {
			continue
		}
		*v.result, err = currency.ParseAmount(v.text)
		if nil != err {
			return nil, errors.Wrapf(err, "currency: %q  %s: %q", c.Name, v.name, v.text)
		}
	}

	err = d.Validate()
	if nil != err {
		return nil, errors.Wrapf(err, "currency: %q", c.Name)
	}
	return d, nil
}

// zero rate means unlimited
func (c *Configuration) limit() rate.Limit {
	if 0 == c.RateLimit {
		return rate.Inf
	}
	return rate.Limit(c.RateLimit)
}

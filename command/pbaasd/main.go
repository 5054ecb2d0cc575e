// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/pbaasd/background"
	"github.com/bitmark-inc/pbaasd/chain"
	"github.com/bitmark-inc/pbaasd/counter"
	"github.com/bitmark-inc/pbaasd/currency"
	"github.com/bitmark-inc/pbaasd/fault"
	"github.com/bitmark-inc/pbaasd/registry"
	"github.com/bitmark-inc/pbaasd/settlement"
	"github.com/bitmark-inc/pbaasd/storage"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// general info
	log.Infof("chain: %s", theConfiguration.Chain)
	log.Infof("database: %q", theConfiguration.Database.Name)

	// start the data storage
	log.Info("initialise storage")
	err = storage.Initialise(theConfiguration.Database.Name, false)
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer storage.Finalise()

	// these commands are allowed to access the internal database
	if len(arguments) > 0 && processDataCommand(log, arguments, theConfiguration) {
		return
	}

	systemID, err := chain.SystemID(theConfiguration.Chain)
	if nil != err {
		log.Criticalf("chain: %q  error: %s", theConfiguration.Chain, err)
		exitwithstatus.Message("chain: %q  error: %s", theConfiguration.Chain, err)
	}
	log.Infof("system: %s", systemID)

	reg := registry.NewCached(storage.Registry{}, theConfiguration.registryExpiry)

	log.Info("initialise settlement")
	settler, err := settlement.New(systemID, reg, settlement.Database{}, theConfiguration.pendingExpiry)
	if nil != err {
		log.Criticalf("settlement initialise error: %s", err)
		exitwithstatus.Message("settlement initialise error: %s", err)
	}

	err = launchCurrencies(log, settler, reg, systemID, theConfiguration.Currencies)
	if nil != err {
		log.Criticalf("currency launch error: %s", err)
		exitwithstatus.Message("currency launch error: %s", err)
	}

	// infinite rate means unlimited
	limiter := rate.NewLimiter(theConfiguration.limit(), theConfiguration.RateBurst)
	log.Infof("rate limit: %g/s  burst: %d", theConfiguration.RateLimit, theConfiguration.RateBurst)

	counts := &counter.Statistics{}
	processList := background.Processes{
		&statistics{
			log:      logger.New("statistics"),
			delay:    statsDelay,
			counts:   counts,
			pending:  settler,
			registry: reg,
		},
	}

	r := &reloader{
		log:      logger.New("reload"),
		chain:    theConfiguration.Chain,
		systemID: systemID,
		settler:  settler,
		registry: reg,
		limiter:  limiter,
	}
	watcher, err := newConfigWatcher(logger.New("watcher"), configurationFile, r.apply)
	if nil != err {
		log.Errorf("configuration watcher error: %s", err)
	} else {
		processList = append(processList, watcher)
	}

	processes := background.Start(processList, nil)
	defer processes.Stop()

	// records arrive on stdin, results are written to stdout
	done := make(chan error, 1)
	go func() {
		done <- processStream(logger.New("input"), settler, limiter, counts, os.Stdin, os.Stdout)
	}()

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-ch:
		log.Infof("received signal: %v", sig)
		if 0 == len(options["quiet"]) {
			fmt.Fprintf(os.Stderr, "\nreceived signal: %v\n", sig)
		}
	case err := <-done:
		if nil != err {
			log.Errorf("input error: %s", err)
		}
		log.Infof("end of input  pending exports: %d", settler.PendingExports())
	}

	log.Info("shutting down…")
}

// store the definitions of configured currencies not yet known
func launchCurrencies(log *logger.L, settler *settlement.Settler, reg registry.Registry, systemID currency.ID, currencies []CurrencyType) error {
	for _, c := range currencies {
		d, err := c.definition(systemID)
		if nil != err {
			return err
		}
		id, _ := d.ID()
		_, err = reg.Definition(id)
		if nil == err {
			log.Debugf("currency: %s  id: %s  already defined", d.Name, id)
			continue
		}
		if !fault.IsErrNotFound(err) {
			return err
		}
		err = settler.AddDefinition(d)
		if nil != err {
			return err
		}
		log.Infof("currency: %s  id: %s  defined", d.Name, id)
	}
	return nil
}

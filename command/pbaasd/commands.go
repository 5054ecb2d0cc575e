// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/pbaasd/chain"
	"github.com/bitmark-inc/pbaasd/currency"
	"github.com/bitmark-inc/pbaasd/merkle"
	"github.com/bitmark-inc/pbaasd/storage"
)

// setup command handler
//
// commands that cannot access any internal database or states or the
// configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "start", "run":
		return false // continue processing

	case "config-test", "cfg", "currencies", "c", "notarizations", "n", "state", "s", "settled", "x":
		return false // defer processing until configuration is read

	case "version", "v":
		fmt.Printf("%s\n", version)

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}

		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)      - display this message\n\n")
		fmt.Printf("  version                    (v)      - display version sting\n\n")

		fmt.Printf("  start                      (run)    - settle records read from stdin, same as no arguments\n")
		fmt.Printf("                                        one \"txid:vout hex\" per line\n")
		fmt.Printf("\n")

		fmt.Printf("  config-test                (cfg)    - just check the configuration file\n")
		fmt.Printf("\n")

		fmt.Printf("  currencies                 (c)      - list the configured currencies with their ids\n")
		fmt.Printf("\n")

		fmt.Printf("  notarizations ID           (n)      - dump notarization history of a currency as JSON\n")
		fmt.Printf("\n")

		fmt.Printf("  state ID                   (s)      - dump latest notarized state of a currency as JSON\n")
		fmt.Printf("\n")

		fmt.Printf("  settled TXID:VOUT          (x)      - dump the import that settled an export as JSON\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	// indicate processing complete and prefor normal exit from main
	return true
}

// configuration command handler
//
// commands that only need the configuration
func processConfigCommand(arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "config-test", "cfg":
		fmt.Printf("configuration:\n")
		printJSON(options)

	case "currencies", "c":
		systemID, err := chain.SystemID(options.Chain)
		if nil != err {
			exitwithstatus.Message("chain: %q  error: %s", options.Chain, err)
		}
		for _, c := range options.Currencies {
			d, err := c.definition(systemID)
			if nil != err {
				exitwithstatus.Message("error: %s", err)
			}
			id, _ := d.ID()
			fmt.Printf("%-20s %s\n", d.Name, id)
		}

	default:
		return false
	}

	return true
}

// data command handler
//
// commands that read the internal database
func processDataCommand(log *logger.L, arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "start", "run":
		return false // continue processing

	case "notarizations", "n":
		id := currencyArgument(arguments)
		history, err := storage.Notarizations(id)
		if nil != err {
			exitwithstatus.Message("notarizations: %s  error: %s", id, err)
		}
		log.Infof("notarizations: %s  count: %d", id, len(history))
		printJSON(history)

	case "state", "s":
		id := currencyArgument(arguments)
		state, err := storage.LatestCurrencyState(id)
		if nil != err {
			exitwithstatus.Message("state: %s  error: %s", id, err)
		}
		printJSON(state)

	case "settled", "x":
		if 1 != len(arguments) {
			exitwithstatus.Message("missing TXID:VOUT argument")
		}
		ref, err := merkle.ParseUTXORef(arguments[0])
		if nil != err {
			exitwithstatus.Message("export: %q  error: %s", arguments[0], err)
		}
		imp, err := storage.SettledImport(ref)
		if nil != err {
			exitwithstatus.Message("export: %s  error: %s", ref, err)
		}
		printJSON(imp)

	default:
		return false
	}

	return true
}

func currencyArgument(arguments []string) currency.ID {
	if 1 != len(arguments) {
		exitwithstatus.Message("missing currency ID argument")
	}
	id, err := currency.IDFromString(arguments[0])
	if nil != err {
		exitwithstatus.Message("currency: %q  error: %s", arguments[0], err)
	}
	return id
}

func printJSON(item interface{}) {
	buffer, err := json.MarshalIndent(item, "", "  ")
	if nil != err {
		exitwithstatus.Message("json error: %s", err)
	}
	os.Stdout.Write(buffer)
	fmt.Printf("\n")
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/pbaasd/chain"
	"github.com/bitmark-inc/pbaasd/currency"
)

type metadata struct {
	network  string
	systemID currency.ID
	verbose  bool
	e        io.Writer
	w        io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	app := newApp(os.Stdout, os.Stderr)
	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newApp(w io.Writer, e io.Writer) *cli.App {

	app := cli.NewApp()
	app.Name = "pbaas-cli"
	app.Usage = "inspect cross-chain records offline"
	app.Version = version
	app.HideVersion = true
	app.Metadata = make(map[string]interface{})

	app.Writer = w
	app.ErrWriter = e

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "network, n",
			Value: chain.Verus,
			Usage: " interpret records for `NETWORK` [vrsc|vrsctest|local]",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "decode",
			Usage:     "decode a hex record to JSON",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "record, r",
					Value: "",
					Usage: "*packed record `HEX`",
				},
			},
			Action: runDecode,
		},
		{
			Name:      "id",
			Usage:     "currency i-address from its name",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "name, N",
					Value: "",
					Usage: "*currency `NAME`",
				},
				cli.StringFlag{
					Name:  "parent, p",
					Value: "",
					Usage: " parent currency `ID` [network system]",
				},
			},
			Action: runID,
		},
		{
			Name:      "price",
			Usage:     "reserve prices of a currency state",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "state, s",
					Value: "",
					Usage: "*packed currency state `HEX`",
				},
				cli.StringFlag{
					Name:  "reserve, r",
					Value: "",
					Usage: " convert from reserve currency `ID`",
				},
				cli.StringFlag{
					Name:  "amount, a",
					Value: "",
					Usage: " reserve `AMOUNT` to convert",
				},
				cli.BoolFlag{
					Name:  "estimate, e",
					Usage: " add unrounded decimal prices",
				},
			},
			Action: runPrice,
		},
		{
			Name:      "mirror",
			Usage:     "view a notarization from the other system",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "notarization, N",
					Value: "",
					Usage: "*packed notarization `HEX`",
				},
				cli.BoolFlag{
					Name:  "native",
					Usage: " undo a mirror instead",
				},
			},
			Action: runMirror,
		},
		{
			Name:   "version",
			Usage:  "display pbaas-cli version",
			Action: runVersion,
		},
	}

	app.Before = func(c *cli.Context) error {

		network := c.GlobalString("network")
		switch network {
		case chain.Verus, "live":
			network = chain.Verus
		case chain.Testing, "test", "testing":
			network = chain.Testing
		case chain.Local, "regression":
			network = chain.Local
		default:
			return fmt.Errorf("network: %q can only be vrsc/vrsctest/local", network)
		}

		systemID, err := chain.SystemID(network)
		if nil != err {
			return err
		}

		m := &metadata{
			network:  network,
			systemID: systemID,
			verbose:  c.GlobalBool("verbose"),
			e:        c.App.ErrWriter,
			w:        c.App.Writer,
		}
		if m.verbose {
			fmt.Fprintf(m.e, "network: %s  system: %s\n", network, systemID)
		}
		c.App.Metadata["config"] = m
		return nil
	}

	return app
}

func runVersion(c *cli.Context) error {
	fmt.Fprintf(c.App.Writer, "%s\n", version)
	return nil
}

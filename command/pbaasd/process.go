// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/pbaasd/counter"
	"github.com/bitmark-inc/pbaasd/crosschain"
	"github.com/bitmark-inc/pbaasd/fault"
	"github.com/bitmark-inc/pbaasd/merkle"
	"github.com/bitmark-inc/pbaasd/notarization"
	"github.com/bitmark-inc/pbaasd/registry"
	"github.com/bitmark-inc/pbaasd/settlement"
	"github.com/bitmark-inc/pbaasd/transactionrecord"
)

// longest accepted input line
const maximumLineLength = 1024 * 1024

// Processor - the part of the settler driven by the input stream
type Processor interface {
	Process(merkle.UTXORef, transactionrecord.Packed) (transactionrecord.Record, error)
}

var _ Processor = (*settlement.Settler)(nil)

// the JSON line written for every input line
type result struct {
	Output string                   `json:"output"`
	Type   string                   `json:"type,omitempty"`
	Record transactionrecord.Record `json:"record,omitempty"`
	Error  string                   `json:"error,omitempty"`
}

// read "txid:vout hex" lines until EOF, blank lines and lines
// starting with '#' are skipped
//
// a nil limiter processes lines as fast as they arrive
func processStream(log *logger.L, processor Processor, limiter *rate.Limiter, counts *counter.Statistics, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 4096), maximumLineLength)
	encoder := json.NewEncoder(out)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if "" == line || '#' == line[0] {
			continue
		}
		n := counts.Lines.Increment()
		limit(limiter)

		r := processLine(processor, line)
		if "" != r.Error {
			counts.Failed.Increment()
			log.Warnf("line: %d  output: %q  error: %s", n, r.Output, r.Error)
		} else {
			count(counts, r.Record)
		}
		err := encoder.Encode(r)
		if nil != err {
			return err
		}
	}
	log.Infof("processed: %d  failed: %d", counts.Lines.Uint64(), counts.Failed.Uint64())
	return scanner.Err()
}

// delay until the limiter allows one more record
func limit(limiter *rate.Limiter) {
	if nil == limiter {
		return
	}
	r := limiter.Reserve()
	if r.OK() {
		time.Sleep(r.Delay())
	}
}

func count(counts *counter.Statistics, record transactionrecord.Record) {
	switch record.(type) {
	case *crosschain.Export:
		counts.Exports.Increment()
	case *crosschain.Import:
		counts.Imports.Increment()
	case *notarization.Notarization:
		counts.Notarizations.Increment()
	case *registry.Definition:
		counts.Definitions.Increment()
	}
}

func processLine(processor Processor, line string) result {
	fields := strings.Fields(line)
	if 2 != len(fields) {
		return result{
			Output: line,
			Error:  fault.ErrMalformedInput.Error(),
		}
	}
	r := result{
		Output: fields[0],
	}

	ref, err := merkle.ParseUTXORef(fields[0])
	if nil != err {
		r.Error = err.Error()
		return r
	}

	var packed transactionrecord.Packed
	err = packed.UnmarshalText([]byte(fields[1]))
	if nil != err {
		r.Error = fault.ErrMalformedInput.Error()
		return r
	}

	record, err := processor.Process(ref, packed)
	if nil != err {
		r.Error = err.Error()
		return r
	}
	r.Type, _ = transactionrecord.RecordName(record)
	r.Record = record
	return r
}

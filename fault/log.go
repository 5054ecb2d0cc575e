// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
)

// hold a logger channel for last attempt to log something
var globalData struct {
	sync.Mutex
	log *logger.L
}

// Initialise - setup a log channel, logger must already be initialised
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if nil != globalData.log {
		return ErrAlreadyInitialised
	}
	globalData.log = logger.New("PANIC")
	if nil == globalData.log {
		return ErrInvalidLoggerChannel
	}
	return nil
}

// Finalise - flush any data
func Finalise() {
	globalData.Lock()
	defer globalData.Unlock()

	if nil != globalData.log {
		globalData.log.Flush()
		globalData.log = nil
	}
}

// Criticalf - log a formatted string with the caller's position
func Criticalf(format string, arguments ...interface{}) {
	f, a := withCaller(format, arguments)
	internalCriticalf(f, a...)
}

// Panicf - log a formatted message with the caller's position and abort
//
// only for broken internal invariants, never for bad input
func Panicf(format string, arguments ...interface{}) {
	f, a := withCaller(format, arguments)
	message := fmt.Sprintf(f, a...)
	internalCriticalf("%s", message)
	time.Sleep(100 * time.Millisecond) // to allow logging output
	panic(message)
}

// PanicIfError - conditional panic
func PanicIfError(message string, err error) {
	if nil == err {
		return
	}
	Panicf("%s failed with error: %v", message, err)
}

func withCaller(format string, arguments []interface{}) (string, []interface{}) {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return format, arguments
	}
	a := make([]interface{}, 2, 2+len(arguments))
	a[0] = file
	a[1] = line
	return "(%q:%d) " + format, append(a, arguments...)
}

// handle an uninitialised logger channel
func internalCriticalf(format string, arguments ...interface{}) {
	globalData.Lock()
	log := globalData.log
	globalData.Unlock()

	if nil == log {
		fmt.Printf("*** "+format+"\n", arguments...)
	} else {
		log.Criticalf(format, arguments...)
		log.Flush() // make sure log file is saved
	}
}

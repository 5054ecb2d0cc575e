// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package counter - event counts shared between goroutines
package counter

import (
	"sync/atomic"
)

// Counter - a 64 bit count safe for concurrent use
type Counter uint64

// Increment - add 1 to a counter, returns new value
func (ic *Counter) Increment() uint64 {
	return atomic.AddUint64((*uint64)(ic), 1)
}

// Uint64 - returns current value
func (ic *Counter) Uint64() uint64 {
	return atomic.LoadUint64((*uint64)(ic))
}

// Statistics - the counts kept while records are processed
type Statistics struct {
	Lines         Counter
	Failed        Counter
	Exports       Counter
	Imports       Counter
	Notarizations Counter
	Definitions   Counter
}

// Snapshot - current values by name
func (s *Statistics) Snapshot() map[string]uint64 {
	return map[string]uint64{
		"lines":         s.Lines.Uint64(),
		"failed":        s.Failed.Uint64(),
		"exports":       s.Exports.Uint64(),
		"imports":       s.Imports.Uint64(),
		"notarizations": s.Notarizations.Uint64(),
		"definitions":   s.Definitions.Uint64(),
	}
}

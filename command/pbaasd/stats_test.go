// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/pbaasd/background"
	"github.com/bitmark-inc/pbaasd/counter"
)

type fakeCounts struct {
	calls int64
}

func (f *fakeCounts) PendingExports() int {
	atomic.AddInt64(&f.calls, 1)
	return 2
}

func (f *fakeCounts) Count() int {
	return 3
}

func TestStatistics(t *testing.T) {
	f := &fakeCounts{}
	counts := &counter.Statistics{}
	counts.Lines.Increment()

	b := background.Start(background.Processes{
		&statistics{
			log:      logger.New("statistics"),
			delay:    5 * time.Millisecond,
			counts:   counts,
			pending:  f,
			registry: f,
		},
	}, nil)
	time.Sleep(30 * time.Millisecond)
	b.Stop()

	// at least one tick plus the final report
	assert.True(t, atomic.LoadInt64(&f.calls) >= 2, "reports: %d", atomic.LoadInt64(&f.calls))
}

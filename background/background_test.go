// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/pbaasd/background"
)

type ticker struct {
	ticks   uint64
	stopped uint64
	args    interface{}
}

func (p *ticker) Run(args interface{}, shutdown <-chan struct{}) {
	p.args = args
loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-time.After(time.Millisecond):
			atomic.AddUint64(&p.ticks, 1)
		}
	}
	atomic.StoreUint64(&p.stopped, 1)
}

func TestStartStop(t *testing.T) {
	p1 := &ticker{}
	p2 := &ticker{}

	b := background.Start(background.Processes{p1, p2}, "arguments")
	time.Sleep(50 * time.Millisecond)
	b.Stop()

	for i, p := range []*ticker{p1, p2} {
		assert.Equal(t, uint64(1), atomic.LoadUint64(&p.stopped), "process: %d returned", i)
		assert.NotEqual(t, uint64(0), atomic.LoadUint64(&p.ticks), "process: %d ran", i)
		assert.Equal(t, "arguments", p.args, "process: %d args", i)
	}

	// a second stop is harmless
	b.Stop()
}

func TestStopNil(t *testing.T) {
	var b *background.T
	b.Stop()
}

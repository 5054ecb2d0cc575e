// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"runtime"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/pbaasd/counter"
)

const (
	statsDelay = 60 * time.Second
	mega       = 1048576
)

// sources of the periodic report
type pendingCounter interface {
	PendingExports() int
}

type cachedCounter interface {
	Count() int
}

// background process logging counts and memory use
type statistics struct {
	log      *logger.L
	delay    time.Duration
	counts   *counter.Statistics
	pending  pendingCounter
	registry cachedCounter
}

func (s *statistics) Run(args interface{}, shutdown <-chan struct{}) {
	s.log.Info("starting…")

	ticker := time.NewTicker(s.delay)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-ticker.C:
			s.report()
		}
	}
	s.report()
	s.log.Info("stopped")
}

func (s *statistics) report() {
	text, err := json.Marshal(s.counts.Snapshot())
	if nil != err {
		s.log.Errorf("marshal error: %s", err)
	} else {
		s.log.Infof("counts: %s", text)
	}
	s.log.Infof("pending exports: %d  cached definitions: %d", s.pending.PendingExports(), s.registry.Count())

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	a := m.Alloc / mega
	t := m.TotalAlloc / mega
	v := m.Sys / mega
	s.log.Debugf("allocated: %d M  cumulative: %d M  OS virtual: %d M", a, t, v)
}

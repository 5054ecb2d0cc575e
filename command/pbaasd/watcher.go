// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/pbaasd/currency"
	"github.com/bitmark-inc/pbaasd/fault"
	"github.com/bitmark-inc/pbaasd/registry"
	"github.com/bitmark-inc/pbaasd/settlement"
)

// background process re-reading the configuration file when it changes
//
// the directory is watched so that editors replacing the file by
// rename are still seen
type configWatcher struct {
	log      *logger.L
	watcher  *fsnotify.Watcher
	fileName string
	reload   func(*Configuration) error
}

func newConfigWatcher(log *logger.L, fileName string, reload func(*Configuration) error) (*configWatcher, error) {
	fileName, err := filepath.Abs(filepath.Clean(fileName))
	if nil != err {
		return nil, err
	}
	if _, err := os.Stat(fileName); nil != err {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		return nil, err
	}
	err = watcher.Add(filepath.Dir(fileName))
	if nil != err {
		watcher.Close()
		return nil, err
	}

	return &configWatcher{
		log:      log,
		watcher:  watcher,
		fileName: fileName,
		reload:   reload,
	}, nil
}

func (w *configWatcher) Run(args interface{}, shutdown <-chan struct{}) {
	w.log.Infof("watching: %s", w.fileName)
	defer w.watcher.Close()

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case event, ok := <-w.watcher.Events:
			if !ok {
				break loop
			}
			if filepath.Base(event.Name) != filepath.Base(w.fileName) {
				continue loop
			}
			w.log.Debugf("file event: %v", event)
			if isConfigChange(event) {
				w.changed()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				break loop
			}
			w.log.Errorf("watcher error: %s", err)
		}
	}
	w.log.Info("stopped")
}

func (w *configWatcher) changed() {
	c, err := getConfiguration(w.fileName)
	if nil != err {
		w.log.Errorf("reload: %s  error: %s", w.fileName, err)
		return
	}
	err = w.reload(c)
	if nil != err {
		w.log.Errorf("reload: %s  error: %s", w.fileName, err)
		return
	}
	w.log.Infof("reloaded: %s", w.fileName)
}

func isConfigChange(event fsnotify.Event) bool {
	return 0 != event.Op&(fsnotify.Write|fsnotify.Create)
}

// the parts of a running daemon a new configuration may change
type reloader struct {
	log      *logger.L
	chain    string
	systemID currency.ID
	settler  *settlement.Settler
	registry registry.Registry
	limiter  *rate.Limiter
}

// apply - define newly added currencies and adopt the new rate
//
// the chain cannot change without a restart
func (r *reloader) apply(c *Configuration) error {
	if c.Chain != r.chain {
		return errors.Wrapf(fault.ErrInvalidChain, "chain: %s  running: %s", c.Chain, r.chain)
	}
	err := launchCurrencies(r.log, r.settler, r.registry, r.systemID, c.Currencies)
	if nil != err {
		return err
	}
	if r.limiter.Limit() != c.limit() {
		r.limiter.SetLimit(c.limit())
		r.log.Infof("rate limit: %g/s", c.RateLimit)
	}
	return nil
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package settlement

import (
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	cache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"

	"github.com/bitmark-inc/pbaasd/crosschain"
	"github.com/bitmark-inc/pbaasd/currency"
	"github.com/bitmark-inc/pbaasd/fault"
	"github.com/bitmark-inc/pbaasd/merkle"
	"github.com/bitmark-inc/pbaasd/notarization"
	"github.com/bitmark-inc/pbaasd/registry"
)

// how long an export waits for its import
const (
	defaultPendingExpiry = 24 * time.Hour
	pendingCleanup       = 10 * time.Minute
)

// Settler - the settlement pipeline for one local system
type Settler struct {
	sync.Mutex
	log      *logger.L
	registry registry.Registry
	ledger   Ledger
	notary   *notarization.Notary
	pending  *cache.Cache
}

// New - create a settler
//
// a zero pendingExpiry keeps unmatched exports for a day
func New(localSystemID currency.ID, reg registry.Registry, ledger Ledger, pendingExpiry time.Duration) (*Settler, error) {
	if nil == reg || nil == ledger {
		return nil, fault.ErrNotInitialised
	}
	notary, err := notarization.NewNotary(localSystemID, logger.New("notary"))
	if nil != err {
		return nil, err
	}
	if pendingExpiry <= 0 {
		pendingExpiry = defaultPendingExpiry
	}
	return &Settler{
		log:      logger.New("settlement"),
		registry: reg,
		ledger:   ledger,
		notary:   notary,
		pending:  cache.New(pendingExpiry, pendingCleanup),
	}, nil
}

// LocalSystemID - the system this settler runs on
func (s *Settler) LocalSystemID() currency.ID {
	return s.notary.LocalSystemID()
}

// Settle - reconcile an import against the complete export found at
// ref and record the settlement
//
// conversions are priced from the latest stored state of the export's
// destination currency, or its launch state if no notarization has
// been stored; the import must name the same currency
func (s *Settler) Settle(ref merkle.UTXORef, exp *crosschain.Export, imp *crosschain.Import) error {
	if nil == exp || nil == imp {
		return fault.ErrInvalidImport
	}
	if s.ledger.IsSettled(ref) {
		s.log.Warnf("export: %s  already settled", ref)
		return fault.ErrAlreadySettled
	}

	pricer, err := s.pricer(exp.DestCurrencyID)
	if nil != err {
		s.log.Warnf("export: %s  destination currency: %s  error: %s", ref, exp.DestCurrencyID, err)
		return errors.Wrapf(err, "destination currency: %s", exp.DestCurrencyID)
	}

	err = crosschain.Reconcile(ref, exp, imp, pricer)
	if nil != err {
		s.log.Warnf("export: %s  reconcile error: %s", ref, err)
		return errors.Wrapf(err, "export: %s", ref)
	}

	err = s.ledger.Settle(ref, imp)
	if nil != err {
		s.log.Errorf("export: %s  store error: %s", ref, err)
		return errors.Wrapf(err, "export: %s", ref)
	}

	s.log.Infof("export: %s  settled: %d transfers  out: %v", ref, len(exp.Transfers), imp.TotalReserveOutMap)
	return nil
}

func (s *Settler) pricer(id currency.ID) (crosschain.Pricer, error) {
	d, err := s.registry.Definition(id)
	if nil != err {
		return nil, err
	}

	state, err := s.ledger.CurrencyState(id)
	if nil == err {
		return state, nil
	}
	if !fault.IsErrNotFound(err) {
		return nil, err
	}

	initial, err := d.InitialState()
	if nil != err {
		return nil, err
	}
	s.log.Debugf("currency: %s  priced from launch state", id)
	return &initial, nil
}

// AcceptNotarization - validate a notarization from the other system,
// store its mirrored view and return it
func (s *Settler) AcceptNotarization(n *notarization.Notarization) (*notarization.Notarization, error) {
	return s.store(s.notary.Accept(n))
}

// RecordNotarization - validate a notarization of this system, store
// its native view and return it
func (s *Settler) RecordNotarization(n *notarization.Notarization) (*notarization.Notarization, error) {
	return s.store(s.notary.Native(n))
}

func (s *Settler) store(n *notarization.Notarization, err error) (*notarization.Notarization, error) {
	if nil != err {
		return nil, errors.Wrap(err, "notarization")
	}
	err = s.ledger.AddNotarization(n)
	if nil != err {
		s.log.Warnf("currency: %s  height: %d  store error: %s", n.CurrencyID, n.NotarizationHeight, err)
		return nil, errors.Wrapf(err, "currency: %s  height: %d", n.CurrencyID, n.NotarizationHeight)
	}
	s.log.Infof("currency: %s  height: %d  notarization stored", n.CurrencyID, n.NotarizationHeight)
	return n, nil
}

// AddDefinition - store a new currency definition
func (s *Settler) AddDefinition(d *registry.Definition) error {
	if nil == d {
		return fault.ErrInvalidDefinition
	}
	err := d.Validate()
	if nil != err {
		return err
	}
	err = s.ledger.AddDefinition(d)
	if nil != err {
		return errors.Wrapf(err, "currency: %s", d.Name)
	}
	id, _ := d.ID()
	s.log.Infof("currency: %s  name: %q  defined", id, d.Name)
	return nil
}

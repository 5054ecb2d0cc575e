// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package notarization

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/pbaasd/currency"
	"github.com/bitmark-inc/pbaasd/fault"
)

// Notary - converts records between views for one local system
type Notary struct {
	localSystemID currency.ID
	log           *logger.L
}

// NewNotary - create a notary for the local system
func NewNotary(localSystemID currency.ID, log *logger.L) (*Notary, error) {
	if localSystemID.IsNull() {
		return nil, fault.ErrInvalidCurrencyID
	}
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}
	return &Notary{
		localSystemID: localSystemID,
		log:           log,
	}, nil
}

// LocalSystemID - the system this notary runs on
func (n *Notary) LocalSystemID() currency.ID {
	return n.localSystemID
}

// Accept - validate a peer's record and return the mirrored view that
// acceptance checks run against
func (n *Notary) Accept(record *Notarization) (*Notarization, error) {
	return n.view(record, true)
}

// Native - validate a record and return its native view
func (n *Notary) Native(record *Notarization) (*Notarization, error) {
	return n.view(record, false)
}

func (n *Notary) view(record *Notarization, mirror bool) (*Notarization, error) {
	if nil == record {
		return nil, fault.ErrInvalidNotarization
	}
	err := record.Validate()
	if nil != err {
		n.log.Warnf("currency: %s  height: %d  invalid: %s", record.CurrencyID, record.NotarizationHeight, err)
		return nil, err
	}
	result, err := Mirror(record, mirror, n.localSystemID)
	if nil != err {
		n.log.Warnf("currency: %s  height: %d  mirror: %t  error: %s", record.CurrencyID, record.NotarizationHeight, mirror, err)
		return nil, err
	}
	n.log.Debugf("currency: %s  height: %d  view: %s  height: %d", record.CurrencyID, record.NotarizationHeight, result.CurrencyID, result.NotarizationHeight)
	return result, nil
}

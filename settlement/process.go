// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package settlement

import (
	cache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"

	"github.com/bitmark-inc/pbaasd/crosschain"
	"github.com/bitmark-inc/pbaasd/fault"
	"github.com/bitmark-inc/pbaasd/merkle"
	"github.com/bitmark-inc/pbaasd/notarization"
	"github.com/bitmark-inc/pbaasd/registry"
	"github.com/bitmark-inc/pbaasd/transactionrecord"
)

// an export waiting for its import, with any supplementals that
// followed it in the same transaction
type pendingExport struct {
	head          *crosschain.Export
	supplementals []*crosschain.Export
}

// Process - handle one record found at a transaction output
//
// exports are held until the import that names them arrives; the
// decoded record is returned
func (s *Settler) Process(ref merkle.UTXORef, packed transactionrecord.Packed) (transactionrecord.Record, error) {
	record, err := packed.Unpack()
	if nil != err {
		s.log.Warnf("output: %s  decode error: %s", ref, err)
		return nil, errors.Wrapf(err, "output: %s", ref)
	}
	name, _ := transactionrecord.RecordName(record)
	s.log.Debugf("output: %s  record: %s", ref, name)

	switch r := record.(type) {
	case *crosschain.Export:
		err = s.holdExport(ref, r)

	case *crosschain.Import:
		err = s.settleImport(r)

	case *notarization.Notarization:
		_, err = s.AcceptNotarization(r)

	case *registry.Definition:
		err = s.AddDefinition(r)

	default:
		err = record.Validate()
	}
	if nil != err {
		return nil, err
	}
	return record, nil
}

// a head export has a complete header, a supplemental is attached to
// the last head seen in the same transaction
func (s *Settler) holdExport(ref merkle.UTXORef, exp *crosschain.Export) error {
	s.Lock()
	defer s.Unlock()

	if !exp.IsSupplemental() {
		err := exp.ValidateHeader()
		if nil != err {
			return err
		}
		s.pending.Set(ref.String(), &pendingExport{
			head: exp,
		}, cache.DefaultExpiration)
		s.pending.Set(ref.Hash.String(), ref, cache.DefaultExpiration)
		return nil
	}

	err := exp.Validate()
	if nil != err {
		return err
	}
	headRef, found := s.pending.Get(ref.Hash.String())
	if !found {
		s.log.Warnf("output: %s  supplemental without export", ref)
		return fault.ErrExportNotFound
	}
	item, found := s.pending.Get(headRef.(merkle.UTXORef).String())
	if !found {
		return fault.ErrExportNotFound
	}
	p := item.(*pendingExport)
	p.supplementals = append(p.supplementals, exp)
	return nil
}

func (s *Settler) settleImport(imp *crosschain.Import) error {
	ref := imp.ExportRef()

	s.Lock()
	item, found := s.pending.Get(ref.String())
	var (
		head          *crosschain.Export
		supplementals []*crosschain.Export
	)
	if found {
		p := item.(*pendingExport)
		head = p.head
		supplementals = append([]*crosschain.Export(nil), p.supplementals...)
	}
	s.Unlock()

	if !found {
		s.log.Warnf("export: %s  not held for import", ref)
		return fault.ErrExportNotFound
	}

	exp, err := head.Merge(supplementals...)
	if nil != err {
		s.log.Warnf("export: %s  merge error: %s", ref, err)
		return errors.Wrapf(err, "export: %s", ref)
	}

	err = s.Settle(ref, exp, imp)
	if nil != err {
		return err
	}

	s.Lock()
	s.pending.Delete(ref.String())
	s.Unlock()
	return nil
}

// PendingExports - number of exports waiting for an import
func (s *Settler) PendingExports() int {
	s.Lock()
	defer s.Unlock()

	n := 0
	for _, item := range s.pending.Items() {
		if _, ok := item.Object.(*pendingExport); ok {
			n += 1
		}
	}
	return n
}

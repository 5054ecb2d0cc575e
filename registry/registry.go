// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"sort"
	"sync"

	"github.com/bitmark-inc/pbaasd/currency"
	"github.com/bitmark-inc/pbaasd/fault"
)

// Registry - resolves currency IDs to definitions
type Registry interface {
	Definition(currency.ID) (*Definition, error)
}

// Static - an in-memory registry
type Static struct {
	sync.RWMutex
	definitions map[currency.ID]*Definition
}

// NewStatic - registry holding the given definitions, each of which
// must validate
func NewStatic(definitions ...*Definition) (*Static, error) {
	s := &Static{
		definitions: make(map[currency.ID]*Definition, len(definitions)),
	}
	for _, d := range definitions {
		if err := s.Add(d); nil != err {
			return nil, err
		}
	}
	return s, nil
}

// Add - register one more definition
func (s *Static) Add(d *Definition) error {
	if nil == d {
		return fault.ErrInvalidDefinition
	}
	if err := d.Validate(); nil != err {
		return err
	}
	id, _ := d.ID()

	s.Lock()
	defer s.Unlock()

	if _, ok := s.definitions[id]; ok {
		return fault.ErrDuplicateCurrency
	}
	s.definitions[id] = d
	return nil
}

// Definition - look up one currency
func (s *Static) Definition(id currency.ID) (*Definition, error) {
	s.RLock()
	defer s.RUnlock()

	d, ok := s.definitions[id]
	if !ok {
		return nil, fault.ErrCurrencyNotFound
	}
	return d, nil
}

// IDs - every registered currency in ascending order
func (s *Static) IDs() []currency.ID {
	s.RLock()
	defer s.RUnlock()

	ids := make([]currency.ID, 0, len(s.definitions))
	for id := range s.definitions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Less(ids[j]) })
	return ids
}

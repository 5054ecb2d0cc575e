// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package currency

import (
	"encoding/json"
	"sort"

	"github.com/bitmark-inc/pbaasd/fault"
	"github.com/bitmark-inc/pbaasd/util"
)

// MaxCurrencies - most entries allowed in a packed ValueMap
const MaxCurrencies = 64

// ValueMap - sparse currency → amount ledger
//
// a missing key is the same as zero, arithmetic never modifies the
// receiver and always returns a new map
type ValueMap map[ID]int64

// NewValueMap - build from parallel slices
//
// on a duplicate key or an out of range amount the result is an
// empty map and an error
func NewValueMap(ids []ID, amounts []int64) (ValueMap, error) {
	if len(ids) != len(amounts) {
		return ValueMap{}, fault.ErrCountMismatch
	}
	m := make(ValueMap, len(ids))
	for i, id := range ids {
		if _, ok := m[id]; ok {
			return ValueMap{}, fault.ErrDuplicateCurrency
		}
		if !ValidAmount(amounts[i]) {
			return ValueMap{}, fault.ErrAmountOutOfRange
		}
		m[id] = amounts[i]
	}
	return m, nil
}

// Clone - independent copy
func (m ValueMap) Clone() ValueMap {
	c := make(ValueMap, len(m))
	for id, v := range m {
		c[id] = v
	}
	return c
}

// Add - per currency sum, union of keys
func (m ValueMap) Add(other ValueMap) (ValueMap, error) {
	result := m.Clone()
	for id, v := range other {
		if !ValidAmount(v) || !ValidAmount(result[id]) {
			return ValueMap{}, fault.ErrAmountOutOfRange
		}
		s := result[id] + v
		if !ValidAmount(s) {
			return ValueMap{}, fault.ErrAmountOutOfRange
		}
		result[id] = s
	}
	return result, nil
}

// Sub - per currency difference, union of keys
func (m ValueMap) Sub(other ValueMap) (ValueMap, error) {
	return m.Add(other.Neg())
}

// Neg - negate every entry
func (m ValueMap) Neg() ValueMap {
	result := make(ValueMap, len(m))
	for id, v := range m {
		result[id] = -v
	}
	return result
}

// Canonical - copy without the zero entries
func (m ValueMap) Canonical() ValueMap {
	result := make(ValueMap, len(m))
	for id, v := range m {
		if 0 != v {
			result[id] = v
		}
	}
	return result
}

// Equal - same non-zero entries
func (m ValueMap) Equal(other ValueMap) bool {
	a := m.Canonical()
	b := other.Canonical()
	if len(a) != len(b) {
		return false
	}
	for id, v := range a {
		if w, ok := b[id]; !ok || v != w {
			return false
		}
	}
	return true
}

// Compare - per currency ordering
//
// returns -1, 0 or 1 when every entry of the difference has the same
// sign (or is zero) and ok is false when signs disagree
func (m ValueMap) Compare(other ValueMap) (result int, ok bool) {
	less := false
	greater := false
	for id, v := range m {
		d := v - other[id]
		less = less || d < 0
		greater = greater || d > 0
	}
	for id, w := range other {
		if _, found := m[id]; found {
			continue
		}
		less = less || w > 0
		greater = greater || w < 0
	}
	switch {
	case less && greater:
		return 0, false
	case less:
		return -1, true
	case greater:
		return 1, true
	default:
		return 0, true
	}
}

// IsNonNegative - true if no entry is below zero
func (m ValueMap) IsNonNegative() bool {
	return !m.HasNegative()
}

// HasNegative - true if some entry is below zero
func (m ValueMap) HasNegative() bool {
	for _, v := range m {
		if v < 0 {
			return true
		}
	}
	return false
}

// SortedIDs - keys in ascending byte order
func (m ValueMap) SortedIDs() []ID {
	ids := make([]ID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].Less(ids[j])
	})
	return ids
}

// PackInto - append the canonical encoding
//
//	count  {Varint64}
//	ID     amount  {first item, 20 bytes then zig-zag Varint64}
//	…
//	ID     amount  {final item}
func (m ValueMap) PackInto(p *util.Packer) {
	ids := m.SortedIDs()
	p.Uint64(uint64(len(ids)))
	for _, id := range ids {
		p.Fixed(id[:])
		p.Int64(m[id])
	}
}

// Pack - canonical encoding as a new buffer
func (m ValueMap) Pack() []byte {
	p := util.Packer{}
	m.PackInto(&p)
	return p
}

// ReadValueMap - decode a ValueMap from an unpacker
//
// keys must be strictly ascending, so duplicates are also rejected
func ReadValueMap(u *util.Unpacker) ValueMap {
	n := u.Count(MaxCurrencies, fault.ErrTooManyCurrencies)
	if nil != u.Err() {
		return nil
	}
	if 0 == n {
		return nil
	}
	m := make(ValueMap, n)
	previous := ID{}
	for i := 0; i < n; i += 1 {
		id := ReadID(u)
		amount := u.Int64()
		if nil != u.Err() {
			return nil
		}
		if i > 0 && !previous.Less(id) {
			if previous == id {
				u.Fail(fault.ErrDuplicateCurrency)
			} else {
				u.Fail(fault.ErrUnorderedKeys)
			}
			return nil
		}
		if !ValidAmount(amount) {
			u.Fail(fault.ErrAmountOutOfRange)
			return nil
		}
		m[id] = amount
		previous = id
	}
	return m
}

// UnpackValueMap - decode a complete buffer
func UnpackValueMap(buffer []byte) (ValueMap, error) {
	u := util.NewUnpacker(buffer)
	m := ReadValueMap(u)
	if err := u.Finish(); nil != err {
		return nil, err
	}
	return m, nil
}

// ReadID - decode a fixed length ID
func ReadID(u *util.Unpacker) ID {
	var id ID
	copy(id[:], u.Fixed(IDLength))
	return id
}

// MarshalJSON - object keyed by the ID text form with fixed decimal amounts
func (m ValueMap) MarshalJSON() ([]byte, error) {
	out := make(map[string]string, len(m))
	for id, v := range m {
		out[id.String()] = FormatAmount(v)
	}
	return json.Marshal(out)
}

// UnmarshalJSON - inverse of MarshalJSON
func (m *ValueMap) UnmarshalJSON(data []byte) error {
	in := make(map[string]string)
	err := json.Unmarshal(data, &in)
	if nil != err {
		return err
	}
	result := make(ValueMap, len(in))
	for s, a := range in {
		id, err := IDFromString(s)
		if nil != err {
			return err
		}
		if _, ok := result[id]; ok {
			return fault.ErrDuplicateCurrency
		}
		amount, err := ParseAmount(a)
		if nil != err {
			return err
		}
		result[id] = amount
	}
	*m = result
	return nil
}

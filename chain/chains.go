// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"github.com/bitmark-inc/pbaasd/currency"
	"github.com/bitmark-inc/pbaasd/fault"
)

// names of all chains
const (
	Verus   = "vrsc"
	Testing = "vrsctest"
	Local   = "local"
)

// Valid - validate a chain name
func Valid(name string) bool {
	switch name {
	case Verus, Testing, Local:
		return true
	default:
		return false
	}
}

// RootCurrency - name of the root currency of a chain, which is also
// the name its system ID is derived from
func RootCurrency(name string) (string, error) {
	switch name {
	case Verus:
		return "VRSC", nil
	case Testing:
		return "VRSCTEST", nil
	case Local:
		return "LOCAL", nil
	default:
		return "", fault.ErrInvalidChain
	}
}

// SystemID - the local system ID of a chain
func SystemID(name string) (currency.ID, error) {
	root, err := RootCurrency(name)
	if nil != err {
		return currency.ID{}, err
	}
	return currency.IDFromName(root, currency.ID{})
}

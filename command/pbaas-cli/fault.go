// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/pbaasd/fault"
)

// common errors - keep in alphabetic order
const (
	ErrEmptyArgument     = fault.InvalidError("required argument is empty")
	ErrNotCurrencyState  = fault.InvalidError("record is not a currency state")
	ErrNotNotarization   = fault.InvalidError("record is not a notarization")
	ErrReserveNotInState = fault.NotFoundError("reserve currency not in state")
)

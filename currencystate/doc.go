// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package currencystate - per currency supply, reserves and weights
// and the fixed point conversion prices derived from them
//
// the integer functions are the only source of consensus amounts,
// every one of them reports overflow as fault.ErrConversionOverflow
// instead of returning a wrapped value
package currencystate

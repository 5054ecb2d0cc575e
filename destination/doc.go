// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package destination - the target of a reserve transfer
//
// a Destination is one base Address variant with two optional
// attachments: a list of alternate destinations (AUX) and a gateway
// with its fee (GATEWAY)
package destination

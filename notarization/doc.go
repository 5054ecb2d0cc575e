// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package notarization - one chain's claim about the state of a
// currency and the proof roots of the systems involved
//
// A notarization is held in one of two views.  The native view labels
// the record with the currency it was made for; the mirrored view
// relabels the same data from the peer system's side so that the
// acceptance code can check it the same way as a local record.
// Mirror converts between the views and always returns a new record.
package notarization

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of errors to allow easy comparison
// without having to resort to partial string matches.
//
// Every error that reaches a validation boundary belongs to one
// class; the classes that must reject the enclosing transaction are:
//
//   RecordError        malformed or truncated encoding, duplicate map key
//   LengthError        size bounds exceeded
//   InvalidError       a record or state transition precondition failed
//   OverflowError      fixed-point arithmetic left the 64 bit range
//   ConservationError  totals do not balance
//
// fault.Panicf is reserved for internal invariant breaks.
package fault

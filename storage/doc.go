// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk settlement state
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++           = concatenation of byte data
// 3. currencyID   = 20 byte currency identifier
// 4. height       = big endian uint32 (4 bytes)
// 5. txId         = 32 byte transaction digest
// 6. vout         = big endian uint32 (4 bytes)
// 7. *others*     = byte values of various length
//
// Notarizations:
//
//   N ++ currencyID ++ height  - accepted notarization history
//                                data: packed notarization record
//
// Settlement:
//
//   S ++ txId ++ vout          - exports already imported
//                                data: packed import record
//
// Currencies:
//
//   D ++ currencyID            - currency definitions
//                                data: packed definition record
//
// Testing:
//   Z ++ key                   - testing data
package storage

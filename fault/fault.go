// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"github.com/pkg/errors"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ConservationError GenericError
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type OverflowError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order within each class
var (
	ErrBurnedMismatch        = ConservationError("burned total does not match transfers")
	ErrConservationViolation = ConservationError("disbursed value does not match committed value")
	ErrFeesMismatch          = ConservationError("fee total does not match transfers")
	ErrNegativeBalance       = ConservationError("negative balance")
	ErrTotalsMismatch        = ConservationError("amount total does not match transfers")

	ErrAlreadyInitialised = ExistsError("already initialised")
	ErrAlreadySettled     = ExistsError("export already settled")
	ErrNotarizationExists = ExistsError("notarization already recorded")

	ErrAlreadyMirrored           = InvalidError("notarization already holds a state for its currency")
	ErrCountMismatch             = InvalidError("parallel array length mismatch")
	ErrEmptyName                 = InvalidError("empty name")
	ErrExportReferenceMismatch   = InvalidError("import does not reference this export")
	ErrImportCurrencyMismatch    = InvalidError("import currency is not the export destination currency")
	ErrImportValueMismatch       = InvalidError("import value does not match export totals")
	ErrInvalidAddress            = InvalidError("invalid address")
	ErrInvalidAmount             = InvalidError("invalid amount")
	ErrInvalidChain              = InvalidError("invalid chain")
	ErrInvalidConfiguration      = InvalidError("configuration must return a table")
	ErrInvalidCurrencyID         = InvalidError("invalid currency id")
	ErrInvalidCurrencyState      = InvalidError("invalid currency state")
	ErrInvalidCursor             = InvalidError("invalid cursor")
	ErrInvalidDefinition         = InvalidError("invalid currency definition")
	ErrInvalidDestination        = InvalidError("invalid transfer destination")
	ErrInvalidExport             = InvalidError("invalid cross-chain export")
	ErrInvalidHeightRange        = InvalidError("invalid source height range")
	ErrInvalidImport             = InvalidError("invalid cross-chain import")
	ErrInvalidNotarization       = InvalidError("invalid notarization")
	ErrInvalidStructPointer      = InvalidError("invalid struct pointer")
	ErrInvalidTransfer           = InvalidError("invalid reserve transfer")
	ErrInvalidWeights            = InvalidError("fractional weights must sum to one unit")
	ErrMalformedInput            = InvalidError("malformed input line")
	ErrMissingLocalCurrencyState = InvalidError("notarization has no currency state for this system")
	ErrMissingLocalProofRoot     = InvalidError("notarization has no proof root for this system")
	ErrNegativeFee               = InvalidError("negative fee")
	ErrSourceSystemMismatch      = InvalidError("import source system is not the export source system")
	ErrSupplementalHasTotals     = InvalidError("supplemental export carries header totals")
	ErrTransferHashMismatch      = InvalidError("reserve transfer hash mismatch")
	ErrUnsupportedConversion     = InvalidError("conversion not supported by currency")
	ErrWrongProofRootCount       = InvalidError("notarization requires exactly two proof roots")

	ErrDestinationTooLong     = LengthError("destination data too long")
	ErrNameTooLong            = LengthError("name too long")
	ErrTooManyAuxDestinations = LengthError("too many auxiliary destinations")
	ErrTooManyCurrencies      = LengthError("too many currencies")
	ErrTooManyNodes           = LengthError("too many nodes")
	ErrTooManyProofRoots      = LengthError("too many proof roots")
	ErrTooManyTransfers       = LengthError("too many reserve transfers")

	ErrCurrencyNotFound     = NotFoundError("currency not found")
	ErrExportNotFound       = NotFoundError("export not found")
	ErrExportNotSettled     = NotFoundError("export not settled")
	ErrNotarizationNotFound = NotFoundError("notarization not found")
	ErrReserveNotFound      = NotFoundError("reserve currency not found")

	ErrAmountOutOfRange   = OverflowError("amount out of range")
	ErrConversionOverflow = OverflowError("conversion overflow")

	ErrDatabaseVersion      = ProcessError("incompatible database version")
	ErrInvalidLoggerChannel = ProcessError("invalid logger channel")
	ErrMissingPricer        = ProcessError("conversion requires a currency state")
	ErrNotInitialised       = ProcessError("not initialised")
	ErrTransactionInUse     = ProcessError("database transaction already in use")

	ErrDuplicateCurrency  = RecordError("duplicate currency in value map")
	ErrInvalidBoolean     = RecordError("invalid boolean")
	ErrInvalidCount       = RecordError("invalid count")
	ErrInvalidDigest      = RecordError("invalid digest")
	ErrInvalidTag         = RecordError("unknown record tag")
	ErrNonCanonicalVarint = RecordError("non-canonical varint")
	ErrNotTransactionPack = RecordError("not a transaction record")
	ErrTrailingData       = RecordError("trailing data after record")
	ErrTruncatedRecord    = RecordError("truncated record")
	ErrUnknownDestination = RecordError("unknown destination type")
	ErrUnorderedKeys      = RecordError("map keys not in canonical order")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ConservationError) Error() string { return string(e) }
func (e ExistsError) Error() string       { return string(e) }
func (e InvalidError) Error() string      { return string(e) }
func (e LengthError) Error() string       { return string(e) }
func (e NotFoundError) Error() string     { return string(e) }
func (e OverflowError) Error() string     { return string(e) }
func (e ProcessError) Error() string      { return string(e) }
func (e RecordError) Error() string       { return string(e) }

// determine the class of an error, looking through any
// github.com/pkg/errors wrapping
func IsErrConservation(e error) bool { _, ok := errors.Cause(e).(ConservationError); return ok }
func IsErrExists(e error) bool       { _, ok := errors.Cause(e).(ExistsError); return ok }
func IsErrInvalid(e error) bool      { _, ok := errors.Cause(e).(InvalidError); return ok }
func IsErrLength(e error) bool       { _, ok := errors.Cause(e).(LengthError); return ok }
func IsErrNotFound(e error) bool     { _, ok := errors.Cause(e).(NotFoundError); return ok }
func IsErrOverflow(e error) bool     { _, ok := errors.Cause(e).(OverflowError); return ok }
func IsErrProcess(e error) bool      { _, ok := errors.Cause(e).(ProcessError); return ok }
func IsErrRecord(e error) bool       { _, ok := errors.Cause(e).(RecordError); return ok }

// IsReject - true for every class that must cause the enclosing
// transaction to be rejected rather than retried
func IsReject(e error) bool {
	switch errors.Cause(e).(type) {
	case ConservationError, InvalidError, LengthError, OverflowError, RecordError:
		return true
	default:
		return false
	}
}

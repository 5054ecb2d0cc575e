// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/pbaasd/fault"
)

var (
	ErrConservationOne = fault.ConservationError("conservation one")
	ErrExistsOne       = fault.ExistsError("exists one ")
	ErrExistsTwo       = fault.ExistsError("exists two")
	ErrInvalidOne      = fault.InvalidError("invalid one")
	ErrInvalidTwo      = fault.InvalidError("invalid two")
	ErrLengthOne       = fault.LengthError("length one")
	ErrNotFoundOne     = fault.NotFoundError("not found one")
	ErrOverflowOne     = fault.OverflowError("overflow one")
	ErrProcessOne      = fault.ProcessError("process one")
	ErrRecordOne       = fault.RecordError("record one")
	ErrRecordTwo       = fault.RecordError("record two")
)

// test that the various errors can be subclassed
func TestClasses(t *testing.T) {
	errorList := []struct {
		err          error
		conservation bool
		exists       bool
		invalid      bool
		length       bool
		notFound     bool
		overflow     bool
		process      bool
		record       bool
	}{
		{ErrConservationOne, true, false, false, false, false, false, false, false},
		{ErrExistsOne, false, true, false, false, false, false, false, false},
		{ErrExistsTwo, false, true, false, false, false, false, false, false},
		{ErrInvalidOne, false, false, true, false, false, false, false, false},
		{ErrInvalidTwo, false, false, true, false, false, false, false, false},
		{ErrLengthOne, false, false, false, true, false, false, false, false},
		{ErrNotFoundOne, false, false, false, false, true, false, false, false},
		{ErrOverflowOne, false, false, false, false, false, true, false, false},
		{ErrProcessOne, false, false, false, false, false, false, true, false},
		{ErrRecordOne, false, false, false, false, false, false, false, true},
		{ErrRecordTwo, false, false, false, false, false, false, false, true},
		{errors.Wrap(ErrRecordTwo, "wrapped"), false, false, false, false, false, false, false, true},
	}

	for i, e := range errorList {
		err := e.err
		assert.Equal(t, e.conservation, fault.IsErrConservation(err), "%d: conservation for err = %v", i, err)
		assert.Equal(t, e.exists, fault.IsErrExists(err), "%d: exists for err = %v", i, err)
		assert.Equal(t, e.invalid, fault.IsErrInvalid(err), "%d: invalid for err = %v", i, err)
		assert.Equal(t, e.length, fault.IsErrLength(err), "%d: length for err = %v", i, err)
		assert.Equal(t, e.notFound, fault.IsErrNotFound(err), "%d: not found for err = %v", i, err)
		assert.Equal(t, e.overflow, fault.IsErrOverflow(err), "%d: overflow for err = %v", i, err)
		assert.Equal(t, e.process, fault.IsErrProcess(err), "%d: process for err = %v", i, err)
		assert.Equal(t, e.record, fault.IsErrRecord(err), "%d: record for err = %v", i, err)
	}
}

func TestIsReject(t *testing.T) {
	assert.True(t, fault.IsReject(fault.ErrConversionOverflow), "overflow")
	assert.True(t, fault.IsReject(fault.ErrTotalsMismatch), "conservation")
	assert.True(t, fault.IsReject(fault.ErrTruncatedRecord), "record")
	assert.True(t, fault.IsReject(errors.Wrap(fault.ErrWrongProofRootCount, "mirror")), "wrapped invalid")
	assert.False(t, fault.IsReject(fault.ErrNotarizationNotFound), "not found")
	assert.False(t, fault.IsReject(fault.ErrAlreadySettled), "exists")
	assert.False(t, fault.IsReject(nil), "nil")
}

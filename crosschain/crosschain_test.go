// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package crosschain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/pbaasd/crosschain"
	"github.com/bitmark-inc/pbaasd/currency"
	"github.com/bitmark-inc/pbaasd/currencystate"
	"github.com/bitmark-inc/pbaasd/destination"
	"github.com/bitmark-inc/pbaasd/fault"
	"github.com/bitmark-inc/pbaasd/merkle"
	"github.com/bitmark-inc/pbaasd/transfer"
)

var (
	tokenX   = currency.ID{0x10}
	native   = currency.ID{0x20}
	reserveR = currency.ID{0x30}
	reserveS = currency.ID{0x40}
	source   = currency.ID{0x50}
	ref      = merkle.UTXORef{Hash: merkle.NewDigest([]byte("export transaction")), N: 2}
)

func makeTransfer(id currency.ID, amount int64, fee int64, flags transfer.Flags) transfer.ReserveTransfer {
	return transfer.ReserveTransfer{
		TokenOutput: transfer.TokenOutput{
			Version: transfer.Version,
			Values:  currency.ValueMap{id: amount},
		},
		Flags:          transfer.FlagValid | flags,
		FeeCurrencyID:  id,
		Fees:           fee,
		DestCurrencyID: id,
		Destination:    destination.New(destination.KeyID{0x01, 0x02}),
	}
}

func header() crosschain.Export {
	return crosschain.Export{
		SourceHeightStart: 10,
		SourceHeightEnd:   20,
		SourceSystemID:    source,
		DestSystemID:      native,
		DestCurrencyID:    native,
		Exporter:          destination.New(destination.IdentityID{0x99}),
		FirstInput:        1,
	}
}

func makeImport(exp *crosschain.Export, importID currency.ID, out currency.ValueMap) *crosschain.Import {
	return &crosschain.Import{
		Version:            crosschain.Version,
		SourceSystemID:     source,
		SourceSystemHeight: 20,
		ImportCurrencyID:   importID,
		ImportValue:        exp.TotalAmounts.Clone(),
		TotalReserveOutMap: out,
		NumOutputs:         1,
		HashTransfers:      exp.HashTransfers,
		ExportTxID:         ref.Hash,
		ExportTxOutNum:     ref.N,
	}
}

// export {X: 100} with fees {X: 1} settled by an import paying {X: 99}
func simplePair(t *testing.T) (*crosschain.Export, *crosschain.Import) {
	exp, err := crosschain.NewExport(header(), []transfer.ReserveTransfer{
		makeTransfer(tokenX, 99, 1, 0),
	})
	assert.Nil(t, err, "new export")
	return exp, makeImport(exp, native, currency.ValueMap{tokenX: 99})
}

func TestNewExport(t *testing.T) {
	exp, imp := simplePair(t)
	assert.Equal(t, currency.ValueMap{tokenX: 100}, exp.TotalAmounts, "amounts")
	assert.Equal(t, currency.ValueMap{tokenX: 1}, exp.TotalFees, "fees")
	assert.Nil(t, exp.TotalBurned, "burned")
	assert.Equal(t, int32(1), exp.NumInputs, "inputs")
	assert.Equal(t, crosschain.HashTransfers(exp.Transfers), exp.HashTransfers, "hash")
	assert.Nil(t, exp.Validate(), "validate")
	assert.Nil(t, imp.Validate(), "import validate")

	h := header()
	h.Flags = crosschain.ExportSupplemental
	_, err := crosschain.NewExport(h, nil)
	assert.Equal(t, fault.ErrInvalidExport, err, "supplemental header")

	h = header()
	h.SourceHeightStart = 21
	_, err = crosschain.NewExport(h, nil)
	assert.Equal(t, fault.ErrInvalidHeightRange, err, "height range")

	bad := makeTransfer(tokenX, 99, -1, 0)
	_, err = crosschain.NewExport(header(), []transfer.ReserveTransfer{bad})
	assert.Equal(t, fault.ErrNegativeFee, err, "invalid transfer")
}

func TestHashTransfersOrder(t *testing.T) {
	a := makeTransfer(tokenX, 1, 0, 0)
	b := makeTransfer(tokenX, 2, 0, 0)
	assert.NotEqual(t,
		crosschain.HashTransfers([]transfer.ReserveTransfer{a, b}),
		crosschain.HashTransfers([]transfer.ReserveTransfer{b, a}),
		"order matters")
	assert.NotEqual(t,
		crosschain.HashTransfers(nil),
		crosschain.HashTransfers([]transfer.ReserveTransfer{a}),
		"count matters")
}

func TestReconcileSimple(t *testing.T) {
	exp, imp := simplePair(t)
	assert.Nil(t, crosschain.Reconcile(ref, exp, imp, nil), "matching pair")
}

func TestReconcileMutations(t *testing.T) {
	type mutate func(*crosschain.Export, *crosschain.Import)

	tests := []struct {
		name string
		f    mutate
		err  error
	}{
		{"import hash", func(e *crosschain.Export, i *crosschain.Import) { i.HashTransfers[0] ^= 1 }, fault.ErrTransferHashMismatch},
		{"export hash", func(e *crosschain.Export, i *crosschain.Import) { e.HashTransfers[0] ^= 1 }, fault.ErrTransferHashMismatch},
		{"amounts up", func(e *crosschain.Export, i *crosschain.Import) { e.TotalAmounts[tokenX] += 1 }, fault.ErrTotalsMismatch},
		{"amounts down", func(e *crosschain.Export, i *crosschain.Import) { e.TotalAmounts[tokenX] -= 1 }, fault.ErrTotalsMismatch},
		{"fees up", func(e *crosschain.Export, i *crosschain.Import) { e.TotalFees[tokenX] += 1 }, fault.ErrFeesMismatch},
		{"fees down", func(e *crosschain.Export, i *crosschain.Import) { e.TotalFees[tokenX] -= 1 }, fault.ErrFeesMismatch},
		{"burned", func(e *crosschain.Export, i *crosschain.Import) { e.TotalBurned = currency.ValueMap{tokenX: 1} }, fault.ErrBurnedMismatch},
		{"value in up", func(e *crosschain.Export, i *crosschain.Import) { i.ImportValue[tokenX] += 1 }, fault.ErrImportValueMismatch},
		{"value in down", func(e *crosschain.Export, i *crosschain.Import) { i.ImportValue[tokenX] -= 1 }, fault.ErrImportValueMismatch},
		{"out up", func(e *crosschain.Export, i *crosschain.Import) { i.TotalReserveOutMap[tokenX] += 1 }, fault.ErrConservationViolation},
		{"out down", func(e *crosschain.Export, i *crosschain.Import) { i.TotalReserveOutMap[tokenX] -= 1 }, fault.ErrConservationViolation},
		{"out extra currency", func(e *crosschain.Export, i *crosschain.Import) { i.TotalReserveOutMap[native] = 1 }, fault.ErrConservationViolation},
		{"export output", func(e *crosschain.Export, i *crosschain.Import) { i.ExportTxOutNum += 1 }, fault.ErrExportReferenceMismatch},
		{"export txid", func(e *crosschain.Export, i *crosschain.Import) { i.ExportTxID[31] ^= 1 }, fault.ErrExportReferenceMismatch},
		{"input count", func(e *crosschain.Export, i *crosschain.Import) { e.NumInputs += 1 }, fault.ErrCountMismatch},
		{"import version", func(e *crosschain.Export, i *crosschain.Import) { i.Version = 0 }, fault.ErrInvalidImport},
		{"import currency", func(e *crosschain.Export, i *crosschain.Import) { i.ImportCurrencyID = tokenX }, fault.ErrImportCurrencyMismatch},
		{"destination currency", func(e *crosschain.Export, i *crosschain.Import) { e.DestCurrencyID = reserveR }, fault.ErrImportCurrencyMismatch},
		{"source system", func(e *crosschain.Export, i *crosschain.Import) { i.SourceSystemID = reserveS }, fault.ErrSourceSystemMismatch},
	}

	for _, test := range tests {
		exp, imp := simplePair(t)
		test.f(exp, imp)
		assert.Equal(t, test.err, crosschain.Reconcile(ref, exp, imp, nil), test.name)
	}
}

// reserves R and S at prices 1 and 0.5 of the native currency
func pricer() *currencystate.CurrencyState {
	return &currencystate.CurrencyState{
		Version:       currencystate.Version,
		Flags:         currencystate.FlagFractional,
		CurrencyID:    native,
		Currencies:    []currency.ID{reserveR, reserveS},
		Weights:       []int64{currency.Unit / 2, currency.Unit / 2},
		Reserves:      []int64{100 * currency.Unit, 50 * currency.Unit},
		InitialSupply: 200 * currency.Unit,
		Supply:        200 * currency.Unit,
	}
}

func TestReconcileConversion(t *testing.T) {
	toNative := makeTransfer(reserveR, 10*currency.Unit, 1000, transfer.FlagConvert)
	toNative.DestCurrencyID = native

	fromNative := makeTransfer(native, 4*currency.Unit, 0, transfer.FlagConvert)
	fromNative.DestCurrencyID = reserveS

	r2r := makeTransfer(reserveR, 10*currency.Unit, 0, transfer.FlagConvert|transfer.FlagReserveToReserve)
	r2r.DestCurrencyID = native
	r2r.SecondReserveID = reserveS

	tests := []struct {
		name string
		r    transfer.ReserveTransfer
		out  currency.ValueMap
	}{
		{"reserve to native", toNative, currency.ValueMap{native: 10 * currency.Unit}},
		{"native to reserve", fromNative, currency.ValueMap{reserveS: 2 * currency.Unit}},
		{"reserve to reserve", r2r, currency.ValueMap{reserveS: 5 * currency.Unit}},
	}

	for _, test := range tests {
		exp, err := crosschain.NewExport(header(), []transfer.ReserveTransfer{test.r})
		assert.Nil(t, err, "%s: new export", test.name)

		imp := makeImport(exp, native, test.out)
		assert.Nil(t, crosschain.Reconcile(ref, exp, imp, pricer()), "%s: reconcile", test.name)

		imp = makeImport(exp, native, test.r.Values.Clone())
		assert.Equal(t, fault.ErrConservationViolation, crosschain.Reconcile(ref, exp, imp, pricer()), "%s: unconverted", test.name)

		imp = makeImport(exp, native, test.out)
		assert.Equal(t, fault.ErrMissingPricer, crosschain.Reconcile(ref, exp, imp, nil), "%s: no pricer", test.name)

		other := pricer()
		other.CurrencyID = tokenX
		imp = makeImport(exp, native, test.out)
		assert.Equal(t, fault.ErrUnsupportedConversion, crosschain.Reconcile(ref, exp, imp, other), "%s: wrong pricer", test.name)
	}
}

// an import naming another basket with the same reserves must not
// reprice an export sent to native
func TestReconcileOtherBasket(t *testing.T) {
	r2r := makeTransfer(reserveR, 10*currency.Unit, 0, transfer.FlagConvert|transfer.FlagReserveToReserve)
	r2r.DestCurrencyID = native
	r2r.SecondReserveID = reserveS
	exp, err := crosschain.NewExport(header(), []transfer.ReserveTransfer{r2r})
	assert.Nil(t, err, "new export")

	imp := makeImport(exp, native, currency.ValueMap{reserveS: 5 * currency.Unit})
	assert.Nil(t, crosschain.Reconcile(ref, exp, imp, pricer()), "export currency")

	// S is worth ten times more in the other basket
	other := pricer()
	other.CurrencyID = currency.ID{0x77}
	other.Reserves = []int64{100 * currency.Unit, 5 * currency.Unit}
	forged := makeImport(exp, other.CurrencyID, currency.ValueMap{reserveS: 50 * currency.Unit})
	assert.Equal(t, fault.ErrImportCurrencyMismatch, crosschain.Reconcile(ref, exp, forged, other), "other basket")

	imp.SourceSystemID = currency.ID{0xee}
	assert.Equal(t, fault.ErrSourceSystemMismatch, crosschain.Reconcile(ref, exp, imp, pricer()), "other source system")
}

func TestReconcileMintAndBurn(t *testing.T) {
	mint := makeTransfer(native, 5*currency.Unit, 0, transfer.FlagMint)
	exp, err := crosschain.NewExport(header(), []transfer.ReserveTransfer{mint})
	assert.Nil(t, err, "mint export")
	imp := makeImport(exp, native, currency.ValueMap{native: 5 * currency.Unit})
	assert.Nil(t, crosschain.Reconcile(ref, exp, imp, nil), "mint in import currency")

	mint = makeTransfer(reserveR, 5*currency.Unit, 0, transfer.FlagMint)
	exp, err = crosschain.NewExport(header(), []transfer.ReserveTransfer{mint})
	assert.Nil(t, err, "foreign mint export")
	imp = makeImport(exp, native, currency.ValueMap{reserveR: 5 * currency.Unit})
	assert.Equal(t, fault.ErrConservationViolation, crosschain.Reconcile(ref, exp, imp, nil), "mint of another currency")

	burn := makeTransfer(native, 3*currency.Unit, 100, transfer.FlagBurnChangePrice)
	keep := makeTransfer(native, 2*currency.Unit, 100, 0)
	exp, err = crosschain.NewExport(header(), []transfer.ReserveTransfer{burn, keep})
	assert.Nil(t, err, "burn export")
	assert.Equal(t, currency.ValueMap{native: 3 * currency.Unit}, exp.TotalBurned, "burned total")
	imp = makeImport(exp, native, currency.ValueMap{native: 2 * currency.Unit})
	assert.Nil(t, crosschain.Reconcile(ref, exp, imp, nil), "burn is not disbursed")
}

func TestSplitMerge(t *testing.T) {
	batch := make([]transfer.ReserveTransfer, 5)
	for i := range batch {
		batch[i] = makeTransfer(tokenX, int64(i+1)*currency.Unit, 10, 0)
	}
	exp, err := crosschain.NewExport(header(), batch)
	assert.Nil(t, err, "new export")

	head, supplementals := exp.Split(2)
	assert.Equal(t, 2, len(head.Transfers), "head size")
	assert.Equal(t, 2, len(supplementals), "supplemental count")
	assert.Equal(t, fault.ErrCountMismatch, head.Validate(), "incomplete head")
	assert.True(t, head.IsPartial(), "head partial")
	assert.Nil(t, head.ValidateHeader(), "head header")
	assert.False(t, exp.IsPartial(), "complete export partial")
	for i, s := range supplementals {
		assert.True(t, s.IsSupplemental(), "%d: flag", i)
		assert.Nil(t, s.Validate(), "%d: validate", i)
		assert.False(t, s.IsPartial(), "%d: partial", i)
		assert.Equal(t, fault.ErrInvalidExport, s.ValidateHeader(), "%d: header", i)
	}

	merged, err := head.Merge(supplementals...)
	assert.Nil(t, err, "merge")
	assert.Equal(t, exp, merged, "merged")

	_, err = head.Merge(supplementals[0])
	assert.Equal(t, fault.ErrCountMismatch, err, "missing supplemental")

	_, err = head.Merge(supplementals[1], supplementals[0])
	assert.Equal(t, fault.ErrTransferHashMismatch, err, "out of order")

	_, err = head.Merge(head)
	assert.Equal(t, fault.ErrInvalidExport, err, "authoritative as supplemental")

	bad := *supplementals[0]
	bad.TotalFees = currency.ValueMap{tokenX: 1}
	_, err = head.Merge(&bad, supplementals[1])
	assert.Equal(t, fault.ErrSupplementalHasTotals, err, "supplemental with totals")
}

func TestPackExport(t *testing.T) {
	batch := []transfer.ReserveTransfer{
		makeTransfer(tokenX, currency.Unit, 10, 0),
		makeTransfer(tokenX, 2*currency.Unit, 10, 0),
		makeTransfer(tokenX, 3*currency.Unit, 10, 0),
	}
	exp, err := crosschain.NewExport(header(), batch)
	assert.Nil(t, err, "new export")

	head, supplementals := exp.Split(2)
	for i, e := range append([]*crosschain.Export{exp, head}, supplementals...) {
		back, err := crosschain.UnpackExport(e.Pack())
		assert.Nil(t, err, "%d: unpack", i)
		assert.Equal(t, *e, back, "%d: round trip", i)
	}

	packed := exp.Pack()
	_, err = crosschain.UnpackExport(packed[:len(packed)-1])
	assert.Equal(t, fault.ErrTruncatedRecord, err, "truncated")
	_, err = crosschain.UnpackExport(append(packed, 0))
	assert.Equal(t, fault.ErrTrailingData, err, "trailing")
}

func TestPackImport(t *testing.T) {
	_, imp := simplePair(t)
	back, err := crosschain.UnpackImport(imp.Pack())
	assert.Nil(t, err, "unpack")
	assert.Equal(t, *imp, back, "round trip")
	assert.Equal(t, ref, back.ExportRef(), "reference")

	packed := imp.Pack()
	_, err = crosschain.UnpackImport(packed[:len(packed)-1])
	assert.Equal(t, fault.ErrTruncatedRecord, err, "truncated")
}

func TestJSON(t *testing.T) {
	exp, imp := simplePair(t)

	buffer, err := json.Marshal(imp)
	assert.Nil(t, err, "marshal import")
	var back crosschain.Import
	err = json.Unmarshal(buffer, &back)
	assert.Nil(t, err, "unmarshal import")
	assert.Equal(t, *imp, back, "import json")

	buffer, err = json.Marshal(exp)
	assert.Nil(t, err, "marshal export")
	var m map[string]interface{}
	err = json.Unmarshal(buffer, &m)
	assert.Nil(t, err, "unmarshal export")
	assert.Equal(t, float64(10), m["sourceheightstart"], "height start")
	assert.Nil(t, m["issupplemental"], "authoritative")

	_, supplementals := exp.Split(1)
	assert.Nil(t, supplementals, "nothing to split")
}

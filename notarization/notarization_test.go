// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package notarization_test

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/pbaasd/currency"
	"github.com/bitmark-inc/pbaasd/currencystate"
	"github.com/bitmark-inc/pbaasd/destination"
	"github.com/bitmark-inc/pbaasd/fault"
	"github.com/bitmark-inc/pbaasd/merkle"
	"github.com/bitmark-inc/pbaasd/notarization"
)

const (
	testingDirName = "testing"
	logCategory    = "notarization"
)

var (
	local   = currency.ID{0x11}
	peer    = currency.ID{0x22}
	other   = currency.ID{0x33}
	reserve = currency.ID{0x44}
)

func TestMain(m *testing.M) {
	_ = os.RemoveAll(testingDirName)
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	_ = logger.Initialise(logging)

	rc := m.Run()

	logger.Finalise()
	_ = os.RemoveAll(testingDirName)
	os.Exit(rc)
}

func stateOf(id currency.ID) currencystate.CurrencyState {
	return currencystate.CurrencyState{
		Version:       currencystate.Version,
		Flags:         currencystate.FlagFractional,
		CurrencyID:    id,
		Currencies:    []currency.ID{reserve},
		Weights:       []int64{currency.Unit / 2},
		Reserves:      []int64{10 * currency.Unit},
		InitialSupply: 20 * currency.Unit,
		Supply:        20 * currency.Unit,
	}
}

func rootOf(id currency.ID, height uint32) notarization.ProofRoot {
	return notarization.ProofRoot{
		Version:    notarization.Version,
		Type:       notarization.ProofRootPBaaS,
		SystemID:   id,
		RootHeight: height,
		StateRoot:  merkle.NewDigest(id[:]),
		BlockHash:  merkle.NewDigest([]byte{byte(height)}),
	}
}

// the local system's own record, peer state held as secondary
func sample() *notarization.Notarization {
	return &notarization.Notarization{
		Version:            notarization.Version,
		Flags:              notarization.FlagLaunchConfirmed,
		Proposer:           destination.New(destination.KeyID{0x01}),
		CurrencyID:         local,
		NotarizationHeight: 100,
		CurrencyState:      stateOf(local),
		PrevNotarization: merkle.UTXORef{
			Hash: merkle.NewDigest([]byte("previous")),
			N:    1,
		},
		PrevHeight:                90,
		HashPrevCrossNotarization: merkle.NewDigest([]byte("cross")),
		CurrencyStates: map[currency.ID]currencystate.CurrencyState{
			peer: stateOf(peer),
		},
		ProofRoots: map[currency.ID]notarization.ProofRoot{
			local: rootOf(local, 100),
			peer:  rootOf(peer, 500),
		},
		Nodes: []notarization.NodeData{
			{NetworkAddress: "127.0.0.1:2136", NodeIdentity: currency.ID{0x55}},
		},
	}
}

// a record made for the peer currency, local state held as secondary
func peerSample() *notarization.Notarization {
	n := sample()
	n.CurrencyID = peer
	n.NotarizationHeight = 500
	n.CurrencyState = stateOf(peer)
	n.CurrencyStates = map[currency.ID]currencystate.CurrencyState{
		local: stateOf(local),
	}
	return n
}

func TestMirrorRoundTrip(t *testing.T) {
	for _, original := range []*notarization.Notarization{sample(), peerSample()} {
		before := original.Clone()

		mirrored, err := notarization.Mirror(original, true, local)
		assert.Nil(t, err, "mirror")
		assert.Equal(t, before, original, "input untouched")
		assert.True(t, mirrored.IsMirror(), "mirror flag")
		assert.NotEqual(t, original.CurrencyID, mirrored.CurrencyID, "relabelled")
		assert.Equal(t, original.ProofRoots[mirrored.CurrencyID].RootHeight, mirrored.NotarizationHeight, "height from proof root")
		assert.Equal(t, original.CurrencyStates[mirrored.CurrencyID], mirrored.CurrencyState, "promoted state")
		assert.Equal(t, original.CurrencyState, mirrored.CurrencyStates[original.CurrencyID], "archived state")
		assert.Equal(t, 1, len(mirrored.CurrencyStates), "secondary count")
		assert.Nil(t, mirrored.Validate(), "mirrored valid")

		native, err := notarization.Mirror(mirrored, false, local)
		assert.Nil(t, err, "un-mirror")
		assert.False(t, native.IsMirror(), "mirror flag cleared")
		assert.Equal(t, original, native, "round trip")
		assert.Equal(t, original.Pack(), native.Pack(), "round trip bytes")
	}
}

func TestMirrorSameView(t *testing.T) {
	n := sample()
	same, err := notarization.Mirror(n, false, local)
	assert.Nil(t, err, "no change")
	assert.Equal(t, n, same, "copy")

	same.CurrencyStates[other] = stateOf(other)
	same.CurrencyState.Reserves[0] = 1
	assert.Equal(t, 1, len(n.CurrencyStates), "states not shared")
	assert.Equal(t, int64(10*currency.Unit), n.CurrencyState.Reserves[0], "reserves not shared")
}

func TestMirrorDropsAux(t *testing.T) {
	n := sample()
	n.Proposer.Aux = []destination.Destination{destination.New(destination.IdentityID{0x66})}

	mirrored, err := notarization.Mirror(n, true, local)
	assert.Nil(t, err, "mirror")
	assert.Equal(t, 1, len(mirrored.Proposer.Aux), "aux kept when mirroring")

	native, err := notarization.Mirror(mirrored, false, local)
	assert.Nil(t, err, "un-mirror")
	assert.Nil(t, native.Proposer.Aux, "aux dropped")
	assert.Equal(t, n.Proposer.Address, native.Proposer.Address, "address kept")
	assert.Equal(t, 1, len(mirrored.Proposer.Aux), "input untouched")
}

func TestMirrorAbsentState(t *testing.T) {
	n := sample()
	n.CurrencyStates = nil

	mirrored, err := notarization.Mirror(n, true, local)
	assert.Nil(t, err, "mirror")
	assert.Equal(t, currencystate.CurrencyState{}, mirrored.CurrencyState, "zero state")
	assert.Equal(t, map[currency.ID]currencystate.CurrencyState{local: stateOf(local)}, mirrored.CurrencyStates, "archived")
	assert.Nil(t, n.CurrencyStates, "input untouched")
}

func TestMirrorFailures(t *testing.T) {
	type mutate func(*notarization.Notarization)

	tests := []struct {
		name string
		f    mutate
		err  error
	}{
		{"one proof root", func(n *notarization.Notarization) {
			delete(n.ProofRoots, peer)
		}, fault.ErrWrongProofRootCount},
		{"no proof roots", func(n *notarization.Notarization) {
			n.ProofRoots = nil
		}, fault.ErrWrongProofRootCount},
		{"three proof roots", func(n *notarization.Notarization) {
			n.ProofRoots[other] = rootOf(other, 7)
		}, fault.ErrWrongProofRootCount},
		{"already holds primary", func(n *notarization.Notarization) {
			n.CurrencyStates[local] = stateOf(local)
		}, fault.ErrAlreadyMirrored},
		{"no local proof root", func(n *notarization.Notarization) {
			delete(n.ProofRoots, local)
			n.ProofRoots[other] = rootOf(other, 7)
		}, fault.ErrMissingLocalProofRoot},
		{"no local state", func(n *notarization.Notarization) {
			n.CurrencyID = peer
			n.CurrencyState = stateOf(peer)
			n.CurrencyStates = map[currency.ID]currencystate.CurrencyState{
				other: stateOf(other),
			}
		}, fault.ErrMissingLocalCurrencyState},
	}

	for _, test := range tests {
		n := sample()
		test.f(n)
		before := n.Clone()
		m, err := notarization.Mirror(n, true, local)
		assert.Equal(t, test.err, err, test.name)
		assert.Nil(t, m, "%s: no result", test.name)
		assert.True(t, fault.IsErrInvalid(err), "%s: error class", test.name)
		assert.Equal(t, before, n, "%s: input untouched", test.name)
	}

	_, err := notarization.Mirror(nil, true, local)
	assert.Equal(t, fault.ErrInvalidNotarization, err, "nil record")
}

func TestValidate(t *testing.T) {
	assert.Nil(t, sample().Validate(), "sample")
	assert.Nil(t, peerSample().Validate(), "peer sample")

	n := sample()
	n.Version = notarization.VersionInvalid
	assert.Equal(t, fault.ErrInvalidNotarization, n.Validate(), "version")

	n = sample()
	n.CurrencyID = currency.ID{}
	assert.Equal(t, fault.ErrInvalidCurrencyID, n.Validate(), "currency")

	n = sample()
	n.CurrencyState = stateOf(peer)
	assert.Equal(t, fault.ErrInvalidNotarization, n.Validate(), "state of another currency")

	n = sample()
	n.CurrencyStates[other] = stateOf(peer)
	assert.Equal(t, fault.ErrInvalidNotarization, n.Validate(), "state under wrong key")

	n = sample()
	n.ProofRoots[peer] = rootOf(other, 1)
	assert.Equal(t, fault.ErrInvalidNotarization, n.Validate(), "root under wrong key")

	n = sample()
	n.CurrencyState.Weights = nil
	assert.Equal(t, fault.ErrCountMismatch, n.Validate(), "bad state")

	n = sample()
	n.Proposer = destination.New(destination.Invalid{})
	assert.Equal(t, fault.ErrInvalidDestination, n.Validate(), "proposer")
}

func TestPack(t *testing.T) {
	mirrored, err := notarization.Mirror(sample(), true, local)
	assert.Nil(t, err, "mirror")

	withAux := sample()
	withAux.Proposer.Aux = []destination.Destination{destination.New(destination.IdentityID{0x66})}

	for i, n := range []*notarization.Notarization{sample(), peerSample(), mirrored, withAux} {
		back, err := notarization.Unpack(n.Pack())
		assert.Nil(t, err, "%d: unpack", i)
		assert.Equal(t, *n, back, "%d: round trip", i)
	}

	packed := sample().Pack()
	_, err = notarization.Unpack(packed[:len(packed)-1])
	assert.Equal(t, fault.ErrTruncatedRecord, err, "truncated")
	_, err = notarization.Unpack(append(packed, 0))
	assert.Equal(t, fault.ErrTrailingData, err, "trailing")
}

func TestNotary(t *testing.T) {
	log := logger.New(logCategory)

	_, err := notarization.NewNotary(currency.ID{}, log)
	assert.Equal(t, fault.ErrInvalidCurrencyID, err, "null system")
	_, err = notarization.NewNotary(local, nil)
	assert.Equal(t, fault.ErrInvalidLoggerChannel, err, "no logger")

	notary, err := notarization.NewNotary(local, log)
	assert.Nil(t, err, "new notary")
	assert.Equal(t, local, notary.LocalSystemID(), "local system")

	n := sample()
	accepted, err := notary.Accept(n)
	assert.Nil(t, err, "accept")
	assert.True(t, accepted.IsMirror(), "accepted view")
	assert.Equal(t, peer, accepted.CurrencyID, "accepted currency")

	native, err := notary.Native(accepted)
	assert.Nil(t, err, "native")
	assert.Equal(t, n, native, "native view")

	n.Version = notarization.VersionInvalid
	_, err = notary.Accept(n)
	assert.Equal(t, fault.ErrInvalidNotarization, err, "invalid record")

	n = sample()
	delete(n.ProofRoots, peer)
	_, err = notary.Accept(n)
	assert.Equal(t, fault.ErrWrongProofRootCount, err, "single root")
}

func TestJSON(t *testing.T) {
	mirrored, err := notarization.Mirror(sample(), true, local)
	assert.Nil(t, err, "mirror")

	buffer, err := json.Marshal(mirrored)
	assert.Nil(t, err, "marshal")

	var m map[string]interface{}
	err = json.Unmarshal(buffer, &m)
	assert.Nil(t, err, "unmarshal")
	assert.Equal(t, true, m["ismirror"], "mirror")
	assert.Equal(t, true, m["launchconfirmed"], "launch confirmed")
	assert.Equal(t, peer.String(), m["currencyid"], "currency")
	assert.Equal(t, float64(500), m["notarizationheight"], "height")

	states, ok := m["currencystates"].([]interface{})
	assert.True(t, ok, "states array")
	assert.Equal(t, 1, len(states), "states count")
	entry, ok := states[0].(map[string]interface{})
	assert.True(t, ok, "state entry")
	_, ok = entry[local.String()]
	assert.True(t, ok, "keyed by currency")

	roots, ok := m["proofroots"].([]interface{})
	assert.True(t, ok, "roots array")
	assert.Equal(t, 2, len(roots), "roots count")
}

// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package provider

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/election/config"
	"github.com/luxfi/election/currency"
	"github.com/luxfi/election/miner"
	"github.com/luxfi/election/provider/testprovider"
	"github.com/luxfi/election/types"
)

func id(b byte) types.AccountId {
	var raw [20]byte
	raw[0] = b
	return types.AccountId(raw)
}

func sampleFixture(predicted types.BlockNumber) *testprovider.Fixture {
	voters := []types.Voter{
		{Who: id(1), Stake: 100, Approvals: []types.AccountId{id(10), id(11)}},
		{Who: id(2), Stake: 50, Approvals: []types.AccountId{id(10)}},
		{Who: id(3), Stake: 25, Approvals: []types.AccountId{id(11)}},
	}
	targets := []types.AccountId{id(10), id(11), id(12)}
	return testprovider.New(voters, targets, 2, predicted)
}

func newProvider(t *testing.T, predicted types.BlockNumber) (*Provider, *currency.Memory) {
	t.Helper()
	cfg, err := config.NewBuilder().
		WithPhases(10, 5).
		WithMaxSignedSubmissions(4).
		WithImprovementThreshold(0).
		WithMinerLimits(10, ^uint64(0)).
		Build()
	require.NoError(t, err)

	cur := currency.NewMemory(map[types.AccountId]types.Balance{
		id(1): 1000, id(2): 1000, id(3): 1000,
	})

	p := New(cfg, sampleFixture(predicted), cur, currency.DiscardImbalance, currency.DiscardImbalance, nil, nil)
	return p, cur
}

// seed case 4: the miner's solution is accepted and queued when the
// unsigned phase opens and nothing has been submitted yet.
func TestMineSanitySolutionAcceptedAsQueued(t *testing.T) {
	require := require.New(t)
	p, _ := newProvider(t, 30)

	require.NoError(p.OnInitialize(15)) // enters Signed
	require.True(p.phase.Current().IsSigned())
	require.NoError(p.OnInitialize(25)) // Signed has no submissions, enters Unsigned open
	require.True(p.phase.Current().IsUnsigned())

	snap, ok := p.Snapshot().Get()
	require.True(ok)

	raw, witness, err := miner.Mine(snap, p.phase.Round(), 2, p.MinerConfig(), nil)
	require.NoError(err)

	require.NotPanics(func() {
		p.SubmitUnsigned(25, raw, witness)
	})

	queued, ok := p.phase.QueuedSolution()
	require.True(ok)
	require.EqualValues(2, len(queued.Supports))
}

func TestSubmitRejectsOutsideSignedPhase(t *testing.T) {
	require := require.New(t)
	p, _ := newProvider(t, 30)

	sol := types.RawSolution{Score: types.Score{1, 1, 1}}
	err := p.Submit(id(1), sol)
	require.ErrorIs(err, types.ErrEarlySubmission)
}

func TestElectFallsBackWhenNoSubmissions(t *testing.T) {
	require := require.New(t)
	p, _ := newProvider(t, 30)

	require.NoError(p.OnInitialize(15))
	require.NoError(p.OnInitialize(25))

	sol, err := p.Elect()
	require.NoError(err)
	require.Len(sol.Supports, 2)
	require.True(p.phase.Current().IsOff())
}

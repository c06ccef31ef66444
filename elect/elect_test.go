// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package elect

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/election/snapshot"
	"github.com/luxfi/election/types"
)

type stubPhase struct {
	queued  *types.ReadySolution
	resetCt int
}

func (s *stubPhase) ConsumeQueuedSolution() (*types.ReadySolution, bool) {
	r := s.queued
	s.queued = nil
	return r, r != nil
}

func (s *stubPhase) Reset() { s.resetCt++ }

func id(b byte) types.AccountId {
	var raw [20]byte
	raw[0] = b
	return types.AccountId(raw)
}

func TestElectReturnsQueuedSolutionAndResets(t *testing.T) {
	require := require.New(t)
	sp := snapshot.New()
	phase := &stubPhase{queued: &types.ReadySolution{Score: types.Score{1, 2, 3}, Compute: types.ComputeSigned}}
	d := New(phase, sp, nil)

	sol, err := d.Elect()
	require.NoError(err)
	require.Equal(types.Score{1, 2, 3}, sol.Score)
	require.Equal(1, phase.resetCt)
}

func TestElectFallsBackToOnchainWhenNothingQueued(t *testing.T) {
	require := require.New(t)
	sp := snapshot.New()
	sp.Put(&types.RoundSnapshot{
		Voters: []types.Voter{
			{Who: id(1), Stake: 10, Approvals: []types.AccountId{id(10)}},
		},
		Targets:        []types.AccountId{id(10)},
		DesiredTargets: 1,
	})
	phase := &stubPhase{}
	d := New(phase, sp, nil)

	sol, err := d.Elect()
	require.NoError(err)
	require.Equal(types.ComputeOnChain, sol.Compute)
	require.Equal(1, phase.resetCt)
}

func TestElectErrorsWithNoSnapshotOrQueue(t *testing.T) {
	require := require.New(t)
	sp := snapshot.New()
	phase := &stubPhase{}
	d := New(phase, sp, nil)

	_, err := d.Elect()
	require.ErrorIs(err, types.ErrSnapshotUnavailable)
}

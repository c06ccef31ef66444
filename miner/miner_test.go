// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package miner

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/election/types"
)

func id(b byte) types.AccountId {
	var raw [20]byte
	raw[0] = b
	return types.AccountId(raw)
}

func sampleSnapshot() *types.RoundSnapshot {
	t1, t2, t3 := id(1), id(2), id(3)
	return &types.RoundSnapshot{
		Voters: []types.Voter{
			{Who: id(10), Stake: 100, Approvals: []types.AccountId{t1, t2}},
			{Who: id(11), Stake: 50, Approvals: []types.AccountId{t2, t3}},
			{Who: id(12), Stake: 75, Approvals: []types.AccountId{t1, t3}},
		},
		Targets:        []types.AccountId{t1, t2, t3},
		DesiredTargets: 2,
	}
}

func TestMineSanity(t *testing.T) {
	require := require.New(t)
	snap := sampleSnapshot()

	raw, witness, err := Mine(snap, 1, 2, Config{MaxIterations: 2, MaxWeight: 1_000_000}, nil)
	require.NoError(err)
	require.EqualValues(3, witness.Voters)
	require.EqualValues(3, witness.Targets)
	require.EqualValues(1, raw.Round)
	require.Greater(raw.Score[1], uint64(0))
}

func TestMineNilSnapshot(t *testing.T) {
	require := require.New(t)
	_, _, err := Mine(nil, 1, 0, Config{}, nil)
	require.ErrorIs(err, types.ErrSnapshotUnavailable)
}

func TestMineDeterministic(t *testing.T) {
	require := require.New(t)
	snap := sampleSnapshot()

	r1, _, err1 := Mine(snap, 1, 2, Config{MaxIterations: 2, MaxWeight: 1_000_000}, nil)
	r2, _, err2 := Mine(snap, 1, 2, Config{MaxIterations: 2, MaxWeight: 1_000_000}, nil)
	require.NoError(err1)
	require.NoError(err2)
	require.Equal(r1.Score, r2.Score)
}

func TestMaximumCompactLenZeroVoters(t *testing.T) {
	require := require.New(t)
	got := MaximumCompactLen(2, types.WitnessData{Voters: 0}, 1000, func(int) uint64 { return 0 })
	require.Equal(0, got)
}

func TestMaximumCompactLenMonotoneWeight(t *testing.T) {
	require := require.New(t)
	weight := func(active int) uint64 { return uint64(active) * 10 }
	got := MaximumCompactLen(2, types.WitnessData{Voters: 100}, 505, weight)
	require.LessOrEqual(weight(got), uint64(505))
	if got < 100 {
		require.Greater(weight(got+1), uint64(505))
	}
}

func TestTrimCompactDropsLowestStakeFirst(t *testing.T) {
	require := require.New(t)
	voters := []types.Voter{
		{Who: id(1), Stake: 10},
		{Who: id(2), Stake: 100},
		{Who: id(3), Stake: 50},
	}
	compact := types.CompactSolution{Assignments: []types.CompactAssignment{
		{Voter: 0}, {Voter: 1}, {Voter: 2},
	}}
	voterAt := func(i uint32) (types.AccountId, bool) {
		if int(i) >= len(voters) {
			return types.AccountId{}, false
		}
		return voters[i].Who, true
	}
	trimmed := TrimCompact(compact, voters, voterAt, 2)
	require.Equal(2, trimmed.Len())
	for _, a := range trimmed.Assignments {
		require.NotEqual(uint32(0), a.Voter)
	}
}

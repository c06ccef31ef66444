// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package phragmen

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

func TestElectPicksDesiredTargets(t *testing.T) {
	require := require.New(t)

	t1, t2, t3 := id(1), id(2), id(3)
	voters := []types.Voter{
		{Who: id(10), Stake: 100, Approvals: []types.AccountId{t1, t2}},
		{Who: id(11), Stake: 50, Approvals: []types.AccountId{t2, t3}},
		{Who: id(12), Stake: 75, Approvals: []types.AccountId{t1, t3}},
	}
	winners, assignments, err := Elect(voters, []types.AccountId{t1, t2, t3}, 2, 2)
	require.NoError(err)
	require.Len(winners, 2)
	require.NotEmpty(assignments)
}

func TestElectEmptyInputs(t *testing.T) {
	require := require.New(t)
	winners, assignments, err := Elect(nil, nil, 2, 0)
	require.NoError(err)
	require.Nil(winners)
	require.Nil(assignments)
}

func TestToStakedSumsToStake(t *testing.T) {
	require := require.New(t)
	edges := []RatioEdge{{Target: id(1), Weight: 600_000_000}, {Target: id(2), Weight: 400_000_000}}
	staked := ToStaked(id(10), 101, edges)
	var sum uint64
	for _, s := range staked {
		sum += s.Stake
	}
	require.EqualValues(101, sum)
}

func TestReducePreservesTotals(t *testing.T) {
	require := require.New(t)
	a := StakedAssignmentSet{Who: id(10), Edges: []types.StakedAssignment{{Who: id(1), Stake: 10}, {Who: id(2), Stake: 10}}}
	b := StakedAssignmentSet{Who: id(11), Edges: []types.StakedAssignment{{Who: id(2), Stake: 5}, {Who: id(1), Stake: 5}}}

	before := map[types.AccountId]uint64{}
	for _, set := range []StakedAssignmentSet{a, b} {
		for _, e := range set.Edges {
			before[e.Who] += e.Stake
		}
	}

	reduced := Reduce([]StakedAssignmentSet{a, b})

	after := map[types.AccountId]uint64{}
	for _, set := range reduced {
		for _, e := range set.Edges {
			after[e.Who] += e.Stake
		}
	}
	require.Equal(before, after)
}

// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package signedqueue

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/election/currency"
	elmath "github.com/luxfi/election/utils/math"

	"github.com/luxfi/election/types"
)

func id(b byte) types.AccountId {
	var raw [20]byte
	raw[0] = b
	return types.AccountId(raw)
}

func baseConfig(maxSubs int) Config {
	return Config{
		MaxSubmissions:   maxSubs,
		Deposit:          DepositFee{Base: 10},
		Reward:           RewardFee{Base: 1, Factor: 1},
		ImproveThreshold: elmath.FromPercent(0),
	}
}

func TestInsertOrdersWorstToBest(t *testing.T) {
	require := require.New(t)
	cur := currency.NewMemory(map[types.AccountId]types.Balance{id(1): 1000, id(2): 1000, id(3): 1000})
	q := New(baseConfig(10))

	_, ok, err := q.Insert(cur, id(1), types.RawSolution{Score: types.Score{10, 0, 0}})
	require.NoError(err)
	require.True(ok)

	pos, ok, err := q.Insert(cur, id(2), types.RawSolution{Score: types.Score{20, 0, 0}})
	require.NoError(err)
	require.True(ok)
	require.Equal(1, pos) // better score goes after the weaker one

	require.Equal(2, q.Len())
}

func TestInsertRejectsWhenFullAndWeaker(t *testing.T) {
	require := require.New(t)
	cur := currency.NewMemory(map[types.AccountId]types.Balance{id(1): 1000, id(2): 1000})
	q := New(baseConfig(1))

	_, ok, err := q.Insert(cur, id(1), types.RawSolution{Score: types.Score{10, 0, 0}})
	require.NoError(err)
	require.True(ok)

	beforeFree := cur.FreeBalance(id(2))
	_, ok, err = q.Insert(cur, id(2), types.RawSolution{Score: types.Score{5, 0, 0}})
	require.NoError(err)
	require.False(ok)
	require.Equal(beforeFree, cur.FreeBalance(id(2))) // no deposit moved
	require.Equal(1, q.Len())
}

func TestInsertEvictsWorstWhenFullAndBetter(t *testing.T) {
	require := require.New(t)
	cur := currency.NewMemory(map[types.AccountId]types.Balance{id(1): 1000, id(2): 1000})
	q := New(baseConfig(1))

	_, ok, err := q.Insert(cur, id(1), types.RawSolution{Score: types.Score{10, 0, 0}})
	require.NoError(err)
	require.True(ok)

	_, ok, err = q.Insert(cur, id(2), types.RawSolution{Score: types.Score{20, 0, 0}})
	require.NoError(err)
	require.True(ok)
	require.Equal(1, q.Len())
	require.EqualValues(1000, cur.FreeBalance(id(1))) // refunded on eviction
}

func TestFinalizeAcceptsFirstFeasible(t *testing.T) {
	require := require.New(t)
	t1, t2 := id(100), id(101)
	snap := &types.RoundSnapshot{
		Voters: []types.Voter{
			{Who: id(1), Stake: 100, Approvals: []types.AccountId{t1, t2}},
		},
		Targets:        []types.AccountId{t1, t2},
		DesiredTargets: 2,
	}

	good := types.RawSolution{
		Compact: types.CompactSolution{Assignments: []types.CompactAssignment{
			{Voter: 0, Edges: []types.Edge{{Target: 0, Weight: 500_000_000}, {Target: 1, Weight: 500_000_000}}},
		}},
		Score: types.Score{50, 100, 5000},
	}

	cur := currency.NewMemory(map[types.AccountId]types.Balance{id(1): 1000})
	q := New(baseConfig(2))
	_, ok, err := q.Insert(cur, id(1), good)
	require.NoError(err)
	require.True(ok)

	result := Finalize(q, cur, snap, currency.DiscardImbalance, currency.DiscardImbalance)
	require.NotNil(result.Accepted)
	require.Equal(id(1), result.Winner)
	require.Equal(0, q.Len())
	require.EqualValues(1051, cur.FreeBalance(id(1))) // deposit returned (1000) + reward credited (51)
}

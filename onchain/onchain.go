// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package onchain implements the emergency fallback election: a plain,
// unreduced sequential Phragmen run executed synchronously inside
// consensus when no signed or unsigned solution was ready in time.
package onchain

import (
	"errors"

	"github.com/luxfi/election/phragmen"
	"github.com/luxfi/election/types"
)

// ErrNoFallback is returned when the snapshot has no voters or the
// desired number of targets cannot be met.
var ErrNoFallback = errors.New("onchain fallback: election failed")

// Fallback computes a solution directly against the live snapshot,
// without iterative balancing or Phragmen reduce: correctness over
// optimality, since it runs on the block-production hot path.
type Fallback struct{}

func (Fallback) Elect(snap *types.RoundSnapshot) (types.ReadySolution, error) {
	if snap == nil || len(snap.Voters) == 0 || len(snap.Targets) == 0 {
		return types.ReadySolution{}, ErrNoFallback
	}

	winners, assignments, err := phragmen.Elect(snap.Voters, snap.Targets, snap.DesiredTargets, 0)
	if err != nil {
		return types.ReadySolution{}, err
	}
	if uint32(len(winners)) != snap.DesiredTargets {
		return types.ReadySolution{}, ErrNoFallback
	}

	stakeOf := make(map[types.AccountId]types.VoteWeight, len(snap.Voters))
	for _, v := range snap.Voters {
		stakeOf[v.Who] = v.Stake
	}

	backing := make(map[types.AccountId]types.VoteWeight)
	voters := make(map[types.AccountId][]types.StakedAssignment)
	for _, a := range assignments {
		staked := phragmen.ToStaked(a.Who, stakeOf[a.Who], a.Edges)
		for _, s := range staked {
			backing[s.Who] += s.Stake
			voters[s.Who] = append(voters[s.Who], types.StakedAssignment{Who: a.Who, Stake: s.Stake})
		}
	}

	supports := make([]types.Support, 0, len(winners))
	for _, w := range winners {
		supports = append(supports, types.Support{
			Who:          w,
			TotalBacking: backing[w],
			Voters:       voters[w],
		})
	}

	score := computeScore(backing, winners)
	return types.ReadySolution{Supports: supports, Score: score, Compute: types.ComputeOnChain}, nil
}

func computeScore(backing map[types.AccountId]types.VoteWeight, winners []types.AccountId) types.Score {
	if len(winners) == 0 {
		return types.Score{}
	}
	var minBacking, total, sumSquares uint64
	minBacking = ^uint64(0)
	for _, w := range winners {
		b := backing[w]
		if b < minBacking {
			minBacking = b
		}
		total += b
		sumSquares += b * b
	}
	return types.Score{minBacking, total, sumSquares}
}

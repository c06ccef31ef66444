// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package feasibility verifies that a candidate RawSolution is consistent
// with the round's snapshot and that its claimed score is exact. It never
// trusts any field of the RawSolution except as a claim to be verified.
package feasibility

import (
	"github.com/luxfi/election/phragmen"
	"github.com/luxfi/election/types"
)

// Check runs the five ordered verification steps of the feasibility
// algorithm and returns the derived ReadySolution on success.
func Check(snap *types.RoundSnapshot, raw types.RawSolution, compute types.ElectionCompute) (types.ReadySolution, error) {
	if snap == nil {
		return types.ReadySolution{}, types.ErrSnapshotUnavailable
	}

	// Step 1: distinct target count must equal desired_targets.
	distinct := raw.Compact.UniqueTargets()
	if uint32(len(distinct)) != snap.DesiredTargets {
		return types.ReadySolution{}, types.ErrWrongWinnerCount
	}

	// Step 2: resolve every voter/target index against the snapshot.
	voterAt := func(i uint32) (types.Voter, bool) {
		if int(i) >= len(snap.Voters) {
			return types.Voter{}, false
		}
		return snap.Voters[i], true
	}
	targetAt := func(i uint32) (types.AccountId, bool) {
		if int(i) >= len(snap.Targets) {
			return types.AccountId{}, false
		}
		return snap.Targets[i], true
	}

	backing := make(map[types.AccountId]uint64, len(distinct))
	votersByWinner := make(map[types.AccountId][]types.StakedAssignment, len(distinct))

	for _, a := range raw.Compact.Assignments {
		voter, ok := voterAt(a.Voter)
		if !ok {
			return types.ReadySolution{}, types.ErrInvalidVoter
		}

		approved := make(map[types.AccountId]bool, len(voter.Approvals))
		for _, ap := range voter.Approvals {
			approved[ap] = true
		}

		ratio := make([]phragmen.RatioEdge, 0, len(a.Edges))
		for _, e := range a.Edges {
			target, ok := targetAt(e.Target)
			if !ok {
				return types.ReadySolution{}, types.ErrInvalidWinner
			}
			// Step 3: every picked target must be in the voter's
			// approval list.
			if !approved[target] {
				return types.ReadySolution{}, types.ErrInvalidVote
			}
			ratio = append(ratio, phragmen.RatioEdge{Target: target, Weight: e.Weight})
		}

		// Step 4: convert fractional assignments to staked assignments,
		// normalized so the sum equals the voter's stake.
		staked := phragmen.ToStaked(voter.Who, voter.Stake, ratio)
		var sum uint64
		for _, s := range staked {
			sum += s.Stake
			backing[s.Who] += s.Stake
			votersByWinner[s.Who] = append(votersByWinner[s.Who], types.StakedAssignment{Who: voter.Who, Stake: s.Stake})
		}
		if sum != voter.Stake && len(staked) > 0 {
			return types.ReadySolution{}, types.ErrNposElection
		}
	}

	// Step 5: build target-major supports, compute the score, and compare
	// to the claim.
	supports := make([]types.Support, 0, len(distinct))
	for _, t := range distinct {
		target, ok := targetAt(t)
		if !ok {
			return types.ReadySolution{}, types.ErrInvalidWinner
		}
		supports = append(supports, types.Support{
			Who:          target,
			TotalBacking: backing[target],
			Voters:       votersByWinner[target],
		})
	}

	computed := computeScore(backing, distinct, targetAt)
	if computed != raw.Score {
		return types.ReadySolution{}, types.ErrInvalidScore
	}

	return types.ReadySolution{Supports: supports, Score: computed, Compute: compute}, nil
}

func computeScore(backing map[types.AccountId]uint64, distinct []uint32, targetAt func(uint32) (types.AccountId, bool)) types.Score {
	if len(distinct) == 0 {
		return types.Score{0, 0, 0}
	}
	var total, sumSquares uint64
	min := ^uint64(0)
	for _, t := range distinct {
		target, ok := targetAt(t)
		if !ok {
			continue
		}
		b := backing[target]
		total += b
		sumSquares += b * b
		if b < min {
			min = b
		}
	}
	return types.Score{min, total, sumSquares}
}

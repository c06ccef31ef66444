// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package miner

import (
	"sort"

	"github.com/luxfi/election/types"
)

// MaximumCompactLen computes the largest activeVoters <= witness.Voters
// for which weight(activeVoters) <= maxWeight, via a halving binary
// search from witness.Voters down followed by a linear ±1 correction,
// exactly as original_source's maximum_compact_len does it. weight must
// be monotone non-decreasing in its argument.
func MaximumCompactLen(desiredWinners uint32, witness types.WitnessData, maxWeight uint64, weight func(activeVoters int) uint64) int {
	_ = desiredWinners
	if witness.Voters == 0 {
		return 0
	}
	high := int(witness.Voters)
	if weight(high) <= maxWeight {
		return high
	}

	low := 0
	for low < high {
		mid := low + (high-low+1)/2
		if weight(mid) <= maxWeight {
			low = mid
		} else {
			high = mid - 1
		}
	}

	// Linear correction for rounding: nudge by at most one step in either
	// direction to land exactly on the boundary the binary search may
	// have missed by one due to integer division.
	for low+1 <= int(witness.Voters) && weight(low+1) <= maxWeight {
		low++
	}
	for low > 0 && weight(low) > maxWeight {
		low--
	}

	if low < 0 {
		low = 0
	}
	if low > int(witness.Voters) {
		low = int(witness.Voters)
	}
	return low
}

// TrimCompact removes voters in ascending stake order until the solution
// has at most maxLen active voters. The removal touches only edges
// originating at the dropped voter; winners are not recomputed.
func TrimCompact(compact types.CompactSolution, voters []types.Voter, voterAt func(uint32) (types.AccountId, bool), maxLen int) types.CompactSolution {
	if compact.Len() <= maxLen {
		return compact
	}
	stakeOf := make(map[types.AccountId]types.VoteWeight, len(voters))
	for _, v := range voters {
		stakeOf[v.Who] = v.Stake
	}

	type indexedAssignment struct {
		assignment types.CompactAssignment
		stake      types.VoteWeight
	}
	indexed := make([]indexedAssignment, 0, len(compact.Assignments))
	for _, a := range compact.Assignments {
		who, _ := voterAt(a.Voter)
		indexed = append(indexed, indexedAssignment{assignment: a, stake: stakeOf[who]})
	}
	sort.SliceStable(indexed, func(i, j int) bool { return indexed[i].stake < indexed[j].stake })

	drop := len(indexed) - maxLen
	keep := indexed[drop:]

	out := types.CompactSolution{Assignments: make([]types.CompactAssignment, 0, len(keep))}
	for _, ia := range keep {
		out.Assignments = append(out.Assignments, ia.assignment)
	}
	return out
}

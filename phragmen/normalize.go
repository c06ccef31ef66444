// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package phragmen

import "github.com/luxfi/election/types"

// ToStaked converts a voter's ratio (parts-per-billion) edges into staked
// assignments using its snapshot stake, normalizing the rounded result so
// the sum equals stake exactly (any rounding remainder is added to the
// edge with the largest share, matching the conventional "largest
// remainder" fix-up original_source performs after ratio->staked
// conversion).
func ToStaked(who types.AccountId, stake types.VoteWeight, edges []RatioEdge) []types.StakedAssignment {
	if len(edges) == 0 {
		return nil
	}
	out := make([]types.StakedAssignment, len(edges))
	var sum uint64
	largest := 0
	for i, e := range edges {
		s := uint64(e.Weight) * uint64(stake) / ppb
		out[i] = types.StakedAssignment{Who: e.Target, Stake: s}
		sum += s
		if e.Weight > edges[largest].Weight {
			largest = i
		}
	}
	if sum < uint64(stake) {
		out[largest].Stake += uint64(stake) - sum
	}
	return out
}

// ToRatio is the inverse of ToStaked: given staked edges for a voter with
// the given stake, recovers parts-per-billion ratio weights. Used when
// re-deriving a ratio assignment after reduction, which operates on
// staked assignments.
func ToRatio(stake types.VoteWeight, staked []types.StakedAssignment) []RatioEdge {
	if stake == 0 || len(staked) == 0 {
		return nil
	}
	out := make([]RatioEdge, len(staked))
	var sum uint64
	largest := 0
	for i, s := range staked {
		w := s.Stake * ppb / uint64(stake)
		out[i] = RatioEdge{Target: s.Who, Weight: uint32(w)}
		sum += w
		if w > uint64(out[largest].Weight) {
			largest = i
		}
	}
	if diff := ppb - sum; diff != 0 && diff < ppb {
		out[largest].Weight += uint32(diff)
	}
	return out
}

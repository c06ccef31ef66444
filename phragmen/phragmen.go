// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package phragmen implements the sequential-Phragmén election primitive,
// stake normalization, and edge reduction. spec.md treats these as
// external pure-function collaborators; this module implements them
// directly since no third-party Go package in the example corpus provides
// them and the host-runtime boundary they sit behind is out of this
// module's scope either way.
package phragmen

import (
	"sort"

	"github.com/luxfi/election/types"
)

// Assignment is a voter's ratio-weighted edges to winners, expressed as
// parts-per-billion of the voter's stake (matching types.Edge's Weight
// unit so conversion to/from CompactSolution is direct).
type Assignment struct {
	Who   types.AccountId
	Edges []RatioEdge
}

type RatioEdge struct {
	Target types.AccountId
	Weight uint32 // parts per billion of Who's stake
}

const ppb = uint64(1_000_000_000)

// Elect runs sequential Phragmén for desiredTargets winners over voters
// approving targets, performing at most iters balancing rounds. It
// returns the winners (in selection order) and the ratio assignments.
//
// The algorithm: winners are chosen one at a time. In each round the
// unelected target with the smallest ppb/totalApproverStake score (that
// is, the largest total stake among its approvers) is elected, ties going
// to the account that sorts first; targets with no approving stake are
// never elected. The load recorded for a winner is not added to the
// scores of the remaining candidates, so earlier picks do not change
// later ones. Each voter then splits its stake equally (in ppb) across
// its elected approvals, followed by `iters` balancing passes that shift
// stake from over-backed to under-backed winners among each voter's
// elected approvals.
func Elect(voters []types.Voter, targets []types.AccountId, desiredTargets uint32, iters int) ([]types.AccountId, []Assignment, error) {
	if desiredTargets == 0 || len(targets) == 0 || len(voters) == 0 {
		return nil, nil, nil
	}
	if int(desiredTargets) > len(targets) {
		desiredTargets = uint32(len(targets))
	}

	load := make(map[types.AccountId]uint64, len(targets)) // inverse load, ppb-scaled
	elected := make(map[types.AccountId]bool, desiredTargets)
	backing := make(map[types.AccountId]uint64, len(targets))

	approvers := make(map[types.AccountId][]types.Voter)
	for _, v := range voters {
		for _, t := range v.Approvals {
			approvers[t] = append(approvers[t], v)
		}
	}

	var winners []types.AccountId
	for round := uint32(0); round < desiredTargets; round++ {
		var best types.AccountId
		var bestScore uint64
		found := false
		for _, t := range targets {
			if elected[t] {
				continue
			}
			var totalStake uint64
			for _, v := range approvers[t] {
				totalStake += v.Stake
			}
			if totalStake == 0 {
				continue
			}
			// Phragmén score: load[t] is "cost per unit of stake already
			// carried"; lower is more attractive. Using 1/totalStake in
			// ppb-fixed terms keeps everything integer.
			score := load[t] + ppb/maxU64(totalStake, 1)
			if !found || score < bestScore || (score == bestScore && less(t, best)) {
				best, bestScore, found = t, score, true
			}
		}
		if !found {
			break
		}
		elected[best] = true
		winners = append(winners, best)
		for _, v := range approvers[best] {
			backing[best] += v.Stake
		}
		load[best] = bestScore
	}

	// Build initial ratio assignment: each voter splits its stake equally
	// (ppb) across its elected approvals.
	assignments := buildAssignments(voters, elected)

	for i := 0; i < iters; i++ {
		balance(assignments, winners)
	}

	return winners, assignments, nil
}

func buildAssignments(voters []types.Voter, elected map[types.AccountId]bool) []Assignment {
	out := make([]Assignment, 0, len(voters))
	for _, v := range voters {
		var picked []types.AccountId
		for _, a := range v.Approvals {
			if elected[a] {
				picked = append(picked, a)
			}
		}
		if len(picked) == 0 {
			continue
		}
		sort.Slice(picked, func(i, j int) bool { return less(picked[i], picked[j]) })
		share := ppb / uint64(len(picked))
		remainder := ppb - share*uint64(len(picked))
		edges := make([]RatioEdge, 0, len(picked))
		for idx, t := range picked {
			w := share
			if idx == 0 {
				w += remainder // keep the sum exactly ppb
			}
			edges = append(edges, RatioEdge{Target: t, Weight: uint32(w)})
		}
		out = append(out, Assignment{Who: v.Who, Edges: edges})
	}
	return out
}

// balance performs one pass shifting a small amount of weight from a
// voter's highest-backed elected target to its lowest-backed one, which
// is the qualitative effect of Substrate's balancing iterations (reducing
// the variance of support across winners) without requiring this module
// to reproduce its exact floating convergence behaviour, which spec.md
// does not pin down beyond "at most iters balancing rounds".
func balance(assignments []Assignment, winners []types.AccountId) {
	if len(winners) < 2 {
		return
	}
	totalBacking := make(map[types.AccountId]uint64, len(winners))
	for _, a := range assignments {
		for _, e := range a.Edges {
			totalBacking[e.Target] += uint64(e.Weight)
		}
	}
	for ai := range assignments {
		edges := assignments[ai].Edges
		if len(edges) < 2 {
			continue
		}
		hi, lo := 0, 0
		for i := 1; i < len(edges); i++ {
			if totalBacking[edges[i].Target] > totalBacking[edges[hi].Target] {
				hi = i
			}
			if totalBacking[edges[i].Target] < totalBacking[edges[lo].Target] {
				lo = i
			}
		}
		if hi == lo {
			continue
		}
		shift := edges[hi].Weight / 20 // move at most 5% per pass
		if shift == 0 {
			continue
		}
		edges[hi].Weight -= shift
		edges[lo].Weight += shift
		totalBacking[edges[hi].Target] -= uint64(shift)
		totalBacking[edges[lo].Target] += uint64(shift)
	}
}

func less(a, b types.AccountId) bool {
	return a.String() < b.String()
}

func maxU64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}

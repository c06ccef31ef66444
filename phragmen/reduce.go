// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package phragmen

import "github.com/luxfi/election/types"

// StakedAssignmentSet is one voter's staked edges, the form Reduce
// operates on.
type StakedAssignmentSet struct {
	Who   types.AccountId
	Edges []types.StakedAssignment
}

// Reduce removes redundant equal-stake cycles from a set of staked
// assignments without changing any voter's total stake or any winner's
// total backing. A "cycle" here is: two voters A and B who both support
// the same pair of targets X and Y, where shifting a shared amount s
// from A's X-edge to A's Y-edge (and the opposite for B) leaves every
// total unchanged; such a shift is applied whenever it lets at least one
// edge be dropped entirely (its stake reaches exactly zero), which is the
// reduction's purpose: shrink the encoded solution without touching any
// score-relevant total.
func Reduce(assignments []StakedAssignmentSet) []StakedAssignmentSet {
	changed := true
	for changed {
		changed = false
		for i := range assignments {
			for j := i + 1; j < len(assignments); j++ {
				if reducePair(&assignments[i], &assignments[j]) {
					changed = true
				}
			}
		}
	}
	out := assignments[:0]
	for _, a := range assignments {
		edges := a.Edges[:0]
		for _, e := range a.Edges {
			if e.Stake > 0 {
				edges = append(edges, e)
			}
		}
		a.Edges = edges
		out = append(out, a)
	}
	return out
}

// reducePair looks for a shared pair of targets between a and b and, if
// found, shifts the smaller of the two crossing amounts between them so
// that at least one edge zeroes out.
func reducePair(a, b *StakedAssignmentSet) bool {
	for ai := range a.Edges {
		for aj := range a.Edges {
			if ai == aj {
				continue
			}
			x, y := a.Edges[ai].Who, a.Edges[aj].Who
			bi, bj := -1, -1
			for k, e := range b.Edges {
				if e.Who == y {
					bi = k
				}
				if e.Who == x {
					bj = k
				}
			}
			if bi == -1 || bj == -1 {
				continue
			}
			if a.Edges[ai].Stake == 0 || b.Edges[bi].Stake == 0 {
				continue // never regrow an edge that has already been dropped
			}
			// a: x += s, y -= s ; b: x -= s, y += s keeps every target's
			// total backing and every voter's own total stake unchanged.
			s := minU64(a.Edges[aj].Stake, b.Edges[bj].Stake)
			if s == 0 {
				continue
			}
			a.Edges[ai].Stake += s
			a.Edges[aj].Stake -= s
			b.Edges[bj].Stake -= s
			b.Edges[bi].Stake += s
			if a.Edges[aj].Stake == 0 || b.Edges[bj].Stake == 0 {
				return true
			}
		}
	}
	return false
}

func minU64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

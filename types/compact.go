// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import (
	"errors"

	"github.com/luxfi/election/utils/wrappers"
)

// Edge is one voter-index -> target-index edge with a fractional weight
// over a fixed-precision accuracy type. Weight is expressed in
// parts-per-billion of the voter's stake, matching the Perbill-style
// accuracy used elsewhere in this module.
type Edge struct {
	Target uint32
	Weight uint32 // parts per billion
}

// CompactAssignment is one voter's set of edges, bucketed by arity (the
// teacher's Packer only ever appends; bucketing by len(Edges) mirrors
// original_source's per-arity compact variants without needing Rust-style
// tagged enums).
type CompactAssignment struct {
	Voter uint32 // index into RoundSnapshot.Voters
	Edges []Edge
}

// CompactSolution is the packed, index-encoded form of a miner's output:
// assignments from voter indices to at most desired_targets target
// indices with fractional weights.
type CompactSolution struct {
	Assignments []CompactAssignment
}

// Len returns the number of voters represented in the solution.
func (c CompactSolution) Len() int { return len(c.Assignments) }

// VotersCount is an alias of Len kept for readability at call sites that
// talk about "active voters".
func (c CompactSolution) VotersCount() int { return c.Len() }

// UniqueTargets returns the sorted set of distinct target indices
// referenced by the solution.
func (c CompactSolution) UniqueTargets() []uint32 {
	seen := make(map[uint32]struct{})
	for _, a := range c.Assignments {
		for _, e := range a.Edges {
			seen[e.Target] = struct{}{}
		}
	}
	out := make([]uint32, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	// simple insertion sort; target counts are small (desired_targets-ish).
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// RemoveVoter deletes the assignment belonging to voter index i, if
// present, touching only the edges originating at that voter.
func (c *CompactSolution) RemoveVoter(voterIndex uint32) bool {
	for i, a := range c.Assignments {
		if a.Voter == voterIndex {
			c.Assignments = append(c.Assignments[:i], c.Assignments[i+1:]...)
			return true
		}
	}
	return false
}

var (
	ErrCompactTruncated   = errors.New("compact solution: truncated encoding")
	ErrCompactOutOfRange  = errors.New("compact solution: index out of range")
)

// Encode packs the compact solution into bytes using the same big-endian
// Packer idiom the teacher uses for wire encoding elsewhere.
func (c CompactSolution) Encode() ([]byte, error) {
	p := wrappers.NewPacker(16 + 12*len(c.Assignments))
	p.PackInt(uint32(len(c.Assignments)))
	for _, a := range c.Assignments {
		p.PackInt(a.Voter)
		p.PackInt(uint32(len(a.Edges)))
		for _, e := range a.Edges {
			p.PackInt(e.Target)
			p.PackInt(e.Weight)
		}
	}
	if p.Err != nil {
		return nil, p.Err
	}
	return p.Bytes, nil
}

// DecodeCompactSolution is the Unpacker counterpart the teacher's Packer never needed:
// it reverses Encode byte-for-byte.
func DecodeCompactSolution(data []byte) (CompactSolution, error) {
	u := wrappers.NewUnpacker(data)
	n := u.UnpackInt()
	assignments := make([]CompactAssignment, 0, n)
	for i := uint32(0); i < n; i++ {
		voter := u.UnpackInt()
		edgeCount := u.UnpackInt()
		edges := make([]Edge, 0, edgeCount)
		for j := uint32(0); j < edgeCount; j++ {
			target := u.UnpackInt()
			weight := u.UnpackInt()
			edges = append(edges, Edge{Target: target, Weight: weight})
		}
		assignments = append(assignments, CompactAssignment{Voter: voter, Edges: edges})
	}
	if u.Err != nil {
		return CompactSolution{}, u.Err
	}
	return CompactSolution{Assignments: assignments}, nil
}

// IntoAssignment expands the compact solution into per-voter,
// fractional-weight assignments using the supplied index resolvers.
// The returned map is keyed by AccountId for direct feasibility-check
// consumption.
func (c CompactSolution) IntoAssignment(voterAt func(uint32) (AccountId, bool), targetAt func(uint32) (AccountId, bool)) (map[AccountId][]struct {
	Target AccountId
	Weight uint32
}, error) {
	out := make(map[AccountId][]struct {
		Target AccountId
		Weight uint32
	}, len(c.Assignments))
	for _, a := range c.Assignments {
		who, ok := voterAt(a.Voter)
		if !ok {
			return nil, ErrCompactOutOfRange
		}
		edges := make([]struct {
			Target AccountId
			Weight uint32
		}, 0, len(a.Edges))
		for _, e := range a.Edges {
			target, ok := targetAt(e.Target)
			if !ok {
				return nil, ErrCompactOutOfRange
			}
			edges = append(edges, struct {
				Target AccountId
				Weight uint32
			}{Target: target, Weight: e.Weight})
		}
		out[who] = edges
	}
	return out, nil
}

// FromAssignment packs ratio assignments (voter -> [(target, weight)])
// back into a CompactSolution using the inverse index resolvers.
func FromAssignment(
	assignments map[AccountId][]struct {
		Target AccountId
		Weight uint32
	},
	voterIndex func(AccountId) (uint32, bool),
	targetIndex func(AccountId) (uint32, bool),
) (CompactSolution, error) {
	out := CompactSolution{Assignments: make([]CompactAssignment, 0, len(assignments))}
	for who, edges := range assignments {
		vi, ok := voterIndex(who)
		if !ok {
			return CompactSolution{}, ErrCompactOutOfRange
		}
		packed := make([]Edge, 0, len(edges))
		for _, e := range edges {
			ti, ok := targetIndex(e.Target)
			if !ok {
				return CompactSolution{}, ErrCompactOutOfRange
			}
			packed = append(packed, Edge{Target: ti, Weight: e.Weight})
		}
		out.Assignments = append(out.Assignments, CompactAssignment{Voter: vi, Edges: packed})
	}
	return out, nil
}

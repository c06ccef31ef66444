// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package miner implements the candidate-solution pipeline: Phragmén,
// normalize, reduce, compact, weight-bounded trim, re-score.
package miner

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/luxfi/election/phragmen"
	"github.com/luxfi/election/types"
)

// Config bounds the miner's work, mirroring the MinerMaxIterations /
// MinerMaxWeight configuration knobs of spec.md section 6.
type Config struct {
	MaxIterations uint32
	MaxWeight     uint64
}

// WeightFunc prices a candidate solution by active voter count, matching
// WeightInfo.submit_unsigned's (voters, targets, active_voters,
// desired_winners) -> Weight contract. It must be monotone non-decreasing
// in activeVoters.
type WeightFunc func(witness types.WitnessData, activeVoters int, desiredWinners uint32) uint64

// IterationsFromSeed derives the balancing-iteration count from an
// off-chain seed: the first 8 bytes (big-endian) of the seed's SHA-256
// digest, modulo maxIterations+1, so that the number of iterations is
// reproducible from the seed alone, not from wall-clock or other
// non-deterministic state.
func IterationsFromSeed(seed []byte, maxIterations uint32) int {
	sum := sha256.Sum256(seed)
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(maxIterations+1))
}

// Mine runs the full pipeline and returns a RawSolution ready for
// submission plus the WitnessData describing the snapshot it was mined
// against.
func Mine(snap *types.RoundSnapshot, round types.Round, iters int, cfg Config, weight WeightFunc) (types.RawSolution, types.WitnessData, error) {
	if snap == nil {
		return types.RawSolution{}, types.WitnessData{}, types.ErrSnapshotUnavailable
	}

	witness := types.WitnessData{Voters: uint32(len(snap.Voters)), Targets: uint32(len(snap.Targets))}

	winners, assignments, err := phragmen.Elect(snap.Voters, snap.Targets, snap.DesiredTargets, iters)
	if err != nil {
		return types.RawSolution{}, witness, err
	}

	stakeOf := make(map[types.AccountId]types.VoteWeight, len(snap.Voters))
	for _, v := range snap.Voters {
		stakeOf[v.Who] = v.Stake
	}

	staked := make([]phragmen.StakedAssignmentSet, 0, len(assignments))
	for _, a := range assignments {
		staked = append(staked, phragmen.StakedAssignmentSet{
			Who:   a.Who,
			Edges: phragmen.ToStaked(a.Who, stakeOf[a.Who], a.Edges),
		})
	}
	staked = phragmen.Reduce(staked)

	ratioByVoter := make(map[types.AccountId][]phragmen.RatioEdge, len(staked))
	for _, s := range staked {
		ratioByVoter[s.Who] = phragmen.ToRatio(stakeOf[s.Who], s.Edges)
	}

	voterIndex, voterAt := indexers(snap.Voters)
	targetIndex, targetAt := targetIndexers(snap.Targets)

	compact := packCompact(snap.Voters, ratioByVoter, voterIndex, targetIndex)

	if weight != nil {
		maxLen := MaximumCompactLen(snap.DesiredTargets, witness, cfg.MaxWeight, func(active int) uint64 {
			return weight(witness, active, snap.DesiredTargets)
		})
		if compact.Len() > maxLen {
			compact = TrimCompact(compact, snap.Voters, voterAt, maxLen)
		}
	}

	raw, err := score(compact, snap, voterAt, targetAt, round)
	return raw, witness, err
}

func indexers(voters []types.Voter) (func(types.AccountId) (uint32, bool), func(uint32) (types.AccountId, bool)) {
	byID := make(map[types.AccountId]uint32, len(voters))
	for i, v := range voters {
		byID[v.Who] = uint32(i)
	}
	index := func(who types.AccountId) (uint32, bool) { i, ok := byID[who]; return i, ok }
	at := func(i uint32) (types.AccountId, bool) {
		if int(i) >= len(voters) {
			return types.AccountId{}, false
		}
		return voters[i].Who, true
	}
	return index, at
}

func targetIndexers(targets []types.AccountId) (func(types.AccountId) (uint32, bool), func(uint32) (types.AccountId, bool)) {
	byID := make(map[types.AccountId]uint32, len(targets))
	for i, tgt := range targets {
		byID[tgt] = uint32(i)
	}
	index := func(who types.AccountId) (uint32, bool) { i, ok := byID[who]; return i, ok }
	at := func(i uint32) (types.AccountId, bool) {
		if int(i) >= len(targets) {
			return types.AccountId{}, false
		}
		return targets[i], true
	}
	return index, at
}

func packCompact(
	voters []types.Voter,
	ratioByVoter map[types.AccountId][]phragmen.RatioEdge,
	voterIndex func(types.AccountId) (uint32, bool),
	targetIndex func(types.AccountId) (uint32, bool),
) types.CompactSolution {
	out := types.CompactSolution{}
	for _, v := range voters {
		ratio, ok := ratioByVoter[v.Who]
		if !ok || len(ratio) == 0 {
			continue
		}
		vi, _ := voterIndex(v.Who)
		edges := make([]types.Edge, 0, len(ratio))
		for _, r := range ratio {
			ti, ok := targetIndex(r.Target)
			if !ok {
				continue
			}
			edges = append(edges, types.Edge{Target: ti, Weight: r.Weight})
		}
		out.Assignments = append(out.Assignments, types.CompactAssignment{Voter: vi, Edges: edges})
	}
	return out
}

func score(
	compact types.CompactSolution,
	snap *types.RoundSnapshot,
	voterAt func(uint32) (types.AccountId, bool),
	targetAt func(uint32) (types.AccountId, bool),
	round types.Round,
) (types.RawSolution, error) {
	stakeOf := make(map[types.AccountId]types.VoteWeight, len(snap.Voters))
	for _, v := range snap.Voters {
		stakeOf[v.Who] = v.Stake
	}

	backing := make(map[types.AccountId]uint64)
	for _, a := range compact.Assignments {
		who, ok := voterAt(a.Voter)
		if !ok {
			return types.RawSolution{}, types.ErrInvalidVoter
		}
		stake := stakeOf[who]
		staked := phragmen.ToStaked(who, stake, edgesToRatio(a.Edges, targetAt))
		for _, s := range staked {
			backing[s.Who] += s.Stake
		}
	}

	sc := computeScore(backing)
	return types.RawSolution{Compact: compact, Score: sc, Round: round}, nil
}

func edgesToRatio(edges []types.Edge, targetAt func(uint32) (types.AccountId, bool)) []phragmen.RatioEdge {
	out := make([]phragmen.RatioEdge, 0, len(edges))
	for _, e := range edges {
		t, ok := targetAt(e.Target)
		if !ok {
			continue
		}
		out = append(out, phragmen.RatioEdge{Target: t, Weight: e.Weight})
	}
	return out
}

// computeScore derives the (min_backing, total_backing, sum_of_squares)
// triple from a target-major backing map, the same computation
// feasibility.Check performs on the claimed solution so the two stay in
// lock-step.
func computeScore(backing map[types.AccountId]uint64) types.Score {
	if len(backing) == 0 {
		return types.Score{0, 0, 0}
	}
	var total uint64
	var sumSquares uint64
	min := ^uint64(0)
	for _, b := range backing {
		total += b
		sumSquares += b * b
		if b < min {
			min = b
		}
	}
	return types.Score{min, total, sumSquares}
}

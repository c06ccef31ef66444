// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package unsigned gates unsigned submissions at pool-ingest
// (ValidateUnsigned) and pre-dispatch time.
package unsigned

import (
	"github.com/luxfi/election/score"
	"github.com/luxfi/election/types"
	elmath "github.com/luxfi/election/utils/math"
)

// DefaultLongevity caps how many blocks an unsigned transaction may
// remain valid in the pool, matching original_source's DEFAULT_LONGEVITY.
const DefaultLongevity uint64 = 25

// Source identifies where a transaction came from, per the transaction
// pool's source taxonomy.
type Source int

const (
	SourceLocal Source = iota
	SourceInBlock
	SourceExternal
)

// ValidTransaction is the accept decision returned to the pool.
type ValidTransaction struct {
	Priority  uint64
	Provides  []byte
	Longevity uint64
	Propagate bool
}

// Validator gates unsigned election submissions.
type Validator struct {
	priorityBase uint64
	threshold    elmath.Perbill
	unsignedSpan uint64
}

func New(priorityBase uint64, threshold elmath.Perbill, unsignedSpan uint64) *Validator {
	return &Validator{priorityBase: priorityBase, threshold: threshold, unsignedSpan: unsignedSpan}
}

// Check runs unsigned_pre_dispatch_checks: the phase must be an open
// Unsigned phase, and the score must improve on the queued solution (if
// any) by at least the configured threshold.
func (v *Validator) Check(now types.BlockNumber, phase types.Phase, queued *types.ReadySolution, solution types.RawSolution) error {
	if !phase.IsUnsignedOpenAt(now) {
		return &types.CustomError{Code: types.CustomPreDispatchCheckFailed}
	}
	if queued != nil && !score.IsBetter(solution.Score, queued.Score, v.threshold) {
		return &types.CustomError{Code: types.CustomPreDispatchCheckFailed}
	}
	return nil
}

// ValidateUnsigned implements the pool-ingest gate: source filtering,
// the Check above, and priority/provides/longevity computation.
func (v *Validator) ValidateUnsigned(source Source, now types.BlockNumber, phase types.Phase, queued *types.ReadySolution, solution types.RawSolution) (ValidTransaction, error) {
	if source != SourceLocal && source != SourceInBlock {
		return ValidTransaction{}, &types.CustomError{Code: types.CustomPreDispatchCheckFailed}
	}
	if err := v.Check(now, phase, queued, solution); err != nil {
		return ValidTransaction{}, err
	}

	priority := saturatingAdd(v.priorityBase, solution.Score[0])

	longevity := v.unsignedSpan
	if longevity > DefaultLongevity {
		longevity = DefaultLongevity
	}

	return ValidTransaction{
		Priority:  priority,
		Provides:  roundTag(solution.Round),
		Longevity: longevity,
		Propagate: false,
	}, nil
}

// PreDispatch re-runs the same checks at dispatch time.
func (v *Validator) PreDispatch(now types.BlockNumber, phase types.Phase, queued *types.ReadySolution, solution types.RawSolution) error {
	return v.Check(now, phase, queued, solution)
}

func roundTag(round types.Round) []byte {
	return []byte{byte(round >> 24), byte(round >> 16), byte(round >> 8), byte(round)}
}

func saturatingAdd(a, b uint64) uint64 {
	if a > ^uint64(0)-b {
		return ^uint64(0)
	}
	return a + b
}

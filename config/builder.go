// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"fmt"

	"github.com/luxfi/election/types"
	elmath "github.com/luxfi/election/utils/math"
)

// Config holds every tunable parameter of the election provider.
type Config struct {
	SignedPhase   types.BlockNumber `json:"signedPhase"`
	UnsignedPhase types.BlockNumber `json:"unsignedPhase"`

	MaxSignedSubmissions int `json:"maxSignedSubmissions"`

	SignedRewardBase   types.Balance `json:"signedRewardBase"`
	SignedRewardFactor types.Balance `json:"signedRewardFactor"`
	SignedRewardMax    types.Balance `json:"signedRewardMax"`

	SignedDepositBase   types.Balance `json:"signedDepositBase"`
	SignedDepositByte   types.Balance `json:"signedDepositByte"`
	SignedDepositWeight types.Balance `json:"signedDepositWeight"`

	SolutionImprovementThreshold elmath.Perbill `json:"solutionImprovementThreshold"`

	MinerMaxIterations uint32 `json:"minerMaxIterations"`
	MinerMaxWeight     uint64 `json:"minerMaxWeight"`

	UnsignedPriority uint64 `json:"unsignedPriority"`
}

// Builder provides a fluent interface for constructing a Config.
type Builder struct {
	config *Config
	err    error
}

// NewBuilder returns a builder seeded with conservative defaults.
func NewBuilder() *Builder {
	return &Builder{
		config: &Config{
			SignedPhase:                  10,
			UnsignedPhase:                5,
			MaxSignedSubmissions:         10,
			SignedRewardBase:             1,
			SignedRewardFactor:           1,
			SignedRewardMax:              10,
			SignedDepositBase:            1,
			SignedDepositByte:            1,
			SignedDepositWeight:          1,
			SolutionImprovementThreshold: elmath.FromPercent(1),
			MinerMaxIterations:           10,
			MinerMaxWeight:               ^uint64(0),
			UnsignedPriority:             1 << 20,
		},
	}
}

// WithPhases sets the signed and unsigned phase spans.
func (b *Builder) WithPhases(signed, unsigned types.BlockNumber) *Builder {
	if b.err != nil {
		return b
	}
	b.config.SignedPhase = signed
	b.config.UnsignedPhase = unsigned
	return b
}

// WithMaxSignedSubmissions sets the signed submission queue capacity.
func (b *Builder) WithMaxSignedSubmissions(n int) *Builder {
	if b.err != nil {
		return b
	}
	if n < 1 {
		b.err = fmt.Errorf("max signed submissions must be at least 1, got %d", n)
		return b
	}
	b.config.MaxSignedSubmissions = n
	return b
}

// WithSignedReward sets the base, linear factor, and cap of the signed
// submission reward formula.
func (b *Builder) WithSignedReward(base, factor, max types.Balance) *Builder {
	if b.err != nil {
		return b
	}
	b.config.SignedRewardBase = base
	b.config.SignedRewardFactor = factor
	b.config.SignedRewardMax = max
	return b
}

// WithSignedDeposit sets the deposit formula's base, per-byte, and
// per-weight-unit fees.
func (b *Builder) WithSignedDeposit(base, byteFee, weightFee types.Balance) *Builder {
	if b.err != nil {
		return b
	}
	b.config.SignedDepositBase = base
	b.config.SignedDepositByte = byteFee
	b.config.SignedDepositWeight = weightFee
	return b
}

// WithImprovementThreshold sets the minimum percentage improvement an
// unsigned submission must show over the queued solution; the signed
// queue uses the same threshold when a full queue admits a submission.
func (b *Builder) WithImprovementThreshold(pct uint32) *Builder {
	if b.err != nil {
		return b
	}
	b.config.SolutionImprovementThreshold = elmath.FromPercent(pct)
	return b
}

// WithMinerLimits bounds the off-chain miner's balancing iterations and
// solution weight.
func (b *Builder) WithMinerLimits(maxIterations uint32, maxWeight uint64) *Builder {
	if b.err != nil {
		return b
	}
	b.config.MinerMaxIterations = maxIterations
	b.config.MinerMaxWeight = maxWeight
	return b
}

// WithUnsignedPriority sets the base priority unsigned submissions
// receive in the transaction pool.
func (b *Builder) WithUnsignedPriority(priority uint64) *Builder {
	if b.err != nil {
		return b
	}
	b.config.UnsignedPriority = priority
	return b
}

// Build validates the accumulated configuration in Strict mode and
// returns it.
func (b *Builder) Build() (*Config, error) {
	return b.BuildMode(StrictMode)
}

// BuildMode validates under an explicit ValidationMode.
func (b *Builder) BuildMode(mode ValidationMode) (*Config, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := NewValidator().WithMode(mode).Validate(b.config); err != nil {
		return nil, err
	}
	return b.config, nil
}

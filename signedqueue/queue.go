// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package signedqueue implements the bonded, insertion-ordered priority
// queue of unverified signed submissions.
package signedqueue

import (
	"github.com/luxfi/election/choices"
	"github.com/luxfi/election/currency"
	"github.com/luxfi/election/feasibility"
	elmath "github.com/luxfi/election/utils/math"

	"github.com/luxfi/election/score"
	"github.com/luxfi/election/types"
)

// DepositFee bundles the linear deposit formula coefficients from
// spec.md section 6's configuration table.
type DepositFee struct {
	Base   types.Balance
	Byte   types.Balance
	Weight types.Balance
}

// RewardFee bundles the reward formula coefficients.
type RewardFee struct {
	Base   types.Balance
	Factor types.Balance
	Max    types.Balance
}

// Config bundles the deposit/reward formulas and the relative-improvement
// threshold used for queue insertion ordering.
type Config struct {
	MaxSubmissions    int
	Deposit           DepositFee
	Reward            RewardFee
	ImproveThreshold  elmath.Perbill
	FeasibilityWeight func(types.RawSolution) uint64
	EncodedLen        func(types.RawSolution) int
}

// entry pairs a submission with its bookkeeping status and its
// outstanding reservation handle.
type entry struct {
	submission types.SignedSubmission
	reserve    currency.ReserveHandle
	status     choices.Status
}

// Queue is sorted worst -> best by score, bounded to cfg.MaxSubmissions.
type Queue struct {
	cfg     Config
	entries []entry
}

func New(cfg Config) *Queue {
	return &Queue{cfg: cfg}
}

// Len returns the current queue length.
func (q *Queue) Len() int { return len(q.entries) }

// Insert finds the insertion position under the relative-improvement
// ordering, reserves the computed deposit, and inserts the submission.
// It returns the position inserted at, or (-1, false) if rejected (queue
// full and the new submission does not improve on the worst entry).
func (q *Queue) Insert(cur currency.Currency, who types.AccountId, solution types.RawSolution) (int, bool, error) {
	pos := 0
	for i := len(q.entries) - 1; i >= 0; i-- {
		if score.IsBetter(solution.Score, q.entries[i].submission.Solution.Score, q.cfg.ImproveThreshold) {
			pos = i + 1
			break
		}
	}

	full := len(q.entries) >= q.cfg.MaxSubmissions
	if pos == 0 && full {
		return -1, false, nil
	}

	encodedLen := 0
	if q.cfg.EncodedLen != nil {
		encodedLen = q.cfg.EncodedLen(solution)
	}
	feasWeight := uint64(0)
	if q.cfg.FeasibilityWeight != nil {
		feasWeight = q.cfg.FeasibilityWeight(solution)
	}

	deposit := q.cfg.Deposit.Base + q.cfg.Deposit.Byte*types.Balance(encodedLen) + q.cfg.Deposit.Weight*types.Balance(feasWeight)
	reward := q.cfg.Reward.Base + q.cfg.Reward.Factor*types.Balance(solution.Score[0])
	if q.cfg.Reward.Max > 0 && reward > q.cfg.Reward.Max {
		reward = q.cfg.Reward.Max
	}

	handle, err := cur.Reserve(who, deposit)
	if err != nil {
		return -1, false, types.ErrCannotPayDeposit
	}

	e := entry{
		submission: types.SignedSubmission{Who: who, Deposit: deposit, Reward: reward, Solution: solution},
		reserve:    handle,
		status:     choices.Processing,
	}

	q.entries = append(q.entries, entry{})
	copy(q.entries[pos+1:], q.entries[pos:])
	q.entries[pos] = e

	if len(q.entries) > q.cfg.MaxSubmissions {
		evicted := q.entries[0]
		evicted.reserve.Unreserve()
		q.entries = q.entries[1:]
		pos--
	}

	return pos, true, nil
}

// FinalizeResult summarizes the outcome of Finalize.
type FinalizeResult struct {
	Accepted *types.ReadySolution
	Winner   types.AccountId
	Rewarded []types.AccountId
	Slashed  []types.AccountId
}

// Finalize drains the queue best -> worst, feasibility-checking each
// until one passes; the rest (examined-but-failed) are slashed, and every
// untouched remaining submission is unreserved in full.
func Finalize(q *Queue, cur currency.Currency, snap *types.RoundSnapshot, rewardSink, slashSink currency.OnUnbalanced) FinalizeResult {
	result := FinalizeResult{}
	accepted := false

	for i := len(q.entries) - 1; i >= 0 && !accepted; i-- {
		e := &q.entries[i]
		ready, err := feasibility.Check(snap, e.submission.Solution, types.ComputeSigned)
		if err == nil {
			e.status = choices.Accepted
			e.reserve.Unreserve()
			rewardSink.OnUnbalanced(cur.DepositCreating(e.submission.Who, e.submission.Reward))
			result.Rewarded = append(result.Rewarded, e.submission.Who)
			result.Winner = e.submission.Who
			readyCopy := ready
			result.Accepted = &readyCopy
			accepted = true
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			continue
		}
		e.status = choices.Rejected
		e.reserve.SlashInto(slashSink)
		result.Slashed = append(result.Slashed, e.submission.Who)
		q.entries = append(q.entries[:i], q.entries[i+1:]...)
	}

	for _, e := range q.entries {
		e.reserve.Unreserve()
	}
	q.entries = nil

	return result
}

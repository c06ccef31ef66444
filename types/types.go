// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package types holds the data model shared by every election-provider
// component: accounts, balances, snapshots, solutions and the phase tag.
package types

import (
	"errors"

	"github.com/luxfi/ids"
)

// AccountId identifies a voter or a target (nominator or validator
// candidate). Reusing ids.NodeID gives every account a fixed-width,
// comparable, String()-able identity without inventing a new ID type.
type AccountId = ids.NodeID

// Balance is a reserve/deposit/reward amount.
type Balance = uint64

// BlockNumber indexes blocks.
type BlockNumber = uint64

// VoteWeight is a voter's stake.
type VoteWeight = uint64

// Round is a monotonically increasing election-cycle counter.
type Round = uint32

// Score is the 3-tuple (minimum winner backing, total backing, sum of
// squares of backing), compared lexicographically on
// (maximize, maximize, minimize).
type Score [3]uint64

// Compare returns -1, 0 or 1 as a compares less than, equal to, or
// greater than b under the (max, max, min) ordering.
func (a Score) Compare(b Score) int {
	if a[0] != b[0] {
		if a[0] < b[0] {
			return -1
		}
		return 1
	}
	if a[1] != b[1] {
		if a[1] < b[1] {
			return -1
		}
		return 1
	}
	// third element: smaller is better, so invert.
	if a[2] != b[2] {
		if a[2] > b[2] {
			return -1
		}
		return 1
	}
	return 0
}

// ElectionCompute tags how a ReadySolution was produced.
type ElectionCompute uint8

const (
	ComputeOnChain ElectionCompute = iota
	ComputeSigned
	ComputeUnsigned
)

func (c ElectionCompute) String() string {
	switch c {
	case ComputeOnChain:
		return "OnChain"
	case ComputeSigned:
		return "Signed"
	case ComputeUnsigned:
		return "Unsigned"
	default:
		return "Invalid"
	}
}

// PhaseKind is the tag of Phase.
type PhaseKind uint8

const (
	PhaseOff PhaseKind = iota
	PhaseSigned
	PhaseUnsigned
)

func (k PhaseKind) String() string {
	switch k {
	case PhaseOff:
		return "Off"
	case PhaseSigned:
		return "Signed"
	case PhaseUnsigned:
		return "Unsigned"
	default:
		return "Invalid"
	}
}

// Phase is {Off; Signed; Unsigned(open, opened_at)}.
type Phase struct {
	Kind     PhaseKind
	Open     bool // only meaningful when Kind == PhaseUnsigned
	OpenedAt BlockNumber
}

func OffPhase() Phase { return Phase{Kind: PhaseOff} }

func SignedPhase() Phase { return Phase{Kind: PhaseSigned} }

func UnsignedPhase(open bool, openedAt BlockNumber) Phase {
	return Phase{Kind: PhaseUnsigned, Open: open, OpenedAt: openedAt}
}

func (p Phase) IsOff() bool     { return p.Kind == PhaseOff }
func (p Phase) IsSigned() bool  { return p.Kind == PhaseSigned }
func (p Phase) IsUnsigned() bool {
	return p.Kind == PhaseUnsigned
}

// IsUnsignedOpenAt reports whether the phase is an open Unsigned phase
// that was opened at or before n.
func (p Phase) IsUnsignedOpenAt(n BlockNumber) bool {
	return p.Kind == PhaseUnsigned && p.Open && p.OpenedAt <= n
}

// Voter is one entry of a RoundSnapshot: an account, its stake, and the
// ordered list of targets it approves of.
type Voter struct {
	Who       AccountId
	Stake     VoteWeight
	Approvals []AccountId
}

// RoundSnapshot is the immutable input to a round: the voters, the
// targets, and how many winners are wanted.
type RoundSnapshot struct {
	Voters         []Voter
	Targets        []AccountId
	DesiredTargets uint32
}

// WitnessData carries sizing information about a snapshot so that a
// submission's weight can be priced before it is verified.
type WitnessData struct {
	Voters  uint32
	Targets uint32
}

// RawSolution is a miner's (or submitter's) claim: a packed compact
// solution, the score it claims to produce, and the round it was mined
// for.
type RawSolution struct {
	Compact CompactSolution
	Score   Score
	Round   Round
}

// StakedAssignment is one (voter, stake-routed-to-this-winner) edge.
type StakedAssignment struct {
	Who   AccountId
	Stake VoteWeight
}

// Support is one winner's total backing, decomposed per contributing
// voter.
type Support struct {
	Who          AccountId
	TotalBacking VoteWeight
	Voters       []StakedAssignment
}

// ReadySolution is the verified, final output of a round: at most one
// exists at a time.
type ReadySolution struct {
	Supports []Support
	Score    Score
	Compute  ElectionCompute
}

// SignedSubmission is a bonded, unverified submission sitting in the
// signed queue.
type SignedSubmission struct {
	Who      AccountId
	Deposit  Balance
	Reward   Balance
	Solution RawSolution
}

// Sentinel feasibility-check errors (spec.md section 4.3 / original_source
// FeasibilityError).
var (
	ErrWrongWinnerCount  = errors.New("wrong winner count")
	ErrSnapshotUnavailable = errors.New("snapshot unavailable")
	ErrInvalidWinner     = errors.New("invalid winner")
	ErrInvalidVoter      = errors.New("invalid voter")
	ErrInvalidVote       = errors.New("invalid vote")
	ErrInvalidScore      = errors.New("invalid score")
	ErrNposElection      = errors.New("npos election error")
)

// Sentinel dispatch errors surfaced from the submission extrinsics
// (spec.md section 7 / original_source pallet Error<T>).
var (
	ErrEarlySubmission  = errors.New("early submission")
	ErrWeakSubmission   = errors.New("weak submission")
	ErrQueueFull        = errors.New("queue full")
	ErrCannotPayDeposit = errors.New("cannot pay deposit")
)

// CustomError wraps a numeric dispatch error code, matching
// original_source's Custom(u8) ValidTransaction rejection convention used
// by validate_unsigned / pre_dispatch.
type CustomError struct {
	Code uint8
}

func (e *CustomError) Error() string {
	return "custom dispatch error"
}

// CustomPreDispatchCheckFailed is the code used throughout original_source's unsigned-phase
// checks for "phase/score precondition failed".
const CustomPreDispatchCheckFailed uint8 = 99

// InvalidUnsignedSubmissionError is panicked (not returned) by the
// unsigned submission extrinsic on feasibility failure: this is load
// bearing for game-theoretic safety and must abort block authoring.
type InvalidUnsignedSubmissionError struct {
	Cause error
}

func (e *InvalidUnsignedSubmissionError) Error() string {
	return "fatal: invalid unsigned election solution: " + e.Cause.Error()
}

func (e *InvalidUnsignedSubmissionError) Unwrap() error { return e.Cause }

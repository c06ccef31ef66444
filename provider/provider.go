// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package provider wires the election provider's components (phase,
// signed queue, unsigned validation, miner, feasibility, elect) into a
// single facade exposing the three host-facing entry points: the
// per-block hook, the signed-submission extrinsic, and the
// unsigned-submission extrinsic.
package provider

import (
	"github.com/luxfi/election/config"
	"github.com/luxfi/election/currency"
	"github.com/luxfi/election/elect"
	"github.com/luxfi/election/feasibility"
	ellog "github.com/luxfi/election/log"
	"github.com/luxfi/election/metrics"
	"github.com/luxfi/election/miner"
	"github.com/luxfi/election/phase"
	"github.com/luxfi/election/signedqueue"
	"github.com/luxfi/election/snapshot"
	"github.com/luxfi/election/types"
	"github.com/luxfi/election/unsigned"

	"github.com/luxfi/log"
)

// Provider is the top-level facade: the module's public entry points.
type Provider struct {
	log      log.Logger
	cfg      *config.Config
	phase    *phase.Controller
	queue    *signedqueue.Queue
	snap     *snapshot.Store
	valid    *unsigned.Validator
	currency currency.Currency
	dispatch *elect.Dispatcher
	metrics  *metrics.Election
}

// New assembles a Provider from a validated Config and its host
// collaborators.
func New(
	cfg *config.Config,
	dataProvider phase.DataProvider,
	cur currency.Currency,
	rewardSink, slashSink currency.OnUnbalanced,
	reg metrics.Registerer,
	logger log.Logger,
) *Provider {
	if logger == nil {
		logger = ellog.NewNoOpLogger()
	}

	snap := snapshot.New()
	queue := signedqueue.New(signedqueue.Config{
		MaxSubmissions: cfg.MaxSignedSubmissions,
		Deposit: signedqueue.DepositFee{
			Base:   cfg.SignedDepositBase,
			Byte:   cfg.SignedDepositByte,
			Weight: cfg.SignedDepositWeight,
		},
		Reward: signedqueue.RewardFee{
			Base:   cfg.SignedRewardBase,
			Factor: cfg.SignedRewardFactor,
			Max:    cfg.SignedRewardMax,
		},
		ImproveThreshold: cfg.SolutionImprovementThreshold,
	})

	phaseCtl := phase.New(phase.Config{
		SignedPhase:   cfg.SignedPhase,
		UnsignedPhase: cfg.UnsignedPhase,
	}, dataProvider, snap, queue, cur, rewardSink, slashSink, logger)

	m := metrics.NewElection(reg)

	return &Provider{
		log:      logger,
		cfg:      cfg,
		phase:    phaseCtl,
		queue:    queue,
		snap:     snap,
		valid:    unsigned.New(cfg.UnsignedPriority, cfg.SolutionImprovementThreshold, cfg.UnsignedPhase),
		currency: cur,
		dispatch: elect.New(phaseCtl, snap, logger),
		metrics:  m,
	}
}

// OnInitialize runs the per-block phase transition, to be called once per
// block by the host.
func (p *Provider) OnInitialize(now types.BlockNumber) error {
	before := p.phase.Current()
	if err := p.phase.OnInitialize(now); err != nil {
		return err
	}
	after := p.phase.Current()
	if after.Kind != before.Kind {
		p.metrics.PhaseTransitions.WithLabelValues(phaseLabel(after)).Inc()
	}
	p.metrics.SignedQueueLen.Set(float64(p.queue.Len()))
	return nil
}

// Submit handles a signed-submission extrinsic per spec.md section 4.11:
// the phase must be Signed and the queue insertion must succeed. A second,
// better submission from the same account is accepted like any other and
// competes for a slot under the ordinary score ordering.
func (p *Provider) Submit(who types.AccountId, solution types.RawSolution) error {
	if !p.phase.Current().IsSigned() {
		return types.ErrEarlySubmission
	}
	_, accepted, err := p.queue.Insert(p.currency, who, solution)
	if err != nil {
		return err
	}
	if !accepted {
		return types.ErrQueueFull
	}
	p.log.Info("signed submission accepted", "who", who, "score", solution.Score)
	return nil
}

// SubmitUnsigned handles an unsigned-submission extrinsic per spec.md
// section 4.12. An invalid submission here indicates a bug in block
// construction or an attempt to forge an unsigned transaction past pool
// validation; it is a fatal condition, not a recoverable error, so it is
// reported as a panic rather than an error return.
func (p *Provider) SubmitUnsigned(now types.BlockNumber, solution types.RawSolution, witness types.WitnessData) {
	queued, _ := p.phase.QueuedSolution()
	if err := p.valid.PreDispatch(now, p.phase.Current(), queued, solution); err != nil {
		panic(&types.InvalidUnsignedSubmissionError{Cause: err})
	}

	snap, ok := p.snap.Get()
	if !ok {
		panic(&types.InvalidUnsignedSubmissionError{Cause: types.ErrSnapshotUnavailable})
	}

	ready, err := feasibility.Check(snap, solution, types.ComputeUnsigned)
	if err != nil {
		panic(&types.InvalidUnsignedSubmissionError{Cause: err})
	}

	p.phase.SetQueuedSolution(ready)
	p.metrics.SolutionsStored.WithLabelValues("unsigned").Inc()
	p.log.Info("unsigned solution stored", "score", ready.Score, "witness", witness)
}

// Elect runs the terminal elect() call, consuming the queued solution or
// falling back to the on-chain election.
func (p *Provider) Elect() (types.ReadySolution, error) {
	sol, err := p.dispatch.Elect()
	if err == nil {
		p.metrics.ElectionsFinalized.WithLabelValues(computeLabel(sol.Compute)).Inc()
	}
	return sol, err
}

// MinerConfig exposes the configured miner bounds, for the off-chain
// worker to mine against.
func (p *Provider) MinerConfig() miner.Config {
	return miner.Config{MaxIterations: p.cfg.MinerMaxIterations, MaxWeight: p.cfg.MinerMaxWeight}
}

// Snapshot exposes the round snapshot store, for the off-chain worker.
func (p *Provider) Snapshot() *snapshot.Store { return p.snap }

// Phase exposes the phase controller's read-only view, for the off-chain
// worker's open-phase check.
func (p *Provider) Phase() *phase.Controller { return p.phase }

func phaseLabel(ph types.Phase) string {
	switch {
	case ph.IsSigned():
		return "signed"
	case ph.IsUnsigned():
		return "unsigned"
	default:
		return "off"
	}
}

func computeLabel(c types.ElectionCompute) string {
	switch c {
	case types.ComputeSigned:
		return "signed"
	case types.ComputeUnsigned:
		return "unsigned"
	default:
		return "onchain"
	}
}

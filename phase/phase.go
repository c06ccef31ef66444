// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package phase implements the Off -> Signed -> Unsigned -> Off state
// machine, driven once per block by OnInitialize.
package phase

import (
	"github.com/luxfi/election/currency"
	ellog "github.com/luxfi/election/log"
	"github.com/luxfi/election/signedqueue"
	"github.com/luxfi/election/snapshot"
	"github.com/luxfi/election/types"

	"github.com/luxfi/log"
)

// DataProvider supplies the voters/targets/desired-winners snapshot and
// the host's election-timing prediction.
type DataProvider interface {
	Voters() []types.Voter
	Targets() []types.AccountId
	DesiredTargets() uint32
	NextElectionPrediction(now types.BlockNumber) types.BlockNumber
}

// Controller drives phase transitions and owns the round counter and
// snapshot.
type Controller struct {
	log           log.Logger
	signedPhase   types.BlockNumber
	unsignedPhase types.BlockNumber

	provider DataProvider
	snap     *snapshot.Store
	queue    *signedqueue.Queue
	currency currency.Currency

	rewardSink currency.OnUnbalanced
	slashSink  currency.OnUnbalanced

	phase types.Phase
	round types.Round

	queued *types.ReadySolution
}

// Config bundles the two phase spans; zero-length phases are rejected by
// config.Validator in Strict mode and silently skipped (never opened) in
// Soft mode, per the documented Open Question resolution.
type Config struct {
	SignedPhase   types.BlockNumber
	UnsignedPhase types.BlockNumber
}

func New(
	cfg Config,
	provider DataProvider,
	snap *snapshot.Store,
	queue *signedqueue.Queue,
	cur currency.Currency,
	rewardSink, slashSink currency.OnUnbalanced,
	logger log.Logger,
) *Controller {
	if logger == nil {
		logger = ellog.NewNoOpLogger()
	}
	return &Controller{
		log:           logger,
		signedPhase:   cfg.SignedPhase,
		unsignedPhase: cfg.UnsignedPhase,
		provider:      provider,
		snap:          snap,
		queue:         queue,
		currency:      cur,
		rewardSink:    rewardSink,
		slashSink:     slashSink,
		phase:         types.OffPhase(),
	}
}

// Current returns the current phase tag.
func (c *Controller) Current() types.Phase { return c.phase }

// Round returns the current round counter.
func (c *Controller) Round() types.Round { return c.round }

// QueuedSolution returns the queued solution, if any: the one accepted
// during Signed-phase finalize or one installed by SetQueuedSolution.
func (c *Controller) QueuedSolution() (*types.ReadySolution, bool) {
	return c.queued, c.queued != nil
}

// SetQueuedSolution installs a solution produced by the unsigned
// submission path; it is consumed (and cleared) at elect.
func (c *Controller) SetQueuedSolution(r types.ReadySolution) {
	c.queued = &r
}

// ConsumeQueuedSolution clears and returns the queued solution.
func (c *Controller) ConsumeQueuedSolution() (*types.ReadySolution, bool) {
	r := c.queued
	c.queued = nil
	return r, r != nil
}

// OnInitialize runs the per-block transition logic of spec.md section
// 4.6.
func (c *Controller) OnInitialize(now types.BlockNumber) error {
	predicted := c.provider.NextElectionPrediction(now)
	if predicted < now {
		predicted = now
	}
	remaining := predicted - now

	switch {
	case c.phase.IsOff() &&
		remaining > c.unsignedPhase &&
		remaining <= c.signedPhase+c.unsignedPhase:
		c.round++
		snap := &types.RoundSnapshot{
			Voters:         c.provider.Voters(),
			Targets:        c.provider.Targets(),
			DesiredTargets: c.provider.DesiredTargets(),
		}
		c.snap.Put(snap)
		c.phase = types.SignedPhase()
		c.log.Info("entered signed phase", "round", c.round, "now", now)

	case c.phase.IsSigned() && remaining > 0 && remaining <= c.unsignedPhase:
		snap, ok := c.snap.Get()
		accepted := false
		if ok {
			result := signedqueue.Finalize(c.queue, c.currency, snap, c.rewardSink, c.slashSink)
			if result.Accepted != nil {
				c.queued = result.Accepted
				accepted = true
			}
		}
		c.phase = types.UnsignedPhase(!accepted, now)
		c.log.Info("entered unsigned phase", "now", now, "signed_accepted", accepted)

	default:
		// no transition.
	}

	return nil
}

// Reset returns the phase to Off and clears the snapshot; called by the
// elect dispatcher.
func (c *Controller) Reset() {
	c.phase = types.OffPhase()
	c.snap.Clear()
	c.queued = nil
}

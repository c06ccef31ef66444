// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package elect implements the terminal elect() call: consume whatever
// solution the phase controller has queued, falling back to an on-chain
// Phragmen run when nothing was ready in time, and reset the round state
// for the next cycle.
package elect

import (
	ellog "github.com/luxfi/election/log"
	"github.com/luxfi/election/onchain"
	"github.com/luxfi/election/snapshot"
	"github.com/luxfi/election/types"

	"github.com/luxfi/log"
)

// PhaseController is the subset of phase.Controller the dispatcher needs.
type PhaseController interface {
	ConsumeQueuedSolution() (*types.ReadySolution, bool)
	Reset()
}

// Dispatcher implements elect().
type Dispatcher struct {
	log      log.Logger
	phase    PhaseController
	snap     *snapshot.Store
	fallback onchain.Fallback
}

func New(phase PhaseController, snap *snapshot.Store, logger log.Logger) *Dispatcher {
	if logger == nil {
		logger = ellog.NewNoOpLogger()
	}
	return &Dispatcher{log: logger, phase: phase, snap: snap}
}

// Elect returns the best available solution for the round: the queued
// signed or unsigned solution if one was accepted, otherwise an on-chain
// fallback computed against the current snapshot. Either way the phase
// and snapshot are reset for the next cycle before returning.
func (d *Dispatcher) Elect() (types.ReadySolution, error) {
	defer d.phase.Reset()

	if queued, ok := d.phase.ConsumeQueuedSolution(); ok {
		d.log.Info("election finalized", "compute", queued.Compute, "score", queued.Score)
		return *queued, nil
	}

	snap, ok := d.snap.Get()
	if !ok {
		return types.ReadySolution{}, types.ErrSnapshotUnavailable
	}

	solution, err := d.fallback.Elect(snap)
	if err != nil {
		d.log.Error("onchain fallback failed", "err", err)
		return types.ReadySolution{}, err
	}
	d.log.Warn("election finalized via onchain fallback", "score", solution.Score)
	return solution, nil
}

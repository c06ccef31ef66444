// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ocw implements the off-chain worker: the fork/re-run guard over
// the persistent "last head" key, and mining+submitting an unsigned
// transaction when the unsigned phase is open.
package ocw

import (
	"errors"
	"fmt"

	ellog "github.com/luxfi/election/log"
	"github.com/luxfi/election/miner"
	"github.com/luxfi/election/storage"
	"github.com/luxfi/election/types"

	"github.com/luxfi/log"
)

// HeadKey is the persistent off-chain key the CAS guard operates over.
const HeadKey = "parity/unsigned-election/"

// OffchainRepeat is the repeat window: the worker re-runs only for a block
// more than OffchainRepeat blocks past the last recorded head.
const OffchainRepeat types.BlockNumber = 5

// ErrFork is returned when n is behind the last recorded head.
var ErrFork = errors.New("fork.")

// ErrRecentlyExecuted is returned when n falls within the repeat window
// of the last recorded head.
var ErrRecentlyExecuted = errors.New("recently executed.")

// TxPool is the transaction pool collaborator the worker submits to.
type TxPool interface {
	SubmitUnsigned(solution types.RawSolution, witness types.WitnessData) error
}

// Worker runs outside consensus; its only channel back to consensus is
// unsigned transaction submission via TxPool.
type Worker struct {
	log   log.Logger
	store storage.OffchainStore
	pool  TxPool
	cfg   miner.Config
}

func New(store storage.OffchainStore, pool TxPool, cfg miner.Config, logger log.Logger) *Worker {
	if logger == nil {
		logger = ellog.NewNoOpLogger()
	}
	return &Worker{log: logger, store: store, pool: pool, cfg: cfg}
}

// CheckExecutionStatus implements the atomic compare-and-swap fork/re-run
// guard of spec.md section 4.8 step 1.
func (w *Worker) CheckExecutionStatus(n types.BlockNumber) error {
	for {
		raw, ok := w.store.Get(HeadKey)
		if !ok {
			if w.store.CompareAndSwap(HeadKey, nil, encodeBlock(n)) {
				return nil
			}
			continue // lost the race, re-read and retry.
		}
		head := decodeBlock(raw)
		switch {
		case n < head:
			return ErrFork
		case n <= head+OffchainRepeat:
			return ErrRecentlyExecuted
		default:
			if w.store.CompareAndSwap(HeadKey, raw, encodeBlock(n)) {
				return nil
			}
			// lost the race to a concurrent worker; retry against the
			// freshly observed value.
		}
	}
}

// SnapshotView is the read-only view of round state the worker needs:
// the phase and the round counter. The snapshot is passed to Run
// separately.
type SnapshotView interface {
	Current() types.Phase
	Round() types.Round
}

// Run executes one off-chain hook invocation for block n. Errors are
// logged and swallowed, never panicked: this runs outside consensus.
func (w *Worker) Run(n types.BlockNumber, view SnapshotView, snap *types.RoundSnapshot, seed []byte) {
	if err := w.CheckExecutionStatus(n); err != nil {
		w.log.Debug("offchain worker skipped", "block", n, "reason", err.Error())
		return
	}
	phase := view.Current()
	if !phase.IsUnsignedOpenAt(n) {
		return
	}
	if snap == nil {
		w.log.Debug("offchain worker: no snapshot available", "block", n)
		return
	}

	iters := miner.IterationsFromSeed(seed, w.cfg.MaxIterations)
	raw, witness, err := miner.Mine(snap, view.Round(), iters, w.cfg, nil)
	if err != nil {
		w.log.Warn("offchain worker: mining failed", "block", n, "err", err)
		return
	}
	if err := w.pool.SubmitUnsigned(raw, witness); err != nil {
		w.log.Warn("offchain worker: submission failed", "block", n, "err", err)
	}
}

func encodeBlock(n types.BlockNumber) []byte {
	return []byte(fmt.Sprintf("%020d", n))
}

func decodeBlock(b []byte) types.BlockNumber {
	var n types.BlockNumber
	fmt.Sscanf(string(b), "%020d", &n)
	return n
}

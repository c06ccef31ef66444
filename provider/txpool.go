// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package provider

import (
	"fmt"

	"github.com/luxfi/election/types"
)

// PoolAdapter satisfies ocw.TxPool by dispatching straight into
// Provider.SubmitUnsigned as if the unsigned transaction had gone through
// the host's normal block-inclusion path. A panic there means pool
// validation let through something feasibility checking rejects; the
// adapter recovers it into an error, since the off-chain worker runs outside consensus and must never crash the node
// process over a bad candidate it generated itself.
type PoolAdapter struct {
	provider *Provider
	now      types.BlockNumber
}

// NewPoolAdapter binds a Provider and the block number the worker is
// currently running for.
func NewPoolAdapter(p *Provider, now types.BlockNumber) PoolAdapter {
	return PoolAdapter{provider: p, now: now}
}

func (a PoolAdapter) SubmitUnsigned(solution types.RawSolution, witness types.WitnessData) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if invalid, ok := r.(*types.InvalidUnsignedSubmissionError); ok {
				err = invalid
				return
			}
			err = fmt.Errorf("submit unsigned: %v", r)
		}
	}()
	a.provider.SubmitUnsigned(a.now, solution, witness)
	return nil
}

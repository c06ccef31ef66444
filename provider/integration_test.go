// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package provider

import (
	"testing"

	"github.com/luxfi/election/ocw"
	"github.com/luxfi/election/storage"
	"github.com/stretchr/testify/require"
)

// TestOffchainWorkerSubmitsThroughPoolAdapter exercises the off-chain worker
// against a real Provider: the worker mines against the provider's own
// snapshot and submits through PoolAdapter exactly as a host would wire it,
// and the resulting solution ends up queued for Elect.
func TestOffchainWorkerSubmitsThroughPoolAdapter(t *testing.T) {
	p, _ := newProvider(t, 30)

	require.NoError(t, p.OnInitialize(15)) // enter Signed
	require.NoError(t, p.OnInitialize(25)) // enter Unsigned, queue empty

	pool := NewPoolAdapter(p, 25)
	worker := ocw.New(storage.NewMemory(), pool, p.MinerConfig(), nil)

	// Run needs the round snapshot, fetched the same way the host would.
	snap, ok := p.Snapshot().Get()
	require.True(t, ok)
	worker.Run(25, p.Phase(), snap, nil)

	queued, hasQueued := p.Phase().QueuedSolution()
	require.True(t, hasQueued)
	require.Len(t, queued.Supports, 2)

	result, err := p.Elect()
	require.NoError(t, err)
	require.Equal(t, queued.Score, result.Score)
}

// TestOffchainWorkerSkipsWhenRecentlyExecuted confirms the fork/re-run guard
// suppresses a second Run for a block within the repeat window, leaving the
// phase's queued solution untouched.
func TestOffchainWorkerSkipsWhenRecentlyExecuted(t *testing.T) {
	p, _ := newProvider(t, 30)
	require.NoError(t, p.OnInitialize(15))
	require.NoError(t, p.OnInitialize(25))

	pool := NewPoolAdapter(p, 25)
	worker := ocw.New(storage.NewMemory(), pool, p.MinerConfig(), nil)

	snap, ok := p.Snapshot().Get()
	require.True(t, ok)

	worker.Run(25, p.Phase(), snap, nil)
	_, hasQueued := p.Phase().QueuedSolution()
	require.True(t, hasQueued)

	// Clear the queued solution (without leaving Unsigned) to confirm the
	// second run is actually a no-op, not a coincidental re-mine.
	p.Phase().ConsumeQueuedSolution()

	worker.Run(26, p.Phase(), snap, nil)
	_, hasQueuedAfter := p.Phase().QueuedSolution()
	require.False(t, hasQueuedAfter, "worker should have skipped: block 26 is within the repeat window of 25")
}

// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ocw

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/election/miner"
	"github.com/luxfi/election/storage"
	"github.com/luxfi/election/types"
)

// seed case 6: fork/re-run guard over a sequence of blocks.
func TestCheckExecutionStatusForkAndRepeatGuard(t *testing.T) {
	require := require.New(t)
	w := New(storage.NewMemory(), nil, miner.Config{}, nil)

	require.NoError(w.CheckExecutionStatus(25))
	require.ErrorIs(w.CheckExecutionStatus(26), ErrRecentlyExecuted)
	require.NoError(w.CheckExecutionStatus(31))

	for _, n := range []types.BlockNumber{30, 29, 28} {
		require.ErrorIs(w.CheckExecutionStatus(n), ErrFork)
	}
}

func TestCheckExecutionStatusFirstCallAlwaysAccepts(t *testing.T) {
	require := require.New(t)
	w := New(storage.NewMemory(), nil, miner.Config{}, nil)
	require.NoError(w.CheckExecutionStatus(0))
}

// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package score

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/election/types"
	elmath "github.com/luxfi/election/utils/math"
)

func TestCompareLexicographic(t *testing.T) {
	require := require.New(t)

	require.Equal(1, Compare(types.Score{10, 0, 0}, types.Score{5, 0, 0}))
	require.Equal(-1, Compare(types.Score{5, 0, 0}, types.Score{10, 0, 0}))
	require.Equal(1, Compare(types.Score{10, 20, 0}, types.Score{10, 10, 0}))
	// third element minimized: smaller sum-of-squares wins the tie.
	require.Equal(1, Compare(types.Score{10, 10, 5}, types.Score{10, 10, 10}))
	require.Equal(0, Compare(types.Score{10, 10, 10}, types.Score{10, 10, 10}))
}

func TestIsBetterThreshold50Percent(t *testing.T) {
	require := require.New(t)

	threshold := elmath.FromPercent(50)
	old := types.Score{10, 0, 0}

	// seed case 5: challenger with score[0]=12 must fail (needs >= 15).
	require.False(IsBetter(types.Score{12, 0, 0}, old, threshold))
	// challenger with score[0]=17 must succeed.
	require.True(IsBetter(types.Score{17, 0, 0}, old, threshold))
	// exactly at the boundary succeeds (>=, not >).
	require.True(IsBetter(types.Score{15, 0, 0}, old, threshold))
}

func TestIsBetterZeroThresholdIsStrictOrEqual(t *testing.T) {
	require := require.New(t)
	zero := elmath.Perbill(0)
	old := types.Score{10, 0, 0}
	require.True(IsBetter(types.Score{10, 0, 0}, old, zero))
	require.False(IsBetter(types.Score{9, 0, 0}, old, zero))
}

func TestIsBetterAntisymmetric(t *testing.T) {
	require := require.New(t)
	threshold := elmath.FromPercent(10)
	a := types.Score{100, 0, 0}
	b := types.Score{50, 0, 0}

	// a beats b at 10% threshold (100 >= 55); b cannot also beat a.
	require.True(IsBetter(a, b, threshold))
	require.False(IsBetter(b, a, threshold))
}

// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuilderDefaultsValidate(t *testing.T) {
	require := require.New(t)
	cfg, err := NewBuilder().Build()
	require.NoError(err)
	require.EqualValues(10, cfg.SignedPhase)
	require.EqualValues(5, cfg.UnsignedPhase)
}

func TestBuilderRejectsZeroLengthPhaseInStrictMode(t *testing.T) {
	require := require.New(t)
	_, err := NewBuilder().WithPhases(0, 5).Build()
	require.Error(err)
	require.Contains(err.Error(), ErrZeroLengthPhase.Error())
}

func TestBuilderAllowsZeroLengthPhaseInSoftMode(t *testing.T) {
	require := require.New(t)
	cfg, err := NewBuilder().WithPhases(0, 5).BuildMode(SoftMode)
	require.NoError(err)
	require.EqualValues(0, cfg.SignedPhase)
}

func TestBuilderRejectsInvalidMaxSubmissions(t *testing.T) {
	require := require.New(t)
	_, err := NewBuilder().WithMaxSignedSubmissions(0).Build()
	require.Error(err)
}

func TestBuilderRejectsZeroMinerWeight(t *testing.T) {
	require := require.New(t)
	_, err := NewBuilder().WithMinerLimits(10, 0).Build()
	require.Error(err)
}

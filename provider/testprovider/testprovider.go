// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package testprovider is a fixture-backed phase.DataProvider, the
// replacement for the election-domain weighted-validator-set fixture
// builders this module's teacher used to provide before its validator
// set was re-architected for this domain.
package testprovider

import "github.com/luxfi/election/types"

// Fixture is a fixed voters/targets/desired-targets set with a
// configurable election-timing prediction, satisfying phase.DataProvider.
type Fixture struct {
	voters         []types.Voter
	targets        []types.AccountId
	desiredTargets uint32
	predicted      types.BlockNumber
}

func New(voters []types.Voter, targets []types.AccountId, desiredTargets uint32, predicted types.BlockNumber) *Fixture {
	return &Fixture{voters: voters, targets: targets, desiredTargets: desiredTargets, predicted: predicted}
}

func (f *Fixture) Voters() []types.Voter      { return f.voters }
func (f *Fixture) Targets() []types.AccountId { return f.targets }
func (f *Fixture) DesiredTargets() uint32     { return f.desiredTargets }

// NextElectionPrediction returns the fixed prediction regardless of now,
// matching the simplest possible host behaviour: a single upcoming
// election at a known block.
func (f *Fixture) NextElectionPrediction(now types.BlockNumber) types.BlockNumber {
	return f.predicted
}

// SetPrediction updates the prediction, letting tests simulate the host
// rolling the prediction forward after each completed round.
func (f *Fixture) SetPrediction(predicted types.BlockNumber) {
	f.predicted = predicted
}

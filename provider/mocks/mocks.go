// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package mocks provides function-field fakes for this module's
// collaborator interfaces, in the style of luxfi-consensus's chainmock
// package: each method either calls an injected func field or falls back
// to a T.Fatal if the caller marked it "can't happen".
package mocks

import (
	"testing"

	"github.com/luxfi/election/currency"
	"github.com/luxfi/election/phase"
	"github.com/luxfi/election/types"
)

// DataProvider is a function-field fake of phase.DataProvider.
type DataProvider struct {
	T *testing.T

	CantVoters         bool
	CantTargets        bool
	CantDesiredTargets bool
	CantPrediction     bool

	VotersF         func() []types.Voter
	TargetsF        func() []types.AccountId
	DesiredTargetsF func() uint32
	PredictionF     func(types.BlockNumber) types.BlockNumber
}

var _ phase.DataProvider = (*DataProvider)(nil)

func (d *DataProvider) Voters() []types.Voter {
	if d.VotersF != nil {
		return d.VotersF()
	}
	if d.CantVoters && d.T != nil {
		d.T.Fatal("unexpected Voters")
	}
	return nil
}

func (d *DataProvider) Targets() []types.AccountId {
	if d.TargetsF != nil {
		return d.TargetsF()
	}
	if d.CantTargets && d.T != nil {
		d.T.Fatal("unexpected Targets")
	}
	return nil
}

func (d *DataProvider) DesiredTargets() uint32 {
	if d.DesiredTargetsF != nil {
		return d.DesiredTargetsF()
	}
	if d.CantDesiredTargets && d.T != nil {
		d.T.Fatal("unexpected DesiredTargets")
	}
	return 0
}

func (d *DataProvider) NextElectionPrediction(now types.BlockNumber) types.BlockNumber {
	if d.PredictionF != nil {
		return d.PredictionF(now)
	}
	if d.CantPrediction && d.T != nil {
		d.T.Fatal("unexpected NextElectionPrediction")
	}
	return now
}

// Currency is a function-field fake of currency.Currency.
type Currency struct {
	T *testing.T

	CantReserve         bool
	CantDepositCreating bool

	ReserveF         func(types.AccountId, types.Balance) (currency.ReserveHandle, error)
	DepositCreatingF func(types.AccountId, types.Balance) currency.Imbalance
}

var _ currency.Currency = (*Currency)(nil)

func (c *Currency) Reserve(who types.AccountId, amount types.Balance) (currency.ReserveHandle, error) {
	if c.ReserveF != nil {
		return c.ReserveF(who, amount)
	}
	if c.CantReserve && c.T != nil {
		c.T.Fatal("unexpected Reserve")
	}
	return nil, nil
}

func (c *Currency) DepositCreating(who types.AccountId, amount types.Balance) currency.Imbalance {
	if c.DepositCreatingF != nil {
		return c.DepositCreatingF(who, amount)
	}
	if c.CantDepositCreating && c.T != nil {
		c.T.Fatal("unexpected DepositCreating")
	}
	return nil
}

// ReserveHandle is a function-field fake of currency.ReserveHandle.
type ReserveHandle struct {
	UnreserveF  func()
	SlashIntoF  func(currency.OnUnbalanced)
	CreditIntoF func(currency.OnUnbalanced)
}

var _ currency.ReserveHandle = (*ReserveHandle)(nil)

func (h *ReserveHandle) Unreserve() {
	if h.UnreserveF != nil {
		h.UnreserveF()
	}
}

func (h *ReserveHandle) SlashInto(sink currency.OnUnbalanced) {
	if h.SlashIntoF != nil {
		h.SlashIntoF(sink)
	}
}

func (h *ReserveHandle) CreditInto(sink currency.OnUnbalanced) {
	if h.CreditIntoF != nil {
		h.CreditIntoF(sink)
	}
}

// OnUnbalancedRecorder is an OnUnbalanced sink that records every
// imbalance it receives, for assertions on reward/slash routing.
type OnUnbalancedRecorder struct {
	Received []currency.Imbalance
}

func (r *OnUnbalancedRecorder) OnUnbalanced(i currency.Imbalance) {
	r.Received = append(r.Received, i)
}

// TxPool is a function-field fake of ocw.TxPool.
type TxPool struct {
	T *testing.T

	CantSubmitUnsigned bool
	SubmitUnsignedF    func(types.RawSolution, types.WitnessData) error
}

func (p *TxPool) SubmitUnsigned(solution types.RawSolution, witness types.WitnessData) error {
	if p.SubmitUnsignedF != nil {
		return p.SubmitUnsignedF(solution, witness)
	}
	if p.CantSubmitUnsigned && p.T != nil {
		p.T.Fatal("unexpected SubmitUnsigned")
	}
	return nil
}

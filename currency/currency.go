// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package currency abstracts the host's reserve/unreserve/slash
// mechanics behind a ReserveHandle, re-architecting Substrate's
// "unbalanced imbalance" pattern as a pair of monotone counters
// (credited, debited) rather than porting its type-level imbalance
// tracking.
package currency

import "github.com/luxfi/election/types"

// Currency is the host collaborator this module depends on for deposit
// bookkeeping. Implementations must guarantee that for every Reserve(who,
// d) there is exactly one of {Unreserve(who, d), SlashReserved(who, d)}.
type Currency interface {
	Reserve(who types.AccountId, amount types.Balance) (ReserveHandle, error)
	DepositCreating(who types.AccountId, amount types.Balance) Imbalance
}

// ReserveHandle represents one outstanding reservation. Exactly one of
// Unreserve, SlashInto or CreditInto must be called on it.
type ReserveHandle interface {
	Unreserve()
	SlashInto(sink OnUnbalanced)
	CreditInto(sink OnUnbalanced)
}

// Imbalance is a monotone credit/debit counter produced by
// DepositCreating, consumed by a sink.
type Imbalance interface {
	Amount() types.Balance
}

// OnUnbalanced receives slashed deposits or reward imbalances.
type OnUnbalanced interface {
	OnUnbalanced(Imbalance)
}

// OnUnbalancedFunc adapts a plain function to OnUnbalanced.
type OnUnbalancedFunc func(Imbalance)

func (f OnUnbalancedFunc) OnUnbalanced(i Imbalance) { f(i) }

// DiscardImbalance is an OnUnbalanced sink that drops everything it
// receives; useful as the default for tests and for whichever side
// (slash or reward) a caller does not care to route anywhere specific.
var DiscardImbalance OnUnbalanced = OnUnbalancedFunc(func(Imbalance) {})

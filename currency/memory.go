// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package currency

import (
	"errors"
	"sync"

	"github.com/luxfi/election/types"
)

// ErrInsufficientBalance is returned by Reserve when an account does not
// have enough free balance to cover the requested reservation.
var ErrInsufficientBalance = errors.New("currency: insufficient balance")

// Memory is a trivial in-memory Currency, the kind of fixture the
// storage-facade design note calls for: tests substitute an in-memory map
// for the host's real reservation ledger.
type Memory struct {
	mu        sync.Mutex
	free      map[types.AccountId]types.Balance
	reserved  map[types.AccountId]types.Balance
	minted    types.Balance
}

// NewMemory returns a Memory currency seeded with the given free
// balances.
func NewMemory(balances map[types.AccountId]types.Balance) *Memory {
	m := &Memory{
		free:     make(map[types.AccountId]types.Balance, len(balances)),
		reserved: make(map[types.AccountId]types.Balance),
	}
	for who, bal := range balances {
		m.free[who] = bal
	}
	return m
}

// FreeBalance returns who's unreserved balance.
func (m *Memory) FreeBalance(who types.AccountId) types.Balance {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.free[who]
}

// ReservedBalance returns who's currently reserved balance.
func (m *Memory) ReservedBalance(who types.AccountId) types.Balance {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reserved[who]
}

// TotalMinted returns the cumulative amount created via DepositCreating,
// a cheap sanity hook for tests asserting reward/slash flows balance.
func (m *Memory) TotalMinted() types.Balance {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.minted
}

func (m *Memory) Reserve(who types.AccountId, amount types.Balance) (ReserveHandle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.free[who] < amount {
		return nil, ErrInsufficientBalance
	}
	m.free[who] -= amount
	m.reserved[who] += amount
	return &memoryHandle{m: m, who: who, amount: amount}, nil
}

func (m *Memory) DepositCreating(who types.AccountId, amount types.Balance) Imbalance {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.free[who] += amount
	m.minted += amount
	return memoryImbalance(amount)
}

type memoryImbalance types.Balance

func (i memoryImbalance) Amount() types.Balance { return types.Balance(i) }

type memoryHandle struct {
	mu     sync.Mutex
	m      *Memory
	who    types.AccountId
	amount types.Balance
	spent  bool
}

func (h *memoryHandle) Unreserve() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.spent {
		return
	}
	h.spent = true
	h.m.mu.Lock()
	defer h.m.mu.Unlock()
	h.m.reserved[h.who] -= h.amount
	h.m.free[h.who] += h.amount
}

func (h *memoryHandle) SlashInto(sink OnUnbalanced) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.spent {
		return
	}
	h.spent = true
	h.m.mu.Lock()
	h.m.reserved[h.who] -= h.amount
	h.m.mu.Unlock()
	if sink != nil {
		sink.OnUnbalanced(memoryImbalance(h.amount))
	}
}

func (h *memoryHandle) CreditInto(sink OnUnbalanced) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.spent {
		return
	}
	h.spent = true
	h.m.mu.Lock()
	h.m.reserved[h.who] -= h.amount
	h.m.mu.Unlock()
	if sink != nil {
		sink.OnUnbalanced(memoryImbalance(h.amount))
	}
}

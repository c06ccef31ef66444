// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package snapshot holds the single round-scoped RoundSnapshot: put once
// at Signed-phase entry, read by the Miner, Feasibility Checker and
// Fallback, cleared once at elect.
package snapshot

import (
	"github.com/luxfi/election/types"
	"github.com/luxfi/election/utils"
)

// Store is logically single-writer (the Phase Controller), many-reader.
// Serial, within-block execution makes the pattern trivially correct, so
// the only thing Store needs from utils.Atomic is a safe publish point
// for readers running from a different goroutine (e.g. the off-chain
// worker).
type Store struct {
	value *utils.Atomic[*types.RoundSnapshot]
}

// New returns an empty Store.
func New() *Store {
	return &Store{value: utils.NewAtomic[*types.RoundSnapshot](nil)}
}

// Put installs a new snapshot, owned by the store from this point on.
func (s *Store) Put(snap *types.RoundSnapshot) {
	s.value.Set(snap)
}

// Get returns the current snapshot, or (nil, false) if none is set.
func (s *Store) Get() (*types.RoundSnapshot, bool) {
	v := s.value.Get()
	return v, v != nil
}

// MustGet returns the current snapshot or types.ErrSnapshotUnavailable.
func (s *Store) MustGet() (*types.RoundSnapshot, error) {
	v, ok := s.Get()
	if !ok {
		return nil, types.ErrSnapshotUnavailable
	}
	return v, nil
}

// Clear removes the current snapshot.
func (s *Store) Clear() {
	s.value.Set(nil)
}

// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryGetSetDelete(t *testing.T) {
	require := require.New(t)
	m := NewMemory()

	_, ok := m.Get("k")
	require.False(ok)

	m.Set("k", []byte("v1"))
	v, ok := m.Get("k")
	require.True(ok)
	require.Equal("v1", string(v))

	m.Delete("k")
	_, ok = m.Get("k")
	require.False(ok)
}

func TestMemoryCompareAndSwapRequiresAbsentKey(t *testing.T) {
	require := require.New(t)
	m := NewMemory()

	require.True(m.CompareAndSwap("k", nil, []byte("a")))
	require.False(m.CompareAndSwap("k", nil, []byte("b")))

	v, _ := m.Get("k")
	require.Equal("a", string(v))
}

func TestMemoryCompareAndSwapMatchesOldValue(t *testing.T) {
	require := require.New(t)
	m := NewMemory()
	require.True(m.CompareAndSwap("k", nil, []byte("a")))

	require.False(m.CompareAndSwap("k", []byte("wrong"), []byte("b")))
	require.True(m.CompareAndSwap("k", []byte("a"), []byte("b")))

	v, _ := m.Get("k")
	require.Equal("b", string(v))
}

// Copyright 2024 The go-evmzero Authors
// This file is part of the go-evmzero library.
//
// The go-evmzero library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package vm

import (
	"testing"

	lru "github.com/hashicorp/golang-lru"
	"github.com/stretchr/testify/require"
)

func TestLRUCacheGetOrInsert(t *testing.T) {
	c := newLRUCache[int, string](2)

	v := c.getOrInsert(1, func() string { return "one" })
	require.Equal(t, "one", v)
	require.Equal(t, 1, c.len())

	v = c.getOrInsert(1, func() string { return "ignored, already cached" })
	require.Equal(t, "one", v)
}

func TestLRUCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := newLRUCache[int, string](2)
	c.insertOrAssign(1, "a")
	c.insertOrAssign(2, "b")
	c.insertOrAssign(3, "c") // evicts 1, the least recently touched

	_, ok := c.get(1)
	require.False(t, ok)
	_, ok = c.get(2)
	require.True(t, ok)
	_, ok = c.get(3)
	require.True(t, ok)
}

func TestLRUCacheGetPromotesToHead(t *testing.T) {
	c := newLRUCache[int, string](2)
	c.insertOrAssign(1, "a")
	c.insertOrAssign(2, "b")

	_, ok := c.get(1) // touch 1, making 2 the next eviction target
	require.True(t, ok)

	c.insertOrAssign(3, "c")
	_, ok = c.get(2)
	require.False(t, ok)
	_, ok = c.get(1)
	require.True(t, ok)
}

func TestLRUCacheClear(t *testing.T) {
	c := newLRUCache[int, string](2)
	c.insertOrAssign(1, "a")
	c.clear()
	require.Equal(t, 0, c.len())
	_, ok := c.get(1)
	require.False(t, ok)
}

// TestLRUCacheMatchesGolangLRUEvictionOrder cross-checks the hand-rolled
// eviction order against hashicorp/golang-lru's container/list-backed
// implementation, run side by side over the same key sequence.
func TestLRUCacheMatchesGolangLRUEvictionOrder(t *testing.T) {
	const capacity = 4
	ours := newLRUCache[int, int](capacity)
	oracle, err := lru.New(capacity)
	require.NoError(t, err)

	keys := []int{1, 2, 3, 4, 1, 5, 2, 6, 7}
	for _, k := range keys {
		ours.insertOrAssign(k, k)
		oracle.Add(k, k)
	}

	for k := 0; k < 10; k++ {
		_, oursOK := ours.get(k)
		_, oracleOK := oracle.Get(k)
		require.Equal(t, oracleOK, oursOK, "key %d presence mismatch", k)
	}
}

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

	"github.com/stretchr/testify/require"
)

func TestKeccakCacheMatchesUncached(t *testing.T) {
	data := make([]byte, 32)
	for i := range data {
		data[i] = byte(i)
	}

	c := NewKeccakCache()
	require.Equal(t, keccak256(data), c.Hash(data))
}

func TestKeccakCacheHitReturnsSameValueOnRepeat(t *testing.T) {
	data := make([]byte, 64)
	c := NewKeccakCache()

	first := c.Hash(data)
	second := c.Hash(data)
	require.Equal(t, first, second)
}

func TestKeccakCacheNilIsSafe(t *testing.T) {
	var c *KeccakCache
	require.Equal(t, keccak256([]byte("hello")), c.Hash([]byte("hello")))
}

func TestKeccakCacheBypassesUnusualSizes(t *testing.T) {
	data := []byte("not a word-sized input")
	c := NewKeccakCache()
	require.Equal(t, keccak256(data), c.Hash(data))
}

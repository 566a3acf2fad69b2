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

func TestAnalysisCacheResolveHitsOnSameHash(t *testing.T) {
	ac := NewAnalysisCache()
	code := []byte{byte(PUSH1), 1, byte(STOP)}
	hash := Hash{1}

	first := ac.resolve(hash, code)
	require.Equal(t, 1, ac.Len())

	second := ac.resolve(hash, code)
	require.True(t, first == second, "expected the cached ContractInfo to be reused")
}

func TestAnalysisCacheZeroHashBypassesCache(t *testing.T) {
	ac := NewAnalysisCache()
	code := []byte{byte(STOP)}

	first := ac.resolve(zeroHash, code)
	second := ac.resolve(zeroHash, code)

	require.Equal(t, 0, ac.Len())
	require.False(t, first == second, "each call should produce a fresh ContractInfo")
	require.Equal(t, first.Len, second.Len)
}

func TestAnalysisCacheNilIsSafe(t *testing.T) {
	var ac *AnalysisCache
	code := []byte{byte(STOP)}
	info := ac.resolve(Hash{9}, code)
	require.Equal(t, 1, info.Len)
	require.Equal(t, 0, ac.Len())
}

func TestAnalysisCacheClear(t *testing.T) {
	ac := NewAnalysisCache()
	ac.resolve(Hash{1}, []byte{byte(STOP)})
	require.Equal(t, 1, ac.Len())
	ac.Clear()
	require.Equal(t, 0, ac.Len())
}

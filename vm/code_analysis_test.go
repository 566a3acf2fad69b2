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

func TestAnalyzeJumpDestsSkipsPushData(t *testing.T) {
	// PUSH1 0x5B JUMPDEST — the 0x5B is push data, not a real JUMPDEST.
	code := []byte{byte(PUSH1), byte(JUMPDEST), byte(JUMPDEST)}
	mask := analyzeJumpDests(code)

	require.False(t, mask.isSet(1), "push-data byte must not be a jump target")
	require.True(t, mask.isSet(2))
}

func TestValidJumpDestRejectsOutOfRange(t *testing.T) {
	code := []byte{byte(JUMPDEST)}
	mask := analyzeJumpDests(code)

	require.True(t, validJumpDest(len(code), mask, 0))
	require.False(t, validJumpDest(len(code), mask, 1))
}

func TestPaddedCodeHasStopPadding(t *testing.T) {
	code := []byte{byte(PUSH1), 0xFF}
	padded := newPaddedCode(code)

	require.Len(t, padded, len(code)+codePadding)
	for _, b := range padded[len(code):] {
		require.Equal(t, byte(0), b)
	}
}

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

	"github.com/core-coin/go-evmzero/vm/dummyhost"
)

func runCode(t *testing.T, code []byte, gas uint64, static bool) CallResult {
	t.Helper()
	v := NewVM()
	h := dummyhost.NewHost()
	msg := &Message{Gas: gas, Static: static}
	return v.Execute(code, Hash{}, msg, h, RevisionCancun)
}

func TestExecuteAddAndReturn(t *testing.T) {
	// PUSH1 2 PUSH1 3 ADD PUSH1 0 MSTORE PUSH1 32 PUSH1 0 RETURN
	code := []byte{
		byte(PUSH1), 2,
		byte(PUSH1), 3,
		byte(ADD),
		byte(PUSH1), 0,
		byte(MSTORE),
		byte(PUSH1), 32,
		byte(PUSH1), 0,
		byte(RETURN),
	}
	result := runCode(t, code, 100000, false)
	require.Equal(t, StatusSuccess, result.StatusCode)
	require.Len(t, result.Output, 32)
	require.Equal(t, byte(5), result.Output[31])
}

func TestExecuteStopHalts(t *testing.T) {
	code := []byte{byte(PUSH1), 1, byte(STOP), byte(PUSH1), 2}
	result := runCode(t, code, 100000, false)
	require.Equal(t, StatusSuccess, result.StatusCode)
	require.Nil(t, result.Output)
}

func TestExecuteOutOfGas(t *testing.T) {
	code := []byte{byte(PUSH1), 1, byte(PUSH1), 2, byte(ADD)}
	result := runCode(t, code, 1, false)
	require.Equal(t, StatusOutOfGas, result.StatusCode)
	require.Equal(t, uint64(0), result.GasLeft)
}

func TestExecuteInvalidOpcode(t *testing.T) {
	result := runCode(t, []byte{0x0c}, 100000, false)
	require.Equal(t, StatusUndefinedInstruction, result.StatusCode)
}

func TestExecuteSstoreBlockedInStaticCall(t *testing.T) {
	code := []byte{
		byte(PUSH1), 1,
		byte(PUSH1), 0,
		byte(SSTORE),
	}
	result := runCode(t, code, 100000, true)
	require.Equal(t, StatusStaticModeViolation, result.StatusCode)
}

func TestExecuteRevertReturnsOutput(t *testing.T) {
	code := []byte{
		byte(PUSH1), 0xFF,
		byte(PUSH1), 0,
		byte(MSTORE),
		byte(PUSH1), 32,
		byte(PUSH1), 0,
		byte(REVERT),
	}
	result := runCode(t, code, 100000, false)
	require.Equal(t, StatusRevert, result.StatusCode)
	require.Equal(t, byte(0xFF), result.Output[31])
}

func TestSetOptionToggles(t *testing.T) {
	v := NewVM()
	require.NoError(t, v.SetOption("analysis_cache", "false"))
	require.Nil(t, v.analysisCache)
	require.NoError(t, v.SetOption("analysis_cache", "true"))
	require.NotNil(t, v.analysisCache)

	require.Equal(t, ErrInvalidOption, v.SetOption("logging", "maybe"))
	require.Equal(t, ErrUnknownOption, v.SetOption("nonsense", "true"))
}

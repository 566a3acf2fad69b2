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

	"github.com/core-coin/go-evmzero/params"
	"github.com/core-coin/go-evmzero/vm/dummyhost"
)

func TestCallAtDepthLimitTerminatesWithErrorCall(t *testing.T) {
	// PUSH1 0 (retSize) PUSH1 0 (retOffset) PUSH1 0 (argsSize)
	// PUSH1 0 (argsOffset) PUSH1 0 (value) PUSH1 1 (addr) PUSH2 <gas> CALL
	code := []byte{
		byte(PUSH1), 0,
		byte(PUSH1), 0,
		byte(PUSH1), 0,
		byte(PUSH1), 0,
		byte(PUSH1), 0,
		byte(PUSH1), 1,
		byte(PUSH2), 0x27, 0x10,
		byte(CALL),
		byte(PUSH1), 0,
		byte(MSTORE),
		byte(PUSH1), 32,
		byte(PUSH1), 0,
		byte(RETURN),
	}

	h := dummyhost.NewHost()
	v := NewVM()
	msg := &Message{Gas: 1_000_000, Depth: int(params.CallCreateDepth)}
	result := v.Execute(code, Hash{}, msg, h, RevisionCancun)

	require.Equal(t, StatusCallDepthExceeded, result.StatusCode)
	require.Equal(t, uint64(0), result.GasLeft)
}

func TestCallInvokesHostWithExpectedMessage(t *testing.T) {
	code := []byte{
		byte(PUSH1), 0,
		byte(PUSH1), 0,
		byte(PUSH1), 0,
		byte(PUSH1), 0,
		byte(PUSH1), 0,
		byte(PUSH1), 0xAB,
		byte(PUSH2), 0x27, 0x10,
		byte(CALL),
		byte(STOP),
	}

	h := dummyhost.NewHost()
	var seen *Message
	h.OnCall = func(msg *Message) CallResult {
		seen = msg
		return CallResult{StatusCode: StatusSuccess, GasLeft: 1000}
	}

	v := NewVM()
	result := v.Execute(code, Hash{}, &Message{Gas: 1_000_000}, h, RevisionCancun)

	require.Equal(t, StatusSuccess, result.StatusCode)
	require.NotNil(t, seen)
	require.Equal(t, CallKindCall, seen.Kind)
	require.Equal(t, BytesToAddress([]byte{0xAB}), seen.Recipient)
}

func TestSelfdestructRefundGatedByRevision(t *testing.T) {
	code := []byte{
		byte(PUSH1), 1,
		byte(SELFDESTRUCT),
	}

	h := dummyhost.NewHost()
	h.Account(Address{}) // the account SELFDESTRUCT acts on must exist to be "first"
	v := NewVM()
	result := v.Execute(code, Hash{}, &Message{Gas: 100000}, h, RevisionBerlin)
	require.Equal(t, int64(params.SelfdestructRefundGas), result.GasRefund)

	h2 := dummyhost.NewHost()
	h2.Account(Address{})
	result2 := v.Execute(code, Hash{}, &Message{Gas: 100000}, h2, RevisionLondon)
	require.Equal(t, int64(0), result2.GasRefund)
}

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
	"time"

	"github.com/stretchr/testify/require"

	"github.com/core-coin/go-evmzero/vm/dummyhost"
)

func TestNullObserverIsAllNoOps(t *testing.T) {
	var o NullObserver
	require.NotPanics(t, func() {
		o.PreRun(nil)
		o.PreInstruction(nil, 0, ADD)
		o.PostInstruction(nil, 0, ADD)
		o.PostRun(nil)
	})
}

func TestLoggerDrivesThroughASuccessfulRun(t *testing.T) {
	code := []byte{
		byte(PUSH1), 2,
		byte(PUSH1), 3,
		byte(ADD),
		byte(STOP),
	}
	v := NewVM()
	require.NoError(t, v.SetOption("logging", "true"))
	h := dummyhost.NewHost()
	result := v.Execute(code, Hash{}, &Message{Gas: 100000}, h, RevisionCancun)
	require.Equal(t, StatusSuccess, result.StatusCode)
}

func TestProfilerExternalModeObservesOnlyCallLikeAndSelfdestruct(t *testing.T) {
	p := NewProfiler(ProfileExternal)
	require.True(t, p.observes(CALL))
	require.True(t, p.observes(CREATE2))
	require.True(t, p.observes(SELFDESTRUCT))
	require.False(t, p.observes(ADD))
	require.False(t, p.observes(SSTORE))
}

func TestProfilerFullModeObservesEverything(t *testing.T) {
	p := NewProfiler(ProfileFull)
	require.True(t, p.observes(ADD))
	require.True(t, p.observes(CALL))
}

func TestProfilerMergeAndReset(t *testing.T) {
	a := NewProfiler(ProfileFull)
	b := NewProfiler(ProfileFull)
	a.stats[ADD] = opStat{count: 2, ticks: 20}
	b.stats[ADD] = opStat{count: 3, ticks: 30}
	a.depthZeroTicks = 5
	b.depthZeroTicks = 7

	a.Merge(b)
	count, ticks := a.OpStats(ADD)
	require.Equal(t, int64(5), count)
	require.Equal(t, int64(50), ticks)
	require.Equal(t, int64(12), a.DepthZeroNanos())

	a.Reset()
	count, ticks = a.OpStats(ADD)
	require.Equal(t, int64(0), count)
	require.Equal(t, int64(0), ticks)
	require.Equal(t, int64(0), a.DepthZeroNanos())
}

// TestProfilerSubtractsNestedInterpreterTimeFromCallBracket drives a real
// CALL-bearing program against a Host whose OnCall recurses into a second
// vm.Execute, and checks that the outer CALL's recorded ticks exclude the
// inner run's own time (spec.md §4.7's bracketing rule) rather than
// double-counting it.
//
// Two call depths are exercised: the depth-0 program CALLs addrA, whose
// Host hook recurses into a fresh Execute of a depth-1 program that in
// turn CALLs addrB, whose Host hook sleeps (simulating real interpreter
// work) without recursing further. If the depth-0 CALL's bracket properly
// subtracts the depth-1 run's own wall time, the CALL opcode's aggregate
// recorded ticks across both depths should be roughly one sleep's worth,
// not two.
func TestProfilerSubtractsNestedInterpreterTimeFromCallBracket(t *testing.T) {
	const sleepDur = 30 * time.Millisecond

	addrA := BytesToAddress([]byte{0x01})
	addrB := BytesToAddress([]byte{0x02})

	callCode := func(addr Address) []byte {
		code := []byte{
			byte(PUSH1), 0, // retSize
			byte(PUSH1), 0, // retOffset
			byte(PUSH1), 0, // argsSize
			byte(PUSH1), 0, // argsOffset
			byte(PUSH1), 0, // value
			byte(PUSH20),
		}
		code = append(code, addr[:]...)
		code = append(code,
			byte(PUSH2), 0x27, 0x10, // gas
			byte(CALL),
			byte(STOP),
		)
		return code
	}
	outerCode := callCode(addrA)
	innerCode := callCode(addrB)

	v := NewVM()
	require.NoError(t, v.SetOption("profiling", "true"))
	h := dummyhost.NewHost()
	h.OnCall = func(msg *Message) CallResult {
		switch msg.CodeAddress {
		case addrB:
			time.Sleep(sleepDur)
			return CallResult{StatusCode: StatusSuccess, GasLeft: msg.Gas}
		case addrA:
			return v.Execute(innerCode, Hash{}, msg, h, RevisionCancun)
		default:
			return CallResult{StatusCode: StatusFailure}
		}
	}

	result := v.Execute(outerCode, Hash{}, &Message{Gas: 1_000_000}, h, RevisionCancun)
	require.Equal(t, StatusSuccess, result.StatusCode)

	count, ticks := v.profiler.OpStats(CALL)
	require.Equal(t, int64(2), count)
	require.True(t, ticks > sleepDur.Nanoseconds()/2, "ticks=%d too low, expected roughly one sleepDur", ticks)
	require.True(t, ticks < sleepDur.Nanoseconds()*3/2, "ticks=%d too high, nested interpreter time was double-counted", ticks)

	// The outer (depth-0) CALL's own exclusive time must not include the
	// recursed depth-1 run's sleep — without the fix it would.
	depthZero := v.profiler.DepthZeroNanos()
	require.True(t, depthZero < sleepDur.Nanoseconds()/2, "depthZeroTicks=%d should exclude the recursed sleep", depthZero)
}

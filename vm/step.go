// Copyright 2024 The go-evmzero Authors
// This file is part of the go-evmzero library.
//
// The go-evmzero library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package vm

// StepResult is the full externally visible state after a bounded run,
// round-trippable back into the next StepN call (spec.md §4.10, §5).
type StepResult struct {
	Status         State
	PC             uint64
	Gas            uint64
	GasRefund      int64
	Stack          []Word // bottom-to-top, top last, matching the wire order
	Memory         []byte
	LastReturnData []byte
}

// StepN reconstructs an ExecutionContext from externally supplied state,
// advances at most steps instructions, and serializes the resulting
// state back out. A steps value of zero or less (or a status other
// than Running) returns the supplied state unchanged. Stepping from the
// initial state with a budget large enough to finish reaches the same
// terminal state as Execute given the same inputs, since both route
// through the same run loop.
func (v *VM) StepN(code []byte, codeHash Hash, msg *Message, host Host, revision Revision,
	status State, pc uint64, gas uint64, gasRefund int64,
	stack []Word, memory []byte, lastReturnData []byte, steps int) StepResult {

	if status != Running || steps <= 0 {
		return StepResult{
			Status:         status,
			PC:             pc,
			Gas:            gas,
			GasRefund:      gasRefund,
			Stack:          stack,
			Memory:         memory,
			LastReturnData: lastReturnData,
		}
	}

	info := v.analysisCache.resolve(codeHash, code)
	ctx := newExecutionContext(info, msg, host, revision, v.keccakCache)
	defer ctx.release()

	ctx.pc = pc
	ctx.gas = gas
	ctx.gasRefund = gasRefund
	ctx.returnData = lastReturnData
	ctx.state = status
	for i := range stack {
		w := stack[i]
		ctx.stack.push(&w)
	}
	ctx.memory.readFrom(memory, 0)

	output := v.dispatch(ctx, steps)
	if ctx.state == Return || ctx.state == Revert {
		ctx.returnData = output
	}

	newStack := make([]Word, ctx.stack.len())
	copy(newStack, ctx.stack.data)

	return StepResult{
		Status:         ctx.state,
		PC:             ctx.pc,
		Gas:            ctx.gas,
		GasRefund:      ctx.gasRefund,
		Stack:          newStack,
		Memory:         ctx.memory.Data(),
		LastReturnData: ctx.returnData,
	}
}

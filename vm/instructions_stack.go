// Copyright 2024 The go-evmzero Authors
// This file is part of the go-evmzero library.
//
// The go-evmzero library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package vm

// makePush builds the PUSHn handler for immediate-data width n. The
// dispatch loop advances pc by the opcode's instructionLength (1+n)
// afterwards, so the handler itself never touches ctx.pc.
func makePush(n int) executionFunc {
	return func(ctx *ExecutionContext) ([]byte, error) {
		code := ctx.code()
		start := ctx.pc + 1
		ctx.stack.push(new(Word).SetBytes(code[start : start+uint64(n)]))
		return nil, nil
	}
}

func opPush0(ctx *ExecutionContext) ([]byte, error) {
	ctx.stack.push(new(Word))
	return nil, nil
}

func makeDup(n int) executionFunc {
	return func(ctx *ExecutionContext) ([]byte, error) {
		if err := ctx.stack.dup(n); err != nil {
			return nil, err
		}
		return nil, nil
	}
}

func makeSwap(n int) executionFunc {
	return func(ctx *ExecutionContext) ([]byte, error) {
		ctx.stack.swap(n)
		return nil, nil
	}
}

func makeLog(n int) executionFunc {
	return func(ctx *ExecutionContext) ([]byte, error) {
		mStart, mSize := mustPop(ctx), mustPop(ctx)
		topics := make([]Hash, n)
		for i := 0; i < n; i++ {
			w := mustPop(ctx)
			topics[i] = WordToHash(&w)
		}
		data := ctx.memory.writeTo(mStart.Uint64(), mSize.Uint64())
		ctx.host.EmitLog(ctx.message.Recipient, topics, data)
		return nil, nil
	}
}

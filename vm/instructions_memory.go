// Copyright 2024 The go-evmzero Authors
// This file is part of the go-evmzero library.
//
// The go-evmzero library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package vm

func opPop(ctx *ExecutionContext) ([]byte, error) {
	_, _ = ctx.stack.pop()
	return nil, nil
}

func opMload(ctx *ExecutionContext) ([]byte, error) {
	v := ctx.stack.peek()
	v.SetBytes(ctx.memory.span(v.Uint64(), 32))
	return nil, nil
}

func opMstore(ctx *ExecutionContext) ([]byte, error) {
	mStart, val := mustPop(ctx), mustPop(ctx)
	b := val.Bytes32()
	ctx.memory.readFrom(b[:], mStart.Uint64())
	return nil, nil
}

func opMstore8(ctx *ExecutionContext) ([]byte, error) {
	off, val := mustPop(ctx), mustPop(ctx)
	ctx.memory.grow(off.Uint64(), 1)
	ctx.memory.setByte(off.Uint64(), byte(val.Uint64()))
	return nil, nil
}

func opSload(ctx *ExecutionContext) ([]byte, error) {
	loc := ctx.stack.peek()
	key := WordToHash(loc)
	val := ctx.host.GetStorage(ctx.message.Recipient, key)
	loc.SetBytes(val[:])
	return nil, nil
}

func opSstore(ctx *ExecutionContext) ([]byte, error) {
	key, val := mustPop(ctx), mustPop(ctx)
	ctx.host.SetStorage(ctx.message.Recipient, WordToHash(&key), WordToHash(&val))
	return nil, nil
}

func opJump(ctx *ExecutionContext) ([]byte, error) {
	pos, _ := ctx.stack.pop()
	dest, overflow := pos.Uint64WithOverflow()
	if overflow || !validJumpDest(ctx.codeLen(), ctx.contractInfo.Mask, dest) {
		ctx.state = ErrorJump
		return nil, errInvalidJump
	}
	ctx.pc = dest
	return nil, nil
}

func opJumpi(ctx *ExecutionContext) ([]byte, error) {
	pos, cond := mustPop(ctx), mustPop(ctx)
	if cond.IsZero() {
		ctx.pc++
		return nil, nil
	}
	dest, overflow := pos.Uint64WithOverflow()
	if overflow || !validJumpDest(ctx.codeLen(), ctx.contractInfo.Mask, dest) {
		ctx.state = ErrorJump
		return nil, errInvalidJump
	}
	ctx.pc = dest
	return nil, nil
}

func opJumpdest(ctx *ExecutionContext) ([]byte, error) {
	return nil, nil
}

func opPc(ctx *ExecutionContext) ([]byte, error) {
	ctx.stack.push(new(Word).SetUint64(ctx.pc))
	return nil, nil
}

func opMsize(ctx *ExecutionContext) ([]byte, error) {
	ctx.stack.push(new(Word).SetUint64(uint64(ctx.memory.Len())))
	return nil, nil
}

func opGas(ctx *ExecutionContext) ([]byte, error) {
	ctx.stack.push(new(Word).SetUint64(ctx.gas))
	return nil, nil
}

func opTload(ctx *ExecutionContext) ([]byte, error) {
	loc := ctx.stack.peek()
	key := WordToHash(loc)
	val := ctx.host.GetTransientStorage(ctx.message.Recipient, key)
	loc.SetBytes(val[:])
	return nil, nil
}

func opTstore(ctx *ExecutionContext) ([]byte, error) {
	key, val := mustPop(ctx), mustPop(ctx)
	ctx.host.SetTransientStorage(ctx.message.Recipient, WordToHash(&key), WordToHash(&val))
	return nil, nil
}

func opMcopy(ctx *ExecutionContext) ([]byte, error) {
	dst, src, length := mustPop(ctx), mustPop(ctx), mustPop(ctx)
	ctx.memory.copyWithin(dst.Uint64(), src.Uint64(), length.Uint64())
	return nil, nil
}

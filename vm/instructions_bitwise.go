// Copyright 2024 The go-evmzero Authors
// This file is part of the go-evmzero library.
//
// The go-evmzero library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package vm

func opLt(ctx *ExecutionContext) ([]byte, error) {
	x, y := mustPop(ctx), ctx.stack.peek()
	if x.Lt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opGt(ctx *ExecutionContext) ([]byte, error) {
	x, y := mustPop(ctx), ctx.stack.peek()
	if x.Gt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opSlt(ctx *ExecutionContext) ([]byte, error) {
	x, y := mustPop(ctx), ctx.stack.peek()
	if x.Slt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opSgt(ctx *ExecutionContext) ([]byte, error) {
	x, y := mustPop(ctx), ctx.stack.peek()
	if x.Sgt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opEq(ctx *ExecutionContext) ([]byte, error) {
	x, y := mustPop(ctx), ctx.stack.peek()
	if x.Eq(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opIszero(ctx *ExecutionContext) ([]byte, error) {
	x := ctx.stack.peek()
	if x.IsZero() {
		x.SetOne()
	} else {
		x.Clear()
	}
	return nil, nil
}

func opAnd(ctx *ExecutionContext) ([]byte, error) {
	x, y := mustPop(ctx), ctx.stack.peek()
	y.And(&x, y)
	return nil, nil
}

func opOr(ctx *ExecutionContext) ([]byte, error) {
	x, y := mustPop(ctx), ctx.stack.peek()
	y.Or(&x, y)
	return nil, nil
}

func opXor(ctx *ExecutionContext) ([]byte, error) {
	x, y := mustPop(ctx), ctx.stack.peek()
	y.Xor(&x, y)
	return nil, nil
}

func opNot(ctx *ExecutionContext) ([]byte, error) {
	x := ctx.stack.peek()
	x.Not(x)
	return nil, nil
}

func opByte(ctx *ExecutionContext) ([]byte, error) {
	th, val := mustPop(ctx), ctx.stack.peek()
	val.Byte(&th)
	return nil, nil
}

func opShl(ctx *ExecutionContext) ([]byte, error) {
	shift, value := mustPop(ctx), ctx.stack.peek()
	if shift.LtUint64(256) {
		value.Lsh(value, uint(shift.Uint64()))
	} else {
		value.Clear()
	}
	return nil, nil
}

func opShr(ctx *ExecutionContext) ([]byte, error) {
	shift, value := mustPop(ctx), ctx.stack.peek()
	if shift.LtUint64(256) {
		value.Rsh(value, uint(shift.Uint64()))
	} else {
		value.Clear()
	}
	return nil, nil
}

func opSar(ctx *ExecutionContext) ([]byte, error) {
	shift, value := mustPop(ctx), ctx.stack.peek()
	if shift.GtUint64(256) {
		if value.Sign() >= 0 {
			value.Clear()
		} else {
			value.SetAllOne()
		}
		return nil, nil
	}
	value.SRsh(value, uint(shift.Uint64()))
	return nil, nil
}

func opSha3(ctx *ExecutionContext) ([]byte, error) {
	offset, size := mustPop(ctx), ctx.stack.peek()
	data := ctx.memory.span(offset.Uint64(), size.Uint64())
	h := ctx.keccakCache.Hash(data)
	size.SetBytes(h[:])
	return nil, nil
}

// Copyright 2024 The go-evmzero Authors
// This file is part of the go-evmzero library.
//
// The go-evmzero library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package vm

func opStop(ctx *ExecutionContext) ([]byte, error) {
	ctx.state = Done
	return nil, nil
}

func opAdd(ctx *ExecutionContext) ([]byte, error) {
	x, y := mustPop(ctx), ctx.stack.peek()
	y.Add(&x, y)
	return nil, nil
}

func opSub(ctx *ExecutionContext) ([]byte, error) {
	x, y := mustPop(ctx), ctx.stack.peek()
	y.Sub(&x, y)
	return nil, nil
}

func opMul(ctx *ExecutionContext) ([]byte, error) {
	x, y := mustPop(ctx), ctx.stack.peek()
	y.Mul(&x, y)
	return nil, nil
}

func opDiv(ctx *ExecutionContext) ([]byte, error) {
	x, y := mustPop(ctx), ctx.stack.peek()
	y.Div(&x, y)
	return nil, nil
}

func opSdiv(ctx *ExecutionContext) ([]byte, error) {
	x, y := mustPop(ctx), ctx.stack.peek()
	y.SDiv(&x, y)
	return nil, nil
}

func opMod(ctx *ExecutionContext) ([]byte, error) {
	x, y := mustPop(ctx), ctx.stack.peek()
	y.Mod(&x, y)
	return nil, nil
}

func opSmod(ctx *ExecutionContext) ([]byte, error) {
	x, y := mustPop(ctx), ctx.stack.peek()
	y.SMod(&x, y)
	return nil, nil
}

func opAddmod(ctx *ExecutionContext) ([]byte, error) {
	x, y, z := mustPop(ctx), mustPop(ctx), ctx.stack.peek()
	if z.IsZero() {
		z.Clear()
	} else {
		z.AddMod(&x, &y, z)
	}
	return nil, nil
}

func opMulmod(ctx *ExecutionContext) ([]byte, error) {
	x, y, z := mustPop(ctx), mustPop(ctx), ctx.stack.peek()
	z.MulMod(&x, &y, z)
	return nil, nil
}

func opExp(ctx *ExecutionContext) ([]byte, error) {
	base, exponent := mustPop(ctx), ctx.stack.peek()
	exponent.Exp(&base, exponent)
	return nil, nil
}

func opSignExtend(ctx *ExecutionContext) ([]byte, error) {
	back, num := mustPop(ctx), ctx.stack.peek()
	num.ExtendSign(num, &back)
	return nil, nil
}

// mustPop pops the top of the stack, trusting the dispatch loop's
// pre-check to have already guaranteed enough depth.
func mustPop(ctx *ExecutionContext) Word {
	w, _ := ctx.stack.pop()
	return w
}

// Copyright 2024 The go-evmzero Authors
// This file is part of the go-evmzero library.
//
// The go-evmzero library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package vm

// run drives ctx to completion (or, with steps >= 0, for at most steps
// dispatched instructions) against the master jump table, observed by
// obs. A negative steps means unbounded. Grounded on the teacher's
// CVMInterpreter.Run (core/vm/interpreter.go), generalized across
// revisions via OpInfo.introducedIn instead of swapping the whole table,
// and instantiated per concrete Observer type so NullObserver's no-ops
// vanish at compile time.
func run[O Observer](ctx *ExecutionContext, obs O, steps int) []byte {
	obs.PreRun(ctx)

	var output []byte
	dispatched := 0
	for ctx.state == Running {
		if steps >= 0 && dispatched >= steps {
			break
		}
		if ctx.pc >= uint64(ctx.codeLen()) {
			ctx.state = Done
			break
		}

		op := OpCode(ctx.code()[ctx.pc])
		info := &masterJumpTable[op]

		obs.PreInstruction(ctx, ctx.pc, op)

		if !info.valid || !ctx.revision.AtLeast(info.introducedIn) {
			ctx.state = ErrorOpcode
			break
		}
		if ctx.isStaticCall && info.disallowedInStaticCall {
			ctx.state = ErrorStaticCall
			break
		}
		sLen := ctx.stack.len()
		if sLen < minStack(info.pops, info.pushes) {
			ctx.state = ErrorStackUnderflow
			break
		}
		if sLen > maxStack(info.pops, info.pushes) {
			ctx.state = ErrorStackOverflow
			break
		}

		gasCost := info.staticGas
		var memSize uint64
		if info.memorySize != nil {
			sz, overflow := info.memorySize(ctx.stack)
			if overflow {
				ctx.state = ErrorGas
				break
			}
			memSize = sz
		}
		if info.dynamicGas != nil {
			dyn, err := info.dynamicGas(ctx, memSize)
			if err != nil {
				if err == errInitCodeSizeExceeded {
					ctx.state = ErrorInitCodeSizeExceeded
				} else {
					ctx.state = ErrorGas
				}
				break
			}
			var overflow bool
			gasCost, overflow = safeAdd(gasCost, dyn)
			if overflow {
				ctx.state = ErrorGas
				break
			}
		}
		if ctx.gas < gasCost {
			ctx.state = ErrorGas
			break
		}
		ctx.gas -= gasCost

		ret, err := info.execute(ctx)
		dispatched++

		if err != nil && ctx.state == Running {
			// Defensive fallback: handlers that can fail without having
			// already set a specific state (errWriteProtection) land
			// here. Handlers that set their own state (opJump,
			// opReturnDataCopy) never reach this branch.
			switch err {
			case errWriteProtection:
				ctx.state = ErrorStaticCall
			case errCallDepthExceeded:
				ctx.state = ErrorCall
			case errCreateDepthExceeded:
				ctx.state = ErrorCreate
			default:
				ctx.state = ErrorOpcode
			}
		}

		obs.PostInstruction(ctx, ctx.pc, op)

		switch ctx.state {
		case Return, Revert:
			output = ret
		}
		if ctx.state != Running {
			break
		}
		if !info.isJump {
			ctx.pc += uint64(info.instructionLength)
		}
	}

	obs.PostRun(ctx)

	if ctx.state.IsError() {
		ctx.gas = 0
		output = nil
	}
	return output
}

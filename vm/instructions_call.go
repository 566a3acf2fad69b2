// Copyright 2024 The go-evmzero Authors
// This file is part of the go-evmzero library.
//
// The go-evmzero library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package vm

import "github.com/core-coin/go-evmzero/params"

// pushCallResult records a nested call/create outcome: success pushes 1,
// failure pushes 0, and RETURN/REVERT output becomes the new return-data
// buffer regardless of outcome — grounded on the teacher's opCall family
// (core/vm/instructions.go), generalized to route through Host.Call
// instead of cvm.Call/CallCode/DelegateCall/StaticCall directly.
func pushCallResult(ctx *ExecutionContext, result CallResult, retOffset, retSize uint64) {
	if result.StatusCode == StatusSuccess {
		ctx.stack.push(new(Word).SetOne())
	} else {
		ctx.stack.push(new(Word))
	}
	if result.StatusCode == StatusSuccess || result.StatusCode == StatusRevert {
		ctx.memory.readFromSized(result.Output, retOffset, retSize)
	}
	ctx.returnData = result.Output
	ctx.gas += result.GasLeft
	ctx.gasRefund += result.GasRefund
}

// callDepthExceeded reports and records the shared depth pre-check for
// the CALL family.
func callDepthExceeded(ctx *ExecutionContext) bool {
	if uint64(ctx.depth) >= params.CallCreateDepth {
		ctx.state = ErrorCall
		return true
	}
	return false
}

func opCall(ctx *ExecutionContext) ([]byte, error) {
	gas := ctx.callGasTemp
	mustPop(ctx) // the gas operand, already captured in ctx.callGasTemp
	a, value, inOffset, inSize, retOffset, retSize := mustPop(ctx), mustPop(ctx), mustPop(ctx), mustPop(ctx), mustPop(ctx), mustPop(ctx)
	addr := WordToAddress(&a)

	if ctx.isStaticCall && !value.IsZero() {
		return nil, errWriteProtection
	}
	if callDepthExceeded(ctx) {
		return nil, errCallDepthExceeded
	}
	if !value.IsZero() {
		gas += params.CallStipend
	}
	args := ctx.memory.writeTo(inOffset.Uint64(), inSize.Uint64())

	result := ctx.host.Call(&Message{
		Kind:        CallKindCall,
		Static:      ctx.isStaticCall,
		Depth:       ctx.depth + 1,
		Gas:         gas,
		Recipient:   addr,
		Sender:      ctx.message.Recipient,
		Value:       &value,
		Input:       args,
		CodeAddress: addr,
	})
	pushCallResult(ctx, result, retOffset.Uint64(), retSize.Uint64())
	return nil, nil
}

func opCallCode(ctx *ExecutionContext) ([]byte, error) {
	gas := ctx.callGasTemp
	mustPop(ctx) // the gas operand, already captured in ctx.callGasTemp
	a, value, inOffset, inSize, retOffset, retSize := mustPop(ctx), mustPop(ctx), mustPop(ctx), mustPop(ctx), mustPop(ctx), mustPop(ctx)
	addr := WordToAddress(&a)

	if callDepthExceeded(ctx) {
		return nil, errCallDepthExceeded
	}
	if !value.IsZero() {
		gas += params.CallStipend
	}
	args := ctx.memory.writeTo(inOffset.Uint64(), inSize.Uint64())

	result := ctx.host.Call(&Message{
		Kind:        CallKindCallCode,
		Static:      ctx.isStaticCall,
		Depth:       ctx.depth + 1,
		Gas:         gas,
		Recipient:   ctx.message.Recipient,
		Sender:      ctx.message.Recipient,
		Value:       &value,
		Input:       args,
		CodeAddress: addr,
	})
	pushCallResult(ctx, result, retOffset.Uint64(), retSize.Uint64())
	return nil, nil
}

func opDelegateCall(ctx *ExecutionContext) ([]byte, error) {
	gas := ctx.callGasTemp
	mustPop(ctx) // the gas operand, already captured in ctx.callGasTemp
	a, inOffset, inSize, retOffset, retSize := mustPop(ctx), mustPop(ctx), mustPop(ctx), mustPop(ctx), mustPop(ctx)
	addr := WordToAddress(&a)

	if callDepthExceeded(ctx) {
		return nil, errCallDepthExceeded
	}
	args := ctx.memory.writeTo(inOffset.Uint64(), inSize.Uint64())

	result := ctx.host.Call(&Message{
		Kind:        CallKindDelegateCall,
		Static:      ctx.isStaticCall,
		Depth:       ctx.depth + 1,
		Gas:         gas,
		Recipient:   ctx.message.Recipient,
		Sender:      ctx.message.Sender,
		Value:       ctx.message.Value,
		Input:       args,
		CodeAddress: addr,
	})
	pushCallResult(ctx, result, retOffset.Uint64(), retSize.Uint64())
	return nil, nil
}

func opStaticCall(ctx *ExecutionContext) ([]byte, error) {
	gas := ctx.callGasTemp
	mustPop(ctx) // the gas operand, already captured in ctx.callGasTemp
	a, inOffset, inSize, retOffset, retSize := mustPop(ctx), mustPop(ctx), mustPop(ctx), mustPop(ctx), mustPop(ctx)
	addr := WordToAddress(&a)

	if callDepthExceeded(ctx) {
		return nil, errCallDepthExceeded
	}
	args := ctx.memory.writeTo(inOffset.Uint64(), inSize.Uint64())

	result := ctx.host.Call(&Message{
		Kind:        CallKindCall,
		Static:      true,
		Depth:       ctx.depth + 1,
		Gas:         gas,
		Recipient:   addr,
		Sender:      ctx.message.Recipient,
		Value:       new(Word),
		Input:       args,
		CodeAddress: addr,
	})
	pushCallResult(ctx, result, retOffset.Uint64(), retSize.Uint64())
	return nil, nil
}

// callCreateGas applies the EIP-150 63/64 forwarding rule to CREATE and
// CREATE2, which (unlike the CALL family) compute it inline rather than
// through the gas table's callGasTemp scratch field — grounded on the
// teacher's opCreate/opCreate2, which reserve contract.Energy/64 before
// calling cvm.Create/Create2.
func callCreateGas(ctx *ExecutionContext) uint64 {
	g := ctx.gas
	return g - g/64
}

func opCreate(ctx *ExecutionContext) ([]byte, error) {
	value, offset, size := mustPop(ctx), mustPop(ctx), mustPop(ctx)
	if uint64(ctx.depth) >= params.CallCreateDepth {
		ctx.state = ErrorCreate
		return nil, errCreateDepthExceeded
	}
	input := ctx.memory.writeTo(offset.Uint64(), size.Uint64())

	if value.Cmp(ctx.host.GetBalance(ctx.message.Recipient)) > 0 {
		ctx.stack.push(new(Word))
		return nil, nil
	}

	gas := callCreateGas(ctx)
	ctx.gas -= gas

	result := ctx.host.Call(&Message{
		Kind:      CallKindCreate,
		Depth:     ctx.depth + 1,
		Gas:       gas,
		Recipient: ctx.message.Recipient,
		Sender:    ctx.message.Recipient,
		Value:     &value,
		Input:     input,
	})
	if result.StatusCode == StatusSuccess {
		ctx.stack.push(AddressToWord(result.CreateAddress))
	} else {
		ctx.stack.push(new(Word))
	}
	ctx.gas += result.GasLeft
	ctx.gasRefund += result.GasRefund
	if result.StatusCode == StatusRevert {
		ctx.returnData = result.Output
		return result.Output, nil
	}
	return nil, nil
}

func opCreate2(ctx *ExecutionContext) ([]byte, error) {
	value, offset, size, salt := mustPop(ctx), mustPop(ctx), mustPop(ctx), mustPop(ctx)
	if uint64(ctx.depth) >= params.CallCreateDepth {
		ctx.state = ErrorCreate
		return nil, errCreateDepthExceeded
	}
	input := ctx.memory.writeTo(offset.Uint64(), size.Uint64())

	if value.Cmp(ctx.host.GetBalance(ctx.message.Recipient)) > 0 {
		ctx.stack.push(new(Word))
		return nil, nil
	}

	gas := callCreateGas(ctx)
	ctx.gas -= gas

	result := ctx.host.Call(&Message{
		Kind:      CallKindCreate2,
		Depth:     ctx.depth + 1,
		Gas:       gas,
		Recipient: ctx.message.Recipient,
		Sender:    ctx.message.Recipient,
		Value:     &value,
		Input:     input,
		Salt:      &salt,
	})
	if result.StatusCode == StatusSuccess {
		ctx.stack.push(AddressToWord(result.CreateAddress))
	} else {
		ctx.stack.push(new(Word))
	}
	ctx.gas += result.GasLeft
	ctx.gasRefund += result.GasRefund
	if result.StatusCode == StatusRevert {
		ctx.returnData = result.Output
		return result.Output, nil
	}
	return nil, nil
}

func opReturn(ctx *ExecutionContext) ([]byte, error) {
	offset, size := mustPop(ctx), mustPop(ctx)
	ret := ctx.memory.writeTo(offset.Uint64(), size.Uint64())
	ctx.state = Return
	return ret, nil
}

func opRevert(ctx *ExecutionContext) ([]byte, error) {
	offset, size := mustPop(ctx), mustPop(ctx)
	ret := ctx.memory.writeTo(offset.Uint64(), size.Uint64())
	ctx.state = Revert
	return ret, nil
}

func opInvalid(ctx *ExecutionContext) ([]byte, error) {
	ctx.state = Invalid
	return nil, nil
}

func opSelfdestruct(ctx *ExecutionContext) ([]byte, error) {
	b := mustPop(ctx)
	beneficiary := WordToAddress(&b)
	first := ctx.host.Selfdestruct(ctx.message.Recipient, beneficiary)
	// EIP-3529 (London) removes the SELFDESTRUCT refund.
	if first && !ctx.revision.AtLeast(RevisionLondon) {
		ctx.gasRefund += int64(params.SelfdestructRefundGas)
	}
	ctx.state = Done
	return nil, nil
}

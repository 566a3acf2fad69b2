// Copyright 2024 The go-evmzero Authors
// This file is part of the go-evmzero library.
//
// The go-evmzero library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package vm

// getData returns size bytes from data starting at start, zero-padding
// past the end — the CALLDATALOAD/CALLDATACOPY/CODECOPY/EXTCODECOPY
// out-of-bounds-reads-as-zero rule.
func getData(data []byte, start, size uint64) []byte {
	length := uint64(len(data))
	if start > length {
		start = length
	}
	end := start + size
	if end > length {
		end = length
	}
	out := make([]byte, size)
	copy(out, data[start:end])
	return out
}

func opAddress(ctx *ExecutionContext) ([]byte, error) {
	ctx.stack.push(AddressToWord(ctx.message.Recipient))
	return nil, nil
}

func opBalance(ctx *ExecutionContext) ([]byte, error) {
	slot := ctx.stack.peek()
	addr := WordToAddress(slot)
	slot.Set(ctx.host.GetBalance(addr))
	return nil, nil
}

func opOrigin(ctx *ExecutionContext) ([]byte, error) {
	ctx.stack.push(AddressToWord(ctx.host.GetTxContext().Origin))
	return nil, nil
}

func opCaller(ctx *ExecutionContext) ([]byte, error) {
	ctx.stack.push(AddressToWord(ctx.message.Sender))
	return nil, nil
}

func opCallValue(ctx *ExecutionContext) ([]byte, error) {
	ctx.stack.push(ctx.message.Value)
	return nil, nil
}

func opCallDataLoad(ctx *ExecutionContext) ([]byte, error) {
	x := ctx.stack.peek()
	if offset, overflow := x.Uint64WithOverflow(); !overflow {
		x.SetBytes(getData(ctx.message.Input, offset, 32))
	} else {
		x.Clear()
	}
	return nil, nil
}

func opCallDataSize(ctx *ExecutionContext) ([]byte, error) {
	ctx.stack.push(new(Word).SetUint64(uint64(len(ctx.message.Input))))
	return nil, nil
}

func opCallDataCopy(ctx *ExecutionContext) ([]byte, error) {
	memOffset, dataOffset, length := mustPop(ctx), mustPop(ctx), mustPop(ctx)
	dataOffset64, overflow := dataOffset.Uint64WithOverflow()
	if overflow {
		dataOffset64 = ^uint64(0)
	}
	ctx.memory.readFromSized(getData(ctx.message.Input, dataOffset64, length.Uint64()), memOffset.Uint64(), length.Uint64())
	return nil, nil
}

func opCodeSize(ctx *ExecutionContext) ([]byte, error) {
	ctx.stack.push(new(Word).SetUint64(uint64(ctx.codeLen())))
	return nil, nil
}

func opCodeCopy(ctx *ExecutionContext) ([]byte, error) {
	memOffset, codeOffset, length := mustPop(ctx), mustPop(ctx), mustPop(ctx)
	codeOffset64, overflow := codeOffset.Uint64WithOverflow()
	if overflow {
		codeOffset64 = ^uint64(0)
	}
	data := getData(ctx.code()[:ctx.codeLen()], codeOffset64, length.Uint64())
	ctx.memory.readFromSized(data, memOffset.Uint64(), length.Uint64())
	return nil, nil
}

func opGasPrice(ctx *ExecutionContext) ([]byte, error) {
	ctx.stack.push(ctx.host.GetTxContext().GasPrice)
	return nil, nil
}

func opExtCodeSize(ctx *ExecutionContext) ([]byte, error) {
	slot := ctx.stack.peek()
	addr := WordToAddress(slot)
	slot.SetUint64(uint64(ctx.host.GetCodeSize(addr)))
	return nil, nil
}

func opExtCodeCopy(ctx *ExecutionContext) ([]byte, error) {
	a, memOffset, codeOffset, length := mustPop(ctx), mustPop(ctx), mustPop(ctx), mustPop(ctx)
	addr := WordToAddress(&a)
	codeOffset64, overflow := codeOffset.Uint64WithOverflow()
	if overflow {
		codeOffset64 = ^uint64(0)
	}
	data := ctx.host.CopyCode(addr, codeOffset64, length.Uint64())
	ctx.memory.readFromSized(data, memOffset.Uint64(), length.Uint64())
	return nil, nil
}

func opReturnDataSize(ctx *ExecutionContext) ([]byte, error) {
	ctx.stack.push(new(Word).SetUint64(uint64(len(ctx.returnData))))
	return nil, nil
}

func opReturnDataCopy(ctx *ExecutionContext) ([]byte, error) {
	memOffset, dataOffset, length := mustPop(ctx), mustPop(ctx), mustPop(ctx)
	offset64, overflow := dataOffset.Uint64WithOverflow()
	if overflow {
		ctx.state = ErrorReturnDataCopyOOB
		return nil, errReturnDataOutOfBounds
	}
	end := new(Word).Add(&dataOffset, &length)
	end64, overflow := end.Uint64WithOverflow()
	if overflow || uint64(len(ctx.returnData)) < end64 {
		ctx.state = ErrorReturnDataCopyOOB
		return nil, errReturnDataOutOfBounds
	}
	ctx.memory.readFrom(ctx.returnData[offset64:end64], memOffset.Uint64())
	return nil, nil
}

func opExtCodeHash(ctx *ExecutionContext) ([]byte, error) {
	slot := ctx.stack.peek()
	addr := WordToAddress(slot)
	if !ctx.host.AccountExists(addr) {
		slot.Clear()
	} else {
		h := ctx.host.GetCodeHash(addr)
		slot.SetBytes(h[:])
	}
	return nil, nil
}

// Copyright 2024 The go-evmzero Authors
// This file is part of the go-evmzero library.
//
// The go-evmzero library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package vm

func opBlockHash(ctx *ExecutionContext) ([]byte, error) {
	num := ctx.stack.peek()
	n64, overflow := num.Uint64WithOverflow()
	if overflow {
		num.Clear()
		return nil, nil
	}
	tctx := ctx.host.GetTxContext()
	upper := tctx.BlockNumber
	var lower uint64
	if upper >= 257 {
		lower = upper - 256
	}
	if n64 >= lower && n64 < upper {
		h := ctx.host.GetBlockHash(n64)
		num.SetBytes(h[:])
	} else {
		num.Clear()
	}
	return nil, nil
}

func opCoinbase(ctx *ExecutionContext) ([]byte, error) {
	ctx.stack.push(AddressToWord(ctx.host.GetTxContext().Coinbase))
	return nil, nil
}

func opTimestamp(ctx *ExecutionContext) ([]byte, error) {
	ctx.stack.push(new(Word).SetUint64(ctx.host.GetTxContext().Timestamp))
	return nil, nil
}

func opNumber(ctx *ExecutionContext) ([]byte, error) {
	ctx.stack.push(new(Word).SetUint64(ctx.host.GetTxContext().BlockNumber))
	return nil, nil
}

func opPrevRandao(ctx *ExecutionContext) ([]byte, error) {
	h := ctx.host.GetTxContext().PrevRandao
	ctx.stack.push(HashToWord(h))
	return nil, nil
}

func opGasLimit(ctx *ExecutionContext) ([]byte, error) {
	ctx.stack.push(new(Word).SetUint64(ctx.host.GetTxContext().GasLimit))
	return nil, nil
}

func opChainID(ctx *ExecutionContext) ([]byte, error) {
	ctx.stack.push(ctx.host.GetTxContext().ChainID)
	return nil, nil
}

func opSelfBalance(ctx *ExecutionContext) ([]byte, error) {
	ctx.stack.push(ctx.host.GetBalance(ctx.message.Recipient))
	return nil, nil
}

func opBaseFee(ctx *ExecutionContext) ([]byte, error) {
	ctx.stack.push(ctx.host.GetTxContext().BaseFee)
	return nil, nil
}

func opBlobBaseFee(ctx *ExecutionContext) ([]byte, error) {
	ctx.stack.push(ctx.host.GetTxContext().BlobBaseFee)
	return nil, nil
}

// Copyright 2024 The go-evmzero Authors
// This file is part of the go-evmzero library.
//
// The go-evmzero library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package vm

// ExecutionContext is the full mutable state of one in-flight
// interpretation, threaded through the dispatch loop and every
// instruction handler — the spec.md §4.1 "Execution Context" record.
type ExecutionContext struct {
	state State
	pc    uint64
	gas   uint64
	// gasRefund accumulates the signed EIP-2200/EIP-3529 SSTORE refund;
	// applied by the caller after a successful or reverted run per the
	// refund-capping rule the caller enforces (spec.md §4.8).
	gasRefund int64

	stack  *Stack
	memory *Memory

	returnData []byte

	contractInfo *ContractInfo
	message      *Message
	host         Host
	revision     Revision

	isStaticCall bool
	depth        int

	keccakCache *KeccakCache

	// callGasTemp is scratch space between a call-like opcode's dynamic
	// gas computation (which applies the 63/64 forwarding rule) and its
	// execute handler, mirroring the teacher's cvm.callEnergyTemp.
	callGasTemp uint64
}

func newExecutionContext(info *ContractInfo, msg *Message, host Host, rev Revision, keccak *KeccakCache) *ExecutionContext {
	return &ExecutionContext{
		state:        Running,
		gas:          msg.Gas,
		stack:        newStack(),
		memory:       NewMemory(),
		contractInfo: info,
		message:      msg,
		host:         host,
		revision:     rev,
		isStaticCall: msg.Static,
		depth:        msg.Depth,
		keccakCache:  keccak,
	}
}

func (ctx *ExecutionContext) release() {
	returnStack(ctx.stack)
	ctx.stack = nil
}

// code returns the padded bytecode backing this run.
func (ctx *ExecutionContext) code() PaddedCode { return ctx.contractInfo.Code }

// codeLen returns the original (unpadded) code length.
func (ctx *ExecutionContext) codeLen() int { return ctx.contractInfo.Len }

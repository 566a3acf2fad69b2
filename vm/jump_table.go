// Copyright 2024 The go-evmzero Authors
// This file is part of the go-evmzero library.
//
// The go-evmzero library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package vm

import "github.com/core-coin/go-evmzero/params"

type (
	executionFunc  func(ctx *ExecutionContext) ([]byte, error)
	dynamicGasFunc func(ctx *ExecutionContext, memorySize uint64) (uint64, error)
	// memorySizeFunc returns the required memory size in bytes and
	// whether computing it overflowed a uint64, mirroring the teacher's
	// memorySizeFunc in core/vm/jump_table.go.
	memorySizeFunc func(stack *Stack) (size uint64, overflow bool)
)

// OpInfo is the static description of one opcode, spec.md §4.8.
type OpInfo struct {
	execute    executionFunc
	dynamicGas dynamicGasFunc
	memorySize memorySizeFunc

	staticGas uint64

	pops, pushes int

	// instructionLength is 1 for all non-PUSH opcodes, 1+N for PUSHN.
	instructionLength int

	isJump                 bool
	disallowedInStaticCall bool

	// introducedIn gates the opcode to revision >= introducedIn. Zero
	// value (RevisionFrontier) means "always available".
	introducedIn Revision

	valid bool
}

// JumpTable is the full 256-entry opcode table. A single master table
// is built once (newJumpTable) and consulted for every revision; the
// dispatch loop's per-spec revision gate (OpInfo.introducedIn vs.
// ctx.revision) does the work the teacher's per-revision
// newXInstructionSet chain otherwise duplicates table-by-table — same
// behavior (an opcode is simply unavailable before its revision), one
// array instead of eleven near-identical copies.
type JumpTable [256]OpInfo

var masterJumpTable = buildJumpTable()

func minStack(pops, pushes int) int { return pops }
func maxStack(pops, pushes int) int { return stackLimit - pushes + pops }

func buildJumpTable() *JumpTable {
	var jt JumpTable

	set := func(op OpCode, info OpInfo) {
		info.valid = true
		jt[op] = info
	}

	// --- Arithmetic / comparison / bitwise ---
	set(STOP, OpInfo{execute: opStop, pops: 0, pushes: 0, staticGas: 0, instructionLength: 1})
	set(ADD, OpInfo{execute: opAdd, pops: 2, pushes: 1, staticGas: params.GasFastestStep, instructionLength: 1})
	set(MUL, OpInfo{execute: opMul, pops: 2, pushes: 1, staticGas: params.GasFastStep, instructionLength: 1})
	set(SUB, OpInfo{execute: opSub, pops: 2, pushes: 1, staticGas: params.GasFastestStep, instructionLength: 1})
	set(DIV, OpInfo{execute: opDiv, pops: 2, pushes: 1, staticGas: params.GasFastStep, instructionLength: 1})
	set(SDIV, OpInfo{execute: opSdiv, pops: 2, pushes: 1, staticGas: params.GasFastStep, instructionLength: 1})
	set(MOD, OpInfo{execute: opMod, pops: 2, pushes: 1, staticGas: params.GasFastStep, instructionLength: 1})
	set(SMOD, OpInfo{execute: opSmod, pops: 2, pushes: 1, staticGas: params.GasFastStep, instructionLength: 1})
	set(ADDMOD, OpInfo{execute: opAddmod, pops: 3, pushes: 1, staticGas: params.GasMidStep, instructionLength: 1})
	set(MULMOD, OpInfo{execute: opMulmod, pops: 3, pushes: 1, staticGas: params.GasMidStep, instructionLength: 1})
	set(EXP, OpInfo{execute: opExp, dynamicGas: gasExp, pops: 2, pushes: 1, staticGas: params.ExpGas, instructionLength: 1})
	set(SIGNEXTEND, OpInfo{execute: opSignExtend, pops: 2, pushes: 1, staticGas: params.GasFastStep, instructionLength: 1})

	set(LT, OpInfo{execute: opLt, pops: 2, pushes: 1, staticGas: params.GasFastestStep, instructionLength: 1})
	set(GT, OpInfo{execute: opGt, pops: 2, pushes: 1, staticGas: params.GasFastestStep, instructionLength: 1})
	set(SLT, OpInfo{execute: opSlt, pops: 2, pushes: 1, staticGas: params.GasFastestStep, instructionLength: 1})
	set(SGT, OpInfo{execute: opSgt, pops: 2, pushes: 1, staticGas: params.GasFastestStep, instructionLength: 1})
	set(EQ, OpInfo{execute: opEq, pops: 2, pushes: 1, staticGas: params.GasFastestStep, instructionLength: 1})
	set(ISZERO, OpInfo{execute: opIszero, pops: 1, pushes: 1, staticGas: params.GasFastestStep, instructionLength: 1})
	set(AND, OpInfo{execute: opAnd, pops: 2, pushes: 1, staticGas: params.GasFastestStep, instructionLength: 1})
	set(OR, OpInfo{execute: opOr, pops: 2, pushes: 1, staticGas: params.GasFastestStep, instructionLength: 1})
	set(XOR, OpInfo{execute: opXor, pops: 2, pushes: 1, staticGas: params.GasFastestStep, instructionLength: 1})
	set(NOT, OpInfo{execute: opNot, pops: 1, pushes: 1, staticGas: params.GasFastestStep, instructionLength: 1})
	set(BYTE, OpInfo{execute: opByte, pops: 2, pushes: 1, staticGas: params.GasFastestStep, instructionLength: 1})
	set(SHL, OpInfo{execute: opShl, pops: 2, pushes: 1, staticGas: params.GasFastestStep, instructionLength: 1})
	set(SHR, OpInfo{execute: opShr, pops: 2, pushes: 1, staticGas: params.GasFastestStep, instructionLength: 1})
	set(SAR, OpInfo{execute: opSar, pops: 2, pushes: 1, staticGas: params.GasFastestStep, instructionLength: 1})

	set(SHA3, OpInfo{execute: opSha3, dynamicGas: gasSha3, memorySize: memorySha3, pops: 2, pushes: 1, staticGas: params.Sha3Gas, instructionLength: 1})

	// --- Environment / block / tx ---
	set(ADDRESS, OpInfo{execute: opAddress, pops: 0, pushes: 1, staticGas: params.GasQuickStep, instructionLength: 1})
	set(BALANCE, OpInfo{execute: opBalance, dynamicGas: gasBalance, pops: 1, pushes: 1, staticGas: 0, instructionLength: 1})
	set(ORIGIN, OpInfo{execute: opOrigin, pops: 0, pushes: 1, staticGas: params.GasQuickStep, instructionLength: 1})
	set(CALLER, OpInfo{execute: opCaller, pops: 0, pushes: 1, staticGas: params.GasQuickStep, instructionLength: 1})
	set(CALLVALUE, OpInfo{execute: opCallValue, pops: 0, pushes: 1, staticGas: params.GasQuickStep, instructionLength: 1})
	set(CALLDATALOAD, OpInfo{execute: opCallDataLoad, pops: 1, pushes: 1, staticGas: params.GasFastestStep, instructionLength: 1})
	set(CALLDATASIZE, OpInfo{execute: opCallDataSize, pops: 0, pushes: 1, staticGas: params.GasQuickStep, instructionLength: 1})
	set(CALLDATACOPY, OpInfo{execute: opCallDataCopy, dynamicGas: gasMemoryCopy(2), memorySize: memoryCopy(0, 2), pops: 3, pushes: 0, staticGas: params.GasFastestStep, instructionLength: 1})
	set(CODESIZE, OpInfo{execute: opCodeSize, pops: 0, pushes: 1, staticGas: params.GasQuickStep, instructionLength: 1})
	set(CODECOPY, OpInfo{execute: opCodeCopy, dynamicGas: gasMemoryCopy(2), memorySize: memoryCopy(0, 2), pops: 3, pushes: 0, staticGas: params.GasFastestStep, instructionLength: 1})
	set(GASPRICE, OpInfo{execute: opGasPrice, pops: 0, pushes: 1, staticGas: params.GasQuickStep, instructionLength: 1})
	set(EXTCODESIZE, OpInfo{execute: opExtCodeSize, dynamicGas: gasExtCodeSize, pops: 1, pushes: 1, staticGas: 0, instructionLength: 1})
	set(EXTCODECOPY, OpInfo{execute: opExtCodeCopy, dynamicGas: gasExtCodeCopy, memorySize: memoryCopy(1, 3), pops: 4, pushes: 0, staticGas: 0, instructionLength: 1})
	set(RETURNDATASIZE, OpInfo{execute: opReturnDataSize, pops: 0, pushes: 1, staticGas: params.GasQuickStep, instructionLength: 1})
	set(RETURNDATACOPY, OpInfo{execute: opReturnDataCopy, dynamicGas: gasMemoryCopy(2), memorySize: memoryCopy(0, 2), pops: 3, pushes: 0, staticGas: params.GasFastestStep, instructionLength: 1})
	set(EXTCODEHASH, OpInfo{execute: opExtCodeHash, dynamicGas: gasExtCodeHash, pops: 1, pushes: 1, staticGas: 0, instructionLength: 1, introducedIn: RevisionConstantinople})

	set(BLOCKHASH, OpInfo{execute: opBlockHash, pops: 1, pushes: 1, staticGas: params.GasExtStep, instructionLength: 1})
	set(COINBASE, OpInfo{execute: opCoinbase, pops: 0, pushes: 1, staticGas: params.GasQuickStep, instructionLength: 1})
	set(TIMESTAMP, OpInfo{execute: opTimestamp, pops: 0, pushes: 1, staticGas: params.GasQuickStep, instructionLength: 1})
	set(NUMBER, OpInfo{execute: opNumber, pops: 0, pushes: 1, staticGas: params.GasQuickStep, instructionLength: 1})
	set(PREVRANDAO, OpInfo{execute: opPrevRandao, pops: 0, pushes: 1, staticGas: params.GasQuickStep, instructionLength: 1})
	set(GASLIMIT, OpInfo{execute: opGasLimit, pops: 0, pushes: 1, staticGas: params.GasQuickStep, instructionLength: 1})
	set(CHAINID, OpInfo{execute: opChainID, pops: 0, pushes: 1, staticGas: params.GasQuickStep, instructionLength: 1, introducedIn: RevisionIstanbul})
	set(SELFBALANCE, OpInfo{execute: opSelfBalance, pops: 0, pushes: 1, staticGas: params.GasFastStep, instructionLength: 1, introducedIn: RevisionIstanbul})
	set(BASEFEE, OpInfo{execute: opBaseFee, pops: 0, pushes: 1, staticGas: params.GasQuickStep, instructionLength: 1, introducedIn: RevisionLondon})
	set(BLOBBASEFEE, OpInfo{execute: opBlobBaseFee, pops: 0, pushes: 1, staticGas: params.GasQuickStep, instructionLength: 1, introducedIn: RevisionCancun})

	// --- Stack / memory / storage / control flow ---
	set(POP, OpInfo{execute: opPop, pops: 1, pushes: 0, staticGas: params.GasQuickStep, instructionLength: 1})
	set(MLOAD, OpInfo{execute: opMload, dynamicGas: gasMemoryExpansionOnly, memorySize: memoryMload, pops: 1, pushes: 1, staticGas: params.GasFastestStep, instructionLength: 1})
	set(MSTORE, OpInfo{execute: opMstore, dynamicGas: gasMemoryExpansionOnly, memorySize: memoryMstore, pops: 2, pushes: 0, staticGas: params.GasFastestStep, instructionLength: 1})
	set(MSTORE8, OpInfo{execute: opMstore8, dynamicGas: gasMemoryExpansionOnly, memorySize: memoryMstore8, pops: 2, pushes: 0, staticGas: params.GasFastestStep, instructionLength: 1})
	set(SLOAD, OpInfo{execute: opSload, dynamicGas: gasSload, pops: 1, pushes: 1, staticGas: 0, instructionLength: 1})
	set(SSTORE, OpInfo{execute: opSstore, dynamicGas: gasSstore, pops: 2, pushes: 0, staticGas: 0, instructionLength: 1, disallowedInStaticCall: true})
	set(JUMP, OpInfo{execute: opJump, pops: 1, pushes: 0, staticGas: params.GasMidStep, instructionLength: 1, isJump: true})
	set(JUMPI, OpInfo{execute: opJumpi, pops: 2, pushes: 0, staticGas: 10, instructionLength: 1, isJump: true})
	set(PC, OpInfo{execute: opPc, pops: 0, pushes: 1, staticGas: params.GasQuickStep, instructionLength: 1})
	set(MSIZE, OpInfo{execute: opMsize, pops: 0, pushes: 1, staticGas: params.GasQuickStep, instructionLength: 1})
	set(GAS, OpInfo{execute: opGas, pops: 0, pushes: 1, staticGas: params.GasQuickStep, instructionLength: 1})
	set(JUMPDEST, OpInfo{execute: opJumpdest, pops: 0, pushes: 0, staticGas: params.JumpdestGas, instructionLength: 1})
	set(TLOAD, OpInfo{execute: opTload, pops: 1, pushes: 1, staticGas: params.WarmStorageReadCostEIP2929, instructionLength: 1, introducedIn: RevisionCancun})
	set(TSTORE, OpInfo{execute: opTstore, pops: 2, pushes: 0, staticGas: params.WarmStorageReadCostEIP2929, instructionLength: 1, introducedIn: RevisionCancun, disallowedInStaticCall: true})
	set(MCOPY, OpInfo{execute: opMcopy, dynamicGas: gasMcopy, memorySize: memoryMcopy, pops: 3, pushes: 0, staticGas: params.GasFastestStep, instructionLength: 1, introducedIn: RevisionCancun})
	set(PUSH0, OpInfo{execute: opPush0, pops: 0, pushes: 1, staticGas: params.GasQuickStep, instructionLength: 1, introducedIn: RevisionShanghai})

	for i := 0; i < 32; i++ {
		n := i + 1
		set(PUSH1+OpCode(i), OpInfo{execute: makePush(n), pops: 0, pushes: 1, staticGas: params.GasFastestStep, instructionLength: 1 + n})
	}
	for i := 0; i < 16; i++ {
		n := i + 1
		set(DUP1+OpCode(i), OpInfo{execute: makeDup(n), pops: n, pushes: n + 1, staticGas: params.GasFastestStep, instructionLength: 1})
	}
	for i := 0; i < 16; i++ {
		n := i + 1
		set(SWAP1+OpCode(i), OpInfo{execute: makeSwap(n), pops: n + 1, pushes: n + 1, staticGas: params.GasFastestStep, instructionLength: 1})
	}

	for i := 0; i < 5; i++ {
		n := i
		set(LOG0+OpCode(i), OpInfo{execute: makeLog(n), dynamicGas: makeGasLog(uint64(n)), memorySize: memoryLog, pops: 2 + n, pushes: 0, staticGas: params.LogGas * uint64(n+1), instructionLength: 1, disallowedInStaticCall: true})
	}

	set(CREATE, OpInfo{execute: opCreate, dynamicGas: gasCreate, memorySize: memoryCreate, pops: 3, pushes: 1, staticGas: params.CreateGas, instructionLength: 1, disallowedInStaticCall: true})
	set(CALL, OpInfo{execute: opCall, dynamicGas: gasCall, memorySize: memoryCall, pops: 7, pushes: 1, staticGas: 0, instructionLength: 1})
	set(CALLCODE, OpInfo{execute: opCallCode, dynamicGas: gasCallCode, memorySize: memoryCall, pops: 7, pushes: 1, staticGas: 0, instructionLength: 1})
	set(RETURN, OpInfo{execute: opReturn, dynamicGas: gasMemoryExpansionOnly, memorySize: memoryReturn, pops: 2, pushes: 0, staticGas: 0, instructionLength: 1, isJump: true})
	set(DELEGATECALL, OpInfo{execute: opDelegateCall, dynamicGas: gasDelegateCall, memorySize: memoryDelegateStaticCall, pops: 6, pushes: 1, staticGas: 0, instructionLength: 1, introducedIn: RevisionHomestead})
	set(CREATE2, OpInfo{execute: opCreate2, dynamicGas: gasCreate2, memorySize: memoryCreate, pops: 4, pushes: 1, staticGas: params.Create2Gas, instructionLength: 1, disallowedInStaticCall: true, introducedIn: RevisionConstantinople})
	set(STATICCALL, OpInfo{execute: opStaticCall, dynamicGas: gasStaticCall, memorySize: memoryDelegateStaticCall, pops: 6, pushes: 1, staticGas: 0, instructionLength: 1, introducedIn: RevisionByzantium})
	set(REVERT, OpInfo{execute: opRevert, dynamicGas: gasMemoryExpansionOnly, memorySize: memoryReturn, pops: 2, pushes: 0, staticGas: 0, instructionLength: 1, isJump: true, introducedIn: RevisionByzantium})
	set(INVALID, OpInfo{execute: opInvalid, pops: 0, pushes: 0, staticGas: 0, instructionLength: 1})
	set(SELFDESTRUCT, OpInfo{execute: opSelfdestruct, dynamicGas: gasSelfdestruct, pops: 1, pushes: 0, staticGas: 0, instructionLength: 1, isJump: true, disallowedInStaticCall: true})

	return &jt
}

// Copyright 2024 The go-evmzero Authors
// This file is part of the go-evmzero library.
//
// The go-evmzero library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package vm

import (
	"errors"

	"github.com/core-coin/go-evmzero/params"
)

var errGasUintOverflow = errors.New("vm: gas uint64 overflow")

func safeAdd(a, b uint64) (uint64, bool) {
	c := a + b
	return c, c < a
}

func safeMul(a, b uint64) (uint64, bool) {
	if a == 0 || b == 0 {
		return 0, false
	}
	c := a * b
	return c, c/a != b
}

// memSize computes the byte length a [offset, offset+length) access
// needs, signalling overflow rather than panicking — the uint256
// analogue of the teacher's calcMemSize64.
func memSize(offset, length *Word) (uint64, bool) {
	if length.IsZero() {
		return 0, false
	}
	if !length.IsUint64() {
		return 0, true
	}
	l := length.Uint64()
	if !offset.IsUint64() {
		return 0, true
	}
	o := offset.Uint64()
	sum, overflow := safeAdd(o, l)
	return sum, overflow
}

// memoryGasCost is the quadratic memory-expansion charge, levied only
// on the newly expanded region. Grounded on the teacher's
// memoryEnergyCost (core/vm/energy_table.go), renamed to gas units.
func memoryGasCost(mem *Memory, newMemSize uint64) (uint64, error) {
	if newMemSize == 0 {
		return 0, nil
	}
	if newMemSize > 0x1FFFFFFFE0 {
		return 0, errGasUintOverflow
	}
	newMemSizeWords := toWordSize(newMemSize)
	newMemSize = newMemSizeWords * 32

	if newMemSize > uint64(mem.Len()) {
		square := newMemSizeWords * newMemSizeWords
		linCoef := newMemSizeWords * params.MemoryGas
		quadCoef := square / params.QuadCoeffDiv
		newTotalFee := linCoef + quadCoef

		fee := newTotalFee - mem.lastGasCost
		mem.lastGasCost = newTotalFee
		return fee, nil
	}
	return 0, nil
}

func gasMemoryExpansionOnly(ctx *ExecutionContext, memorySize uint64) (uint64, error) {
	return memoryGasCost(ctx.memory, memorySize)
}

// --- memorySize funcs ---

func memoryMload(stack *Stack) (uint64, bool)   { return memSizeOffsetLen(stack.Back(0), thirtyTwo) }
func memoryMstore(stack *Stack) (uint64, bool)  { return memSizeOffsetLen(stack.Back(0), thirtyTwo) }
func memoryMstore8(stack *Stack) (uint64, bool) { return memSizeOffsetLen(stack.Back(0), one) }
func memoryReturn(stack *Stack) (uint64, bool)  { return memSize(stack.Back(0), stack.Back(1)) }
func memorySha3(stack *Stack) (uint64, bool)    { return memSize(stack.Back(0), stack.Back(1)) }
func memoryLog(stack *Stack) (uint64, bool)     { return memSize(stack.Back(0), stack.Back(1)) }

var one = new(Word).SetUint64(1)
var thirtyTwo = new(Word).SetUint64(32)

func memSizeOffsetLen(offset, length *Word) (uint64, bool) {
	if !offset.IsUint64() {
		return 0, true
	}
	return safeAdd(offset.Uint64(), length.Uint64())
}

// memoryCopy builds a memorySizeFunc for the *COPY family: destOffset
// and size live at the given stack depths (spec.md §4.8's CALLDATACOPY/
// CODECOPY/RETURNDATACOPY at (0,2), EXTCODECOPY at (1,3)).
func memoryCopy(destPos, sizePos int) memorySizeFunc {
	return func(stack *Stack) (uint64, bool) {
		return memSize(stack.Back(destPos), stack.Back(sizePos))
	}
}

func memoryCreate(stack *Stack) (uint64, bool) {
	return memSize(stack.Back(1), stack.Back(2))
}

func memoryMcopy(stack *Stack) (uint64, bool) {
	dst, src, length := stack.Back(0), stack.Back(1), stack.Back(2)
	a, aOverflow := memSize(dst, length)
	b, bOverflow := memSize(src, length)
	if aOverflow || bOverflow {
		return 0, true
	}
	if b > a {
		return b, false
	}
	return a, false
}

func memoryCall(stack *Stack) (uint64, bool) {
	a, aOverflow := memSize(stack.Back(3), stack.Back(4))
	b, bOverflow := memSize(stack.Back(5), stack.Back(6))
	if aOverflow || bOverflow {
		return 0, true
	}
	if b > a {
		return b, false
	}
	return a, false
}

func memoryDelegateStaticCall(stack *Stack) (uint64, bool) {
	a, aOverflow := memSize(stack.Back(2), stack.Back(3))
	b, bOverflow := memSize(stack.Back(4), stack.Back(5))
	if aOverflow || bOverflow {
		return 0, true
	}
	if b > a {
		return b, false
	}
	return a, false
}

// --- dynamic gas funcs ---

func gasExp(ctx *ExecutionContext, memorySize uint64) (uint64, error) {
	exponent := ctx.stack.Back(1)
	expByteLen := uint64((exponent.BitLen() + 7) / 8)
	// The flat ExpGas is the opcode's static gas; only the per-byte part
	// is dynamic.
	return expByteLen * params.ExpByteGas, nil
}

func gasSha3(ctx *ExecutionContext, memorySize uint64) (uint64, error) {
	gas, err := memoryGasCost(ctx.memory, memorySize)
	if err != nil {
		return 0, err
	}
	wordGas, overflow := ctx.stack.Back(1).Uint64WithOverflow()
	if overflow {
		return 0, errGasUintOverflow
	}
	if wordGas, overflow = safeMul(toWordSize(wordGas), params.Sha3WordGas); overflow {
		return 0, errGasUintOverflow
	}
	if gas, overflow = safeAdd(gas, wordGas); overflow {
		return 0, errGasUintOverflow
	}
	return gas, nil
}

func gasMemoryCopy(stackPos int) dynamicGasFunc {
	return func(ctx *ExecutionContext, memorySize uint64) (uint64, error) {
		gas, err := memoryGasCost(ctx.memory, memorySize)
		if err != nil {
			return 0, err
		}
		words, overflow := ctx.stack.Back(stackPos).Uint64WithOverflow()
		if overflow {
			return 0, errGasUintOverflow
		}
		if words, overflow = safeMul(toWordSize(words), params.CopyGas); overflow {
			return 0, errGasUintOverflow
		}
		if gas, overflow = safeAdd(gas, words); overflow {
			return 0, errGasUintOverflow
		}
		return gas, nil
	}
}

func makeGasLog(n uint64) dynamicGasFunc {
	return func(ctx *ExecutionContext, memorySize uint64) (uint64, error) {
		requestedSize, overflow := ctx.stack.Back(1).Uint64WithOverflow()
		if overflow {
			return 0, errGasUintOverflow
		}
		// LogGas and the per-topic LogTopicGas are already the opcode's
		// static gas (LogGas*(n+1)); only memory and data bytes remain.
		gas, err := memoryGasCost(ctx.memory, memorySize)
		if err != nil {
			return 0, err
		}
		var dataGas uint64
		if dataGas, overflow = safeMul(requestedSize, params.LogDataGas); overflow {
			return 0, errGasUintOverflow
		}
		if gas, overflow = safeAdd(gas, dataGas); overflow {
			return 0, errGasUintOverflow
		}
		return gas, nil
	}
}

func gasMcopy(ctx *ExecutionContext, memorySize uint64) (uint64, error) {
	gas, err := memoryGasCost(ctx.memory, memorySize)
	if err != nil {
		return 0, err
	}
	words, overflow := ctx.stack.Back(2).Uint64WithOverflow()
	if overflow {
		return 0, errGasUintOverflow
	}
	if words, overflow = safeMul(toWordSize(words), params.CopyGas); overflow {
		return 0, errGasUintOverflow
	}
	if gas, overflow = safeAdd(gas, words); overflow {
		return 0, errGasUintOverflow
	}
	return gas, nil
}

// accessAccountGas implements the EIP-2929 (Berlin+) cold/warm surcharge:
// cold accesses pay the full cost up front, warm accesses pay only the
// flat warm-read cost; pre-Berlin revisions instead pay a flat
// revision-specific cost with no warm/cold distinction.
func accessAccountGas(ctx *ExecutionContext, addr Address) uint64 {
	if !ctx.revision.AtLeast(RevisionBerlin) {
		switch {
		case ctx.revision.AtLeast(RevisionIstanbul):
			return params.BalanceGasIstanbul
		case ctx.revision.AtLeast(RevisionTangerineWhistle):
			return params.BalanceGasTangerine
		default:
			return params.BalanceGasFrontier
		}
	}
	if ctx.host.AccessAccount(addr) == AccessWarm {
		return params.WarmStorageReadCostEIP2929
	}
	return params.ColdAccountAccessCostEIP2929
}

func gasBalance(ctx *ExecutionContext, memorySize uint64) (uint64, error) {
	addr := WordToAddress(ctx.stack.Back(0))
	return accessAccountGas(ctx, addr), nil
}

func gasExtCodeSize(ctx *ExecutionContext, memorySize uint64) (uint64, error) {
	addr := WordToAddress(ctx.stack.Back(0))
	if !ctx.revision.AtLeast(RevisionBerlin) {
		if ctx.revision.AtLeast(RevisionTangerineWhistle) {
			return params.ExtcodeSizeGasTangerine, nil
		}
		return params.ExtcodeSizeGasFrontier, nil
	}
	if ctx.host.AccessAccount(addr) == AccessWarm {
		return params.WarmStorageReadCostEIP2929, nil
	}
	return params.ColdAccountAccessCostEIP2929, nil
}

func gasExtCodeHash(ctx *ExecutionContext, memorySize uint64) (uint64, error) {
	addr := WordToAddress(ctx.stack.Back(0))
	if !ctx.revision.AtLeast(RevisionBerlin) {
		if ctx.revision.AtLeast(RevisionIstanbul) {
			return params.ExtcodeHashGasIstanbul, nil
		}
		return params.ExtcodeHashGasConstantinople, nil
	}
	if ctx.host.AccessAccount(addr) == AccessWarm {
		return params.WarmStorageReadCostEIP2929, nil
	}
	return params.ColdAccountAccessCostEIP2929, nil
}

func gasExtCodeCopy(ctx *ExecutionContext, memorySize uint64) (uint64, error) {
	gas, err := memoryGasCost(ctx.memory, memorySize)
	if err != nil {
		return 0, err
	}
	words, overflow := ctx.stack.Back(3).Uint64WithOverflow()
	if overflow {
		return 0, errGasUintOverflow
	}
	if words, overflow = safeMul(toWordSize(words), params.CopyGas); overflow {
		return 0, errGasUintOverflow
	}
	if gas, overflow = safeAdd(gas, words); overflow {
		return 0, errGasUintOverflow
	}
	addr := WordToAddress(ctx.stack.Back(0))
	var accessCost uint64
	if !ctx.revision.AtLeast(RevisionBerlin) {
		// EXTCODECOPY has no static gas; its pre-Berlin flat account
		// cost (same schedule as EXTCODESIZE) is charged here instead.
		if ctx.revision.AtLeast(RevisionTangerineWhistle) {
			accessCost = params.ExtcodeSizeGasTangerine
		} else {
			accessCost = params.ExtcodeSizeGasFrontier
		}
	} else if ctx.host.AccessAccount(addr) == AccessWarm {
		accessCost = params.WarmStorageReadCostEIP2929
	} else {
		accessCost = params.ColdAccountAccessCostEIP2929
	}
	if gas, overflow = safeAdd(gas, accessCost); overflow {
		return 0, errGasUintOverflow
	}
	return gas, nil
}

func gasSload(ctx *ExecutionContext, memorySize uint64) (uint64, error) {
	if !ctx.revision.AtLeast(RevisionBerlin) {
		switch {
		case ctx.revision.AtLeast(RevisionIstanbul):
			return params.SloadGasIstanbul, nil
		case ctx.revision.AtLeast(RevisionTangerineWhistle):
			return params.SloadGasTangerine, nil
		default:
			return params.SloadGasFrontier, nil
		}
	}
	addr := ctx.message.Recipient
	key := WordToHash(ctx.stack.Back(0))
	if ctx.host.AccessStorage(addr, key) == AccessWarm {
		return params.WarmStorageReadCostEIP2929, nil
	}
	return params.ColdSloadCostEIP2929, nil
}

// gasSstore implements the full net-metering history: the original
// Frontier flat rule, EIP-2200's sentry-gated net-metering (Istanbul,
// pre-Berlin), and the Berlin+/EIP-3529 combined access+transition
// schedule — selected by ctx.revision, grounded on the teacher's
// energySStore (core/vm/energy_table.go) generalized across revisions.
func gasSstore(ctx *ExecutionContext, memorySize uint64) (uint64, error) {
	addr := ctx.message.Recipient
	key := WordToHash(ctx.stack.Back(0))
	value := WordToHash(ctx.stack.Back(1))
	current := ctx.host.GetStorage(addr, key)

	if !ctx.revision.AtLeast(RevisionIstanbul) {
		var zero Hash
		if current == value {
			return params.SstoreCleanGasEIP2200, nil
		}
		if current == zero && value != zero {
			return params.SstoreInitGasEIP2200, nil
		}
		if current != zero && value == zero {
			ctx.gasRefund += int64(params.SstoreClearRefundEIP2200)
		}
		return params.SstoreCleanGasEIP2200, nil
	}

	if ctx.gas <= params.SstoreSentryGasEIP2200 {
		return 0, errors.New("vm: not enough gas for SSTORE reentrancy sentry")
	}

	var accessCost uint64
	noopGas, dirtyGas, cleanGas := params.SstoreNoopGasEIP2200, params.SstoreDirtyGasEIP2200, params.SstoreCleanGasEIP2200
	initRefund, cleanRefund := params.SstoreInitRefundEIP2200, params.SstoreCleanRefundEIP2200
	if ctx.revision.AtLeast(RevisionBerlin) {
		if ctx.host.AccessStorage(addr, key) == AccessCold {
			accessCost = params.ColdSloadCostEIP2929
		}
		noopGas, dirtyGas, cleanGas = params.WarmStorageReadCostEIP2929, params.WarmStorageReadCostEIP2929, params.SstoreResetGasBerlin
		initRefund = params.SstoreSetGasBerlin - params.WarmStorageReadCostEIP2929
		cleanRefund = params.SstoreResetGasBerlin - params.WarmStorageReadCostEIP2929
	}

	var zero Hash
	if current == value {
		return accessCost + noopGas, nil
	}
	original := ctx.host.GetCommittedStorage(addr, key)
	if original == current {
		if original == zero {
			return accessCost + params.SstoreInitGasEIP2200, nil
		}
		if value == zero {
			ctx.gasRefund += clearRefund(ctx.revision)
		}
		return accessCost + cleanGas, nil
	}
	if original != zero {
		if current == zero {
			ctx.gasRefund -= clearRefund(ctx.revision)
		} else if value == zero {
			ctx.gasRefund += clearRefund(ctx.revision)
		}
	}
	if original == value {
		if original == zero {
			ctx.gasRefund += int64(initRefund)
		} else {
			ctx.gasRefund += int64(cleanRefund)
		}
	}
	return accessCost + dirtyGas, nil
}

func clearRefund(rev Revision) int64 {
	if rev.AtLeast(RevisionLondon) {
		return int64(params.SstoreClearsScheduleBerlin)
	}
	return int64(params.SstoreClearsSchedulePreLondon)
}

func gasCreate(ctx *ExecutionContext, memorySize uint64) (uint64, error) {
	gas, err := memoryGasCost(ctx.memory, memorySize)
	if err != nil {
		return 0, err
	}
	if ctx.revision.AtLeast(RevisionShanghai) {
		size, overflow := ctx.stack.Back(2).Uint64WithOverflow()
		if overflow {
			return 0, errGasUintOverflow
		}
		if size > params.MaxInitCodeSize {
			return 0, errInitCodeSizeExceeded
		}
		words, overflow := safeMul(toWordSize(size), 2)
		if overflow {
			return 0, errGasUintOverflow
		}
		if gas, overflow = safeAdd(gas, words); overflow {
			return 0, errGasUintOverflow
		}
	}
	return gas, nil
}

var errInitCodeSizeExceeded = errors.New("vm: init code size exceeds limit")

func gasCreate2(ctx *ExecutionContext, memorySize uint64) (uint64, error) {
	gas, err := gasCreate(ctx, memorySize)
	if err != nil {
		return 0, err
	}
	words, overflow := ctx.stack.Back(2).Uint64WithOverflow()
	if overflow {
		return 0, errGasUintOverflow
	}
	if words, overflow = safeMul(toWordSize(words), params.Sha3WordGas); overflow {
		return 0, errGasUintOverflow
	}
	if gas, overflow = safeAdd(gas, words); overflow {
		return 0, errGasUintOverflow
	}
	return gas, nil
}

// callGas63rd applies the 63/64 forwarding rule (EIP-150): at most
// available-base gas, minus 1/64th held back, is offered to a nested
// call, capped by the amount the opcode itself requested.
func callGas63rd(availableGas, base uint64, requested *Word) uint64 {
	if availableGas < base {
		return 0
	}
	availableGas -= base
	capped := availableGas - availableGas/64
	if !requested.IsUint64() || capped < requested.Uint64() {
		return capped
	}
	return requested.Uint64()
}

func gasCall(ctx *ExecutionContext, memorySize uint64) (uint64, error) {
	var gas uint64
	addr := WordToAddress(ctx.stack.Back(1))
	transfersValue := !ctx.stack.Back(2).IsZero()

	if transfersValue && !ctx.host.AccountExists(addr) {
		gas += params.CallNewAccountGas
	}
	if transfersValue {
		gas += params.CallValueTransferGas
	}
	gas += accessAccountGas(ctx, addr)

	memGas, err := memoryGasCost(ctx.memory, memorySize)
	if err != nil {
		return 0, err
	}
	var overflow bool
	if gas, overflow = safeAdd(gas, memGas); overflow {
		return 0, errGasUintOverflow
	}
	ctx.callGasTemp = callGas63rd(ctx.gas, gas, ctx.stack.Back(0))
	if gas, overflow = safeAdd(gas, ctx.callGasTemp); overflow {
		return 0, errGasUintOverflow
	}
	return gas, nil
}

func gasCallCode(ctx *ExecutionContext, memorySize uint64) (uint64, error) {
	memGas, err := memoryGasCost(ctx.memory, memorySize)
	if err != nil {
		return 0, err
	}
	var gas uint64
	if !ctx.stack.Back(2).IsZero() {
		gas = params.CallValueTransferGas
	}
	addr := WordToAddress(ctx.stack.Back(1))
	gas += accessAccountGas(ctx, addr)
	var overflow bool
	if gas, overflow = safeAdd(gas, memGas); overflow {
		return 0, errGasUintOverflow
	}
	ctx.callGasTemp = callGas63rd(ctx.gas, gas, ctx.stack.Back(0))
	if gas, overflow = safeAdd(gas, ctx.callGasTemp); overflow {
		return 0, errGasUintOverflow
	}
	return gas, nil
}

func gasDelegateCall(ctx *ExecutionContext, memorySize uint64) (uint64, error) {
	gas, err := memoryGasCost(ctx.memory, memorySize)
	if err != nil {
		return 0, err
	}
	addr := WordToAddress(ctx.stack.Back(1))
	gas += accessAccountGas(ctx, addr)
	ctx.callGasTemp = callGas63rd(ctx.gas, gas, ctx.stack.Back(0))
	var overflow bool
	if gas, overflow = safeAdd(gas, ctx.callGasTemp); overflow {
		return 0, errGasUintOverflow
	}
	return gas, nil
}

func gasStaticCall(ctx *ExecutionContext, memorySize uint64) (uint64, error) {
	gas, err := memoryGasCost(ctx.memory, memorySize)
	if err != nil {
		return 0, err
	}
	addr := WordToAddress(ctx.stack.Back(1))
	gas += accessAccountGas(ctx, addr)
	ctx.callGasTemp = callGas63rd(ctx.gas, gas, ctx.stack.Back(0))
	var overflow bool
	if gas, overflow = safeAdd(gas, ctx.callGasTemp); overflow {
		return 0, errGasUintOverflow
	}
	return gas, nil
}

func gasSelfdestruct(ctx *ExecutionContext, memorySize uint64) (uint64, error) {
	var gas uint64
	beneficiary := WordToAddress(ctx.stack.Back(0))

	if ctx.revision.AtLeast(RevisionTangerineWhistle) {
		gas = params.SelfdestructGasTangerine
		if ctx.revision.AtLeast(RevisionSpuriousDragon) {
			if !ctx.host.AccountExists(beneficiary) && ctx.host.GetBalance(ctx.message.Recipient).Sign() != 0 {
				gas += params.CreateBySelfdestructGas
			}
		} else if !ctx.host.AccountExists(beneficiary) {
			gas += params.CreateBySelfdestructGas
		}
	}
	if ctx.revision.AtLeast(RevisionBerlin) && ctx.host.AccessAccount(beneficiary) == AccessCold {
		gas += params.ColdAccountAccessCostEIP2929
	}
	return gas, nil
}

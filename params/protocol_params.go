// Copyright 2024 The go-evmzero Authors
// This file is part of the go-evmzero library.
//
// The go-evmzero library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package params holds the interpreter's gas-schedule constants,
// adapted from the teacher's params/protocol_params.go (there named in
// "Energy" units; this package keeps the teacher's naming convention
// but in "Gas" units, the term spec.md and the wider EVM ecosystem use).
package params

const (
	QuadCoeffDiv uint64 = 512 // Divisor for the quadratic particle of the memory cost equation.
	MemoryGas    uint64 = 3   // Times the new highest referenced memory word.
	CopyGas      uint64 = 3   // Per word copied by any *COPY operation.

	GasQuickStep   uint64 = 2
	GasFastestStep uint64 = 3
	GasFastStep    uint64 = 5
	GasMidStep     uint64 = 8
	GasSlowStep    uint64 = 10
	GasExtStep     uint64 = 20

	Sha3Gas     uint64 = 30 // Once per SHA3 operation.
	Sha3WordGas uint64 = 6  // Once per word of the SHA3 operation's data.

	LogGas      uint64 = 375 // Per LOG* operation.
	LogTopicGas uint64 = 375 // Per topic of a LOG* operation.
	LogDataGas  uint64 = 8   // Per byte in a LOG* operation's data.

	JumpdestGas uint64 = 1 // Once per JUMPDEST operation.

	ExpGas     uint64 = 10 // Once per EXP instruction.
	ExpByteGas uint64 = 50 // Times ceil(log256(exponent)), post-Spurious-Dragon.

	CreateGas  uint64 = 32000
	Create2Gas uint64 = 32000

	CallStipend             uint64 = 2300  // Free gas given at the start of a value-carrying CALL.
	CallValueTransferGas    uint64 = 9000  // Paid for CALL/CALLCODE when the value transfer is non-zero.
	CallNewAccountGas       uint64 = 25000 // Paid for CALL when the destination didn't exist and value != 0.
	SelfdestructRefundGas   uint64 = 24000 // Pre-London refund for a first selfdestruct.
	CreateBySelfdestructGas uint64 = 25000

	CallCreateDepth uint64 = 1024 // Maximum depth of the call/create stack.
	StackLimit      uint64 = 1024 // Maximum size of the VM stack allowed.
	MaxCodeSize     uint64 = 24576
	MaxInitCodeSize uint64 = 2 * MaxCodeSize // EIP-3860 (Shanghai).

	// EIP-2929 (Berlin) cold/warm access surcharges.
	ColdAccountAccessCostEIP2929 uint64 = 2600
	WarmStorageReadCostEIP2929   uint64 = 100
	ColdSloadCostEIP2929         uint64 = 2100

	// Pre-Berlin flat access costs, superseded by the table above.
	BalanceGasFrontier           uint64 = 20
	BalanceGasTangerine          uint64 = 400
	BalanceGasIstanbul           uint64 = 700
	ExtcodeSizeGasFrontier       uint64 = 20
	ExtcodeSizeGasTangerine      uint64 = 700
	ExtcodeHashGasConstantinople uint64 = 400
	ExtcodeHashGasIstanbul       uint64 = 700
	SloadGasFrontier             uint64 = 50
	SloadGasTangerine            uint64 = 200
	SloadGasIstanbul             uint64 = 800
	CallGasFrontier              uint64 = 40
	CallGasTangerine             uint64 = 700
	SelfdestructGasTangerine     uint64 = 5000

	// EIP-2200 (Istanbul) net-metered SSTORE, pre-Berlin.
	SstoreSentryGasEIP2200   uint64 = 2300
	SstoreNoopGasEIP2200     uint64 = 800
	SstoreDirtyGasEIP2200    uint64 = 800
	SstoreInitGasEIP2200     uint64 = 20000
	SstoreInitRefundEIP2200  uint64 = 19200
	SstoreCleanGasEIP2200    uint64 = 5000
	SstoreCleanRefundEIP2200 uint64 = 4200
	SstoreClearRefundEIP2200 uint64 = 15000

	// EIP-2200/2929 (Berlin+) combined SSTORE schedule (spec.md §4.8).
	SstoreSetGasBerlin            uint64 = 20000
	SstoreResetGasBerlin          uint64 = 2900
	SstoreClearsScheduleBerlin    uint64 = 4800 // post-London clearing refund.
	SstoreClearsSchedulePreLondon uint64 = 15000
)

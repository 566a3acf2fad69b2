// Copyright 2024 The go-evmzero Authors
// This file is part of the go-evmzero library.
//
// The go-evmzero library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package vm

// StorageStatus reports how an SSTORE changed a storage slot, in the
// EIP-2200/EIP-1283 taxonomy. The interpreter does not consume it:
// gasSstore derives the transition from GetStorage and
// GetCommittedStorage, and opSstore discards SetStorage's result.
type StorageStatus int

const (
	StorageAssigned StorageStatus = iota
	StorageAdded
	StorageModified
	StorageDeleted
	StorageDeletedAdded
	StorageModifiedDeleted
	StorageDeletedRestored
	StorageAddedDeleted
	StorageModifiedRestored
)

// AccessStatus reports whether an account or storage slot had already
// been touched earlier in the same transaction (EIP-2929).
type AccessStatus int

const (
	AccessCold AccessStatus = iota
	AccessWarm
)

// CallKind selects the semantics of a Host.Call — which call/create-
// family opcode triggered it. STATICCALL has no kind of its own: it is
// reported as CallKindCall with Message.Static set.
type CallKind int

const (
	CallKindCall CallKind = iota
	CallKindCallCode
	CallKindDelegateCall
	CallKindCreate
	CallKindCreate2
)

// TxContext bundles the block- and transaction-scoped values the
// environment/block opcodes read, so the Host need not expose a
// separate accessor per field.
type TxContext struct {
	Origin      Address
	GasPrice    *Word
	Coinbase    Address
	BlockNumber uint64
	Timestamp   uint64
	GasLimit    uint64
	PrevRandao  Hash
	ChainID     *Word
	BaseFee     *Word
	BlobBaseFee *Word
}

// Message describes the call being interpreted — the inputs a fresh
// ExecutionContext is built from (spec.md §4.1, §6).
type Message struct {
	Kind      CallKind
	Static    bool
	Depth     int
	Gas       uint64
	Recipient Address
	Sender    Address
	Value     *Word
	Input     []byte
	// CodeAddress is the account whose code is executing; differs from
	// Recipient for DELEGATECALL/CALLCODE.
	CodeAddress Address
	Salt        *Word // CREATE2 only
}

// CallResult is what a nested Host.Call returns to the opcode that
// triggered it.
type CallResult struct {
	StatusCode    StatusCode
	GasLeft       uint64
	GasRefund     int64
	Output        []byte
	CreateAddress Address
}

// Host is the capability boundary spec.md §6 draws between the
// interpreter and account/storage/state-tree concerns: every opcode
// that would otherwise need direct access to a state database instead
// goes through this interface. Grounded on the teacher's CVMInterface
// (core/vm/interface.go) and generalized into the evmc-style single
// entry point the wider EVM ecosystem (and original_source/) exposes.
type Host interface {
	AccountExists(addr Address) bool
	GetStorage(addr Address, key Hash) Hash
	// GetCommittedStorage returns the slot's value as of the start of
	// the current transaction, ignoring any dirty writes made since —
	// the "original" value EIP-2200 net-metering compares against.
	GetCommittedStorage(addr Address, key Hash) Hash
	SetStorage(addr Address, key Hash, value Hash) StorageStatus
	GetBalance(addr Address) *Word
	GetCodeSize(addr Address) int
	GetCodeHash(addr Address) Hash
	CopyCode(addr Address, codeOffset uint64, bufferSize uint64) []byte
	// Selfdestruct schedules addr's balance to move to beneficiary and
	// the account for removal at the end of the transaction. The bool
	// result reports whether this is the first SELFDESTRUCT for addr in
	// the current transaction — the refund is only earned once.
	Selfdestruct(addr Address, beneficiary Address) bool

	Call(msg *Message) CallResult

	GetTxContext() TxContext
	GetBlockHash(number uint64) Hash
	EmitLog(addr Address, topics []Hash, data []byte)

	AccessAccount(addr Address) AccessStatus
	AccessStorage(addr Address, key Hash) AccessStatus

	// GetTransientStorage/SetTransientStorage implement EIP-1153
	// (TLOAD/TSTORE); transient values live only for the lifetime of
	// the enclosing transaction and are never part of the committed
	// state tree.
	GetTransientStorage(addr Address, key Hash) Hash
	SetTransientStorage(addr Address, key Hash, value Hash)
}

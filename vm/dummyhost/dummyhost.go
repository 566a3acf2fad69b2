// Copyright 2024 The go-evmzero Authors
// This file is part of the go-evmzero library.
//
// The go-evmzero library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package dummyhost provides a minimal in-memory vm.Host used by tests
// that need a full Host rather than a hand-rolled stub per test case.
// Grounded on original_source's evmzero_dummy_host.h: an address-keyed
// account map, no real state-tree semantics, Call left for the caller
// to script via a hook.
package dummyhost

import (
	"github.com/core-coin/go-evmzero/vm"
)

// LogEntry records one EmitLog call against an account.
type LogEntry struct {
	Data   []byte
	Topics []vm.Hash
}

// Account is the dummy host's per-address record. Dead mirrors the C++
// original's bool: it flips true on the first SELFDESTRUCT, so the
// Host can report whether a later one is redundant.
type Account struct {
	Dead      bool
	Balance   *vm.Word
	Code      []byte
	Storage   map[vm.Hash]vm.Hash
	Transient map[vm.Hash]vm.Hash
	Logs      []LogEntry

	AccessedAccount bool
	AccessedKeys    map[vm.Hash]bool
}

func newAccount() *Account {
	return &Account{
		Balance:      new(vm.Word),
		Storage:      make(map[vm.Hash]vm.Hash),
		Transient:    make(map[vm.Hash]vm.Hash),
		AccessedKeys: make(map[vm.Hash]bool),
	}
}

// CallHook lets a test script Host.Call's outcome for a given message
// without writing a full Host implementation of its own. The zero value
// reports StatusFailure for every call, matching the C++ original's
// "TODO" stub.
type CallHook func(msg *vm.Message) vm.CallResult

// Host is a minimal in-memory vm.Host. The zero value has nil maps and
// panics on the first write; call NewHost to get one with its maps
// initialized.
type Host struct {
	accounts    map[vm.Address]*Account
	tx          vm.TxContext
	blockHashes map[uint64]vm.Hash

	OnCall CallHook
}

// NewHost returns an empty Host ready for use.
func NewHost() *Host {
	return &Host{
		accounts:    make(map[vm.Address]*Account),
		blockHashes: make(map[uint64]vm.Hash),
	}
}

// Account returns addr's record, creating it on first touch — tests set
// up fixtures by mutating the returned Account directly.
func (h *Host) Account(addr vm.Address) *Account {
	a, ok := h.accounts[addr]
	if !ok {
		a = newAccount()
		h.accounts[addr] = a
	}
	return a
}

// SetTxContext installs the TxContext GetTxContext returns.
func (h *Host) SetTxContext(tx vm.TxContext) { h.tx = tx }

// SetBlockHash records the hash returned for a given block number.
func (h *Host) SetBlockHash(number uint64, hash vm.Hash) { h.blockHashes[number] = hash }

func (h *Host) account(addr vm.Address) (*Account, bool) {
	a, ok := h.accounts[addr]
	return a, ok
}

func (h *Host) AccountExists(addr vm.Address) bool {
	_, ok := h.account(addr)
	return ok
}

func (h *Host) GetStorage(addr vm.Address, key vm.Hash) vm.Hash {
	if a, ok := h.account(addr); ok {
		return a.Storage[key]
	}
	return vm.Hash{}
}

// GetCommittedStorage has no separate journal in this dummy host, so it
// reports the same live value GetStorage does: the EIP-2200
// original/current distinction is not modelled, and SetStorage always
// reports StorageAssigned.
func (h *Host) GetCommittedStorage(addr vm.Address, key vm.Hash) vm.Hash {
	return h.GetStorage(addr, key)
}

func (h *Host) SetStorage(addr vm.Address, key vm.Hash, value vm.Hash) vm.StorageStatus {
	a := h.Account(addr)
	a.Storage[key] = value
	return vm.StorageAssigned
}

func (h *Host) GetBalance(addr vm.Address) *vm.Word {
	if a, ok := h.account(addr); ok {
		return new(vm.Word).Set(a.Balance)
	}
	return new(vm.Word)
}

func (h *Host) GetCodeSize(addr vm.Address) int {
	if a, ok := h.account(addr); ok {
		return len(a.Code)
	}
	return 0
}

// GetCodeHash has no code-hashing story of its own in the dummy host —
// the analysis cache that would key off it is the caller's concern, not
// the state backend's.
func (h *Host) GetCodeHash(addr vm.Address) vm.Hash {
	return vm.Hash{}
}

func (h *Host) CopyCode(addr vm.Address, codeOffset uint64, bufferSize uint64) []byte {
	a, ok := h.account(addr)
	if !ok || codeOffset >= uint64(len(a.Code)) {
		return nil
	}
	end := codeOffset + bufferSize
	if end > uint64(len(a.Code)) {
		end = uint64(len(a.Code))
	}
	out := make([]byte, end-codeOffset)
	copy(out, a.Code[codeOffset:end])
	return out
}

func (h *Host) Selfdestruct(addr vm.Address, beneficiary vm.Address) bool {
	a, ok := h.account(addr)
	if !ok {
		return false
	}
	if b, ok := h.account(beneficiary); ok && beneficiary != addr {
		b.Balance = new(vm.Word).Add(b.Balance, a.Balance)
	}
	a.Balance = new(vm.Word)
	wasAlive := !a.Dead
	a.Dead = true
	return wasAlive
}

func (h *Host) Call(msg *vm.Message) vm.CallResult {
	if h.OnCall != nil {
		return h.OnCall(msg)
	}
	return vm.CallResult{StatusCode: vm.StatusFailure}
}

func (h *Host) GetTxContext() vm.TxContext { return h.tx }

func (h *Host) GetBlockHash(number uint64) vm.Hash { return h.blockHashes[number] }

func (h *Host) EmitLog(addr vm.Address, topics []vm.Hash, data []byte) {
	a := h.Account(addr)
	a.Logs = append(a.Logs, LogEntry{Data: append([]byte(nil), data...), Topics: append([]vm.Hash(nil), topics...)})
}

// AccessAccount reports warm on every call after the first, marking
// addr touched as a side effect — EIP-2929 access-list semantics
// flattened onto a single boolean per account since this host has no
// per-transaction journal to reset against.
func (h *Host) AccessAccount(addr vm.Address) vm.AccessStatus {
	a := h.Account(addr)
	if a.AccessedAccount {
		return vm.AccessWarm
	}
	a.AccessedAccount = true
	return vm.AccessCold
}

func (h *Host) AccessStorage(addr vm.Address, key vm.Hash) vm.AccessStatus {
	a := h.Account(addr)
	if a.AccessedKeys[key] {
		return vm.AccessWarm
	}
	a.AccessedKeys[key] = true
	return vm.AccessCold
}

func (h *Host) GetTransientStorage(addr vm.Address, key vm.Hash) vm.Hash {
	if a, ok := h.account(addr); ok {
		return a.Transient[key]
	}
	return vm.Hash{}
}

func (h *Host) SetTransientStorage(addr vm.Address, key vm.Hash, value vm.Hash) {
	h.Account(addr).Transient[key] = value
}

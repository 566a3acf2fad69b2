// Copyright 2024 The go-evmzero Authors
// This file is part of the go-evmzero library.
//
// The go-evmzero library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package vm

import "github.com/holiman/uint256"

// Word is a 256-bit unsigned integer, the interpreter's only value type.
// Byte layout on the wire is big-endian; the internal representation
// (four little-endian uint64 limbs, courtesy of uint256.Int) is free to
// differ as long as byte-at-index semantics are preserved for BYTE,
// SIGNEXTEND, MLOAD, MSTORE, SHA3 and push decoding.
type Word = uint256.Int

// Address is a 20-byte account identifier, big-endian on the wire.
type Address [20]byte

// Hash is a 32-byte digest, big-endian on the wire.
type Hash [32]byte

// Bytes returns the big-endian byte representation.
func (a Address) Bytes() []byte { return a[:] }

// Bytes returns the big-endian byte representation.
func (h Hash) Bytes() []byte { return h[:] }

// BytesToAddress right-aligns b into a 20-byte Address, truncating from
// the left if b is longer.
func BytesToAddress(b []byte) (a Address) {
	if len(b) > len(a) {
		b = b[len(b)-len(a):]
	}
	copy(a[len(a)-len(b):], b)
	return a
}

// BytesToHash right-aligns b into a 32-byte Hash, truncating from the
// left if b is longer.
func BytesToHash(b []byte) (h Hash) {
	if len(b) > len(h) {
		b = b[len(b)-len(h):]
	}
	copy(h[len(h)-len(b):], b)
	return h
}

// WordToAddress extracts the low 20 bytes of a word, the convention used
// by CALL/CREATE/EXTCODE* operands.
func WordToAddress(w *Word) Address {
	b := w.Bytes32()
	return BytesToAddress(b[:])
}

// AddressToWord left-pads an address into a word.
func AddressToWord(a Address) *Word {
	return new(Word).SetBytes(a[:])
}

// HashToWord reinterprets a 32-byte hash as a word, preserving byte order.
func HashToWord(h Hash) *Word {
	return new(Word).SetBytes(h[:])
}

// WordToHash renders a word as a 32-byte big-endian hash.
func WordToHash(w *Word) Hash {
	return Hash(w.Bytes32())
}

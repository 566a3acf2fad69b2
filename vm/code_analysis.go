// Copyright 2024 The go-evmzero Authors
// This file is part of the go-evmzero library.
//
// The go-evmzero library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package vm

// codePadding is the number of trailing STOP bytes appended to every
// PaddedCode buffer, wide enough that the dispatch loop can always read
// a full PUSH32 operand at the very end of the original code without a
// bounds check.
const codePadding = 33

// PaddedCode is the original bytecode followed by codePadding STOP
// bytes (0x00). pc in [0, len(original)] is always safe to index into
// even for the longest PUSH32 spanning the tail.
type PaddedCode []byte

// newPaddedCode copies code and appends the STOP padding.
func newPaddedCode(code []byte) PaddedCode {
	padded := make([]byte, len(code)+codePadding)
	copy(padded, code)
	return PaddedCode(padded)
}

// JumpTargetMask has one bit per byte of the original (unpadded)
// bytecode; bit i is set iff offset i holds a JUMPDEST that is not
// itself immediate data of a PUSH1..PUSH32.
type JumpTargetMask []uint64

func newJumpTargetMask(n int) JumpTargetMask {
	return make(JumpTargetMask, (n+63)/64)
}

func (m JumpTargetMask) set(i int) {
	m[i/64] |= 1 << uint(i%64)
}

// isSet reports whether offset i is a valid jump target. Offsets at or
// beyond the original code length are never valid (the padding bytes
// are never marked).
func (m JumpTargetMask) isSet(i uint64) bool {
	word := i / 64
	if int(word) >= len(m) {
		return false
	}
	return m[word]&(1<<(i%64)) != 0
}

// analyzeJumpDests performs the linear scan of spec.md §4.3: walk the
// bytecode, skip PUSH1..PUSH32 immediate-data regions, and mark every
// remaining JUMPDEST byte.
func analyzeJumpDests(code []byte) JumpTargetMask {
	mask := newJumpTargetMask(len(code))
	for i := 0; i < len(code); {
		op := OpCode(code[i])
		if op >= PUSH1 && op <= PUSH32 {
			i += 1 + int(op-PUSH1) + 1
			continue
		}
		if op == JUMPDEST {
			mask.set(i)
		}
		i++
	}
	return mask
}

// validJumpDest reports whether dest lies within the original code and
// is marked as a JUMPDEST by the mask — the single source of truth the
// dispatch loop consults for JUMP/JUMPI (spec.md §4.3, §4.8).
func validJumpDest(codeLen int, mask JumpTargetMask, dest uint64) bool {
	if dest >= uint64(codeLen) {
		return false
	}
	return mask.isSet(dest)
}

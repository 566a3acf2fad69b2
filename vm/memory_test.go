// Copyright 2024 The go-evmzero Authors
// This file is part of the go-evmzero library.
//
// The go-evmzero library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package vm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryGrowIsWordAligned(t *testing.T) {
	m := NewMemory()
	m.grow(1, 1)
	require.Equal(t, 32, m.Len())

	m.grow(33, 1)
	require.Equal(t, 64, m.Len())
}

func TestMemoryGrowNeverShrinks(t *testing.T) {
	m := NewMemory()
	m.grow(0, 64)
	require.Equal(t, 64, m.Len())

	m.grow(0, 1)
	require.Equal(t, 64, m.Len())
}

func TestMemoryReadFromSizedPadsWithZero(t *testing.T) {
	m := NewMemory()
	m.readFromSized([]byte{1, 2, 3}, 0, 8)
	require.Equal(t, []byte{1, 2, 3, 0, 0, 0, 0, 0}, m.store[:8])
}

func TestMemoryWriteToReadsBackWhatWasGrown(t *testing.T) {
	m := NewMemory()
	m.readFrom([]byte{0xAA, 0xBB, 0xCC}, 2)

	out := m.writeTo(0, 6)
	require.Equal(t, []byte{0, 0, 0xAA, 0xBB, 0xCC, 0}, out)
}

func TestMemoryCopyWithinOverlapping(t *testing.T) {
	m := NewMemory()
	m.readFrom([]byte{1, 2, 3, 4, 5}, 0)

	// MCOPY-style forward overlap: dst starts one byte into src's range.
	m.copyWithin(1, 0, 4)
	require.Equal(t, []byte{1, 1, 2, 3, 4}, m.store[:5])
}

func TestMemoryGetSetByte(t *testing.T) {
	m := NewMemory()
	m.grow(0, 32)
	m.setByte(5, 0x42)
	require.Equal(t, byte(0x42), m.getByte(5))
}

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

func TestStackPushPop(t *testing.T) {
	s := newStack()
	defer returnStack(s)

	require.NoError(t, s.push(new(Word).SetUint64(1)))
	require.NoError(t, s.push(new(Word).SetUint64(2)))
	require.Equal(t, 2, s.len())

	top, err := s.pop()
	require.NoError(t, err)
	require.Equal(t, uint64(2), top.Uint64())

	bottom, err := s.pop()
	require.NoError(t, err)
	require.Equal(t, uint64(1), bottom.Uint64())
	require.Equal(t, 0, s.len())
}

func TestStackPopUnderflow(t *testing.T) {
	s := newStack()
	defer returnStack(s)

	_, err := s.pop()
	require.Equal(t, errStackUnderflow, err)
}

func TestStackPushOverflow(t *testing.T) {
	s := newStack()
	defer returnStack(s)

	for i := 0; i < stackLimit; i++ {
		require.NoError(t, s.push(new(Word).SetUint64(uint64(i))))
	}
	require.Equal(t, errStackOverflow, s.push(new(Word)))
}

func TestStackSwap(t *testing.T) {
	s := newStack()
	defer returnStack(s)

	require.NoError(t, s.push(new(Word).SetUint64(1)))
	require.NoError(t, s.push(new(Word).SetUint64(2)))
	require.NoError(t, s.push(new(Word).SetUint64(3)))

	s.swap(2) // exchange top with depth-2 entry
	require.Equal(t, uint64(1), s.Back(0).Uint64())
	require.Equal(t, uint64(2), s.Back(1).Uint64())
	require.Equal(t, uint64(3), s.Back(2).Uint64())
}

func TestStackDup(t *testing.T) {
	s := newStack()
	defer returnStack(s)

	require.NoError(t, s.push(new(Word).SetUint64(7)))
	require.NoError(t, s.push(new(Word).SetUint64(9)))

	require.NoError(t, s.dup(2))
	require.Equal(t, 3, s.len())
	require.Equal(t, uint64(7), s.Back(0).Uint64())
}

func TestStackBackIsMutable(t *testing.T) {
	s := newStack()
	defer returnStack(s)

	require.NoError(t, s.push(new(Word).SetUint64(5)))
	s.Back(0).SetUint64(42)

	top, err := s.pop()
	require.NoError(t, err)
	require.Equal(t, uint64(42), top.Uint64())
}

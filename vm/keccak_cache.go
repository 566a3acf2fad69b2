// Copyright 2024 The go-evmzero Authors
// This file is part of the go-evmzero library.
//
// The go-evmzero library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package vm

import "golang.org/x/crypto/sha3"

// keccakBucketCapacity is the per-bucket LRU capacity (spec.md §4.5/§5).
const keccakBucketCapacity = 1024

// KeccakCache bucket-caches Keccak256 over the two input sizes SHA3 is
// overwhelmingly called with in practice — single words (32 bytes) and
// word pairs (64 bytes, e.g. mapping-slot hashing). Any other size
// bypasses the cache entirely.
type KeccakCache struct {
	bucket32 *lruCache[[32]byte, Hash]
	bucket64 *lruCache[[64]byte, Hash]
}

// NewKeccakCache returns a cache with the spec's fixed bucket capacities.
func NewKeccakCache() *KeccakCache {
	return &KeccakCache{
		bucket32: newLRUCache[[32]byte, Hash](keccakBucketCapacity),
		bucket64: newLRUCache[[64]byte, Hash](keccakBucketCapacity),
	}
}

// Hash returns Keccak256(data), consulting the appropriate bucket for
// 32- and 64-byte inputs.
func (c *KeccakCache) Hash(data []byte) Hash {
	if c == nil {
		return keccak256(data)
	}
	switch len(data) {
	case 32:
		var key [32]byte
		copy(key[:], data)
		if h, ok := c.bucket32.get(key); ok {
			return h
		}
		h := keccak256(data)
		c.bucket32.insertOrAssign(key, h)
		return h
	case 64:
		var key [64]byte
		copy(key[:], data)
		if h, ok := c.bucket64.get(key); ok {
			return h
		}
		h := keccak256(data)
		c.bucket64.insertOrAssign(key, h)
		return h
	default:
		return keccak256(data)
	}
}

// keccak256 is the bare primitive, consumed as an opaque external
// collaborator per spec.md §1.
func keccak256(data []byte) Hash {
	var out Hash
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	h.Sum(out[:0])
	return out
}

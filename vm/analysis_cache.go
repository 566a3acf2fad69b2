// Copyright 2024 The go-evmzero Authors
// This file is part of the go-evmzero library.
//
// The go-evmzero library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package vm

// analysisCacheCapacity bounds the number of distinct bytecodes whose
// analysis is kept resident (spec.md §3, §5).
const analysisCacheCapacity = 65536

// AnalysisCache maps a 32-byte code hash to its shared ContractInfo.
type AnalysisCache struct {
	cache *lruCache[Hash, *ContractInfo]
}

// NewAnalysisCache returns an empty cache at the spec's fixed capacity.
func NewAnalysisCache() *AnalysisCache {
	return &AnalysisCache{cache: newLRUCache[Hash, *ContractInfo](analysisCacheCapacity)}
}

var zeroHash Hash

// resolve returns the ContractInfo for (codeHash, code). A zero hash
// means the caller couldn't supply one (e.g. code observed off-chain);
// in that case, and whenever ac is nil, analysis is recomputed per call
// and never cached (spec.md §4.6).
func (ac *AnalysisCache) resolve(codeHash Hash, code []byte) *ContractInfo {
	if ac == nil || codeHash == zeroHash {
		return analyzeContract(code)
	}
	return ac.cache.getOrInsert(codeHash, func() *ContractInfo {
		return analyzeContract(code)
	})
}

// Len reports the current number of cached entries.
func (ac *AnalysisCache) Len() int {
	if ac == nil {
		return 0
	}
	return ac.cache.len()
}

// Clear empties the cache.
func (ac *AnalysisCache) Clear() {
	if ac == nil {
		return
	}
	ac.cache.clear()
}

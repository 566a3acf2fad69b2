// Copyright 2024 The go-evmzero Authors
// This file is part of the go-evmzero library.
//
// The go-evmzero library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package vm

// ContractInfo is the padded code plus its jump-target mask, immutable
// after construction and safely shared by reference between the
// analysis cache and any number of live ExecutionContexts.
type ContractInfo struct {
	Code PaddedCode
	Mask JumpTargetMask
	// Len is the original (unpadded) code length.
	Len int
}

// analyzeContract builds a fresh ContractInfo for code.
func analyzeContract(code []byte) *ContractInfo {
	return &ContractInfo{
		Code: newPaddedCode(code),
		Mask: analyzeJumpDests(code),
		Len:  len(code),
	}
}

// Copyright 2024 The go-evmzero Authors
// This file is part of the go-evmzero library.
//
// The go-evmzero library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package vm

// SetOption toggles one of the five boolean configuration names (spec.md
// §6), modeled on the teacher's vm.Config struct (core/vm/interpreter.go)
// but flattened to a key/value setter since every option here is a plain
// on/off switch.
func (v *VM) SetOption(name, value string) error {
	var enable bool
	switch value {
	case "true":
		enable = true
	case "false":
		enable = false
	default:
		return ErrInvalidOption
	}

	switch name {
	case "logging":
		if enable {
			if v.logger == nil {
				v.logger = NewLogger(nil)
			}
		} else {
			v.logger = nil
		}
	case "analysis_cache":
		if enable {
			if v.analysisCache == nil {
				v.analysisCache = NewAnalysisCache()
			}
		} else {
			v.analysisCache = nil
		}
	case "sha3_cache":
		if enable {
			if v.keccakCache == nil {
				v.keccakCache = NewKeccakCache()
			}
		} else {
			v.keccakCache = nil
		}
	case "profiling":
		if enable {
			v.profiler = NewProfiler(ProfileFull)
		} else if v.profiler != nil && v.profiler.mode == ProfileFull {
			v.profiler = nil
		}
	case "profiling_external":
		if enable {
			v.profiler = NewProfiler(ProfileExternal)
		} else if v.profiler != nil && v.profiler.mode == ProfileExternal {
			v.profiler = nil
		}
	default:
		return ErrUnknownOption
	}
	return nil
}

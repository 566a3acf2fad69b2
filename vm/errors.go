// Copyright 2024 The go-evmzero Authors
// This file is part of the go-evmzero library.
//
// The go-evmzero library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package vm

import "errors"

// Go-level errors that are not part of the per-run State taxonomy —
// these surface from configuration (VM.SetOption), not from a live
// dispatch loop.
var (
	ErrUnknownOption = errors.New("vm: unknown configuration option")
	ErrInvalidOption = errors.New("vm: invalid configuration value, want \"true\" or \"false\"")
)

// Internal sentinel errors a handler returns to signal the dispatch
// loop should terminate with a specific error State; the loop checks
// ctx.state first and falls back to mapping these only defensively.
var (
	errInvalidJump           = errors.New("vm: invalid jump destination")
	errReturnDataOutOfBounds = errors.New("vm: return data out of bounds")
	errWriteProtection       = errors.New("vm: write protection")
	errCallDepthExceeded     = errors.New("vm: call depth exceeded")
	errCreateDepthExceeded   = errors.New("vm: create depth exceeded")
)

// State is the terminal (or running) tag of an ExecutionContext. It is
// never represented as a Go error: the dispatch loop observes it and
// exits, the same way the teacher's operation.halts/reverts/jumps flags
// drive control flow without needing an error value for ordinary
// termination.
type State int

const (
	Running State = iota
	Done
	Return
	Revert
	Invalid
	ErrorOpcode
	ErrorGas
	ErrorStackUnderflow
	ErrorStackOverflow
	ErrorJump
	ErrorReturnDataCopyOOB
	ErrorCall
	ErrorCreate
	ErrorStaticCall
	ErrorInitCodeSizeExceeded
)

func (s State) String() string {
	switch s {
	case Running:
		return "Running"
	case Done:
		return "Done"
	case Return:
		return "Return"
	case Revert:
		return "Revert"
	case Invalid:
		return "Invalid"
	case ErrorOpcode:
		return "ErrorOpcode"
	case ErrorGas:
		return "ErrorGas"
	case ErrorStackUnderflow:
		return "ErrorStackUnderflow"
	case ErrorStackOverflow:
		return "ErrorStackOverflow"
	case ErrorJump:
		return "ErrorJump"
	case ErrorReturnDataCopyOOB:
		return "ErrorReturnDataCopyOOB"
	case ErrorCall:
		return "ErrorCall"
	case ErrorCreate:
		return "ErrorCreate"
	case ErrorStaticCall:
		return "ErrorStaticCall"
	case ErrorInitCodeSizeExceeded:
		return "ErrorInitCodeSizeExceeded"
	default:
		return "Unknown"
	}
}

// IsError reports whether s is an abnormal termination (not Running and
// not one of the three controlled-termination states).
func (s State) IsError() bool {
	switch s {
	case Running, Done, Return, Revert:
		return false
	default:
		return true
	}
}

// StatusCode is the terminal status surfaced to callers across the
// host boundary (spec.md §6), distinct from the internal State so that
// several internal error states can map to one external code.
type StatusCode int

const (
	StatusSuccess StatusCode = iota
	StatusRevert
	StatusInvalidInstruction
	StatusUndefinedInstruction
	StatusOutOfGas
	StatusStackUnderflow
	StatusStackOverflow
	StatusBadJumpDestination
	StatusInvalidMemoryAccess
	StatusCallDepthExceeded
	StatusFailure
	StatusStaticModeViolation
)

// statusFromState implements the §6 terminal-status mapping.
func statusFromState(s State) StatusCode {
	switch s {
	case Done, Return:
		return StatusSuccess
	case Revert:
		return StatusRevert
	case Invalid:
		return StatusInvalidInstruction
	case ErrorOpcode:
		return StatusUndefinedInstruction
	case ErrorGas:
		return StatusOutOfGas
	case ErrorStackUnderflow:
		return StatusStackUnderflow
	case ErrorStackOverflow:
		return StatusStackOverflow
	case ErrorJump:
		return StatusBadJumpDestination
	case ErrorReturnDataCopyOOB:
		return StatusInvalidMemoryAccess
	case ErrorCall:
		return StatusCallDepthExceeded
	case ErrorCreate, ErrorInitCodeSizeExceeded:
		return StatusFailure
	case ErrorStaticCall:
		return StatusStaticModeViolation
	default:
		return StatusFailure
	}
}

// Copyright 2024 The go-evmzero Authors
// This file is part of the go-evmzero library.
//
// The go-evmzero library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package vm

// VM owns the resources a run may share with its siblings: the analysis
// cache, the Keccak cache, and the observer selection (logging/
// profiling). It holds no per-run state — an *ExecutionContext is built
// fresh for every Execute/StepN call, the way the teacher's CVM is a
// long-lived object that spins up a fresh CVMInterpreter per call.
type VM struct {
	analysisCache *AnalysisCache
	keccakCache   *KeccakCache

	logger   *Logger
	profiler *Profiler
}

// NewVM returns a VM with the spec's defaults: analysis and Keccak
// caching on, logging and profiling off.
func NewVM() *VM {
	return &VM{
		analysisCache: NewAnalysisCache(),
		keccakCache:   NewKeccakCache(),
	}
}

// dualObserver fires both a Logger and a Profiler around the same run;
// used only when both happen to be enabled simultaneously, keeping the
// common single-or-none cases on their own zero-overhead instantiation
// of run (see observer.go).
type dualObserver struct {
	l *Logger
	p *Profiler
}

func (d dualObserver) PreRun(ctx *ExecutionContext) { d.l.PreRun(ctx); d.p.PreRun(ctx) }
func (d dualObserver) PreInstruction(ctx *ExecutionContext, pc uint64, op OpCode) {
	d.l.PreInstruction(ctx, pc, op)
	d.p.PreInstruction(ctx, pc, op)
}
func (d dualObserver) PostInstruction(ctx *ExecutionContext, pc uint64, op OpCode) {
	d.l.PostInstruction(ctx, pc, op)
	d.p.PostInstruction(ctx, pc, op)
}
func (d dualObserver) PostRun(ctx *ExecutionContext) { d.l.PostRun(ctx); d.p.PostRun(ctx) }

func (v *VM) dispatch(ctx *ExecutionContext, steps int) []byte {
	switch {
	case v.logger != nil && v.profiler != nil:
		return run(ctx, dualObserver{v.logger, v.profiler}, steps)
	case v.logger != nil:
		return run(ctx, v.logger, steps)
	case v.profiler != nil:
		return run(ctx, v.profiler, steps)
	default:
		return run(ctx, NullObserver{}, steps)
	}
}

// Execute runs code (identified by codeHash for analysis-cache purposes)
// against msg to completion and packs the result the way spec.md §4.10
// describes.
func (v *VM) Execute(code []byte, codeHash Hash, msg *Message, host Host, revision Revision) CallResult {
	info := v.analysisCache.resolve(codeHash, code)
	ctx := newExecutionContext(info, msg, host, revision, v.keccakCache)
	defer ctx.release()

	output := v.dispatch(ctx, -1)

	return CallResult{
		StatusCode: statusFromState(ctx.state),
		GasLeft:    ctx.gas,
		GasRefund:  ctx.gasRefund,
		Output:     output,
	}
}

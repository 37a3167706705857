// control.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file implements ThreadControl (spec §3/§5/§7): a shared run
// state, seed, worker count, and cooperative halt flag polled by the
// simulator and endgame solver. Grounded in the teacher's riddle.go
// (GenerateRiddle's context.WithTimeout-and-atomic-counter worker
// pool), generalized from a one-shot riddle search into a reusable,
// poll-based control object whose halt flag a caller may set at any
// time rather than only ever expiring on a fixed timeout.

package skrafl

import (
	"sync/atomic"
	"time"
)

// ControlStatus is the run state of a ThreadControl (spec §3).
type ControlStatus int32

const (
	StatusIdle ControlStatus = iota
	StatusStarted
	StatusHalted
	StatusFinished
)

// ThreadControl is the shared substrate the simulator and endgame
// solver poll for cancellation and report their run state through
// (spec §3: "status, number_of_threads, start_time, seed,
// halt_request_flag"). All fields are accessed from multiple workers
// concurrently and so are only ever touched through its methods.
type ThreadControl struct {
	status         int32 // ControlStatus, accessed atomically
	haltRequested  int32 // 0 or 1, accessed atomically
	numThreads     int
	seed           int64
	startTime      time.Time
	iterationCount int64 // shared atomic counter, spec §4.10's "iterations are atomically claimed"
}

// NewThreadControl builds a control object in the idle state for a run
// with the given worker count and deterministic seed.
func NewThreadControl(numThreads int, seed int64) *ThreadControl {
	if numThreads < 1 {
		numThreads = 1
	}
	return &ThreadControl{numThreads: numThreads, seed: seed}
}

// Start transitions the control object to started and records the
// start time, per spec §9's "reading the monotonic clock for the
// start-time in the control object" blocking point.
func (tc *ThreadControl) Start() {
	tc.startTime = time.Now()
	atomic.StoreInt32(&tc.haltRequested, 0)
	atomic.StoreInt32(&tc.status, int32(StatusStarted))
}

// Halt requests cooperative cancellation; workers observe this at
// their next iteration boundary (simulator) or node entry (endgame
// solver's outermost iterative-deepening loop), per spec §9.
func (tc *ThreadControl) Halt() {
	atomic.StoreInt32(&tc.haltRequested, 1)
	atomic.StoreInt32(&tc.status, int32(StatusHalted))
}

// HaltRequested reports whether a halt has been requested; this is the
// poll every worker performs at its cancellation point.
func (tc *ThreadControl) HaltRequested() bool {
	return atomic.LoadInt32(&tc.haltRequested) != 0
}

// Finish transitions the control object to finished, unless a halt was
// already observed (a halted run stays halted, not finished, so the
// caller can distinguish a clean finish from a cut-short one).
func (tc *ThreadControl) Finish() {
	if atomic.LoadInt32(&tc.status) == int32(StatusHalted) {
		return
	}
	atomic.StoreInt32(&tc.status, int32(StatusFinished))
}

// Reset returns the control object to idle, per spec §9's open-question
// resolution: "after a static-only call, the control object returns to
// idle."
func (tc *ThreadControl) Reset() {
	atomic.StoreInt32(&tc.haltRequested, 0)
	atomic.StoreInt32(&tc.status, int32(StatusIdle))
	atomic.StoreInt64(&tc.iterationCount, 0)
}

// Status returns the current run state.
func (tc *ThreadControl) Status() ControlStatus {
	return ControlStatus(atomic.LoadInt32(&tc.status))
}

// NumThreads returns the configured worker count.
func (tc *ThreadControl) NumThreads() int {
	return tc.numThreads
}

// Seed returns the run's deterministic base seed.
func (tc *ThreadControl) Seed() int64 {
	return tc.seed
}

// StartTime returns when Start was last called.
func (tc *ThreadControl) StartTime() time.Time {
	return tc.startTime
}

// NextIteration atomically claims the next iteration index (spec
// §4.10/§9: "iterations are atomically claimed", "iteration_count is a
// shared atomic counter"). The returned index is 0-based and unique
// across all callers.
func (tc *ThreadControl) NextIteration() int64 {
	return atomic.AddInt64(&tc.iterationCount, 1) - 1
}

// IterationCount returns the number of iterations claimed so far.
func (tc *ThreadControl) IterationCount() int64 {
	return atomic.LoadInt64(&tc.iterationCount)
}

// IterationSeed derives a deterministic per-iteration RNG seed from the
// control object's base seed and an iteration index, per spec §9:
// "seeding a per-iteration RNG deterministically as hash(seed,
// iteration_index) rather than per-thread" — this is what makes final
// rankings independent of how iterations happen to interleave across
// threads.
func (tc *ThreadControl) IterationSeed(iteration int64) int64 {
	return hashSeed(tc.seed, iteration)
}

// hashSeed combines two int64s into one via a SplMix64-style mix,
// giving well-distributed, deterministic per-iteration seeds.
func hashSeed(seed, iteration int64) int64 {
	x := uint64(seed) ^ (uint64(iteration)*0x9E3779B97F4A7C15 + 0x9E3779B97F4A7C15)
	x = (x ^ (x >> 30)) * 0xBF58476D1CE4E5B9
	x = (x ^ (x >> 27)) * 0x94D049BB133111EB
	x = x ^ (x >> 31)
	return int64(x)
}

// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package limiter

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/gammazero/workerpool"
)

// MaxLimit is the upper bound of concurrently running network operations.
const MaxLimit = 50

// perCPU is the number of concurrent network operations per available CPU.
const perCPU = 5

// ErrStopped is returned by [Limiter.Do] after the limiter has been stopped.
var ErrStopped = errors.New("limiter stopped")

// DynamicLimit returns the number of concurrent network operations for the
// specified parallelism: five per CPU, but never more than [MaxLimit] and never
// less than one.
func DynamicLimit(parallelism int) int {
	limit := parallelism * perCPU
	if limit > MaxLimit {
		return MaxLimit
	}
	if limit < 1 {
		return 1
	}
	return limit
}

// DefaultLimit returns the dynamic limit for the CPUs available to this
// process.
func DefaultLimit() int {
	return DynamicLimit(runtime.NumCPU())
}

// op states, see Limiter.Do.
const (
	queued int32 = iota
	running
	abandoned
)

// Limiter runs operations on a fixed-size pool of workers, so that at most the
// pool size of operations run at any time.
type Limiter struct {
	size    int
	workers *workerpool.WorkerPool
	mu      sync.RWMutex // protects against submitting to a stopped pool.
	stopped bool
}

// New returns a new Limiter allowing at most size operations to run
// concurrently.
func New(size int) *Limiter {
	if size < 1 {
		panic("Limiter: size must be at least 1")
	}
	return &Limiter{
		size:    size,
		workers: workerpool.New(size),
	}
}

// Size returns the maximum number of concurrently running operations.
func (l *Limiter) Size() int { return l.size }

// Waiting returns the number of operations currently queued for a free worker.
func (l *Limiter) Waiting() int { return l.workers.WaitingQueueSize() }

// Do runs the specified operation as soon as a worker becomes available and
// waits for the operation to finish. If the context gets done before the
// operation was started, then Do returns the context's error and the operation
// won't run at all. Once started, an operation always runs to completion and
// Do waits for it; operations are thus expected to honor the context
// themselves.
//
// A panicking operation frees its worker and the panic is then re-raised in
// the caller's goroutine.
func (l *Limiter) Do(ctx context.Context, op func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var state atomic.Int32
	var panicked interface{}
	done := make(chan struct{})

	l.mu.RLock()
	if l.stopped {
		l.mu.RUnlock()
		return ErrStopped
	}
	l.workers.Submit(func() {
		defer close(done)
		if !state.CompareAndSwap(queued, running) {
			return // caller gave up while we were queued.
		}
		defer func() { panicked = recover() }()
		op()
	})
	l.mu.RUnlock()

	select {
	case <-done:
	case <-ctx.Done():
		if state.CompareAndSwap(queued, abandoned) {
			return ctx.Err()
		}
		// Too late, the operation is already running, so wait for it in
		// order to not leave it writing into the caller's variables.
		<-done
	}
	if panicked != nil {
		panic(panicked)
	}
	return nil
}

// StopWait waits for all queued and running operations to finish and then
// stops the workers. Any later Do returns [ErrStopped].
func (l *Limiter) StopWait() {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return
	}
	l.stopped = true
	l.mu.Unlock()
	l.workers.StopWait()
}

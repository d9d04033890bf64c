package plugin

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"
)

// ErrTimeout is returned by Deadline.Run when the bound elapses before
// the function returns.
var ErrTimeout = errors.New("deadline exceeded")

// ErrDeadlineActive is returned when a Deadline is started while
// another one is still waiting. Only one deadline may be active in the
// process at a time; overlapping bounds are rejected rather than left
// to corrupt each other.
var ErrDeadlineActive = errors.New("another deadline is already active")

// deadlineActive guards the single process-wide deadline slot.
var deadlineActive atomic.Bool

// A Deadline bounds the execution of a single function call. A zero
// Timeout disables the bound entirely.
//
// When the bound elapses, Run returns ErrTimeout and cancels the
// context passed to the function. The function itself is not
// preemptively stopped: a callee that ignores its context keeps
// running on its goroutine until the process exits. That is acceptable
// for single-shot plugin binaries, which exit right after
// classification, but it makes Deadline unsuitable as a general
// cancellation mechanism.
type Deadline struct {
	Timeout time.Duration
}

// Run invokes fn, waiting at most d.Timeout for it to return.
func (d Deadline) Run(ctx context.Context, fn func(context.Context) error) error {
	if d.Timeout <= 0 {
		return d.invoke(ctx, fn)
	}

	if !deadlineActive.CompareAndSwap(false, true) {
		return ErrDeadlineActive
	}
	defer deadlineActive.Store(false)

	// An explicit timer rather than context.WithTimeout: the callee's
	// context is cancelled only after the timeout decision is made, so
	// a callee blocked on its context can never race the timer and
	// smuggle its own cancellation error past ErrTimeout.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- d.invoke(ctx, fn)
	}()

	timer := time.NewTimer(d.Timeout)
	defer timer.Stop()

	select {
	case err := <-done:
		return err
	case <-timer.C:
		return ErrTimeout
	}
}

// invoke calls fn and converts a panic into an error so that a crashing
// check cannot skip the cleanup and exit sequence.
func (d Deadline) invoke(ctx context.Context, fn func(context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(ctx)
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bridge

import (
	"context"
	"errors"

	"code.hybscloud.com/kont"
)

var (
	// ErrNoContext reports a suspension attempted where no coro is
	// active: Await outside a running coro, or AwaitFallback outside one
	// while the default scheduler is already driving other work.
	ErrNoContext = errors.New("bridge: no coro is active; was async I/O attempted in an unexpected place?")

	// ErrAwaitRequired reports a RunStrict call whose function completed
	// without a single suspension.
	ErrAwaitRequired = errors.New("bridge: async execution required but no suspension occurred")

	// ErrNotLocked reports a Mutex release without a prior successful
	// acquire.
	ErrNotLocked = errors.New("bridge: mutex is not locked")

	// ErrSchedulerRunning reports a reentrant or concurrent
	// Inline.RunToCompletion.
	ErrSchedulerRunning = errors.New("bridge: scheduler is already running")
)

// IsExit reports whether err is an exit condition — cancellation or
// deadline — rather than an ordinary failure. The bridge propagates both
// on the same channel, unwrapped; classification is left to the caller.
func IsExit(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// RunEither is Run with the outcome as kont.Either: Right on success,
// Left carrying the failure. Convenient for callers composing with the
// kont ecosystem.
func RunEither[R any](ctx context.Context, s Scheduler, fn func(*Coro) (R, error)) kont.Either[error, R] {
	r, err := run(ctx, s, fn, false)
	if err != nil {
		return kont.Left[error, R](err)
	}
	return kont.Right[error](r)
}

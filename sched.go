// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bridge

import (
	"context"

	"code.hybscloud.com/atomix"
)

// Scheduler is the consumed interface to the asynchronous task scheduler.
// The bridge never creates one; it drives pending operations on the handle
// it is given. Implementations must be safe for the strictly alternating
// call pattern of the driver loop: one RunToCompletion at a time per
// bridged call.
type Scheduler interface {
	// IsRunning reports whether the scheduler is actively driving work.
	IsRunning() bool
	// RunToCompletion awaits op and returns its result or failure.
	RunToCompletion(ctx context.Context, op Awaitable) (any, error)
}

// Inline is a minimal single-occupancy scheduler that awaits operations
// directly on the calling goroutine. Occupancy is an explicit atomic flag,
// inspectable via IsRunning for the duration of RunToCompletion; a
// reentrant or concurrent run fails with ErrSchedulerRunning instead of
// corrupting state.
//
// The zero value is ready to use.
type Inline struct {
	running atomix.Uint32
}

// IsRunning implements Scheduler.
func (s *Inline) IsRunning() bool {
	return s.running.Load() != 0
}

// RunToCompletion implements Scheduler.
func (s *Inline) RunToCompletion(ctx context.Context, op Awaitable) (any, error) {
	if !s.running.CompareAndSwap(0, 1) {
		return nil, ErrSchedulerRunning
	}
	defer s.running.Store(0)
	return op.Await(ctx)
}

// defaultScheduler is the process-wide inline runner behind Default.
var defaultScheduler Inline

// Default returns the process-wide Inline scheduler. AwaitFallback
// consults it when called outside any coro: idle means an operation may
// run inline on the caller's goroutine; running means the call fails with
// ErrNoContext rather than reentering.
func Default() Scheduler {
	return &defaultScheduler
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bridge

import (
	"context"

	"code.hybscloud.com/atomix"
)

// Awaitable is an opaque handle to one in-flight asynchronous operation.
// It carries no identity beyond being awaitable exactly once: Resolved,
// Failed, and Future panic on a second Await, following the affine
// one-shot semantics of kont suspensions.
type Awaitable interface {
	Await(ctx context.Context) (any, error)
}

// AwaitableFunc adapts an ordinary function to Awaitable.
// Single-use is not enforced for the func form.
type AwaitableFunc func(ctx context.Context) (any, error)

// Await implements Awaitable.
func (f AwaitableFunc) Await(ctx context.Context) (any, error) {
	return f(ctx)
}

// settled is an already-completed operation: Await returns immediately.
type settled struct {
	value any
	err   error
	used  atomix.Uint32
}

func (s *settled) Await(context.Context) (any, error) {
	if !s.used.CompareAndSwap(0, 1) {
		panic("bridge: awaitable awaited twice")
	}
	return s.value, s.err
}

// Resolved returns an operation that is already complete with value v.
func Resolved(v any) Awaitable {
	return &settled{value: v}
}

// Failed returns an operation that is already complete with failure err.
func Failed(err error) Awaitable {
	return &settled{err: err}
}

// Future is a settable Awaitable: Await blocks until Complete or Fail is
// called, or the awaiting context is done. Exactly one of Complete/Fail
// takes effect; later calls are no-ops.
type Future struct {
	ready   chan struct{}
	settled atomix.Uint32
	used    atomix.Uint32
	value   any
	err     error
}

// NewFuture returns an unsettled Future.
func NewFuture() *Future {
	return &Future{ready: make(chan struct{})}
}

// Complete settles the future with value v.
func (f *Future) Complete(v any) {
	if f.settled.CompareAndSwap(0, 1) {
		f.value = v
		close(f.ready)
	}
}

// Fail settles the future with failure err.
func (f *Future) Fail(err error) {
	if f.settled.CompareAndSwap(0, 1) {
		f.err = err
		close(f.ready)
	}
}

// Await implements Awaitable. Blocks until the future settles or ctx is
// done; a ctx failure is reported as-is so cancellation classification
// (IsExit) is preserved through the bridge.
func (f *Future) Await(ctx context.Context) (any, error) {
	if !f.used.CompareAndSwap(0, 1) {
		panic("bridge: awaitable awaited twice")
	}
	select {
	case <-f.ready:
		return f.value, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

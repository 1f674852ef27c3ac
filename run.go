// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bridge

import "context"

// Run executes fn on a fresh coro and drives every suspension on s until
// fn completes, returning its result or failure unchanged. Callable from
// code already executing under the scheduler that s represents.
//
// ctx bounds the awaited operations: a cancellation or deadline raised
// while awaiting is delivered into the coro at the suspension point like
// any other failure (see IsExit), letting fn's cleanup run; the bridge
// never swallows or retries it.
func Run[R any](ctx context.Context, s Scheduler, fn func(*Coro) (R, error)) (R, error) {
	return run(ctx, s, fn, false)
}

// RunStrict is Run that additionally fails with ErrAwaitRequired when fn
// completes successfully without ever suspending. This guards callers who
// require that fn is genuinely asynchronous-capable, e.g. verifying that a
// driver actually performs non-blocking I/O.
func RunStrict[R any](ctx context.Context, s Scheduler, fn func(*Coro) (R, error)) (R, error) {
	return run(ctx, s, fn, true)
}

// run is the driver loop: step into the coro, await each pending
// operation on the scheduler, switch back with the result or the failure,
// repeat until the coro finishes. Task.settle releases the coro reference
// on every exit path, panic included.
func run[R any](ctx context.Context, s Scheduler, fn func(*Coro) (R, error), strict bool) (R, error) {
	t := Begin(fn)
	op, done := t.Step()
	for !done {
		v, err := s.RunToCompletion(ctx, op)
		op, done = t.Resume(v, err)
	}
	r, err := t.Result()
	if err == nil && strict && !t.Switched() {
		var zero R
		return zero, ErrAwaitRequired
	}
	return r, err
}

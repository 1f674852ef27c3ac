// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bridge

import "context"

// Await suspends the coro on op: control switches to the driver carrying
// the pending operation, and blocks until the driver switches back. The
// awaited result is returned, or the failure is delivered here, at the
// exact suspension call site, so error handling around the call observes
// it naturally.
//
// Await is usable only from inside the running coro's user function.
// Outside one — nil coro, finished coro, or a second suspension issued
// while one is outstanding — it fails with ErrNoContext.
func Await(co *Coro, op Awaitable) (any, error) {
	if co == nil {
		return nil, ErrNoContext
	}
	if !co.state.CompareAndSwap(stateRunning, stateSuspended) {
		return nil, ErrNoContext
	}
	co.upSlot = ascent{op: op}
	co.sendUp()
	d := co.recvDown()
	co.state.Store(stateRunning)
	if d.err != nil {
		return nil, d.err
	}
	return d.value, nil
}

// AwaitFallback behaves like Await inside an active coro. Outside one it
// runs op to completion inline on the caller's goroutine via the default
// scheduler, blocking it — unless that scheduler is already running, in
// which case it fails with ErrNoContext (an inline run would reenter the
// scheduler). Shared code uses this so it works whether or not it happens
// to be bridged.
func AwaitFallback(co *Coro, op Awaitable) (any, error) {
	if co.Active() {
		return Await(co, op)
	}
	s := Default()
	if s.IsRunning() {
		return nil, ErrNoContext
	}
	return s.RunToCompletion(context.Background(), op)
}

// AwaitAs is Await with the result asserted to T.
func AwaitAs[T any](co *Coro, op Awaitable) (T, error) {
	v, err := Await(co, op)
	if err != nil || v == nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

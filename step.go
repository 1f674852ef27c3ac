// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bridge

import (
	"context"

	"code.hybscloud.com/iox"
)

// Task is a spawned coro being driven externally, one pending operation at
// a time. The driver calls Step to reach the first suspension, awaits the
// returned operation however it likes, and calls Resume with the outcome.
// Exchanges are strictly one-at-a-time and in issuance order.
type Task[R any] struct {
	co        *Coro
	downSlot  descent
	result    R
	err       error
	switched  bool
	suspended bool
	done      bool
}

// Begin spawns a coro running fn without driving it. The caller must drive
// the task to completion with Step/Resume (or abandon it with Discard),
// otherwise the coro stack is parked forever.
func Begin[R any](fn func(*Coro) (R, error)) *Task[R] {
	co := newCoro()
	t := &Task[R]{co: co}
	go co.main(func(c *Coro) (any, error) {
		r, err := fn(c)
		return r, err
	})
	return t
}

// Step runs the coro until its next suspension or completion.
// Returns (op, false) when the coro handed up a pending operation, or
// (nil, true) when the user function finished. A panic escaping the user
// function re-raises here with its original value.
func (t *Task[R]) Step() (Awaitable, bool) {
	if t.done {
		return nil, true
	}
	m := t.recvUp()
	if m.done {
		t.settle(m)
		return nil, true
	}
	t.suspended = true
	return m.op, false
}

// Resume delivers the awaited result (or throws err at the suspension
// point) and runs the coro to its next boundary, like Step.
// Panics if no suspension is outstanding.
func (t *Task[R]) Resume(v any, err error) (Awaitable, bool) {
	if t.done {
		return nil, true
	}
	if !t.suspended {
		panic("bridge: resume without outstanding suspension")
	}
	t.suspended = false
	t.switched = true
	t.downSlot = descent{value: v, err: err}
	t.sendDown()
	return t.Step()
}

// Discard abandons the task: cancellation is delivered at each remaining
// suspension point until the user function finishes, letting its cleanup
// run. The final result and error are dropped; a panic escaping the user
// function still re-raises.
func (t *Task[R]) Discard() {
	for !t.done {
		if t.suspended {
			t.Resume(nil, context.Canceled)
		} else {
			t.Step()
		}
	}
}

// Result returns the user function's outcome. Valid once Step or Resume
// reported done.
func (t *Task[R]) Result() (R, error) {
	return t.result, t.err
}

// Switched reports whether the coro suspended at least once.
func (t *Task[R]) Switched() bool {
	return t.switched
}

// settle records the final outcome and releases the task's reference to
// the coro, so the finished stack is collectible. Runs regardless of
// outcome; a captured panic re-raises after the release.
func (t *Task[R]) settle(m ascent) {
	t.done = true
	t.co = nil
	if m.didPanic {
		panic(m.panicked)
	}
	if m.value != nil {
		t.result = m.value.(R)
	}
	t.err = m.err
}

// recvUp blocks until the coro hands up its next ascent.
func (t *Task[R]) recvUp() ascent {
	var bo iox.Backoff
	for {
		m, err := t.co.up.Dequeue()
		if err == nil {
			return m
		}
		bo.Wait()
	}
}

// sendDown publishes downSlot to the coro, waiting past the
// iox.ErrWouldBlock boundary with adaptive backoff.
func (t *Task[R]) sendDown() {
	var bo iox.Backoff
	for t.co.down.Enqueue(&t.downSlot) != nil {
		bo.Wait()
	}
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bridge

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
)

// switchCapacity is the bounded capacity for the switch queues.
// Strict alternation keeps at most one message in flight per direction;
// 4 keeps the ring buffers within a single cache line.
const switchCapacity = 4

// Coro lifecycle states. Suspension transitions are CAS-guarded; no
// transition skips stateSuspended between two user-code segments.
const (
	stateCreated uint32 = iota
	stateRunning
	stateSuspended
	stateFinished
)

// ascent travels coro → driver: either a pending operation handed up at a
// suspension point, or the final outcome of the user function.
type ascent struct {
	op       Awaitable
	value    any
	err      error
	panicked any
	didPanic bool
	done     bool
}

// descent travels driver → coro: the awaited result, or the failure to
// deliver at the suspension point.
type descent struct {
	value any
	err   error
}

// Coro is a secondary control stack running a user function written in
// blocking style. It is created by Begin (or Run) and suspended/resumed by
// its driver through a pair of bounded lock-free SPSC queues.
//
// A Coro handle is valid inside the user function it was passed to; Await
// on a finished or suspended coro fails with ErrNoContext.
type Coro struct {
	state  atomix.Uint32
	serial Serial
	up     lfq.SPSC[ascent]
	down   lfq.SPSC[descent]
	upSlot ascent
}

// newCoro allocates a coro with both switch queues initialized.
// Queues are embedded as values; only the ring buffers are separate
// heap objects.
func newCoro() *Coro {
	c := &Coro{serial: nextSerial()}
	c.up.Init(switchCapacity)
	c.down.Init(switchCapacity)
	return c
}

// Serial returns the serial number assigned to this coro.
func (c *Coro) Serial() Serial {
	return c.serial
}

// Active reports whether the coro is currently executing user code.
// Safe on a nil receiver: a nil coro is never active.
func (c *Coro) Active() bool {
	return c != nil && c.state.Load() == stateRunning
}

// main is the coro goroutine body: runs the user function and reports the
// final outcome to the driver. A panic is captured with its original value
// so the driver can re-raise it with identity intact.
func (c *Coro) main(fn func(*Coro) (any, error)) {
	defer func() {
		if p := recover(); p != nil {
			c.state.Store(stateFinished)
			c.upSlot = ascent{done: true, panicked: p, didPanic: true}
			c.sendUp()
		}
	}()
	c.state.Store(stateRunning)
	v, err := fn(c)
	c.state.Store(stateFinished)
	c.upSlot = ascent{done: true, value: v, err: err}
	c.sendUp()
}

// sendUp publishes upSlot to the driver, waiting past the
// iox.ErrWouldBlock boundary with adaptive backoff.
func (c *Coro) sendUp() {
	var bo iox.Backoff
	for c.up.Enqueue(&c.upSlot) != nil {
		bo.Wait()
	}
}

// recvDown blocks until the driver switches back with a result or failure.
func (c *Coro) recvDown() descent {
	var bo iox.Backoff
	for {
		d, err := c.down.Dequeue()
		if err == nil {
			return d
		}
		bo.Wait()
	}
}

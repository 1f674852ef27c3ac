// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bridge

import (
	"context"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
)

// Mutex lazy-init states.
const (
	mutexUninit uint32 = iota
	mutexIniting
	mutexReady
)

// Mutex is a mutual-exclusion primitive usable from bridged code and from
// native scheduler-driven code alike. Acquire hands the semaphore's
// asynchronous acquire operation through AwaitFallback, so the call blocks
// correctly whether or not the caller is bridged.
//
// The underlying semaphore is created lazily on first use; creation never
// suspends, so no two callers can observe two different semaphores.
// Acquire and Release must be balanced. The zero value is ready to use.
type Mutex struct {
	init atomix.Uint32
	sem  chan struct{}
}

// semaphore returns the underlying semaphore, creating it on first use.
// Losers of the init CAS spin briefly; creation itself never blocks.
func (m *Mutex) semaphore() chan struct{} {
	var bo iox.Backoff
	for {
		switch m.init.Load() {
		case mutexReady:
			return m.sem
		case mutexUninit:
			if m.init.CompareAndSwap(mutexUninit, mutexIniting) {
				m.sem = make(chan struct{}, 1)
				m.init.Store(mutexReady)
				return m.sem
			}
		}
		bo.Wait()
	}
}

// Acquire blocks until the mutex is held. Inside an active coro the
// acquire operation is handed to the driver; otherwise it runs inline on
// the default scheduler (failing with ErrNoContext if that scheduler is
// already running). A ctx failure from the driver surfaces here with the
// mutex not held.
func (m *Mutex) Acquire(co *Coro) error {
	sem := m.semaphore()
	_, err := AwaitFallback(co, AwaitableFunc(func(ctx context.Context) (any, error) {
		select {
		case sem <- struct{}{}:
			return nil, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}))
	return err
}

// TryAcquire takes the mutex without suspending, or returns
// iox.ErrWouldBlock when it is held.
func (m *Mutex) TryAcquire() error {
	select {
	case m.semaphore() <- struct{}{}:
		return nil
	default:
		return iox.ErrWouldBlock
	}
}

// Release drops the mutex. Returns ErrNotLocked when it is not held —
// including when it was never acquired at all.
func (m *Mutex) Release() error {
	if m.init.Load() != mutexReady {
		return ErrNotLocked
	}
	select {
	case <-m.sem:
		return nil
	default:
		return ErrNotLocked
	}
}

// Do runs fn while holding the mutex (scoped acquisition). The mutex is
// released when fn returns, panic included.
func (m *Mutex) Do(co *Coro, fn func() error) error {
	if err := m.Acquire(co); err != nil {
		return err
	}
	defer m.Release()
	return fn()
}

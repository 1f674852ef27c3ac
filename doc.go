// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package bridge lets blocking-style code transparently await asynchronous
// operations, without the caller or the operations knowing about each other.
//
// A [Coro] is a secondary control stack (a dedicated goroutine) running a
// user function written in plain sequential style. When that function needs
// an asynchronous result it calls [Await], which parks the coro and hands
// the pending [Awaitable] up to the driver. The driver awaits it on the
// active [Scheduler] and switches back with the result or the failure.
// Exactly one of {driver, coro} executes at any instant; exchanges are
// strictly alternating and in issuance order.
//
// # Architecture
//
//   - Switching: A pair of bounded lock-free SPSC queues via [code.hybscloud.com/lfq],
//     one per direction, embedded in the [Coro]. Waiting crosses the
//     [code.hybscloud.com/iox.ErrWouldBlock] boundary with adaptive backoff (iox.Backoff).
//   - Lifecycle: created → running → suspended ⇄ running → finished, held in a
//     [code.hybscloud.com/atomix] counter. Every transition is a CAS; a second
//     suspension issued while one is outstanding is rejected with [ErrNoContext].
//   - Error Handling: The bridge is a pure conduit. Failures of the awaited
//     operation surface at the exact [Await] call site; failures of the user
//     function surface unchanged to the caller of [Run]. Panics re-raise in the
//     driver with the original panic value. [code.hybscloud.com/kont.Either]
//     results via [RunEither].
//
// # API Topologies
//
//   - Suspension: [Await] (strict, coro only), [AwaitFallback] (inline when
//     unbridged), [AwaitAs] for typed results.
//   - Operations: [Awaitable], [AwaitableFunc], [Resolved], [Failed], [Future].
//     Each operation is awaitable exactly once.
//   - Driving: [Run], [RunStrict], [RunEither] block until the bridged
//     function completes, driving every suspension on the given [Scheduler].
//   - Mutual exclusion: [Mutex] works identically under bridged and native
//     callers, built on [AwaitFallback].
//
// # Integration
//
//   - Stepping: [Begin], [Task.Step] and [Task.Resume] surface one pending
//     operation at a time, making the bridge easy to drive from an external
//     event loop. [Run] is the blocking closure over this surface.
//   - Scheduling: the bridge never creates the real scheduler; it drives the
//     [Scheduler] handle it is given. [Default] returns the process-wide
//     [Inline] runner consulted by [AwaitFallback] outside any coro.
//
// # Example
//
//	sum, err := bridge.Run(context.Background(), &bridge.Inline{},
//		func(co *bridge.Coro) (int, error) {
//			v, err := bridge.AwaitAs[int](co, bridge.Resolved(41))
//			if err != nil {
//				return 0, err
//			}
//			return v + 1, nil
//		})
//	// sum == 42
package bridge

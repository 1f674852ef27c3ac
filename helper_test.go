// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bridge_test

import (
	"context"

	"code.hybscloud.com/bridge"
)

// countingScheduler wraps Inline and counts RunToCompletion calls.
// Used to verify that non-suspending functions perform zero scheduler
// interactions.
type countingScheduler struct {
	inner bridge.Inline
	calls int
}

func (s *countingScheduler) IsRunning() bool {
	return s.inner.IsRunning()
}

func (s *countingScheduler) RunToCompletion(ctx context.Context, op bridge.Awaitable) (any, error) {
	s.calls++
	return s.inner.RunToCompletion(ctx, op)
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bridge_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"code.hybscloud.com/bridge"
)

func TestAwaitFallbackInsideCoro(t *testing.T) {
	skipRace(t)
	got, err := bridge.Run(context.Background(), &bridge.Inline{}, func(co *bridge.Coro) (int, error) {
		v, err := bridge.AwaitFallback(co, bridge.Resolved(5))
		if err != nil {
			return 0, err
		}
		return v.(int), nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 5 {
		t.Fatalf("got %d, want 5", got)
	}
}

func TestAwaitFallbackInlineOutsideCoro(t *testing.T) {
	// No coro, default scheduler idle: the operation runs to completion
	// inline on the calling goroutine.
	v, err := bridge.AwaitFallback(nil, bridge.Resolved("inline"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "inline" {
		t.Fatalf("got %v, want %q", v, "inline")
	}
}

func TestAwaitFallbackSchedulerBusy(t *testing.T) {
	// While the default scheduler is already driving other work, an inline
	// run would reenter it; the call must fail instead.
	fut := bridge.NewFuture()
	errCh := make(chan error, 1)
	go func() {
		_, err := bridge.AwaitFallback(nil, fut)
		errCh <- err
	}()
	for i := 0; i < 1000 && !bridge.Default().IsRunning(); i++ {
		time.Sleep(time.Millisecond)
	}
	if !bridge.Default().IsRunning() {
		t.Fatal("default scheduler never became busy")
	}
	if _, err := bridge.AwaitFallback(nil, bridge.Resolved(1)); !errors.Is(err, bridge.ErrNoContext) {
		t.Fatalf("got %v, want ErrNoContext", err)
	}
	fut.Complete(struct{}{})
	if err := <-errCh; err != nil {
		t.Fatalf("occupying await failed: %v", err)
	}
}

func TestAwaitableSingleUse(t *testing.T) {
	op := bridge.Resolved(1)
	if _, err := op.Await(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on second await")
		}
	}()
	op.Await(context.Background())
}

func TestFutureFirstSettleWins(t *testing.T) {
	fut := bridge.NewFuture()
	fut.Complete(7)
	fut.Fail(errors.New("late"))
	v, err := fut.Await(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 7 {
		t.Fatalf("got %v, want 7", v)
	}
}

func TestAwaitAsZeroOnError(t *testing.T) {
	skipRace(t)
	boom := errors.New("boom")
	_, err := bridge.Run(context.Background(), &bridge.Inline{}, func(co *bridge.Coro) (string, error) {
		v, err := bridge.AwaitAs[string](co, bridge.Failed(boom))
		if v != "" {
			t.Errorf("got %q, want zero value on error", v)
		}
		return v, err
	})
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want %v", err, boom)
	}
}

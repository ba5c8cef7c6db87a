package usecase

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/wins-pool/internal/platform/logging"
)

type countingRefresher struct {
	calls atomic.Int32
}

func (r *countingRefresher) Refresh(context.Context) (RefreshStatus, bool) {
	r.calls.Add(1)
	return RefreshStatus{State: RefreshStateDisplaying}, false
}

func waitForCalls(t *testing.T, r *countingRefresher, want int32) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for r.calls.Load() < want {
		if time.Now().After(deadline) {
			t.Fatalf("expected at least %d refreshes, got %d", want, r.calls.Load())
		}
		time.Sleep(2 * time.Millisecond)
	}
}

func TestAutoRefresher_TicksWhileEnabled(t *testing.T) {
	t.Parallel()

	refresher := &countingRefresher{}
	auto := NewAutoRefresher(refresher, 10*time.Millisecond, true, logging.NewNop())
	auto.Start(context.Background())
	defer auto.Stop()

	waitForCalls(t, refresher, 3)
}

func TestAutoRefresher_DisabledOnlyRunsStartupRefresh(t *testing.T) {
	t.Parallel()

	refresher := &countingRefresher{}
	auto := NewAutoRefresher(refresher, 5*time.Millisecond, false, logging.NewNop())
	auto.Start(context.Background())

	waitForCalls(t, refresher, 1)
	time.Sleep(40 * time.Millisecond)
	if got := refresher.calls.Load(); got != 1 {
		t.Fatalf("expected only the startup refresh while disabled, got %d", got)
	}

	auto.SetEnabled(true)
	if !auto.Enabled() {
		t.Fatalf("expected enabled after toggle")
	}
	waitForCalls(t, refresher, 2)

	auto.Stop()
	stopped := refresher.calls.Load()
	time.Sleep(30 * time.Millisecond)
	if got := refresher.calls.Load(); got != stopped {
		t.Fatalf("expected no refreshes after stop, got %d -> %d", stopped, got)
	}
}

func TestAutoRefresher_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	refresher := &countingRefresher{}
	auto := NewAutoRefresher(refresher, 0, true, logging.NewNop())
	if auto.Interval() != 5*time.Minute {
		t.Fatalf("expected default interval, got %s", auto.Interval())
	}

	ctx, cancel := context.WithCancel(context.Background())
	auto.Start(ctx)
	auto.Start(ctx)
	waitForCalls(t, refresher, 1)
	cancel()
	auto.Stop()

	if got := refresher.calls.Load(); got != 1 {
		t.Fatalf("expected exactly one startup refresh, got %d", got)
	}
}

package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/riskibarqy/wins-pool/internal/platform/logging"
)

const defaultRefreshInterval = 5 * time.Minute

// Refresher is the operation the timer re-invokes.
type Refresher interface {
	Refresh(ctx context.Context) (RefreshStatus, bool)
}

// AutoRefresher re-runs the refresh cycle on a fixed interval. Ticks that
// fire while it is disabled are skipped; ticks that overlap an in-flight
// cycle join it through the refresher's single-flight guard.
type AutoRefresher struct {
	refresher Refresher
	interval  time.Duration
	logger    *logging.Logger

	enabled  atomic.Bool
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool
	wg       sync.WaitGroup
}

func NewAutoRefresher(refresher Refresher, interval time.Duration, enabled bool, logger *logging.Logger) *AutoRefresher {
	if interval <= 0 {
		interval = defaultRefreshInterval
	}
	if logger == nil {
		logger = logging.Default()
	}
	r := &AutoRefresher{
		refresher: refresher,
		interval:  interval,
		logger:    logger,
		done:      make(chan struct{}),
	}
	r.enabled.Store(enabled)
	return r
}

// Start runs an initial refresh, then ticks until ctx is cancelled or Stop is called.
func (r *AutoRefresher) Start(ctx context.Context) {
	r.startMu.Lock()
	if r.started {
		r.startMu.Unlock()
		return
	}
	r.started = true
	r.startMu.Unlock()

	ticker := time.NewTicker(r.interval)
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer ticker.Stop()

		r.logger.Info("auto refresh started", "interval", r.interval.String(), "enabled", r.enabled.Load())
		r.tick(ctx, "startup")

		for {
			select {
			case <-ctx.Done():
				r.logger.Info("auto refresh stopped")
				return
			case <-r.done:
				r.logger.Info("auto refresh stopped")
				return
			case <-ticker.C:
				if !r.enabled.Load() {
					continue
				}
				r.tick(ctx, "timer")
			}
		}
	}()
}

// Stop halts the loop and waits for the current tick to finish.
func (r *AutoRefresher) Stop() {
	r.stopOnce.Do(func() {
		close(r.done)
	})
	r.wg.Wait()
}

func (r *AutoRefresher) SetEnabled(enabled bool) {
	if r.enabled.Swap(enabled) != enabled {
		r.logger.Info("auto refresh toggled", "enabled", enabled)
	}
}

func (r *AutoRefresher) Enabled() bool {
	return r.enabled.Load()
}

func (r *AutoRefresher) Interval() time.Duration {
	return r.interval
}

func (r *AutoRefresher) tick(ctx context.Context, trigger string) {
	ctx, span := startRootSpan(ctx, "usecase.AutoRefresher.Tick")
	defer span.End()

	status, joined := r.refresher.Refresh(ctx)
	r.logger.DebugContext(ctx, "auto refresh tick",
		"trigger", trigger,
		"joined", joined,
		"provenance", string(status.Provenance),
	)
}

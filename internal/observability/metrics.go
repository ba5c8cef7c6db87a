package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/riskibarqy/wins-pool/internal/domain/team"
)

const meterName = "wins-pool/internal/observability"

const attrProvenance = "provenance"

// RefreshRecorder reports refresh cycles to OpenTelemetry. It satisfies usecase.RefreshMetrics.
type RefreshRecorder struct {
	cycles           metric.Int64Counter
	coverage         metric.Int64Histogram
	durationMs       metric.Float64Histogram
	scheduleFailures metric.Int64Counter
}

// NewRefreshRecorder registers instruments on provider, or on the global provider when nil.
func NewRefreshRecorder(provider metric.MeterProvider) (*RefreshRecorder, error) {
	if provider == nil {
		provider = otel.GetMeterProvider()
	}
	meter := provider.Meter(meterName)

	cycles, err := meter.Int64Counter("wins_pool.refresh.cycles",
		metric.WithDescription("Completed refresh cycles by record provenance"))
	if err != nil {
		return nil, err
	}
	coverage, err := meter.Int64Histogram("wins_pool.refresh.coverage",
		metric.WithDescription("Teams resolved from the live source per cycle"))
	if err != nil {
		return nil, err
	}
	durationMs, err := meter.Float64Histogram("wins_pool.refresh.duration",
		metric.WithUnit("ms"))
	if err != nil {
		return nil, err
	}
	scheduleFailures, err := meter.Int64Counter("wins_pool.schedule.failures",
		metric.WithDescription("Schedule pipeline failures"))
	if err != nil {
		return nil, err
	}

	return &RefreshRecorder{
		cycles:           cycles,
		coverage:         coverage,
		durationMs:       durationMs,
		scheduleFailures: scheduleFailures,
	}, nil
}

func (r *RefreshRecorder) RecordRefresh(ctx context.Context, provenance team.Provenance, coverage int, duration time.Duration) {
	if r == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String(attrProvenance, string(provenance)))
	r.cycles.Add(ctx, 1, attrs)
	r.coverage.Record(ctx, int64(coverage), attrs)
	r.durationMs.Record(ctx, float64(duration.Milliseconds()), attrs)
}

func (r *RefreshRecorder) RecordScheduleFailure(ctx context.Context) {
	if r == nil {
		return
	}
	r.scheduleFailures.Add(ctx, 1)
}

package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/panics"

	"github.com/riskibarqy/wins-pool/internal/domain/team"
	"github.com/riskibarqy/wins-pool/internal/platform/logging"
)

const (
	defaultFetchWorkers      = 32
	defaultCoverageThreshold = 20
)

// FetchReport describes one fan-out. Records is nil unless coverage was sufficient.
type FetchReport struct {
	Records   team.Records
	Attempted int
	Resolved  int
	Failed    int
	Duration  time.Duration
}

// RecordFetcher pulls every team's record concurrently and tolerates partial failure.
type RecordFetcher struct {
	source    team.RecordSource
	workers   int
	threshold int
	logger    *logging.Logger
}

func NewRecordFetcher(source team.RecordSource, workers, coverageThreshold int, logger *logging.Logger) *RecordFetcher {
	if workers <= 0 {
		workers = defaultFetchWorkers
	}
	if coverageThreshold < 0 {
		coverageThreshold = defaultCoverageThreshold
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &RecordFetcher{
		source:    source,
		workers:   workers,
		threshold: coverageThreshold,
		logger:    logger,
	}
}

// Threshold is the coverage count that must be exceeded for success.
func (f *RecordFetcher) Threshold() int {
	return f.threshold
}

// FetchAll issues one request per code and waits for all of them to settle.
// It succeeds only when more than Threshold teams resolved; otherwise it
// returns an *InsufficientCoverageError and discards the partial map.
func (f *RecordFetcher) FetchAll(ctx context.Context, codes []team.Code) (FetchReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecordFetcher.FetchAll")
	defer span.End()

	start := time.Now()
	report := FetchReport{Attempted: len(codes)}

	workerCount := f.workers
	if workerCount > len(codes) {
		workerCount = len(codes)
	}
	if workerCount < 1 {
		workerCount = 1
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return report, fmt.Errorf("%w: create worker pool: %v", ErrDependencyUnavailable, err)
	}
	defer pool.Release()

	var (
		mu      sync.Mutex
		records = make(team.Records, len(codes))
		failed  int
		workers sync.WaitGroup
	)

	for _, code := range codes {
		code := code
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			rec, err := f.fetchOne(ctx, code)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed++
				return
			}
			records[code.Team] = rec
		}); err != nil {
			workers.Done()
			mu.Lock()
			failed++
			mu.Unlock()
			f.logger.WarnContext(ctx, "submit team record fetch", "team", code.Team, "error", err)
		}
	}

	workers.Wait()

	report.Resolved = len(records)
	report.Failed = failed
	report.Duration = time.Since(start)

	if report.Resolved <= f.threshold {
		return report, &InsufficientCoverageError{Resolved: report.Resolved, Threshold: f.threshold}
	}

	report.Records = records
	return report, nil
}

// fetchOne isolates a single request: errors and panics are logged and returned, never propagated.
func (f *RecordFetcher) fetchOne(ctx context.Context, code team.Code) (team.Record, error) {
	abbrev := strings.ToLower(strings.TrimSpace(code.Abbreviation))

	var (
		rec team.Record
		err error
	)
	var catcher panics.Catcher
	catcher.Try(func() {
		rec, err = f.source.FetchTeamRecord(ctx, abbrev)
	})
	if recovered := catcher.Recovered(); recovered != nil {
		err = recovered.AsError()
	}
	if err != nil {
		f.logger.WarnContext(ctx, "team record fetch failed", "team", code.Team, "code", abbrev, "error", err)
		return team.Record{}, err
	}

	f.logger.DebugContext(ctx, "team record fetched", "team", code.Team, "record", rec.Summary)
	return rec, nil
}

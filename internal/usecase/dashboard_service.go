package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/sourcegraph/conc"

	"github.com/riskibarqy/wins-pool/internal/domain/ownership"
	"github.com/riskibarqy/wins-pool/internal/domain/schedule"
	"github.com/riskibarqy/wins-pool/internal/domain/team"
	"github.com/riskibarqy/wins-pool/internal/platform/id"
	"github.com/riskibarqy/wins-pool/internal/platform/logging"
	"github.com/riskibarqy/wins-pool/internal/platform/resilience"
)

// RefreshState is the refresh cycle state machine.
type RefreshState string

const (
	RefreshStateIdle       RefreshState = "idle"
	RefreshStateLoading    RefreshState = "loading"
	RefreshStateFallback   RefreshState = "fallback"
	RefreshStateDisplaying RefreshState = "displaying"
)

const refreshFlightKey = "refresh"

// Snapshot is the wholesale-replaced unit of team records. It is never mutated after publication.
type Snapshot struct {
	ID         string
	Records    team.Records
	UpdatedAt  time.Time
	Provenance team.Provenance
	Coverage   int
}

// ScheduleStatus describes the schedule sub-view independently of the snapshot.
type ScheduleStatus string

const (
	ScheduleStatusPending ScheduleStatus = "pending"
	ScheduleStatusReady   ScheduleStatus = "ready"
	ScheduleStatusEmpty   ScheduleStatus = "empty"
	ScheduleStatusFailed  ScheduleStatus = "failed"
)

// ScheduleView is the projected upcoming games or a placeholder message.
type ScheduleView struct {
	Status    ScheduleStatus
	Games     []schedule.Game
	Message   string
	UpdatedAt time.Time
}

// RefreshStatus is what operators and renderers see about the last cycle.
type RefreshStatus struct {
	State       RefreshState
	RefreshID   string
	Provenance  team.Provenance
	Coverage    int
	Threshold   int
	LastUpdated *time.Time
}

// RefreshMetrics receives one observation per cycle. Implementations must be safe for concurrent use.
type RefreshMetrics interface {
	RecordRefresh(ctx context.Context, provenance team.Provenance, coverage int, duration time.Duration)
	RecordScheduleFailure(ctx context.Context)
}

// StageLabeler runs fn with profiler labels naming a refresh stage.
type StageLabeler func(ctx context.Context, stage string, fn func(context.Context))

func unlabeled(ctx context.Context, _ string, fn func(context.Context)) { fn(ctx) }

type noopRefreshMetrics struct{}

func (noopRefreshMetrics) RecordRefresh(context.Context, team.Provenance, int, time.Duration) {}
func (noopRefreshMetrics) RecordScheduleFailure(context.Context)                             {}

// DashboardService sequences fetch, fallback, aggregation and schedule
// projection, and owns the published snapshot.
type DashboardService struct {
	roster         ownership.Roster
	fetcher        *RecordFetcher
	mock           *MockRecordGenerator
	aggregator     *OwnershipAggregator
	projector      *ScheduleProjector
	scheduleSource schedule.Source
	ids            id.Generator
	metrics        RefreshMetrics
	labels         StageLabeler
	logger         *logging.Logger
	now            func() time.Time

	flight   resilience.SingleFlight[RefreshStatus]
	snapshot atomic.Pointer[Snapshot]
	schedule atomic.Pointer[ScheduleView]

	stateMu sync.RWMutex
	state   RefreshState
}

// DashboardDeps groups the collaborators of DashboardService.
type DashboardDeps struct {
	Roster         ownership.Roster
	Fetcher        *RecordFetcher
	Mock           *MockRecordGenerator
	ScheduleSource schedule.Source
	IDs            id.Generator
	Metrics        RefreshMetrics
	Labels         StageLabeler
	Logger         *logging.Logger
}

func NewDashboardService(deps DashboardDeps) *DashboardService {
	resolver := NewTeamNameResolver(deps.Roster.Table, deps.Roster.Aliases)

	svc := &DashboardService{
		roster:         deps.Roster,
		fetcher:        deps.Fetcher,
		mock:           deps.Mock,
		aggregator:     NewOwnershipAggregator(deps.Roster.Table),
		projector:      NewScheduleProjector(resolver, deps.Roster.Table),
		scheduleSource: deps.ScheduleSource,
		ids:            deps.IDs,
		metrics:        deps.Metrics,
		labels:         deps.Labels,
		logger:         deps.Logger,
		now:            time.Now,
		state:          RefreshStateIdle,
	}
	if svc.mock == nil {
		svc.mock = NewMockRecordGenerator(nil, false)
	}
	if svc.ids == nil {
		svc.ids = id.NewUUIDGenerator()
	}
	if svc.metrics == nil {
		svc.metrics = noopRefreshMetrics{}
	}
	if svc.labels == nil {
		svc.labels = unlabeled
	}
	if svc.logger == nil {
		svc.logger = logging.Default()
	}
	svc.schedule.Store(&ScheduleView{Status: ScheduleStatusPending})

	return svc
}

// Refresh runs one cycle, or joins the cycle already in flight. It always
// ends with a published snapshot: live when coverage suffices, synthetic
// otherwise. The second return value reports whether the call joined.
func (s *DashboardService) Refresh(ctx context.Context) (RefreshStatus, bool) {
	ctx = context.WithoutCancel(ctx)

	status, _, shared := s.flight.Do(refreshFlightKey, func() (RefreshStatus, error) {
		return s.runRefresh(ctx), nil
	})
	return status, shared
}

// Refreshing reports whether a cycle is currently in flight.
func (s *DashboardService) Refreshing() bool {
	return s.flight.InFlight(refreshFlightKey)
}

func (s *DashboardService) runRefresh(ctx context.Context) RefreshStatus {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.Refresh")
	defer span.End()

	start := s.now()
	s.setState(RefreshStateLoading)

	refreshID, err := s.ids.NewID()
	if err != nil {
		s.logger.WarnContext(ctx, "generate refresh id", "error", err)
	}
	logger := s.logger.With("refresh_id", refreshID)

	var (
		records    team.Records
		provenance team.Provenance
		coverage   int
	)
	s.labels(ctx, "records", func(ctx context.Context) {
		records, provenance, coverage = s.loadRecords(ctx, logger)
	})

	snap := &Snapshot{
		ID:         refreshID,
		Records:    records,
		UpdatedAt:  s.now(),
		Provenance: provenance,
		Coverage:   coverage,
	}
	s.snapshot.Store(snap)
	s.setState(RefreshStateDisplaying)

	s.labels(ctx, "schedule", func(ctx context.Context) {
		s.runSchedulePipeline(ctx, logger)
	})

	duration := s.now().Sub(start)
	s.metrics.RecordRefresh(ctx, provenance, coverage, duration)
	logger.InfoContext(ctx, "refresh cycle complete",
		"provenance", string(provenance),
		"coverage", coverage,
		"duration_ms", duration.Milliseconds(),
	)

	return s.statusFor(snap, RefreshStateDisplaying)
}

// loadRecords fetches live records and silently substitutes synthetic ones
// when coverage is insufficient.
func (s *DashboardService) loadRecords(ctx context.Context, logger *logging.Logger) (team.Records, team.Provenance, int) {
	var (
		report FetchReport
		err    = crerr.Wrap(ErrDependencyUnavailable, "record fetcher not configured")
	)
	if s.fetcher != nil {
		report, err = s.fetcher.FetchAll(ctx, s.roster.CodeList())
	}
	if err == nil {
		return report.Records, team.ProvenanceLive, report.Resolved
	}

	s.setState(RefreshStateFallback)
	logger.WarnContext(ctx, "live records unavailable, using synthetic records",
		"resolved", report.Resolved,
		"attempted", report.Attempted,
		"error", err,
	)
	return s.mock.GenerateAll(s.roster.Table.Teams()), team.ProvenanceSynthetic, report.Resolved
}

// runSchedulePipeline refreshes the schedule view. Its failures, panics
// included, only replace the schedule view with a placeholder.
func (s *DashboardService) runSchedulePipeline(ctx context.Context, logger *logging.Logger) {
	var wg conc.WaitGroup
	wg.Go(func() {
		s.RefreshSchedule(ctx)
	})
	if recovered := wg.WaitAndRecover(); recovered != nil {
		logger.ErrorContext(ctx, "schedule pipeline panicked", "error", recovered.AsError())
		s.metrics.RecordScheduleFailure(ctx)
		s.schedule.Store(&ScheduleView{
			Status:    ScheduleStatusFailed,
			Message:   ScheduleFailureMessage,
			UpdatedAt: s.now(),
		})
	}
}

// RefreshSchedule fetches and projects the scoreboard, replacing the schedule view.
func (s *DashboardService) RefreshSchedule(ctx context.Context) ScheduleView {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.RefreshSchedule")
	defer span.End()

	view := ScheduleView{UpdatedAt: s.now()}

	var (
		events []schedule.Event
		err    = crerr.Wrap(ErrDependencyUnavailable, "schedule source not configured")
	)
	if s.scheduleSource != nil {
		events, err = s.scheduleSource.FetchScoreboard(ctx)
	}
	if err != nil {
		s.logger.WarnContext(ctx, "schedule fetch failed", "error", err)
		s.metrics.RecordScheduleFailure(ctx)
		view.Status = ScheduleStatusFailed
		view.Message = ScheduleFailureMessage
		s.schedule.Store(&view)
		return view
	}

	view.Games = s.projector.Project(events)
	if len(view.Games) == 0 {
		view.Status = ScheduleStatusEmpty
		view.Message = ScheduleEmptyMessage
	} else {
		view.Status = ScheduleStatusReady
	}
	s.schedule.Store(&view)
	return view
}

// Snapshot returns a copy of the current snapshot, or nil before the first
// refresh. The published records stay private to the service.
func (s *DashboardService) Snapshot() *Snapshot {
	snap := s.snapshot.Load()
	if snap == nil {
		return nil
	}
	cp := *snap
	cp.Records = snap.Records.Clone()
	return &cp
}

// Schedule returns the current schedule view.
func (s *DashboardService) Schedule() ScheduleView {
	if v := s.schedule.Load(); v != nil {
		return *v
	}
	return ScheduleView{Status: ScheduleStatusPending}
}

// Status reports the state machine together with the current snapshot metadata.
func (s *DashboardService) Status() RefreshStatus {
	return s.statusFor(s.snapshot.Load(), s.State())
}

func (s *DashboardService) State() RefreshState {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.state
}

func (s *DashboardService) setState(state RefreshState) {
	s.stateMu.Lock()
	s.state = state
	s.stateMu.Unlock()
}

func (s *DashboardService) statusFor(snap *Snapshot, state RefreshState) RefreshStatus {
	status := RefreshStatus{State: state}
	if s.fetcher != nil {
		status.Threshold = s.fetcher.Threshold()
	}
	if snap == nil {
		return status
	}

	updated := snap.UpdatedAt
	status.RefreshID = snap.ID
	status.Provenance = snap.Provenance
	status.Coverage = snap.Coverage
	status.LastUpdated = &updated
	return status
}

// Aggregator exposes the pure aggregation functions bound to this roster.
func (s *DashboardService) Aggregator() *OwnershipAggregator {
	return s.aggregator
}

// Roster returns the static inputs the service was built with.
func (s *DashboardService) Roster() ownership.Roster {
	return s.roster
}

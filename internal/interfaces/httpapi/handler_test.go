package httpapi

import (
	"context"
	"errors"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/wins-pool/internal/domain/schedule"
	"github.com/riskibarqy/wins-pool/internal/domain/team"
	"github.com/riskibarqy/wins-pool/internal/infrastructure/repository/memory"
	teammock "github.com/riskibarqy/wins-pool/internal/mocks/domain/team"
	"github.com/riskibarqy/wins-pool/internal/platform/id"
	"github.com/riskibarqy/wins-pool/internal/platform/logging"
	"github.com/riskibarqy/wins-pool/internal/usecase"
)

type toggle struct {
	enabled atomic.Bool
}

func (t *toggle) SetEnabled(enabled bool) { t.enabled.Store(enabled) }
func (t *toggle) Enabled() bool           { return t.enabled.Load() }

type scheduleFunc func(ctx context.Context) ([]schedule.Event, error)

func (f scheduleFunc) FetchScoreboard(ctx context.Context) ([]schedule.Event, error) { return f(ctx) }

type envelope struct {
	APIVersion string         `json:"apiVersion"`
	Data       map[string]any `json:"data"`
	Error      map[string]any `json:"error"`
}

type listEnvelope struct {
	Data []map[string]any `json:"data"`
}

func newTestServer(t *testing.T, records team.RecordSource, sched schedule.Source) (http.Handler, *toggle) {
	t.Helper()

	roster, err := memory.DefaultRoster()
	if err != nil {
		t.Fatalf("default roster: %v", err)
	}

	logger := logging.NewNop()
	svc := usecase.NewDashboardService(usecase.DashboardDeps{
		Roster:         roster,
		Fetcher:        usecase.NewRecordFetcher(records, 8, 20, logger),
		Mock:           usecase.NewMockRecordGenerator(rand.New(rand.NewPCG(1, 2)), false),
		ScheduleSource: sched,
		IDs:            &id.SequenceGenerator{IDs: []string{"refresh-1", "refresh-2"}},
		Logger:         logger,
	})

	auto := &toggle{}
	auto.SetEnabled(true)
	return NewRouter(NewHandler(svc, auto, logger), logger, []string{"*"}), auto
}

func liveRecords(t *testing.T) *teammock.RecordSource {
	t.Helper()

	source := teammock.NewRecordSource(t)
	source.On("FetchTeamRecord", mock.Anything, mock.Anything).Return(
		func(_ context.Context, code string) (team.Record, error) {
			if code == "kc" {
				return team.NewRecord(9, 1), nil
			}
			return team.NewRecord(3, 4), nil
		},
	)
	return source
}

func upcomingScoreboard() schedule.Source {
	week := 7
	return scheduleFunc(func(context.Context) ([]schedule.Event, error) {
		return []schedule.Event{{
			ID:           "401",
			Date:         time.Date(2026, 10, 18, 17, 0, 0, 0, time.UTC),
			StatusName:   schedule.StatusScheduled,
			StatusDetail: "10/18 - 1:00 PM EDT",
			Week:         &week,
			Competitors: []schedule.Competitor{
				{HomeAway: schedule.HomeSide, DisplayName: "Kansas City Chiefs"},
				{HomeAway: schedule.AwaySide, DisplayName: "Buffalo Bills"},
			},
		}}, nil
	})
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	if err := sonic.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal response: %v (raw=%s)", err, rec.Body.String())
	}
	return out
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	h, _ := newTestServer(t, teammock.NewRecordSource(t), upcomingScoreboard())
	rec := do(t, h, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := decode[envelope](t, rec); body.Data["status"] != "ok" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestDashboard_BeforeFirstRefresh(t *testing.T) {
	t.Parallel()

	h, _ := newTestServer(t, teammock.NewRecordSource(t), upcomingScoreboard())
	rec := do(t, h, http.MethodGet, "/v1/dashboard", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := decode[envelope](t, rec)
	if body.Data["lastUpdated"] != nil {
		t.Fatalf("expected null lastUpdated before first refresh, got %v", body.Data["lastUpdated"])
	}
	owners, _ := body.Data["owners"].([]any)
	if len(owners) != 4 {
		t.Fatalf("expected 4 owner cards, got %d", len(owners))
	}
	sched, _ := body.Data["schedule"].(map[string]any)
	if sched["status"] != string(usecase.ScheduleStatusPending) {
		t.Fatalf("expected pending schedule, got %v", sched["status"])
	}
}

func TestRefreshThenRead(t *testing.T) {
	t.Parallel()

	h, _ := newTestServer(t, liveRecords(t), upcomingScoreboard())

	rec := do(t, h, http.MethodPost, "/v1/refresh", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	status := decode[envelope](t, rec).Data
	if status["provenance"] != string(team.ProvenanceLive) || status["state"] != string(usecase.RefreshStateDisplaying) {
		t.Fatalf("unexpected refresh status: %+v", status)
	}
	if status["refreshId"] != "refresh-1" || status["coverage"] != float64(32) {
		t.Fatalf("unexpected refresh metadata: %+v", status)
	}

	teams := decode[listEnvelope](t, do(t, h, http.MethodGet, "/v1/teams?sort=wins", ""))
	if len(teams.Data) != 32 {
		t.Fatalf("expected 32 teams, got %d", len(teams.Data))
	}
	if teams.Data[0]["team"] != "Kansas City Chiefs" || teams.Data[0]["winsPerDollar"] != "0.300" {
		t.Fatalf("unexpected top team: %+v", teams.Data[0])
	}

	byName := decode[listEnvelope](t, do(t, h, http.MethodGet, "/v1/teams", ""))
	if byName.Data[0]["team"] != "Arizona Cardinals" {
		t.Fatalf("expected alphabetical default order, got %v", byName.Data[0]["team"])
	}

	owners := decode[listEnvelope](t, do(t, h, http.MethodGet, "/v1/owners", ""))
	if owners.Data[0]["owner"] != "Alex" || owners.Data[0]["anchor"] != "owner-alex" || owners.Data[0]["rank"] != float64(1) {
		t.Fatalf("unexpected leading owner: %+v", owners.Data[0])
	}

	sched := decode[envelope](t, do(t, h, http.MethodGet, "/v1/schedule", "")).Data
	games, _ := sched["games"].([]any)
	if sched["status"] != string(usecase.ScheduleStatusReady) || len(games) != 1 {
		t.Fatalf("unexpected schedule: %+v", sched)
	}
	game := games[0].(map[string]any)
	if game["matchup"] != "Buffalo Bills @ Kansas City Chiefs" || game["week"] != "7" {
		t.Fatalf("unexpected game row: %+v", game)
	}
	if game["ownersLine"] != "Bills (Jordan) vs Chiefs (Alex)" {
		t.Fatalf("unexpected owners line: %v", game["ownersLine"])
	}
}

func TestRefresh_FallsBackToSynthetic(t *testing.T) {
	t.Parallel()

	source := teammock.NewRecordSource(t)
	source.On("FetchTeamRecord", mock.Anything, mock.Anything).Return(team.Record{}, errors.New("status 503"))
	failing := scheduleFunc(func(context.Context) ([]schedule.Event, error) { return nil, errors.New("down") })
	h, _ := newTestServer(t, source, failing)

	status := decode[envelope](t, do(t, h, http.MethodPost, "/v1/refresh", "")).Data
	if status["provenance"] != string(team.ProvenanceSynthetic) || status["coverage"] != float64(0) {
		t.Fatalf("unexpected status: %+v", status)
	}

	sched := decode[envelope](t, do(t, h, http.MethodGet, "/v1/schedule", "")).Data
	if sched["status"] != string(usecase.ScheduleStatusFailed) || sched["message"] != usecase.ScheduleFailureMessage {
		t.Fatalf("unexpected schedule: %+v", sched)
	}

	current := decode[envelope](t, do(t, h, http.MethodGet, "/v1/refresh/status", "")).Data
	if current["provenance"] != string(team.ProvenanceSynthetic) || current["lastUpdated"] == nil {
		t.Fatalf("unexpected current status: %+v", current)
	}
}

func TestListTeams_RejectsUnknownSort(t *testing.T) {
	t.Parallel()

	h, _ := newTestServer(t, teammock.NewRecordSource(t), upcomingScoreboard())
	rec := do(t, h, http.MethodGet, "/v1/teams?sort=losses", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body := decode[envelope](t, rec); body.Error["status"] != "INVALID_ARGUMENT" {
		t.Fatalf("unexpected error body: %+v", body.Error)
	}
}

func TestSetAutoRefresh(t *testing.T) {
	t.Parallel()

	h, auto := newTestServer(t, teammock.NewRecordSource(t), upcomingScoreboard())

	rec := do(t, h, http.MethodPut, "/v1/auto-refresh", `{"enabled": false}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	if auto.Enabled() {
		t.Fatalf("expected auto refresh disabled")
	}
	if body := decode[envelope](t, rec); body.Data["enabled"] != false {
		t.Fatalf("unexpected body: %+v", body.Data)
	}

	cases := map[string]string{
		"missing field": `{}`,
		"unknown field": `{"enabled": true, "interval": "1m"}`,
		"bad json":      `{"enabled":`,
	}
	for name, body := range cases {
		rec := do(t, h, http.MethodPut, "/v1/auto-refresh", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", name, rec.Code)
		}
	}
	if auto.Enabled() {
		t.Fatalf("rejected requests must not toggle auto refresh")
	}
}

func TestRouter_RejectsWrongMethod(t *testing.T) {
	t.Parallel()

	h, _ := newTestServer(t, teammock.NewRecordSource(t), upcomingScoreboard())
	if rec := do(t, h, http.MethodGet, "/v1/refresh", ""); rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestWriteDashboardJSON(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	view := usecase.Dashboard{
		RefreshID:  "r-1",
		Provenance: team.ProvenanceSynthetic,
		Owners:     []usecase.OwnerCard{{OwnerSummary: usecase.OwnerSummary{Owner: "Mary Jo"}, Rank: 1, Anchor: "owner-mary-jo"}},
		Schedule:   usecase.ScheduleSection{Status: usecase.ScheduleStatusEmpty, Message: usecase.ScheduleEmptyMessage},
	}
	if err := WriteDashboardJSON(&buf, view, true); err != nil {
		t.Fatalf("write dashboard: %v", err)
	}

	var out map[string]any
	if err := sonic.UnmarshalString(buf.String(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out["provenance"] != "synthetic" || out["lastUpdated"] != nil {
		t.Fatalf("unexpected payload: %v", out)
	}
	if !strings.Contains(buf.String(), "\n  \"") {
		t.Fatalf("expected indented output, got %q", buf.String())
	}
}

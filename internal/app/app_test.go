package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/wins-pool/internal/config"
	"github.com/riskibarqy/wins-pool/internal/domain/schedule"
	"github.com/riskibarqy/wins-pool/internal/domain/team"
	"github.com/riskibarqy/wins-pool/internal/platform/logging"
	"github.com/riskibarqy/wins-pool/internal/platform/resilience"
	"github.com/riskibarqy/wins-pool/internal/usecase"
)

type recordFunc func(ctx context.Context, code string) (team.Record, error)

func (f recordFunc) FetchTeamRecord(ctx context.Context, code string) (team.Record, error) {
	return f(ctx, code)
}

type scheduleFunc func(ctx context.Context) ([]schedule.Event, error)

func (f scheduleFunc) FetchScoreboard(ctx context.Context) ([]schedule.Event, error) { return f(ctx) }

func testConfig() config.Config {
	return config.Config{
		AppEnv:             config.EnvDev,
		HTTPAddr:           ":0",
		CORSAllowedOrigins: []string{"*"},
		ReadTimeout:        time.Second,
		WriteTimeout:       time.Second,
		FetchWorkers:       4,
		CoverageThreshold:  0,
		RefreshInterval:    time.Minute,
	}
}

func TestNewWithSources_WiresRefreshAndRouter(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "roster.json")
	raw := `{"teams":[
		{"name":"Detroit Lions","code":"DET","owner":"Sam","bet":10},
		{"name":"Chicago Bears","code":"CHI","owner":"Alex","bet":5}
	]}`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write roster: %v", err)
	}

	cfg := testConfig()
	cfg.RosterFile = path

	a, err := NewWithSources(cfg, logging.NewNop(), Sources{
		Records: recordFunc(func(_ context.Context, code string) (team.Record, error) {
			if code == "det" {
				return team.NewRecord(6, 1), nil
			}
			return team.Record{}, errors.New("status 500")
		}),
		Schedule: scheduleFunc(func(context.Context) ([]schedule.Event, error) { return nil, nil }),
	})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}

	status, _ := a.Dashboard.Refresh(context.Background())
	if status.Provenance != team.ProvenanceLive || status.Coverage != 1 {
		t.Fatalf("unexpected status: %+v", status)
	}
	if a.Dashboard.Schedule().Status != usecase.ScheduleStatusEmpty {
		t.Fatalf("expected empty schedule, got %s", a.Dashboard.Schedule().Status)
	}

	srv, err := a.NewHTTPServer()
	if err != nil {
		t.Fatalf("new http server: %v", err)
	}
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/owners", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestNewWithSources_RejectsBadRoster(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.RosterFile = filepath.Join(t.TempDir(), "missing.json")

	if _, err := NewWithSources(cfg, nil, Sources{}); err == nil {
		t.Fatalf("expected error for missing roster file")
	}
}

func TestNewHTTPServer_RequiresAddr(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.HTTPAddr = ""
	a, err := NewWithSources(cfg, nil, Sources{})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	if _, err := a.NewHTTPServer(); err == nil {
		t.Fatalf("expected error for empty addr")
	}
}

func TestNew_RecoversLiveRecordsAfterUpstreamOutage(t *testing.T) {
	t.Parallel()

	var healthy atomic.Bool
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !healthy.Load() {
			http.Error(w, "upstream down", http.StatusInternalServerError)
			return
		}
		if r.URL.Path == "/scoreboard" {
			_, _ = w.Write([]byte(`{"events":[]}`))
			return
		}
		code := strings.ToUpper(strings.TrimPrefix(r.URL.Path, "/teams/"))
		_, _ = w.Write([]byte(`{"team":{"abbreviation":"` + code + `","record":{"items":[` +
			`{"type":"total","summary":"3-1","stats":[{"name":"wins","value":3},{"name":"losses","value":1}]}]}}}`))
	}))
	t.Cleanup(upstream.Close)

	cfg := testConfig()
	cfg.FetchWorkers = 32
	cfg.CoverageThreshold = 20
	cfg.ESPNBaseURL = upstream.URL
	cfg.ESPNTimeout = 2 * time.Second
	cfg.ESPNCircuit = resilience.CircuitBreakerConfig{
		Enabled: true, FailureThreshold: 8, OpenTimeout: 50 * time.Millisecond, HalfOpenMaxReq: 2,
	}

	a, err := New(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}

	first, _ := a.Dashboard.Refresh(context.Background())
	if first.Provenance != team.ProvenanceSynthetic {
		t.Fatalf("expected synthetic records during outage, got %+v", first)
	}

	healthy.Store(true)
	time.Sleep(100 * time.Millisecond)

	second, _ := a.Dashboard.Refresh(context.Background())
	if second.Provenance != team.ProvenanceLive {
		t.Fatalf("expected live records once upstream recovers, got %+v", second)
	}
	if second.Coverage != 32 {
		t.Fatalf("expected every team to resolve, got coverage %d", second.Coverage)
	}
}

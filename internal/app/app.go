package app

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/wins-pool/external/espn"
	"github.com/riskibarqy/wins-pool/internal/config"
	"github.com/riskibarqy/wins-pool/internal/domain/schedule"
	"github.com/riskibarqy/wins-pool/internal/domain/team"
	"github.com/riskibarqy/wins-pool/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/wins-pool/internal/interfaces/httpapi"
	"github.com/riskibarqy/wins-pool/internal/observability"
	idgen "github.com/riskibarqy/wins-pool/internal/platform/id"
	"github.com/riskibarqy/wins-pool/internal/platform/logging"
	"github.com/riskibarqy/wins-pool/internal/usecase"
)

// App holds the wired services shared by the serve and snapshot commands.
type App struct {
	Config      config.Config
	Logger      *logging.Logger
	Dashboard   *usecase.DashboardService
	AutoRefresh *usecase.AutoRefresher
}

// Sources lets callers swap the upstream data sources, mainly in tests.
type Sources struct {
	Records  team.RecordSource
	Schedule schedule.Source
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	client := espn.NewClient(espn.ClientConfig{
		BaseURL:        cfg.ESPNBaseURL,
		Timeout:        cfg.ESPNTimeout,
		MaxRetries:     cfg.ESPNMaxRetries,
		RateLimitRPS:   cfg.ESPNRateLimitRPS,
		Logger:         logger,
		CircuitBreaker: cfg.ESPNCircuit,
	})

	return NewWithSources(cfg, logger, Sources{Records: client, Schedule: client})
}

func NewWithSources(cfg config.Config, logger *logging.Logger, sources Sources) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	roster, err := memory.LoadRoster(cfg.RosterFile)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}

	metrics, err := observability.NewRefreshRecorder(nil)
	if err != nil {
		return nil, fmt.Errorf("register refresh metrics: %w", err)
	}

	refreshLogger := logger.Named("refresh")
	dashboard := usecase.NewDashboardService(usecase.DashboardDeps{
		Roster:         roster,
		Fetcher:        usecase.NewRecordFetcher(sources.Records, cfg.FetchWorkers, cfg.CoverageThreshold, refreshLogger),
		Mock:           usecase.NewMockRecordGenerator(nil, cfg.MockConsistentSummary),
		ScheduleSource: sources.Schedule,
		IDs:            idgen.NewUUIDGenerator(),
		Metrics:        metrics,
		Labels:         observability.LabelRefreshStage,
		Logger:         refreshLogger,
	})

	logger.Info("roster loaded",
		"teams", roster.Table.Len(),
		"owners", len(roster.Table.Owners()),
		"source", rosterSource(cfg.RosterFile),
	)

	return &App{
		Config:      cfg,
		Logger:      logger,
		Dashboard:   dashboard,
		AutoRefresh: usecase.NewAutoRefresher(dashboard, cfg.RefreshInterval, cfg.AutoRefreshEnabled, logger.Named("auto_refresh")),
	}, nil
}

func (a *App) NewHTTPServer() (*http.Server, error) {
	handler := httpapi.NewHandler(a.Dashboard, a.AutoRefresh, a.Logger)
	router := httpapi.NewRouter(handler, a.Logger, a.Config.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         a.Config.HTTPAddr,
		Handler:      router,
		ReadTimeout:  a.Config.ReadTimeout,
		WriteTimeout: a.Config.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

func rosterSource(path string) string {
	if path == "" {
		return "builtin"
	}
	return path
}

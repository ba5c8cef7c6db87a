// Command api serves the wins-pool dashboard.
//
// Usage:
//
//	wins-pool serve
//	wins-pool snapshot --pretty
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/riskibarqy/wins-pool/internal/app"
	"github.com/riskibarqy/wins-pool/internal/config"
	"github.com/riskibarqy/wins-pool/internal/interfaces/httpapi"
	"github.com/riskibarqy/wins-pool/internal/observability"
	"github.com/riskibarqy/wins-pool/internal/platform/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:           "wins-pool",
		Short:         "NFL wins pool dashboard API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
	root.AddCommand(serveCmd())
	root.AddCommand(snapshotCmd())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the auto refresher",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func snapshotCmd() *cobra.Command {
	var (
		pretty     bool
		rosterFile string
	)
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Run one refresh cycle and print the dashboard as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			if rosterFile != "" {
				cfg.RosterFile = rosterFile
			}
			return runSnapshot(cmd.Context(), cfg, logger, cmd.OutOrStdout(), pretty)
		},
	}
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent the JSON output")
	cmd.Flags().StringVar(&rosterFile, "roster", "", "Roster JSON file (overrides ROSTER_FILE)")
	return cmd
}

func bootstrap() (config.Config, *logging.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}

	logger := logging.NewJSON(cfg.LogLevel).With("service", cfg.ServiceName, "env", cfg.AppEnv)
	logging.SetDefault(logger)
	return cfg, logger, nil
}

func runServe(ctx context.Context) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	shutdownTelemetry, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		return fmt.Errorf("init uptrace: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			logger.Warn("uptrace shutdown failed", "error", err)
		}
	}()

	stopProfiler, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		return fmt.Errorf("init pyroscope: %w", err)
	}
	defer func() { _ = stopProfiler() }()

	pprofSrv, err := observability.StartPprofServer(cfg, logger)
	if err != nil {
		return fmt.Errorf("start pprof: %w", err)
	}
	defer func() { _ = pprofSrv.Shutdown(shutdownTimeout) }()

	a, err := app.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("build app: %w", err)
	}
	srv, err := a.NewHTTPServer()
	if err != nil {
		return fmt.Errorf("build http server: %w", err)
	}

	refreshCtx, cancelRefresh := context.WithCancel(ctx)
	defer cancelRefresh()
	a.AutoRefresh.Start(refreshCtx)
	defer a.AutoRefresh.Stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server starting", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("http server stopped")
	return nil
}

func runSnapshot(ctx context.Context, cfg config.Config, logger *logging.Logger, out io.Writer, pretty bool) error {
	a, err := app.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("build app: %w", err)
	}

	status, _ := a.Dashboard.Refresh(ctx)
	logger.InfoContext(ctx, "snapshot refreshed",
		"provenance", string(status.Provenance),
		"coverage", status.Coverage,
	)

	return httpapi.WriteDashboardJSON(out, a.Dashboard.Dashboard(ctx), pretty)
}

package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/huangsam/debtboard/core"
	"github.com/huangsam/debtboard/internal/contract"
	"github.com/huangsam/debtboard/internal/dashboard"
	"github.com/huangsam/debtboard/internal/logging"
	"github.com/huangsam/debtboard/internal/web"
	"github.com/huangsam/debtboard/schema"
	"github.com/m-mizutani/ctxlog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// serveCmd runs the HTML dashboard.
var serveCmd = &cobra.Command{
	Use:   "serve [report]",
	Short: "Serve the technical debt dashboard over HTTP.",
	Long: `Start the HTML dashboard for a technical debt report.

Without a report, the bundled sample report appears after --initial-delay.
Reports can be replaced at any time by uploading or dropping a JSON file on the
dashboard. A failed upload keeps the current report and shows a notification.

With --watch, the report file is reloaded whenever it changes on disk.

Endpoints:
  /            landing page
  /dashboard   dashboard (query: q, status, sort, dir)
  /api/report  current report as JSON
  /api/files   filtered file list as JSON
  /api/folders directory groups as JSON
  /healthz     health check
  /metrics     Prometheus metrics

Examples:
  # Demo with the sample report
  debtboard serve

  # Live dashboard for a report regenerated by CI
  debtboard serve reports/debt.json --watch --addr :8080`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runServe(rootCtx, cfg)
	},
}

// runServe wires the app, the server and the optional watcher until a signal arrives.
func runServe(ctx context.Context, cfg *contract.Config) error {
	logger := logging.NewLoggerWithFormat(cfg.LogLevel, os.Stderr, cfg.LogFormat)
	slog.SetDefault(logger)
	ctx = ctxlog.With(ctx, logger)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := dashboard.NewApp()
	metrics := web.NewMetrics()

	if cfg.UsesSampleReport() {
		// The sample is installed by the server once the dashboard is first entered
		if cfg.Watch {
			logger.Warn("Ignoring --watch since no report file was given")
		}
	} else {
		applied, err := app.Load(cfg.ReportPath, func() (*schema.TechnicalDebtReport, error) {
			return core.LoadReportFile(cfg.ReportPath)
		})
		metrics.ObserveLoad(applied, err)
		if err != nil {
			// The dashboard shows the notification; a later upload or write can fix it
			logger.Warn("Failed to load report", "path", cfg.ReportPath, "error", err)
		}
	}

	server := web.NewServer(ctx, cfg, app, metrics)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(gCtx)
	})
	if cfg.Watch && !cfg.UsesSampleReport() {
		watcher := dashboard.NewWatcher(app, cfg.ReportPath, metrics.ObserveLoad)
		g.Go(func() error {
			return watcher.Run(gCtx)
		})
	}

	logger.Info("Dashboard ready", "url", "http://"+cfg.ServeAddr, "report", reportName(cfg))
	return g.Wait()
}

// reportName returns the label used for the configured report in logs.
func reportName(cfg *contract.Config) string {
	if cfg.UsesSampleReport() {
		return "sample"
	}
	return cfg.ReportPath
}

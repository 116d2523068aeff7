// Package core has core logic for loading, grouping, filtering and presenting reports.
package core

import (
	"context"
	"errors"
	"time"

	"github.com/huangsam/debtboard/internal/contract"
	"github.com/huangsam/debtboard/schema"
)

// ExecutorFunc defines the function signature for executing different report views.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config) error

// archiveListLimit is the number of archived reports shown by the list command.
const archiveListLimit = 50

// loadConfiguredReport loads the report named by the config.
// An empty report path selects the bundled sample report.
func loadConfiguredReport(cfg *contract.Config) (*schema.TechnicalDebtReport, error) {
	if cfg.UsesSampleReport() {
		return schema.MockReport(), nil
	}
	return LoadReportFile(cfg.ReportPath)
}

// ExecuteOverview prints the overview cards of the report.
func ExecuteOverview(_ context.Context, cfg *contract.Config) error {
	start := time.Now()
	report, err := loadConfiguredReport(cfg)
	if err != nil {
		return err
	}
	return writer.WriteOverview(report, cfg, time.Since(start))
}

// ExecuteFiles prints the file explorer with the configured search, filter and sort.
func ExecuteFiles(_ context.Context, cfg *contract.Config) error {
	start := time.Now()
	report, err := loadConfiguredReport(cfg)
	if err != nil {
		return err
	}
	files := FilterAndSort(report.Files, cfg.Search, cfg.StatusFilter, cfg.SortField, cfg.SortDirection)
	return writer.WriteFiles(files, len(report.Files), cfg, time.Since(start))
}

// ExecuteFolders prints the files grouped by their immediate parent directory.
func ExecuteFolders(_ context.Context, cfg *contract.Config) error {
	start := time.Now()
	report, err := loadConfiguredReport(cfg)
	if err != nil {
		return err
	}
	return writer.WriteFolders(GroupByDirectory(report.Files), cfg, time.Since(start))
}

// ExecuteRecommendations prints the recommendations of the report.
func ExecuteRecommendations(_ context.Context, cfg *contract.Config) error {
	start := time.Now()
	report, err := loadConfiguredReport(cfg)
	if err != nil {
		return err
	}
	return writer.WriteRecommendations(report.Recommendations, cfg, time.Since(start))
}

// ExecuteTrends prints the trend history of the report.
func ExecuteTrends(_ context.Context, cfg *contract.Config) error {
	start := time.Now()
	report, err := loadConfiguredReport(cfg)
	if err != nil {
		return err
	}
	return writer.WriteTrends(report.Trends, cfg, time.Since(start))
}

// ExecuteArchiveSave loads the configured report and stores it in the archive.
func ExecuteArchiveSave(_ context.Context, cfg *contract.Config, mgr contract.ArchiveManager) (int64, error) {
	store, err := archiveStore(mgr)
	if err != nil {
		return 0, err
	}
	report, err := loadConfiguredReport(cfg)
	if err != nil {
		return 0, err
	}
	source := "sample"
	if !cfg.UsesSampleReport() {
		source = cfg.ReportPath
	}
	return store.SaveReport(report, source, time.Now().UTC())
}

// ExecuteArchiveList prints the most recent archived reports.
func ExecuteArchiveList(_ context.Context, cfg *contract.Config, mgr contract.ArchiveManager) error {
	start := time.Now()
	store, err := archiveStore(mgr)
	if err != nil {
		return err
	}
	records, err := store.ListReports(archiveListLimit)
	if err != nil {
		return err
	}
	return writer.WriteArchivedReports(records, cfg, time.Since(start))
}

// ExecuteArchiveTrend prints the debt ratio of every archived report as a trend.
func ExecuteArchiveTrend(_ context.Context, cfg *contract.Config, mgr contract.ArchiveManager) error {
	start := time.Now()
	store, err := archiveStore(mgr)
	if err != nil {
		return err
	}
	trend, err := store.GetTrend()
	if err != nil {
		return err
	}
	return writer.WriteTrends(trend, cfg, time.Since(start))
}

// archiveStore returns the configured archive store or an error when archiving is disabled.
func archiveStore(mgr contract.ArchiveManager) (contract.ArchiveStore, error) {
	if mgr == nil {
		return nil, errors.New("archive is not initialized")
	}
	store := mgr.GetArchiveStore()
	if store == nil {
		return nil, errors.New("archive is disabled; set --archive-backend")
	}
	return store, nil
}

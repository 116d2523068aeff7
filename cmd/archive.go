package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/debtboard/core"
	"github.com/huangsam/debtboard/internal/contract"
	"github.com/huangsam/debtboard/internal/iocache"
	"github.com/huangsam/debtboard/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// archiveMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize stores or create tables,
// allowing migrations to run on a fresh database.
func archiveMigrateSetup(_ *cobra.Command, _ []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("archive-backend"))
	connStr := viper.GetString("archive-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetArchiveDBFilePath()
	}

	cfg.ArchiveBackend = backend
	cfg.ArchiveDBConnect = connStr
	return nil
}

// archiveCmd focused on report archive management.
//
// Note: The clear and migrate subcommands avoid opening the store so they work on
// a broken or empty database.
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Keep a history of reports for trend tracking and exports",
	Long: `Manage the report archive used for trend tracking across runs.

Every saved report stores:
- Its overview (debt ratio, cost, hours, severity)
- One row per file with score, complexity, size and status

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  save    - Archive a report
  list    - Show the most recent archived reports
  trend   - Show the debt ratio of every archived report
  status  - Show archive statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all archived data
  migrate - Run database schema migrations

Examples:
  # Archive the report produced by CI
  debtboard archive save reports/debt.json

  # Debt ratio across archived runs
  debtboard archive trend`,
}

// archiveSaveCmd stores a report.
var archiveSaveCmd = &cobra.Command{
	Use:     "save [report]",
	Short:   "Archive a report",
	Args:    cobra.MaximumNArgs(1),
	PreRunE: archiveSetup,
	Run: func(_ *cobra.Command, _ []string) {
		id, err := core.ExecuteArchiveSave(rootCtx, cfg, archiveManager)
		if err != nil {
			contract.LogFatal("Failed to archive report", err)
		}
		fmt.Printf("Archived report %d.\n", id)
	},
}

// archiveListCmd shows the latest archived reports.
var archiveListCmd = &cobra.Command{
	Use:     "list",
	Short:   "Show the most recent archived reports",
	Args:    cobra.NoArgs,
	PreRunE: archiveSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteArchiveList(rootCtx, cfg, archiveManager); err != nil {
			contract.LogFatal("Failed to list archived reports", err)
		}
	},
}

// archiveTrendCmd shows the archived debt ratios as a trend.
var archiveTrendCmd = &cobra.Command{
	Use:     "trend",
	Short:   "Show the debt ratio of every archived report",
	Args:    cobra.NoArgs,
	PreRunE: archiveSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteArchiveTrend(rootCtx, cfg, archiveManager); err != nil {
			contract.LogFatal("Failed to show archive trend", err)
		}
	},
}

// archiveStatusCmd shows archive status.
var archiveStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display archive statistics and connection details",
	Long: `Show detailed information about the report archive.

Displays:
- Backend type and connection status
- Total number of archived reports
- Last and oldest save timestamps
- Total file rows across all reports
- Database table sizes`,
	Args:    cobra.NoArgs,
	PreRunE: archiveSetup,
	Run: func(_ *cobra.Command, _ []string) {
		status := schema.ArchiveStatus{Backend: string(cfg.ArchiveBackend)}
		if store := archiveManager.GetArchiveStore(); store != nil {
			var err error
			if status, err = store.GetStatus(); err != nil {
				contract.LogFatal("Failed to get archive status", err)
			}
		}
		iocache.PrintArchiveStatus(os.Stdout, status)
	},
}

// archiveExportCmd exports archive data to Parquet files.
var archiveExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export archived reports and file rows to Parquet",
	Long: `Export the archive to two Parquet files for pandas, DuckDB or Spark.

Given --output-file data.parquet, the files written are:
  data.reports.parquet
  data.file_scores.parquet`,
	Args:    cobra.NoArgs,
	PreRunE: archiveSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExportArchive(archiveManager.GetArchiveStore(), cfg.OutputFile, os.Stdout); err != nil {
			contract.LogFatal("Failed to export archive", err)
		}
	},
}

// archiveClearCmd clears the archive.
var archiveClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all archived reports",
	Long: `Delete all archived reports and file rows.

WARNING: This action cannot be undone. Consider exporting data first.`,
	Args:    cobra.NoArgs,
	PreRunE: archiveMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearArchive(cfg.ArchiveBackend, cfg.ArchiveDBConnect, cfg.ArchiveDBConnect); err != nil {
			contract.LogFatal("Failed to clear archive", err)
		}
		fmt.Println("Archive cleared successfully.")
	},
}

// archiveMigrateCmd runs database migrations.
var archiveMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run archive schema migrations",
	Long: `Apply or roll back the embedded archive schema migrations.

Examples:
  # Migrate to the latest version
  debtboard archive migrate

  # Roll back everything
  debtboard archive migrate --target-version 0`,
	Args:    cobra.NoArgs,
	PreRunE: archiveMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateArchive(cfg.ArchiveBackend, cfg.ArchiveDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}

package iocache

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/debtboard/internal/contract"
	"github.com/huangsam/debtboard/internal/parquet"
)

// ExportArchive writes every archived report and file row to two Parquet files
// named after outputFile. Progress is written to w.
func ExportArchive(store contract.ArchiveStore, outputFile string, w io.Writer) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("archive is disabled; set --archive-backend")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get archive status: %w", err)
	}
	if status.TotalReports == 0 {
		return errors.New("no archived reports found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total reports: %d\n", status.TotalReports)
	_, _ = fmt.Fprintf(w, "Total file records: %d\n", status.TotalFileRows)

	reports, err := store.ListReports(0)
	if err != nil {
		return fmt.Errorf("failed to retrieve reports: %w", err)
	}
	files, err := store.AllFileRecords()
	if err != nil {
		return fmt.Errorf("failed to retrieve file records: %w", err)
	}

	reportRows := parquet.ConvertReportRunRecords(reports)
	reportsFile := outputFile + ".reports.parquet"
	if err := parquet.WriteReportRunsParquet(reportRows, reportsFile); err != nil {
		return fmt.Errorf("failed to write reports: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d reports to: %s\n", len(reportRows), reportsFile)

	fileRows := parquet.ConvertFileRecords(files)
	filesFile := outputFile + ".file_scores.parquet"
	if err := parquet.WriteFileScoresParquet(fileRows, filesFile); err != nil {
		return fmt.Errorf("failed to write file scores: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d file score records to: %s\n", len(fileRows), filesFile)

	_, _ = fmt.Fprintln(w, "\nExport complete! The Parquet files can be used with DuckDB, Pandas (via pyarrow), Spark and Arrow.")
	return nil
}

// Package parquet provides data structures and functions for exporting debtboard
// report data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/debtboard/schema"
	"github.com/parquet-go/parquet-go"
)

// ReportRun represents a single archived report with its overview.
// This struct maps to the debtboard_reports database table.
type ReportRun struct {
	// ReportID is the unique identifier for this archived report
	ReportID int64 `parquet:"report_id,snappy"`

	// Source is the file the report was loaded from ("sample" for the bundled report)
	Source string `parquet:"source,snappy"`

	// SavedAt is when the report was archived (stored as TIMESTAMP with nanosecond precision)
	SavedAt time.Time `parquet:"saved_at,snappy"`

	TotalFiles     int32   `parquet:"total_files,snappy"`
	DebtRatio      float64 `parquet:"debt_ratio,snappy"`
	EstimatedHours float64 `parquet:"estimated_hours,snappy"`
	EstimatedCost  float64 `parquet:"estimated_cost,snappy"`
	Severity       string  `parquet:"severity,snappy"`

	// FileCount is the number of file rows stored with the report
	FileCount int32 `parquet:"file_count,snappy"`
}

// FileScore represents the debt score of a single file in a report.
// This struct maps to the debtboard_file_scores database table.
type FileScore struct {
	// ReportID references the parent report (0 when exported straight from a loaded report)
	ReportID int64 `parquet:"report_id,snappy"`

	// FilePath is the path of the file as given in the report
	FilePath string `parquet:"file_path,snappy"`

	SavedAt     time.Time `parquet:"saved_at,snappy"`
	Score       float64   `parquet:"score,snappy"`
	Complexity  int32     `parquet:"complexity,snappy"`
	Size        int32     `parquet:"size,snappy"`
	Duplication bool      `parquet:"duplication,snappy"`

	// ChangeFrequency is optional in reports (nullable)
	ChangeFrequency *int32 `parquet:"change_frequency,optional,snappy"`

	Status string `parquet:"status,snappy"`
}

// writeRows writes rows of any struct type to w using struct schema inference.
func writeRows[T any](w io.Writer, data []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// writeRowsToPath creates outputPath and writes rows to it.
func writeRowsToPath[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return writeRows(file, data)
}

// WriteReportRunsParquet writes a slice of ReportRun structs to a Parquet file.
func WriteReportRunsParquet(data []ReportRun, outputPath string) error {
	return writeRowsToPath(data, outputPath)
}

// WriteFileScoresParquet writes a slice of FileScore structs to a Parquet file.
func WriteFileScoresParquet(data []FileScore, outputPath string) error {
	return writeRowsToPath(data, outputPath)
}

// WriteFileScores writes a slice of FileScore structs to w.
func WriteFileScores(w io.Writer, data []FileScore) error {
	return writeRows(w, data)
}

// ConvertReportRunRecords converts schema.ReportRunRecord to ReportRun for Parquet export.
func ConvertReportRunRecords(records []schema.ReportRunRecord) []ReportRun {
	result := make([]ReportRun, len(records))
	for i, record := range records {
		result[i] = ReportRun{
			ReportID:       record.ReportID,
			Source:         record.Source,
			SavedAt:        record.SavedAt,
			TotalFiles:     record.TotalFiles,
			DebtRatio:      record.DebtRatio,
			EstimatedHours: record.EstimatedHours,
			EstimatedCost:  record.EstimatedCost,
			Severity:       record.Severity,
			FileCount:      record.FileCount,
		}
	}
	return result
}

// ConvertFileRecords converts schema.FileRecord to FileScore for Parquet export.
func ConvertFileRecords(records []schema.FileRecord) []FileScore {
	result := make([]FileScore, len(records))
	for i, record := range records {
		result[i] = FileScore{
			ReportID:        record.ReportID,
			FilePath:        record.FilePath,
			SavedAt:         record.SavedAt,
			Score:           record.Score,
			Complexity:      record.Complexity,
			Size:            record.Size,
			Duplication:     record.Duplication,
			ChangeFrequency: record.ChangeFrequency,
			Status:          record.Status,
		}
	}
	return result
}

// ConvertFileDebtScores converts report entries to FileScore rows stamped with savedAt.
func ConvertFileDebtScores(files []schema.FileDebtScore, savedAt time.Time) []FileScore {
	return ConvertFileRecords(schema.FileRecordsFromScores(0, files, savedAt))
}

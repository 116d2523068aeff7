// Package contract provides interfaces and shared utilities for debtboard's internal architecture.
package contract

import (
	"time"

	"github.com/huangsam/debtboard/schema"
)

// ArchiveManager defines the interface for managing the report archive.
// This allows the archive layer to be mocked for testing.
type ArchiveManager interface {
	GetArchiveStore() ArchiveStore
}

// ArchiveStore defines the interface for keeping a history of loaded reports.
type ArchiveStore interface {
	// SaveReport stores the overview and per-file rows of a report and returns its unique ID
	SaveReport(report *schema.TechnicalDebtReport, source string, savedAt time.Time) (int64, error)

	// ListReports returns the most recent saved reports, newest first (limit <= 0 means all)
	ListReports(limit int) ([]schema.ReportRunRecord, error)

	// GetTrend returns the saved debt ratios as trend points in save order
	GetTrend() ([]schema.TrendData, error)

	// AllFileRecords returns the per-file rows of every saved report
	AllFileRecords() ([]schema.FileRecord, error)

	// GetStatus returns status information about the archive
	GetStatus() (schema.ArchiveStatus, error)

	// Close closes the underlying connection
	Close() error
}

// ReportSource provides the report that is currently presented.
// The returned value must be treated as read-only.
type ReportSource interface {
	Report() *schema.TechnicalDebtReport
}

package schema

import "time"

// ArchiveStatus represents the status of the report archive.
type ArchiveStatus struct {
	Backend         string           `json:"backend"`
	Connected       bool             `json:"connected"`
	TotalReports    int              `json:"total_reports"`
	LastReportID    int64            `json:"last_report_id"`
	LastSavedTime   time.Time        `json:"last_saved_time"`
	OldestSavedTime time.Time        `json:"oldest_saved_time"`
	TotalFileRows   int              `json:"total_file_rows"`
	TableSizes      map[string]int64 `json:"table_sizes"`
}

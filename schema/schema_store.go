package schema

import "time"

// ReportRunRecord represents a row from the debtboard_reports table.
type ReportRunRecord struct {
	ReportID       int64
	Source         string
	SavedAt        time.Time
	TotalFiles     int32
	DebtRatio      float64
	EstimatedHours float64
	EstimatedCost  float64
	Severity       string
	FileCount      int32
}

// FileRecord represents a row from the debtboard_file_scores table.
type FileRecord struct {
	ReportID        int64
	FilePath        string
	SavedAt         time.Time
	Score           float64
	Complexity      int32
	Size            int32
	Duplication     bool
	ChangeFrequency *int32
	Status          string
}

// FileRecordsFromScores converts report entries into archive rows for reportID.
func FileRecordsFromScores(reportID int64, files []FileDebtScore, savedAt time.Time) []FileRecord {
	records := make([]FileRecord, len(files))
	for i, f := range files {
		var freq *int32
		if f.ChangeFrequency != nil {
			v := int32(*f.ChangeFrequency)
			freq = &v
		}
		records[i] = FileRecord{
			ReportID:        reportID,
			FilePath:        f.File,
			SavedAt:         savedAt,
			Score:           f.Score,
			Complexity:      int32(f.Complexity),
			Size:            int32(f.Size),
			Duplication:     f.Duplication,
			ChangeFrequency: freq,
			Status:          string(f.Status),
		}
	}
	return records
}

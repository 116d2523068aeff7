// Package schema has the report model, enums and presentation helpers for all parts of debtboard.
package schema

// DebtOverview holds the aggregate counters of a technical debt report.
// Severity is supplied upstream and is not checked against DebtRatio.
type DebtOverview struct {
	TotalFiles     int      `json:"totalFiles" yaml:"totalFiles"`
	DebtRatio      float64  `json:"debtRatio" yaml:"debtRatio"`           // Percentage (0-100)
	EstimatedHours float64  `json:"estimatedHours" yaml:"estimatedHours"` // Remediation effort
	EstimatedCost  float64  `json:"estimatedCost" yaml:"estimatedCost"`   // Currency units
	Severity       Severity `json:"severity" yaml:"severity"`
}

// FileDebtScore is one entry per source file in a report.
// Status and Score are independent fields; Status is never derived from Score.
type FileDebtScore struct {
	File            string     `json:"file" yaml:"file"`   // Path, unique within a report
	Score           float64    `json:"score" yaml:"score"` // 0-100
	Complexity      int        `json:"complexity" yaml:"complexity"`
	Size            int        `json:"size" yaml:"size"` // Line count
	Duplication     bool       `json:"duplication" yaml:"duplication"`
	ChangeFrequency *int       `json:"changeFrequency,omitempty" yaml:"changeFrequency,omitempty"`
	Status          FileStatus `json:"status" yaml:"status"`
}

// FileDebtScoreWithName adds the display name (last path segment) to a FileDebtScore.
type FileDebtScoreWithName struct {
	FileDebtScore `yaml:",inline"`
	FileName      string `json:"fileName" yaml:"fileName"`
}

// Recommendation is a suggested remediation. File does not have to match any FileDebtScore.
type Recommendation struct {
	File           string   `json:"file" yaml:"file"`
	Priority       Priority `json:"priority" yaml:"priority"`
	Reason         string   `json:"reason" yaml:"reason"`
	EstimatedHours float64  `json:"estimatedHours" yaml:"estimatedHours"`
	Impact         string   `json:"impact" yaml:"impact"`
}

// TrendData is a single point of the debt ratio history. Date is kept as supplied.
type TrendData struct {
	Date      string  `json:"date" yaml:"date"`
	DebtRatio float64 `json:"debtRatio" yaml:"debtRatio"`
}

// TechnicalDebtReport is the aggregate root that gets loaded and displayed.
type TechnicalDebtReport struct {
	Overview        DebtOverview     `json:"overview" yaml:"overview"`
	Files           []FileDebtScore  `json:"files" yaml:"files"`
	Recommendations []Recommendation `json:"recommendations" yaml:"recommendations"`
	Trends          []TrendData      `json:"trends,omitempty" yaml:"trends,omitempty"`
}

// DirectoryGroup is one bucket of the heatmap: the files whose immediate parent is Dir.
type DirectoryGroup struct {
	Dir   string                  `json:"dir" yaml:"dir"`
	Files []FileDebtScoreWithName `json:"files" yaml:"files"`
}

// StatusCount is one bar of the file status distribution.
type StatusCount struct {
	Status FileStatus `json:"status" yaml:"status"`
	Count  int        `json:"count" yaml:"count"`
}

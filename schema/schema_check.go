package schema

// CheckResult holds the results of a report gate check.
type CheckResult struct {
	Passed         bool              `json:"passed" yaml:"passed"`
	DebtRatio      float64           `json:"debtRatio" yaml:"debtRatio"`
	MaxDebtRatio   float64           `json:"maxDebtRatio" yaml:"maxDebtRatio"`
	CriticalFiles  int               `json:"criticalFiles" yaml:"criticalFiles"`
	MaxCritical    int               `json:"maxCritical" yaml:"maxCritical"` // Negative disables the limit
	TotalFiles     int               `json:"totalFiles" yaml:"totalFiles"`
	Violations     []CheckViolation  `json:"violations" yaml:"violations"`
	CriticalByPath []CheckFailedFile `json:"criticalByPath" yaml:"criticalByPath"`
}

// CheckViolation describes one threshold that the report exceeded.
type CheckViolation struct {
	Rule      string  `json:"rule" yaml:"rule"`
	Value     float64 `json:"value" yaml:"value"`
	Threshold float64 `json:"threshold" yaml:"threshold"`
}

// CheckFailedFile represents a critical file listed by the check.
type CheckFailedFile struct {
	Path  string  `json:"path" yaml:"path"`
	Score float64 `json:"score" yaml:"score"`
}

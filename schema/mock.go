package schema

// MockReport returns the bundled sample report shown before any file is loaded.
// A fresh value is built on every call so callers can never alias each other.
func MockReport() *TechnicalDebtReport {
	intPtr := func(v int) *int { return &v }

	return &TechnicalDebtReport{
		Overview: DebtOverview{
			TotalFiles:     42,
			DebtRatio:      18.5,
			EstimatedHours: 124,
			EstimatedCost:  6200,
			Severity:       SeverityMedium,
		},
		Files: []FileDebtScore{
			{File: "src/legacy/ProcessHandler.ts", Score: 85, Complexity: 24, Size: 850, Duplication: true, ChangeFrequency: intPtr(15), Status: StatusCritical},
			{File: "src/utils/DateFormatter.ts", Score: 12, Complexity: 3, Size: 45, Status: StatusGood},
			{File: "src/components/ComplexGrid.tsx", Score: 65, Complexity: 18, Size: 320, ChangeFrequency: intPtr(22), Status: StatusCritical},
			{File: "src/api/Middleware.ts", Score: 45, Complexity: 12, Size: 150, Duplication: true, Status: StatusWarning},
			{File: "src/auth/LoginController.ts", Score: 55, Complexity: 14, Size: 200, Status: StatusWarning},
			{File: "src/shared/Types.ts", Score: 5, Complexity: 0, Size: 120, Status: StatusGood},
			{File: "src/legacy/OldParser.js", Score: 92, Complexity: 45, Size: 1200, Duplication: true, Status: StatusCritical},
			{File: "src/views/Dashboard.tsx", Score: 25, Complexity: 8, Size: 180, Status: StatusGood},
			{File: "src/views/Settings.tsx", Score: 35, Complexity: 11, Size: 210, Status: StatusWarning},
		},
		Recommendations: []Recommendation{
			{
				File:           "src/legacy/OldParser.js",
				Priority:       PriorityHigh,
				Reason:         "Extreme cyclomatic complexity (45) and high file size.",
				EstimatedHours: 16,
				Impact:         "Critical core module, refactoring will reduce regression bugs.",
			},
			{
				File:           "src/legacy/ProcessHandler.ts",
				Priority:       PriorityHigh,
				Reason:         "High duplication detected with src/api/Handler.ts",
				EstimatedHours: 8,
				Impact:         "Improve maintainability and reduce bundle size.",
			},
			{
				File:           "src/components/ComplexGrid.tsx",
				Priority:       PriorityMedium,
				Reason:         "Component is too large (>300 lines) and complex.",
				EstimatedHours: 6,
				Impact:         "Easier to test if split into sub-components.",
			},
		},
		Trends: []TrendData{
			{Date: "2023-10-01", DebtRatio: 22},
			{Date: "2023-10-15", DebtRatio: 21},
			{Date: "2023-11-01", DebtRatio: 20},
			{Date: "2023-11-15", DebtRatio: 18.5},
		},
	}
}

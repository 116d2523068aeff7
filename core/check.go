package core

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/huangsam/debtboard/internal/contract"
	"github.com/huangsam/debtboard/schema"
)

// ErrCheckFailed is returned by ExecuteCheck when the report exceeds a threshold.
var ErrCheckFailed = errors.New("report check failed")

// maxCriticalShown caps the critical files listed in the check output.
const maxCriticalShown = 5

// ExecuteCheck runs the check command for CI/CD gating.
// It compares the report against the configured thresholds and returns
// ErrCheckFailed when any threshold is exceeded.
func ExecuteCheck(_ context.Context, cfg *contract.Config) error {
	start := time.Now()
	report, err := loadConfiguredReport(cfg)
	if err != nil {
		return err
	}

	result := BuildCheckResult(report, cfg.MaxDebtRatio, cfg.MaxCritical)
	printCheckResult(os.Stdout, result, time.Since(start))

	if !result.Passed {
		return fmt.Errorf("%w: %d violation(s) found", ErrCheckFailed, len(result.Violations))
	}
	return nil
}

// BuildCheckResult evaluates a report against the gate thresholds.
// A maxDebtRatio of 0 disables the ratio gate and a negative maxCritical
// disables the critical file gate. Status is taken from the report as-is.
func BuildCheckResult(report *schema.TechnicalDebtReport, maxDebtRatio float64, maxCritical int) *schema.CheckResult {
	result := &schema.CheckResult{
		DebtRatio:      report.Overview.DebtRatio,
		MaxDebtRatio:   maxDebtRatio,
		MaxCritical:    maxCritical,
		TotalFiles:     len(report.Files),
		Violations:     []schema.CheckViolation{},
		CriticalByPath: []schema.CheckFailedFile{},
	}

	for _, f := range report.Files {
		if f.Status == schema.StatusCritical {
			result.CriticalByPath = append(result.CriticalByPath, schema.CheckFailedFile{Path: f.File, Score: f.Score})
		}
	}
	result.CriticalFiles = len(result.CriticalByPath)
	slices.SortStableFunc(result.CriticalByPath, func(a, b schema.CheckFailedFile) int {
		return cmp.Compare(b.Score, a.Score)
	})

	if maxDebtRatio > 0 && result.DebtRatio > maxDebtRatio {
		result.Violations = append(result.Violations, schema.CheckViolation{
			Rule:      "debt-ratio",
			Value:     result.DebtRatio,
			Threshold: maxDebtRatio,
		})
	}
	if maxCritical >= 0 && result.CriticalFiles > maxCritical {
		result.Violations = append(result.Violations, schema.CheckViolation{
			Rule:      "critical-files",
			Value:     float64(result.CriticalFiles),
			Threshold: float64(maxCritical),
		})
	}

	result.Passed = len(result.Violations) == 0
	return result
}

// printCheckResult prints the check result in a concise format suitable for CI/CD.
func printCheckResult(w io.Writer, result *schema.CheckResult, duration time.Duration) {
	printCheckHeader(w, result, duration)

	if result.Passed {
		printCheckSuccess(w, result)
	} else {
		printCheckFailure(w, result)
	}
}

// printCheckHeader prints the common header information for check results.
func printCheckHeader(w io.Writer, result *schema.CheckResult, duration time.Duration) {
	_, _ = fmt.Fprintln(w, "Report Check Results:")

	labels := []string{"Debt ratio:", "Critical files:", "Thresholds:"}
	values := []any{
		fmt.Sprintf("%.1f%%", result.DebtRatio),
		result.CriticalFiles,
		fmt.Sprintf("max-debt-ratio=%s, max-critical=%s", formatRatioLimit(result.MaxDebtRatio), formatCountLimit(result.MaxCritical)),
	}

	// Find the longest label for consistent padding
	maxLabelLen := 0
	for _, label := range labels {
		if len(label) > maxLabelLen {
			maxLabelLen = len(label)
		}
	}

	for i, label := range labels {
		_, _ = fmt.Fprintf(w, "  %-*s %v\n", maxLabelLen+1, label, values[i])
	}
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "Checked %d files in %v\n\n", result.TotalFiles, duration)
}

// printCheckSuccess prints the success case output.
func printCheckSuccess(w io.Writer, result *schema.CheckResult) {
	_, _ = fmt.Fprintf(w, "✅ Report passed all checks\n\n")
	if result.CriticalFiles > 0 {
		_, _ = fmt.Fprintf(w, "Highest critical file: %s (score: %.1f)\n", result.CriticalByPath[0].Path, result.CriticalByPath[0].Score)
	}
}

// printCheckFailure prints the failure case output.
func printCheckFailure(w io.Writer, result *schema.CheckResult) {
	_, _ = fmt.Fprintf(w, "❌ Report check failed: %d violation(s) found\n\n", len(result.Violations))

	for _, v := range result.Violations {
		switch v.Rule {
		case "debt-ratio":
			_, _ = fmt.Fprintf(w, "  - debt ratio %.1f%% > threshold %.1f%%\n", v.Value, v.Threshold)
		default:
			_, _ = fmt.Fprintf(w, "  - %s %.0f > threshold %.0f\n", v.Rule, v.Value, v.Threshold)
		}
	}

	if result.CriticalFiles == 0 {
		return
	}
	_, _ = fmt.Fprintf(w, "\nCritical files (%d):\n", result.CriticalFiles)
	for i, f := range result.CriticalByPath {
		if i >= maxCriticalShown {
			_, _ = fmt.Fprintf(w, "  ... and %d more\n", len(result.CriticalByPath)-i)
			break
		}
		_, _ = fmt.Fprintf(w, "  - %s (score: %.1f)\n", f.Path, f.Score)
	}
}

func formatRatioLimit(v float64) string {
	if v <= 0 {
		return "off"
	}
	return fmt.Sprintf("%.1f", v)
}

func formatCountLimit(v int) string {
	if v < 0 {
		return "off"
	}
	return fmt.Sprintf("%d", v)
}

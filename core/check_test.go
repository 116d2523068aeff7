package core

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/debtboard/internal/contract"
	"github.com/huangsam/debtboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCheckResult(t *testing.T) {
	tests := []struct {
		name          string
		maxDebtRatio  float64
		maxCritical   int
		wantPassed    bool
		wantRules     []string
		wantCriticals int
	}{
		{"gates disabled", 0, -1, true, []string{}, 3},
		{"ratio under limit", 20, -1, true, []string{}, 3},
		{"ratio at limit", 18.5, -1, true, []string{}, 3},
		{"ratio over limit", 10, -1, false, []string{"debt-ratio"}, 3},
		{"critical at limit", 0, 3, true, []string{}, 3},
		{"critical over limit", 0, 2, false, []string{"critical-files"}, 3},
		{"zero critical allowed", 0, 0, false, []string{"critical-files"}, 3},
		{"both violated", 5, 1, false, []string{"debt-ratio", "critical-files"}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := BuildCheckResult(schema.MockReport(), tt.maxDebtRatio, tt.maxCritical)
			assert.Equal(t, tt.wantPassed, result.Passed)
			assert.Equal(t, tt.wantCriticals, result.CriticalFiles)
			assert.Equal(t, 9, result.TotalFiles)
			assert.Equal(t, 18.5, result.DebtRatio)

			rules := []string{}
			for _, v := range result.Violations {
				rules = append(rules, v.Rule)
			}
			assert.Equal(t, tt.wantRules, rules)
		})
	}
}

func TestBuildCheckResult_CriticalOrder(t *testing.T) {
	result := BuildCheckResult(schema.MockReport(), 0, -1)
	assert.Equal(t, []schema.CheckFailedFile{
		{Path: "src/legacy/OldParser.js", Score: 92},
		{Path: "src/legacy/ProcessHandler.ts", Score: 85},
		{Path: "src/components/ComplexGrid.tsx", Score: 65},
	}, result.CriticalByPath)
}

func TestBuildCheckResult_StatusNotDerivedFromScore(t *testing.T) {
	report := &schema.TechnicalDebtReport{
		Files: []schema.FileDebtScore{
			{File: "a.go", Score: 99, Status: schema.StatusGood},
			{File: "b.go", Score: 1, Status: schema.StatusCritical},
		},
	}
	result := BuildCheckResult(report, 0, 0)
	assert.Equal(t, 1, result.CriticalFiles)
	assert.Equal(t, "b.go", result.CriticalByPath[0].Path)
	assert.False(t, result.Passed)
}

func TestBuildCheckResult_EmptyReport(t *testing.T) {
	result := BuildCheckResult(&schema.TechnicalDebtReport{}, 10, 0)
	assert.True(t, result.Passed)
	assert.NotNil(t, result.Violations)
	assert.NotNil(t, result.CriticalByPath)
	assert.Zero(t, result.TotalFiles)
}

func TestPrintCheckResult(t *testing.T) {
	t.Run("passed", func(t *testing.T) {
		var buf bytes.Buffer
		printCheckResult(&buf, BuildCheckResult(schema.MockReport(), 0, -1), time.Millisecond)
		out := buf.String()
		assert.Contains(t, out, "Report Check Results:")
		assert.Contains(t, out, "18.5%")
		assert.Contains(t, out, "max-debt-ratio=off, max-critical=off")
		assert.Contains(t, out, "Checked 9 files in 1ms")
		assert.Contains(t, out, "✅ Report passed all checks")
		assert.Contains(t, out, "Highest critical file: src/legacy/OldParser.js (score: 92.0)")
	})

	t.Run("failed", func(t *testing.T) {
		var buf bytes.Buffer
		printCheckResult(&buf, BuildCheckResult(schema.MockReport(), 10, 1), time.Millisecond)
		out := buf.String()
		assert.Contains(t, out, "max-debt-ratio=10.0, max-critical=1")
		assert.Contains(t, out, "❌ Report check failed: 2 violation(s) found")
		assert.Contains(t, out, "  - debt ratio 18.5% > threshold 10.0%")
		assert.Contains(t, out, "  - critical-files 3 > threshold 1")
		assert.Contains(t, out, "Critical files (3):")
		assert.Contains(t, out, "  - src/components/ComplexGrid.tsx (score: 65.0)")
		assert.NotContains(t, out, "... and")
	})

	t.Run("truncates critical list", func(t *testing.T) {
		report := &schema.TechnicalDebtReport{}
		for _, name := range []string{"a", "b", "c", "d", "e", "f", "g"} {
			report.Files = append(report.Files, schema.FileDebtScore{File: name, Score: 50, Status: schema.StatusCritical})
		}
		var buf bytes.Buffer
		printCheckResult(&buf, BuildCheckResult(report, 0, 0), time.Millisecond)
		assert.Contains(t, buf.String(), "  ... and 2 more")
	})
}

func TestExecuteCheck(t *testing.T) {
	t.Run("sample passes without limits", func(t *testing.T) {
		cfg := &contract.Config{MaxCritical: -1}
		assert.NoError(t, ExecuteCheck(context.Background(), cfg))
	})

	t.Run("sample fails ratio gate", func(t *testing.T) {
		cfg := &contract.Config{MaxDebtRatio: 10, MaxCritical: -1}
		err := ExecuteCheck(context.Background(), cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrCheckFailed)
		assert.Contains(t, err.Error(), "1 violation(s) found")
	})

	t.Run("missing report", func(t *testing.T) {
		cfg := &contract.Config{ReportPath: filepath.Join(t.TempDir(), "missing.json"), MaxCritical: -1}
		err := ExecuteCheck(context.Background(), cfg)
		var readErr *ReadError
		assert.ErrorAs(t, err, &readErr)
	})

	t.Run("report from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"overview": {"debtRatio": 3}, "files": []}`), 0o644))
		cfg := &contract.Config{ReportPath: path, MaxDebtRatio: 5, MaxCritical: 0}
		assert.NoError(t, ExecuteCheck(context.Background(), cfg))
	})
}

// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/huangsam/debtboard/internal/contract"
	"github.com/huangsam/debtboard/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteOverview prints the overview cards using the configured output format.
func (ow *OutWriter) WriteOverview(report *schema.TechnicalDebtReport, cfg *contract.Config, duration time.Duration) error {
	return PrintOverview(report, cfg, duration)
}

// WriteFiles prints the file explorer using the configured output format.
func (ow *OutWriter) WriteFiles(files []schema.FileDebtScore, total int, cfg *contract.Config, duration time.Duration) error {
	return PrintFiles(files, total, cfg, duration)
}

// WriteFolders prints the directory groups using the configured output format.
func (ow *OutWriter) WriteFolders(groups []schema.DirectoryGroup, cfg *contract.Config, duration time.Duration) error {
	return PrintFolders(groups, cfg, duration)
}

// WriteRecommendations prints the recommendations using the configured output format.
func (ow *OutWriter) WriteRecommendations(recs []schema.Recommendation, cfg *contract.Config, duration time.Duration) error {
	return PrintRecommendations(recs, cfg, duration)
}

// WriteTrends prints the trend points using the configured output format.
func (ow *OutWriter) WriteTrends(trends []schema.TrendData, cfg *contract.Config, duration time.Duration) error {
	return PrintTrends(trends, cfg, duration)
}

// WriteArchivedReports prints archived report rows using the configured output format.
func (ow *OutWriter) WriteArchivedReports(records []schema.ReportRunRecord, cfg *contract.Config, duration time.Duration) error {
	return PrintArchivedReports(records, cfg, duration)
}

// GetMaxTablePathWidth calculates the maximum width for file paths in table output
// based on terminal width and the width taken by the other columns.
func GetMaxTablePathWidth(cfg *contract.Config, reservedWidth int) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve generous space for table borders, separators, and padding
	baseWidth := reservedWidth + 20

	available := termWidth - baseWidth
	if available < 15 {
		// Minimum reasonable path width
		return 15
	}
	if available > 70 {
		// Maximum path width to prevent overly long paths
		return 70
	}
	return available
}

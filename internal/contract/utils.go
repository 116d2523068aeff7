package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/debtboard/schema"
)

// Status label constants.
const (
	CriticalValue = "Critical" // Critical value
	WarningValue  = "Warning"  // Warning value
	GoodValue     = "Good"     // Good value
)

// Color variables for console output.
var (
	CriticalColor = color.New(color.FgRed, color.Bold) // CriticalColor represents standard danger.
	HotColor      = color.New(color.FgRed, color.Bold, color.Underline)
	WarningColor  = color.New(color.FgYellow) // WarningColor represents standard caution, not bold.
	GoodColor     = color.New(color.FgGreen)  // GoodColor represents a healthy signal.
	PrimaryColor  = color.New(color.FgCyan)
	MutedColor    = color.New(color.Faint)
)

// GetPlainLabel returns a plain text label for a file status.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(status schema.FileStatus) string {
	switch status {
	case schema.StatusCritical:
		return CriticalValue
	case schema.StatusWarning:
		return WarningValue
	case schema.StatusGood:
		return GoodValue
	default:
		return string(status)
	}
}

// GetColorLabel returns a colored status label for console output (table).
// Critical files with a score above 80 get the stronger shade used by the heatmap.
func GetColorLabel(status schema.FileStatus, score float64) string {
	text := GetPlainLabel(status)

	switch schema.HeatTone(status, score) {
	case string(schema.ToneCriticalHot):
		return HotColor.Sprint(text)
	case string(schema.StatusCritical):
		return CriticalColor.Sprint(text)
	case string(schema.StatusWarning):
		return WarningColor.Sprint(text)
	default:
		if status != schema.StatusGood {
			return text
		}
		return GoodColor.Sprint(text)
	}
}

// GetToneColor maps a presentation tone to a console color.
func GetToneColor(tone schema.Tone) *color.Color {
	switch tone {
	case schema.ToneDanger, schema.ToneCriticalHot:
		return CriticalColor
	case schema.ToneWarning:
		return WarningColor
	case schema.ToneSuccess:
		return GoodColor
	case schema.TonePrimary:
		return PrimaryColor
	default:
		return MutedColor
	}
}

// GetBandColor maps a score band from schema.ScoreBand to a console color.
func GetBandColor(band string) *color.Color {
	switch band {
	case "high":
		return CriticalColor
	case "medium":
		return WarningColor
	default:
		return GoodColor
	}
}

// GetPriorityLabel returns a colored recommendation priority for console output.
func GetPriorityLabel(p schema.Priority) string {
	text := strings.ToUpper(string(p))
	switch p {
	case schema.PriorityHigh:
		return CriticalColor.Sprint(text)
	case schema.PriorityMedium:
		return WarningColor.Sprint(text)
	default:
		return PrimaryColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetArchiveDBFilePath returns the path to the SQLite DB file for the report archive.
func GetArchiveDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".debtboard_archive.db"
	}
	return filepath.Join(homeDir, ".debtboard_archive.db")
}

// TruncatePath truncates a file path to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 to ensure there's space for both the "..." prefix and at least one character of content.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

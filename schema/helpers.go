package schema

import (
	"fmt"
	"strings"
)

// ScoreBand classifies a debt score for colouring in the file explorer.
// It does not change the status of a file.
func ScoreBand(score float64) string {
	switch {
	case score > 70:
		return "high"
	case score > 40:
		return "medium"
	default:
		return "low"
	}
}

// DebtRatioHealth returns the health label shown next to the debt ratio.
func DebtRatioHealth(ratio float64) string {
	switch {
	case ratio < 5:
		return "Healthy"
	case ratio > 20:
		return "Critical"
	default:
		return "Moderate"
	}
}

// DebtRatioTone returns the colour band of the debt ratio card.
func DebtRatioTone(ratio float64) Tone {
	switch {
	case ratio > 20:
		return ToneDanger
	case ratio > 10:
		return ToneWarning
	default:
		return ToneSuccess
	}
}

// SeverityTone returns the colour band of the severity card.
func SeverityTone(sev Severity) Tone {
	switch sev {
	case SeverityCritical:
		return ToneDanger
	case SeverityHigh:
		return ToneWarning
	default:
		return TonePrimary
	}
}

// HeatTone returns the heatmap tile colour for a file.
// Critical files above 80 get the stronger shade.
func HeatTone(status FileStatus, score float64) string {
	switch status {
	case StatusCritical:
		if score > 80 {
			return string(ToneCriticalHot)
		}
		return string(StatusCritical)
	case StatusWarning:
		return string(StatusWarning)
	default:
		return string(StatusGood)
	}
}

// StatusDistribution counts files per status in good, warning, critical order.
// Files with an unknown status are not counted.
func StatusDistribution(files []FileDebtScore) []StatusCount {
	counts := make(map[FileStatus]int, len(AllFileStatuses))
	for _, f := range files {
		counts[f.Status]++
	}
	out := make([]StatusCount, 0, len(AllFileStatuses))
	for _, s := range AllFileStatuses {
		out = append(out, StatusCount{Status: s, Count: counts[s]})
	}
	return out
}

// BaseName returns the last '/'-separated segment of a report path.
func BaseName(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}

// Capitalize upper-cases the first letter of an enum value for display.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// FormatCost renders an estimated cost as "$6,200".
func FormatCost(cost float64) string {
	neg := cost < 0
	if neg {
		cost = -cost
	}
	whole := fmt.Sprintf("%.0f", cost)
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-$" + b.String()
	}
	return "$" + b.String()
}

// DisplayDir renders a directory key for display. The root bucket shows as "./".
func DisplayDir(dir string) string {
	if dir == RootDir {
		return "./"
	}
	return dir
}

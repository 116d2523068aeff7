package outwriter

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/huangsam/debtboard/internal/contract"
	"github.com/huangsam/debtboard/schema"
	"github.com/olekukonko/tablewriter/tw"
)

// EmptyTrendsMessage is printed when the report carries no trend data.
const EmptyTrendsMessage = "No trend data available"

// trendBarWidth is the width of a 100% debt ratio bar in the text output.
const trendBarWidth = 40

// trendRow is one trend point with its change from the previous point.
type trendRow struct {
	schema.TrendData `yaml:",inline"`
	Change           *float64 `json:"change,omitempty" yaml:"change,omitempty"`
}

// buildTrendRows pairs each trend point with the change from its predecessor.
// Points keep the order of the report; dates are not parsed or sorted.
func buildTrendRows(trends []schema.TrendData) []trendRow {
	rows := make([]trendRow, len(trends))
	for i, t := range trends {
		rows[i] = trendRow{TrendData: t}
		if i > 0 {
			change := t.DebtRatio - trends[i-1].DebtRatio
			rows[i].Change = &change
		}
	}
	return rows
}

// PrintTrends outputs the debt ratio history.
func PrintTrends(trends []schema.TrendData, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	trendRows := buildTrendRows(trends)

	rows := make([][]string, len(trendRows))
	for i, t := range trendRows {
		rows[i] = []string{t.Date, fmtFloat(t.DebtRatio), formatChange(t.Change, fmtFloat)}
	}

	return writeView(resultView{
		data:   trendRows,
		header: []string{"date", "debt_ratio", "change"},
		rows:   rows,
		table: func(w io.Writer) error {
			return writeTrendTable(trendRows, cfg, fmtFloat, duration, w)
		},
	}, cfg)
}

// writeTrendTable prints the trend points with a horizontal bar per point.
func writeTrendTable(trends []trendRow, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, w io.Writer) error {
	if len(trends) == 0 {
		_, err := fmt.Fprintln(w, EmptyTrendsMessage)
		return err
	}

	var data [][]string
	for _, t := range trends {
		change := formatChange(t.Change, fmtFloat)
		if cfg.UseColors && t.Change != nil {
			switch {
			case *t.Change < 0:
				change = contract.GoodColor.Sprint(change)
			case *t.Change > 0:
				change = contract.CriticalColor.Sprint(change)
			}
		}
		data = append(data, []string{t.Date, fmtFloat(t.DebtRatio) + "%", change, trendBar(t.DebtRatio)})
	}
	if err := renderTable(w, []string{"Date", "Debt Ratio", "Change", "Trend"}, data, tw.AlignLeft); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d trend points. Report loaded in %v\n", len(trends), duration)
	return err
}

// trendBar renders a debt ratio as a bar scaled to trendBarWidth.
func trendBar(ratio float64) string {
	n := int(math.Round(math.Max(0, math.Min(ratio, 100)) / 100 * trendBarWidth))
	return strings.Repeat("█", n)
}

// formatChange renders a signed change or "-" for the first point.
func formatChange(change *float64, fmtFloat func(float64) string) string {
	if change == nil {
		return "-"
	}
	if *change > 0 {
		return "+" + fmtFloat(*change)
	}
	return fmtFloat(*change)
}

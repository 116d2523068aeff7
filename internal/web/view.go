package web

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/huangsam/debtboard/core"
	"github.com/huangsam/debtboard/internal/dashboard"
	"github.com/huangsam/debtboard/schema"
)

// explorerQuery is the file explorer state carried in the dashboard URL.
type explorerQuery struct {
	Search string
	Status schema.StatusFilter
	Sort   core.SortState
}

// encode returns the query string for the given explorer state.
func (q explorerQuery) encode() string {
	v := url.Values{}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	if q.Status != schema.FilterAll {
		v.Set("status", string(q.Status))
	}
	v.Set("sort", string(q.Sort.Field))
	v.Set("dir", string(q.Sort.Direction))
	return v.Encode()
}

// card is one metric card at the top of the dashboard.
type card struct {
	Title string
	Value string
	Sub   string
	Tone  schema.Tone
}

// trendPoint is one row of the trend list. Width is the bar length in percent.
type trendPoint struct {
	Date      string
	DebtRatio string
	Width     float64
}

// distributionBar is one bar of the status distribution.
type distributionBar struct {
	Label string
	Tone  string
	Count int
	Width float64
}

// heatTile is one file in the system map.
type heatTile struct {
	Name        string
	Tone        string
	Tooltip     string
	Duplication bool
}

// heatGroup is one directory of the system map.
type heatGroup struct {
	Dir   string
	Tiles []heatTile
}

// recommendationView is one entry of the action plan.
type recommendationView struct {
	File     string
	Priority string
	Tone     string
	Reason   string
	Impact   string
	Hours    string
}

// fileRow is one row of the file explorer.
type fileRow struct {
	File       string
	Score      string
	Band       string
	Complexity int
	Size       int
	Status     string
}

// sortHeader is one sortable column header of the file explorer.
type sortHeader struct {
	Label  string
	Href   string
	Active bool
	Arrow  string
}

// statusOption is one entry of the status filter select.
type statusOption struct {
	Value    string
	Label    string
	Selected bool
}

// dashboardPage is the model of the dashboard template.
type dashboardPage struct {
	Source          string
	Error           string
	Cards           []card
	Trends          []trendPoint
	Distribution    []distributionBar
	Heatmap         []heatGroup
	Recommendations []recommendationView
	Search          string
	StatusOptions   []statusOption
	Headers         []sortHeader
	Rows            []fileRow
	Shown           int
	Total           int
	SortLabel       string
}

// messagePage is the model of the pages without a report.
type messagePage struct {
	Error string
}

// buildDashboardPage renders the snapshot into the dashboard model.
func buildDashboardPage(snap dashboard.Snapshot, q explorerQuery) dashboardPage {
	report := snap.Report
	files := core.FilterAndSort(report.Files, q.Search, q.Status, q.Sort.Field, q.Sort.Direction)

	page := dashboardPage{
		Source:          snap.Source,
		Error:           snap.Error,
		Cards:           buildCards(report.Overview, len(report.Files)),
		Trends:          buildTrends(report.Trends),
		Distribution:    buildDistribution(report.Files),
		Heatmap:         buildHeatmap(core.GroupByDirectory(report.Files)),
		Recommendations: buildRecommendations(report.Recommendations),
		Search:          q.Search,
		StatusOptions:   buildStatusOptions(q.Status),
		Headers:         buildHeaders(q),
		Rows:            buildRows(files),
		Shown:           len(files),
		Total:           len(report.Files),
		SortLabel:       fmt.Sprintf("Sorted by %s (%s)", q.Sort.Field, q.Sort.Direction),
	}
	return page
}

// buildCards lays out the four metric cards.
// The severity card counts the files present in the report, not overview.totalFiles.
func buildCards(o schema.DebtOverview, fileCount int) []card {
	severity := string(o.Severity)
	if severity == "" {
		severity = "unknown"
	}
	return []card{
		{
			Title: "Debt Ratio",
			Value: formatNumber(o.DebtRatio) + "%",
			Sub:   schema.DebtRatioHealth(o.DebtRatio),
			Tone:  schema.DebtRatioTone(o.DebtRatio),
		},
		{Title: "Est. Cost", Value: schema.FormatCost(o.EstimatedCost), Sub: "Remediation", Tone: schema.ToneDefault},
		{Title: "Fix Time", Value: formatNumber(o.EstimatedHours) + "h", Sub: "Developer Hours", Tone: schema.ToneDefault},
		{
			Title: "Severity",
			Value: strings.ToUpper(severity),
			Sub:   fmt.Sprintf("%d Files Scanned", fileCount),
			Tone:  schema.SeverityTone(o.Severity),
		},
	}
}

func buildTrends(trends []schema.TrendData) []trendPoint {
	var peak float64
	for _, t := range trends {
		peak = max(peak, t.DebtRatio)
	}
	out := make([]trendPoint, len(trends))
	for i, t := range trends {
		out[i] = trendPoint{Date: t.Date, DebtRatio: formatNumber(t.DebtRatio) + "%", Width: percentOf(t.DebtRatio, peak)}
	}
	return out
}

func buildDistribution(files []schema.FileDebtScore) []distributionBar {
	counts := schema.StatusDistribution(files)
	peak := 0
	for _, c := range counts {
		peak = max(peak, c.Count)
	}
	out := make([]distributionBar, len(counts))
	for i, c := range counts {
		out[i] = distributionBar{
			Label: schema.Capitalize(string(c.Status)),
			Tone:  string(c.Status),
			Count: c.Count,
			Width: percentOf(float64(c.Count), float64(peak)),
		}
	}
	return out
}

func buildHeatmap(groups core.DirectoryGroups) []heatGroup {
	out := make([]heatGroup, len(groups))
	for i, g := range groups {
		tiles := make([]heatTile, len(g.Files))
		for j, f := range g.Files {
			tooltip := fmt.Sprintf("%s\nScore: %s/100\nComplexity: %d\nSize: %d LOC", f.File, formatNumber(f.Score), f.Complexity, f.Size)
			if f.Duplication {
				tooltip += "\nDuplication Detected"
			}
			tiles[j] = heatTile{
				Name:        f.FileName,
				Tone:        schema.HeatTone(f.Status, f.Score),
				Tooltip:     tooltip,
				Duplication: f.Duplication,
			}
		}
		out[i] = heatGroup{Dir: schema.DisplayDir(g.Dir), Tiles: tiles}
	}
	return out
}

func buildRecommendations(recs []schema.Recommendation) []recommendationView {
	out := make([]recommendationView, len(recs))
	for i, r := range recs {
		tone := string(schema.TonePrimary)
		switch r.Priority {
		case schema.PriorityHigh:
			tone = string(schema.ToneDanger)
		case schema.PriorityMedium:
			tone = string(schema.ToneWarning)
		}
		out[i] = recommendationView{
			File:     r.File,
			Priority: strings.ToUpper(string(r.Priority)),
			Tone:     tone,
			Reason:   r.Reason,
			Impact:   r.Impact,
			Hours:    formatNumber(r.EstimatedHours) + "h",
		}
	}
	return out
}

func buildStatusOptions(current schema.StatusFilter) []statusOption {
	options := []statusOption{
		{Value: string(schema.FilterAll), Label: "All Status"},
		{Value: string(schema.FilterCritical), Label: "Critical"},
		{Value: string(schema.FilterWarning), Label: "Warning"},
		{Value: string(schema.FilterGood), Label: "Good"},
	}
	for i := range options {
		options[i].Selected = options[i].Value == string(current)
	}
	return options
}

// buildHeaders links every sortable column to the state a click would produce.
func buildHeaders(q explorerQuery) []sortHeader {
	columns := []struct {
		label string
		field schema.SortField
	}{
		{"File Path", schema.SortByFile},
		{"Score", schema.SortByScore},
		{"Complexity", schema.SortByComplexity},
		{"Size", schema.SortBySize},
	}

	out := make([]sortHeader, len(columns))
	for i, c := range columns {
		next := q
		next.Sort = core.ToggleSort(q.Sort, c.field)
		h := sortHeader{Label: c.label, Href: "/dashboard?" + next.encode()}
		if q.Sort.Field == c.field {
			h.Active = true
			h.Arrow = "▼"
			if q.Sort.Direction == schema.SortAsc {
				h.Arrow = "▲"
			}
		}
		out[i] = h
	}
	return out
}

func buildRows(files []schema.FileDebtScore) []fileRow {
	out := make([]fileRow, len(files))
	for i, f := range files {
		out[i] = fileRow{
			File:       f.File,
			Score:      formatNumber(f.Score),
			Band:       schema.ScoreBand(f.Score),
			Complexity: f.Complexity,
			Size:       f.Size,
			Status:     string(f.Status),
		}
	}
	return out
}

// formatNumber drops the fraction of whole numbers: 18.5 stays, 124.0 becomes 124.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func percentOf(v, peak float64) float64 {
	if peak <= 0 {
		return 0
	}
	return v / peak * 100
}

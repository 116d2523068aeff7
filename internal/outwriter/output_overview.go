package outwriter

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/debtboard/internal/contract"
	"github.com/huangsam/debtboard/schema"
	"github.com/olekukonko/tablewriter/tw"
)

// overviewCard is one metric card of the overview.
type overviewCard struct {
	Title  string      `json:"title" yaml:"title"`
	Value  string      `json:"value" yaml:"value"`
	Detail string      `json:"detail" yaml:"detail"`
	Tone   schema.Tone `json:"tone" yaml:"tone"`
}

// overviewOutput is the JSON and YAML payload of the overview command.
type overviewOutput struct {
	Overview     schema.DebtOverview  `json:"overview" yaml:"overview"`
	Health       string               `json:"health" yaml:"health"`
	Cards        []overviewCard       `json:"cards" yaml:"cards"`
	Distribution []schema.StatusCount `json:"distribution" yaml:"distribution"`
}

// buildOverviewCards builds the four metric cards shown at the top of the dashboard.
func buildOverviewCards(o schema.DebtOverview, fmtFloat func(float64) string) []overviewCard {
	return []overviewCard{
		{
			Title:  "Debt Ratio",
			Value:  fmtFloat(o.DebtRatio) + "%",
			Detail: schema.DebtRatioHealth(o.DebtRatio),
			Tone:   schema.DebtRatioTone(o.DebtRatio),
		},
		{
			Title:  "Estimated Cost",
			Value:  schema.FormatCost(o.EstimatedCost),
			Detail: "To resolve all debt",
			Tone:   schema.ToneDefault,
		},
		{
			Title:  "Fix Time",
			Value:  fmtFloat(o.EstimatedHours) + "h",
			Detail: "Developer hours",
			Tone:   schema.ToneDefault,
		},
		{
			Title:  "Severity",
			Value:  schema.Capitalize(string(o.Severity)),
			Detail: fmt.Sprintf("%d files analyzed", o.TotalFiles),
			Tone:   schema.SeverityTone(o.Severity),
		},
	}
}

// PrintOverview outputs the overview cards and the status distribution.
func PrintOverview(report *schema.TechnicalDebtReport, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	cards := buildOverviewCards(report.Overview, fmtFloat)
	dist := schema.StatusDistribution(report.Files)

	var rows [][]string
	for _, c := range cards {
		rows = append(rows, []string{c.Title, c.Value, c.Detail})
	}
	for _, d := range dist {
		rows = append(rows, []string{"Files " + string(d.Status), strconv.Itoa(d.Count), ""})
	}

	return writeView(resultView{
		data: overviewOutput{
			Overview:     report.Overview,
			Health:       schema.DebtRatioHealth(report.Overview.DebtRatio),
			Cards:        cards,
			Distribution: dist,
		},
		header: []string{"metric", "value", "detail"},
		rows:   rows,
		table: func(w io.Writer) error {
			return writeOverviewTable(cards, dist, len(report.Files), cfg, duration, w)
		},
	}, cfg)
}

// writeOverviewTable generates and writes the human-readable overview.
func writeOverviewTable(cards []overviewCard, dist []schema.StatusCount, numFiles int, cfg *contract.Config, duration time.Duration, w io.Writer) error {
	var data [][]string
	for _, c := range cards {
		value := c.Value
		if cfg.UseColors {
			value = contract.GetToneColor(c.Tone).Sprint(c.Value)
		}
		data = append(data, []string{c.Title, value, c.Detail})
	}
	if err := renderTable(w, []string{"Metric", "Value", "Detail"}, data, tw.AlignLeft); err != nil {
		return err
	}

	if _, err := fmt.Fprint(w, "Status distribution:"); err != nil {
		return err
	}
	for _, d := range dist {
		label := contract.GetPlainLabel(d.Status)
		if cfg.UseColors {
			label = contract.GetColorLabel(d.Status, 0)
		}
		if _, err := fmt.Fprintf(w, " %s=%d", label, d.Count); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Report with %d file entries loaded in %v. Source: %s\n", numFiles, duration, reportSourceName(cfg))
	return err
}

// reportSourceName names where the report came from for summary lines.
func reportSourceName(cfg *contract.Config) string {
	if cfg.UsesSampleReport() {
		return "bundled sample"
	}
	return cfg.ReportPath
}

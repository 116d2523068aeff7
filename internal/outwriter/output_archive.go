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

// archivedReport is the JSON and YAML shape of an archived report row.
type archivedReport struct {
	ReportID       int64     `json:"reportId" yaml:"reportId"`
	Source         string    `json:"source" yaml:"source"`
	SavedAt        time.Time `json:"savedAt" yaml:"savedAt"`
	TotalFiles     int32     `json:"totalFiles" yaml:"totalFiles"`
	DebtRatio      float64   `json:"debtRatio" yaml:"debtRatio"`
	EstimatedHours float64   `json:"estimatedHours" yaml:"estimatedHours"`
	EstimatedCost  float64   `json:"estimatedCost" yaml:"estimatedCost"`
	Severity       string    `json:"severity" yaml:"severity"`
	FileCount      int32     `json:"fileCount" yaml:"fileCount"`
}

// PrintArchivedReports outputs the rows of the report archive.
func PrintArchivedReports(records []schema.ReportRunRecord, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	out := make([]archivedReport, len(records))
	rows := make([][]string, len(records))
	for i, r := range records {
		out[i] = archivedReport(r)
		rows[i] = []string{
			strconv.FormatInt(r.ReportID, 10),
			r.SavedAt.Format(contract.DateTimeFormat),
			r.Source,
			fmt.Sprintf(intFmt, r.TotalFiles),
			fmtFloat(r.DebtRatio),
			fmtFloat(r.EstimatedHours),
			fmtFloat(r.EstimatedCost),
			r.Severity,
			fmt.Sprintf(intFmt, r.FileCount),
		}
	}

	return writeView(resultView{
		data:   out,
		header: []string{"report_id", "saved_at", "source", "total_files", "debt_ratio", "estimated_hours", "estimated_cost", "severity", "file_count"},
		rows:   rows,
		table: func(w io.Writer) error {
			if len(records) == 0 {
				_, err := fmt.Fprintln(w, "No archived reports. Run 'debtboard archive save' first.")
				return err
			}
			var data [][]string
			for _, row := range rows {
				data = append(data, []string{row[0], row[1], contract.TruncatePath(row[2], GetMaxTablePathWidth(cfg, 70)), row[4], row[7], row[8]})
			}
			if err := renderTable(w, []string{"ID", "Saved At", "Source", "Debt Ratio", "Severity", "Files"}, data, tw.AlignLeft); err != nil {
				return err
			}
			_, err := fmt.Fprintf(w, "Showing %d archived reports (backend: %s) in %v\n", len(records), cfg.ArchiveBackend, duration)
			return err
		},
	}, cfg)
}

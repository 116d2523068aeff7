package outwriter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/huangsam/debtboard/internal/contract"
	"github.com/huangsam/debtboard/schema"
	"github.com/olekukonko/tablewriter/tw"
)

// EmptyRecommendationsMessage is printed when the report has no recommendations.
const EmptyRecommendationsMessage = "No active recommendations. Great job!"

// PrintRecommendations outputs the recommendations in report order.
func PrintRecommendations(recs []schema.Recommendation, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	rows := make([][]string, len(recs))
	for i, r := range recs {
		rows[i] = []string{r.File, string(r.Priority), fmtFloat(r.EstimatedHours), r.Reason, r.Impact}
	}

	data := recs
	if data == nil {
		data = []schema.Recommendation{}
	}
	return writeView(resultView{
		data:   data,
		header: []string{"file", "priority", "estimated_hours", "reason", "impact"},
		rows:   rows,
		table: func(w io.Writer) error {
			return writeRecommendationTable(recs, cfg, fmtFloat, duration, w)
		},
	}, cfg)
}

// writeRecommendationTable generates and writes the human-readable recommendations.
func writeRecommendationTable(recs []schema.Recommendation, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, w io.Writer) error {
	if len(recs) == 0 {
		_, err := fmt.Fprintln(w, EmptyRecommendationsMessage)
		return err
	}

	headers := []string{"Priority", "File", "Hours", "Reason", "Impact"}
	pathWidth := GetMaxTablePathWidth(cfg, 90) // Priority + Hours + Reason + Impact

	var data [][]string
	var totalHours float64
	for _, r := range recs {
		totalHours += r.EstimatedHours
		priority := strings.ToUpper(string(r.Priority))
		if cfg.UseColors {
			priority = contract.GetPriorityLabel(r.Priority)
		}
		data = append(data, []string{
			priority,
			contract.TruncatePath(r.File, pathWidth),
			fmtFloat(r.EstimatedHours) + "h",
			r.Reason,
			r.Impact,
		})
	}
	if err := renderTable(w, headers, data, tw.AlignLeft); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "%d recommendations (%sh estimated)\n", len(recs), fmtFloat(totalHours)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Report loaded in %v. Source: %s\n", duration, reportSourceName(cfg))
	return err
}

package outwriter

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/huangsam/debtboard/internal/contract"
	"github.com/huangsam/debtboard/internal/parquet"
	"github.com/huangsam/debtboard/schema"
	"github.com/olekukonko/tablewriter/tw"
)

// EmptyFilesMessage is printed when no file passes the filters.
const EmptyFilesMessage = "No files found matching your filters."

// filesOutput is the JSON and YAML payload of the files command.
type filesOutput struct {
	Shown     int                         `json:"shown" yaml:"shown"`
	Total     int                         `json:"total" yaml:"total"`
	Search    string                      `json:"search" yaml:"search"`
	Status    schema.StatusFilter         `json:"status" yaml:"status"`
	Sort      schema.SortField            `json:"sort" yaml:"sort"`
	Direction schema.SortDirection        `json:"direction" yaml:"direction"`
	Files     []schema.EnrichedFileResult `json:"files" yaml:"files"`
}

// PrintFiles outputs the file explorer. files is the filtered and sorted view
// and total is the number of files in the report.
func PrintFiles(files []schema.FileDebtScore, total int, cfg *contract.Config, duration time.Duration) error {
	if cfg.Output == schema.ParquetOut {
		if err := parquet.WriteFileScoresParquet(parquet.ConvertFileDebtScores(files, time.Now()), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
		return nil
	}

	fmtFloat, intFmt := createFormatters(cfg.Precision)
	enriched := schema.EnrichFiles(files)

	rows := make([][]string, len(enriched))
	for i, f := range enriched {
		rows[i] = []string{
			strconv.Itoa(f.Rank),
			f.File,
			fmtFloat(f.Score),
			fmt.Sprintf(intFmt, f.Complexity),
			fmt.Sprintf(intFmt, f.Size),
			formatBool(f.Duplication),
			formatOptionalInt(f.ChangeFrequency),
			string(f.Status),
		}
	}

	return writeView(resultView{
		data: filesOutput{
			Shown:     len(files),
			Total:     total,
			Search:    cfg.Search,
			Status:    cfg.StatusFilter,
			Sort:      cfg.SortField,
			Direction: cfg.SortDirection,
			Files:     enriched,
		},
		header: []string{"rank", "file", "score", "complexity", "size", "duplication", "change_frequency", "status"},
		rows:   rows,
		table: func(w io.Writer) error {
			return writeFileTable(enriched, total, cfg, fmtFloat, intFmt, duration, w)
		},
	}, cfg)
}

// writeFileTable generates and writes the human-readable file explorer.
func writeFileTable(files []schema.EnrichedFileResult, total int, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration, w io.Writer) error {
	if len(files) == 0 {
		if _, err := fmt.Fprintln(w, EmptyFilesMessage); err != nil {
			return err
		}
	} else {
		headers := []string{"Rank", "File", "Score", "Complexity", "Size", "Dup", "Changes", "Status"}
		pathWidth := GetMaxTablePathWidth(cfg, 60) // Rank + Score + Complexity + Size + Dup + Changes + Status

		var data [][]string
		for _, f := range files {
			score := fmtFloat(f.Score)
			status := contract.GetPlainLabel(f.Status)
			if cfg.UseColors {
				status = contract.GetColorLabel(f.Status, f.Score)
				score = contract.GetBandColor(f.Band).Sprint(score)
			}
			data = append(data, []string{
				strconv.Itoa(f.Rank),
				contract.TruncatePath(f.File, pathWidth),
				score,
				fmt.Sprintf(intFmt, f.Complexity),
				fmt.Sprintf(intFmt, f.Size),
				formatBool(f.Duplication),
				formatOptionalInt(f.ChangeFrequency),
				status,
			})
		}
		if err := renderTable(w, headers, data, tw.AlignRight); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "Showing %d of %d files\n", len(files), total); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Sorted by %s (%s)\n", cfg.SortField, cfg.SortDirection); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Report loaded in %v. Source: %s\n", duration, reportSourceName(cfg))
	return err
}

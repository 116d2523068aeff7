package outwriter

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/debtboard/internal/contract"
	"github.com/huangsam/debtboard/schema"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintFolders outputs the heatmap view: one entry per immediate parent directory.
func PrintFolders(groups []schema.DirectoryGroup, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	enriched := schema.EnrichFolders(groups)

	// CSV and Markdown list one row per file so the tile colouring survives.
	var rows [][]string
	for _, g := range groups {
		for _, f := range g.Files {
			rows = append(rows, []string{
				schema.DisplayDir(g.Dir),
				f.FileName,
				f.File,
				fmtFloat(f.Score),
				string(f.Status),
				schema.HeatTone(f.Status, f.Score),
			})
		}
	}

	return writeView(resultView{
		data:   enriched,
		header: []string{"folder", "file_name", "file", "score", "status", "heat"},
		rows:   rows,
		table: func(w io.Writer) error {
			return writeFolderTable(enriched, cfg, fmtFloat, duration, w)
		},
	}, cfg)
}

// writeFolderTable prints one row per folder followed by its file tiles.
func writeFolderTable(folders []schema.EnrichedFolderResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, w io.Writer) error {
	headers := []string{"Folder", "Files", "Critical", "Avg Score", "Max Score", "Tiles"}
	pathWidth := GetMaxTablePathWidth(cfg, 45) // Files + Critical + Avg + Max

	var data [][]string
	totalFiles := 0
	for _, f := range folders {
		totalFiles += f.FileCount
		data = append(data, []string{
			contract.TruncatePath(schema.DisplayDir(f.Dir), pathWidth),
			strconv.Itoa(f.FileCount),
			strconv.Itoa(f.CriticalHits),
			fmtFloat(f.AvgScore),
			fmtFloat(f.MaxScore),
			formatTiles(f.Files, cfg.UseColors),
		})
	}
	if err := renderTable(w, headers, data, tw.AlignLeft); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Showing %d folders (%d files)\n", len(folders), totalFiles); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Report loaded in %v. Source: %s\n", duration, reportSourceName(cfg))
	return err
}

// formatTiles renders the file tiles of a folder, coloured by heat when enabled.
func formatTiles(files []schema.FileDebtScoreWithName, useColors bool) string {
	tiles := make([]string, len(files))
	for i, f := range files {
		if useColors {
			tiles[i] = heatTile(f)
			continue
		}
		tiles[i] = fmt.Sprintf("%s[%s]", f.FileName, schema.HeatTone(f.Status, f.Score))
	}
	return strings.Join(tiles, " ")
}

// heatTile renders a tile as the file name in its heat colour.
func heatTile(f schema.FileDebtScoreWithName) string {
	switch schema.HeatTone(f.Status, f.Score) {
	case string(schema.ToneCriticalHot):
		return contract.HotColor.Sprint(f.FileName)
	case string(schema.StatusCritical):
		return contract.CriticalColor.Sprint(f.FileName)
	case string(schema.StatusWarning):
		return contract.WarningColor.Sprint(f.FileName)
	default:
		return contract.GoodColor.Sprint(f.FileName)
	}
}

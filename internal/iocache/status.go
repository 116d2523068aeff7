package iocache

import (
	"fmt"
	"io"
	"slices"

	"github.com/huangsam/debtboard/schema"
)

// PrintArchiveStatus prints archive status information.
func PrintArchiveStatus(w io.Writer, status schema.ArchiveStatus) {
	_, _ = fmt.Fprintf(w, "Archive Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Total Reports: %d\n", status.TotalReports)
	if status.TotalReports > 0 {
		_, _ = fmt.Fprintf(w, "Last Report ID: %d\n", status.LastReportID)
		_, _ = fmt.Fprintf(w, "Last Saved: %s\n", status.LastSavedTime.Format("2006-01-02 15:04:05"))
		_, _ = fmt.Fprintf(w, "Oldest Saved: %s\n", status.OldestSavedTime.Format("2006-01-02 15:04:05"))
		_, _ = fmt.Fprintf(w, "Total File Rows: %d\n", status.TotalFileRows)
	}
	_, _ = fmt.Fprintln(w, "Table Sizes:")
	tables := make([]string, 0, len(status.TableSizes))
	for table := range status.TableSizes {
		tables = append(tables, table)
	}
	slices.Sort(tables)
	for _, table := range tables {
		_, _ = fmt.Fprintf(w, "  %s: %d rows\n", table, status.TableSizes[table])
	}
}

package iocache

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/debtboard/schema"
)

// Table names for the report archive.
const (
	reportsTable    = "debtboard_reports"
	fileScoresTable = "debtboard_file_scores"
)

// tableNamePattern restricts table names to plain SQL identifiers.
var tableNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// validateTableName checks that a table name is safe to interpolate into SQL.
func validateTableName(name string) error {
	if name == "" {
		return fmt.Errorf("table name cannot be empty")
	}
	if !tableNamePattern.MatchString(name) {
		return fmt.Errorf("invalid table name: %s (must match pattern ^[a-zA-Z_][a-zA-Z0-9_]*$)", name)
	}
	return nil
}

// quoteTableName returns the properly quoted table name for the given backend.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf("`%s`", name)
	default: // SQLite and PostgreSQL
		return fmt.Sprintf("\"%s\"", name)
	}
}

// driverNameFor returns the database/sql driver registered for a backend.
func driverNameFor(backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return "mysql"
	case schema.PostgreSQLBackend:
		return "pgx"
	default:
		return "sqlite"
	}
}

// rebind rewrites '?' placeholders into the numbered form PostgreSQL expects.
func rebind(query string, backend schema.DatabaseBackend) string {
	if backend != schema.PostgreSQLBackend {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.UTC().Format(time.RFC3339Nano)
	default:
		return t.UTC()
	}
}

// storedTimeLayouts are the text layouts a timestamp column may come back in.
var storedTimeLayouts = []string{time.RFC3339Nano, "2006-01-02 15:04:05.999999", time.DateTime}

// parseStoredTime converts a scanned timestamp column into a time.Time.
// SQLite returns text, MySQL returns bytes unless parseTime is set, PostgreSQL returns time.Time.
func parseStoredTime(v any) (time.Time, error) {
	var text string
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		text = t
	case []byte:
		text = string(t)
	default:
		return time.Time{}, fmt.Errorf("unexpected timestamp type %T", v)
	}
	for _, layout := range storedTimeLayouts {
		if parsed, err := time.Parse(layout, text); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", text)
}

// getCreateReportsQuery returns the CREATE TABLE query for debtboard_reports.
func getCreateReportsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(reportsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				report_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				source VARCHAR(1024) NOT NULL,
				saved_at DATETIME(6) NOT NULL,
				total_files INT NOT NULL,
				debt_ratio DOUBLE NOT NULL,
				estimated_hours DOUBLE NOT NULL,
				estimated_cost DOUBLE NOT NULL,
				severity VARCHAR(32) NOT NULL,
				file_count INT NOT NULL
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				report_id BIGSERIAL PRIMARY KEY,
				source TEXT NOT NULL,
				saved_at TIMESTAMPTZ NOT NULL,
				total_files INT NOT NULL,
				debt_ratio DOUBLE PRECISION NOT NULL,
				estimated_hours DOUBLE PRECISION NOT NULL,
				estimated_cost DOUBLE PRECISION NOT NULL,
				severity TEXT NOT NULL,
				file_count INT NOT NULL
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				report_id INTEGER PRIMARY KEY AUTOINCREMENT,
				source TEXT NOT NULL,
				saved_at TEXT NOT NULL,
				total_files INTEGER NOT NULL,
				debt_ratio REAL NOT NULL,
				estimated_hours REAL NOT NULL,
				estimated_cost REAL NOT NULL,
				severity TEXT NOT NULL,
				file_count INTEGER NOT NULL
			);
		`, quotedTableName)
	}
}

// getCreateFileScoresQuery returns the CREATE TABLE query for debtboard_file_scores.
func getCreateFileScoresQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(fileScoresTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				report_id BIGINT NOT NULL,
				file_path VARCHAR(512) NOT NULL,
				saved_at DATETIME(6) NOT NULL,
				score DOUBLE NOT NULL,
				complexity INT NOT NULL,
				size INT NOT NULL,
				duplication BOOLEAN NOT NULL,
				change_frequency INT,
				status VARCHAR(32) NOT NULL,
				PRIMARY KEY (report_id, file_path)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				report_id BIGINT NOT NULL,
				file_path TEXT NOT NULL,
				saved_at TIMESTAMPTZ NOT NULL,
				score DOUBLE PRECISION NOT NULL,
				complexity INT NOT NULL,
				size INT NOT NULL,
				duplication BOOLEAN NOT NULL,
				change_frequency INT,
				status TEXT NOT NULL,
				PRIMARY KEY (report_id, file_path)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				report_id INTEGER NOT NULL,
				file_path TEXT NOT NULL,
				saved_at TEXT NOT NULL,
				score REAL NOT NULL,
				complexity INTEGER NOT NULL,
				size INTEGER NOT NULL,
				duplication INTEGER NOT NULL,
				change_frequency INTEGER,
				status TEXT NOT NULL,
				PRIMARY KEY (report_id, file_path)
			);
		`, quotedTableName)
	}
}

package iocache

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/huangsam/debtboard/internal/contract"
	"github.com/huangsam/debtboard/schema"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// ArchiveStoreImpl implements the ArchiveStore interface.
type ArchiveStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.ArchiveStore = &ArchiveStoreImpl{} // Compile-time check

// NewArchiveStore creates a new ArchiveStore with the specified backend.
func NewArchiveStore(backend schema.DatabaseBackend, connStr string) (contract.ArchiveStore, error) {
	var db *sql.DB
	var err error

	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = GetArchiveDBFilePath()
		}
		db, err = sql.Open(driverNameFor(backend), dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		db, err = sql.Open(driverNameFor(backend), connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		db, err = sql.Open(driverNameFor(backend), connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=localhost port=5432 user=postgres dbname=debtboard", err)
		}

	case schema.NoneBackend:
		// Return a no-op store for disabled archiving
		return &ArchiveStoreImpl{backend: backend}, nil

	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}

	// Ping to verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		var connDetail string
		switch backend {
		case schema.MySQLBackend:
			connDetail = "Check that MySQL is running and the connection string is correct. Ensure user/password are valid."
		case schema.PostgreSQLBackend:
			connDetail = "Check that PostgreSQL is running and the connection string is correct. Ensure user/password are valid."
		default:
			connDetail = "Verify the database file is accessible."
		}
		return nil, fmt.Errorf("failed to connect to %s database: %w. %s", backend, err, connDetail)
	}

	if err := createArchiveTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create archive tables: %w", err)
	}

	return &ArchiveStoreImpl{db: db, backend: backend}, nil
}

// createArchiveTables creates the archive tables when they do not exist.
func createArchiveTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{reportsTable, getCreateReportsQuery(backend)},
		{fileScoresTable, getCreateFileScoresQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}

	return nil
}

// SaveReport stores the overview row and one row per file in a single transaction.
func (as *ArchiveStoreImpl) SaveReport(report *schema.TechnicalDebtReport, source string, savedAt time.Time) (int64, error) {
	// Skip for NoneBackend
	if as.backend == schema.NoneBackend || as.db == nil {
		return 0, nil
	}
	if report == nil {
		return 0, fmt.Errorf("cannot archive a nil report")
	}

	tx, err := as.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin archive transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	o := report.Overview
	insertReport := fmt.Sprintf(`INSERT INTO %s (source, saved_at, total_files, debt_ratio, estimated_hours, estimated_cost, severity, file_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, quoteTableName(reportsTable, as.backend))
	args := []any{source, formatTime(savedAt, as.backend), o.TotalFiles, o.DebtRatio, o.EstimatedHours, o.EstimatedCost, string(o.Severity), len(report.Files)}

	var reportID int64
	switch as.backend {
	case schema.PostgreSQLBackend:
		err = tx.QueryRow(rebind(insertReport+" RETURNING report_id", as.backend), args...).Scan(&reportID)
	default: // SQLite and MySQL
		var result sql.Result
		result, err = tx.Exec(insertReport, args...)
		if err == nil {
			reportID, err = result.LastInsertId()
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert report: %w", err)
	}

	insertFile := rebind(fmt.Sprintf(`INSERT INTO %s (report_id, file_path, saved_at, score, complexity, size, duplication, change_frequency, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, quoteTableName(fileScoresTable, as.backend)), as.backend)
	stmt, err := tx.Prepare(insertFile)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare file insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, rec := range schema.FileRecordsFromScores(reportID, report.Files, savedAt) {
		var freq any
		if rec.ChangeFrequency != nil {
			freq = *rec.ChangeFrequency
		}
		if _, err := stmt.Exec(rec.ReportID, rec.FilePath, formatTime(rec.SavedAt, as.backend), rec.Score,
			rec.Complexity, rec.Size, rec.Duplication, freq, rec.Status); err != nil {
			return 0, fmt.Errorf("failed to insert file %s: %w", rec.FilePath, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit archive transaction: %w", err)
	}
	return reportID, nil
}

// ListReports returns saved reports, newest first. A limit <= 0 returns all of them.
func (as *ArchiveStoreImpl) ListReports(limit int) ([]schema.ReportRunRecord, error) {
	if as.backend == schema.NoneBackend || as.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT report_id, source, saved_at, total_files, debt_ratio, estimated_hours, estimated_cost, severity, file_count
		FROM %s ORDER BY report_id DESC`, quoteTableName(reportsTable, as.backend))
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}
	return as.queryReports(query)
}

// queryReports runs a report row query and scans every row.
func (as *ArchiveStoreImpl) queryReports(query string) ([]schema.ReportRunRecord, error) {
	rows, err := as.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.ReportRunRecord
	for rows.Next() {
		var record schema.ReportRunRecord
		var savedAt any
		if err := rows.Scan(&record.ReportID, &record.Source, &savedAt, &record.TotalFiles, &record.DebtRatio,
			&record.EstimatedHours, &record.EstimatedCost, &record.Severity, &record.FileCount); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		if record.SavedAt, err = parseStoredTime(savedAt); err != nil {
			return nil, fmt.Errorf("failed to parse saved_at: %w", err)
		}
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reports: %w", err)
	}
	return results, nil
}

// GetTrend returns the debt ratio of every saved report in save order.
func (as *ArchiveStoreImpl) GetTrend() ([]schema.TrendData, error) {
	if as.backend == schema.NoneBackend || as.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT report_id, source, saved_at, total_files, debt_ratio, estimated_hours, estimated_cost, severity, file_count
		FROM %s ORDER BY report_id ASC`, quoteTableName(reportsTable, as.backend))
	records, err := as.queryReports(query)
	if err != nil {
		return nil, err
	}

	trend := make([]schema.TrendData, len(records))
	for i, r := range records {
		trend[i] = schema.TrendData{Date: r.SavedAt.UTC().Format(time.DateOnly), DebtRatio: r.DebtRatio}
	}
	return trend, nil
}

// AllFileRecords returns the per-file rows of every saved report.
func (as *ArchiveStoreImpl) AllFileRecords() ([]schema.FileRecord, error) {
	if as.backend == schema.NoneBackend || as.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT report_id, file_path, saved_at, score, complexity, size, duplication, change_frequency, status
		FROM %s ORDER BY report_id, file_path`, quoteTableName(fileScoresTable, as.backend))
	rows, err := as.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query file scores: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.FileRecord
	for rows.Next() {
		var record schema.FileRecord
		var savedAt any
		var freq sql.NullInt32
		if err := rows.Scan(&record.ReportID, &record.FilePath, &savedAt, &record.Score, &record.Complexity,
			&record.Size, &record.Duplication, &freq, &record.Status); err != nil {
			return nil, fmt.Errorf("failed to scan file score: %w", err)
		}
		if record.SavedAt, err = parseStoredTime(savedAt); err != nil {
			return nil, fmt.Errorf("failed to parse saved_at: %w", err)
		}
		if freq.Valid {
			v := freq.Int32
			record.ChangeFrequency = &v
		}
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating file scores: %w", err)
	}
	return results, nil
}

// GetStatus returns status information about the archive.
func (as *ArchiveStoreImpl) GetStatus() (schema.ArchiveStatus, error) {
	status := schema.ArchiveStatus{
		Backend:    string(as.backend),
		Connected:  as.db != nil,
		TableSizes: make(map[string]int64),
	}

	if as.backend == schema.NoneBackend || as.db == nil {
		return status, nil
	}

	reports := quoteTableName(reportsTable, as.backend)
	row := as.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", reports))
	if err := row.Scan(&status.TotalReports); err != nil {
		return status, fmt.Errorf("failed to get total reports: %w", err)
	}

	if status.TotalReports > 0 {
		var lastSaved, oldestSaved any
		row = as.db.QueryRow(fmt.Sprintf("SELECT report_id, saved_at FROM %s ORDER BY report_id DESC LIMIT 1", reports))
		if err := row.Scan(&status.LastReportID, &lastSaved); err != nil {
			return status, fmt.Errorf("failed to get last report info: %w", err)
		}
		row = as.db.QueryRow(fmt.Sprintf("SELECT saved_at FROM %s ORDER BY report_id ASC LIMIT 1", reports))
		if err := row.Scan(&oldestSaved); err != nil {
			return status, fmt.Errorf("failed to get oldest report time: %w", err)
		}

		var err error
		if status.LastSavedTime, err = parseStoredTime(lastSaved); err != nil {
			return status, fmt.Errorf("failed to parse last saved time: %w", err)
		}
		if status.OldestSavedTime, err = parseStoredTime(oldestSaved); err != nil {
			return status, fmt.Errorf("failed to parse oldest saved time: %w", err)
		}
	}

	for _, table := range []string{reportsTable, fileScoresTable} {
		var count int64
		row = as.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, as.backend)))
		if err := row.Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	status.TotalFileRows = int(status.TableSizes[fileScoresTable])

	return status, nil
}

// Close closes the underlying connection.
func (as *ArchiveStoreImpl) Close() error {
	if as.db != nil {
		return as.db.Close()
	}
	return nil
}

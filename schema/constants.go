package schema

// Custom string types for type safety.
type (
	// Severity represents the coarse overall risk of a report.
	Severity string

	// FileStatus represents the per-file classification.
	FileStatus string

	// Priority represents the urgency of a recommendation.
	Priority string

	// StatusFilter selects files by status in the file explorer.
	StatusFilter string

	// SortField is the single key used to order the file explorer.
	SortField string

	// SortDirection is the order applied to the sort field.
	SortDirection string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the report archive.
	DatabaseBackend string

	// Tone is a presentation colour band used by cards, tiles and labels.
	Tone string
)

// All severities supported.
const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// All file statuses supported.
const (
	StatusGood     FileStatus = "good"
	StatusWarning  FileStatus = "warning"
	StatusCritical FileStatus = "critical"
)

// All recommendation priorities supported.
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// All status filters supported.
const (
	FilterAll      StatusFilter = "all" // default
	FilterGood     StatusFilter = "good"
	FilterWarning  StatusFilter = "warning"
	FilterCritical StatusFilter = "critical"
)

// All sort fields supported.
const (
	SortByScore      SortField = "score" // default
	SortByComplexity SortField = "complexity"
	SortBySize       SortField = "size"
	SortByFile       SortField = "file"
)

// All sort directions supported.
const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc" // default
)

// All output modes supported.
const (
	TextOut     OutputMode = "text" // default
	CSVOut      OutputMode = "csv"
	JSONOut     OutputMode = "json"
	YAMLOut     OutputMode = "yaml"
	MarkdownOut OutputMode = "markdown"
	ParquetOut  OutputMode = "parquet"
)

// All archive backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All presentation tones.
const (
	ToneDefault     Tone = "default"
	TonePrimary     Tone = "primary"
	ToneSuccess     Tone = "success"
	ToneWarning     Tone = "warning"
	ToneDanger      Tone = "danger"
	ToneCriticalHot Tone = "critical-hot"
)

// RootDir is the directory key for files that have no parent directory.
const RootDir = "root"

// AllFileStatuses lists statuses in distribution order.
var AllFileStatuses = []FileStatus{StatusGood, StatusWarning, StatusCritical}

// ValidStatusFilters lists all valid status filters.
var ValidStatusFilters = map[StatusFilter]struct{}{
	FilterAll:      {},
	FilterGood:     {},
	FilterWarning:  {},
	FilterCritical: {},
}

// ValidSortFields lists all valid sort fields.
var ValidSortFields = map[SortField]struct{}{
	SortByScore:      {},
	SortByComplexity: {},
	SortBySize:       {},
	SortByFile:       {},
}

// ValidSortDirections lists all valid sort directions.
var ValidSortDirections = map[SortDirection]struct{}{
	SortAsc:  {},
	SortDesc: {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:     {},
	CSVOut:      {},
	JSONOut:     {},
	YAMLOut:     {},
	MarkdownOut: {},
	ParquetOut:  {},
}

// ValidDatabaseBackends lists all valid archive backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// Opposite returns the other sort direction.
func (d SortDirection) Opposite() SortDirection {
	if d == SortAsc {
		return SortDesc
	}
	return SortAsc
}

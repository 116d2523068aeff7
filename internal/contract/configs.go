package contract

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/huangsam/debtboard/schema"
)

// Default values for configuration.
const (
	DefaultPrecision    = 1
	DefaultServeAddr    = "127.0.0.1:8080"
	DefaultInitialDelay = 800 * time.Millisecond
	MaxInitialDelay     = time.Minute
	DefaultMaxCritical  = -1 // No limit on critical files
)

// Log formats supported by the server logger.
const (
	LogFormatAuto    = "auto"
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for a debtboard command.
// This struct remains the "final, validated" config.
type Config struct {
	ReportPath string // Absolute path to the report file ("" = bundled sample report)

	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int  // Terminal width override (0 = auto-detect)
	UseColors  bool // Enable colored labels in table output

	// File explorer view.
	Search        string
	StatusFilter  schema.StatusFilter
	SortField     schema.SortField
	SortDirection schema.SortDirection

	// Check gate.
	MaxDebtRatio float64 // 0 disables the ratio gate
	MaxCritical  int     // Negative disables the critical file gate

	// HTTP dashboard.
	ServeAddr    string
	Watch        bool
	InitialDelay time.Duration

	ArchiveBackend   schema.DatabaseBackend
	ArchiveDBConnect string // Please use env var as this is plaintext

	LogLevel  slog.Level
	LogFormat string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	ReportPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	OutputFile       string `mapstructure:"output-file"`
	Precision        int    `mapstructure:"precision"`
	Output           string `mapstructure:"output"`
	Width            int    `mapstructure:"width"`
	Color            string `mapstructure:"color"`
	ArchiveBackend   string `mapstructure:"archive-backend"`
	ArchiveDBConnect string `mapstructure:"archive-db-connect"`
	LogLevel         string `mapstructure:"log-level"`
	LogFormat        string `mapstructure:"log-format"`

	// --- Fields from filesCmd.Flags() ---
	Search    string `mapstructure:"search"`
	Status    string `mapstructure:"status"`
	Sort      string `mapstructure:"sort"`
	Direction string `mapstructure:"direction"`

	// --- Fields from checkCmd.Flags() ---
	MaxDebtRatio float64 `mapstructure:"max-debt-ratio"`
	MaxCritical  int     `mapstructure:"max-critical"`

	// --- Fields from serveCmd.Flags() ---
	Addr         string `mapstructure:"addr"`
	Watch        bool   `mapstructure:"watch"`
	InitialDelay string `mapstructure:"initial-delay"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// UsesSampleReport reports whether no report file was given.
func (c *Config) UsesSampleReport() bool {
	return c.ReportPath == ""
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processViewInputs(cfg, input); err != nil {
		return err
	}
	if err := processCheckInputs(cfg, input); err != nil {
		return err
	}
	if err := processServeInputs(cfg, input); err != nil {
		return err
	}
	if err := processLoggingInputs(cfg, input); err != nil {
		return err
	}
	if err := resolveReportPath(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("archive-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("archive-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates the output and archive fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	// Parse color flag
	if input.Color == "" {
		input.Color = "yes"
	}
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Precision and Output Validation ---
	if input.Precision == 0 {
		input.Precision = DefaultPrecision
	}
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	if input.Output == "" {
		input.Output = string(schema.TextOut)
	}
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, yaml, markdown, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	// --- 2. Width Validation ---
	if cfg.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", cfg.Width)
	}

	// --- 3. Archive Backend Validation ---
	if input.ArchiveBackend == "" {
		input.ArchiveBackend = string(schema.SQLiteBackend)
	}
	cfg.ArchiveBackend = schema.DatabaseBackend(strings.ToLower(input.ArchiveBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.ArchiveBackend]; !ok {
		return fmt.Errorf("invalid archive backend '%s'. must be sqlite, mysql, postgresql, none", input.ArchiveBackend)
	}
	cfg.ArchiveDBConnect = input.ArchiveDBConnect
	return ValidateDatabaseConnectionString(cfg.ArchiveBackend, cfg.ArchiveDBConnect)
}

// processViewInputs validates the file explorer search, status filter and sort.
func processViewInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Search = input.Search

	status, err := ParseStatusFilter(input.Status)
	if err != nil {
		return err
	}
	cfg.StatusFilter = status

	field, err := ParseSortField(input.Sort)
	if err != nil {
		return err
	}
	cfg.SortField = field

	dir, err := ParseSortDirection(input.Direction)
	if err != nil {
		return err
	}
	cfg.SortDirection = dir
	return nil
}

// processCheckInputs validates the gate thresholds of the check command.
func processCheckInputs(cfg *Config, input *ConfigRawInput) error {
	if input.MaxDebtRatio < 0 || input.MaxDebtRatio > 100 {
		return fmt.Errorf("max-debt-ratio must be between 0 and 100 (received %v)", input.MaxDebtRatio)
	}
	cfg.MaxDebtRatio = input.MaxDebtRatio
	cfg.MaxCritical = input.MaxCritical
	return nil
}

// processServeInputs validates the dashboard server settings.
func processServeInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.ServeAddr = input.Addr
	if cfg.ServeAddr == "" {
		cfg.ServeAddr = DefaultServeAddr
	}
	cfg.Watch = input.Watch

	cfg.InitialDelay = DefaultInitialDelay
	if input.InitialDelay != "" {
		d, err := time.ParseDuration(input.InitialDelay)
		if err != nil {
			return fmt.Errorf("invalid initial-delay %q: %w", input.InitialDelay, err)
		}
		if d < 0 || d > MaxInitialDelay {
			return fmt.Errorf("initial-delay must be between 0 and %s (received %s)", MaxInitialDelay, d)
		}
		cfg.InitialDelay = d
	}
	return nil
}

// processLoggingInputs validates the server log level and format.
func processLoggingInputs(cfg *Config, input *ConfigRawInput) error {
	level, err := ParseLogLevel(input.LogLevel)
	if err != nil {
		return err
	}
	cfg.LogLevel = level

	switch strings.ToLower(input.LogFormat) {
	case "", LogFormatAuto:
		cfg.LogFormat = LogFormatAuto
	case LogFormatConsole:
		cfg.LogFormat = LogFormatConsole
	case LogFormatJSON:
		cfg.LogFormat = LogFormatJSON
	default:
		return fmt.Errorf("invalid log format '%s'. must be auto, console, json", input.LogFormat)
	}
	return nil
}

// resolveReportPath turns the positional report argument into an absolute path.
// An empty argument selects the bundled sample report.
func resolveReportPath(cfg *Config, input *ConfigRawInput) error {
	if input.ReportPathStr == "" {
		cfg.ReportPath = ""
		return nil
	}
	absPath, err := filepath.Abs(input.ReportPathStr)
	if err != nil {
		return fmt.Errorf("failed to resolve report path %q: %w", input.ReportPathStr, err)
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return fmt.Errorf("report path %q does not exist", input.ReportPathStr)
	}
	if info.IsDir() {
		return fmt.Errorf("report path %q is a directory", input.ReportPathStr)
	}
	cfg.ReportPath = absPath
	return nil
}

// ParseStatusFilter validates a status filter. Empty selects all statuses.
func ParseStatusFilter(s string) (schema.StatusFilter, error) {
	if s == "" {
		return schema.FilterAll, nil
	}
	f := schema.StatusFilter(strings.ToLower(s))
	if _, ok := schema.ValidStatusFilters[f]; !ok {
		return "", fmt.Errorf("invalid status '%s'. must be all, good, warning, critical", s)
	}
	return f, nil
}

// ParseSortField validates a sort field. Empty selects score.
func ParseSortField(s string) (schema.SortField, error) {
	if s == "" {
		return schema.SortByScore, nil
	}
	f := schema.SortField(strings.ToLower(s))
	if _, ok := schema.ValidSortFields[f]; !ok {
		return "", fmt.Errorf("invalid sort field '%s'. must be score, complexity, size, file", s)
	}
	return f, nil
}

// ParseSortDirection validates a sort direction. Empty selects descending.
func ParseSortDirection(s string) (schema.SortDirection, error) {
	if s == "" {
		return schema.SortDesc, nil
	}
	d := schema.SortDirection(strings.ToLower(s))
	if _, ok := schema.ValidSortDirections[d]; !ok {
		return "", fmt.Errorf("invalid sort direction '%s'. must be asc, desc", s)
	}
	return d, nil
}

// ParseLogLevel parses a string log level to slog.Level.
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level '%s'. must be debug, info, warn, error", level)
	}
}

package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/huangsam/debtboard/schema"
)

// MaxReportBytes caps the size of a report read from a file or upload.
const MaxReportBytes = 32 << 20

// requiredKeys are the top-level keys a report must carry with a non-null value.
var requiredKeys = []string{"overview", "files"}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// LoadReport decodes report text into a TechnicalDebtReport.
// It only checks that the top level is an object with non-null overview and files.
// The decoded value is returned as-is: nothing is sorted, defaulted or recomputed.
func LoadReport(text []byte) (*schema.TechnicalDebtReport, error) {
	text = bytes.TrimPrefix(text, utf8BOM)

	var top any
	if err := json.Unmarshal(text, &top); err != nil {
		return nil, &ParseError{Err: err}
	}

	obj, ok := top.(map[string]any)
	if !ok {
		return nil, &ShapeError{
			Missing: append([]string(nil), requiredKeys...),
			Err:     fmt.Errorf("top-level value is %s, not an object", jsonKind(top)),
		}
	}

	var missing []string
	for _, key := range requiredKeys {
		if obj[key] == nil {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, &ShapeError{Missing: missing}
	}

	var report schema.TechnicalDebtReport
	if err := json.Unmarshal(text, &report); err != nil {
		return nil, &ShapeError{Err: err}
	}
	return &report, nil
}

// LoadReportReader reads at most MaxReportBytes from r and decodes the report.
func LoadReportReader(r io.Reader) (*schema.TechnicalDebtReport, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxReportBytes+1))
	if err != nil {
		return nil, &ReadError{Err: err}
	}
	if len(data) > MaxReportBytes {
		return nil, &ReadError{Err: fmt.Errorf("report exceeds %d bytes", MaxReportBytes)}
	}
	return LoadReport(data)
}

// LoadReportFile reads and decodes the report stored at path.
func LoadReportFile(path string) (*schema.TechnicalDebtReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	report, err := LoadReportReader(f)
	if err != nil {
		var re *ReadError
		if errors.As(err, &re) && re.Path == "" {
			re.Path = path
		}
		return nil, err
	}
	return report, nil
}

// jsonKind names the JSON type of a decoded value for error messages.
func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "a boolean"
	case float64:
		return "a number"
	case string:
		return "a string"
	case []any:
		return "an array"
	default:
		return "an unknown value"
	}
}

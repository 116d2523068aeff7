package core

import (
	"errors"
	"fmt"
	"strings"
)

// User-facing load failure messages shown by the dashboard.
const (
	ParseErrorMessage = "Failed to parse JSON file. Please check the file content."
	ShapeErrorMessage = "Invalid report format. Please upload a valid JSON report."
	ReadErrorMessage  = "Error reading file."
)

// LoadError is implemented by every error that LoadReport and its variants return.
type LoadError interface {
	error
	UserMessage() string
}

// ParseError means the report text is not valid JSON.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse report: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// UserMessage returns the notification text for a parse failure.
func (e *ParseError) UserMessage() string { return ParseErrorMessage }

// ShapeError means the report is valid JSON but lacks the required structure.
// Missing lists the required keys that were absent or null.
type ShapeError struct {
	Missing []string
	Err     error
}

func (e *ShapeError) Error() string {
	switch {
	case len(e.Missing) > 0:
		return fmt.Sprintf("invalid report shape: missing %s", strings.Join(e.Missing, ", "))
	case e.Err != nil:
		return fmt.Sprintf("invalid report shape: %v", e.Err)
	default:
		return "invalid report shape"
	}
}

func (e *ShapeError) Unwrap() error { return e.Err }

// UserMessage returns the notification text for a shape failure.
func (e *ShapeError) UserMessage() string { return ShapeErrorMessage }

// ReadError means the report bytes could not be obtained.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("read report: %v", e.Err)
	}
	return fmt.Sprintf("read report %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// UserMessage returns the notification text for a read failure.
func (e *ReadError) UserMessage() string { return ReadErrorMessage }

// IsLoadError reports whether err came from loading a report.
func IsLoadError(err error) bool {
	var le LoadError
	return errors.As(err, &le)
}

// UserMessage returns the message to show for a failed load.
// Errors that did not come from the loader are shown as read failures.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var le LoadError
	if errors.As(err, &le) {
		return le.UserMessage()
	}
	return ReadErrorMessage
}

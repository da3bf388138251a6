package outline

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedOutlines is returned for fonts without TrueType outlines.
	ErrUnsupportedOutlines = errors.New("font has no TrueType outlines")

	// ErrPointCount is returned by Rebuild if the number of points passed in
	// differs from the number of points of the font.
	ErrPointCount = errors.New("point count does not match font")

	// ErrCoordinateRange is returned by Rebuild if a coordinate cannot be
	// represented in the 'glyf' table.
	ErrCoordinateRange = errors.New("coordinate out of range")

	errBufferBounds = errors.New("internal inconsistency: buffer bounds error")
)

// ErrorSeverity represents the severity level of a font parsing error.
type ErrorSeverity int

const (
	// SeverityCritical indicates an error which makes the font unusable as a carrier.
	SeverityCritical ErrorSeverity = iota
	// SeverityMinor indicates an issue which does not affect outline data.
	SeverityMinor
)

// String returns a human-readable representation of the error severity.
func (s ErrorSeverity) String() string {
	switch s {
	case SeverityCritical:
		return "CRITICAL"
	case SeverityMinor:
		return "MINOR"
	default:
		return "UNKNOWN"
	}
}

// FontError represents an error encountered during font parsing.
type FontError struct {
	Table    string        // table where the error occurred, e.g. "glyf"
	Section  string        // section within the table, e.g. "glyph 17"
	Issue    string        // human-readable description of the issue
	Severity ErrorSeverity // severity level of the error
}

// Error implements the error interface.
func (e FontError) Error() string {
	return fmt.Sprintf("[%s] %s/%s: %s", e.Severity, e.Table, e.Section, e.Issue)
}

// errorCollector accumulates issues during font parsing.
type errorCollector struct {
	errors []FontError
}

func (ec *errorCollector) addError(table, section, issue string, severity ErrorSeverity) {
	ec.errors = append(ec.errors, FontError{
		Table:    table,
		Section:  section,
		Issue:    issue,
		Severity: severity,
	})
}

// firstCritical returns the first critical error, or nil.
func (ec *errorCollector) firstCritical() error {
	for _, err := range ec.errors {
		if err.Severity == SeverityCritical {
			return err
		}
	}
	return nil
}

// minor returns all non-critical issues.
func (ec *errorCollector) minor() []FontError {
	minor := make([]FontError, 0)
	for _, err := range ec.errors {
		if err.Severity != SeverityCritical {
			minor = append(minor, err)
		}
	}
	return minor
}

package camscale

import (
	"errors"
	"fmt"
)

// Sentinels matched by the typed errors below through errors.Is.
var (
	ErrFormat              = errors.New("report line format mismatch")
	ErrAmbiguousReportKind = errors.New("ambiguous report kind")
	ErrNoCalibrationEvents = errors.New("no calibration events found")
)

// FormatError reports a line that does not match its fixed grammar.
type FormatError struct {
	Source    string `json:"source,omitempty"`
	LineIndex int    `json:"line_index"`
	Line      string `json:"line"`
	Field     string `json:"field"`
	Expected  string `json:"expected"`
	Err       error  `json:"-"`
}

func newFormatError(field, line, expected string) *FormatError {
	return &FormatError{Field: field, Line: line, Expected: expected, LineIndex: -1}
}

// Error implements the error interface
func (e *FormatError) Error() string {
	msg := fmt.Sprintf("%s: expected %s, got %q", e.Field, e.Expected, e.Line)
	if e.LineIndex >= 0 {
		msg = fmt.Sprintf("line %d: %s", e.LineIndex, msg)
	}
	if e.Source != "" {
		msg = e.Source + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FormatError) Unwrap() error { return e.Err }

func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// at stamps the location of the failing line.
func (e *FormatError) at(source string, index int) *FormatError {
	e.Source = source
	e.LineIndex = index
	return e
}

// AmbiguousReportKindError is returned when the title line matched neither or
// both of the known report titles.
type AmbiguousReportKindError struct {
	Source       string `json:"source,omitempty"`
	Title        string `json:"title"`
	Verification bool   `json:"verification"`
	Calibration  bool   `json:"calibration"`
}

// Error implements the error interface
func (e *AmbiguousReportKindError) Error() string {
	reason := "matched no known report title"
	if e.Verification && e.Calibration {
		reason = "matched both report titles"
	}
	msg := fmt.Sprintf("report kind %q %s", e.Title, reason)
	if e.Source != "" {
		msg = e.Source + ": " + msg
	}
	return msg
}

func (e *AmbiguousReportKindError) Is(target error) bool { return target == ErrAmbiguousReportKind }

// NoCalibrationEventsError means the table holds no PostCalibration record to
// anchor an interval.
type NoCalibrationEventsError struct {
	Records int `json:"records"`
}

// Error implements the error interface
func (e *NoCalibrationEventsError) Error() string {
	return fmt.Sprintf("no calibration events found among %d record(s)", e.Records)
}

func (e *NoCalibrationEventsError) Is(target error) bool { return target == ErrNoCalibrationEvents }

// SourceError ties a failure to the report source it came from.
type SourceError struct {
	Source string
	Err    error
}

// Error implements the error interface
func (e *SourceError) Error() string {
	return fmt.Sprintf("report %s: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

package domain

import (
	"encoding/json"
	"time"
)

// ImportStatus is the overall outcome of one CSV import attempt
type ImportStatus string

const (
	ImportCompleted ImportStatus = "completed" // every row inserted
	ImportPartial   ImportStatus = "partial"   // some rows rejected
	ImportFailed    ImportStatus = "failed"    // the insert itself failed
)

// ImportErrorType categorizes a rejected import row
type ImportErrorType string

const (
	ImportErrorParse      ImportErrorType = "parse"
	ImportErrorValidation ImportErrorType = "validation"
	ImportErrorDuplicate  ImportErrorType = "duplicate"
	ImportErrorDatabase   ImportErrorType = "database"
)

// ImportError describes a single rejected row. Row 0 means the error was
// not tied to a specific row (e.g. the bulk insert failed as a whole).
type ImportError struct {
	Row     int             `json:"row"`
	Type    ImportErrorType `json:"type"`
	Message string          `json:"message"`
}

// ImportErrorSummary holds per-category error counts
type ImportErrorSummary struct {
	Parse      int `json:"parse"`
	Validation int `json:"validation"`
	Duplicate  int `json:"duplicate"`
	Database   int `json:"database"`
}

// ErrorReport is the structured error detail stored on an ImportLog.
//
// Two wire shapes exist: older logs store a bare array of errors, newer ones
// an object carrying the error list plus summary counts and timing. The
// variant is resolved once here, at the serialization boundary; the rest of
// the code only ever sees the struct.
type ErrorReport struct {
	Detailed   bool               `json:"-"`
	Errors     []ImportError      `json:"errors"`
	Summary    ImportErrorSummary `json:"summary"`
	DurationMS int64              `json:"duration_ms"`
}

// detailedReport is the object-shaped wire form of ErrorReport
type detailedReport struct {
	Errors     []ImportError      `json:"errors"`
	Summary    ImportErrorSummary `json:"summary"`
	DurationMS int64              `json:"duration_ms"`
}

// NewErrorReport builds a detailed report from an error list, deriving the
// per-category summary counts
func NewErrorReport(errs []ImportError, duration time.Duration) ErrorReport {
	r := ErrorReport{
		Detailed:   true,
		Errors:     errs,
		DurationMS: duration.Milliseconds(),
	}
	for _, e := range errs {
		switch e.Type {
		case ImportErrorParse:
			r.Summary.Parse++
		case ImportErrorValidation:
			r.Summary.Validation++
		case ImportErrorDuplicate:
			r.Summary.Duplicate++
		case ImportErrorDatabase:
			r.Summary.Database++
		}
	}
	return r
}

// MarshalJSON writes the legacy bare-array form for non-detailed reports
// and the object form otherwise
func (r ErrorReport) MarshalJSON() ([]byte, error) {
	if !r.Detailed {
		if r.Errors == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(r.Errors)
	}
	return json.Marshal(detailedReport{
		Errors:     r.Errors,
		Summary:    r.Summary,
		DurationMS: r.DurationMS,
	})
}

// UnmarshalJSON accepts both wire shapes
func (r *ErrorReport) UnmarshalJSON(data []byte) error {
	trimmed := trimLeadingSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		r.Detailed = false
		r.Summary = ImportErrorSummary{}
		r.DurationMS = 0
		return json.Unmarshal(data, &r.Errors)
	}

	var d detailedReport
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	r.Detailed = true
	r.Errors = d.Errors
	r.Summary = d.Summary
	r.DurationMS = d.DurationMS
	return nil
}

func trimLeadingSpace(data []byte) []byte {
	for i, b := range data {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return data[i:]
		}
	}
	return nil
}

// ImportLog is the audit record of one bulk-CSV-import attempt. It is
// written once and never updated.
type ImportLog struct {
	ID          int64        `json:"id"`
	EventID     int64        `json:"event_id"`
	EventName   string       `json:"event_name,omitempty"`
	Filename    string       `json:"filename"`
	TotalRows   int          `json:"total_rows"`
	Inserted    int          `json:"inserted"`
	ErrorCount  int          `json:"error_count"`
	ErrorReport ErrorReport  `json:"error_report"`
	Status      ImportStatus `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
}

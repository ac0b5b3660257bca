package model

import (
	"fmt"
	"time"
)

// ParseError reports an unrecognized date or number in a source cell.
// The offending row or sheet is skipped and logged; the run continues.
type ParseError struct {
	Sheet  string
	Row    int
	Value  string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("parse %s row %d: %q: %s", e.Sheet, e.Row, e.Value, e.Reason)
	}
	return fmt.Sprintf("parse %s: %q: %s", e.Sheet, e.Value, e.Reason)
}

// MissingFieldError reports an expected summary label absent from a
// source sheet. The field is treated as zero and a warning is logged.
type MissingFieldError struct {
	Sheet string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("sheet %s: field %q not found, treated as zero", e.Sheet, e.Field)
}

// ValidationError rejects an out-of-range parameter before any
// computation runs.
type ValidationError struct {
	Param  string
	Value  float64
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s=%v: %s", e.Param, e.Value, e.Reason)
}

// MissingInputError blocks commission computation for a single week
// whose required manual scalar has not been supplied yet.
type MissingInputError struct {
	WeekStart time.Time
	Field     string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("week %s: manual input %q not supplied", e.WeekStart.Format(DateKey), e.Field)
}

// FileAccessError marks an unreadable or unwritable file. Fatal for the
// current run; nothing partial is written.
type FileAccessError struct {
	Path string
	Op   string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}

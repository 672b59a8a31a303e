package models

import (
	"errors"
	"fmt"
)

// ErrNoTrialFiles is returned when the batch directory contains no file
// matching the trial extension filter.
var ErrNoTrialFiles = errors.New("no trial files found")

// ErrEmptyTrial is returned when a trial file decodes to zero records; a
// zero-row batch has no well-defined axis matrices.
var ErrEmptyTrial = errors.New("trial has no samples")

// FormatError reports a trial file record that does not parse as exactly
// three integers. The whole trial fails; records are never silently skipped.
type FormatError struct {
	File   string
	Record int // 1-based record (line) index within the file
	Err    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("trial %s: record %d: %v", e.File, e.Record, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// AlignmentError reports a trial whose sample count differs from the first
// trial of the batch. Trials are never truncated or padded to fit.
type AlignmentError struct {
	File      string // offending trial file
	FirstFile string // trial that set the expected count
	Expected  int
	Actual    int
}

func (e *AlignmentError) Error() string {
	return fmt.Sprintf("trial %s has %d samples, want %d (set by %s)",
		e.File, e.Actual, e.Expected, e.FirstFile)
}

// ConfigError reports an invalid median filter window size.
type ConfigError struct {
	Window  int
	Samples int // 0 when the count was not yet known (parity/sign checks)
	Reason  string
}

func (e *ConfigError) Error() string {
	if e.Samples > 0 {
		return fmt.Sprintf("filter window %d: %s (%d samples)", e.Window, e.Reason, e.Samples)
	}
	return fmt.Sprintf("filter window %d: %s", e.Window, e.Reason)
}

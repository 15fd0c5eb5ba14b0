// Package reporterror defines the typed errors raised by the stats
// pipeline so callers can distinguish per-file data problems from
// configuration preconditions and output-write failures.
package reporterror

import "fmt"

// MissingTemplateError indicates the stats template workbook was absent
// when a new year's output had to be provisioned. Fatal for that year.
type MissingTemplateError struct {
	Year string
	Path string
}

func (e *MissingTemplateError) Error() string {
	return fmt.Sprintf("stats template not found at %s, cannot provision workbook for %s", e.Path, e.Year)
}

// FilenameError indicates a downloaded file's name does not follow the
// payer master naming convention. The file is skipped, not fatal.
type FilenameError struct {
	File   string
	Reason string
}

func (e *FilenameError) Error() string {
	return fmt.Sprintf("cannot classify %s: %s", e.File, e.Reason)
}

// MissingColumnError indicates an input workbook lacks a required
// column. The file is skipped, not fatal.
type MissingColumnError struct {
	File   string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("column %q not found in %s", e.Column, e.File)
}

// SheetNotFoundError indicates the target worksheet is absent from the
// output workbook. Non-fatal for the run.
type SheetNotFoundError struct {
	Workbook string
	Sheet    string
}

func (e *SheetNotFoundError) Error() string {
	return fmt.Sprintf("sheet %q not found in %s", e.Sheet, e.Workbook)
}

// SaveError indicates the output workbook could not be persisted after
// populating a sheet. Fatal for that sheet: partial persistence must
// not be silently swallowed.
type SaveError struct {
	Workbook string
	Sheet    string
	Err      error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("failed to save %s after populating sheet %q: %v", e.Workbook, e.Sheet, e.Err)
}

func (e *SaveError) Unwrap() error {
	return e.Err
}

package timesheet

import (
	"errors"
	"fmt"

	"github.com/ukaji3/timesheet-go/pkg/timesheet/parser"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a valid xlsx format.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrSheetNotFound indicates the data sheet is missing from the workbook.
var ErrSheetNotFound = parser.ErrSheetNotFound

// Stage names the step of a check that failed.
type Stage string

const (
	StageLoad     Stage = "load"
	StageExtract  Stage = "extract"
	StageAnnotate Stage = "annotate"
	StageSave     Stage = "save"
)

// CheckError represents an error while checking a workbook.
type CheckError struct {
	Path  string
	Stage Stage
	Err   error
}

func (e *CheckError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("timesheet %s failed: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("timesheet %s failed for %q: %v", e.Stage, e.Path, e.Err)
}

func (e *CheckError) Unwrap() error {
	return e.Err
}

// NewCheckError creates a new CheckError.
func NewCheckError(path string, stage Stage, err error) *CheckError {
	return &CheckError{
		Path:  path,
		Stage: stage,
		Err:   err,
	}
}

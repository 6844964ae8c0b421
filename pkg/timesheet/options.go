// Package timesheet validates employee timesheet workbooks.
package timesheet

import (
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/ukaji3/timesheet-go/pkg/timesheet/output"
)

// DefaultSheetName is the data sheet checked when none is configured.
const DefaultSheetName = "Sheet1"

// Options configures a timesheet check.
type Options struct {
	// SheetName is the data sheet to check.
	SheetName string `validate:"required"`
	// SummarySheet is the sheet replaced with the report.
	SummarySheet string `validate:"required,nefield=SheetName"`
	// HighlightColor is the RGB hex fill of rows with missing entries.
	HighlightColor string `validate:"required,len=6,hexadecimal"`
	// Logger receives progress logs. If nil, slog.Default() is used.
	Logger *slog.Logger `validate:"-"`
}

// DefaultOptions returns default check options.
func DefaultOptions() Options {
	return Options{
		SheetName:      DefaultSheetName,
		SummarySheet:   output.DefaultSummarySheet,
		HighlightColor: output.DefaultHighlightColor,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate reports invalid options.
func (o Options) Validate() error {
	return validate.Struct(o)
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

func (o Options) annotateOptions() output.AnnotateOptions {
	return output.AnnotateOptions{
		SummarySheet:   o.SummarySheet,
		HighlightColor: o.HighlightColor,
	}
}

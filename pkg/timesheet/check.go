package timesheet

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/timesheet-go/pkg/timesheet/analysis"
	"github.com/ukaji3/timesheet-go/pkg/timesheet/models"
	"github.com/ukaji3/timesheet-go/pkg/timesheet/output"
	"github.com/ukaji3/timesheet-go/pkg/timesheet/parser"
)

// Analyze classifies the columns of a grid, evaluates every employee row and
// builds the summary. It never fails: irregular grids yield empty results.
func Analyze(grid *models.Grid) *models.Report {
	cols := analysis.ClassifyColumns(grid, models.HeaderRow)
	ev := analysis.EvaluateRows(grid, models.HeaderRow, cols)

	return &models.Report{
		RowCount:    grid.RowCount(),
		ColumnCount: grid.ColumnCount(),
		Columns:     cols,
		Evaluation:  ev,
		Summary:     analysis.BuildSummary(ev),
		Metrics: models.Metrics{
			MissingCount:          len(ev.Missing),
			TotalBillableHours:    ev.TotalBillableHours,
			TotalNonBillableHours: ev.TotalNonBillableHours,
		},
	}
}

// CheckWorkbook checks the data sheet of an open workbook and annotates the
// workbook in place.
func CheckWorkbook(f *excelize.File, opts Options) (*models.Report, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.logger()

	grid, err := parser.ExtractGrid(f, opts.SheetName)
	if err != nil {
		return nil, NewCheckError("", StageExtract, err)
	}

	report := Analyze(grid)
	report.SheetName = opts.SheetName

	logger.Debug("columns classified",
		slog.String("sheet", opts.SheetName),
		slog.Int("columns", len(report.Columns)),
		slog.Int("workdays", len(report.Columns.Workdays())))

	if err := output.Annotate(f, opts.SheetName, report, opts.annotateOptions()); err != nil {
		return nil, NewCheckError("", StageAnnotate, err)
	}

	logger.Info("timesheet checked",
		slog.String("sheet", opts.SheetName),
		slog.Int("employees", len(report.Evaluation.Employees)),
		slog.Int("missing", report.Metrics.MissingCount),
		slog.Int("non_billable_events", len(report.Evaluation.NonBillable)),
		slog.Float64("billable_hours", report.Metrics.TotalBillableHours))
	return report, nil
}

// CheckFile checks the workbook at inPath and saves the annotated workbook to
// outPath. Nothing is written to outPath unless every step succeeds.
func CheckFile(inPath, outPath string, opts Options) (*models.Report, error) {
	if _, err := os.Stat(inPath); os.IsNotExist(err) {
		return nil, NewCheckError(inPath, StageLoad, ErrFileNotFound)
	}
	if err := ValidateFileName(inPath); err != nil {
		return nil, NewCheckError(inPath, StageLoad, err)
	}

	f, err := excelize.OpenFile(inPath)
	if err != nil {
		return nil, NewCheckError(inPath, StageLoad, fmt.Errorf("%w: %v", ErrInvalidFormat, err))
	}
	defer f.Close()

	report, err := CheckWorkbook(f, opts)
	if err != nil {
		return nil, withPath(err, inPath)
	}
	report.BookName = filepath.Base(inPath)

	if err := saveAtomic(f, outPath); err != nil {
		return nil, NewCheckError(outPath, StageSave, err)
	}
	return report, nil
}

// CheckReader reads a workbook named name from r and writes the annotated
// workbook to w. Nothing is written to w unless every step succeeds.
func CheckReader(name string, r io.Reader, w io.Writer, opts Options) (*models.Report, error) {
	if err := ValidateFileName(name); err != nil {
		return nil, NewCheckError(name, StageLoad, err)
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, NewCheckError(name, StageLoad, fmt.Errorf("%w: %v", ErrInvalidFormat, err))
	}
	defer f.Close()

	report, err := CheckWorkbook(f, opts)
	if err != nil {
		return nil, withPath(err, name)
	}
	report.BookName = filepath.Base(name)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, NewCheckError(name, StageSave, err)
	}
	if _, err := buf.WriteTo(w); err != nil {
		return nil, NewCheckError(name, StageSave, err)
	}
	return report, nil
}

// saveAtomic writes the workbook to a temporary file next to path and
// renames it into place.
func saveAtomic(f *excelize.File, path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".timesheet-*.xlsx")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := f.Write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func withPath(err error, path string) error {
	var ce *CheckError
	if errors.As(err, &ce) && ce.Path == "" {
		return NewCheckError(path, ce.Stage, ce.Err)
	}
	return err
}

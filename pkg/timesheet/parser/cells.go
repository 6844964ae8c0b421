// Package parser reads timesheet workbooks into typed grids.
package parser

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ukaji3/timesheet-go/pkg/timesheet/models"
	"github.com/xuri/excelize/v2"
)

// ErrSheetNotFound indicates the requested sheet does not exist in the workbook.
var ErrSheetNotFound = errors.New("sheet not found")

// ExtractGrid reads every cell of a sheet into a typed grid.
// Numbers formatted as dates or times become date-time cells.
func ExtractGrid(f *excelize.File, sheetName string) (*models.Grid, error) {
	if idx, err := f.GetSheetIndex(sheetName); err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, sheetName)
	}

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	rowCount, colCount := dataExtent(rows)
	if dimRows, dimCols, ok := sheetDimension(f, sheetName); ok {
		rowCount = max(rowCount, dimRows)
		colCount = max(colCount, dimCols)
	}

	r := cellReader{
		f:          f,
		sheet:      sheetName,
		date1904:   uses1904(f),
		dateStyles: make(map[int]bool),
	}

	grid := models.NewGrid(rowCount, colCount)
	for rowIdx, row := range rows {
		rowNum := rowIdx + 1 // 1-based row index
		for colIdx, raw := range row {
			if raw == "" {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowNum)
			if err != nil {
				return nil, err
			}
			grid.Set(rowNum, colIdx+1, r.parseValue(cellName, raw))
		}
	}
	return grid, nil
}

// cellReader types raw cell values using the cell type and number format.
type cellReader struct {
	f          *excelize.File
	sheet      string
	date1904   bool
	dateStyles map[int]bool
}

// parseValue converts a raw cell string into a CellValue.
func (r *cellReader) parseValue(cellName, raw string) models.CellValue {
	cellType, err := r.f.GetCellType(r.sheet, cellName)
	if err != nil {
		cellType = excelize.CellTypeUnset
	}

	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		return models.Text(raw)
	case excelize.CellTypeBool:
		if raw == "1" {
			return models.Other("TRUE")
		}
		return models.Other("FALSE")
	case excelize.CellTypeError:
		return models.Other(raw)
	case excelize.CellTypeDate:
		if t, ok := parseISODate(raw); ok {
			return models.DateTime(t)
		}
		return models.Text(raw)
	}

	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return models.Text(raw)
	}
	if r.isDateCell(cellName) {
		if t, err := serialToTime(n, r.date1904); err == nil {
			return models.DateTime(t)
		}
	}
	return models.Number(n)
}

func (r *cellReader) isDateCell(cellName string) bool {
	styleID, err := r.f.GetCellStyle(r.sheet, cellName)
	if err != nil {
		return false
	}
	if v, ok := r.dateStyles[styleID]; ok {
		return v
	}
	v := false
	if style, err := r.f.GetStyle(styleID); err == nil && style != nil {
		if style.CustomNumFmt != nil {
			v = isDateFormatCode(*style.CustomNumFmt)
		} else {
			v = isBuiltInDateFormat(style.NumFmt)
		}
	}
	r.dateStyles[styleID] = v
	return v
}

// parseISODate parses the value of an inline t="d" cell.
func parseISODate(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func uses1904(f *excelize.File) bool {
	props, err := f.GetWorkbookProps()
	if err != nil || props.Date1904 == nil {
		return false
	}
	return *props.Date1904
}

// serialToTime converts a date serial to a time rounded to the second.
// The day part goes through excelize and the fraction is rounded here, so
// 4/24 reads back as 04:00:00 rather than 03:59:59.
func serialToTime(n float64, date1904 bool) (time.Time, error) {
	days := math.Floor(n)
	d, err := excelize.ExcelDateToTime(days, date1904)
	if err != nil {
		return time.Time{}, err
	}
	d = d.Round(time.Hour)
	secs := math.Round((n - days) * 86400)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC).
		Add(time.Duration(secs) * time.Second), nil
}

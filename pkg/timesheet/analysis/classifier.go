// Package analysis implements timesheet column classification, row evaluation
// and summary building over a models.Grid.
package analysis

import (
	"strings"

	"github.com/ukaji3/timesheet-go/pkg/timesheet/models"
)

// excludedHeaderMarkers are header substrings that mark aggregate or pivot-blank columns.
var excludedHeaderMarkers = []string{"(blank)", "grand total"}

// ClassifyColumns classifies every column from 2 to grid.ColumnCount().
// The blank/total label check takes precedence over the date check.
func ClassifyColumns(grid *models.Grid, headerRow int) models.Columns {
	cols := make(models.Columns, 0, max(grid.ColumnCount()-1, 0))
	for col := 2; col <= grid.ColumnCount(); col++ {
		header := grid.At(headerRow, col)
		cols = append(cols, models.Column{
			Index:  col,
			Header: header,
			Class:  classifyColumn(grid, headerRow, col, header),
		})
	}
	return cols
}

func classifyColumn(grid *models.Grid, headerRow, col int, header models.CellValue) models.ColumnClass {
	label := strings.ToLower(strings.TrimSpace(header.String()))
	for _, marker := range excludedHeaderMarkers {
		if strings.Contains(label, marker) {
			return models.ColumnExcludedBlankOrTotal
		}
	}

	if header.Kind != models.CellDateTime {
		return models.ColumnIgnored
	}

	for row := headerRow + 1; row <= grid.RowCount(); row++ {
		if !isEmployeeRow(grid, row) {
			continue
		}
		if !grid.At(row, col).IsBlank() {
			return models.ColumnWorkday
		}
	}
	return models.ColumnExcludedEmpty
}

// isEmployeeRow reports whether the row holds an employee rather than a
// blank line or a subtotal/grand total line.
func isEmployeeRow(grid *models.Grid, row int) bool {
	name := grid.At(row, 1)
	if name.Kind == models.CellEmpty || name.Kind == models.CellZero {
		return false
	}
	return !strings.Contains(strings.ToLower(name.String()), "total")
}

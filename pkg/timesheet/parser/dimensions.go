package parser

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// dataExtent returns the last row and column holding a non-empty value.
func dataExtent(rows [][]string) (rowCount, colCount int) {
	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell == "" {
				continue
			}
			rowCount = max(rowCount, rowIdx+1)
			colCount = max(colCount, colIdx+1)
		}
	}
	return
}

// sheetDimension returns the bottom-right corner of the sheet's declared
// used range. Styled but empty cells count toward it.
func sheetDimension(f *excelize.File, sheetName string) (rowCount, colCount int, ok bool) {
	ref, err := f.GetSheetDimension(sheetName)
	if err != nil || ref == "" {
		return 0, 0, false
	}
	return parseRangeEnd(ref)
}

// parseRangeEnd parses a range like $A$1:$D$10 (or a single cell) and
// returns the coordinates of its last cell.
func parseRangeEnd(ref string) (row, col int, ok bool) {
	ref = strings.ReplaceAll(ref, "$", "")

	parts := strings.Split(ref, ":")
	if len(parts) > 2 {
		return 0, 0, false
	}

	col, row, err := excelize.CellNameToCoordinates(parts[len(parts)-1])
	if err != nil {
		return 0, 0, false
	}
	return row, col, true
}

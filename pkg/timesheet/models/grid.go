package models

// HeaderRow is the row holding the date headers (1-based).
const HeaderRow = 5

// FirstDataRow is the first row scanned for employees (1-based).
const FirstDataRow = HeaderRow + 1

// Grid is a 1-indexed table of typed cells read from one sheet.
type Grid struct {
	rows    int
	columns int
	cells   map[[2]int]CellValue
}

// NewGrid creates an empty grid with the given dimensions.
func NewGrid(rows, columns int) *Grid {
	if rows < 0 {
		rows = 0
	}
	if columns < 0 {
		columns = 0
	}
	return &Grid{
		rows:    rows,
		columns: columns,
		cells:   make(map[[2]int]CellValue),
	}
}

// RowCount returns the number of rows.
func (g *Grid) RowCount() int { return g.rows }

// ColumnCount returns the number of columns.
func (g *Grid) ColumnCount() int { return g.columns }

// At returns the cell at (row, col). Out-of-range reads return an empty cell.
func (g *Grid) At(row, col int) CellValue {
	if g == nil {
		return Empty()
	}
	v, ok := g.cells[[2]int{row, col}]
	if !ok {
		return Empty()
	}
	return v
}

// Set stores a cell value, growing the grid when needed.
// Empty values remove the cell.
func (g *Grid) Set(row, col int, v CellValue) {
	if row < 1 || col < 1 {
		return
	}
	if row > g.rows {
		g.rows = row
	}
	if col > g.columns {
		g.columns = col
	}
	if v.Kind == CellEmpty {
		delete(g.cells, [2]int{row, col})
		return
	}
	g.cells[[2]int{row, col}] = v
}

package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/timesheet-go/pkg/timesheet/models"
)

func day(month, d int) time.Time {
	return time.Date(2024, time.Month(month), d, 0, 0, 0, 0, time.UTC)
}

func header(month, d int) models.CellValue {
	return models.DateTime(day(month, d))
}

func clock(h, m, s int) models.CellValue {
	return models.DateTime(time.Date(1899, 12, 30, h, m, s, 0, time.UTC))
}

// newSheet builds a grid whose header row holds "Name" followed by headers.
func newSheet(headers ...models.CellValue) *models.Grid {
	g := models.NewGrid(models.HeaderRow, len(headers)+1)
	g.Set(1, 1, models.Text("Timesheet report"))
	g.Set(models.HeaderRow, 1, models.Text("Name"))
	for i, h := range headers {
		g.Set(models.HeaderRow, i+2, h)
	}
	return g
}

// addRow appends a data row and returns its index.
func addRow(g *models.Grid, name models.CellValue, cells ...models.CellValue) int {
	row := g.RowCount() + 1
	g.Set(row, 1, name)
	for i, c := range cells {
		g.Set(row, i+2, c)
	}
	return row
}

func run(g *models.Grid) (models.Columns, models.Evaluation) {
	cols := ClassifyColumns(g, models.HeaderRow)
	return cols, EvaluateRows(g, models.HeaderRow, cols)
}

func TestClassifyColumns_ScenarioA(t *testing.T) {
	g := newSheet(header(1, 1), models.Text("(blank)"), models.Text("Grand Total"))
	addRow(g, models.Text("Alice"), models.Empty(), models.Number(3))
	addRow(g, models.Text("Bob"), models.Zero(), models.Empty(), models.Number(8))
	addRow(g, models.Text("Grand Total"), models.Number(8), models.Empty(), models.Number(11))

	cols, ev := run(g)

	require.Len(t, cols, 3)
	assert.Equal(t, models.ColumnExcludedEmpty, cols[0].Class)
	assert.Equal(t, models.ColumnExcludedBlankOrTotal, cols[1].Class)
	assert.Equal(t, models.ColumnExcludedBlankOrTotal, cols[2].Class)
	assert.Empty(t, cols.Workdays())

	require.Len(t, ev.Employees, 2)
	for _, emp := range ev.Employees {
		assert.Zero(t, emp.BillableHours)
		assert.Empty(t, emp.MissingDates)
	}
	assert.Empty(t, ev.Missing)
	assert.Empty(t, ev.Highlights)
	assert.Empty(t, ev.NonBillable)
}

func TestClassifyColumns(t *testing.T) {
	tests := []struct {
		name   string
		header models.CellValue
		cells  []models.CellValue
		want   models.ColumnClass
	}{
		{"populated date", header(1, 2), []models.CellValue{clock(8, 0, 0), models.Empty()}, models.ColumnWorkday},
		{"text entry is evidence", header(1, 2), []models.CellValue{models.Text("PTO")}, models.ColumnWorkday},
		{"midnight is evidence", header(1, 2), []models.CellValue{clock(0, 0, 0)}, models.ColumnWorkday},
		{"blanks only", header(1, 2), []models.CellValue{models.Zero(), models.Text("  "), models.Empty()}, models.ColumnExcludedEmpty},
		{"blank label", models.Text("  (Blank) "), []models.CellValue{clock(8, 0, 0)}, models.ColumnExcludedBlankOrTotal},
		{"grand total label", models.Text("GRAND TOTAL"), []models.CellValue{clock(8, 0, 0)}, models.ColumnExcludedBlankOrTotal},
		{"text header", models.Text("Notes"), []models.CellValue{models.Text("x")}, models.ColumnIgnored},
		{"numeric header", models.Number(45292), []models.CellValue{clock(8, 0, 0)}, models.ColumnIgnored},
		{"empty header", models.Empty(), []models.CellValue{clock(8, 0, 0)}, models.ColumnIgnored},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newSheet(tt.header)
			for i, c := range tt.cells {
				addRow(g, models.Text("Employee "+string(rune('A'+i))), c)
			}
			cols := ClassifyColumns(g, models.HeaderRow)
			require.Len(t, cols, 1)
			assert.Equal(t, 2, cols[0].Index)
			assert.Equal(t, tt.want, cols[0].Class)
		})
	}
}

func TestClassifyColumns_IgnoresTotalRowsAsEvidence(t *testing.T) {
	g := newSheet(header(1, 3))
	addRow(g, models.Text("Alice"), models.Empty())
	addRow(g, models.Text("Subtotal"), clock(8, 0, 0))
	addRow(g, models.Zero(), clock(8, 0, 0))

	cols := ClassifyColumns(g, models.HeaderRow)
	require.Len(t, cols, 1)
	assert.Equal(t, models.ColumnExcludedEmpty, cols[0].Class)
}

func TestEvaluateRows_ScenarioB_ZeroIsMissing(t *testing.T) {
	g := newSheet(header(1, 1), header(1, 2), models.Text("Grand Total"))
	alice := addRow(g, models.Text("Alice"), clock(8, 0, 0), models.Zero(), clock(8, 0, 0))
	bob := addRow(g, models.Text("Bob"), clock(8, 0, 0), clock(7, 0, 0), clock(15, 0, 0))

	_, ev := run(g)

	require.Len(t, ev.Employees, 2)
	assert.Equal(t, []time.Time{day(1, 2)}, ev.Employees[0].MissingDates)
	assert.True(t, ev.Employees[0].HasIssue())
	assert.False(t, ev.Employees[1].HasIssue())

	require.Len(t, ev.Missing, 1)
	assert.Equal(t, "Alice", ev.Missing[0].Employee)
	assert.Equal(t, "01/02/2024", ev.Missing[0].Joined())

	require.Len(t, ev.Highlights, 1)
	assert.Equal(t, models.Highlight{
		Row:         alice,
		FirstColumn: 1,
		LastColumn:  g.ColumnCount(),
		Kind:        models.AnnotationMissingEntry,
	}, ev.Highlights[0])
	assert.NotContains(t, ev.HighlightRows(), bob)
}

func TestEvaluateRows_ScenarioC_BillableHours(t *testing.T) {
	g := newSheet(header(1, 1))
	addRow(g, models.Text("Bob"), clock(2, 30, 0))

	_, ev := run(g)

	require.Len(t, ev.Employees, 1)
	assert.InDelta(t, 2.5, ev.Employees[0].BillableHours, 1e-9)
	assert.InDelta(t, 2.5, ev.TotalBillableHours, 1e-9)
	assert.Empty(t, ev.NonBillable)
	assert.Empty(t, ev.Missing)
}

func TestEvaluateRows_ScenarioD_MidnightIsNonBillable(t *testing.T) {
	g := newSheet(header(1, 1), header(1, 2))
	addRow(g, models.Text("Carol"), clock(0, 0, 0), clock(4, 15, 36))

	_, ev := run(g)

	require.Len(t, ev.Employees, 1)
	carol := ev.Employees[0]
	assert.InDelta(t, 4.26, carol.BillableHours, 1e-9)
	assert.Empty(t, carol.MissingDates)
	assert.Empty(t, ev.Highlights)
	assert.Equal(t, []models.NonBillableEntry{{Row: carol.Row, Employee: "Carol", Date: day(1, 1)}}, ev.NonBillable)
}

func TestEvaluateRows_ScenarioE_TotalRowsSkipped(t *testing.T) {
	g := newSheet(header(1, 1))
	addRow(g, models.Text("Alice"), clock(8, 0, 0))
	total := addRow(g, models.Text("Total"), models.Empty())
	grand := addRow(g, models.Text("Grand Total"), models.Empty())
	sub := addRow(g, models.Text("Team subTOTAL"), models.Zero())
	blank := addRow(g, models.Empty(), models.Empty())

	_, ev := run(g)

	require.Len(t, ev.Employees, 1)
	assert.Equal(t, "Alice", ev.Employees[0].Name)
	for _, row := range []int{total, grand, sub, blank} {
		assert.NotContains(t, ev.HighlightRows(), row)
	}
}

func TestEvaluateRows_CellBranches(t *testing.T) {
	g := newSheet(header(1, 1), header(1, 2), header(1, 3), header(1, 4), header(1, 5))
	addRow(g, models.Text("Dana"), models.Text("PTO"), models.Text("   "), models.Number(8), models.Other("TRUE"), models.Empty())
	addRow(g, models.Text("Evan"), clock(1, 0, 0), clock(1, 0, 0), clock(1, 0, 0), clock(1, 0, 0), clock(1, 0, 0))

	_, ev := run(g)

	require.Len(t, ev.Employees, 2)
	dana := ev.Employees[0]
	assert.Equal(t, []time.Time{day(1, 2), day(1, 5)}, dana.MissingDates)
	assert.Zero(t, dana.BillableHours)

	var dates []time.Time
	for _, nb := range ev.NonBillable {
		assert.Equal(t, "Dana", nb.Employee)
		dates = append(dates, nb.Date)
	}
	assert.Equal(t, []time.Time{day(1, 1), day(1, 3), day(1, 4)}, dates)

	require.Len(t, ev.Missing, 1)
	assert.Equal(t, "01/02/2024, 01/05/2024", ev.Missing[0].Joined())
	assert.InDelta(t, 5.0, ev.TotalBillableHours, 1e-9)
}

func TestEvaluateRows_OnlyWorkdayColumns(t *testing.T) {
	g := newSheet(header(1, 1), models.Text("(blank)"), header(1, 2), models.Text("Comment"))
	addRow(g, models.Text("Alice"), clock(8, 0, 0), models.Empty(), models.Empty(), models.Empty())
	addRow(g, models.Text("Bob"), models.Empty(), clock(9, 0, 0), models.Empty(), models.Text("late"))

	cols, ev := run(g)
	classes := cols.ByIndex()

	require.Equal(t, models.ColumnWorkday, classes[2])
	require.Equal(t, models.ColumnExcludedEmpty, classes[4])

	excluded := map[time.Time]bool{day(1, 2): true}
	for _, emp := range ev.Employees {
		for _, d := range emp.MissingDates {
			assert.False(t, excluded[d], "excluded column leaked into %s's missing dates", emp.Name)
		}
	}
	assert.Equal(t, []time.Time{day(1, 1)}, ev.Employees[1].MissingDates)
	assert.Zero(t, ev.Employees[1].BillableHours)
	assert.Empty(t, ev.NonBillable)
}

func TestEvaluateRows_UsesGivenColumnsOnly(t *testing.T) {
	g := newSheet(header(1, 1), header(1, 2))
	addRow(g, models.Text("Alice"), models.Empty(), models.Empty())

	cols := models.Columns{
		{Index: 3, Header: header(1, 2), Class: models.ColumnWorkday},
		{Index: 2, Header: header(1, 1), Class: models.ColumnExcludedEmpty},
	}
	ev := EvaluateRows(g, models.HeaderRow, cols)

	require.Len(t, ev.Employees, 1)
	assert.Equal(t, []time.Time{day(1, 2)}, ev.Employees[0].MissingDates)
}

func TestEvaluateRows_HighlightIffIssue(t *testing.T) {
	g := newSheet(header(1, 1), header(1, 2), header(1, 3))
	addRow(g, models.Text("A"), clock(8, 0, 0), clock(8, 0, 0), clock(8, 0, 0))
	addRow(g, models.Text("B"), models.Empty(), clock(8, 0, 0), models.Text("sick"))
	addRow(g, models.Text("C"), clock(0, 0, 0), models.Zero(), clock(6, 0, 0))
	addRow(g, models.Text("D"), models.Text("WFH"), models.Text("WFH"), models.Text("WFH"))

	_, ev := run(g)

	highlighted := make(map[int]models.Highlight)
	for _, h := range ev.Highlights {
		highlighted[h.Row] = h
	}
	for _, emp := range ev.Employees {
		h, ok := highlighted[emp.Row]
		assert.Equal(t, emp.HasIssue(), ok, "row %d", emp.Row)
		if ok {
			assert.Equal(t, 1, h.FirstColumn)
			assert.Equal(t, g.ColumnCount(), h.LastColumn)
		}
	}
	assert.Len(t, ev.Missing, 2)
}

func TestEvaluateRows_Idempotent(t *testing.T) {
	g := newSheet(header(1, 1), header(1, 2), models.Text("Grand Total"))
	addRow(g, models.Text("A"), clock(8, 0, 0), models.Empty())
	addRow(g, models.Text("B"), clock(0, 0, 0), models.Text("x"))
	addRow(g, models.Text("Total"), clock(8, 0, 0), models.Empty())

	cols1, ev1 := run(g)
	cols2, ev2 := run(g)

	assert.Equal(t, cols1, cols2)
	assert.Equal(t, ev1, ev2)
}

func TestEvaluateRows_TotalMatchesEmployees(t *testing.T) {
	g := newSheet(header(1, 1), header(1, 2), header(1, 3))
	addRow(g, models.Text("A"), clock(7, 20, 0), clock(8, 0, 1), clock(1, 1, 1))
	addRow(g, models.Text("B"), clock(0, 0, 59), models.Empty(), clock(23, 59, 59))
	addRow(g, models.Text("C"), clock(3, 33, 33), clock(2, 22, 22), clock(0, 0, 0))

	_, ev := run(g)

	var sum float64
	for _, emp := range ev.Employees {
		sum += emp.BillableHours
	}
	assert.InDelta(t, sum, ev.TotalBillableHours, 1e-9)
}

// The non-billable total is never incremented by any branch: midnight times
// and unrecognized entries are listed as events but add no hours. This looks
// like a defect in the rules, kept as-is until the intended behavior is known.
func TestEvaluateRows_NonBillableTotalAlwaysZero(t *testing.T) {
	g := newSheet(header(1, 1), header(1, 2))
	addRow(g, models.Text("A"), clock(0, 0, 0), models.Text("holiday"))
	addRow(g, models.Text("B"), models.Number(4), clock(0, 0, 0))

	_, ev := run(g)

	assert.Len(t, ev.NonBillable, 4)
	assert.Zero(t, ev.TotalNonBillableHours)
	for _, emp := range ev.Employees {
		assert.Zero(t, emp.NonBillableHours)
	}
}

func TestAnalysis_DegenerateGrids(t *testing.T) {
	t.Run("empty grid", func(t *testing.T) {
		cols, ev := run(models.NewGrid(0, 0))
		assert.Empty(t, cols)
		assert.Empty(t, ev.Employees)
		assert.Zero(t, ev.TotalBillableHours)
	})

	t.Run("no header row", func(t *testing.T) {
		g := models.NewGrid(0, 0)
		g.Set(1, 1, models.Text("Alice"))
		g.Set(1, 2, clock(8, 0, 0))
		cols, ev := run(g)
		require.Len(t, cols, 1)
		assert.Equal(t, models.ColumnIgnored, cols[0].Class)
		assert.Empty(t, ev.Employees)
	})

	t.Run("no dated columns", func(t *testing.T) {
		g := newSheet(models.Text("Mon"), models.Text("Tue"))
		addRow(g, models.Text("Alice"), models.Empty(), models.Empty())
		_, ev := run(g)
		require.Len(t, ev.Employees, 1)
		assert.Empty(t, ev.Missing)
		assert.Empty(t, ev.Highlights)
	})
}

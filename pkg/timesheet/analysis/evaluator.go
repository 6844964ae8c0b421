package analysis

import (
	"cmp"
	"slices"
	"time"

	"github.com/ukaji3/timesheet-go/pkg/timesheet/models"
)

// EvaluateRows walks every employee row below headerRow against the workday
// columns of cols. Columns of any other class are skipped.
func EvaluateRows(grid *models.Grid, headerRow int, cols models.Columns) models.Evaluation {
	workdays := slices.Clone(cols.Workdays())
	slices.SortFunc(workdays, func(a, b models.Column) int { return cmp.Compare(a.Index, b.Index) })

	var ev models.Evaluation
	for row := headerRow + 1; row <= grid.RowCount(); row++ {
		if !isEmployeeRow(grid, row) {
			continue
		}

		emp := evaluateRow(grid, row, workdays, &ev)
		ev.Employees = append(ev.Employees, emp)

		if emp.HasIssue() {
			ev.Missing = append(ev.Missing, models.MissingEntry{
				Row:      row,
				Employee: emp.Name,
				Dates:    emp.MissingDates,
			})
			ev.Highlights = append(ev.Highlights, models.Highlight{
				Row:         row,
				FirstColumn: 1,
				LastColumn:  grid.ColumnCount(),
				Kind:        models.AnnotationMissingEntry,
			})
		}

		ev.TotalBillableHours += emp.BillableHours
		ev.TotalNonBillableHours += emp.NonBillableHours
	}
	return ev
}

// evaluateRow classifies each workday cell of one row. Non-billable events are
// appended to ev in column order.
func evaluateRow(grid *models.Grid, row int, workdays models.Columns, ev *models.Evaluation) models.EmployeeResult {
	emp := models.EmployeeResult{
		Row:  row,
		Name: grid.At(row, 1).String(),
	}

	for _, col := range workdays {
		date := col.Header.Time
		cell := grid.At(row, col.Index)

		switch cell.Kind {
		case models.CellEmpty, models.CellZero:
			emp.MissingDates = append(emp.MissingDates, date)
		case models.CellText:
			if cell.IsBlank() {
				emp.MissingDates = append(emp.MissingDates, date)
				continue
			}
			ev.NonBillable = append(ev.NonBillable, nonBillable(emp, date))
		case models.CellDateTime:
			// A midnight time is logged work without billable duration. It
			// adds nothing to NonBillableHours either.
			if hours := cell.Hours(); hours > 0 {
				emp.BillableHours += hours
			} else {
				ev.NonBillable = append(ev.NonBillable, nonBillable(emp, date))
			}
		case models.CellOther:
			ev.NonBillable = append(ev.NonBillable, nonBillable(emp, date))
		}
	}
	return emp
}

func nonBillable(emp models.EmployeeResult, date time.Time) models.NonBillableEntry {
	return models.NonBillableEntry{Row: emp.Row, Employee: emp.Name, Date: date}
}

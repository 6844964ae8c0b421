package models

import (
	"strings"
	"time"
)

// MissingDateLayout formats dates in the missing-entry report.
const MissingDateLayout = "01/02/2006"

// EmployeeResult is the evaluation of one employee row.
type EmployeeResult struct {
	// Row is the sheet row index (1-based).
	Row int `json:"row"`
	// Name is the display text of column 1.
	Name string `json:"name"`
	// BillableHours is the sum of positive durations on workday columns.
	BillableHours float64 `json:"billable_hours"`
	// NonBillableHours is tracked separately and currently never increases.
	NonBillableHours float64 `json:"non_billable_hours"`
	// MissingDates are the header dates of blank workday cells, in column order.
	MissingDates []time.Time `json:"missing_dates,omitempty"`
}

// HasIssue reports whether the employee has any missing entry.
func (e EmployeeResult) HasIssue() bool {
	return len(e.MissingDates) > 0
}

// MissingEntry lists the dates one employee did not fill.
type MissingEntry struct {
	// Row is the sheet row index (1-based).
	Row int `json:"row"`
	// Employee is the employee name.
	Employee string `json:"employee"`
	// Dates are the missing header dates in column order.
	Dates []time.Time `json:"dates"`
}

// Joined returns the dates as MM/DD/YYYY separated by ", ".
func (m MissingEntry) Joined() string {
	parts := make([]string, len(m.Dates))
	for i, d := range m.Dates {
		parts[i] = d.Format(MissingDateLayout)
	}
	return strings.Join(parts, ", ")
}

// NonBillableEntry is an (employee, date) pair where work was logged without billable duration.
type NonBillableEntry struct {
	// Row is the sheet row index (1-based).
	Row int `json:"row"`
	// Employee is the employee name.
	Employee string `json:"employee"`
	// Date is the header date of the column.
	Date time.Time `json:"date"`
}

// AnnotationKind names the semantic annotation applied to a highlighted range.
type AnnotationKind string

// AnnotationMissingEntry marks a row with at least one missing entry.
const AnnotationMissingEntry AnnotationKind = "missing-entry"

// Highlight is a row range that the renderer should mark.
type Highlight struct {
	// Row is the row index (1-based).
	Row int `json:"row"`
	// FirstColumn is the start column (1-based).
	FirstColumn int `json:"first_column"`
	// LastColumn is the end column (1-based, inclusive).
	LastColumn int `json:"last_column"`
	// Kind is the annotation applied.
	Kind AnnotationKind `json:"kind"`
}

// Evaluation is the output of the row evaluator.
type Evaluation struct {
	// Employees holds one result per employee row in scan order.
	Employees []EmployeeResult `json:"employees"`
	// Missing holds one entry per employee with missing dates.
	Missing []MissingEntry `json:"missing"`
	// NonBillable holds every non-billable event in scan order.
	NonBillable []NonBillableEntry `json:"non_billable"`
	// Highlights holds the rows to mark.
	Highlights []Highlight `json:"highlights"`
	// TotalBillableHours is the sum of all employees' billable hours.
	TotalBillableHours float64 `json:"total_billable_hours"`
	// TotalNonBillableHours is the sum of all employees' non-billable hours.
	TotalNonBillableHours float64 `json:"total_non_billable_hours"`
}

// HighlightRows returns the highlighted row indexes in scan order.
func (e Evaluation) HighlightRows() []int {
	rows := make([]int, len(e.Highlights))
	for i, h := range e.Highlights {
		rows[i] = h.Row
	}
	return rows
}

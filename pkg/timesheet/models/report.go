package models

// Metrics are the headline numbers shown after processing.
type Metrics struct {
	// MissingCount is the number of employees with missing entries.
	MissingCount int `json:"missing_count"`
	// TotalBillableHours is the billable total.
	TotalBillableHours float64 `json:"total_billable_hours"`
	// TotalNonBillableHours is the non-billable total.
	TotalNonBillableHours float64 `json:"total_non_billable_hours"`
}

// Report represents the full result of checking one timesheet.
type Report struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name,omitempty"`
	// SheetName is the data sheet that was checked.
	SheetName string `json:"sheet_name,omitempty"`
	// RowCount is the number of rows in the data sheet.
	RowCount int `json:"row_count"`
	// ColumnCount is the number of columns in the data sheet.
	ColumnCount int `json:"column_count"`
	// Columns holds the classification of every header column.
	Columns Columns `json:"columns"`
	// Evaluation holds per-employee results and totals.
	Evaluation Evaluation `json:"evaluation"`
	// Summary holds the rows written to the Summary sheet.
	Summary Summary `json:"summary"`
	// Metrics holds the headline numbers.
	Metrics Metrics `json:"metrics"`
}

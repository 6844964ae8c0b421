package analysis

import (
	"unicode/utf8"

	"github.com/ukaji3/timesheet-go/pkg/timesheet/models"
)

// Summary sheet labels.
const (
	TitleMissing          = "Employees who didn't fill timesheet"
	TitleNonBillable      = "Employees who logged non-billable hours"
	LabelEmployeeName     = "Employee Name"
	LabelMissingDates     = "Missing Dates"
	LabelDate             = "Date"
	LabelTotalBillable    = "Total Billable Hours"
	LabelTotalNonBillable = "Total Non-Billable Hours"
)

// BuildSummary turns an evaluation into the ordered Summary sheet rows.
func BuildSummary(ev models.Evaluation) models.Summary {
	rows := []models.SummaryRow{
		textRow(models.StyleTitle, TitleMissing),
		textRow(models.StyleColumnHeader, LabelEmployeeName, LabelMissingDates),
	}
	for _, m := range ev.Missing {
		rows = append(rows, textRow(models.StylePlain, m.Employee, m.Joined()))
	}

	rows = append(rows,
		models.SummaryRow{Style: models.StylePlain},
		textRow(models.StyleSectionTitle, TitleNonBillable),
		textRow(models.StyleColumnHeader, LabelEmployeeName, LabelDate),
	)
	for _, nb := range ev.NonBillable {
		rows = append(rows, models.SummaryRow{
			Style: models.StylePlain,
			Cells: []models.SummaryCell{
				{Value: nb.Employee},
				{Value: nb.Date, NumFmt: models.SummaryDateNumFmt},
			},
		})
	}

	rows = append(rows,
		models.SummaryRow{Style: models.StylePlain},
		totalRow(LabelTotalBillable, ev.TotalBillableHours),
		totalRow(LabelTotalNonBillable, ev.TotalNonBillableHours),
	)

	return models.Summary{
		Rows:           rows,
		ContentLengths: contentLengths(rows),
	}
}

func textRow(style models.StyleHint, values ...string) models.SummaryRow {
	cells := make([]models.SummaryCell, len(values))
	for i, v := range values {
		cells[i] = models.SummaryCell{Value: v}
	}
	return models.SummaryRow{Cells: cells, Style: style}
}

func totalRow(label string, value float64) models.SummaryRow {
	return models.SummaryRow{
		Style: models.StyleTotal,
		Cells: []models.SummaryCell{{Value: label}, {Value: value}},
	}
}

// contentLengths returns the longest display text per column. Empty strings
// and zero totals do not count toward the width.
func contentLengths(rows []models.SummaryRow) []int {
	var lengths []int
	for _, row := range rows {
		for i, cell := range row.Cells {
			if isFalsy(cell.Value) {
				continue
			}
			for len(lengths) <= i {
				lengths = append(lengths, 0)
			}
			lengths[i] = max(lengths[i], utf8.RuneCountInString(cell.Display()))
		}
	}
	return lengths
}

func isFalsy(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case float64:
		return x == 0
	default:
		return false
	}
}

// Package output renders timesheet reports as JSON and as workbook annotations.
package output

import (
	"encoding/json"

	"github.com/ukaji3/timesheet-go/pkg/timesheet/models"
)

// ToJSON serializes a report.
func ToJSON(report *models.Report, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(report, "", "  ")
	}
	return json.Marshal(report)
}

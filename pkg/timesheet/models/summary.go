package models

import (
	"strconv"
	"time"
)

// SummaryDateLayout is the display layout of non-billable dates.
const SummaryDateLayout = "1/2/2006"

// SummaryDateNumFmt is the spreadsheet number format of non-billable dates.
const SummaryDateNumFmt = "m/d/yyyy"

// MaxColumnWidth caps summary column widths.
const MaxColumnWidth = 50

// StyleHint tells the renderer how to style a summary row.
type StyleHint string

const (
	// StylePlain is an unstyled row.
	StylePlain StyleHint = "plain"
	// StyleTitle is the report title (bold, size 12).
	StyleTitle StyleHint = "title"
	// StyleSectionTitle is a bold section heading.
	StyleSectionTitle StyleHint = "section-title"
	// StyleColumnHeader is a row of bold column labels.
	StyleColumnHeader StyleHint = "column-header"
	// StyleTotal is a total line with a bold label.
	StyleTotal StyleHint = "total"
)

// SummaryCell is one value of a summary row.
type SummaryCell struct {
	// Value is a string, float64 or time.Time.
	Value any `json:"value"`
	// NumFmt is an optional number format code.
	NumFmt string `json:"num_fmt,omitempty"`
}

// Display returns the text shown for the cell.
func (c SummaryCell) Display() string {
	switch v := c.Value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case time.Time:
		return v.Format(SummaryDateLayout)
	default:
		return ""
	}
}

// SummaryRow is one row of the Summary sheet. A row without cells is a separator.
type SummaryRow struct {
	Cells []SummaryCell `json:"cells"`
	Style StyleHint     `json:"style"`
}

// Summary is the ordered report written to the Summary sheet.
type Summary struct {
	// Rows are the report rows, top to bottom.
	Rows []SummaryRow `json:"rows"`
	// ContentLengths is the longest display text per column (0-based).
	ContentLengths []int `json:"content_lengths"`
}

// ColumnWidth returns the render width of a 0-based column: min(len+2, 50).
func (s Summary) ColumnWidth(col int) float64 {
	if col < 0 || col >= len(s.ContentLengths) {
		return 0
	}
	return float64(min(s.ContentLengths[col]+2, MaxColumnWidth))
}

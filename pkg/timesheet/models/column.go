package models

import "fmt"

// ColumnClass is the classifier's verdict for a header column.
type ColumnClass int

const (
	// ColumnIgnored is a column whose header is neither a date nor a blank/total label.
	ColumnIgnored ColumnClass = iota
	// ColumnExcludedBlankOrTotal is a "(blank)" or "Grand Total" column.
	ColumnExcludedBlankOrTotal
	// ColumnExcludedEmpty is a date column no employee has an entry in.
	ColumnExcludedEmpty
	// ColumnWorkday is a populated date column every employee is checked against.
	ColumnWorkday
)

// String returns a human-readable name for the ColumnClass.
func (c ColumnClass) String() string {
	switch c {
	case ColumnIgnored:
		return "ignored"
	case ColumnExcludedBlankOrTotal:
		return "excluded-blank-or-total"
	case ColumnExcludedEmpty:
		return "excluded-empty"
	case ColumnWorkday:
		return "valid-workday"
	default:
		return "unknown"
	}
}

// MarshalText encodes the class by name.
func (c ColumnClass) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a class name written by MarshalText.
func (c *ColumnClass) UnmarshalText(text []byte) error {
	for v := ColumnIgnored; v <= ColumnWorkday; v++ {
		if v.String() == string(text) {
			*c = v
			return nil
		}
	}
	return fmt.Errorf("unknown column class %q", text)
}

// Excluded reports whether the column was removed from evaluation.
func (c ColumnClass) Excluded() bool {
	return c == ColumnExcludedBlankOrTotal || c == ColumnExcludedEmpty
}

// Column is one classified header column.
type Column struct {
	// Index is the column index (1-based).
	Index int `json:"index"`
	// Header is the header cell value.
	Header CellValue `json:"header"`
	// Class is the classification.
	Class ColumnClass `json:"class"`
}

// Columns holds classified columns in ascending index order.
type Columns []Column

// Workdays returns the valid workday columns in ascending index order.
func (cs Columns) Workdays() Columns {
	var out Columns
	for _, c := range cs {
		if c.Class == ColumnWorkday {
			out = append(out, c)
		}
	}
	return out
}

// ByIndex returns a lookup from column index to classification.
func (cs Columns) ByIndex() map[int]ColumnClass {
	m := make(map[int]ColumnClass, len(cs))
	for _, c := range cs {
		m[c.Index] = c.Class
	}
	return m
}

// Package models defines data structures for timesheet validation.
package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// CellKind represents the type of value held by a cell.
type CellKind int

const (
	// CellEmpty is a cell with no value.
	CellEmpty CellKind = iota
	// CellZero is a plain numeric zero.
	CellZero
	// CellText is a string value.
	CellText
	// CellDateTime is a number carrying a date or time format.
	CellDateTime
	// CellOther is any other non-empty value (non-zero numbers, booleans, errors).
	CellOther
)

// String returns a human-readable name for the CellKind.
func (k CellKind) String() string {
	switch k {
	case CellEmpty:
		return "empty"
	case CellZero:
		return "zero"
	case CellText:
		return "text"
	case CellDateTime:
		return "datetime"
	case CellOther:
		return "other"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k CellKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name written by MarshalText.
func (k *CellKind) UnmarshalText(text []byte) error {
	for c := CellEmpty; c <= CellOther; c++ {
		if c.String() == string(text) {
			*k = c
			return nil
		}
	}
	return fmt.Errorf("unknown cell kind %q", text)
}

// CellValue is a typed cell value.
type CellValue struct {
	// Kind selects which payload field is meaningful.
	Kind CellKind `json:"kind"`
	// Text is the string content for CellText and CellOther.
	Text string `json:"text,omitempty"`
	// Number is the numeric content for CellOther numbers.
	Number float64 `json:"number,omitempty"`
	// Time is the decoded value for CellDateTime.
	Time time.Time `json:"time,omitzero"`
}

// Empty returns the empty cell.
func Empty() CellValue { return CellValue{Kind: CellEmpty} }

// Zero returns a numeric zero cell.
func Zero() CellValue { return CellValue{Kind: CellZero} }

// Text returns a string cell.
func Text(s string) CellValue { return CellValue{Kind: CellText, Text: s} }

// DateTime returns a date/time cell.
func DateTime(t time.Time) CellValue { return CellValue{Kind: CellDateTime, Time: t} }

// Number returns a numeric cell; zero maps to CellZero.
func Number(n float64) CellValue {
	if n == 0 {
		return Zero()
	}
	return CellValue{Kind: CellOther, Number: n, Text: strconv.FormatFloat(n, 'f', -1, 64)}
}

// Other returns a non-numeric, non-text cell such as a boolean or an error value.
func Other(s string) CellValue { return CellValue{Kind: CellOther, Text: s} }

// IsBlank reports whether the cell counts as "nothing entered":
// empty, numeric zero, or whitespace-only text.
func (v CellValue) IsBlank() bool {
	switch v.Kind {
	case CellEmpty, CellZero:
		return true
	case CellText:
		return strings.TrimSpace(v.Text) == ""
	default:
		return false
	}
}

// Hours returns the time-of-day of a date/time cell as elapsed hours.
// It is 0 for every other kind.
func (v CellValue) Hours() float64 {
	if v.Kind != CellDateTime {
		return 0
	}
	return float64(v.Time.Hour()) + float64(v.Time.Minute())/60 + float64(v.Time.Second())/3600
}

// String returns the display text of the cell.
func (v CellValue) String() string {
	switch v.Kind {
	case CellEmpty:
		return ""
	case CellZero:
		return "0"
	case CellDateTime:
		return v.Time.Format("2006-01-02 15:04:05")
	default:
		return v.Text
	}
}

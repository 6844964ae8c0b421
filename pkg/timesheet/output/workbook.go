package output

import (
	"fmt"

	"github.com/ukaji3/timesheet-go/pkg/timesheet/models"
	"github.com/xuri/excelize/v2"
)

// DefaultHighlightColor is the fill applied to rows with missing entries.
const DefaultHighlightColor = "FF9999"

// DefaultSummarySheet is the name of the generated report sheet.
const DefaultSummarySheet = "Summary"

// AnnotateOptions configures how a report is written back into a workbook.
type AnnotateOptions struct {
	// SummarySheet is the sheet replaced with the summary report.
	SummarySheet string
	// HighlightColor is the RGB hex fill of highlighted rows.
	HighlightColor string
}

func (o AnnotateOptions) withDefaults() AnnotateOptions {
	if o.SummarySheet == "" {
		o.SummarySheet = DefaultSummarySheet
	}
	if o.HighlightColor == "" {
		o.HighlightColor = DefaultHighlightColor
	}
	return o
}

// Annotate clears every fill on the data sheet, fills the report's
// highlighted rows and replaces the summary sheet.
func Annotate(f *excelize.File, sheetName string, report *models.Report, opts AnnotateOptions) error {
	opts = opts.withDefaults()
	if sheetName == opts.SummarySheet {
		return fmt.Errorf("summary sheet %q would replace the data sheet", sheetName)
	}

	fills := newFillPainter(f, sheetName, opts.HighlightColor)
	if err := fills.clear(report.RowCount, report.ColumnCount); err != nil {
		return fmt.Errorf("clear fills: %w", err)
	}
	for _, h := range report.Evaluation.Highlights {
		if err := fills.highlight(h); err != nil {
			return fmt.Errorf("highlight row %d: %w", h.Row, err)
		}
	}

	if err := WriteSummary(f, opts.SummarySheet, report.Summary); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

// fillPainter rewrites cell fills while keeping the rest of each cell's style.
type fillPainter struct {
	f           *excelize.File
	sheet       string
	color       string
	cleared     map[int]int
	highlighted map[int]int
}

func newFillPainter(f *excelize.File, sheet, color string) *fillPainter {
	return &fillPainter{
		f:           f,
		sheet:       sheet,
		color:       color,
		cleared:     make(map[int]int),
		highlighted: make(map[int]int),
	}
}

func (p *fillPainter) clear(rows, cols int) error {
	for row := 1; row <= rows; row++ {
		for col := 1; col <= cols; col++ {
			cell, err := excelize.CoordinatesToCellName(col, row)
			if err != nil {
				return err
			}
			styleID, err := p.f.GetCellStyle(p.sheet, cell)
			if err != nil {
				return err
			}
			if styleID == 0 {
				continue
			}
			newID, err := p.derive(p.cleared, styleID, excelize.Fill{})
			if err != nil {
				return err
			}
			if newID == styleID {
				continue
			}
			if err := p.f.SetCellStyle(p.sheet, cell, cell, newID); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *fillPainter) highlight(h models.Highlight) error {
	fill := excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{p.color}}
	for col := h.FirstColumn; col <= h.LastColumn; col++ {
		cell, err := excelize.CoordinatesToCellName(col, h.Row)
		if err != nil {
			return err
		}
		styleID, err := p.f.GetCellStyle(p.sheet, cell)
		if err != nil {
			return err
		}
		newID, err := p.derive(p.highlighted, styleID, fill)
		if err != nil {
			return err
		}
		if err := p.f.SetCellStyle(p.sheet, cell, cell, newID); err != nil {
			return err
		}
	}
	return nil
}

// derive returns a style identical to styleID except for its fill.
// Results are cached per source style.
func (p *fillPainter) derive(cache map[int]int, styleID int, fill excelize.Fill) (int, error) {
	if id, ok := cache[styleID]; ok {
		return id, nil
	}
	style, err := p.f.GetStyle(styleID)
	if err != nil {
		return 0, err
	}
	if fillEqual(style.Fill, fill) {
		cache[styleID] = styleID
		return styleID, nil
	}
	style.Fill = fill
	id, err := p.f.NewStyle(style)
	if err != nil {
		return 0, err
	}
	cache[styleID] = id
	return id, nil
}

func fillEqual(a, b excelize.Fill) bool {
	if a.Type != b.Type || a.Pattern != b.Pattern || len(a.Color) != len(b.Color) {
		return false
	}
	for i := range a.Color {
		if a.Color[i] != b.Color[i] {
			return false
		}
	}
	return true
}

// WriteSummary replaces sheetName with the summary rows.
func WriteSummary(f *excelize.File, sheetName string, summary models.Summary) error {
	if idx, err := f.GetSheetIndex(sheetName); err == nil && idx >= 0 {
		if err := f.DeleteSheet(sheetName); err != nil {
			return err
		}
	}
	if _, err := f.NewSheet(sheetName); err != nil {
		return err
	}

	styles, err := newSummaryStyles(f)
	if err != nil {
		return err
	}

	for r, row := range summary.Rows {
		for c, cell := range row.Cells {
			name, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, name, cell.Value); err != nil {
				return err
			}
			if id := styles.pick(row.Style, c, cell); id != 0 {
				if err := f.SetCellStyle(sheetName, name, name, id); err != nil {
					return err
				}
			}
		}
	}

	for c := range summary.ContentLengths {
		col, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheetName, col, col, summary.ColumnWidth(c)); err != nil {
			return err
		}
	}
	return nil
}

type summaryStyles struct {
	title int
	bold  int
	date  int
}

func newSummaryStyles(f *excelize.File) (summaryStyles, error) {
	var s summaryStyles
	var err error
	if s.title, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}}); err != nil {
		return s, err
	}
	if s.bold, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return s, err
	}
	numFmt := models.SummaryDateNumFmt
	if s.date, err = f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt}); err != nil {
		return s, err
	}
	return s, nil
}

// pick returns the style of the cell at column index c of a row.
func (s summaryStyles) pick(hint models.StyleHint, c int, cell models.SummaryCell) int {
	switch {
	case hint == models.StyleTitle && c == 0:
		return s.title
	case hint == models.StyleColumnHeader:
		return s.bold
	case (hint == models.StyleSectionTitle || hint == models.StyleTotal) && c == 0:
		return s.bold
	case cell.NumFmt != "":
		return s.date
	default:
		return 0
	}
}

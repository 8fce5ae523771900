package outwriter

import (
	"fmt"
	"io"

	"github.com/huangsam/pivotrend/schema"
	"github.com/xuri/excelize/v2"
)

// Sheet names of generated workbooks.
const (
	pivotSheet   = "Pivot"
	summarySheet = "Summary"
	trendSheet   = "Trend"
)

// bandColor fills rows of odd parity.
const bandColor = "#F1F3F5"

// workbook wraps an excelize file with the two styles every sheet uses.
type workbook struct {
	f           *excelize.File
	headerStyle int
	bandStyle   int
}

func newWorkbook(firstSheet string) (*workbook, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", firstSheet); err != nil {
		_ = f.Close()
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	bandStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{bandColor}},
		Alignment: &excelize.Alignment{Vertical: "top"},
	})
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &workbook{f: f, headerStyle: headerStyle, bandStyle: bandStyle}, nil
}

// set writes value at the 1-based (col, row) position.
func (wb *workbook) set(sheet string, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return wb.f.SetCellValue(sheet, cell, value)
}

// style applies styleID to the cells between (c1, r1) and (c2, r2).
func (wb *workbook) style(sheet string, c1, r1, c2, r2, styleID int) error {
	from, err := excelize.CoordinatesToCellName(c1, r1)
	if err != nil {
		return err
	}
	to, err := excelize.CoordinatesToCellName(c2, r2)
	if err != nil {
		return err
	}
	return wb.f.SetCellStyle(sheet, from, to, styleID)
}

func (wb *workbook) merge(sheet string, c1, r1, c2, r2 int) error {
	from, err := excelize.CoordinatesToCellName(c1, r1)
	if err != nil {
		return err
	}
	to, err := excelize.CoordinatesToCellName(c2, r2)
	if err != nil {
		return err
	}
	return wb.f.MergeCell(sheet, from, to)
}

// headerRow writes a bold header on row 1.
func (wb *workbook) headerRow(sheet string, header []string) error {
	for c, h := range header {
		if err := wb.set(sheet, c+1, 1, h); err != nil {
			return err
		}
	}
	if len(header) == 0 {
		return nil
	}
	return wb.style(sheet, 1, 1, len(header), 1, wb.headerStyle)
}

// widen sets the width of columns 1..n.
func (wb *workbook) widen(sheet string, n int, width float64) error {
	if n <= 0 {
		return nil
	}
	last, err := excelize.ColumnNumberToName(n)
	if err != nil {
		return err
	}
	return wb.f.SetColWidth(sheet, "A", last, width)
}

func (wb *workbook) finish(w io.Writer) error {
	if err := wb.f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// writePivotWorkbook writes the table on a Pivot sheet with merged spans,
// and the summary block on its own sheet.
func writePivotWorkbook(w io.Writer, result *schema.PivotResult) error {
	wb, err := newWorkbook(pivotSheet)
	if err != nil {
		return err
	}
	defer func() { _ = wb.f.Close() }()
	depth := len(result.Headers)
	width := result.ColumnCount()

	if err := wb.headerRow(pivotSheet, result.HeaderRow()); err != nil {
		return err
	}
	grid := expandGrid(result)
	for r, line := range grid {
		rowNum := r + 2
		for c, g := range line {
			if g.Covered || g.Origin == nil {
				continue
			}
			var value any = g.Text
			if c >= depth && g.Origin.Value != nil {
				value = *g.Origin.Value
			}
			if err := wb.set(pivotSheet, c+1, rowNum, value); err != nil {
				return err
			}
			if rows, cols := extent(grid, r, c); rows > 1 || cols > 1 {
				if err := wb.merge(pivotSheet, c+1, rowNum, c+cols, rowNum+rows-1); err != nil {
					return err
				}
			}
		}
		if rowParity(result.Rows[r]) == 1 && width > depth {
			if err := wb.style(pivotSheet, depth+1, rowNum, width, rowNum, wb.bandStyle); err != nil {
				return err
			}
		}
	}
	if err := wb.widen(pivotSheet, depth, 24); err != nil {
		return err
	}

	if result.Summary != nil {
		if _, err := wb.f.NewSheet(summarySheet); err != nil {
			return err
		}
		if err := wb.headerRow(summarySheet, summaryHeader(result)); err != nil {
			return err
		}
		for i, line := range summaryLines(result) {
			rowNum := i + 2
			if err := wb.set(summarySheet, 1, rowNum, line.Label); err != nil {
				return err
			}
			for c, pv := range line.Values {
				if err := wb.set(summarySheet, c+2, rowNum, pv.Value); err != nil {
					return err
				}
			}
			if result.Settings.ShowTrend {
				if err := wb.set(summarySheet, len(line.Values)+2, rowNum, line.Trend.Display()); err != nil {
					return err
				}
			}
		}
		if err := wb.widen(summarySheet, 1, 18); err != nil {
			return err
		}
	}
	return wb.finish(w)
}

package outwriter

import (
	"github.com/huangsam/pivotrend/schema"
)

// gridCell is one position of the expanded table grid.
// Covered positions belong to a span that started in an earlier row or column.
type gridCell struct {
	Text    string
	Origin  *schema.Cell
	Covered bool
}

// expandGrid lays the emitted rows out on a rectangular grid of
// len(Headers)+len(Periods)(+1 trend) columns, resolving row and column spans.
func expandGrid(result *schema.PivotResult) [][]gridCell {
	depth := len(result.Headers)
	width := result.ColumnCount()
	grid := make([][]gridCell, len(result.Rows))

	// remaining[c] counts the rows still covered by the span above column c.
	remaining := make([]int, depth)
	spanText := make([]string, depth)
	spanOrigin := make([]*schema.Cell, depth)

	for r, row := range result.Rows {
		line := make([]gridCell, width)
		for c := range depth {
			if remaining[c] > 0 {
				line[c] = gridCell{Text: spanText[c], Origin: spanOrigin[c], Covered: true}
				remaining[c]--
			}
		}

		next := depth
		for i := range row.Cells {
			cell := &row.Cells[i]
			switch cell.Kind {
			case schema.HeaderCell, schema.LabelCell:
				col := min(cell.Depth, depth-1)
				if col < 0 {
					continue
				}
				line[col] = gridCell{Text: cell.Text, Origin: cell}
				if cell.RowSpan > 1 {
					remaining[col] = cell.RowSpan - 1
					spanText[col] = cell.Text
					spanOrigin[col] = cell
				}
				for c := col + 1; c < col+max(cell.ColSpan, 1) && c < depth; c++ {
					line[c] = gridCell{Text: cell.Text, Origin: cell, Covered: true}
				}
			default:
				if next < width {
					line[next] = gridCell{Text: cell.Text, Origin: cell}
					next++
				}
			}
		}
		grid[r] = line
	}
	return grid
}

// extent counts the rows and columns covered by the cell starting at grid[r][c].
// A subtotal label placed in the last header column ends the span above it.
func extent(grid [][]gridCell, r, c int) (rows, cols int) {
	origin := grid[r][c].Origin
	rows, cols = 1, 1
	for r+rows < len(grid) && grid[r+rows][c].Covered && grid[r+rows][c].Origin == origin {
		rows++
	}
	for c+cols < len(grid[r]) && grid[r][c+cols].Covered && grid[r][c+cols].Origin == origin {
		cols++
	}
	return rows, cols
}

// summaryLine is one synthetic total row.
type summaryLine struct {
	Kind   schema.RowKind
	Label  string
	Values []schema.PeriodValue
	Trend  schema.TrendLabel
}

// summaryLines returns the two synthetic total rows, or nil when the block is hidden.
func summaryLines(result *schema.PivotResult) []summaryLine {
	if result.Summary == nil {
		return nil
	}
	return []summaryLine{
		{Kind: schema.TotalRow, Label: schema.TotalRowLabel, Values: result.Summary.Totals, Trend: result.Summary.TotalTrend},
		{Kind: schema.ExternalRow, Label: schema.ExternalRowLabel, Values: result.Summary.ExternalTotals, Trend: result.Summary.ExternalTrend},
	}
}

// summaryHeader is the header of the summary table.
func summaryHeader(result *schema.PivotResult) []string {
	header := append([]string{""}, result.Periods...)
	if result.Settings.ShowTrend {
		header = append(header, schema.TrendHeader)
	}
	return header
}

// rowParity is the band of a row, carried by its value cells.
func rowParity(row schema.TableRow) int {
	if len(row.Cells) == 0 {
		return 0
	}
	return row.Cells[len(row.Cells)-1].Parity
}

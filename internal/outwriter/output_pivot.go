package outwriter

import (
	"fmt"
	"io"
	"strings"

	"github.com/huangsam/pivotrend/internal/contract"
	"github.com/huangsam/pivotrend/internal/parquet"
	"github.com/huangsam/pivotrend/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WritePivotResult outputs the pivot table, dispatching based on the output format configured.
func WritePivotResult(result *schema.PivotResult, cfg *contract.Config) error {
	return writeToTarget(cfg, func(w io.Writer) error {
		return RenderPivot(w, result, cfg)
	})
}

// RenderPivot writes the pivot table to w in the configured output format.
func RenderPivot(w io.Writer, result *schema.PivotResult, cfg *contract.Config) error {
	if handled, err := writeDocument(w, cfg.Output, result); handled {
		return err
	}
	switch cfg.Output {
	case schema.CSVOut:
		if err := writePivotCSV(w, result, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
		return nil
	case schema.ParquetOut:
		return parquet.WriteRows(w, parquet.ConvertPivotResult(result))
	case schema.XLSXOut:
		return writePivotWorkbook(w, result)
	case schema.HTMLOut:
		return writePivotHTML(w, result, cfg.Precision)
	default:
		// Default to human-readable table
		return writePivotTable(w, result, cfg)
	}
}

// writePivotTable generates and writes the human-readable table.
// Spanned header cells are printed once, on the first row they cover.
func writePivotTable(w io.Writer, result *schema.PivotResult, cfg *contract.Config) error {
	depth := len(result.Headers)
	maxWidth := GetMaxCategoryWidth(cfg, depth, result.ColumnCount()-depth)

	table := tablewriter.NewWriter(w)
	table.Header(result.HeaderRow())
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, line := range expandGrid(result) {
		row := make([]string, len(line))
		for c, g := range line {
			switch {
			case g.Covered:
			case c < depth:
				row[c] = contract.TruncateText(g.Text, maxWidth)
			case cfg.UseColors && g.Origin != nil && g.Origin.Kind == schema.TrendCell && !g.Origin.Suppressed:
				row[c] = contract.GetColorTrendLabel(g.Origin.Trend)
			default:
				row[c] = g.Text
			}
		}
		data = append(data, row)
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if result.Summary != nil {
		if err := writeSummaryTable(w, result, cfg); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Showing %d rows over %d periods (cycle %s)\n", len(result.Rows), len(result.Periods), result.CycleID)
	return err
}

// writeSummaryTable prints the synthetic Total and External total rows.
func writeSummaryTable(w io.Writer, result *schema.PivotResult, cfg *contract.Config) error {
	fmtFloat := valueFormatter(cfg.Precision)

	table := tablewriter.NewWriter(w)
	table.Header(summaryHeader(result))
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, line := range summaryLines(result) {
		row := []string{line.Label}
		for _, pv := range line.Values {
			row = append(row, fmtFloat(pv.Value))
		}
		if result.Settings.ShowTrend {
			if cfg.UseColors {
				row = append(row, contract.GetColorTrendLabel(line.Trend))
			} else {
				row = append(row, line.Trend.Display())
			}
		}
		data = append(data, row)
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writePivotCSV writes one record per table row, plus the summary rows.
// Spanned header values are repeated on every row they cover.
func writePivotCSV(w io.Writer, result *schema.PivotResult, cfg *contract.Config) error {
	fmtFloat := valueFormatter(cfg.Precision)
	depth := len(result.Headers)
	withTrend := result.HasTrendColumn() || (result.Summary != nil && result.Settings.ShowTrend)

	header := append([]string{"kind"}, result.Headers...)
	header = append(header, result.Periods...)
	if withTrend {
		header = append(header, schema.TrendHeader)
	}
	table := newCSVTable(header)

	for r, line := range expandGrid(result) {
		rec := make([]string, 0, len(header))
		rec = append(rec, string(result.Rows[r].Kind))
		for _, g := range line {
			if g.Covered && g.Origin != nil && g.Origin.Kind == schema.LabelCell {
				rec = append(rec, "")
				continue
			}
			rec = append(rec, strings.TrimSpace(g.Text))
		}
		table.add(rec)
	}

	for _, line := range summaryLines(result) {
		rec := make([]string, 1+depth, len(header))
		rec[0] = string(line.Kind)
		if depth > 0 {
			rec[1] = line.Label
		}
		for _, pv := range line.Values {
			rec = append(rec, fmtFloat(pv.Value))
		}
		if withTrend {
			rec = append(rec, line.Trend.Display())
		}
		table.add(rec)
	}
	return table.writeTo(w)
}

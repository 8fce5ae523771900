package outwriter

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/huangsam/pivotrend/internal/contract"
	"github.com/huangsam/pivotrend/internal/parquet"
	"github.com/huangsam/pivotrend/schema"
	"github.com/xuri/excelize/v2"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

var boxplotHeader = []string{"Area", "Min", "Q1", "Median", "Mean", "Q3", "Max", "Lower", "Upper", "N", "Outliers"}

// thresholdSheet lists the threshold lines of a boxplot workbook.
const thresholdSheet = "Thresholds"

// WriteBoxplotResult outputs the boxplot partitions, dispatching based on the output format configured.
func WriteBoxplotResult(result *schema.BoxplotResult, cfg *contract.Config) error {
	return writeToTarget(cfg, func(w io.Writer) error {
		return RenderBoxplot(w, result, cfg)
	})
}

// RenderBoxplot writes the boxplot partitions to w in the configured output format.
func RenderBoxplot(w io.Writer, result *schema.BoxplotResult, cfg *contract.Config) error {
	if handled, err := writeDocument(w, cfg.Output, result); handled {
		return err
	}
	fmtFloat := valueFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.CSVOut:
		if err := writeBoxplotCSV(w, result, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
		return nil
	case schema.ParquetOut:
		return parquet.WriteRows(w, parquet.ConvertBoxplotResult(result))
	case schema.XLSXOut:
		return writeBoxplotWorkbook(w, result)
	case schema.HTMLOut:
		return writeBoxplotHTML(w, result, fmtFloat)
	default:
		return writeBoxplotTable(w, result, fmtFloat)
	}
}

// boxplotCells formats one summary in boxplotHeader order.
func boxplotCells(s schema.BoxPlotSummary, fmtFloat func(float64) string) []string {
	return []string{
		s.Area,
		fmtFloat(s.Min),
		fmtFloat(s.Q1),
		fmtFloat(s.Median),
		fmtFloat(s.Mean),
		fmtFloat(s.Q3),
		fmtFloat(s.Max),
		fmtFloat(s.LowerBound),
		fmtFloat(s.UpperBound),
		strconv.Itoa(len(s.Values)),
		formatOutliers(s, fmtFloat),
	}
}

// formatOutliers lists the low outliers, then the high ones.
func formatOutliers(s schema.BoxPlotSummary, fmtFloat func(float64) string) string {
	parts := make([]string, 0, len(s.OutliersInf)+len(s.OutliersSup))
	for _, v := range s.OutliersInf {
		parts = append(parts, fmtFloat(v))
	}
	for _, v := range s.OutliersSup {
		parts = append(parts, fmtFloat(v))
	}
	return strings.Join(parts, " ")
}

// writeBoxplotTable prints one table per non-empty partition, then the threshold lines.
func writeBoxplotTable(w io.Writer, result *schema.BoxplotResult, fmtFloat func(float64) string) error {
	printed := 0
	for _, part := range result.Partitions() {
		if len(part.Summaries) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s (%d areas)\n", strings.ToUpper(part.Name), len(part.Summaries)); err != nil {
			return err
		}
		table := tablewriter.NewWriter(w)
		table.Header(boxplotHeader)
		table.Configure(func(cfg *tablewriter.Config) {
			cfg.Row.Alignment.Global = tw.AlignRight
		})
		var data [][]string
		for _, s := range part.Summaries {
			data = append(data, boxplotCells(s, fmtFloat))
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
		printed++
	}
	if printed == 0 {
		if _, err := fmt.Fprintln(w, "No samples to summarize"); err != nil {
			return err
		}
	}

	if len(result.Thresholds) == 0 {
		return nil
	}
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Threshold", "Color", "Value"})
	var data [][]string
	for i, line := range result.Thresholds {
		data = append(data, []string{strconv.Itoa(i + 1), line.Color, fmtFloat(line.Value)})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeBoxplotCSV writes one record per area and partition.
func writeBoxplotCSV(w io.Writer, result *schema.BoxplotResult, fmtFloat func(float64) string) error {
	header := []string{"partition", "area", "min", "q1", "median", "mean", "q3", "max", "lower_bound", "upper_bound", "n", "outliers", "color"}
	table := newCSVTable(header)
	for _, part := range result.Partitions() {
		for _, s := range part.Summaries {
			rec := append([]string{part.Name}, boxplotCells(s, fmtFloat)...)
			table.add(append(rec, s.Color))
		}
	}
	return table.writeTo(w)
}

// writeBoxplotWorkbook writes one sheet per partition; area cells are filled with the area color.
func writeBoxplotWorkbook(w io.Writer, result *schema.BoxplotResult) error {
	parts := result.Partitions()
	wb, err := newWorkbook(parts[0].Name)
	if err != nil {
		return err
	}
	defer func() { _ = wb.f.Close() }()

	exact := valueFormatter(-1)
	colorStyles := map[string]int{}
	for i, part := range parts {
		if i > 0 {
			if _, err := wb.f.NewSheet(part.Name); err != nil {
				return err
			}
		}
		if err := wb.headerRow(part.Name, boxplotHeader); err != nil {
			return err
		}
		for r, s := range part.Summaries {
			rowNum := r + 2
			values := []any{s.Area, s.Min, s.Q1, s.Median, s.Mean, s.Q3, s.Max, s.LowerBound, s.UpperBound, len(s.Values), formatOutliers(s, exact)}
			for c, v := range values {
				if err := wb.set(part.Name, c+1, rowNum, v); err != nil {
					return err
				}
			}
			if s.Color == "" {
				continue
			}
			style, ok := colorStyles[s.Color]
			if !ok {
				style, err = wb.f.NewStyle(&excelize.Style{Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{s.Color}}})
				if err != nil {
					return err
				}
				colorStyles[s.Color] = style
			}
			if err := wb.style(part.Name, 1, rowNum, 1, rowNum, style); err != nil {
				return err
			}
		}
		if err := wb.widen(part.Name, 1, 24); err != nil {
			return err
		}
	}

	if len(result.Thresholds) > 0 {
		if _, err := wb.f.NewSheet(thresholdSheet); err != nil {
			return err
		}
		if err := wb.headerRow(thresholdSheet, []string{"Color", "Value"}); err != nil {
			return err
		}
		for i, line := range result.Thresholds {
			if err := wb.set(thresholdSheet, 1, i+2, line.Color); err != nil {
				return err
			}
			if err := wb.set(thresholdSheet, 2, i+2, line.Value); err != nil {
				return err
			}
		}
	}
	return wb.finish(w)
}

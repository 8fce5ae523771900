package outwriter

import (
	"fmt"
	"io"
	"strings"

	"github.com/huangsam/pivotrend/internal/contract"
	"github.com/huangsam/pivotrend/schema"
)

// WriteTrendResult outputs a trend classification, dispatching based on the output format configured.
func WriteTrendResult(result *schema.TrendResult, cfg *contract.Config) error {
	return writeToTarget(cfg, func(w io.Writer) error {
		return RenderTrend(w, result, cfg)
	})
}

// RenderTrend writes a trend classification to w in the configured output format.
func RenderTrend(w io.Writer, result *schema.TrendResult, cfg *contract.Config) error {
	if handled, err := writeDocument(w, cfg.Output, result); handled {
		return err
	}
	fmtFloat := valueFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.CSVOut:
		table := newCSVTable([]string{"values", "label"})
		table.add([]string{joinValues(result.Values, fmtFloat), string(result.Label)})
		return table.writeTo(w)
	case schema.XLSXOut:
		return writeTrendWorkbook(w, result)
	case schema.HTMLOut:
		return writeTrendHTML(w, result)
	case schema.ParquetOut:
		return fmt.Errorf("%w: trend results have no parquet form", ErrUnsupportedOutput)
	default:
		label := result.Label.Display()
		if cfg.UseColors {
			label = contract.GetColorTrendLabel(result.Label)
		}
		_, err := fmt.Fprintf(w, "%s  [%s]\n", label, joinValues(result.Values, fmtFloat))
		return err
	}
}

func joinValues(values []float64, fmtFloat func(float64) string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmtFloat(v)
	}
	return strings.Join(parts, " ")
}

func writeTrendWorkbook(w io.Writer, result *schema.TrendResult) error {
	wb, err := newWorkbook(trendSheet)
	if err != nil {
		return err
	}
	defer func() { _ = wb.f.Close() }()

	if err := wb.headerRow(trendSheet, []string{"Point", "Value"}); err != nil {
		return err
	}
	for i, v := range result.Values {
		if err := wb.set(trendSheet, 1, i+2, i+1); err != nil {
			return err
		}
		if err := wb.set(trendSheet, 2, i+2, v); err != nil {
			return err
		}
	}
	labelRow := len(result.Values) + 3
	if err := wb.set(trendSheet, 1, labelRow, "Label"); err != nil {
		return err
	}
	if err := wb.set(trendSheet, 2, labelRow, result.Label.Display()); err != nil {
		return err
	}
	return wb.finish(w)
}

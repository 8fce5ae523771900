// Package outwriter has output and writer logic.
package outwriter

import (
	"errors"
	"os"

	"github.com/huangsam/pivotrend/internal/contract"
	"github.com/huangsam/pivotrend/schema"
	"golang.org/x/term"
)

// ErrUnsupportedOutput is returned when a result has no rendering for the requested format.
var ErrUnsupportedOutput = errors.New("unsupported output format")

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

var _ contract.OutputWriter = &OutWriter{} // Compile-time check

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WritePivot prints a pivot table using the configured output format.
func (ow *OutWriter) WritePivot(result *schema.PivotResult, cfg *contract.Config) error {
	return WritePivotResult(result, cfg)
}

// WriteBoxplot prints boxplot partitions using the configured output format.
func (ow *OutWriter) WriteBoxplot(result *schema.BoxplotResult, cfg *contract.Config) error {
	return WriteBoxplotResult(result, cfg)
}

// WriteTrend prints a standalone trend label using the configured output format.
func (ow *OutWriter) WriteTrend(result *schema.TrendResult, cfg *contract.Config) error {
	return WriteTrendResult(result, cfg)
}

// successMessage names what was written for the given output mode.
func successMessage(mode schema.OutputMode) string {
	switch mode {
	case schema.JSONOut:
		return "Wrote JSON"
	case schema.YAMLOut:
		return "Wrote YAML"
	case schema.CSVOut:
		return "Wrote CSV"
	case schema.ParquetOut:
		return "Wrote Parquet"
	case schema.XLSXOut:
		return "Wrote workbook"
	case schema.HTMLOut:
		return "Wrote HTML"
	default:
		return "Wrote table"
	}
}

// GetMaxCategoryWidth calculates the maximum width for category cells in table output
// based on terminal width and the number of period columns.
func GetMaxCategoryWidth(cfg *contract.Config, categoryColumns, valueColumns int) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Each value column takes roughly 12 characters with borders and padding
	baseWidth := valueColumns*12 + 4
	if categoryColumns <= 0 {
		return termWidth
	}

	available := (termWidth - baseWidth) / categoryColumns
	if available < 8 {
		return 8
	}
	if available > 40 {
		return 40
	}
	return available
}

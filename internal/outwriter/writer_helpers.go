package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/huangsam/pivotrend/internal/contract"
	"github.com/huangsam/pivotrend/schema"
	"gopkg.in/yaml.v3"
)

// writeToTarget runs render against the configured output file, or stdout
// when none is set, and reports on stderr where a file went.
func writeToTarget(cfg *contract.Config, render func(io.Writer) error) error {
	file, err := contract.SelectOutputFile(cfg.OutputFile)
	if err != nil {
		return err
	}
	if file == os.Stdout {
		return render(file)
	}
	defer func() { _ = file.Close() }()

	if err := render(file); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMessage(cfg.Output), cfg.OutputFile)
	return nil
}

// writeDocument encodes a whole result as an indented JSON or YAML document.
// handled is false for every other mode, leaving it to the caller.
func writeDocument(w io.Writer, mode schema.OutputMode, result any) (handled bool, err error) {
	switch mode {
	case schema.JSONOut:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return true, fmt.Errorf("failed to encode JSON: %w", err)
		}
		return true, nil
	case schema.YAMLOut:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(result); err != nil {
			return true, fmt.Errorf("failed to encode YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return true, fmt.Errorf("failed to encode YAML: %w", err)
		}
		return true, nil
	default:
		return false, nil
	}
}

// csvTable collects records under a fixed header.
// Short records are padded so every line has the header's width.
type csvTable struct {
	header  []string
	records [][]string
}

func newCSVTable(header []string) *csvTable {
	return &csvTable{header: header}
}

func (t *csvTable) add(rec []string) {
	if pad := len(t.header) - len(rec); pad > 0 {
		rec = append(rec, make([]string, pad)...)
	}
	t.records = append(t.records, rec)
}

// writeTo writes the header and every record, then flushes.
func (t *csvTable) writeTo(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := cw.WriteAll(t.records); err != nil {
		return fmt.Errorf("failed to write CSV records: %w", err)
	}
	return nil
}

// valueFormatter formats numbers at precision; a negative precision prints
// the shortest exact form.
func valueFormatter(precision int) func(float64) string {
	return func(v float64) string {
		return schema.FormatValue(v, precision)
	}
}

// Package parquet provides data structures and functions for reading pivot
// observations from, and exporting computed tables to, Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/huangsam/pivotrend/schema"
	"github.com/parquet-go/parquet-go"
)

// ErrRaggedObservations is returned when observations disagree on their category count.
var ErrRaggedObservations = errors.New("observations have different category counts")

// PathSeparator joins a row path into a single column value.
const PathSeparator = " / "

// Observation is one input row of a long-format dataset.
// This struct maps to the pivot_observations database table.
type Observation struct {
	// Period is the period token, e.g. "2023/24"
	Period string `parquet:"period,snappy"`

	// Categories holds the category values below the period, outermost first
	Categories []string `parquet:"categories,list"`

	// Value is the observed number (nullable)
	Value *float64 `parquet:"value,optional,snappy"`
}

// CellRecord is one value, total or trend cell of a computed table.
type CellRecord struct {
	CycleID string   `parquet:"cycle_id,snappy"`
	Row     int32    `parquet:"row,snappy"`
	RowKind string   `parquet:"row_kind,snappy"`
	Kind    string   `parquet:"kind,snappy"`
	Path    string   `parquet:"path,snappy"`
	Period  *string  `parquet:"period,optional,snappy"`
	Value   *float64 `parquet:"value,optional,snappy"`
	Trend   *string  `parquet:"trend,optional,snappy"`
}

// BoxplotRecord is one area summary of one boxplot partition.
type BoxplotRecord struct {
	CycleID      string  `parquet:"cycle_id,snappy"`
	Partition    string  `parquet:"partition,snappy"`
	Area         string  `parquet:"area,snappy"`
	Min          float64 `parquet:"min,snappy"`
	Q1           float64 `parquet:"q1,snappy"`
	Median       float64 `parquet:"median,snappy"`
	Mean         float64 `parquet:"mean,snappy"`
	Q3           float64 `parquet:"q3,snappy"`
	Max          float64 `parquet:"max,snappy"`
	IQR          float64 `parquet:"iqr,snappy"`
	LowerBound   float64 `parquet:"lower_bound,snappy"`
	UpperBound   float64 `parquet:"upper_bound,snappy"`
	SampleCount  int32   `parquet:"sample_count,snappy"`
	OutlierCount int32   `parquet:"outlier_count,snappy"`
	Color        *string `parquet:"color,optional,snappy"`
}

// WriteRows writes rows to w using the schema inferred from T.
func WriteRows[T any](w io.Writer, rows []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}

// WriteObservationsParquet writes a slice of Observation structs to a Parquet file.
func WriteObservationsParquet(data []Observation, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return WriteRows(file, data)
}

// ReadObservations reads every Observation from a Parquet file held in r.
func ReadObservations(r io.ReaderAt) ([]Observation, error) {
	reader := parquet.NewGenericReader[Observation](r)
	defer func() { _ = reader.Close() }()

	rows := make([]Observation, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read parquet observations: %w", err)
	}
	return rows[:n], nil
}

// ReadObservationsFile reads every Observation from a Parquet file on disk.
func ReadObservationsFile(path string) ([]Observation, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return ReadObservations(file)
}

// ObservationsToDataset converts observations into a columnar dataset.
// names labels the period column, each category level and the value column;
// missing names fall back to "Period", "Level N" and "Value".
func ObservationsToDataset(obs []Observation, names []string) (*schema.Dataset, error) {
	levels := 0
	if len(obs) > 0 {
		levels = len(obs[0].Categories)
	}
	ds := &schema.Dataset{Categories: make([]schema.CategoryColumn, levels+1)}
	for i := range ds.Categories {
		ds.Categories[i].DisplayName = columnName(names, i)
		ds.Categories[i].Values = make([]string, 0, len(obs))
	}
	valueName := "Value"
	if len(names) > levels+1 && names[levels+1] != "" {
		valueName = names[levels+1]
	}
	values := schema.ValueColumn{DisplayName: valueName, Values: make([]*float64, 0, len(obs))}

	for i, o := range obs {
		if len(o.Categories) != levels {
			return nil, fmt.Errorf("%w: row %d has %d, expected %d", ErrRaggedObservations, i, len(o.Categories), levels)
		}
		ds.Categories[0].Values = append(ds.Categories[0].Values, o.Period)
		for l, c := range o.Categories {
			ds.Categories[l+1].Values = append(ds.Categories[l+1].Values, c)
		}
		values.Values = append(values.Values, o.Value)
	}
	ds.Values = []schema.ValueColumn{values}
	return ds, nil
}

func columnName(names []string, i int) string {
	if i < len(names) && names[i] != "" {
		return names[i]
	}
	if i == 0 {
		return "Period"
	}
	return fmt.Sprintf("Level %d", i)
}

// DatasetToObservations is the inverse of ObservationsToDataset for the first value column.
func DatasetToObservations(ds *schema.Dataset) []Observation {
	n := ds.RowCount()
	if len(ds.Values) == 0 {
		return nil
	}
	out := make([]Observation, 0, n)
	for i := range n {
		o := Observation{Period: ds.Categories[0].Values[i], Categories: make([]string, 0, len(ds.Categories)-1)}
		for _, c := range ds.Categories[1:] {
			o.Categories = append(o.Categories, c.Values[i])
		}
		if i < len(ds.Values[0].Values) {
			o.Value = ds.Values[0].Values[i]
		}
		out = append(out, o)
	}
	return out
}

// ConvertPivotResult flattens the value, total and trend cells of a pivot
// table, including the synthetic summary rows, for Parquet export.
func ConvertPivotResult(result *schema.PivotResult) []CellRecord {
	var out []CellRecord
	for i, row := range result.Rows {
		path := strings.Join(row.Path, PathSeparator)
		for _, c := range row.Cells {
			if c.Kind == schema.HeaderCell || c.Kind == schema.LabelCell {
				continue
			}
			rec := CellRecord{
				CycleID: result.CycleID,
				Row:     int32(i),
				RowKind: string(row.Kind),
				Kind:    string(c.Kind),
				Path:    path,
				Value:   c.Value,
			}
			if c.Period != "" {
				rec.Period = &c.Period
			}
			if c.Kind == schema.TrendCell && !c.Suppressed {
				trend := string(c.Trend)
				rec.Trend = &trend
			}
			out = append(out, rec)
		}
	}
	if result.Summary == nil {
		return out
	}
	next := int32(len(result.Rows))
	out = append(out, summaryRecords(result.CycleID, next, schema.TotalRow, schema.TotalRowLabel, result.Summary.Totals, result.Summary.TotalTrend)...)
	out = append(out, summaryRecords(result.CycleID, next+1, schema.ExternalRow, schema.ExternalRowLabel, result.Summary.ExternalTotals, result.Summary.ExternalTrend)...)
	return out
}

func summaryRecords(cycleID string, row int32, kind schema.RowKind, label string, values []schema.PeriodValue, trend schema.TrendLabel) []CellRecord {
	out := make([]CellRecord, 0, len(values)+1)
	for _, pv := range values {
		out = append(out, CellRecord{
			CycleID: cycleID,
			Row:     row,
			RowKind: string(kind),
			Kind:    string(schema.TotalCell),
			Path:    label,
			Period:  &pv.Period,
			Value:   &pv.Value,
		})
	}
	if trend != "" {
		t := string(trend)
		out = append(out, CellRecord{CycleID: cycleID, Row: row, RowKind: string(kind), Kind: string(schema.TrendCell), Path: label, Trend: &t})
	}
	return out
}

// ConvertBoxplotResult flattens every partition of a boxplot result for Parquet export.
func ConvertBoxplotResult(result *schema.BoxplotResult) []BoxplotRecord {
	var out []BoxplotRecord
	for _, part := range result.Partitions() {
		for _, s := range part.Summaries {
			rec := BoxplotRecord{
				CycleID:      result.CycleID,
				Partition:    part.Name,
				Area:         s.Area,
				Min:          s.Min,
				Q1:           s.Q1,
				Median:       s.Median,
				Mean:         s.Mean,
				Q3:           s.Q3,
				Max:          s.Max,
				IQR:          s.IQR,
				LowerBound:   s.LowerBound,
				UpperBound:   s.UpperBound,
				SampleCount:  int32(len(s.Values)),
				OutlierCount: int32(len(s.OutliersInf) + len(s.OutliersSup)),
			}
			if s.Color != "" {
				color := s.Color
				rec.Color = &color
			}
			out = append(out, rec)
		}
	}
	return out
}

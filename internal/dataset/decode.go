package dataset

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"slices"
	"strconv"
	"strings"

	"github.com/huangsam/pivotrend/internal/parquet"
	"github.com/huangsam/pivotrend/schema"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for input names without a known extension.
var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// DecodeOptions tells the decoders how tabular input maps onto a Dataset.
type DecodeOptions struct {
	Layout      schema.DatasetLayout
	ValueColumn string   // long layout: header of the value column, default the last one
	Columns     []string // parquet: display names of the period and category columns
}

// Decode parses data according to the extension of name.
func Decode(name string, data []byte, opts DecodeOptions) (*schema.Dataset, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		return DecodeJSON(data)
	case ".yaml", ".yml":
		return DecodeYAML(data)
	case ".csv":
		if opts.Layout == schema.WideLayout {
			return DecodeWideCSV(bytes.NewReader(data))
		}
		return DecodeLongCSV(bytes.NewReader(data), opts.ValueColumn)
	case ".parquet":
		if opts.Layout == schema.WideLayout {
			return nil, fmt.Errorf("%w: parquet input only supports the long layout", ErrUnsupportedFormat)
		}
		obs, err := parquet.ReadObservations(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return parquet.ObservationsToDataset(obs, opts.Columns)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
}

// DecodeJSON parses a Dataset document.
func DecodeJSON(data []byte) (*schema.Dataset, error) {
	var ds schema.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to decode dataset JSON: %w", err)
	}
	return &ds, nil
}

// DecodeYAML parses a Dataset document.
func DecodeYAML(data []byte) (*schema.Dataset, error) {
	var ds schema.Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to decode dataset YAML: %w", err)
	}
	return &ds, nil
}

// DecodeLongCSV reads one observation per row. The header names the columns;
// valueColumn (or the last column) holds the value and every other column is
// a category, the first one being the period. Empty value cells are missing.
func DecodeLongCSV(r io.Reader, valueColumn string) (*schema.Dataset, error) {
	header, rows, err := readCSV(r)
	if err != nil {
		return nil, err
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("long CSV needs a period and a value column, got %d columns", len(header))
	}

	valueIdx := len(header) - 1
	if valueColumn != "" {
		valueIdx = slices.Index(header, valueColumn)
		if valueIdx < 0 {
			return nil, fmt.Errorf("value column %q not found in header %v", valueColumn, header)
		}
	}

	ds := &schema.Dataset{}
	catIdx := make([]int, 0, len(header)-1)
	for i, name := range header {
		if i == valueIdx {
			continue
		}
		catIdx = append(catIdx, i)
		ds.Categories = append(ds.Categories, schema.CategoryColumn{DisplayName: name, Values: make([]string, 0, len(rows))})
	}
	values := schema.ValueColumn{DisplayName: header[valueIdx], Values: make([]*float64, 0, len(rows))}

	for line, row := range rows {
		for c, i := range catIdx {
			ds.Categories[c].Values = append(ds.Categories[c].Values, strings.TrimSpace(row[i]))
		}
		v, err := parseCell(row[valueIdx])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line+2, err)
		}
		values.Values = append(values.Values, v)
	}
	ds.Values = []schema.ValueColumn{values}
	return ds, nil
}

// DecodeWideCSV reads one row per respondent: the first column is the area and
// every other column is a value column whose header is its group name.
func DecodeWideCSV(r io.Reader) (*schema.Dataset, error) {
	header, rows, err := readCSV(r)
	if err != nil {
		return nil, err
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("wide CSV needs an area and at least one value column, got %d columns", len(header))
	}

	ds := &schema.Dataset{
		Categories: []schema.CategoryColumn{{DisplayName: header[0], Values: make([]string, 0, len(rows))}},
	}
	for _, name := range header[1:] {
		ds.Values = append(ds.Values, schema.ValueColumn{DisplayName: name, GroupName: name, Values: make([]*float64, 0, len(rows))})
	}
	for line, row := range rows {
		ds.Categories[0].Values = append(ds.Categories[0].Values, strings.TrimSpace(row[0]))
		for c := range ds.Values {
			v, err := parseCell(row[c+1])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line+2, err)
			}
			ds.Values[c].Values = append(ds.Values[c].Values, v)
		}
	}
	return ds, nil
}

func readCSV(r io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("CSV input has no header row")
	}
	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
	}
	return header, records[1:], nil
}

func parseCell(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q", s)
	}
	return &v, nil
}

// Package agg has the record-level transforms: flattening, ordering and boxplot aggregation.
package agg

import (
	"errors"
	"fmt"

	"github.com/huangsam/pivotrend/schema"
)

// ErrShapeMismatch is returned when host columns disagree in length or are missing.
var ErrShapeMismatch = errors.New("shape mismatch")

// Flatten converts parallel category columns and one value column into one record per row.
// Records are not filtered; a nil value is carried through.
func Flatten(categories []schema.CategoryColumn, values schema.ValueColumn) ([]schema.FlatRecord, error) {
	if len(categories) == 0 {
		return nil, fmt.Errorf("%w: no category columns", ErrShapeMismatch)
	}
	n := len(values.Values)
	for _, col := range categories {
		if len(col.Values) != n {
			return nil, fmt.Errorf("%w: category column %q has %d rows, value column %q has %d",
				ErrShapeMismatch, col.DisplayName, len(col.Values), values.DisplayName, n)
		}
	}

	records := make([]schema.FlatRecord, n)
	for i := range n {
		cats := make([]string, len(categories))
		for c, col := range categories {
			cats[c] = col.Values[i]
		}
		records[i] = schema.FlatRecord{Index: i, Categories: cats, Value: values.Values[i]}
	}
	return records, nil
}

// FlattenDataset flattens a dataset using its first value column.
func FlattenDataset(ds *schema.Dataset) ([]schema.FlatRecord, error) {
	if ds == nil || len(ds.Values) == 0 {
		return nil, fmt.Errorf("%w: no value column", ErrShapeMismatch)
	}
	return Flatten(ds.Categories, ds.Values[0])
}

package agg

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/huangsam/pivotrend/core/algo"
	"github.com/huangsam/pivotrend/schema"
)

// ErrNoValues is returned when a summary is requested over an empty sample.
var ErrNoValues = errors.New("no values to summarize")

// Fence bounds are clamped to a percentage domain.
const (
	fenceFactor = 1.5
	fenceFloor  = 0.0
	fenceCeil   = 100.0
)

// Summarize computes the boxplot statistics of one area.
func Summarize(values []float64, area, color string) (schema.BoxPlotSummary, error) {
	if len(values) == 0 {
		return schema.BoxPlotSummary{}, fmt.Errorf("%w: area %q", ErrNoValues, area)
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	q1 := algo.Quantile(sorted, 0.25)
	q3 := algo.Quantile(sorted, 0.75)
	iqr := q3 - q1
	s := schema.BoxPlotSummary{
		Area:        area,
		Min:         algo.Quantile(sorted, 0),
		Q1:          q1,
		Median:      algo.Quantile(sorted, 0.5),
		Mean:        algo.Mean(values),
		Q3:          q3,
		Max:         algo.Quantile(sorted, 1),
		IQR:         iqr,
		LowerBound:  math.Max(q1-fenceFactor*iqr, fenceFloor),
		UpperBound:  math.Min(q3+fenceFactor*iqr, fenceCeil),
		Values:      slices.Clone(values),
		OutliersInf: []float64{},
		OutliersSup: []float64{},
		Color:       color,
	}
	for _, v := range values {
		switch {
		case v < s.LowerBound:
			s.OutliersInf = append(s.OutliersInf, v)
		case v > s.UpperBound:
			s.OutliersSup = append(s.OutliersSup, v)
		}
	}
	return s, nil
}

// IsDipGroup reports whether a value column group name carries the dip token
// among its '_' separated parts.
func IsDipGroup(groupName string) bool {
	for part := range strings.SplitSeq(groupName, "_") {
		if strings.EqualFold(strings.TrimSpace(part), schema.DipToken) {
			return true
		}
	}
	return false
}

// areaSamples collects per-area values for one subset of value columns.
type areaSamples struct {
	values map[string][]float64
}

func newAreaSamples() *areaSamples {
	return &areaSamples{values: make(map[string][]float64)}
}

func (a *areaSamples) add(area string, v float64) {
	a.values[area] = append(a.values[area], v)
}

func (a *areaSamples) summaries(areas []string, colors map[string]string) ([]schema.BoxPlotSummary, error) {
	out := make([]schema.BoxPlotSummary, 0, len(a.values))
	for _, area := range areas {
		vals, ok := a.values[area]
		if !ok {
			continue
		}
		s, err := Summarize(vals, area, colors[area])
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// SummarizeAreas groups every value of ds by the area in category column 0 and
// returns one summary per area for all columns, dip columns and cds columns.
// Areas keep their first-appearance order; missing values are skipped and
// partitions without values are omitted.
func SummarizeAreas(ds *schema.Dataset, colors map[string]string) (all, dip, cds []schema.BoxPlotSummary, err error) {
	if ds == nil || len(ds.Categories) == 0 {
		return nil, nil, nil, fmt.Errorf("%w: no area column", ErrShapeMismatch)
	}
	areaCol := ds.Categories[0]
	n := len(areaCol.Values)
	for _, vc := range ds.Values {
		if len(vc.Values) != n {
			return nil, nil, nil, fmt.Errorf("%w: value column %q has %d rows, area column %q has %d",
				ErrShapeMismatch, vc.DisplayName, len(vc.Values), areaCol.DisplayName, n)
		}
	}

	allSamples, dipSamples, cdsSamples := newAreaSamples(), newAreaSamples(), newAreaSamples()
	var areas []string
	seen := make(map[string]struct{})
	for i, area := range areaCol.Values {
		if _, ok := seen[area]; !ok {
			seen[area] = struct{}{}
			areas = append(areas, area)
		}
		for _, vc := range ds.Values {
			v := vc.Values[i]
			if v == nil || !schema.IsFinite(*v) {
				continue
			}
			allSamples.add(area, *v)
			if IsDipGroup(vc.GroupName) {
				dipSamples.add(area, *v)
			} else {
				cdsSamples.add(area, *v)
			}
		}
	}

	if all, err = allSamples.summaries(areas, colors); err != nil {
		return nil, nil, nil, err
	}
	if dip, err = dipSamples.summaries(areas, colors); err != nil {
		return nil, nil, nil, err
	}
	if cds, err = cdsSamples.summaries(areas, colors); err != nil {
		return nil, nil, nil, err
	}
	return all, dip, cds, nil
}

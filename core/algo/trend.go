// Package algo has the pure numeric building blocks: trend classification and quantiles.
package algo

import (
	"github.com/huangsam/pivotrend/schema"
)

// TrendWindow is the number of points a trend is computed from.
const TrendWindow = 3

// signPair is the two directional signs of a three-point trajectory.
type signPair struct {
	first, second int
}

// trendTable maps every sign pair to its label.
// A numeric decrease is direction +1; see trendSign.
var trendTable = map[signPair]schema.TrendLabel{
	{0, 0}:   schema.Equal,
	{0, 1}:   schema.WeaklyDecreasing,
	{0, -1}:  schema.WeaklyIncreasing,
	{1, 0}:   schema.ModeratelyDecreasing,
	{1, 1}:   schema.StronglyDecreasing,
	{1, -1}:  schema.OscillatingDecreasing,
	{-1, -1}: schema.StronglyIncreasing,
	{-1, 0}:  schema.ModeratelyIncreasing,
	{-1, 1}:  schema.OscillatingIncreasing,
}

// trendSign returns 1 for a negative delta, -1 for a positive one and 0 otherwise.
func trendSign(delta float64) int {
	switch {
	case delta < 0:
		return 1
	case delta > 0:
		return -1
	default:
		return 0
	}
}

// ClassifyTrend labels the last three finite values of a chronological series.
// Non-finite values are dropped, not replaced; fewer than three survivors yield Incomplete.
func ClassifyTrend(values []float64) schema.TrendLabel {
	finite := make([]float64, 0, len(values))
	for _, v := range values {
		if schema.IsFinite(v) {
			finite = append(finite, v)
		}
	}
	if len(finite) < TrendWindow {
		return schema.Incomplete
	}
	last := finite[len(finite)-TrendWindow:]
	return classifySigns(trendSign(last[1]-last[0]), trendSign(last[2]-last[1]))
}

func classifySigns(s1, s2 int) schema.TrendLabel {
	if label, ok := trendTable[signPair{s1, s2}]; ok {
		return label
	}
	return schema.NotComputable
}

// RecentTrendInput picks the values of the most recent periods and returns them oldest first.
// periods must be sorted newest first. The second return is false when fewer than
// TrendWindow periods exist or any of the picked values is missing.
func RecentTrendInput(periods []string, lookup func(period string) *float64) ([]float64, bool) {
	if len(periods) < TrendWindow {
		return nil, false
	}
	values := make([]float64, TrendWindow)
	for i := range TrendWindow {
		v := lookup(periods[i])
		if v == nil {
			return nil, false
		}
		values[TrendWindow-1-i] = *v
	}
	return values, true
}

package core

import (
	"strings"

	"github.com/huangsam/pivotrend/core/algo"
	"github.com/huangsam/pivotrend/schema"
)

// DefaultLocalTokens identify the local institution among top-level keys.
var DefaultLocalTokens = []string{"genova", "liguria"}

// Totals accumulates per-period sums while the emitter walks the leaves.
// External sums only include leaves whose top-level key is not local.
type Totals struct {
	localTokens []string
	totals      map[string]float64
	external    map[string]float64
}

// NewTotals returns an empty tracker. Tokens are matched case-insensitively.
func NewTotals(localTokens []string) *Totals {
	t := &Totals{}
	for _, tok := range localTokens {
		if tok = strings.TrimSpace(tok); tok != "" {
			t.localTokens = append(t.localTokens, strings.ToLower(tok))
		}
	}
	t.Reset()
	return t
}

// Reset clears both accumulators.
func (t *Totals) Reset() {
	t.totals = make(map[string]float64)
	t.external = make(map[string]float64)
}

// IsLocal reports whether a top-level key contains any local token.
func (t *Totals) IsLocal(topKey string) bool {
	key := strings.ToLower(topKey)
	for _, tok := range t.localTokens {
		if strings.Contains(key, tok) {
			return true
		}
	}
	return false
}

// AddLeaf adds one leaf series to the accumulators, counting missing periods as 0.
func (t *Totals) AddLeaf(topKey string, series *OrderedMap[*float64], periods []string) {
	local := t.IsLocal(topKey)
	for _, p := range periods {
		v, _ := series.Get(p)
		val := schema.ValueOrZero(v)
		t.totals[p] += val
		if !local {
			t.external[p] += val
		}
	}
}

// Total returns the overall sum for a period.
func (t *Totals) Total(period string) float64 {
	return t.totals[period]
}

// External returns the external-subset sum for a period.
func (t *Totals) External(period string) float64 {
	return t.external[period]
}

// Summary builds the synthetic two-row block over periods, newest first.
func (t *Totals) Summary(periods []string) schema.SummaryBlock {
	block := schema.SummaryBlock{
		Totals:         make([]schema.PeriodValue, 0, len(periods)),
		ExternalTotals: make([]schema.PeriodValue, 0, len(periods)),
	}
	for _, p := range periods {
		block.Totals = append(block.Totals, schema.PeriodValue{Period: p, Value: t.totals[p]})
		block.ExternalTotals = append(block.ExternalTotals, schema.PeriodValue{Period: p, Value: t.external[p]})
	}
	block.TotalTrend = summaryTrend(periods, t.totals)
	block.ExternalTrend = summaryTrend(periods, t.external)
	return block
}

func summaryTrend(periods []string, sums map[string]float64) schema.TrendLabel {
	values, ok := algo.RecentTrendInput(periods, func(p string) *float64 {
		v := sums[p]
		return &v
	})
	if !ok {
		return schema.Incomplete
	}
	return algo.ClassifyTrend(values)
}

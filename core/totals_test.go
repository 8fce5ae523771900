package core

import (
	"testing"

	"github.com/huangsam/pivotrend/schema"
	"github.com/stretchr/testify/assert"
)

func series(pairs map[string]*float64, order ...string) *OrderedMap[*float64] {
	m := NewOrderedMap[*float64]()
	for _, k := range order {
		m.Set(k, pairs[k])
	}
	return m
}

func TestTotalsIsLocal(t *testing.T) {
	tr := NewTotals([]string{" Genova ", "", "LIGURIA"})
	assert.True(t, tr.IsLocal("Università di Genova"))
	assert.True(t, tr.IsLocal("liguria"))
	assert.False(t, tr.IsLocal("Piemonte"))
	assert.False(t, NewTotals(nil).IsLocal("Genova"))
}

func TestTotalsAddLeaf(t *testing.T) {
	periods := []string{"2023", "2022", "2021"}
	tr := NewTotals(DefaultLocalTokens)

	tr.AddLeaf("Genova", series(map[string]*float64{"2023": schema.Float(5), "2022": nil}, "2023", "2022"), periods)
	tr.AddLeaf("Torino", series(map[string]*float64{"2023": schema.Float(2), "2021": schema.Float(7)}, "2023", "2021"), periods)

	assert.Equal(t, 7.0, tr.Total("2023"))
	assert.Equal(t, 0.0, tr.Total("2022"))
	assert.Equal(t, 7.0, tr.Total("2021"))
	assert.Equal(t, 2.0, tr.External("2023"))
	assert.Equal(t, 7.0, tr.External("2021"))

	tr.Reset()
	assert.Equal(t, 0.0, tr.Total("2023"))
	assert.Equal(t, 0.0, tr.External("2021"))
}

func TestTotalsSummary(t *testing.T) {
	periods := []string{"2023", "2022", "2021"}
	tr := NewTotals(DefaultLocalTokens)
	tr.AddLeaf("Genova", series(map[string]*float64{"2023": schema.Float(10), "2022": schema.Float(20), "2021": schema.Float(15)}, "2023", "2022", "2021"), periods)
	tr.AddLeaf("Milano", series(map[string]*float64{"2023": schema.Float(3), "2022": schema.Float(2), "2021": schema.Float(1)}, "2023", "2022", "2021"), periods)

	block := tr.Summary(periods)
	assert.Equal(t, []schema.PeriodValue{{Period: "2023", Value: 13}, {Period: "2022", Value: 22}, {Period: "2021", Value: 16}}, block.Totals)
	assert.Equal(t, []schema.PeriodValue{{Period: "2023", Value: 3}, {Period: "2022", Value: 2}, {Period: "2021", Value: 1}}, block.ExternalTotals)
	assert.Equal(t, schema.OscillatingIncreasing, block.TotalTrend)
	assert.Equal(t, schema.StronglyIncreasing, block.ExternalTrend)
}

func TestTotalsSummaryTooFewPeriods(t *testing.T) {
	tr := NewTotals(nil)
	block := tr.Summary([]string{"2023", "2022"})
	assert.Len(t, block.Totals, 2)
	assert.Equal(t, schema.Incomplete, block.TotalTrend)
	assert.Equal(t, schema.Incomplete, block.ExternalTrend)
}

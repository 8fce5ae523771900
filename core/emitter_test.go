package core

import (
	"testing"

	"github.com/huangsam/pivotrend/core/agg"
	"github.com/huangsam/pivotrend/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func emitRegion(t *testing.T, subtotals []int, leafTrend bool) ([]schema.TableRow, *Totals, *Emitter) {
	t.Helper()
	records, err := agg.FlattenDataset(regionDataset())
	require.NoError(t, err)
	agg.SortRecords(records, language.Und)
	h, err := BuildHierarchy(records, 3)
	require.NoError(t, err)

	e := &Emitter{
		Periods:        agg.PeriodSet(records),
		Depth:          h.Depth,
		SubtotalDepths: subtotals,
		Records:        records,
		LeafTrend:      leafTrend,
		Missing:        schema.MissingBlank,
		Precision:      -1,
	}
	tracker := NewTotals(DefaultLocalTokens)
	return e.Emit(h.Root, tracker), tracker, e
}

func TestEmitRows(t *testing.T) {
	rows, _, _ := emitRegion(t, []int{0}, false)
	require.Len(t, rows, 6)

	kinds := make([]schema.RowKind, 0, len(rows))
	for _, r := range rows {
		kinds = append(kinds, r.Kind)
	}
	assert.Equal(t, []schema.RowKind{
		schema.DataRow, schema.DataRow, schema.SubtotalRow,
		schema.DataRow, schema.DataRow, schema.SubtotalRow,
	}, kinds)

	assert.Equal(t, []string{"Liguria", "History", "5", " ", " "}, cellTexts(rows[0]))
	assert.Equal(t, []string{"Physics", "10", "20", "15"}, cellTexts(rows[1]))
	assert.Equal(t, []string{"Total for Liguria", "15", "20", "15"}, cellTexts(rows[2]))
	assert.Equal(t, []string{"Piemonte", "Law", " ", " ", "4"}, cellTexts(rows[3]))
	assert.Equal(t, []string{"Physics", "8", " ", " "}, cellTexts(rows[4]))
	assert.Equal(t, []string{"Total for Piemonte", "8", "0", "4"}, cellTexts(rows[5]))

	top := rows[0].Cells[0]
	assert.Equal(t, schema.HeaderCell, top.Kind)
	assert.Equal(t, 3, top.RowSpan, "two leaves plus the subtotal row")
	assert.Equal(t, 0, top.Depth)
	assert.Equal(t, 1, rows[0].Cells[1].RowSpan)
	assert.Equal(t, 1, rows[0].Cells[1].Depth)

	label := rows[2].Cells[0]
	assert.Equal(t, schema.LabelCell, label.Kind)
	assert.Equal(t, 1, label.ColSpan)
	assert.Equal(t, 1, label.Depth)

	assert.Equal(t, []string{"Liguria", "History"}, rows[0].Path)
	assert.Equal(t, []string{"Liguria"}, rows[2].Path)
}

func TestEmitParityAlternatesPerTopKey(t *testing.T) {
	rows, _, _ := emitRegion(t, []int{0}, false)
	for i, want := range []int{1, 1, 1, 0, 0, 0} {
		for _, c := range rows[i].Cells {
			assert.Equal(t, want, c.Parity, "row %d", i)
		}
	}
}

func TestEmitSpanConservation(t *testing.T) {
	for _, subtotals := range [][]int{nil, {0}, {0, 1, 5}} {
		rows, _, e := emitRegion(t, subtotals, false)
		sum := 0
		for _, r := range rows {
			if r.Kind == schema.DataRow && r.Cells[0].Kind == schema.HeaderCell && r.Cells[0].Depth == 0 {
				sum += r.Cells[0].RowSpan
			}
		}
		assert.Equal(t, len(rows), sum, "subtotals %v", subtotals)
		assert.False(t, e.hasSubtotal(2), "no level below the hierarchy")
	}
}

func TestEmitLastLevelSubtotals(t *testing.T) {
	rows, _, _ := emitRegion(t, []int{0, 1}, false)
	require.Len(t, rows, 10)

	assert.Equal(t, 5, rows[0].Cells[0].RowSpan, "two leaves, two leaf subtotals and the region subtotal")
	assert.Equal(t, 2, rows[0].Cells[1].RowSpan, "leaf plus its subtotal")

	label := rows[1].Cells[0]
	assert.Equal(t, schema.LabelCell, label.Kind)
	assert.Equal(t, 0, label.ColSpan)
	assert.Equal(t, 2, label.Depth)
	assert.Equal(t, []string{"Total for History", "5", "0", "0"}, cellTexts(rows[1]))

	// sums match the program across every region
	assert.Equal(t, []string{"Total for Physics", "18", "20", "15"}, cellTexts(rows[3]))
	assert.Equal(t, []string{"Total for Liguria", "15", "20", "15"}, cellTexts(rows[4]))
	assert.Equal(t, []string{"Total for Law", "0", "0", "4"}, cellTexts(rows[6]))
	assert.Equal(t, schema.SubtotalRow, rows[9].Kind)
}

func TestEmitWithoutSubtotals(t *testing.T) {
	rows, _, _ := emitRegion(t, nil, false)
	require.Len(t, rows, 4)
	assert.Equal(t, 2, rows[0].Cells[0].RowSpan)
	for _, r := range rows {
		assert.Equal(t, schema.DataRow, r.Kind)
	}
}

func TestEmitTotalConsistency(t *testing.T) {
	rows, tracker, e := emitRegion(t, []int{0}, false)
	for _, p := range e.Periods {
		var sum float64
		for _, r := range rows {
			if r.Kind != schema.DataRow {
				continue
			}
			for _, c := range r.Cells {
				if c.Kind == schema.ValueCell && c.Period == p {
					sum += schema.ValueOrZero(c.Value)
				}
			}
		}
		assert.Equal(t, sum, tracker.Total(p), "period %s", p)
	}
	assert.Equal(t, 23.0, tracker.Total("2023/24"))
	assert.Equal(t, 8.0, tracker.External("2023/24"))
}

func TestEmitSubtotalCorrectness(t *testing.T) {
	rows, _, e := emitRegion(t, []int{0}, false)
	records, err := agg.FlattenDataset(regionDataset())
	require.NoError(t, err)

	for _, r := range rows {
		if r.Kind != schema.SubtotalRow {
			continue
		}
		key := r.Path[0]
		for _, c := range r.Cells[1:] {
			var want float64
			for _, rec := range records {
				if rec.Categories[1] == key && rec.Period() == c.Period {
					want += schema.ValueOrZero(rec.Value)
				}
			}
			require.NotNil(t, c.Value)
			assert.Equal(t, want, *c.Value, "%s %s", key, c.Period)
			assert.Equal(t, schema.TotalCell, c.Kind)
		}
	}
	assert.Len(t, e.Periods, 3)
}

func TestEmitLeafTrend(t *testing.T) {
	rows, _, _ := emitRegion(t, []int{0}, true)

	history := rows[0].Cells[len(rows[0].Cells)-1]
	assert.Equal(t, schema.TrendCell, history.Kind)
	assert.True(t, history.Suppressed, "missing periods suppress the trend")
	assert.Equal(t, schema.Incomplete, history.Trend)
	assert.Empty(t, history.Text)

	physics := rows[1].Cells[len(rows[1].Cells)-1]
	assert.Equal(t, schema.OscillatingIncreasing, physics.Trend)
	assert.Equal(t, schema.OscillatingIncreasing.Display(), physics.Text)
	assert.False(t, physics.Suppressed)

	liguriaTotal := rows[2].Cells[len(rows[2].Cells)-1]
	assert.Equal(t, schema.OscillatingIncreasing, liguriaTotal.Trend)

	piemonteTotal := rows[5].Cells[len(rows[5].Cells)-1]
	assert.Equal(t, schema.OscillatingDecreasing, piemonteTotal.Trend)
}

func TestEmitZeroPlaceholder(t *testing.T) {
	records, err := agg.FlattenDataset(regionDataset())
	require.NoError(t, err)
	agg.SortRecords(records, language.Und)
	h, err := BuildHierarchy(records, 3)
	require.NoError(t, err)

	e := &Emitter{Periods: agg.PeriodSet(records), Depth: h.Depth, Records: records, Missing: schema.MissingZero, Precision: -1}
	rows := e.Emit(h.Root, NewTotals(nil))
	assert.Equal(t, []string{"Liguria", "History", "5", "0", "0"}, cellTexts(rows[0]))
	assert.Nil(t, rows[0].Cells[3].Value, "placeholders carry no value")
}

func TestEmitLeafRoot(t *testing.T) {
	records := []schema.FlatRecord{
		{Index: 0, Categories: []string{"2023"}, Value: schema.Float(3)},
		{Index: 1, Categories: []string{"2022"}, Value: schema.Float(4)},
	}
	h, err := BuildHierarchy(records, 1)
	require.NoError(t, err)

	tracker := NewTotals(nil)
	e := &Emitter{Periods: []string{"2023", "2022"}, Depth: h.Depth, Records: records, Precision: -1}
	rows := e.Emit(h.Root, tracker)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"3", "4"}, cellTexts(rows[0]))
	assert.Equal(t, 4.0, tracker.External("2022"), "an empty top key is never local")
}

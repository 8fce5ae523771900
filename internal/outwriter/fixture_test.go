package outwriter

import (
	"github.com/huangsam/pivotrend/internal/contract"
	"github.com/huangsam/pivotrend/schema"
)

// regionTable is a two-level table: Liguria with two courses and a subtotal.
func regionTable() *schema.PivotResult {
	return &schema.PivotResult{
		CycleID: "cycle-1",
		Headers: []string{"Region", "Course"},
		Periods: []string{"2024", "2023"},
		Rows: []schema.TableRow{
			{Kind: schema.DataRow, Path: []string{"Liguria", "Physics"}, Cells: []schema.Cell{
				{Kind: schema.HeaderCell, Text: "Liguria", RowSpan: 3, Depth: 0, Parity: 1},
				{Kind: schema.HeaderCell, Text: "Physics", RowSpan: 1, Depth: 1, Parity: 1},
				{Kind: schema.ValueCell, Text: "10", Value: schema.Float(10), Period: "2024", Depth: 2, Parity: 1},
				{Kind: schema.ValueCell, Text: "20", Value: schema.Float(20), Period: "2023", Depth: 2, Parity: 1},
			}},
			{Kind: schema.DataRow, Path: []string{"Liguria", "History"}, Cells: []schema.Cell{
				{Kind: schema.HeaderCell, Text: "History", RowSpan: 1, Depth: 1, Parity: 1},
				{Kind: schema.ValueCell, Text: "5", Value: schema.Float(5), Period: "2024", Depth: 2, Parity: 1},
				{Kind: schema.ValueCell, Text: schema.BlankPlaceholder, Period: "2023", Depth: 2, Parity: 1},
			}},
			{Kind: schema.SubtotalRow, Path: []string{"Liguria"}, Cells: []schema.Cell{
				{Kind: schema.LabelCell, Text: "Total for Liguria", ColSpan: 1, Depth: 1, Parity: 1},
				{Kind: schema.TotalCell, Text: "15", Value: schema.Float(15), Period: "2024", Depth: 2, Parity: 1},
				{Kind: schema.TotalCell, Text: "20", Value: schema.Float(20), Period: "2023", Depth: 2, Parity: 1},
			}},
		},
		Summary: &schema.SummaryBlock{
			Totals:         []schema.PeriodValue{{Period: "2024", Value: 15}, {Period: "2023", Value: 20}},
			ExternalTotals: []schema.PeriodValue{{Period: "2024", Value: 0}, {Period: "2023", Value: 0}},
		},
		Settings: schema.DisplaySettings{ShowSyntheticTotal: true},
	}
}

// programTable has a single category level whose subtotal label shares the
// program column.
func programTable() *schema.PivotResult {
	return &schema.PivotResult{
		CycleID: "cycle-3",
		Headers: []string{"Program"},
		Periods: []string{"2024", "2023"},
		Rows: []schema.TableRow{
			{Kind: schema.DataRow, Path: []string{"Physics"}, Cells: []schema.Cell{
				{Kind: schema.HeaderCell, Text: "Physics", RowSpan: 2, Depth: 0, Parity: 1},
				{Kind: schema.ValueCell, Text: "10", Value: schema.Float(10), Period: "2024", Depth: 1, Parity: 1},
				{Kind: schema.ValueCell, Text: "20", Value: schema.Float(20), Period: "2023", Depth: 1, Parity: 1},
			}},
			{Kind: schema.SubtotalRow, Path: []string{"Physics"}, Cells: []schema.Cell{
				{Kind: schema.LabelCell, Text: "Total for Physics", ColSpan: 0, Depth: 1, Parity: 1},
				{Kind: schema.TotalCell, Text: "10", Value: schema.Float(10), Period: "2024", Depth: 1, Parity: 1},
				{Kind: schema.TotalCell, Text: "20", Value: schema.Float(20), Period: "2023", Depth: 1, Parity: 1},
			}},
		},
	}
}

// withTrends turns on both trend toggles and appends a trend cell to every row.
func withTrends(result *schema.PivotResult) *schema.PivotResult {
	result.Settings.ShowTrend = true
	result.Settings.ShowTrendByProgram = true
	trends := []schema.Cell{
		{Kind: schema.TrendCell, Text: schema.StronglyDecreasing.Display(), Trend: schema.StronglyDecreasing, Depth: 2, Parity: 1},
		{Kind: schema.TrendCell, Trend: schema.Incomplete, Suppressed: true, Depth: 2, Parity: 1},
		{Kind: schema.TrendCell, Text: schema.Equal.Display(), Trend: schema.Equal, Depth: 2, Parity: 1},
	}
	for i := range result.Rows {
		result.Rows[i].Cells = append(result.Rows[i].Cells, trends[i])
	}
	result.Summary.TotalTrend = schema.WeaklyIncreasing
	result.Summary.ExternalTrend = schema.Equal
	return result
}

func sampleBoxplot() *schema.BoxplotResult {
	return &schema.BoxplotResult{
		CycleID: "cycle-2",
		All: []schema.BoxPlotSummary{{
			Area: "Clarity", Min: 10, Q1: 20, Median: 30, Mean: 32.5, Q3: 40, Max: 60,
			IQR: 20, LowerBound: 0, UpperBound: 70,
			Values: []float64{10, 20, 30, 40, 60}, OutliersSup: []float64{95}, Color: "#00ff00",
		}},
		Dip: []schema.BoxPlotSummary{{
			Area: "Clarity", Min: 10, Q1: 10, Median: 10, Mean: 10, Q3: 10, Max: 10,
			LowerBound: 10, UpperBound: 10, Values: []float64{10},
		}},
		Thresholds: []schema.ThresholdLine{{Color: "#ff0000", Value: 50}},
	}
}

func testConfig(mode schema.OutputMode) *contract.Config {
	return &contract.Config{Output: mode, Precision: -1, Width: 120}
}

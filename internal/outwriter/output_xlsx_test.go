package outwriter

import (
	"bytes"
	"testing"

	"github.com/huangsam/pivotrend/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func openWorkbook(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func cellValue(t *testing.T, f *excelize.File, sheet, cell string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, cell)
	require.NoError(t, err)
	return v
}

func TestRenderPivotWorkbook(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderPivot(&buf, regionTable(), testConfig(schema.XLSXOut)))

	f := openWorkbook(t, buf.Bytes())
	assert.Equal(t, []string{pivotSheet, summarySheet}, f.GetSheetList())

	assert.Equal(t, "Region", cellValue(t, f, pivotSheet, "A1"))
	assert.Equal(t, "2023", cellValue(t, f, pivotSheet, "D1"))
	assert.Equal(t, "Liguria", cellValue(t, f, pivotSheet, "A2"))
	assert.Equal(t, "10", cellValue(t, f, pivotSheet, "C2"))
	assert.Equal(t, "History", cellValue(t, f, pivotSheet, "B3"))
	assert.Equal(t, "Total for Liguria", cellValue(t, f, pivotSheet, "B4"))

	merged, err := f.GetMergeCells(pivotSheet)
	require.NoError(t, err)
	require.Len(t, merged, 1)
	assert.Equal(t, "A2", merged[0].GetStartAxis())
	assert.Equal(t, "A4", merged[0].GetEndAxis())

	assert.Equal(t, "Total", cellValue(t, f, summarySheet, "A2"))
	assert.Equal(t, "15", cellValue(t, f, summarySheet, "B2"))
	assert.Equal(t, "External total", cellValue(t, f, summarySheet, "A3"))
}

func TestRenderPivotWorkbookLastColumnLabel(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderPivot(&buf, programTable(), testConfig(schema.XLSXOut)))

	f := openWorkbook(t, buf.Bytes())
	assert.Equal(t, "Physics", cellValue(t, f, pivotSheet, "A2"))
	assert.Equal(t, "Total for Physics", cellValue(t, f, pivotSheet, "A3"))
	assert.Equal(t, "20", cellValue(t, f, pivotSheet, "C3"))

	merged, err := f.GetMergeCells(pivotSheet)
	require.NoError(t, err)
	assert.Empty(t, merged, "the label row is not merged into the program cell")
}

func TestRenderPivotWorkbookNoSummary(t *testing.T) {
	result := withTrends(regionTable())
	result.Summary = nil

	var buf bytes.Buffer
	require.NoError(t, RenderPivot(&buf, result, testConfig(schema.XLSXOut)))

	f := openWorkbook(t, buf.Bytes())
	assert.Equal(t, []string{pivotSheet}, f.GetSheetList())
	assert.Equal(t, schema.TrendHeader, cellValue(t, f, pivotSheet, "E1"))
	assert.Equal(t, "Strongly decreasing", cellValue(t, f, pivotSheet, "E2"))
	assert.Equal(t, "", cellValue(t, f, pivotSheet, "E3"))
}

func TestRenderBoxplotWorkbook(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderBoxplot(&buf, sampleBoxplot(), testConfig(schema.XLSXOut)))

	f := openWorkbook(t, buf.Bytes())
	assert.Equal(t, []string{"all", "dip", "cds", thresholdSheet}, f.GetSheetList())
	assert.Equal(t, "Clarity", cellValue(t, f, "all", "A2"))
	assert.Equal(t, "30", cellValue(t, f, "all", "D2"))
	assert.Equal(t, "5", cellValue(t, f, "all", "J2"))
	assert.Equal(t, "95", cellValue(t, f, "all", "K2"))
	assert.Equal(t, "", cellValue(t, f, "cds", "A2"))
	assert.Equal(t, "#ff0000", cellValue(t, f, thresholdSheet, "A2"))
	assert.Equal(t, "50", cellValue(t, f, thresholdSheet, "B2"))
}

func TestRenderTrendWorkbook(t *testing.T) {
	var buf bytes.Buffer
	result := &schema.TrendResult{Values: []float64{1, 2, 3}, Label: schema.StronglyDecreasing}
	require.NoError(t, RenderTrend(&buf, result, testConfig(schema.XLSXOut)))

	f := openWorkbook(t, buf.Bytes())
	assert.Equal(t, "3", cellValue(t, f, trendSheet, "B4"))
	assert.Equal(t, "Strongly decreasing", cellValue(t, f, trendSheet, "B6"))
}

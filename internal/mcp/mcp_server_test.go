package mcp_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/huangsam/pivotrend/internal/contract"
	mcp_internal "github.com/huangsam/pivotrend/internal/mcp"
	"github.com/huangsam/pivotrend/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const regionJSON = `{
  "categories": [
    {"displayName": "Year", "values": ["2024", "2023", "2024", "2023"]},
    {"displayName": "Region", "values": ["Liguria", "Liguria", "Piemonte", "Piemonte"]},
    {"displayName": "Course", "values": ["Physics", "Physics", "Law", "Law"]}
  ],
  "values": [
    {"displayName": "Enrolled", "values": [10, 20, 4, null]}
  ]
}`

func newTestServer(t *testing.T) func(name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	baseCfg := &contract.Config{
		SubtotalDepths:     []int{0},
		Missing:            schema.MissingBlank,
		Precision:          -1,
		ShowSyntheticTotal: true,
	}
	s := mcp_internal.NewMCPServer(baseCfg, nil)

	return func(name string, args map[string]any) *mcp.CallToolResult {
		tool := s.GetTool(name)
		require.NotNil(t, tool, "Tool %s should exist", name)
		req := mcp.CallToolRequest{Params: mcp.CallToolParams{Name: name, Arguments: args}}
		res, err := tool.Handler(context.Background(), req)
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		require.NotNil(t, res)
		return res
	}
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestPivotTableTool(t *testing.T) {
	call := newTestServer(t)

	res := call("pivot_table", map[string]any{
		"dataset_json":          regionJSON,
		"show_trend_by_program": true,
		"missing":               "zero",
	})
	require.False(t, res.IsError, resultText(t, res))

	var got schema.PivotResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
	assert.Equal(t, []string{"2024", "2023"}, got.Periods)
	assert.Equal(t, []string{"Region", "Course"}, got.Headers)
	assert.Len(t, got.Rows, 4, "two leaves and two subtotals")
	assert.True(t, got.HasTrendColumn())
	require.NotNil(t, got.Summary)
	assert.InDelta(t, 14.0, got.Summary.Totals[0].Value, 1e-9)
}

func TestPivotTableToolErrors(t *testing.T) {
	call := newTestServer(t)

	t.Run("no dataset", func(t *testing.T) {
		res := call("pivot_table", map[string]any{})
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, resultText(t, res), "no dataset")
	})

	t.Run("invalid dataset json", func(t *testing.T) {
		res := call("pivot_table", map[string]any{"dataset_json": "{"})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "invalid dataset_json")
	})

	t.Run("invalid subtotal depths", func(t *testing.T) {
		res := call("pivot_table", map[string]any{"dataset_json": regionJSON, "subtotal_depths": "a"})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "invalid subtotal_depths")
	})

	t.Run("ragged dataset", func(t *testing.T) {
		ragged := `{"categories": [{"displayName": "Year", "values": ["2024"]}], "values": [{"displayName": "v", "values": [1, 2]}]}`
		res := call("pivot_table", map[string]any{"dataset_json": ragged})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "shape mismatch")
	})
}

func TestBoxplotSummaryTool(t *testing.T) {
	call := newTestServer(t)
	wide := `{
  "categories": [{"displayName": "Area", "values": ["Clarity", "Clarity", "Clarity"]}],
  "values": [
    {"displayName": "Q1", "groupName": "SI", "values": [10, 30, 50]},
    {"displayName": "Q2", "groupName": "NO", "values": [20, null, 40]}
  ]
}`
	res := call("boxplot_summary", map[string]any{"dataset_json": wide})
	require.False(t, res.IsError, resultText(t, res))

	var got schema.BoxplotResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
	require.Len(t, got.All, 1)
	assert.InDelta(t, 30.0, got.All[0].Median, 1e-9)
	require.Len(t, got.Dip, 1)
	assert.Equal(t, []float64{10, 30, 50}, got.Dip[0].Values)
	require.Len(t, got.Cds, 1)
	assert.Equal(t, []float64{20, 40}, got.Cds[0].Values)
}

func TestClassifyTrendTool(t *testing.T) {
	call := newTestServer(t)

	res := call("classify_trend", map[string]any{"values": []any{10.0, 20.0, 15.0}})
	require.False(t, res.IsError, resultText(t, res))
	var got schema.TrendResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
	assert.Equal(t, schema.OscillatingIncreasing, got.Label)

	res = call("classify_trend", map[string]any{"values": []any{1.0}})
	require.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), string(schema.Incomplete))

	res = call("classify_trend", map[string]any{})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "invalid values")
}

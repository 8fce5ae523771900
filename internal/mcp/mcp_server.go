// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/pivotrend/core"
	"github.com/huangsam/pivotrend/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the pivotrend MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, open core.SourceOpener) *server.MCPServer {
	s := server.NewMCPServer(
		"Pivotrend Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		open:    open,
	}

	// --- 1. Tool: pivot_table ---
	s.AddTool(mcp.NewTool("pivot_table",
		mcp.WithDescription("Pivot a dataset into a period-by-category table with subtotals, running totals and trend labels."),
		mcp.WithString("input", mcp.Description("Path or s3:// URI of a .json, .yaml, .csv or .parquet dataset.")),
		mcp.WithString("dataset_json", mcp.Description("Inline dataset document, used instead of input.")),
		mcp.WithString("dataset_name", mcp.Description("Name of a stored dataset when the server has a database backend.")),
		mcp.WithString("subtotal_depths", mcp.Description("Comma-separated hierarchy depths that get subtotal rows. Defaults to '0'.")),
		mcp.WithBoolean("show_trend", mcp.Description("Classify the trend of the synthetic total rows.")),
		mcp.WithBoolean("show_trend_by_program", mcp.Description("Add a trend cell to every leaf and subtotal row.")),
		mcp.WithString("missing", mcp.Description("Placeholder for missing values."), mcp.Enum("blank", "zero")),
	), h.handlePivotTable)

	// --- 2. Tool: boxplot_summary ---
	s.AddTool(mcp.NewTool("boxplot_summary",
		mcp.WithDescription("Summarize wide-format samples per area into boxplot statistics for the all, dip and cds partitions."),
		mcp.WithString("input", mcp.Description("Path or s3:// URI of a wide .csv or .json dataset.")),
		mcp.WithString("dataset_json", mcp.Description("Inline dataset document, used instead of input.")),
	), h.handleBoxplotSummary)

	// --- 3. Tool: classify_trend ---
	s.AddTool(mcp.NewTool("classify_trend",
		mcp.WithDescription("Classify the trajectory of the last three finite values of a series, oldest first."),
		mcp.WithArray("values", mcp.Description("Series values, oldest first."), mcp.Required(), mcp.WithNumberItems()),
	), h.handleClassifyTrend)

	return s
}

// StartMCPServer starts the pivotrend MCP server over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, open core.SourceOpener) error {
	s := NewMCPServer(baseCfg, open)
	return server.ServeStdio(s)
}

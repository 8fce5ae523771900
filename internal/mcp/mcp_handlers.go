package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/pivotrend/core"
	"github.com/huangsam/pivotrend/internal/contract"
	"github.com/huangsam/pivotrend/internal/dataset"
	"github.com/huangsam/pivotrend/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	open    core.SourceOpener
}

// requestFromTool maps the common dataset arguments onto a transport request.
func requestFromTool(kind schema.RequestKind, request mcp.CallToolRequest) (*schema.Request, error) {
	req := &schema.Request{
		Kind:        kind,
		Input:       request.GetString("input", ""),
		DatasetName: request.GetString("dataset_name", ""),
	}
	if raw := request.GetString("dataset_json", ""); raw != "" {
		ds, err := dataset.DecodeJSON([]byte(raw))
		if err != nil {
			return nil, err
		}
		req.Dataset = ds
	}
	return req, nil
}

func (h *toolHandler) run(ctx context.Context, req *schema.Request) (*mcp.CallToolResult, error) {
	resp, err := core.HandleRequest(ctx, h.baseCfg, req, h.open)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("kind", string(req.Kind)).Msg("mcp tool failed")
		return mcp.NewToolResultError(fmt.Sprintf("%s failed: %v", req.Kind, err)), nil
	}

	var payload any
	switch req.Kind {
	case schema.PivotRequest:
		payload = resp.Pivot
	case schema.BoxplotRequest:
		payload = resp.Boxplot
	default:
		payload = resp.Trend
	}
	jsonData, _ := json.MarshalIndent(payload, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handlePivotTable(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	req, err := requestFromTool(schema.PivotRequest, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid dataset_json: %v", err)), nil
	}

	if s := request.GetString("subtotal_depths", ""); s != "" {
		depths, err := contract.ParseIntList(s)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid subtotal_depths: %v", err)), nil
		}
		req.Options.SubtotalDepths = depths
	}
	args := request.GetArguments()
	if _, ok := args["show_trend"]; ok {
		v := request.GetBool("show_trend", false)
		req.Options.ShowTrend = &v
	}
	if _, ok := args["show_trend_by_program"]; ok {
		v := request.GetBool("show_trend_by_program", false)
		req.Options.ShowTrendByProgram = &v
	}
	req.Options.Missing = schema.MissingMode(request.GetString("missing", ""))

	return h.run(ctx, req)
}

func (h *toolHandler) handleBoxplotSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	req, err := requestFromTool(schema.BoxplotRequest, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid dataset_json: %v", err)), nil
	}
	return h.run(ctx, req)
}

func (h *toolHandler) handleClassifyTrend(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	values, err := request.RequireFloatSlice("values")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid values: %v", err)), nil
	}
	return h.run(ctx, &schema.Request{Kind: schema.TrendRequest, Values: values})
}

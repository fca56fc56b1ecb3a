package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ceaplens/ceaplens/core"
	"github.com/ceaplens/ceaplens/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	client  contract.DataClient
	store   contract.FacetStore
}

// overrideConfig clones the base config and applies per-request facet
// overrides from the tool request.
func (h *toolHandler) overrideConfig(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	err := contract.RevalidateFacets(cfg,
		request.GetString("year", ""),
		request.GetString("uf", ""),
		request.GetString("party", ""),
		request.GetString("category", ""),
		request.GetString("risk", ""),
		request.GetString("search", ""),
	)
	if err != nil {
		return nil, err
	}
	if l := request.GetInt("limit", 0); l > 0 && l <= contract.MaxResultLimit {
		cfg.ResultLimit = l
	}
	return cfg, nil
}

func (h *toolHandler) handleListDeputies(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.overrideConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid filter parameters: %v", err)), nil
	}

	ranked := core.GetDeputyResults(ctx, cfg, h.client, h.store)
	jsonData, _ := json.MarshalIndent(ranked, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.overrideConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid filter parameters: %v", err)), nil
	}

	snap := core.GetSummaryResult(ctx, cfg, h.client, h.store)
	jsonData, _ := json.MarshalIndent(snap, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetTimeline(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.overrideConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid filter parameters: %v", err)), nil
	}

	series := core.GetTimelineResult(ctx, cfg, h.client, h.store)
	jsonData, _ := json.MarshalIndent(series, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

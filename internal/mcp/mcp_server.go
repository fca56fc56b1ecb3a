// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/ceaplens/ceaplens/internal/contract"
	"github.com/ceaplens/ceaplens/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the ceaplens MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, client contract.DataClient, store contract.FacetStore) *server.MCPServer {
	s := server.NewMCPServer(
		"CEAP Expense Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		client:  client,
		store:   store,
	}

	// --- 1. Tool: list_deputies ---
	s.AddTool(mcp.NewTool("list_deputies",
		mcp.WithDescription("List deputies ranked by reimbursed spending, with scalar metrics recomputed for the given facet filters."),
		mcp.WithString("year", mcp.Description("Comma-separated list of four-digit years to include.")),
		mcp.WithString("uf", mcp.Description("Comma-separated list of two-letter state codes.")),
		mcp.WithString("party", mcp.Description("Comma-separated list of party acronyms.")),
		mcp.WithString("category", mcp.Description("Comma-separated list of expense category names.")),
		mcp.WithString("risk", mcp.Description("Comma-separated list of risk tiers."), mcp.Enum(schema.RiskLabels()...)),
		mcp.WithString("search", mcp.Description("Case-insensitive substring match on deputy name or party.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleListDeputies)

	// --- 2. Tool: get_summary ---
	s.AddTool(mcp.NewTool("get_summary",
		mcp.WithDescription("Get the aggregation snapshot (grand totals plus per-month, per-category, per-party and per-state rollups) for the given facet filters."),
		mcp.WithString("year", mcp.Description("Comma-separated list of four-digit years to include.")),
		mcp.WithString("uf", mcp.Description("Comma-separated list of two-letter state codes.")),
		mcp.WithString("party", mcp.Description("Comma-separated list of party acronyms.")),
		mcp.WithString("category", mcp.Description("Comma-separated list of expense category names.")),
		mcp.WithString("risk", mcp.Description("Comma-separated list of risk tiers."), mcp.Enum(schema.RiskLabels()...)),
		mcp.WithString("search", mcp.Description("Case-insensitive substring match on deputy name or party.")),
	), h.handleGetSummary)

	// --- 3. Tool: get_timeline ---
	s.AddTool(mcp.NewTool("get_timeline",
		mcp.WithDescription("Get the monthly spending series enriched with distribution statistics, ranks and anomaly classification for the given facet filters."),
		mcp.WithString("year", mcp.Description("Comma-separated list of four-digit years to include.")),
		mcp.WithString("uf", mcp.Description("Comma-separated list of two-letter state codes.")),
		mcp.WithString("party", mcp.Description("Comma-separated list of party acronyms.")),
		mcp.WithString("category", mcp.Description("Comma-separated list of expense category names.")),
		mcp.WithString("risk", mcp.Description("Comma-separated list of risk tiers."), mcp.Enum(schema.RiskLabels()...)),
		mcp.WithString("search", mcp.Description("Case-insensitive substring match on deputy name or party.")),
	), h.handleGetTimeline)

	return s
}

// StartMCPServer starts the ceaplens MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, client contract.DataClient, store contract.FacetStore) error {
	s := NewMCPServer(baseCfg, client, store)
	return server.ServeStdio(s)
}

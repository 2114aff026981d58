// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/assiskamu/formula-menang/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Formula Menang MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, store contract.OverridesStore) *server.MCPServer {
	s := server.NewMCPServer(
		"Formula Menang Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		store:   store,
	}

	// --- 1. Tool: get_seat_metrics ---
	s.AddTool(mcp.NewTool("get_seat_metrics",
		mcp.WithDescription("Compute campaign KPIs for every seat: safe targets, gaps, swing requirements, tiers and recommended actions."),
		mcp.WithString("data_dir", mcp.Description("Path to the data directory (defaults to the configured one).")),
		mcp.WithString("party", mcp.Description("Party of interest. Defaults to the configured party.")),
		mcp.WithString("scenario", mcp.Description("Turnout scenario (low, base, high). Defaults to 'base'."), mcp.Enum("low", "base", "high")),
		mcp.WithString("grain", mcp.Description("Restrict results to one seat grain."), mcp.Enum("parlimen", "dun")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleGetSeatMetrics)

	// --- 2. Tool: get_baseline_validation ---
	s.AddTool(mcp.NewTool("get_baseline_validation",
		mcp.WithDescription("Validate the winners table: row completeness, duplicate DUN codes and per-party win counts."),
		mcp.WithString("data_dir", mcp.Description("Path to the data directory.")),
		mcp.WithString("party", mcp.Description("Party of interest.")),
	), h.handleGetBaselineValidation)

	// --- 3. Tool: get_seat_detail ---
	s.AddTool(mcp.NewTool("get_seat_detail",
		mcp.WithDescription("Fetch the full metric row for a single seat, including plain-language action notes."),
		mcp.WithString("seat_id", mcp.Description("The seat identifier (parlimen or DUN code)."), mcp.Required()),
		mcp.WithString("data_dir", mcp.Description("Path to the data directory.")),
		mcp.WithString("party", mcp.Description("Party of interest.")),
		mcp.WithString("scenario", mcp.Description("Turnout scenario (low, base, high)."), mcp.Enum("low", "base", "high")),
	), h.handleGetSeatDetail)

	return s
}

// StartMCPServer starts the Formula Menang MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, store contract.OverridesStore) error {
	s := NewMCPServer(baseCfg, store)
	return server.ServeStdio(s)
}

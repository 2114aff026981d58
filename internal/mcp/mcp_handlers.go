package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/assiskamu/formula-menang/core"
	"github.com/assiskamu/formula-menang/internal/contract"
	"github.com/assiskamu/formula-menang/internal/loader"
	"github.com/assiskamu/formula-menang/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	store   contract.OverridesStore
}

// runAnalysis loads the dataset and stored overrides, then runs one
// full recompute pass.
func (h *toolHandler) runAnalysis(cfg *contract.Config) (*schema.AnalysisResult, error) {
	tables, err := loader.LoadTables(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	overrides, err := h.store.Load()
	if err != nil {
		return nil, err
	}

	return core.RunAnalysis(&core.AnalysisInput{
		ParlimenRows:  tables.ParlimenRows,
		DunRows:       tables.DunRows,
		WinnersRows:   tables.WinnersRows,
		DetailRows:    tables.DetailRows,
		CandidateRows: tables.CandidateRows,
		ProgressRows:  tables.ProgressRows,
		Overrides:     overrides,
		Assumptions:   tables.Assumptions,
		Thresholds:    tables.Thresholds,
		Scenario:      cfg.Scenario,
		Party:         cfg.Party,
		SourceFile:    loader.WinnersFile,
	}), nil
}

func (h *toolHandler) handleGetSeatMetrics(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if d := request.GetString("data_dir", ""); d != "" {
		cfg.DataDir = d
	}
	if p := request.GetString("party", ""); p != "" {
		cfg.Party = p
	}
	if s := request.GetString("scenario", ""); s != "" {
		cfg.Scenario = s
	}

	grain := schema.Grain(request.GetString("grain", ""))
	if grain != "" {
		if _, ok := schema.ValidGrains[grain]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid grain '%s': must be parlimen or dun", grain)), nil
		}
	}

	result, err := h.runAnalysis(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	metrics := result.Metrics
	switch grain {
	case schema.ParlimenGrain:
		metrics = result.ParlimenMetrics()
	case schema.DunGrain:
		metrics = result.DunMetrics()
	}
	if l := request.GetInt("limit", 0); l > 0 && l < len(metrics) {
		metrics = metrics[:l]
	}

	jsonData, _ := json.MarshalIndent(metrics, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetBaselineValidation(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if d := request.GetString("data_dir", ""); d != "" {
		cfg.DataDir = d
	}
	if p := request.GetString("party", ""); p != "" {
		cfg.Party = p
	}

	result, err := h.runAnalysis(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result.Validation, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetSeatDetail(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	seatID := request.GetString("seat_id", "")
	if seatID == "" {
		return mcp.NewToolResultError("seat_id is required"), nil
	}

	cfg := h.baseCfg.Clone()
	if d := request.GetString("data_dir", ""); d != "" {
		cfg.DataDir = d
	}
	if p := request.GetString("party", ""); p != "" {
		cfg.Party = p
	}
	if s := request.GetString("scenario", ""); s != "" {
		cfg.Scenario = s
	}

	result, err := h.runAnalysis(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	for i := range result.Metrics {
		if result.Metrics[i].Seat.SeatID != seatID {
			continue
		}
		detail := struct {
			schema.SeatMetrics
			Notes []string `json:"notes"`
		}{
			SeatMetrics: result.Metrics[i],
			Notes:       core.ActionNotes(&result.Metrics[i]),
		}
		jsonData, _ := json.MarshalIndent(detail, "", "  ")
		return mcp.NewToolResultText(string(jsonData)), nil
	}

	return mcp.NewToolResultError(fmt.Sprintf("no seat with id '%s'", seatID)), nil
}

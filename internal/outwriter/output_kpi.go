package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/assiskamu/formula-menang/internal/contract"
	"github.com/assiskamu/formula-menang/schema"
)

// kpiDefinition describes one computed column of the metrics engine.
type kpiDefinition struct {
	Name    string   `json:"name"`
	Purpose string   `json:"purpose"`
	Inputs  []string `json:"inputs"`
	Formula string   `json:"formula"`
}

// kpiRenderModel is the full static definitions display.
type kpiRenderModel struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Kpis        []kpiDefinition `json:"kpis"`
	TierNote    string          `json:"tier_note"`
}

// PrintKpiDefinitions displays the formal definitions of all seat KPIs.
// This is a static display that does not require loading the dataset.
func PrintKpiDefinitions(cfg *contract.Config) error {
	// Build the complete render model with all processed data
	renderModel := buildKpiRenderModel()

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, renderModel)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			writer := csv.NewWriter(w)
			defer writer.Flush()
			return writeCSVKpis(writer, renderModel)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return printKpiText(w, renderModel)
		}, "Wrote text")
	}
}

// printKpiText displays KPI definitions in human-readable text format.
func printKpiText(w io.Writer, renderModel *kpiRenderModel) error {
	if _, err := fmt.Fprintf(w, "🎯 %s\n", renderModel.Title); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\n", strings.Repeat("=", len(renderModel.Title)+3)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "\n%s\n\n", renderModel.Description); err != nil {
		return err
	}

	for _, kpi := range renderModel.Kpis {
		if _, err := fmt.Fprintf(w, "%s: %s\n", strings.ToUpper(kpi.Name), kpi.Purpose); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "   Inputs: %s\n", strings.Join(kpi.Inputs, ", ")); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "   Formula: %s\n\n", kpi.Formula); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "🪜 Tiers\n%s\n", renderModel.TierNote); err != nil {
		return err
	}
	return nil
}

// writeCSVKpis writes the KPI definitions in CSV format.
func writeCSVKpis(w *csv.Writer, renderModel *kpiRenderModel) error {
	// Write header
	header := []string{"KPI", "Purpose", "Inputs", "Formula"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write each definition
	for _, kpi := range renderModel.Kpis {
		record := []string{
			kpi.Name,
			kpi.Purpose,
			strings.Join(kpi.Inputs, "|"),
			kpi.Formula,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	return nil
}

// buildKpiRenderModel constructs the complete render model with all definitions.
func buildKpiRenderModel() *kpiRenderModel {
	kpis := []kpiDefinition{
		{
			Name:    "valid_votes",
			Purpose: "Ballots expected to count under the chosen turnout scenario",
			Inputs:  []string{"RegisteredVoters", "Turnout", "SpoiledRate"},
			Formula: "registered_voters * turnout * (1 - spoiled_rate)",
		},
		{
			Name:    "minimum_to_win",
			Purpose: "Smallest vote count that beats the strongest opponent's prior result",
			Inputs:  []string{"LastOpponentTopVotes"},
			Formula: "last_opponent_top_votes + 1",
		},
		{
			Name:    "safe_target",
			Purpose: "Minimum to win plus a safety buffer",
			Inputs:  []string{"MinimumToWin", "BufferVotes", "BufferRate"},
			Formula: "minimum_to_win + buffer_votes",
		},
		{
			Name:    "gap_to_safe_target",
			Purpose: "Votes still missing toward the safe target; negative when already met",
			Inputs:  []string{"SafeTarget", "TotalVote"},
			Formula: "safe_target - total_vote",
		},
		{
			Name:    "needed_gotv_to_close_gap",
			Purpose: "Turnout operation size once base and persuasion are banked",
			Inputs:  []string{"Gap", "BaseVotes", "PersuasionVotes"},
			Formula: "max(0, gap - (base_votes + persuasion_votes))",
		},
		{
			Name:    "swing_minimum",
			Purpose: "Voters who must switch sides to flip the prior majority",
			Inputs:  []string{"LastMajority"},
			Formula: "floor(last_majority / 2) + 1",
		},
		{
			Name:    "swing_percent",
			Purpose: "Swing minimum as a share of valid votes; 0 when valid votes is 0",
			Inputs:  []string{"SwingMinimum", "ValidVotes"},
			Formula: "swing_minimum / valid_votes",
		},
		{
			Name:    "margin_to_win",
			Purpose: "Attack side: votes short of the current winner",
			Inputs:  []string{"WinnerVotes", "PartyVotes"},
			Formula: "max(0, winner_votes - party_votes + 1)",
		},
		{
			Name:    "buffer_to_lose",
			Purpose: "Defend side: votes that can be lost before the seat flips",
			Inputs:  []string{"PartyVotes", "RunnerUpVotes"},
			Formula: "max(0, party_votes - runner_up_votes - 1)",
		},
	}

	return &kpiRenderModel{
		Title:       "Seat KPI Definitions",
		Description: "All KPIs recompute from the seat baseline, weekly progress and the active assumptions",
		Kpis:        kpis,
		TierNote:    "Attack tiers (near/medium/far) and defend tiers (high/medium/low risk) bucket by margin against the configured vote and percent cuts; a seat qualifies when either cut is met",
	}
}

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/assiskamu/formula-menang/core"
	"github.com/assiskamu/formula-menang/internal/contract"
	"github.com/assiskamu/formula-menang/internal/loader"
	"github.com/assiskamu/formula-menang/internal/outwriter"
	"github.com/assiskamu/formula-menang/schema"
	"github.com/spf13/cobra"
)

// runFullAnalysis loads the dataset and stored overrides, then runs one
// full recompute pass with the validated config.
func runFullAnalysis() (*schema.AnalysisResult, error) {
	tables, err := loader.LoadTables(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	overrides, err := store.Load()
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

// seatsCmd computes and ranks seat metrics for the configured grain.
var seatsCmd = &cobra.Command{
	Use:   "seats",
	Short: "Show per-seat win targets, gaps, tiers and recommended actions.",
	Long: `Compute the full metric sheet for every seat and display the configured grain.

Joins the constituency rolls, past winners, enrichment details, candidate rows,
stored local overrides and the latest weekly canvassing progress, then derives:
- Safe targets and the remaining gap for each seat
- GOTV volume still needed once base and persuasion are banked
- Swing requirements against the prior majority
- Attack/defend tiers and a recommended action per seat

Data-quality flags are attached per seat; a flagged seat is always assigned
the review_data action first.

Examples:
  # Rank DUN seats under the base turnout scenario
  formula seats

  # Parent-level view under the low turnout scenario
  formula seats --grain parlimen --scenario low

  # Export the full sheet for analytics
  formula seats --output parquet --output-file seats.parquet`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		start := time.Now()
		result, err := runFullAnalysis()
		if err != nil {
			contract.LogFatal("Cannot run seat analysis", err)
		}

		for _, warning := range result.Warnings {
			fmt.Fprintf(os.Stderr, "⚠️  %s\n", warning)
		}

		var metrics []schema.SeatMetrics
		switch cfg.Grain {
		case schema.ParlimenGrain:
			metrics = result.ParlimenMetrics()
		default:
			metrics = result.DunMetrics()
		}
		if len(metrics) > cfg.ResultLimit {
			metrics = metrics[:cfg.ResultLimit]
		}

		if err := outwriter.WriteSeatResults(metrics, cfg, time.Since(start)); err != nil {
			contract.LogFatal("Cannot write seat results", err)
		}
	},
}

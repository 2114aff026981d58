package core

import (
	"fmt"

	"github.com/assiskamu/formula-menang/schema"
)

// AnalysisInput carries everything one full recompute pass needs. The
// configuration travels as an explicit parameter; nothing in this
// package reads ambient state.
type AnalysisInput struct {
	ParlimenRows  []schema.ParlimenRow
	DunRows       []schema.DunRow
	WinnersRows   []schema.WinnersRow
	DetailRows    []schema.SeatDetailsRow
	CandidateRows []schema.CandidateRow
	ProgressRows  []schema.ProgressRow
	Overrides     *schema.LocalOverrides
	Assumptions   schema.Assumptions
	Thresholds    schema.ThresholdConfig
	Scenario      string
	Party         string
	SourceFile    string
}

// RunAnalysis executes the full pipeline: validate the winners table,
// build seats, select latest progress and compute metrics for every
// seat. DUN metrics are computed first so each parlimen metric can roll
// up its children's progress and inherit their data-quality flags; the
// returned slice still lists parlimen rows first.
func RunAnalysis(input *AnalysisInput) *schema.AnalysisResult {
	validation := ValidateWinners(input.WinnersRows, input.SourceFile, input.Party)
	built := BuildSeats(
		input.ParlimenRows, input.DunRows, input.WinnersRows,
		input.DetailRows, input.CandidateRows, input.Overrides, input.Party)
	latest := GetLatestProgress(input.ProgressRows)

	dunMetrics := make([]schema.SeatMetrics, 0, len(built.Seats))
	byParlimen := make(map[string][]schema.SeatMetrics)
	for _, seat := range built.Seats {
		if seat.Grain != schema.DunGrain {
			continue
		}
		var progress *schema.ProgressRow
		if row, ok := latest[seat.SeatID]; ok {
			progress = &row
		}
		metric := ComputeSeatMetrics(seat, progress, input.Assumptions, input.Scenario, input.Thresholds)
		dunMetrics = append(dunMetrics, metric)
		byParlimen[seat.ParlimenCode] = append(byParlimen[seat.ParlimenCode], metric)
	}

	var parlimenMetrics []schema.SeatMetrics
	for _, seat := range built.Seats {
		if seat.Grain != schema.ParlimenGrain {
			continue
		}
		children := byParlimen[seat.ParlimenCode]
		progress := rollupProgress(seat.SeatID, children)
		metric := ComputeSeatMetrics(seat, &progress, input.Assumptions, input.Scenario, input.Thresholds)
		metric.Flags = unionFlags(metric.Flags, children)
		parlimenMetrics = append(parlimenMetrics, metric)
	}

	warnings := append([]string{}, validation.Warnings...)
	if len(built.DuplicateDetails) > 0 {
		warnings = append(warnings, fmt.Sprintf(
			"duplicate DUN codes in seat detail table: %v", built.DuplicateDetails))
	}

	return &schema.AnalysisResult{
		Metrics:           append(parlimenMetrics, dunMetrics...),
		Validation:        validation,
		Warnings:          warnings,
		DetailCoverage:    built.DetailCoverage,
		CandidateCoverage: built.CandidateCoverage,
	}
}

// rollupProgress sums child funnel figures into a synthetic parent
// snapshot. The week-start comes from the first child and the
// conversion rate is left at zero since averaging rates across seats of
// different sizes has no meaning.
func rollupProgress(seatID string, children []schema.SeatMetrics) schema.ProgressRow {
	progress := schema.ProgressRow{SeatID: seatID}
	if len(children) > 0 {
		progress.WeekStart = children[0].Progress.WeekStart
	}
	for _, child := range children {
		progress.BaseVotes += child.Progress.BaseVotes
		progress.PersuasionVotes += child.Progress.PersuasionVotes
		progress.GotvVotes += child.Progress.GotvVotes
		progress.Persuadables += child.Progress.Persuadables
	}
	return progress
}

// unionFlags merges a parent's own flags with all child flags, keeping
// first-seen order and dropping duplicates.
func unionFlags(own []string, children []schema.SeatMetrics) []string {
	seen := make(map[string]bool, len(own))
	union := make([]string, 0, len(own))
	for _, flag := range own {
		if !seen[flag] {
			seen[flag] = true
			union = append(union, flag)
		}
	}
	for _, child := range children {
		for _, flag := range child.Flags {
			if !seen[flag] {
				seen[flag] = true
				union = append(union, flag)
			}
		}
	}
	return union
}

// Package loader reads the source tables from the data directory and
// hands typed rows to the core pipeline. Individual dirty rows are
// tolerated by the lenient parsers; a missing required file is the one
// load-level failure that surfaces as an error.
package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/assiskamu/formula-menang/core"
	"github.com/assiskamu/formula-menang/schema"
)

// Source table file names.
const (
	ParlimenFile        = "parlimen_sabah.csv"
	DunFile             = "dun_sabah.csv"
	WinnersFile         = "prn_sabah_2025_winners.csv"
	DetailsFile         = "seat_details_enriched_with_candidates.csv"
	DetailsFallbackFile = "seat_details_enriched_v3.csv"
	ProgressFile        = "progress_weekly.csv"
	AssumptionsFile     = "assumptions.json"
	ThresholdsFile      = "thresholds.json"
)

// Tables holds every parsed source table for one analysis pass.
type Tables struct {
	ParlimenRows  []schema.ParlimenRow
	DunRows       []schema.DunRow
	WinnersRows   []schema.WinnersRow
	DetailRows    []schema.SeatDetailsRow
	CandidateRows []schema.CandidateRow
	ProgressRows  []schema.ProgressRow
	Assumptions   schema.Assumptions
	Thresholds    schema.ThresholdConfig
}

// LoadTables reads all source tables from dataDir. Geography, winners
// and progress are required; enrichment details, candidates and the
// threshold file are optional and fall back to empty sets or defaults.
func LoadTables(dataDir string) (*Tables, error) {
	tables := &Tables{}

	parlimenRecords, err := readDelimited(dataDir, ParlimenFile)
	if err != nil {
		return nil, err
	}
	for _, record := range parlimenRecords {
		tables.ParlimenRows = append(tables.ParlimenRows, schema.ParlimenRow{
			ParlimenCode:     record["parlimen_code"],
			ParlimenName:     record["parlimen_name"],
			RegisteredVoters: core.ToInt(record["jumlah_pemilih"]),
		})
	}

	dunRecords, err := readDelimited(dataDir, DunFile)
	if err != nil {
		return nil, err
	}
	for _, record := range dunRecords {
		tables.DunRows = append(tables.DunRows, schema.DunRow{
			ParlimenCode: record["parlimen_code"],
			ParlimenName: record["parlimen_name"],
			DunCode:      record["dun_code"],
			DunName:      record["dun_name"],
		})
	}

	winnersRecords, err := readDelimited(dataDir, WinnersFile)
	if err != nil {
		return nil, err
	}
	for _, record := range winnersRecords {
		tables.WinnersRows = append(tables.WinnersRows, schema.WinnersRow{
			DunCode:     record["dun_code"],
			DunName:     record["dun_name"],
			WinnerName:  record["winner_name"],
			WinnerParty: record["winner_party"],
			WinnerVotes: core.ToInt(record["winner_votes"]),
		})
	}

	detailRecords := readOptionalDelimited(dataDir, DetailsFile, DetailsFallbackFile)
	for _, record := range detailRecords {
		tables.DetailRows = append(tables.DetailRows, schema.SeatDetailsRow{
			DunCode:          record["dun_code"],
			DunName:          record["dun_name"],
			RegisteredVoters: core.ToNumber(record["registered_voters"]),
			TotalVotesCast:   core.ToNumber(record["total_votes_cast"]),
			TurnoutPct:       core.ToNumber(record["turnout_pct"]),
			MajorityVotes:    core.ToNumber(record["majority_votes"]),
			Source:           record["source"],
		})
	}

	// Candidate rows ride on the same enriched file; rows without any
	// candidate field are detail-only and skipped here.
	for _, record := range detailRecords {
		if record["candidate_name"] == "" && record["party"] == "" && record["votes"] == "" {
			continue
		}
		tables.CandidateRows = append(tables.CandidateRows, schema.CandidateRow{
			DunCode:       record["dun_code"],
			DunName:       record["dun_name"],
			CandidateName: record["candidate_name"],
			Party:         record["party"],
			Votes:         core.ToInt(record["votes"]),
			VoteSharePct:  core.ToNumber(record["vote_share_pct"]),
		})
	}

	progressRecords, err := readDelimited(dataDir, ProgressFile)
	if err != nil {
		return nil, err
	}
	for _, record := range progressRecords {
		tables.ProgressRows = append(tables.ProgressRows, schema.ProgressRow{
			WeekStart:       record["week_start"],
			SeatID:          record["seat_id"],
			BaseVotes:       core.ToInt(record["base_votes"]),
			PersuasionVotes: core.ToInt(record["persuasion_votes"]),
			GotvVotes:       core.ToInt(record["gotv_votes"]),
			Persuadables:    core.ToInt(record["persuadables"]),
			ConversionRate:  core.ToNumber(record["conversion_rate"]),
		})
	}

	tables.Assumptions, err = loadAssumptions(dataDir)
	if err != nil {
		return nil, err
	}
	tables.Thresholds = loadThresholds(dataDir)

	return tables, nil
}

func loadAssumptions(dataDir string) (schema.Assumptions, error) {
	raw, err := os.ReadFile(filepath.Join(dataDir, AssumptionsFile))
	if err != nil {
		return schema.Assumptions{}, fmt.Errorf("cannot read %s: %w", AssumptionsFile, err)
	}
	var assumptions schema.Assumptions
	if err := json.Unmarshal(raw, &assumptions); err != nil {
		return schema.Assumptions{}, fmt.Errorf("cannot parse %s: %w", AssumptionsFile, err)
	}
	return assumptions, nil
}

// loadThresholds falls back to the immutable defaults when the file is
// missing or corrupt, since thresholds are a tunable, not a dataset.
func loadThresholds(dataDir string) schema.ThresholdConfig {
	raw, err := os.ReadFile(filepath.Join(dataDir, ThresholdsFile))
	if err != nil {
		return schema.DefaultThresholds()
	}
	var thresholds schema.ThresholdConfig
	if err := json.Unmarshal(raw, &thresholds); err != nil {
		return schema.DefaultThresholds()
	}
	return thresholds
}

func readDelimited(dataDir, name string) ([]map[string]string, error) {
	raw, err := os.ReadFile(filepath.Join(dataDir, name))
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", name, err)
	}
	return core.ParseDelimited(string(raw)), nil
}

// readOptionalDelimited tries the primary file first and then the
// fallback. Absent enrichment is a normal state, not an error.
func readOptionalDelimited(dataDir, primary, fallback string) []map[string]string {
	for _, name := range []string{primary, fallback} {
		raw, err := os.ReadFile(filepath.Join(dataDir, name))
		if err == nil {
			return core.ParseDelimited(string(raw))
		}
	}
	return nil
}

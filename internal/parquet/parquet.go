// Package parquet provides data structures and functions for exporting seat
// metrics to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"strings"

	"github.com/assiskamu/formula-menang/schema"
	"github.com/parquet-go/parquet-go"
)

// SeatMetricsRecord represents one seat metric row in a columnar export.
// One record per seat per recompute; the export is a snapshot, not a log.
type SeatMetricsRecord struct {
	// SeatID is the stable identifier of the seat (parlimen or DUN code)
	SeatID string `parquet:"seat_id,snappy"`

	// SeatName is the display name of the seat
	SeatName string `parquet:"seat_name,snappy"`

	// Grain is "parlimen" for rolled-up parents and "dun" for children
	Grain string `parquet:"grain,snappy"`

	// ParlimenCode is the parent constituency code
	ParlimenCode string `parquet:"parlimen_code,snappy"`

	// DunCode is the child constituency code (nullable for parlimen rows)
	DunCode *string `parquet:"dun_code,optional,snappy"`

	// WinnerParty is the party holding the seat
	WinnerParty string `parquet:"winner_party,snappy"`

	// MainOpponentParty is the strongest competing party
	MainOpponentParty string `parquet:"main_opponent_party,snappy"`

	// RegisteredVoters is the seat's voter roll
	RegisteredVoters float64 `parquet:"registered_voters,snappy"`

	// VotersEstimated marks rolls derived from the parent rather than data
	VotersEstimated bool `parquet:"voters_estimated,snappy"`

	// Turnout is the scenario turnout rate applied
	Turnout float64 `parquet:"turnout,snappy"`

	// ValidVotes is the expected countable ballots
	ValidVotes float64 `parquet:"valid_votes,snappy"`

	// BufferVotes is the safety margin added on top of minimum to win
	BufferVotes int32 `parquet:"buffer_votes,snappy"`

	// MinimumToWin is last opponent top votes plus one
	MinimumToWin int32 `parquet:"minimum_to_win,snappy"`

	// SafeTarget is minimum to win plus the buffer
	SafeTarget int32 `parquet:"safe_target,snappy"`

	// TotalVote is the projected vote from the latest weekly progress
	TotalVote int32 `parquet:"total_vote,snappy"`

	// GapToSafeTarget is negative once the target is already met
	GapToSafeTarget int32 `parquet:"gap_to_safe_target,snappy"`

	// NeededGotv is the turnout operation size still required
	NeededGotv int32 `parquet:"needed_gotv,snappy"`

	// SwingMinimum is the voters who must switch to flip the prior majority
	SwingMinimum int32 `parquet:"swing_minimum,snappy"`

	// SwingPercent is the swing minimum as a share of valid votes
	SwingPercent float64 `parquet:"swing_percent,snappy"`

	// MarginToWin applies on the attack side
	MarginToWin int32 `parquet:"margin_to_win,snappy"`

	// BufferToLose applies on the defend side
	BufferToLose int32 `parquet:"buffer_to_lose,snappy"`

	// MajorityVotes is the current majority when defending
	MajorityVotes int32 `parquet:"majority_votes,snappy"`

	// WeekStart is the ISO week of the progress row used (nullable)
	WeekStart *string `parquet:"week_start,optional,snappy"`

	// Tier is the attack or defend classification bucket
	Tier string `parquet:"tier,snappy"`

	// Action is the recommended tactical action
	Action string `parquet:"action,snappy"`

	// Flags carries the pipe-joined data-quality flags (nullable)
	Flags *string `parquet:"flags,optional,snappy"`
}

// WriteSeatMetricsParquet writes a slice of SeatMetricsRecord structs to a Parquet file.
func WriteSeatMetricsParquet(data []SeatMetricsRecord, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the SeatMetricsRecord struct tags
	writer := parquet.NewGenericWriter[SeatMetricsRecord](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	// The Write method accepts a variadic slice
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertSeatMetrics converts schema.SeatMetrics to SeatMetricsRecord for Parquet export.
func ConvertSeatMetrics(metrics []schema.SeatMetrics) []SeatMetricsRecord {
	result := make([]SeatMetricsRecord, len(metrics))
	for i, m := range metrics {
		rec := SeatMetricsRecord{
			SeatID:            m.Seat.SeatID,
			SeatName:          m.Seat.SeatName,
			Grain:             string(m.Seat.Grain),
			ParlimenCode:      m.Seat.ParlimenCode,
			WinnerParty:       m.Seat.WinnerParty,
			MainOpponentParty: m.MainOpponentParty,
			RegisteredVoters:  m.Seat.RegisteredVoters,
			VotersEstimated:   m.Seat.RegisteredVotersEstimated,
			Turnout:           m.Turnout,
			ValidVotes:        m.ValidVotes,
			BufferVotes:       int32(m.BufferVotes),
			MinimumToWin:      int32(m.MinimumToWin),
			SafeTarget:        int32(m.SafeTarget),
			TotalVote:         int32(m.TotalVote),
			GapToSafeTarget:   int32(m.GapToSafeTarget),
			NeededGotv:        int32(m.NeededGotv),
			SwingMinimum:      int32(m.SwingMinimum),
			SwingPercent:      m.SwingPercent,
			MarginToWin:       int32(m.MarginToWin),
			BufferToLose:      int32(m.BufferToLose),
			MajorityVotes:     int32(m.MajorityVotes),
			Tier:              string(m.Tier),
			Action:            string(m.Action),
		}
		if m.Seat.DunCode != "" {
			dunCode := m.Seat.DunCode
			rec.DunCode = &dunCode
		}
		if m.Progress.WeekStart != "" {
			weekStart := m.Progress.WeekStart
			rec.WeekStart = &weekStart
		}
		if len(m.Flags) > 0 {
			flags := strings.Join(m.Flags, "|")
			rec.Flags = &flags
		}
		result[i] = rec
	}
	return result
}

package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/assiskamu/formula-menang/internal/contract"
	"github.com/assiskamu/formula-menang/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func metricsFixture() []schema.SeatMetrics {
	leadRank := 1
	trailRank := 2
	return []schema.SeatMetrics{
		{
			Seat: schema.Seat{
				SeatID:           "N.01",
				SeatName:         "N.01 Banggi",
				Grain:            schema.DunGrain,
				ParlimenCode:     "P.167",
				DunCode:          "N.01",
				WinnerParty:      "BN",
				RegisteredVoters: 10000,
				PartyRank:        &leadRank,
			},
			Progress:          schema.ProgressRow{WeekStart: "2025-10-06", SeatID: "N.01"},
			Turnout:           0.6,
			ValidVotes:        5880,
			BufferVotes:       176,
			MinimumToWin:      4001,
			SafeTarget:        4177,
			TotalVote:         4700,
			GapToSafeTarget:   -523,
			SwingMinimum:      601,
			SwingPercent:      0.1022,
			BufferToLose:      299,
			MajorityVotes:     300,
			MainOpponentParty: "WARISAN",
			Tier:              schema.TierLowRisk,
			Action:            schema.ActionMaintain,
		},
		{
			Seat: schema.Seat{
				SeatID:           "N.02",
				SeatName:         "N.02 Bengkoka",
				Grain:            schema.DunGrain,
				ParlimenCode:     "P.167",
				DunCode:          "N.02",
				WinnerParty:      "WARISAN",
				RegisteredVoters: 8000,
				PartyRank:        &trailRank,
			},
			Turnout:           0.6,
			ValidVotes:        4704,
			SafeTarget:        3500,
			TotalVote:         2100,
			GapToSafeTarget:   1400,
			NeededGotv:        900,
			MarginToWin:       201,
			MainOpponentParty: "WARISAN",
			Tier:              schema.TierMedium,
			Action:            schema.ActionReviewData,
			Flags:             []string{schema.FlagVotersEstimated},
		},
	}
}

func TestWriteSeatTable(t *testing.T) {
	cfg := &contract.Config{
		Output:    schema.TextOut,
		Precision: 1,
		Party:     "BN",
		Scenario:  "base",
		UseColors: false,
		Width:     160,
	}

	var buf bytes.Buffer
	fmtFloat, intFmt := createFormatters(cfg.Precision)
	err := writeSeatTable(&buf, metricsFixture(), cfg, fmtFloat, intFmt, 100*time.Millisecond)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "N.01 Banggi")
	assert.Contains(t, output, "N.02 Bengkoka")
	assert.Contains(t, output, "Low Risk")
	assert.Contains(t, output, "Medium")
	assert.Contains(t, output, "review_data")
	assert.Contains(t, output, "4177")
	assert.Contains(t, output, "-523")
	assert.Contains(t, output, "Showing 2 seats (1 defend, 1 attack, 1 flagged)")
	assert.Contains(t, output, "Analysis completed in 100ms. Party: BN, scenario: base")
}

func TestWriteSeatTableEmpty(t *testing.T) {
	cfg := &contract.Config{
		Output:    schema.TextOut,
		Precision: 1,
		Party:     "BN",
		Scenario:  "base",
		Width:     120,
	}

	var buf bytes.Buffer
	fmtFloat, intFmt := createFormatters(cfg.Precision)
	err := writeSeatTable(&buf, nil, cfg, fmtFloat, intFmt, 5*time.Millisecond)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "Showing 0 seats (0 defend, 0 attack, 0 flagged)")
}

func TestWriteCSVResultsForSeats(t *testing.T) {
	fmtFloat, intFmt := createFormatters(2)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	err := writeCSVResultsForSeats(w, metricsFixture(), fmtFloat, intFmt)
	require.NoError(t, err)
	w.Flush()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3) // header + 2 rows

	assert.Contains(t, lines[0], "seat_id")
	assert.Contains(t, lines[0], "safe_target")
	assert.Contains(t, lines[0], "flags")

	assert.Contains(t, lines[1], "N.01")
	assert.Contains(t, lines[1], "Low Risk")
	assert.Contains(t, lines[1], "4177")

	assert.Contains(t, lines[2], "N.02")
	assert.Contains(t, lines[2], "review_data")
	assert.Contains(t, lines[2], schema.FlagVotersEstimated)
}

func TestWriteCSVResultsForSeatsEmpty(t *testing.T) {
	fmtFloat, intFmt := createFormatters(2)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	err := writeCSVResultsForSeats(w, nil, fmtFloat, intFmt)
	require.NoError(t, err)
	w.Flush()

	// Should only have header
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "rank")
}

func TestWriteJSONResultsForSeats(t *testing.T) {
	var buf bytes.Buffer
	err := writeJSONResultsForSeats(&buf, metricsFixture())
	require.NoError(t, err)

	// Parse the JSON to verify structure
	var result []map[string]any
	err = json.Unmarshal(buf.Bytes(), &result)
	require.NoError(t, err)
	require.Len(t, result, 2)

	assert.Equal(t, float64(1), result[0]["rank"])
	assert.Equal(t, "Low Risk", result[0]["tier_label"])
	assert.Equal(t, "maintain", result[0]["action"])
	assert.Equal(t, float64(4177), result[0]["safe_target"])

	assert.Equal(t, float64(2), result[1]["rank"])
	assert.Equal(t, "Medium", result[1]["tier_label"])

	seat, ok := result[0]["seat"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "N.01", seat["SeatID"])
}

func TestFormatLabels(t *testing.T) {
	m := &metricsFixture()[1]

	assert.Equal(t, "Medium", formatTierLabel(schema.TierMedium, false))
	assert.Equal(t, "review_data", formatActionLabel(m, false))
}

func TestGetMaxTableNameWidth(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		expected int
	}{
		{"narrow terminal clamps to minimum", 80, 12},
		{"mid terminal uses remainder", 120, 25},
		{"wide terminal clamps to maximum", 200, 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &contract.Config{Width: tt.width}
			assert.Equal(t, tt.expected, GetMaxTableNameWidth(cfg))
		})
	}
}

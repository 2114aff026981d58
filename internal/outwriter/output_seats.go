package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/assiskamu/formula-menang/internal/contract"
	"github.com/assiskamu/formula-menang/internal/parquet"
	"github.com/assiskamu/formula-menang/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// DefaultParquetFile is the output path used for parquet export when no
// explicit output file is configured. Parquet cannot stream to stdout.
const DefaultParquetFile = "seat_metrics.parquet"

// WriteSeatResults outputs seat metric rows, dispatching based on the output format configured.
func WriteSeatResults(metrics []schema.SeatMetrics, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeSeatJSONResults(metrics, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeSeatCSVResults(metrics, cfg, fmtFloat, intFmt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		outputPath := cfg.OutputFile
		if outputPath == "" {
			outputPath = DefaultParquetFile
		}
		if err := parquet.WriteSeatMetricsParquet(parquet.ConvertSeatMetrics(metrics), outputPath); err != nil {
			return fmt.Errorf("error writing parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSeatTable(w, metrics, cfg, fmtFloat, intFmt, duration)
		}, "Wrote table")
	}
	return nil
}

// writeSeatJSONResults handles opening the file and calling the JSON writer.
func writeSeatJSONResults(metrics []schema.SeatMetrics, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForSeats(w, metrics)
	}, "Wrote JSON")
}

// writeSeatCSVResults handles opening the file and calling the CSV writer.
func writeSeatCSVResults(metrics []schema.SeatMetrics, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForSeats(csvWriter, metrics, fmtFloat, intFmt)
	}, "Wrote CSV")
}

// writeSeatTable generates and writes the human-readable table.
func writeSeatTable(writer io.Writer, metrics []schema.SeatMetrics, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Rank", "Seat", "Grain", "Tier", "Action", "Total", "Target", "Gap", "GOTV", "Swing %", "Flags"}
	table.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	var data [][]string
	for i, m := range metrics {
		row := []string{
			strconv.Itoa(i + 1), // Rank
			contract.TruncateName(m.Seat.SeatName, GetMaxTableNameWidth(cfg)), // Seat
			string(m.Seat.Grain),                       // Grain
			formatTierLabel(m.Tier, cfg.UseColors),     // Tier
			formatActionLabel(&m, cfg.UseColors),       // Action
			fmt.Sprintf(intFmt, m.TotalVote),           // Total
			fmt.Sprintf(intFmt, m.SafeTarget),          // Target
			fmt.Sprintf(intFmt, m.GapToSafeTarget),     // Gap
			fmt.Sprintf(intFmt, m.NeededGotv),          // GOTV
			fmtFloat(m.SwingPercent * 100),             // Swing %
			fmt.Sprintf(intFmt, len(m.Flags)),          // Flags
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	// Compute summary stats
	numSeats := len(metrics)
	numDefend := 0
	numFlagged := 0
	for i := range metrics {
		if metrics[i].Defending() {
			numDefend++
		}
		if len(metrics[i].Flags) > 0 {
			numFlagged++
		}
	}
	if _, err := fmt.Fprintf(writer, "Showing %d seats (%d defend, %d attack, %d flagged)\n", numSeats, numDefend, numSeats-numDefend, numFlagged); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v. Party: %s, scenario: %s\n", duration, cfg.Party, cfg.Scenario); err != nil {
		return err
	}
	return nil
}

// formatTierLabel picks the plain or colored tier label for table output.
func formatTierLabel(tier schema.TierLevel, useColors bool) string {
	if useColors {
		return contract.GetColorTierLabel(tier)
	}
	return contract.GetPlainTierLabel(tier)
}

// formatActionLabel renders the recommended action, highlighting rows whose
// recommendation was preempted by data-quality flags.
func formatActionLabel(m *schema.SeatMetrics, useColors bool) string {
	text := string(m.Action)
	if useColors && len(m.Flags) > 0 {
		return contract.FlagColor.Sprint(text)
	}
	return text
}

// writeCSVResultsForSeats writes seat metric rows in CSV format.
func writeCSVResultsForSeats(w *csv.Writer, metrics []schema.SeatMetrics, fmtFloat func(float64) string, intFmt string) error {
	// CSV header
	header := []string{
		"rank",
		"seat_id",
		"seat_name",
		"grain",
		"tier",
		"action",
		"winner_party",
		"main_opponent",
		"registered_voters",
		"turnout",
		"valid_votes",
		"minimum_to_win",
		"safe_target",
		"total_vote",
		"gap_to_safe_target",
		"needed_gotv",
		"swing_minimum",
		"swing_percent",
		"margin_to_win",
		"buffer_to_lose",
		"majority_votes",
		"flags",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for i, m := range metrics {
		rec := []string{
			strconv.Itoa(i + 1),                        // Rank
			m.Seat.SeatID,                              // Seat ID
			m.Seat.SeatName,                            // Seat Name
			string(m.Seat.Grain),                       // Grain
			contract.GetPlainTierLabel(m.Tier),         // Tier
			string(m.Action),                           // Action
			m.Seat.WinnerParty,                         // Winner Party
			m.MainOpponentParty,                        // Main Opponent
			fmtFloat(m.Seat.RegisteredVoters),          // Registered Voters
			fmtFloat(m.Turnout),                        // Turnout
			fmtFloat(m.ValidVotes),                     // Valid Votes
			fmt.Sprintf(intFmt, m.MinimumToWin),        // Minimum To Win
			fmt.Sprintf(intFmt, m.SafeTarget),          // Safe Target
			fmt.Sprintf(intFmt, m.TotalVote),           // Total Vote
			fmt.Sprintf(intFmt, m.GapToSafeTarget),     // Gap
			fmt.Sprintf(intFmt, m.NeededGotv),          // Needed GOTV
			fmt.Sprintf(intFmt, m.SwingMinimum),        // Swing Minimum
			fmtFloat(m.SwingPercent * 100),             // Swing Percent
			fmt.Sprintf(intFmt, m.MarginToWin),         // Margin To Win
			fmt.Sprintf(intFmt, m.BufferToLose),        // Buffer To Lose
			fmt.Sprintf(intFmt, m.MajorityVotes),       // Majority Votes
			strings.Join(m.Flags, "|"),                 // Flags
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeJSONResultsForSeats writes seat metric rows in JSON format.
func writeJSONResultsForSeats(w io.Writer, metrics []schema.SeatMetrics) error {
	// 1. Prepare the data structure for JSON with rank and tier label added
	type JSONSeatMetrics struct {
		Rank      int    `json:"rank"`
		TierLabel string `json:"tier_label"`
		schema.SeatMetrics
	}

	output := make([]JSONSeatMetrics, len(metrics))
	for i, m := range metrics {
		output[i] = JSONSeatMetrics{
			Rank:        i + 1,
			TierLabel:   contract.GetPlainTierLabel(m.Tier),
			SeatMetrics: m,
		}
	}

	// 2. Use the generic JSON writer
	return writeJSON(w, output)
}

package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/assiskamu/formula-menang/internal/contract"
	"github.com/assiskamu/formula-menang/schema"
)

// WriteBaselineReport outputs the winners-table integrity report, dispatching
// based on the output format configured. Parquet is not supported for this
// report; it falls through to the text form.
func WriteBaselineReport(validation schema.BaselineValidation, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, validation)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"metric", "value"}, func(cw *csv.Writer) error {
				return writeCSVBaselineRows(cw, validation)
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBaselineText(w, validation, cfg)
		}, "Wrote text")
	}
}

// writeBaselineText displays the integrity report in human-readable form.
func writeBaselineText(w io.Writer, v schema.BaselineValidation, cfg *contract.Config) error {
	if _, err := fmt.Fprintf(w, "Baseline source: %s\n", v.SourceFile); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "DUN rows: %d (expected %d)\n", v.TotalDun, schema.ExpectedDunTotal); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Wins for %s: %d, other wins: %d\n", cfg.Party, v.PartyWins, v.OtherWins); err != nil {
		return err
	}
	if len(v.DuplicateDunCodes) > 0 {
		if _, err := fmt.Fprintf(w, "Duplicate DUN codes: %s\n", strings.Join(v.DuplicateDunCodes, ", ")); err != nil {
			return err
		}
	}
	for _, warning := range v.Warnings {
		text := warning
		if cfg.UseColors {
			text = contract.WatchColor.Sprint(warning)
		}
		if _, err := fmt.Fprintf(w, "Warning: %s\n", text); err != nil {
			return err
		}
	}
	if len(v.Warnings) == 0 {
		if _, err := fmt.Fprintf(w, "No warnings\n"); err != nil {
			return err
		}
	}
	return nil
}

// writeCSVBaselineRows writes the integrity report as metric/value pairs.
func writeCSVBaselineRows(w *csv.Writer, v schema.BaselineValidation) error {
	rows := [][]string{
		{"source_file", v.SourceFile},
		{"total_dun", strconv.Itoa(v.TotalDun)},
		{"expected_dun", strconv.Itoa(schema.ExpectedDunTotal)},
		{"party_wins", strconv.Itoa(v.PartyWins)},
		{"other_wins", strconv.Itoa(v.OtherWins)},
		{"duplicate_dun_codes", strings.Join(v.DuplicateDunCodes, "|")},
		{"warnings", strings.Join(v.Warnings, "|")},
	}
	for _, rec := range rows {
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

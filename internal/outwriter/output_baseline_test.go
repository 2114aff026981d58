package outwriter

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/assiskamu/formula-menang/internal/contract"
	"github.com/assiskamu/formula-menang/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validationFixture() schema.BaselineValidation {
	return schema.BaselineValidation{
		TotalDun:          72,
		DuplicateDunCodes: []string{"N.03", "N.09"},
		Warnings: []string{
			"incomplete data: 72 DUN rows (expected 73)",
			"duplicate DUN codes detected: N.03, N.09",
		},
		SourceFile: "prn_sabah_2025_winners.csv",
		PartyWins:  30,
		OtherWins:  42,
	}
}

func TestWriteBaselineText(t *testing.T) {
	cfg := &contract.Config{Party: "BN", UseColors: false}

	var buf bytes.Buffer
	err := writeBaselineText(&buf, validationFixture(), cfg)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Baseline source: prn_sabah_2025_winners.csv")
	assert.Contains(t, output, "DUN rows: 72 (expected 73)")
	assert.Contains(t, output, "Wins for BN: 30, other wins: 42")
	assert.Contains(t, output, "Duplicate DUN codes: N.03, N.09")
	assert.Contains(t, output, "Warning: incomplete data")
	assert.NotContains(t, output, "No warnings")
}

func TestWriteBaselineTextClean(t *testing.T) {
	cfg := &contract.Config{Party: "BN"}
	clean := schema.BaselineValidation{
		TotalDun:   73,
		SourceFile: "prn_sabah_2025_winners.csv",
		PartyWins:  31,
		OtherWins:  42,
	}

	var buf bytes.Buffer
	err := writeBaselineText(&buf, clean, cfg)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "No warnings")
	assert.NotContains(t, output, "Duplicate DUN codes")
}

func TestWriteCSVBaselineRows(t *testing.T) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	err := writeCSVBaselineRows(w, validationFixture())
	require.NoError(t, err)
	w.Flush()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 7)
	assert.Contains(t, lines[0], "source_file")
	assert.Contains(t, lines[1], "72")
	assert.Contains(t, lines[5], "N.03|N.09")
}

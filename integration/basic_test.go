//go:build basic

package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestFormulaWithSQLite tests the formula CLI with the default SQLite backend
// pointed at a throwaway database file.
func TestFormulaWithSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "overrides.db")

	_ = os.Setenv("FORMULA_STORE_BACKEND", "sqlite")
	_ = os.Setenv("FORMULA_STORE_DB_CONNECT", dbPath)
	defer func() { _ = os.Unsetenv("FORMULA_STORE_BACKEND") }()
	defer func() { _ = os.Unsetenv("FORMULA_STORE_DB_CONNECT") }()

	require.NoError(t, runFormulaCommand(t, "overrides", "migrate"))

	fixture := filepath.Join(t.TempDir(), "overrides.json")
	payload := `{
  "version": 1,
  "updatedAtISO": "2025-11-10T00:00:00Z",
  "seatDetails": {"N.01": {"registered_voters": 10500}},
  "candidates": {}
}`
	require.NoError(t, os.WriteFile(fixture, []byte(payload), 0o644))

	require.NoError(t, runFormulaCommand(t, "overrides", "import", "--input-file", fixture))
	require.NoError(t, runFormulaCommand(t, "overrides", "show"))
	require.NoError(t, runFormulaCommand(t, "overrides", "clear"))
}

// TestFormulaInformationalCommands runs the commands that need no dataset.
func TestFormulaInformationalCommands(t *testing.T) {
	require.NoError(t, runFormulaCommand(t, "version"))
	require.NoError(t, runFormulaCommand(t, "metrics"))
	require.NoError(t, runFormulaCommand(t, "metrics", "--output", "json"))
}

package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/assiskamu/formula-menang/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDataDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func minimalDataDir(t *testing.T) map[string]string {
	t.Helper()
	return map[string]string{
		ParlimenFile:    "parlimen_code,parlimen_name,jumlah_pemilih\nP.167,Kudat,60000",
		DunFile:         "parlimen_code,parlimen_name,dun_code,dun_name\nP.167,Kudat,N.01,Banggi",
		WinnersFile:     "dun_code,dun_name,winner_name,winner_party,winner_votes\nN.01,Banggi,Ali,BN,8000",
		ProgressFile:    "week_start,seat_id,base_votes,persuasion_votes,gotv_votes,persuadables,conversion_rate\n2025-10-06,N.01,1000,200,100,400,0.3",
		AssumptionsFile: `{"turnout_scenario":{"base":0.65},"spoiled_rate":0.02,"buffer_rate":0.02}`,
	}
}

func TestLoadTables(t *testing.T) {
	t.Run("required tables", func(t *testing.T) {
		dir := writeDataDir(t, minimalDataDir(t))
		tables, err := LoadTables(dir)
		require.NoError(t, err)

		assert.Len(t, tables.ParlimenRows, 1)
		assert.Equal(t, 60000, tables.ParlimenRows[0].RegisteredVoters)
		assert.Len(t, tables.DunRows, 1)
		assert.Len(t, tables.WinnersRows, 1)
		assert.Equal(t, 8000, tables.WinnersRows[0].WinnerVotes)
		assert.Len(t, tables.ProgressRows, 1)
		assert.Equal(t, 0.3, tables.ProgressRows[0].ConversionRate)
		assert.Equal(t, 0.65, tables.Assumptions.TurnoutScenario["base"])
	})

	t.Run("missing winners file fails", func(t *testing.T) {
		files := minimalDataDir(t)
		delete(files, WinnersFile)
		dir := writeDataDir(t, files)
		_, err := LoadTables(dir)
		assert.ErrorContains(t, err, WinnersFile)
	})

	t.Run("missing enrichment is not an error", func(t *testing.T) {
		dir := writeDataDir(t, minimalDataDir(t))
		tables, err := LoadTables(dir)
		require.NoError(t, err)
		assert.Empty(t, tables.DetailRows)
		assert.Empty(t, tables.CandidateRows)
	})

	t.Run("detail file yields detail and candidate rows", func(t *testing.T) {
		files := minimalDataDir(t)
		files[DetailsFile] = "dun_code,dun_name,registered_voters,total_votes_cast,turnout_pct,majority_votes,source,candidate_name,party,votes,vote_share_pct\n" +
			"N.01,Banggi,21000,15000,0.71,1200,spr,Ali,BN,8000,0.53\n" +
			"N.01,Banggi,21000,15000,0.71,1200,spr,,,,"
		dir := writeDataDir(t, files)
		tables, err := LoadTables(dir)
		require.NoError(t, err)
		assert.Len(t, tables.DetailRows, 2)
		assert.Len(t, tables.CandidateRows, 1)
		assert.Equal(t, "Ali", tables.CandidateRows[0].CandidateName)
	})

	t.Run("fallback detail file is used", func(t *testing.T) {
		files := minimalDataDir(t)
		files[DetailsFallbackFile] = "dun_code,dun_name,registered_voters,total_votes_cast,turnout_pct,majority_votes,source\nN.01,Banggi,21000,15000,0.71,1200,spr"
		dir := writeDataDir(t, files)
		tables, err := LoadTables(dir)
		require.NoError(t, err)
		assert.Len(t, tables.DetailRows, 1)
	})

	t.Run("missing thresholds file uses defaults", func(t *testing.T) {
		dir := writeDataDir(t, minimalDataDir(t))
		tables, err := LoadTables(dir)
		require.NoError(t, err)
		assert.Equal(t, schema.DefaultThresholds(), tables.Thresholds)
	})

	t.Run("thresholds file overrides defaults", func(t *testing.T) {
		files := minimalDataDir(t)
		files[ThresholdsFile] = `{"attack":{"near":{"votes":800,"pct":0.03},"medium":{"votes":2000,"pct":0.07}},"defend":{"high_risk":{"votes":400,"pct":0.03},"medium_risk":{"votes":1200,"pct":0.06}}}`
		dir := writeDataDir(t, files)
		tables, err := LoadTables(dir)
		require.NoError(t, err)
		assert.Equal(t, 800, tables.Thresholds.Attack.Near.Votes)
	})

	t.Run("corrupt assumptions file fails", func(t *testing.T) {
		files := minimalDataDir(t)
		files[AssumptionsFile] = "{not json"
		dir := writeDataDir(t, files)
		_, err := LoadTables(dir)
		assert.ErrorContains(t, err, AssumptionsFile)
	})
}

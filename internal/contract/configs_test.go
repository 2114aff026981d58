package contract

import (
	"testing"

	"github.com/assiskamu/formula-menang/schema"
	"github.com/stretchr/testify/assert"
)

func validRawInput() *ConfigRawInput {
	return &ConfigRawInput{
		DataDir:      "data",
		Party:        "BN",
		Scenario:     "base",
		Grain:        "dun",
		Limit:        DefaultResultLimit,
		Precision:    DefaultPrecision,
		Output:       "text",
		StoreBackend: "sqlite",
		Color:        "yes",
	}
}

func TestProcessAndValidate(t *testing.T) {
	t.Run("valid input", func(t *testing.T) {
		cfg := &Config{}
		err := ProcessAndValidate(cfg, validRawInput())
		assert.NoError(t, err)
		assert.Equal(t, schema.DunGrain, cfg.Grain)
		assert.Equal(t, schema.TextOut, cfg.Output)
		assert.Equal(t, schema.SQLiteBackend, cfg.StoreBackend)
		assert.True(t, cfg.UseColors)
	})

	t.Run("empty data dir falls back to default", func(t *testing.T) {
		input := validRawInput()
		input.DataDir = ""
		cfg := &Config{}
		assert.NoError(t, ProcessAndValidate(cfg, input))
		assert.Equal(t, DefaultDataDir, cfg.DataDir)
	})

	t.Run("invalid grain", func(t *testing.T) {
		input := validRawInput()
		input.Grain = "negeri"
		assert.Error(t, ProcessAndValidate(&Config{}, input))
	})

	t.Run("invalid output", func(t *testing.T) {
		input := validRawInput()
		input.Output = "xml"
		assert.Error(t, ProcessAndValidate(&Config{}, input))
	})

	t.Run("limit bounds", func(t *testing.T) {
		input := validRawInput()
		input.Limit = 0
		assert.Error(t, ProcessAndValidate(&Config{}, input))
		input.Limit = MaxResultLimit + 1
		assert.Error(t, ProcessAndValidate(&Config{}, input))
	})

	t.Run("empty party rejected", func(t *testing.T) {
		input := validRawInput()
		input.Party = "  "
		assert.Error(t, ProcessAndValidate(&Config{}, input))
	})

	t.Run("mysql requires connection string", func(t *testing.T) {
		input := validRawInput()
		input.StoreBackend = "mysql"
		assert.Error(t, ProcessAndValidate(&Config{}, input))

		input.StoreDBConnect = "user:pass@tcp(localhost:3306)/overrides"
		assert.NoError(t, ProcessAndValidate(&Config{}, input))
	})

	t.Run("postgresql connection string format", func(t *testing.T) {
		input := validRawInput()
		input.StoreBackend = "postgresql"
		input.StoreDBConnect = "host=localhost dbname=overrides"
		assert.NoError(t, ProcessAndValidate(&Config{}, input))

		input.StoreDBConnect = "host=localhost"
		assert.Error(t, ProcessAndValidate(&Config{}, input))
	})
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1"} {
		v, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.True(t, v)
	}
	for _, s := range []string{"no", "False", "0"} {
		v, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.False(t, v)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}

func TestTruncateName(t *testing.T) {
	assert.Equal(t, "N.01 Banggi", TruncateName("N.01 Banggi", 20))
	assert.Equal(t, "N.01 Kampung Pan...", TruncateName("N.01 Kampung Panjang Sekali", 19))
	// Widths too small for an ellipsis leave the name untouched.
	assert.Equal(t, "N.01", TruncateName("N.01", 3))
}

func TestTierLabels(t *testing.T) {
	assert.Equal(t, "Near", GetPlainTierLabel(schema.TierNear))
	assert.Equal(t, "High Risk", GetPlainTierLabel(schema.TierHighRisk))
	assert.Equal(t, "Low Risk", GetPlainTierLabel(schema.TierLowRisk))
	// Colored labels still contain the plain text.
	assert.Contains(t, GetColorTierLabel(schema.TierMedium), "Medium")
}

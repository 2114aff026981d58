// Package cmd defines the command-line interface for formula.
package cmd

import (
	"github.com/assiskamu/formula-menang/internal/contract"
	"github.com/assiskamu/formula-menang/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(seatsCmd)
	rootCmd.AddCommand(baselineCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(overridesCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the overrides subcommands to the parent overrides command
	overridesCmd.AddCommand(overridesShowCmd)
	overridesCmd.AddCommand(overridesImportCmd)
	overridesCmd.AddCommand(overridesClearCmd)
	overridesCmd.AddCommand(overridesMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("data-dir", contract.DefaultDataDir, "Directory holding the source CSV and JSON tables")
	rootCmd.PersistentFlags().StringP("party", "p", contract.DefaultParty, "Party of interest for all margins and targets")
	rootCmd.PersistentFlags().String("scenario", contract.DefaultScenario, "Turnout scenario: low or base or high")
	rootCmd.PersistentFlags().String("grain", string(schema.DunGrain), "Seat grain to display: parlimen or dun")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Override store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of overridesImportCmd to Viper
	overridesImportCmd.Flags().String("input-file", "", "Path to the overrides JSON file to import")
	overridesImportCmd.Flags().String("mode", string(schema.MergeOverrides), "Import mode: merge or replace")
	if err := viper.BindPFlags(overridesImportCmd.Flags()); err != nil {
		contract.LogFatal("Error binding overrides import flags", err)
	}

	// Bind all flags of overridesMigrateCmd to Viper
	overridesMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(overridesMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding overrides migrate flags", err)
	}
}

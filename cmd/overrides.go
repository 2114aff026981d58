package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/assiskamu/formula-menang/internal/contract"
	"github.com/assiskamu/formula-menang/internal/overstore"
	"github.com/assiskamu/formula-menang/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// overridesSetup loads minimal configuration needed for override store operations.
// This is used by commands that need store access without full shared setup.
func overridesSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get store-related config values
	backend := schema.DatabaseBackend(viper.GetString("store-backend"))
	connStr := viper.GetString("store-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Initialize the override store with the loaded config
	var err error
	store, err = overstore.NewStore(backend, connStr)
	if err != nil {
		return fmt.Errorf("failed to initialize override store: %w", err)
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")

	return nil
}

// overridesSetupWrapper wraps overridesSetup to provide PreRunE for overrides commands.
func overridesSetupWrapper(_ *cobra.Command, _ []string) error {
	return overridesSetup()
}

// overridesMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT open the store or create tables,
// allowing migrations to run on a fresh database.
func overridesMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get store-related config values
	backend := schema.DatabaseBackend(viper.GetString("store-backend"))
	connStr := viper.GetString("store-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetStoreDBFilePath()
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr

	return nil
}

// overridesMigrateSetupWrapper wraps overridesMigrateSetup to provide PreRunE for migrate command.
func overridesMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return overridesMigrateSetup()
}

// overridesCmd focused on local override management.
//
// Note: Overrides subcommands use minimal initialization (overridesSetup) instead
// of the full sharedSetup used by analysis commands. This avoids dataset loading
// and complex config processing for simple store operations.
var overridesCmd = &cobra.Command{
	Use:   "overrides",
	Short: "Manage locally stored seat overrides and assumptions",
	Long: `Manage the local override store that adjusts seat analysis inputs.

Overrides let campaign staff patch individual seat rows (voter counts, notes)
and maintain candidate lists without editing the source tables. Stored values
merge on top of the dataset on every analysis run.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (in-memory)

Subcommands:
  show    - Display the stored overrides as JSON
  import  - Import overrides from a JSON file
  clear   - Remove all stored overrides
  migrate - Run database schema migrations

Examples:
  # Inspect current overrides
  formula overrides show

  # Load a prepared overrides file
  formula overrides import --input-file week40.json`,
}

// overridesShowCmd prints the stored overrides.
var overridesShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the stored overrides as JSON",
	Long: `Print every stored seat override and candidate override as JSON.

The output matches the import format, so it can be redirected to a file,
edited, and re-imported.

Examples:
  # Inspect current overrides
  formula overrides show

  # Snapshot overrides to a file
  formula overrides show --output-file backup.json`,
	PreRunE: overridesSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		overrides, err := store.Load()
		if err != nil {
			contract.LogFatal("Failed to load overrides", err)
		}

		data, err := json.MarshalIndent(overrides, "", "  ")
		if err != nil {
			contract.LogFatal("Failed to encode overrides", err)
		}

		out, err := contract.SelectOutputFile(cfg.OutputFile)
		if err != nil {
			contract.LogFatal("Failed to open output file", err)
		}
		if out != os.Stdout {
			defer func() { _ = out.Close() }()
		}
		fmt.Fprintln(out, string(data))
	},
}

// overridesImportCmd imports overrides from a JSON file.
var overridesImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import overrides from a JSON file",
	Long: `Load seat and candidate overrides from a JSON file into the store.

Modes:
  merge   - Incoming entries are merged on top of stored ones (default)
  replace - Stored entries are discarded and replaced wholesale

Seat override values are sanitized on import; negative voter counts are
rejected and unknown fields are ignored.

Examples:
  # Merge a prepared overrides file
  formula overrides import --input-file week40.json

  # Replace everything in the store
  formula overrides import --input-file reset.json --mode replace`,
	PreRunE: overridesSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		inputFile := viper.GetString("input-file")
		if inputFile == "" {
			contract.LogFatal("Cannot import overrides", fmt.Errorf("--input-file is required"))
		}

		mode := schema.MergeMode(viper.GetString("mode"))
		if mode != schema.MergeOverrides && mode != schema.ReplaceOverrides {
			contract.LogFatal("Cannot import overrides", fmt.Errorf("invalid mode %q: must be merge or replace", mode))
		}

		data, err := os.ReadFile(inputFile)
		if err != nil {
			contract.LogFatal("Cannot read input file", err)
		}

		var incoming schema.LocalOverrides
		if err := json.Unmarshal(data, &incoming); err != nil {
			contract.LogFatal("Cannot parse input file", err)
		}

		current, err := store.Load()
		if err != nil {
			contract.LogFatal("Failed to load stored overrides", err)
		}

		merged, err := overstore.Merge(store, current, &incoming, mode)
		if err != nil {
			contract.LogFatal("Failed to import overrides", err)
		}

		fmt.Printf("Imported overrides: %d seat entries, %d candidate lists (version %d).\n",
			len(merged.SeatDetails), len(merged.Candidates), merged.Version)
	},
}

// overridesClearCmd clears the override store.
var overridesClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored overrides",
	Long: `Delete every stored seat override and candidate override.

Use this when:
- A fresh dataset drop makes old patches obsolete
- The store was polluted by a bad import
- Resetting before a new campaign cycle

Examples:
  # Clear the SQLite store (default)
  formula overrides clear

  # Clear a MySQL-backed store
  FORMULA_STORE_BACKEND=mysql FORMULA_STORE_DB_CONNECT="..." formula overrides clear`,
	PreRunE: overridesSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := store.Clear(); err != nil {
			contract.LogFatal("Failed to clear overrides", err)
		}
		fmt.Println("Overrides cleared successfully.")
	},
}

// overridesMigrateCmd runs schema migrations for the override store.
var overridesMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations for the override store",
	Long: `Apply or roll back schema migrations on the override store database.

Works on a fresh database; the store itself is not opened, so migrations
can bootstrap the schema from nothing.

Examples:
  # Migrate to latest version (default)
  formula overrides migrate

  # Migrate to specific version
  formula overrides migrate --target-version 1

  # Rollback to initial state
  formula overrides migrate --target-version 0`,
	PreRunE: overridesMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := overstore.Migrate(cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}

package cmd

import (
	"github.com/assiskamu/formula-menang/core"
	"github.com/assiskamu/formula-menang/internal/contract"
	"github.com/assiskamu/formula-menang/internal/loader"
	"github.com/assiskamu/formula-menang/internal/outwriter"
	"github.com/spf13/cobra"
)

// baselineCmd validates the winners table and reports its integrity.
var baselineCmd = &cobra.Command{
	Use:   "baseline",
	Short: "Validate the winners table against the full DUN roll.",
	Long: `Check the integrity of the prior-election winners table.

Reports:
- Row count against the expected full DUN roll
- Duplicate DUN codes
- Win counts for the configured party versus everyone else

Validation never blocks analysis; incomplete or duplicated data surfaces
as warnings here and on the seats command.

Examples:
  # Validate the default data directory
  formula baseline

  # Validate a different dataset as JSON
  formula baseline --data-dir ./snapshots/week40 --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		tables, err := loader.LoadTables(cfg.DataDir)
		if err != nil {
			contract.LogFatal("Cannot load source tables", err)
		}

		validation := core.ValidateWinners(tables.WinnersRows, loader.WinnersFile, cfg.Party)
		if err := outwriter.WriteBaselineReport(validation, cfg); err != nil {
			contract.LogFatal("Cannot write baseline report", err)
		}
	},
}

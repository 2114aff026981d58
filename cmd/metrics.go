package cmd

import (
	"github.com/assiskamu/formula-menang/internal/contract"
	"github.com/assiskamu/formula-menang/internal/outwriter"
	"github.com/spf13/cobra"
)

// metricsCmd displays the formal definitions of all seat KPIs.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display formulas and definitions for all seat KPIs",
	Long: `Show the formal definitions and formulas behind every computed seat column.

No dataset is loaded - this is purely informational.

Use this to:
- Understand what each KPI measures
- Explain targeting logic to field teams
- Document the methodology behind the seat sheet

Examples:
  # Show KPI formulas
  formula metrics

  # Machine-readable definitions
  formula metrics --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := outwriter.PrintKpiDefinitions(cfg); err != nil {
			contract.LogFatal("Cannot display metrics", err)
		}
	},
}

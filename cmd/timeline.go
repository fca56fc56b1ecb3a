package cmd

import (
	"github.com/ceaplens/ceaplens/core"
	"github.com/ceaplens/ceaplens/internal/contract"
	"github.com/ceaplens/ceaplens/internal/facetstore"
	"github.com/spf13/cobra"
)

// timelineCmd prints the enriched monthly spending series.
var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Show the monthly spending series with anomaly markers.",
	Long: `Enrich the filtered monthly spending series with distribution
statistics, value ranks and anomaly classification.

Months at least 1.5 standard deviations from the series mean are flagged as
spikes or drops; at 2.0 or more they are marked extreme. Year summaries with
year-over-year growth and recurring calendar notes (parliamentary recess,
fiscal year-end) are appended.

Examples:
  # Whole-dataset monthly series
  ceaplens timeline

  # One party's series for a single year
  ceaplens timeline --party PT --year 2023

  # Export the series for charting
  ceaplens timeline --output parquet --output-file series.parquet`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteTimeline(rootCtx, cfg, dataClient, facetstore.Global()); err != nil {
			contract.LogFatal("Cannot run timeline", err)
		}
	},
}

package cmd

import (
	"github.com/ceaplens/ceaplens/core"
	"github.com/ceaplens/ceaplens/internal/contract"
	"github.com/ceaplens/ceaplens/internal/facetstore"
	"github.com/spf13/cobra"
)

// summaryCmd prints the aggregation snapshot for the active filters.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show grand totals and rollups for the active filters.",
	Long: `Build the aggregation snapshot for the active facet filters: grand
totals plus per-month, per-category, per-party and per-state rollups.

With no filters active the precomputed baseline snapshot is shown verbatim,
so unfiltered numbers always match the published dataset.

Examples:
  # Whole-dataset totals
  ceaplens summary

  # Totals for one state across two years
  ceaplens summary --uf RJ --year 2022,2023

  # Machine-readable snapshot
  ceaplens summary --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSummary(rootCtx, cfg, dataClient, facetstore.Global()); err != nil {
			contract.LogFatal("Cannot run summary", err)
		}
	},
}

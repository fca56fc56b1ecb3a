package cmd

import (
	"github.com/ceaplens/ceaplens/core"
	"github.com/ceaplens/ceaplens/internal/contract"
	"github.com/ceaplens/ceaplens/internal/facetstore"
	"github.com/spf13/cobra"
)

// deputiesCmd lists deputies ranked by reimbursed spending.
var deputiesCmd = &cobra.Command{
	Use:   "deputies",
	Short: "Show the top deputies ranked by reimbursed spending.",
	Long: `Rank deputies by total reimbursed spending, with scalar metrics
recomputed to match the active facet filters.

When year or category filters are active, totals, transaction counts and
average tickets are rebuilt from the matching breakdown entries instead of
the lifetime values, so the numbers answer "how much under these filters",
not "how much ever".

Examples:
  # Top 25 spenders over the whole dataset
  ceaplens deputies

  # Spending in 2023 only, São Paulo deputies
  ceaplens deputies --year 2023 --uf SP

  # High-risk deputies in the air travel category
  ceaplens deputies --risk ALTO,CRITICO --category "PASSAGEM AÉREA"

  # Export findings to CSV for tracking
  ceaplens deputies --year 2023 --output csv --output-file spenders.csv`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDeputies(rootCtx, cfg, dataClient, facetstore.Global()); err != nil {
			contract.LogFatal("Cannot run deputies listing", err)
		}
	},
}

package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ceaplens/ceaplens/core"
	"github.com/ceaplens/ceaplens/internal/contract"
	"github.com/ceaplens/ceaplens/internal/facetstore"
	"github.com/ceaplens/ceaplens/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// facetsCmd manages the persisted facet selections.
var facetsCmd = &cobra.Command{
	Use:   "facets",
	Short: "Manage persisted facet selections",
	Long: `Manage the facet selections that persist between runs.

Selections made here apply to every deputies, summary and timeline run until
changed or cleared. Facet flags given directly on those commands override the
persisted selections for that run only, without touching them. The free-text
search is never persisted.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (no persistence)

Subcommands:
  show   - Print the persisted selections
  set    - Replace the persisted selections with the given facet flags
  toggle - Flip individual facet values in place
  clear  - Remove all persisted selections

Examples:
  # Pin the working set to São Paulo, 2023
  ceaplens facets set --uf SP --year 2023

  # Flip a single party in and out
  ceaplens facets toggle --party PT

  # Check what is active
  ceaplens facets show`,
}

// printSelections renders persisted selections as indented JSON.
func printSelections(sel schema.FacetSelections) {
	if sel.IsEmpty() {
		fmt.Println("No facet selections persisted.")
		return
	}
	jsonData, _ := json.MarshalIndent(sel, "", "  ")
	fmt.Println(string(jsonData))
}

// facetsShowCmd prints the persisted facet selections.
var facetsShowCmd = &cobra.Command{
	Use:     "show",
	Short:   "Print the persisted facet selections",
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		fs := core.LoadFilterState(facetstore.Global())
		if kinds := fs.ActiveKinds(); len(kinds) > 0 {
			labels := make([]string, len(kinds))
			for i, k := range kinds {
				labels[i] = string(k)
			}
			fmt.Printf("Active dimensions: %s\n", strings.Join(labels, ", "))
		}
		printSelections(fs.Selections())
	},
}

// facetsSetCmd replaces the persisted selections with the given flags.
var facetsSetCmd = &cobra.Command{
	Use:     "set",
	Short:   "Replace the persisted selections with the given facet flags",
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		fs := core.LoadFilterState(facetstore.Global())
		fs.SetSelections(cfg.Selections())
		printSelections(fs.Selections())
	},
}

// facetsToggleCmd flips individual facet values in place.
var facetsToggleCmd = &cobra.Command{
	Use:     "toggle",
	Short:   "Flip individual facet values in the persisted selections",
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		fs := core.LoadFilterState(facetstore.Global())
		for _, year := range cfg.Years {
			fs.ToggleYear(year)
		}
		for _, uf := range cfg.States {
			fs.ToggleState(uf)
		}
		for _, party := range cfg.Parties {
			fs.ToggleParty(party)
		}
		for _, category := range cfg.Categories {
			fs.ToggleCategory(category)
		}
		for _, level := range cfg.Risks {
			fs.ToggleRisk(level)
		}
		printSelections(fs.Selections())
	},
}

// facetsClearSetup loads minimal configuration needed to clear the store.
// Clearing must not open the store first; for SQLite the backing file is
// deleted outright.
func facetsClearSetup(_ *cobra.Command, _ []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	cfg.StoreBackend = schema.StoreBackend(viper.GetString("store-backend"))
	if _, ok := schema.ValidStoreBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", viper.GetString("store-backend"))
	}
	cfg.StoreConnect = viper.GetString("store-connect")
	return nil
}

// facetsClearCmd removes all persisted selections.
var facetsClearCmd = &cobra.Command{
	Use:     "clear",
	Short:   "Remove all persisted facet selections",
	Args:    cobra.NoArgs,
	PreRunE: facetsClearSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := facetstore.ClearStore(cfg.StoreBackend, contract.GetFacetDBFilePath(), cfg.StoreConnect); err != nil {
			contract.LogFatal("Failed to clear facet selections", err)
		}
		fmt.Println("Facet selections cleared.")
	},
}

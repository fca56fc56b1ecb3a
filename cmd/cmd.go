// Package cmd defines the command-line interface for ceaplens.
package cmd

import (
	"github.com/ceaplens/ceaplens/internal/contract"
	"github.com/ceaplens/ceaplens/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(deputiesCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(timelineCmd)
	rootCmd.AddCommand(facetsCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the facets subcommands to the parent facets command
	facetsCmd.AddCommand(facetsShowCmd)
	facetsCmd.AddCommand(facetsSetCmd)
	facetsCmd.AddCommand(facetsToggleCmd)
	facetsCmd.AddCommand(facetsClearCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("data", contract.DefaultDataSource, "Directory or http(s) base URL holding deputies.json and aggregations.json")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for monetary columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Bool("detail", false, "Print per-deputy indicator columns (HHI, Benford, round values)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored risk labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Facet persistence backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("year", "", "Comma-separated list of years to include")
	rootCmd.PersistentFlags().String("uf", "", "Comma-separated list of two-letter state codes")
	rootCmd.PersistentFlags().String("party", "", "Comma-separated list of party acronyms")
	rootCmd.PersistentFlags().String("category", "", "Comma-separated list of expense categories")
	rootCmd.PersistentFlags().String("risk", "", "Comma-separated list of risk tiers (BAIXO, MEDIO, ALTO, CRITICO)")
	rootCmd.PersistentFlags().StringP("search", "s", "", "Case-insensitive substring match on deputy name or party")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}
}

package core

import (
	"context"
	"sort"
	"time"

	"github.com/ceaplens/ceaplens/internal/contract"
	"github.com/ceaplens/ceaplens/internal/outwriter"
	"github.com/ceaplens/ceaplens/schema"
)

// loadDataset fetches the session dataset, degrading to an empty dataset on
// fetch failure. A broken data source renders "no data", not a fatal error.
func loadDataset(ctx context.Context, client contract.DataClient) *contract.Dataset {
	ds, err := client.Load(ctx)
	if err != nil {
		contract.LogWarn("could not load dataset, continuing with empty data", err)
		return &contract.Dataset{Deputies: []schema.Deputy{}, Baseline: schema.EmptySnapshot()}
	}
	return ds
}

// resolveFilterState builds the effective filter state for a command run:
// the persisted facet selections, overridden by any facets given on the
// command line. The search query always comes from flags and is never
// persisted.
func resolveFilterState(cfg *contract.Config, store contract.FacetStore) *FilterState {
	fs := LoadFilterState(store)
	if cfg.HasFacetFlags() {
		// Flag-provided facets replace the persisted ones for this run only,
		// so detach the store before applying them.
		fs = NewFilterState()
		fs.apply(cfg.Selections())
	}
	fs.SetSearch(cfg.Search)
	return fs
}

// GetDeputyResults returns the filtered, recomputed, ranked deputies for the
// effective filter state. Programmatic callers (MCP) share this pipeline with
// the CLI entry points.
func GetDeputyResults(ctx context.Context, cfg *contract.Config, client contract.DataClient, store contract.FacetStore) []schema.Deputy {
	ds := loadDataset(ctx, client)
	fs := resolveFilterState(cfg, store)

	filtered := ApplyFilters(ds.Deputies, fs, TrackedYears(ds.Baseline))
	recomputed := RecomputeScalars(filtered, fs)
	return RankDeputies(recomputed, cfg.ResultLimit)
}

// GetSummaryResult returns the aggregation snapshot for the effective filter
// state. With no filters active this is the baseline snapshot verbatim.
func GetSummaryResult(ctx context.Context, cfg *contract.Config, client contract.DataClient, store contract.FacetStore) *schema.Snapshot {
	ds := loadDataset(ctx, client)
	fs := resolveFilterState(cfg, store)
	return DerivedSnapshot(ds.Deputies, fs, ds.Baseline)
}

// GetTimelineResult returns the filtered monthly series enriched with
// statistics, ranks and anomaly classification.
func GetTimelineResult(ctx context.Context, cfg *contract.Config, client contract.DataClient, store contract.FacetStore) schema.EnrichedSeries {
	snap := GetSummaryResult(ctx, cfg, client, store)
	return EnrichSeries(snap.ByMonth)
}

// ExecuteDeputies runs the filtered, recomputed deputy listing and prints the
// top spenders. It serves as the main entry point for the 'deputies' mode.
func ExecuteDeputies(ctx context.Context, cfg *contract.Config, client contract.DataClient, store contract.FacetStore) error {
	start := time.Now()
	ranked := GetDeputyResults(ctx, cfg, client, store)
	duration := time.Since(start)
	return outwriter.PrintDeputyResults(ranked, cfg, duration)
}

// ExecuteSummary builds the aggregation snapshot for the active filters and
// prints the grand totals plus the four rollups.
func ExecuteSummary(ctx context.Context, cfg *contract.Config, client contract.DataClient, store contract.FacetStore) error {
	start := time.Now()
	snap := GetSummaryResult(ctx, cfg, client, store)
	duration := time.Since(start)
	return outwriter.PrintSnapshot(snap, cfg, duration)
}

// ExecuteTimeline enriches the filtered monthly series with statistics, ranks
// and anomaly classification and prints the result.
func ExecuteTimeline(ctx context.Context, cfg *contract.Config, client contract.DataClient, store contract.FacetStore) error {
	start := time.Now()
	series := GetTimelineResult(ctx, cfg, client, store)
	duration := time.Since(start)
	return outwriter.PrintTimeline(series, cfg, duration)
}

// RankDeputies sorts deputies by total spending in descending order and
// returns the top 'limit' entries.
func RankDeputies(deputies []schema.Deputy, limit int) []schema.Deputy {
	ranked := make([]schema.Deputy, len(deputies))
	copy(ranked, deputies)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalSpending > ranked[j].TotalSpending
	})
	if limit > 0 && len(ranked) > limit {
		return ranked[:limit]
	}
	return ranked
}

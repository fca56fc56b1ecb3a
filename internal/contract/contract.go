// Package contract has configuration, interfaces and shared helpers that tie
// the ceaplens packages together.
package contract

import (
	"context"

	"github.com/ceaplens/ceaplens/schema"
)

// Dataset is the session-scoped, immutable pair of fetched resources: the
// deputy collection and the baseline aggregation snapshot. Consumers share it
// by reference and rely on it never being written after population.
type Dataset struct {
	Deputies []schema.Deputy
	Baseline *schema.Snapshot
}

// DataClient loads the two dataset resources. Implementations fetch exactly
// once per session and serve the cached result afterwards.
type DataClient interface {
	// Load returns the dataset, fetching it on first call. An error means
	// the fetch failed; callers distinguish that from "no data yet".
	Load(ctx context.Context) (*Dataset, error)
}

// FacetStore persists facet selections across sessions. The free-text search
// query never passes through this interface.
type FacetStore interface {
	// Save replaces the persisted selections.
	Save(sel schema.FacetSelections) error

	// Load returns the persisted selections, or an empty value when nothing
	// has been saved yet.
	Load() (schema.FacetSelections, error)

	// Clear removes the persisted selections.
	Clear() error

	// Close releases the underlying resources.
	Close() error
}

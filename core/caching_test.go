package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerivedSnapshotMemoization(t *testing.T) {
	deputies := testDeputies()
	baseline := testBaseline()

	fs := NewFilterState()
	fs.ToggleState("SP")

	first := DerivedSnapshot(deputies, fs, baseline)
	second := DerivedSnapshot(deputies, fs, baseline)
	assert.Same(t, first, second, "identical filter state must hit the memo")

	t.Run("filter change invalidates", func(t *testing.T) {
		fs.ToggleState("RJ")
		third := DerivedSnapshot(deputies, fs, baseline)
		assert.NotSame(t, first, third)
		assert.Greater(t, third.Meta.TotalSpending, first.Meta.TotalSpending)
	})

	t.Run("search change invalidates", func(t *testing.T) {
		fs.SetSearch("ana")
		withSearch := DerivedSnapshot(deputies, fs, baseline)
		fs.SetSearch("")
		withoutSearch := DerivedSnapshot(deputies, fs, baseline)
		assert.NotSame(t, withSearch, withoutSearch)
	})

	t.Run("dataset refresh invalidates", func(t *testing.T) {
		fresh := testBaseline()
		fresh.Meta.LastUpdated = "2026-02-01T00:00:00Z"
		refreshed := DerivedSnapshot(deputies, fs, fresh)
		again := DerivedSnapshot(deputies, fs, fresh)
		assert.Same(t, refreshed, again)
	})
}

func TestDerivedSnapshotNoFilters(t *testing.T) {
	baseline := testBaseline()
	fs := NewFilterState()

	snap := DerivedSnapshot(testDeputies(), fs, baseline)
	require.NotNil(t, snap)
	// Fast path: unfiltered numbers always match the published baseline.
	assert.Equal(t, baseline.Meta, snap.Meta)
}

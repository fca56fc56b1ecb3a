package core

import (
	"context"
	"errors"
	"testing"

	"github.com/ceaplens/ceaplens/internal/contract"
	"github.com/ceaplens/ceaplens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient serves a fixed dataset, or an error.
type fakeClient struct {
	ds  *contract.Dataset
	err error
}

func (c *fakeClient) Load(_ context.Context) (*contract.Dataset, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.ds, nil
}

func TestRankDeputies(t *testing.T) {
	deputies := []schema.Deputy{
		{ID: 1, Name: "low", TotalSpending: 10},
		{ID: 2, Name: "high", TotalSpending: 90},
		{ID: 3, Name: "medium", TotalSpending: 50},
		{ID: 4, Name: "critical", TotalSpending: 95},
	}

	t.Run("rank and limit", func(t *testing.T) {
		ranked := RankDeputies(deputies, 2)
		require.Len(t, ranked, 2)
		assert.Equal(t, 4, ranked[0].ID)
		assert.Equal(t, 2, ranked[1].ID)
	})

	t.Run("limit exceeds length", func(t *testing.T) {
		ranked := RankDeputies(deputies, 10)
		assert.Len(t, ranked, 4)
	})

	t.Run("spending in descending order", func(t *testing.T) {
		ranked := RankDeputies(deputies, 10)
		for i := 1; i < len(ranked); i++ {
			assert.LessOrEqual(t, ranked[i].TotalSpending, ranked[i-1].TotalSpending)
		}
	})

	t.Run("input order preserved", func(t *testing.T) {
		_ = RankDeputies(deputies, 1)
		assert.Equal(t, 1, deputies[0].ID)
	})
}

func TestLoadDatasetDegradesOnError(t *testing.T) {
	client := &fakeClient{err: errors.New("network down")}
	ds := loadDataset(context.Background(), client)
	require.NotNil(t, ds)
	assert.Empty(t, ds.Deputies)
	assert.NotNil(t, ds.Baseline)
}

func TestResolveFilterState(t *testing.T) {
	t.Run("flags override persisted facets for the run", func(t *testing.T) {
		store := &fakeStore{saved: schema.FacetSelections{States: []string{"RJ"}}}
		cfg := &contract.Config{Years: []int{2023}, Search: "ana"}

		fs := resolveFilterState(cfg, store)
		assert.True(t, fs.YearSelected(2023))
		assert.Empty(t, fs.Selections().States, "persisted facets are replaced")
		assert.Equal(t, "ana", fs.Search())
		// The override is detached: it must not overwrite the stored facets.
		assert.Equal(t, []string{"RJ"}, store.saved.States)
	})

	t.Run("no flags uses persisted facets", func(t *testing.T) {
		store := &fakeStore{saved: schema.FacetSelections{States: []string{"RJ"}}}
		cfg := &contract.Config{}

		fs := resolveFilterState(cfg, store)
		assert.Equal(t, []string{"RJ"}, fs.Selections().States)
	})
}

func TestGetDeputyResults(t *testing.T) {
	client := &fakeClient{ds: &contract.Dataset{Deputies: testDeputies(), Baseline: testBaseline()}}
	cfg := &contract.Config{ResultLimit: 2, States: []string{"SP", "RJ"}}

	ranked := GetDeputyResults(context.Background(), cfg, client, nil)
	require.Len(t, ranked, 2)
	assert.Equal(t, 1, ranked[0].ID)
	assert.Equal(t, 2, ranked[1].ID)
}

func TestGetTimelineResult(t *testing.T) {
	client := &fakeClient{ds: &contract.Dataset{Deputies: testDeputies(), Baseline: testBaseline()}}
	cfg := &contract.Config{ResultLimit: 10, States: []string{"SP"}}

	series := GetTimelineResult(context.Background(), cfg, client, nil)
	require.NotEmpty(t, series.Points)
	assert.Equal(t, len(series.Points), series.Stats.Count)
}

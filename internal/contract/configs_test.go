package contract

import (
	"testing"

	"github.com/ceaplens/ceaplens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validInput returns a raw input that passes every validation check.
func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		DataSource:   "public/data",
		ResultLimit:  25,
		Precision:    2,
		Output:       "text",
		Color:        "yes",
		StoreBackend: "sqlite",
	}
}

func TestProcessAndValidate(t *testing.T) {
	t.Run("valid defaults", func(t *testing.T) {
		cfg := &Config{}
		require.NoError(t, ProcessAndValidate(cfg, validInput()))
		assert.Equal(t, 25, cfg.ResultLimit)
		assert.Equal(t, schema.TextOut, cfg.Output)
		assert.True(t, cfg.Color)
		assert.Equal(t, schema.SQLiteBackend, cfg.StoreBackend)
		assert.Equal(t, "public/data", cfg.DataSource)
	})

	t.Run("empty data source falls back to default", func(t *testing.T) {
		input := validInput()
		input.DataSource = ""
		cfg := &Config{}
		require.NoError(t, ProcessAndValidate(cfg, input))
		assert.Equal(t, DefaultDataSource, cfg.DataSource)
	})

	t.Run("limit bounds", func(t *testing.T) {
		for _, limit := range []int{0, -1, MaxResultLimit + 1} {
			input := validInput()
			input.ResultLimit = limit
			assert.Error(t, ProcessAndValidate(&Config{}, input), "limit %d", limit)
		}
	})

	t.Run("precision bounds", func(t *testing.T) {
		input := validInput()
		input.Precision = 5
		assert.Error(t, ProcessAndValidate(&Config{}, input))
	})

	t.Run("invalid output mode", func(t *testing.T) {
		input := validInput()
		input.Output = "xml"
		assert.Error(t, ProcessAndValidate(&Config{}, input))
	})

	t.Run("parquet requires output file", func(t *testing.T) {
		input := validInput()
		input.Output = "parquet"
		assert.Error(t, ProcessAndValidate(&Config{}, input))

		input.OutputFile = "out.parquet"
		assert.NoError(t, ProcessAndValidate(&Config{}, input))
	})

	t.Run("invalid store backend", func(t *testing.T) {
		input := validInput()
		input.StoreBackend = "mongo"
		assert.Error(t, ProcessAndValidate(&Config{}, input))
	})

	t.Run("facet lists parse and normalize", func(t *testing.T) {
		input := validInput()
		input.Years = "2022, 2023"
		input.States = "sp,rj"
		input.Parties = " pt , mdb "
		input.Categories = "COMBUSTÍVEIS"
		input.Risks = "alto,critico"
		input.Search = "  ana  "

		cfg := &Config{}
		require.NoError(t, ProcessAndValidate(cfg, input))
		assert.Equal(t, []int{2022, 2023}, cfg.Years)
		assert.Equal(t, []string{"SP", "RJ"}, cfg.States)
		assert.Equal(t, []string{"PT", "MDB"}, cfg.Parties)
		assert.Equal(t, []string{"COMBUSTÍVEIS"}, cfg.Categories)
		assert.Equal(t, []schema.RiskLevel{schema.RiskHigh, schema.RiskCritical}, cfg.Risks)
		assert.Equal(t, "ana", cfg.Search)
	})

	t.Run("invalid year", func(t *testing.T) {
		input := validInput()
		input.Years = "1850"
		assert.Error(t, ProcessAndValidate(&Config{}, input))

		input.Years = "twenty"
		assert.Error(t, ProcessAndValidate(&Config{}, input))
	})

	t.Run("invalid risk tier", func(t *testing.T) {
		input := validInput()
		input.Risks = "EXTREME"
		assert.Error(t, ProcessAndValidate(&Config{}, input))
	})
}

func TestConfigHasFacetFlags(t *testing.T) {
	assert.False(t, (&Config{}).HasFacetFlags())
	assert.False(t, (&Config{Search: "ana"}).HasFacetFlags(), "search alone is not a facet")
	assert.True(t, (&Config{Years: []int{2023}}).HasFacetFlags())
	assert.True(t, (&Config{Risks: []schema.RiskLevel{schema.RiskLow}}).HasFacetFlags())
}

func TestConfigClone(t *testing.T) {
	orig := &Config{
		ResultLimit: 10,
		Years:       []int{2023},
		States:      []string{"SP"},
	}
	clone := orig.Clone()
	clone.ResultLimit = 99
	clone.Years[0] = 1999
	clone.States = append(clone.States, "RJ")

	assert.Equal(t, 10, orig.ResultLimit)
	assert.Equal(t, []int{2023}, orig.Years)
	assert.Equal(t, []string{"SP"}, orig.States)
}

func TestRevalidateFacets(t *testing.T) {
	t.Run("parses overrides", func(t *testing.T) {
		cfg := &Config{}
		err := RevalidateFacets(cfg, "2023", "sp", "pt", "", "baixo", " ana ")
		require.NoError(t, err)
		assert.Equal(t, []int{2023}, cfg.Years)
		assert.Equal(t, []string{"SP"}, cfg.States)
		assert.Equal(t, []string{"PT"}, cfg.Parties)
		assert.Equal(t, []schema.RiskLevel{schema.RiskLow}, cfg.Risks)
		assert.Equal(t, "ana", cfg.Search)
	})

	t.Run("rejects bad values without partial writes", func(t *testing.T) {
		cfg := &Config{}
		err := RevalidateFacets(cfg, "2023", "", "", "", "bogus", "")
		assert.Error(t, err)
		assert.Empty(t, cfg.Years)
	})
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1"} {
		got, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.True(t, got)
	}
	for _, s := range []string{"no", "False", "0"} {
		got, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.False(t, got)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}

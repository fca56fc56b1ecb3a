package contract

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ceaplens/ceaplens/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
	DefaultPrecision   = 2
	DefaultDataSource  = "public/data"
)

// Config holds the validated runtime configuration. Fields requiring complex
// parsing (facet lists, output mode) are set by ProcessAndValidate after all
// sources (file, env, flags) are merged.
type Config struct {
	DataSource   string // Directory or http(s) base URL holding the dataset JSON
	ResultLimit  int    // Maximum number of deputies to show in results
	Precision    int    // Decimal places for monetary output
	Output       schema.OutputMode
	OutputFile   string // Optional file path for csv/json/parquet output
	Detail       bool   // Include HHI, Benford and supplier columns
	Color        bool   // Colorize risk labels in table output
	StoreBackend schema.StoreBackend
	StoreConnect string // Connection string for mysql/postgresql facet stores

	// Facet overrides from flags. When any of these is non-empty the command
	// works on the given selection instead of the persisted one.
	Years      []int
	States     []string
	Parties    []string
	Categories []string
	Risks      []schema.RiskLevel
	Search     string
}

// Clone returns a deep copy of the Config so per-request overrides never
// leak back into the shared base configuration.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Years = append([]int(nil), c.Years...)
	clone.States = append([]string(nil), c.States...)
	clone.Parties = append([]string(nil), c.Parties...)
	clone.Categories = append([]string(nil), c.Categories...)
	clone.Risks = append([]schema.RiskLevel(nil), c.Risks...)
	return &clone
}

// HasFacetFlags reports whether any facet was provided on the command line.
func (c *Config) HasFacetFlags() bool {
	return len(c.Years) > 0 || len(c.States) > 0 || len(c.Parties) > 0 ||
		len(c.Categories) > 0 || len(c.Risks) > 0
}

// Selections converts the flag-provided facets into the serializable shape.
func (c *Config) Selections() schema.FacetSelections {
	return schema.FacetSelections{
		Years:      c.Years,
		States:     c.States,
		Parties:    c.Parties,
		Categories: c.Categories,
		Risks:      c.Risks,
	}
}

// ConfigRawInput holds the raw, unvalidated configuration from all sources.
// Viper unmarshals into this struct; ProcessAndValidate turns it into Config.
type ConfigRawInput struct {
	DataSource   string `mapstructure:"data"`
	ResultLimit  int    `mapstructure:"limit"`
	Precision    int    `mapstructure:"precision"`
	Output       string `mapstructure:"output"`
	OutputFile   string `mapstructure:"output-file"`
	Detail       bool   `mapstructure:"detail"`
	Color        string `mapstructure:"color"`
	StoreBackend string `mapstructure:"store-backend"`
	StoreConnect string `mapstructure:"store-connect"`
	Years        string `mapstructure:"year"`
	States       string `mapstructure:"uf"`
	Parties      string `mapstructure:"party"`
	Categories   string `mapstructure:"category"`
	Risks        string `mapstructure:"risk"`
	Search       string `mapstructure:"search"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and populates the final Config.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// --- 1. ResultLimit ---
	if input.ResultLimit <= 0 || input.ResultLimit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.ResultLimit)
	}
	cfg.ResultLimit = input.ResultLimit

	// --- 2. Precision ---
	if input.Precision < 0 || input.Precision > 4 {
		return fmt.Errorf("precision must be between 0 and 4 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	// --- 3. Output mode ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	cfg.OutputFile = input.OutputFile
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	// --- 4. Color ---
	colorOn, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid color setting: %w", err)
	}
	cfg.Color = colorOn
	cfg.Detail = input.Detail

	// --- 5. Store backend ---
	cfg.StoreBackend = schema.StoreBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidStoreBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreConnect = input.StoreConnect

	// --- 6. Data source ---
	cfg.DataSource = input.DataSource
	if cfg.DataSource == "" {
		cfg.DataSource = DefaultDataSource
	}

	// --- 7. Facet lists ---
	years, err := parseYearList(input.Years)
	if err != nil {
		return err
	}
	cfg.Years = years
	cfg.States = splitList(input.States, strings.ToUpper)
	cfg.Parties = splitList(input.Parties, strings.ToUpper)
	cfg.Categories = splitList(input.Categories, nil)

	risks, err := parseRiskList(input.Risks)
	if err != nil {
		return err
	}
	cfg.Risks = risks
	cfg.Search = strings.TrimSpace(input.Search)

	return nil
}

// RevalidateFacets parses facet override strings into an already-validated
// Config. Used by callers that receive facets after the initial validation
// pass, such as MCP tool requests.
func RevalidateFacets(cfg *Config, years, states, parties, categories, risks, search string) error {
	parsedYears, err := parseYearList(years)
	if err != nil {
		return err
	}
	parsedRisks, err := parseRiskList(risks)
	if err != nil {
		return err
	}
	cfg.Years = parsedYears
	cfg.States = splitList(states, strings.ToUpper)
	cfg.Parties = splitList(parties, strings.ToUpper)
	cfg.Categories = splitList(categories, nil)
	cfg.Risks = parsedRisks
	cfg.Search = strings.TrimSpace(search)
	return nil
}

// splitList splits a comma-separated flag value, trimming blanks and applying
// an optional normalizer.
func splitList(raw string, normalize func(string) string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if normalize != nil {
			part = normalize(part)
		}
		out = append(out, part)
	}
	return out
}

// parseYearList parses a comma-separated list of four-digit years.
func parseYearList(raw string) ([]int, error) {
	var years []int
	for _, part := range splitList(raw, nil) {
		year, err := strconv.Atoi(part)
		if err != nil || year < 2000 || year > 2100 {
			return nil, fmt.Errorf("invalid year '%s'. must be a four-digit year", part)
		}
		years = append(years, year)
	}
	return years, nil
}

// parseRiskList parses a comma-separated list of risk tier labels.
func parseRiskList(raw string) ([]schema.RiskLevel, error) {
	var risks []schema.RiskLevel
	for _, part := range splitList(raw, strings.ToUpper) {
		level := schema.RiskLevel(part)
		if _, ok := schema.ValidRiskLevels[level]; !ok {
			return nil, fmt.Errorf("invalid risk tier '%s'. must be %s", part, strings.Join(schema.RiskLabels(), ", "))
		}
		risks = append(risks, level)
	}
	return risks, nil
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

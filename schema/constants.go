package schema

// Custom string types for type safety.
type (
	// RiskLevel represents a deputy's ordinal risk tier.
	RiskLevel string

	// FacetKind represents one filterable dimension.
	FacetKind string

	// OutputMode represents the format of the output.
	OutputMode string

	// AnomalyType represents the classification of a timeline point.
	AnomalyType string

	// StoreBackend represents the database backend for facet persistence.
	StoreBackend string
)

// All risk tiers, lowest to highest. The labels come from the upstream
// pipeline and are kept verbatim so records round-trip untouched.
const (
	RiskLow      RiskLevel = "BAIXO"
	RiskModerate RiskLevel = "MEDIO"
	RiskHigh     RiskLevel = "ALTO"
	RiskCritical RiskLevel = "CRITICO"
)

// All facet kinds supported by the filter state.
const (
	FacetYear     FacetKind = "year"
	FacetState    FacetKind = "state"
	FacetParty    FacetKind = "party"
	FacetCategory FacetKind = "category"
	FacetRisk     FacetKind = "risk"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All anomaly types. Extreme variants take precedence over the plain
// spike/drop when both thresholds are crossed.
const (
	AnomalyNone         AnomalyType = "none"
	AnomalySpike        AnomalyType = "spike"
	AnomalyDrop         AnomalyType = "drop"
	AnomalyExtremeSpike AnomalyType = "extreme-spike"
	AnomalyExtremeDrop  AnomalyType = "extreme-drop"
)

// All facet store backends supported.
const (
	SQLiteBackend     StoreBackend = "sqlite" // default
	MySQLBackend      StoreBackend = "mysql"
	PostgreSQLBackend StoreBackend = "postgresql"
	NoneBackend       StoreBackend = "none"
)

// AllRiskLevels lists the risk tiers in ascending severity order.
var AllRiskLevels = []RiskLevel{RiskLow, RiskModerate, RiskHigh, RiskCritical}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidRiskLevels lists all valid risk tiers.
var ValidRiskLevels = map[RiskLevel]struct{}{
	RiskLow:      {},
	RiskModerate: {},
	RiskHigh:     {},
	RiskCritical: {},
}

// ValidStoreBackends lists all valid facet store backends.
var ValidStoreBackends = map[StoreBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// riskOrder maps each tier to its severity rank for sorting and comparison.
var riskOrder = map[RiskLevel]int{
	RiskLow:      0,
	RiskModerate: 1,
	RiskHigh:     2,
	RiskCritical: 3,
}

// Severity returns the ordinal rank of a risk tier (0 = lowest).
// Unknown tiers rank below every known tier.
func (r RiskLevel) Severity() int {
	if rank, ok := riskOrder[r]; ok {
		return rank
	}
	return -1
}

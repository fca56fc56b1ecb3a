package schema

// Snapshot is an aggregation snapshot over a deputy population: grand totals
// plus the four cross-sectional rollups. The baseline snapshot ships with the
// dataset; derived snapshots are rebuilt whenever filters are active.
type Snapshot struct {
	Meta       SnapshotMeta    `json:"meta"`
	ByMonth    []MonthPoint    `json:"byMonth"`
	ByCategory []CategoryTotal `json:"byCategory"`
	ByParty    []PartyTotal    `json:"byParty"`
	ByState    []StateTotal    `json:"byState"`
}

// SnapshotMeta holds the grand totals and provenance of a snapshot.
type SnapshotMeta struct {
	TotalTransactions int     `json:"totalTransactions"`
	TotalSpending     float64 `json:"totalSpending"`
	TotalDeputies     int     `json:"totalDeputies"`
	TotalSuppliers    int     `json:"totalSuppliers"`
	Period            Period  `json:"period"`
	LastUpdated       string  `json:"lastUpdated"`
}

// Period is an inclusive month-key range.
type Period struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// CategoryTotal is a by-category rollup entry. Pct is relative to the summed
// category total, not the grand total, so it stays meaningful when category
// filters are active.
type CategoryTotal struct {
	Category         string  `json:"category"`
	Value            float64 `json:"value"`
	TransactionCount int     `json:"transactionCount"`
	Pct              float64 `json:"pct"`
}

// PartyTotal is a by-party rollup entry.
type PartyTotal struct {
	Party        string  `json:"party"`
	Value        float64 `json:"value"`
	DeputyCount  int     `json:"deputyCount"`
	AvgPerDeputy float64 `json:"avgPerDeputy"`
}

// StateTotal is a by-state rollup entry.
type StateTotal struct {
	UF           string  `json:"uf"`
	Value        float64 `json:"value"`
	DeputyCount  int     `json:"deputyCount"`
	AvgPerDeputy float64 `json:"avgPerDeputy"`
}

// EmptySnapshot returns a zero-valued snapshot with non-nil rollup slices.
// Used as the fail-soft default when the baseline resource is unavailable,
// so dependent computations degrade to empty results instead of crashing.
func EmptySnapshot() *Snapshot {
	return &Snapshot{
		ByMonth:    []MonthPoint{},
		ByCategory: []CategoryTotal{},
		ByParty:    []PartyTotal{},
		ByState:    []StateTotal{},
	}
}

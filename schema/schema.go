// Package schema has models, constants and helpers for all parts of ceaplens.
package schema

// Deputy represents a single legislator record from the prepared dataset.
// Identity and lifetime metrics are computed upstream and never mutated here;
// filtering and recomputation always produce derived copies.
type Deputy struct {
	ID               int                 `json:"id"`
	Name             string              `json:"name"`
	Party            string              `json:"party"`
	UF               string              `json:"uf"`
	TotalSpending    float64             `json:"totalSpending"`
	TransactionCount int                 `json:"transactionCount"`
	AvgTicket        float64             `json:"avgTicket"`
	SupplierCount    int                 `json:"supplierCount"`
	SupplierCnpjs    []string            `json:"supplierCnpjs,omitempty"` // Unique supplier identifiers for exact dedup
	HHI              ConcentrationIndex  `json:"hhi"`
	Benford          BenfordResult       `json:"benford"`
	RoundValuePct    float64             `json:"roundValuePct"`
	RiskScore        float64             `json:"riskScore"`
	RiskLevel        RiskLevel           `json:"riskLevel"`
	TopSuppliers     []TopSupplier       `json:"topSuppliers"`
	RedFlags         []string            `json:"redFlags"`
	ByCategory       []CategoryBreakdown `json:"byCategory,omitempty"` // Absent on older records
	ByMonth          []MonthPoint        `json:"byMonth,omitempty"`    // Absent on older records
}

// ConcentrationIndex is the supplier concentration indicator (HHI) with its
// qualitative level, both computed upstream.
type ConcentrationIndex struct {
	Value float64 `json:"value"`
	Level string  `json:"level"`
}

// BenfordResult is the first-digit anomaly test baked into each record.
// Consumed as an opaque input; ceaplens never recomputes it.
type BenfordResult struct {
	Chi2        float64 `json:"chi2"`
	PValue      float64 `json:"pValue"`
	Significant bool    `json:"significant"`
}

// TopSupplier is one entry in a deputy's ordered top-supplier list.
type TopSupplier struct {
	Name  string  `json:"name"`
	Cnpj  string  `json:"cnpj"`
	Value float64 `json:"value"`
	Pct   float64 `json:"pct"`
}

// MonthPoint is one per-month breakdown entry. Month keys are zero-padded
// "YYYY-MM" strings, so lexicographic order equals chronological order.
type MonthPoint struct {
	Month            string  `json:"month"`
	Value            float64 `json:"value"`
	TransactionCount int     `json:"transactionCount"`
}

// CategoryBreakdown is one per-category breakdown entry.
type CategoryBreakdown struct {
	Category         string  `json:"category"`
	Value            float64 `json:"value"`
	TransactionCount int     `json:"transactionCount"`
	Pct              float64 `json:"pct"`
}

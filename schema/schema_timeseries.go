package schema

// SeriesStats holds the distributional statistics of a monthly series.
type SeriesStats struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stdDev"` // Population standard deviation
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Sum    float64 `json:"sum"`
	Count  int     `json:"count"`
	Median float64 `json:"median"`
}

// EnrichedMonthPoint wraps one monthly series entry with computed statistics,
// rank information and anomaly classification. Derived fresh on every call.
type EnrichedMonthPoint struct {
	MonthPoint
	Year         int         `json:"year"`
	MonthIndex   int         `json:"monthIndex"` // Zero-based calendar month
	Deviation    float64     `json:"deviation"`  // Standard deviations from the series mean
	DeviationPct float64     `json:"deviationPct"`
	Rank         int         `json:"rank"` // 1 = highest value
	RankLabel    string      `json:"rankLabel"`
	IsAnomaly    bool        `json:"isAnomaly"`
	IsSpike      bool        `json:"isSpike"`
	IsDrop       bool        `json:"isDrop"`
	IsExtreme    bool        `json:"isExtreme"`
	AnomalyType  AnomalyType `json:"anomalyType"`
}

// YearSummary aggregates a monthly series over one calendar year.
// GrowthPct is relative to the immediately preceding year present in the
// data; nil when there is no prior year or the prior total is zero.
type YearSummary struct {
	Year        int      `json:"year"`
	Total       float64  `json:"total"`
	Mean        float64  `json:"mean"`
	MonthCount  int      `json:"monthCount"`
	PeakMonth   string   `json:"peakMonth"`
	LowestMonth string   `json:"lowestMonth"`
	GrowthPct   *float64 `json:"growthPct"`
}

// CalendarNote is a fixed, data-independent annotation attached to a
// recurring calendar month (legislative recess, fiscal year-end).
type CalendarNote struct {
	Month string `json:"month"` // "YYYY-MM" key the note applies to
	Label string `json:"label"`
}

// EnrichedSeries bundles everything the timeline surface renders.
type EnrichedSeries struct {
	Points []EnrichedMonthPoint `json:"points"`
	Stats  SeriesStats          `json:"stats"`
	Years  []YearSummary        `json:"years"`
	Notes  []CalendarNote       `json:"notes"`
}

// Package parquet exports deputy rankings and enriched timeline series to
// Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"

	"github.com/ceaplens/ceaplens/schema"
	"github.com/parquet-go/parquet-go"
)

// DeputyRow is the flat Parquet projection of a deputy record. Nested
// breakdowns are dropped; scalar metrics carry over one to one.
type DeputyRow struct {
	// ID is the chamber-assigned deputy identifier
	ID int64 `parquet:"id,snappy"`

	// Name is the deputy display name
	Name string `parquet:"name,snappy"`

	// Party is the party acronym at dataset build time
	Party string `parquet:"party,snappy"`

	// UF is the two-letter state code
	UF string `parquet:"uf,snappy"`

	// TotalSpending is the reimbursed total in BRL
	TotalSpending float64 `parquet:"total_spending,snappy"`

	// TransactionCount is the number of reimbursement records
	TransactionCount int32 `parquet:"transaction_count,snappy"`

	// AvgTicket is TotalSpending divided by TransactionCount
	AvgTicket float64 `parquet:"avg_ticket,snappy"`

	// SupplierCount is the number of distinct suppliers billed
	SupplierCount int32 `parquet:"supplier_count,snappy"`

	// HHIValue is the supplier concentration index
	HHIValue float64 `parquet:"hhi_value,snappy"`

	// HHILevel is the qualitative concentration tier
	HHILevel string `parquet:"hhi_level,snappy"`

	// BenfordChi2 is the first-digit distribution test statistic
	BenfordChi2 float64 `parquet:"benford_chi2,snappy"`

	// BenfordSignificant marks a statistically significant deviation
	BenfordSignificant bool `parquet:"benford_significant,snappy"`

	// RoundValuePct is the share of suspiciously round transaction values
	RoundValuePct float64 `parquet:"round_value_pct,snappy"`

	// RiskScore is the composite risk score
	RiskScore float64 `parquet:"risk_score,snappy"`

	// RiskLevel is the risk tier label
	RiskLevel string `parquet:"risk_level,snappy"`
}

// TimelineRow is the flat Parquet projection of one enriched month point.
type TimelineRow struct {
	// Month is the zero-padded "YYYY-MM" key
	Month string `parquet:"month,snappy"`

	// Year is the calendar year parsed from the month key
	Year int32 `parquet:"year,snappy"`

	// Value is the spending total for the month in BRL
	Value float64 `parquet:"value,snappy"`

	// TransactionCount is the number of records in the month
	TransactionCount int32 `parquet:"transaction_count,snappy"`

	// Deviation is the distance from the series mean in standard deviations
	Deviation float64 `parquet:"deviation,snappy"`

	// DeviationPct is the percent distance from the series mean
	DeviationPct float64 `parquet:"deviation_pct,snappy"`

	// Rank orders months by value, 1 = highest
	Rank int32 `parquet:"rank,snappy"`

	// RankLabel is the human-readable rank description
	RankLabel string `parquet:"rank_label,snappy"`

	// AnomalyType classifies the point (nullable, absent for normal months)
	AnomalyType *string `parquet:"anomaly_type,optional,snappy"`
}

// WriteDeputies writes ranked deputies to a Parquet file.
func WriteDeputies(deputies []schema.Deputy, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Schema is inferred from the DeputyRow struct tags
	writer := parquet.NewGenericWriter[DeputyRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(convertDeputies(deputies)); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}

// WriteTimeline writes an enriched monthly series to a Parquet file.
func WriteTimeline(points []schema.EnrichedMonthPoint, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[TimelineRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(convertTimeline(points)); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}

func convertDeputies(deputies []schema.Deputy) []DeputyRow {
	result := make([]DeputyRow, len(deputies))
	for i, d := range deputies {
		result[i] = DeputyRow{
			ID:                 int64(d.ID),
			Name:               d.Name,
			Party:              d.Party,
			UF:                 d.UF,
			TotalSpending:      d.TotalSpending,
			TransactionCount:   int32(d.TransactionCount),
			AvgTicket:          d.AvgTicket,
			SupplierCount:      int32(d.SupplierCount),
			HHIValue:           d.HHI.Value,
			HHILevel:           d.HHI.Level,
			BenfordChi2:        d.Benford.Chi2,
			BenfordSignificant: d.Benford.Significant,
			RoundValuePct:      d.RoundValuePct,
			RiskScore:          d.RiskScore,
			RiskLevel:          string(d.RiskLevel),
		}
	}
	return result
}

func convertTimeline(points []schema.EnrichedMonthPoint) []TimelineRow {
	result := make([]TimelineRow, len(points))
	for i, p := range points {
		var anomaly *string
		if p.AnomalyType != schema.AnomalyNone {
			s := string(p.AnomalyType)
			anomaly = &s
		}
		result[i] = TimelineRow{
			Month:            p.Month,
			Year:             int32(p.Year),
			Value:            p.Value,
			TransactionCount: int32(p.TransactionCount),
			Deviation:        p.Deviation,
			DeviationPct:     p.DeviationPct,
			Rank:             int32(p.Rank),
			RankLabel:        p.RankLabel,
			AnomalyType:      anomaly,
		}
	}
	return result
}

package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceaplens/ceaplens/schema"
)

func sampleDeputies() []schema.Deputy {
	return []schema.Deputy{
		{
			ID:               42,
			Name:             "Ana Souza",
			Party:            "PT",
			UF:               "SP",
			TotalSpending:    300000,
			TransactionCount: 120,
			AvgTicket:        2500,
			SupplierCount:    14,
			HHI:              schema.ConcentrationIndex{Value: 0.31, Level: "moderado"},
			Benford:          schema.BenfordResult{Chi2: 18.4, PValue: 0.02, Significant: true},
			RoundValuePct:    7.5,
			RiskScore:        61.2,
			RiskLevel:        schema.RiskHigh,
		},
		{
			ID:               77,
			Name:             "Bruno Lima",
			Party:            "MDB",
			UF:               "RJ",
			TotalSpending:    150000,
			TransactionCount: 50,
			AvgTicket:        3000,
			SupplierCount:    6,
			HHI:              schema.ConcentrationIndex{Value: 0.12, Level: "baixo"},
			Benford:          schema.BenfordResult{Chi2: 4.1, PValue: 0.85, Significant: false},
			RoundValuePct:    1.2,
			RiskScore:        22.7,
			RiskLevel:        schema.RiskLow,
		},
	}
}

func samplePoints() []schema.EnrichedMonthPoint {
	return []schema.EnrichedMonthPoint{
		{
			MonthPoint:   schema.MonthPoint{Month: "2023-03", Value: 100000, TransactionCount: 40},
			Year:         2023,
			MonthIndex:   2,
			Deviation:    3.2,
			DeviationPct: 180.0,
			Rank:         1,
			RankLabel:    "1st highest",
			IsAnomaly:    true,
			IsSpike:      true,
			IsExtreme:    true,
			AnomalyType:  schema.AnomalyExtremeSpike,
		},
		{
			MonthPoint:   schema.MonthPoint{Month: "2023-04", Value: 32000, TransactionCount: 15},
			Year:         2023,
			MonthIndex:   3,
			Deviation:    -0.4,
			DeviationPct: -12.0,
			Rank:         2,
			RankLabel:    "2nd highest",
			AnomalyType:  schema.AnomalyNone,
		},
	}
}

func TestDeputyRowStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	pqSchema := parquet.SchemaOf(new(DeputyRow))
	require.NotNil(t, pqSchema)

	expectedColumns := []string{
		"id",
		"name",
		"party",
		"uf",
		"total_spending",
		"transaction_count",
		"avg_ticket",
		"supplier_count",
		"hhi_value",
		"hhi_level",
		"benford_chi2",
		"benford_significant",
		"round_value_pct",
		"risk_score",
		"risk_level",
	}

	for _, colName := range expectedColumns {
		col, ok := pqSchema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestTimelineRowStructTags(t *testing.T) {
	pqSchema := parquet.SchemaOf(new(TimelineRow))
	require.NotNil(t, pqSchema)

	expectedColumns := []string{
		"month",
		"year",
		"value",
		"transaction_count",
		"deviation",
		"deviation_pct",
		"rank",
		"rank_label",
		"anomaly_type",
	}

	for _, colName := range expectedColumns {
		col, ok := pqSchema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestConvertDeputies(t *testing.T) {
	rows := convertDeputies(sampleDeputies())
	require.Len(t, rows, 2)

	assert.Equal(t, int64(42), rows[0].ID)
	assert.Equal(t, "Ana Souza", rows[0].Name)
	assert.Equal(t, "PT", rows[0].Party)
	assert.Equal(t, "SP", rows[0].UF)
	assert.Equal(t, int32(120), rows[0].TransactionCount)
	assert.Equal(t, int32(14), rows[0].SupplierCount)
	assert.Equal(t, 0.31, rows[0].HHIValue)
	assert.Equal(t, "moderado", rows[0].HHILevel)
	assert.Equal(t, 18.4, rows[0].BenfordChi2)
	assert.True(t, rows[0].BenfordSignificant)
	assert.Equal(t, "ALTO", rows[0].RiskLevel)

	assert.Equal(t, "BAIXO", rows[1].RiskLevel)
	assert.False(t, rows[1].BenfordSignificant)
}

func TestConvertTimeline(t *testing.T) {
	rows := convertTimeline(samplePoints())
	require.Len(t, rows, 2)

	assert.Equal(t, "2023-03", rows[0].Month)
	assert.Equal(t, int32(2023), rows[0].Year)
	assert.Equal(t, int32(1), rows[0].Rank)
	require.NotNil(t, rows[0].AnomalyType, "anomalous month should carry its type")
	assert.Equal(t, "extreme-spike", *rows[0].AnomalyType)

	// Normal months map to a null anomaly column, not the "none" sentinel
	assert.Nil(t, rows[1].AnomalyType)
}

func TestWriteDeputies(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "deputies.parquet")

	data := sampleDeputies()
	err := WriteDeputies(data, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	// Read back and verify data
	file, err := os.Open(outputPath)
	require.NoError(t, err, "Should be able to open output file")
	defer file.Close()

	reader := parquet.NewGenericReader[DeputyRow](file)
	defer reader.Close()

	readData := make([]DeputyRow, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	require.Equal(t, len(data), n, "Should read all records")

	for i := range data {
		assert.Equal(t, int64(data[i].ID), readData[i].ID, "ID should match")
		assert.Equal(t, data[i].Name, readData[i].Name, "Name should match")
		assert.InDelta(t, data[i].TotalSpending, readData[i].TotalSpending, 0.001, "TotalSpending should match")
		assert.InDelta(t, data[i].RiskScore, readData[i].RiskScore, 0.001, "RiskScore should match")
		assert.Equal(t, string(data[i].RiskLevel), readData[i].RiskLevel, "RiskLevel should match")
	}
}

func TestWriteTimeline(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "timeline.parquet")

	data := samplePoints()
	err := WriteTimeline(data, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	file, err := os.Open(outputPath)
	require.NoError(t, err, "Should be able to open output file")
	defer file.Close()

	reader := parquet.NewGenericReader[TimelineRow](file)
	defer reader.Close()

	readData := make([]TimelineRow, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	require.Equal(t, len(data), n, "Should read all records")

	assert.Equal(t, "2023-03", readData[0].Month)
	require.NotNil(t, readData[0].AnomalyType, "AnomalyType should survive the round trip")
	assert.Equal(t, "extreme-spike", *readData[0].AnomalyType)
	assert.Nil(t, readData[1].AnomalyType, "AnomalyType should stay null for normal months")
}

func TestWriteDeputies_EmptyData(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "empty_deputies.parquet")

	err := WriteDeputies([]schema.Deputy{}, outputPath)
	require.NoError(t, err, "Writing empty data should not produce error")

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.GreaterOrEqual(t, info.Size(), int64(0))
}

func TestWriteDeputies_InvalidPath(t *testing.T) {
	err := WriteDeputies(sampleDeputies(), filepath.Join(t.TempDir(), "missing", "out.parquet"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create output file")
}

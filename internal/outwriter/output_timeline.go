package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/ceaplens/ceaplens/internal/contract"
	"github.com/ceaplens/ceaplens/internal/parquet"
	"github.com/ceaplens/ceaplens/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintTimeline outputs the enriched monthly series, dispatching based on
// the configured output format.
func PrintTimeline(series schema.EnrichedSeries, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONTimeline(series, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVTimeline(series, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := parquet.WriteTimeline(series.Points, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote Parquet to %s\n", cfg.OutputFile)
	default:
		if err := printTimelineTable(series, cfg, fmtFloat, duration); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// printJSONTimeline handles opening the file and calling the JSON writer.
func printJSONTimeline(series schema.EnrichedSeries, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, series)
	}, "JSON")
}

// printCSVTimeline writes one row per enriched point.
func printCSVTimeline(series schema.EnrichedSeries, cfg *contract.Config, fmtFloat func(float64) string) error {
	header := []string{"month", "value", "transactions", "deviation", "deviation_pct", "rank", "rank_label", "anomaly_type"}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSV(w, header, func(cw *csv.Writer) error {
			for _, p := range series.Points {
				row := []string{
					p.Month,
					fmtFloat(p.Value),
					strconv.Itoa(p.TransactionCount),
					fmt.Sprintf("%.2f", p.Deviation),
					fmt.Sprintf("%.1f", p.DeviationPct),
					strconv.Itoa(p.Rank),
					p.RankLabel,
					string(p.AnomalyType),
				}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
			return nil
		})
	}, "CSV")
}

// printTimelineTable renders the enriched series as a console table followed
// by the year summaries and calendar annotations.
func printTimelineTable(series schema.EnrichedSeries, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Month", "Value", "Txns", "Deviation", "Rank", "Anomaly"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, p := range series.Points {
		anomaly := string(p.AnomalyType)
		if cfg.Color && p.IsAnomaly {
			if p.IsExtreme {
				anomaly = contract.CriticalColor.Sprint(anomaly)
			} else {
				anomaly = contract.ModerateColor.Sprint(anomaly)
			}
		}
		data = append(data, []string{
			p.Month,
			fmtFloat(p.Value),
			strconv.Itoa(p.TransactionCount),
			fmt.Sprintf("%+.2f", p.Deviation),
			p.RankLabel,
			anomaly,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Printf("Mean %s | stddev %s | median %s | %d months\n",
		fmtFloat(series.Stats.Mean), fmtFloat(series.Stats.StdDev),
		fmtFloat(series.Stats.Median), series.Stats.Count)

	for _, y := range series.Years {
		growth := "n/a"
		if y.GrowthPct != nil {
			growth = fmt.Sprintf("%+.1f%%", *y.GrowthPct)
		}
		fmt.Printf("%d: total %s, peak %s, low %s, YoY %s\n",
			y.Year, fmtFloat(y.Total), y.PeakMonth, y.LowestMonth, growth)
	}
	for _, note := range series.Notes {
		fmt.Printf("note %s: %s\n", note.Month, note.Label)
	}
	fmt.Printf("Completed in %v\n", duration)
	return nil
}

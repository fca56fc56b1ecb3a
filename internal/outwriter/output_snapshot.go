package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/ceaplens/ceaplens/internal/contract"
	"github.com/ceaplens/ceaplens/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintSnapshot outputs an aggregation snapshot, dispatching based on the
// configured output format. Parquet is not offered here: a snapshot is a
// nested shape and the columnar export covers the deputy and timeline lists.
func PrintSnapshot(snap *schema.Snapshot, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONSnapshot(snap, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVSnapshot(snap, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for summary; use deputies or timeline")
	default:
		if err := printSnapshotTables(snap, cfg, fmtFloat, duration); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// printJSONSnapshot handles opening the file and calling the JSON writer.
func printJSONSnapshot(snap *schema.Snapshot, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, snap)
	}, "JSON")
}

// printCSVSnapshot flattens every rollup into a single dimension/key/value
// CSV so the output stays greppable.
func printCSVSnapshot(snap *schema.Snapshot, cfg *contract.Config, fmtFloat func(float64) string) error {
	header := []string{"dimension", "key", "value", "transactions", "deputies", "pct"}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSV(w, header, func(cw *csv.Writer) error {
			for _, m := range snap.ByMonth {
				if err := cw.Write([]string{"month", m.Month, fmtFloat(m.Value), strconv.Itoa(m.TransactionCount), "", ""}); err != nil {
					return err
				}
			}
			for _, c := range snap.ByCategory {
				if err := cw.Write([]string{"category", c.Category, fmtFloat(c.Value), strconv.Itoa(c.TransactionCount), "", fmtFloat(c.Pct)}); err != nil {
					return err
				}
			}
			for _, p := range snap.ByParty {
				if err := cw.Write([]string{"party", p.Party, fmtFloat(p.Value), "", strconv.Itoa(p.DeputyCount), ""}); err != nil {
					return err
				}
			}
			for _, s := range snap.ByState {
				if err := cw.Write([]string{"state", s.UF, fmtFloat(s.Value), "", strconv.Itoa(s.DeputyCount), ""}); err != nil {
					return err
				}
			}
			return nil
		})
	}, "CSV")
}

// printSnapshotTables renders the grand totals plus the party and category
// rollups as console tables.
func printSnapshotTables(snap *schema.Snapshot, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	fmt.Printf("Period %s to %s | spending %s | transactions %d | deputies %d | suppliers %d\n\n",
		snap.Meta.Period.Start, snap.Meta.Period.End,
		fmtFloat(snap.Meta.TotalSpending), snap.Meta.TotalTransactions,
		snap.Meta.TotalDeputies, snap.Meta.TotalSuppliers)

	if len(snap.ByParty) > 0 {
		table := tablewriter.NewWriter(os.Stdout)
		table.Header([]string{"Party", "Spending", "Deputies", "Avg/Deputy"})
		table.Configure(func(tcfg *tablewriter.Config) {
			tcfg.Row.Alignment.Global = tw.AlignRight
		})
		var data [][]string
		for _, p := range snap.ByParty {
			data = append(data, []string{p.Party, fmtFloat(p.Value), strconv.Itoa(p.DeputyCount), fmtFloat(p.AvgPerDeputy)})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	if len(snap.ByCategory) > 0 {
		table := tablewriter.NewWriter(os.Stdout)
		table.Header([]string{"Category", "Spending", "Txns", "Share"})
		table.Configure(func(tcfg *tablewriter.Config) {
			tcfg.Row.Alignment.Global = tw.AlignRight
		})
		nameWidth := GetMaxNameWidth(false)
		var data [][]string
		for _, c := range snap.ByCategory {
			data = append(data, []string{
				contract.TruncateLabel(c.Category, nameWidth),
				fmtFloat(c.Value),
				strconv.Itoa(c.TransactionCount),
				fmt.Sprintf("%.1f%%", c.Pct),
			})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	fmt.Printf("Completed in %v\n", duration)
	return nil
}

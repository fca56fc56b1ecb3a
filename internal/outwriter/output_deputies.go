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

// PrintDeputyResults outputs the ranked deputy list, dispatching based on the
// configured output format.
func PrintDeputyResults(deputies []schema.Deputy, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, fmtPct := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONDeputies(deputies, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVDeputies(deputies, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := parquet.WriteDeputies(deputies, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote Parquet to %s\n", cfg.OutputFile)
	default:
		// Default to human-readable table
		if err := printDeputyTable(deputies, cfg, fmtFloat, fmtPct, duration); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// printJSONDeputies handles opening the file and calling the JSON writer.
func printJSONDeputies(deputies []schema.Deputy, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, deputies)
	}, "JSON")
}

// printCSVDeputies writes one row per deputy with the scalar metrics.
func printCSVDeputies(deputies []schema.Deputy, cfg *contract.Config, fmtFloat func(float64) string) error {
	header := []string{"rank", "name", "party", "uf", "total_spending", "transactions", "avg_ticket", "suppliers", "hhi", "risk_score", "risk_level"}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSV(w, header, func(cw *csv.Writer) error {
			for i, d := range deputies {
				row := []string{
					strconv.Itoa(i + 1),
					d.Name,
					d.Party,
					d.UF,
					fmtFloat(d.TotalSpending),
					strconv.Itoa(d.TransactionCount),
					fmtFloat(d.AvgTicket),
					strconv.Itoa(d.SupplierCount),
					fmtFloat(d.HHI.Value),
					fmtFloat(d.RiskScore),
					contract.GetPlainRiskLabel(d.RiskLevel),
				}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
			return nil
		})
	}, "CSV")
}

// printDeputyTable renders the deputy list as a console table.
func printDeputyTable(deputies []schema.Deputy, cfg *contract.Config, fmtFloat func(float64) string, fmtPct func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(os.Stdout)

	headers := []string{"Rank", "Name", "Party", "UF", "Spending", "Txns", "Avg Ticket", "Risk"}
	if cfg.Detail {
		headers = append(headers, "HHI", "Benford", "Suppliers", "Round %")
	}
	table.Header(headers)

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := GetMaxNameWidth(cfg.Detail)
	var data [][]string
	for i, d := range deputies {
		label := contract.GetPlainRiskLabel(d.RiskLevel)
		if cfg.Color {
			label = contract.GetColorRiskLabel(d.RiskLevel)
		}
		row := []string{
			strconv.Itoa(i + 1),
			contract.TruncateLabel(d.Name, nameWidth),
			d.Party,
			d.UF,
			fmtFloat(d.TotalSpending),
			strconv.Itoa(d.TransactionCount),
			fmtFloat(d.AvgTicket),
			label,
		}
		if cfg.Detail {
			benford := "-"
			if d.Benford.Significant {
				benford = fmt.Sprintf("chi2=%s", fmtFloat(d.Benford.Chi2))
			}
			row = append(row,
				fmtFloat(d.HHI.Value),
				benford,
				strconv.Itoa(d.SupplierCount),
				fmtPct(d.RoundValuePct),
			)
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	var totalSpending float64
	totalTxns := 0
	for _, d := range deputies {
		totalSpending += d.TotalSpending
		totalTxns += d.TransactionCount
	}
	fmt.Printf("Showing top %d deputies (spending: %s, transactions: %d)\n", len(deputies), fmtFloat(totalSpending), totalTxns)
	fmt.Printf("Completed in %v\n", duration)
	return nil
}

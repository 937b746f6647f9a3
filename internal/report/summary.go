// Package report renders ledger and aggregator output into the
// external-facing formats: the summary report file, export files and
// chart-ready series.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"tally/internal/stats"
)

// WriteSummary writes the per-category rollup as a tabular report with
// columns Category, Total_Spent, Count, Percentage.
func WriteSummary(path string, rollups []stats.CategoryRollup) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create summary report: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write([]string{"Category", "Total_Spent", "Count", "Percentage"}); err != nil {
		f.Close()
		return fmt.Errorf("write summary header: %w", err)
	}
	for _, r := range rollups {
		row := []string{
			string(r.Category),
			r.Total.String(),
			strconv.Itoa(r.Count),
			strconv.FormatFloat(r.Percentage, 'f', 1, 64),
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("write summary row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush summary report: %w", err)
	}
	return f.Close()
}

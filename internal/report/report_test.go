package report

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"tally/internal/core"
	applog "tally/internal/log"
	"tally/internal/stats"
)

func testLogger() *applog.Logger {
	return applog.New(applog.Config{Handler: slog.NewTextHandler(io.Discard, nil)})
}

func sampleRecords() []core.ExpenseRecord {
	return []core.ExpenseRecord{
		{
			ID:          "EXP001",
			Date:        core.NewDate(2024, 1, 15),
			Description: "Coffee",
			Category:    core.CategoryFood,
			Amount:      core.MoneyFromFloat(4.50),
		},
		{
			ID:          "EXP002",
			Date:        core.NewDate(2024, 1, 16),
			Description: "Bus ticket",
			Category:    core.CategoryTransport,
			Amount:      core.MoneyFromFloat(2.75),
		},
	}
}

func TestWriteSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary_report.csv")
	rollups := stats.ByCategory(sampleRecords())
	if err := WriteSummary(path, rollups); err != nil {
		t.Fatalf("WriteSummary: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	want := [][]string{
		{"Category", "Total_Spent", "Count", "Percentage"},
		{"Food & Dining", "4.5", "1", "62.1"},
		{"Transportation", "2.75", "1", "37.9"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("summary rows = %v, want %v", rows, want)
	}
}

func TestExportCSV(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(dir, "2006-01-02", testLogger()).
		WithClock(func() time.Time { return time.Date(2024, 1, 20, 9, 30, 0, 0, time.UTC) })

	path, err := e.ExportCSV(sampleRecords())
	if err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}
	if filepath.Base(path) != "expenses_export_20240120_093000.csv" {
		t.Fatalf("export path = %q", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := [][]string{
		{"Date", "Description", "Category", "Amount", "ID"},
		{"2024-01-15", "Coffee", "Food & Dining", "4.5", "EXP001"},
		{"2024-01-16", "Bus ticket", "Transportation", "2.75", "EXP002"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("export rows = %v, want %v", rows, want)
	}
}

func TestExportJSON(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(dir, "2006-01-02", testLogger()).
		WithClock(func() time.Time { return time.Date(2024, 1, 20, 9, 30, 0, 0, time.UTC) })

	path, err := e.ExportJSON(sampleRecords())
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	if filepath.Base(path) != "expenses_export_20240120_093000.json" {
		t.Fatalf("export path = %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var out []map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 objects, got %d", len(out))
	}
	first := out[0]
	if first["Date"] != "2024-01-15" || first["Description"] != "Coffee" || first["ID"] != "EXP001" {
		t.Fatalf("first object = %v", first)
	}
	// Amounts are bare JSON numbers, not quoted strings.
	if amt, ok := first["Amount"].(float64); !ok || amt != 4.5 {
		t.Fatalf("Amount = %v (%T)", first["Amount"], first["Amount"])
	}
}

func TestExportAll(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(dir, "2006-01-02", testLogger()).
		WithClock(func() time.Time { return time.Date(2024, 1, 20, 9, 30, 0, 0, time.UTC) })

	paths, err := e.ExportAll(context.Background(), sampleRecords())
	if err != nil {
		t.Fatalf("ExportAll: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 paths, got %v", paths)
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("export file missing: %v", err)
		}
	}
}

func TestSeries(t *testing.T) {
	records := sampleRecords()

	got := CategorySeries(stats.ByCategory(records))
	if !reflect.DeepEqual(got.Labels, []string{"Food & Dining", "Transportation"}) {
		t.Fatalf("category labels = %v", got.Labels)
	}
	if !reflect.DeepEqual(got.Values, []float64{4.5, 2.75}) {
		t.Fatalf("category values = %v", got.Values)
	}

	monthly := MonthlySeries(stats.ByMonth(records))
	if !reflect.DeepEqual(monthly.Labels, []string{"2024-01"}) {
		t.Fatalf("month labels = %v", monthly.Labels)
	}
	if !reflect.DeepEqual(monthly.Values, []float64{7.25}) {
		t.Fatalf("month values = %v", monthly.Values)
	}
}

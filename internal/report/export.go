package report

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"tally/internal/core"
	applog "tally/internal/log"
)

const exportStamp = "20060102_150405"

// exportRecord is the record-oriented export shape: column names match
// the primary store, dates rendered as plain strings.
type exportRecord struct {
	Date        string        `json:"Date"`
	Description string        `json:"Description"`
	Category    core.Category `json:"Category"`
	Amount      core.Money    `json:"Amount"`
	ID          string        `json:"ID"`
}

// Exporter writes timestamped export files into the reports directory.
type Exporter struct {
	reportsDir string
	layout     string // Go time layout for rendered dates
	logger     *applog.Logger
	clock      func() time.Time
}

func NewExporter(reportsDir, layout string, logger *applog.Logger) *Exporter {
	return &Exporter{
		reportsDir: reportsDir,
		layout:     layout,
		logger:     logger.WithComponent(applog.ComponentReport),
		clock:      time.Now,
	}
}

// WithClock overrides the timestamp source for export filenames.
func (e *Exporter) WithClock(clock func() time.Time) *Exporter {
	e.clock = clock
	return e
}

// ExportCSV writes the records in the primary store schema. Returns the
// written file path.
func (e *Exporter) ExportCSV(records []core.ExpenseRecord) (string, error) {
	path := e.exportPath("csv")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write([]string{"Date", "Description", "Category", "Amount", "ID"}); err != nil {
		f.Close()
		return "", fmt.Errorf("write export header: %w", err)
	}
	for _, rec := range records {
		row := []string{
			rec.Date.Format(e.layout),
			rec.Description,
			string(rec.Category),
			rec.Amount.String(),
			rec.ID,
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return "", fmt.Errorf("write export row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return "", fmt.Errorf("flush export: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	e.logger.Info("Exported ledger",
		applog.FieldOperation, applog.OpExport,
		applog.FieldFormat, "csv",
		applog.FieldPath, path)
	return path, nil
}

// ExportJSON writes the records as a list of objects with dates as
// plain strings. Returns the written file path.
func (e *Exporter) ExportJSON(records []core.ExpenseRecord) (string, error) {
	out := make([]exportRecord, len(records))
	for i, rec := range records {
		out[i] = exportRecord{
			Date:        rec.Date.Format(e.layout),
			Description: rec.Description,
			Category:    rec.Category,
			Amount:      rec.Amount,
			ID:          rec.ID,
		}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode export: %w", err)
	}
	path := e.exportPath("json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	e.logger.Info("Exported ledger",
		applog.FieldOperation, applog.OpExport,
		applog.FieldFormat, "json",
		applog.FieldPath, path)
	return path, nil
}

// ExportAll writes every local export format. The formats are
// independent, so they run under an errgroup.
func (e *Exporter) ExportAll(ctx context.Context, records []core.ExpenseRecord) ([]string, error) {
	paths := make([]string, 2)
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := e.ExportCSV(records)
		paths[0] = p
		return err
	})
	g.Go(func() error {
		p, err := e.ExportJSON(records)
		paths[1] = p
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

func (e *Exporter) exportPath(ext string) string {
	name := fmt.Sprintf("expenses_export_%s.%s", e.clock().Format(exportStamp), ext)
	return filepath.Join(e.reportsDir, name)
}

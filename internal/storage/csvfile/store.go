// Package csvfile implements the primary flat-file record store: a CSV
// ledger with rotating timestamped backups.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"tally/internal/core"
	applog "tally/internal/log"
	"tally/internal/storage"
)

const (
	backupPrefix = "expenses_backup_"
	backupStamp  = "20060102_150405"

	// MaxBackups is the retention count for rotated backups.
	MaxBackups = 5
)

var header = []string{"Date", "Description", "Category", "Amount", "ID"}

// Store reads and writes the ledger CSV file and manages its backups.
type Store struct {
	dataFile  string
	backupDir string
	layout    string // Go time layout for the Date column
	logger    *applog.Logger
	clock     func() time.Time
}

var _ storage.RecordStore = (*Store)(nil)

func New(dataFile, backupDir, layout string, logger *applog.Logger) *Store {
	return &Store{
		dataFile:  dataFile,
		backupDir: backupDir,
		layout:    layout,
		logger:    logger.WithComponent(applog.ComponentStorage),
		clock:     time.Now,
	}
}

// WithClock overrides the timestamp source for backup names.
func (s *Store) WithClock(clock func() time.Time) *Store {
	s.clock = clock
	return s
}

// Load reads the persisted ledger. A missing file yields an empty set;
// so does any read or parse failure, which is logged instead of
// propagated so corrupt data never fails startup.
func (s *Store) Load(_ context.Context) ([]core.ExpenseRecord, error) {
	f, err := os.Open(s.dataFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		s.logger.Warn("Could not read ledger file, starting empty",
			applog.FieldOperation, applog.OpLoad,
			applog.FieldPath, s.dataFile,
			applog.FieldError, err)
		return nil, nil
	}
	defer f.Close()

	records, err := s.parse(f)
	if err != nil {
		s.logger.Warn("Corrupt ledger file, starting empty",
			applog.FieldOperation, applog.OpLoad,
			applog.FieldPath, s.dataFile,
			applog.FieldError, err)
		return nil, nil
	}
	s.logger.Info("Ledger loaded",
		applog.FieldOperation, applog.OpLoad,
		applog.FieldRecordCount, len(records))
	return records, nil
}

func (s *Store) parse(r io.Reader) ([]core.ExpenseRecord, error) {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	if len(rows[0]) != len(header) {
		return nil, fmt.Errorf("unexpected header %v", rows[0])
	}
	var records []core.ExpenseRecord
	for i, row := range rows[1:] {
		rec, err := s.parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s *Store) parseRow(row []string) (core.ExpenseRecord, error) {
	if len(row) != len(header) {
		return core.ExpenseRecord{}, fmt.Errorf("expected %d columns, got %d", len(header), len(row))
	}
	t, err := time.Parse(s.layout, row[0])
	if err != nil {
		return core.ExpenseRecord{}, fmt.Errorf("date %q: %w", row[0], err)
	}
	category, err := core.ParseCategory(row[2])
	if err != nil {
		return core.ExpenseRecord{}, err
	}
	amount, err := core.ParseMoney(row[3])
	if err != nil {
		return core.ExpenseRecord{}, fmt.Errorf("amount %q: %w", row[3], err)
	}
	return core.ExpenseRecord{
		ID:          row[4],
		Date:        core.DateOf(t),
		Description: row[1],
		Category:    category,
		Amount:      amount,
	}, nil
}

// Save backs up the existing file, prunes old backups to MaxBackups,
// then writes the full snapshot to the primary file.
func (s *Store) Save(_ context.Context, records []core.ExpenseRecord) error {
	if err := s.rotateBackup(); err != nil {
		return &storage.StoreError{Op: applog.OpBackup, Err: err}
	}

	f, err := os.Create(s.dataFile)
	if err != nil {
		return &storage.StoreError{Op: applog.OpSave, Err: err}
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return &storage.StoreError{Op: applog.OpSave, Err: err}
	}
	for _, rec := range records {
		row := []string{
			rec.Date.Format(s.layout),
			rec.Description,
			string(rec.Category),
			rec.Amount.String(),
			rec.ID,
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return &storage.StoreError{Op: applog.OpSave, Err: err}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return &storage.StoreError{Op: applog.OpSave, Err: err}
	}
	if err := f.Close(); err != nil {
		return &storage.StoreError{Op: applog.OpSave, Err: err}
	}

	s.logger.Debug("Ledger saved",
		applog.FieldOperation, applog.OpSave,
		applog.FieldRecordCount, len(records))
	return nil
}

func (s *Store) Close() error {
	return nil
}

// rotateBackup copies the current data file into the backup directory
// with a timestamped name and deletes everything but the MaxBackups
// most recent, ordered by filename timestamp.
func (s *Store) rotateBackup() error {
	src, err := os.ReadFile(s.dataFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // first save, nothing to back up
		}
		return fmt.Errorf("read current file: %w", err)
	}

	if err := os.MkdirAll(s.backupDir, 0755); err != nil {
		return fmt.Errorf("create backup dir: %w", err)
	}
	name := fmt.Sprintf("%s%s.csv", backupPrefix, s.clock().Format(backupStamp))
	if err := os.WriteFile(filepath.Join(s.backupDir, name), src, 0644); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}

	backups, err := filepath.Glob(filepath.Join(s.backupDir, backupPrefix+"*.csv"))
	if err != nil {
		return fmt.Errorf("list backups: %w", err)
	}
	sort.Strings(backups)
	for _, old := range backups[:max(0, len(backups)-MaxBackups)] {
		if err := os.Remove(old); err != nil {
			return fmt.Errorf("prune backup %s: %w", old, err)
		}
	}

	s.logger.Debug("Backup rotated",
		applog.FieldOperation, applog.OpBackup,
		applog.FieldBackupCount, min(len(backups), MaxBackups))
	return nil
}

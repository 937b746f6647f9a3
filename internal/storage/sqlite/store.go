// Package sqlite implements the record store on an embedded SQLite
// database, as an alternative to the flat CSV file. The port semantics
// are the same: Save writes the full snapshot.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"tally/internal/core"
	applog "tally/internal/log"
	"tally/internal/storage"
)

const dateColumnLayout = "2006-01-02"

type Store struct {
	db     *sql.DB
	logger *applog.Logger
}

var _ storage.RecordStore = (*Store)(nil)

func New(dbPath string, logger *applog.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{
		db:     db,
		logger: logger.WithComponent(applog.ComponentStorage),
	}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load reads all records in ledger order. Row-level corruption is
// logged and skipped rather than failing startup.
func (s *Store) Load(ctx context.Context) ([]core.ExpenseRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT expense_id, spent_on, description, category, amount
		 FROM expenses ORDER BY position`)
	if err != nil {
		s.logger.Warn("Could not read expenses table, starting empty",
			applog.FieldOperation, applog.OpLoad,
			applog.FieldError, err)
		return nil, nil
	}
	defer rows.Close()

	var records []core.ExpenseRecord
	for rows.Next() {
		var id, spentOn, description, category, amount string
		if err := rows.Scan(&id, &spentOn, &description, &category, &amount); err != nil {
			s.logger.Warn("Skipping unreadable row",
				applog.FieldOperation, applog.OpLoad,
				applog.FieldError, err)
			continue
		}
		rec, err := buildRecord(id, spentOn, description, category, amount)
		if err != nil {
			s.logger.Warn("Skipping corrupt row",
				applog.FieldRecordID, id,
				applog.FieldError, err)
			continue
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		s.logger.Warn("Could not finish reading expenses, starting empty",
			applog.FieldOperation, applog.OpLoad,
			applog.FieldError, err)
		return nil, nil
	}

	s.logger.Info("Ledger loaded",
		applog.FieldOperation, applog.OpLoad,
		applog.FieldRecordCount, len(records))
	return records, nil
}

// Save replaces the stored snapshot in a single transaction.
func (s *Store) Save(ctx context.Context, records []core.ExpenseRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &storage.StoreError{Op: applog.OpSave, Err: err}
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM expenses`); err != nil {
		return &storage.StoreError{Op: applog.OpSave, Err: err}
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO expenses (position, expense_id, spent_on, description, category, amount)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return &storage.StoreError{Op: applog.OpSave, Err: err}
	}
	defer stmt.Close()

	for i, rec := range records {
		_, err := stmt.ExecContext(ctx, i+1,
			rec.ID,
			rec.Date.Format(dateColumnLayout),
			rec.Description,
			string(rec.Category),
			rec.Amount.String())
		if err != nil {
			return &storage.StoreError{Op: applog.OpSave, Err: fmt.Errorf("insert %s: %w", rec.ID, err)}
		}
	}

	if err := tx.Commit(); err != nil {
		return &storage.StoreError{Op: applog.OpSave, Err: err}
	}
	s.logger.Debug("Ledger saved",
		applog.FieldOperation, applog.OpSave,
		applog.FieldRecordCount, len(records))
	return nil
}

func buildRecord(id, spentOn, description, category, amount string) (core.ExpenseRecord, error) {
	t, err := time.Parse(dateColumnLayout, spentOn)
	if err != nil {
		return core.ExpenseRecord{}, fmt.Errorf("date %q: %w", spentOn, err)
	}
	cat, err := core.ParseCategory(category)
	if err != nil {
		return core.ExpenseRecord{}, err
	}
	m, err := core.ParseMoney(amount)
	if err != nil {
		return core.ExpenseRecord{}, fmt.Errorf("amount %q: %w", amount, err)
	}
	return core.ExpenseRecord{
		ID:          id,
		Date:        core.DateOf(t),
		Description: description,
		Category:    cat,
		Amount:      m,
	}, nil
}

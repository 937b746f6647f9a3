// Package backend selects and constructs the record store the tracker
// persists to.
package backend

import (
	"context"
	"fmt"

	applog "tally/internal/log"
	"tally/internal/storage"
	"tally/internal/storage/csvfile"
	"tally/internal/storage/memory"
	"tally/internal/storage/sqlite"
)

// Type represents the kind of record store.
type Type string

const (
	CSVBackend    Type = "csv"
	SQLiteBackend Type = "sqlite"
	MemoryBackend Type = "memory"
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid
func (t Type) IsValid() bool {
	switch t {
	case CSVBackend, SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// Types returns all valid backend types.
func Types() []Type {
	return []Type{CSVBackend, SQLiteBackend, MemoryBackend}
}

// Config holds what each backend needs to come up.
type Config struct {
	Type Type

	// CSV specific
	DataFile   string
	BackupDir  string
	DateLayout string

	// SQLite specific
	SQLiteDBPath string
}

// Validate validates the backend configuration
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}
	switch c.Type {
	case CSVBackend:
		if c.DataFile == "" {
			return fmt.Errorf("data file path is required for csv backend")
		}
		if c.DateLayout == "" {
			return fmt.Errorf("date layout is required for csv backend")
		}
	case SQLiteBackend:
		if c.SQLiteDBPath == "" {
			return fmt.Errorf("SQLite database path is required for sqlite backend")
		}
	}
	return nil
}

// Result contains the store instance and optional cleanup function.
type Result struct {
	Store   storage.RecordStore
	Cleanup func() error
}

// Factory creates record stores based on configuration.
type Factory struct {
	logger *applog.Logger
}

func NewFactory(logger *applog.Logger) *Factory {
	return &Factory{logger: logger}
}

func (f *Factory) Create(_ context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Type {
	case CSVBackend:
		store := csvfile.New(cfg.DataFile, cfg.BackupDir, cfg.DateLayout, f.logger)
		f.logger.Info("Initialized csv backend",
			applog.FieldBackend, cfg.Type.String(),
			applog.FieldPath, cfg.DataFile)
		return &Result{Store: store, Cleanup: store.Close}, nil

	case SQLiteBackend:
		store, err := sqlite.New(cfg.SQLiteDBPath, f.logger)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		f.logger.Info("Initialized sqlite backend",
			applog.FieldBackend, cfg.Type.String(),
			applog.FieldPath, cfg.SQLiteDBPath)
		return &Result{Store: store, Cleanup: store.Close}, nil

	case MemoryBackend:
		store := memory.New()
		f.logger.Info("Initialized memory backend",
			applog.FieldBackend, cfg.Type.String())
		return &Result{Store: store, Cleanup: nil}, nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.Type)
	}
}

// Package storage defines the persistence port for the ledger.
package storage

import (
	"context"

	"tally/internal/core"
)

// RecordStore persists the full set of ledger records as a flat store.
// Save always writes the complete snapshot; there is no partial write.
type RecordStore interface {
	// Load reads the persisted records. Implementations degrade to an
	// empty set on read or parse failure so corrupt data never fails
	// startup.
	Load(ctx context.Context) ([]core.ExpenseRecord, error)

	// Save persists the full snapshot. On failure the caller's
	// in-memory state is untouched but stale on disk.
	Save(ctx context.Context, records []core.ExpenseRecord) error

	Close() error
}

// StoreError wraps a persistence failure with the operation that
// produced it, so callers can classify storage errors with errors.As.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return "storage " + e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

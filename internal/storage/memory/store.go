// Package memory implements an in-memory record store, used by tests
// and as a throwaway backend.
package memory

import (
	"context"
	"sync"

	"tally/internal/core"
	"tally/internal/storage"
)

type Store struct {
	mu      sync.Mutex
	records []core.ExpenseRecord
}

var _ storage.RecordStore = (*Store)(nil)

func New() *Store {
	return &Store{}
}

// Seed replaces the stored snapshot, for test setup.
func (s *Store) Seed(records []core.ExpenseRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append([]core.ExpenseRecord(nil), records...)
}

func (s *Store) Load(_ context.Context) ([]core.ExpenseRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.ExpenseRecord(nil), s.records...), nil
}

func (s *Store) Save(_ context.Context, records []core.ExpenseRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append([]core.ExpenseRecord(nil), records...)
	return nil
}

func (s *Store) Close() error {
	return nil
}

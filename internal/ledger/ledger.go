// Package ledger holds the in-memory collection of expense records and
// owns validation, id assignment and filtering. It performs no I/O;
// persistence is the storage adapter's job.
package ledger

import (
	"fmt"
	"strconv"
	"strings"

	"tally/internal/core"
)

const idPrefix = "EXP"

// Ledger is the ordered collection of expense records. Insertion order
// is preserved for display. Not safe for concurrent use; the
// application is single-user and synchronous.
type Ledger struct {
	records []core.ExpenseRecord
}

// Change describes a single-field edit. Exactly the fields that are
// non-nil are replaced, each re-validated with the same rules as Add.
type Change struct {
	Date        *core.Date
	Description *string
	Category    *core.Category
	Amount      *core.Money
}

func New() *Ledger {
	return &Ledger{}
}

// FromRecords hydrates a ledger from persisted records, preserving order.
func FromRecords(records []core.ExpenseRecord) *Ledger {
	l := &Ledger{records: make([]core.ExpenseRecord, len(records))}
	copy(l.records, records)
	return l
}

func (l *Ledger) Len() int {
	return len(l.records)
}

// All returns the records in ledger order. The slice is a copy.
func (l *Ledger) All() []core.ExpenseRecord {
	out := make([]core.ExpenseRecord, len(l.records))
	copy(out, l.records)
	return out
}

// Get looks up a record by id. The match is case-insensitive.
func (l *Ledger) Get(id string) (core.ExpenseRecord, bool) {
	if i := l.indexOf(id); i >= 0 {
		return l.records[i], true
	}
	return core.ExpenseRecord{}, false
}

// Add validates all fields, assigns a fresh id and appends the record.
// Amounts above the large-amount threshold are rejected with
// core.ErrConfirmationRequired unless confirmed is true.
func (l *Ledger) Add(date core.Date, description string, category core.Category, amount core.Money, confirmed bool) (core.ExpenseRecord, error) {
	rec := core.ExpenseRecord{
		Date:        date,
		Description: strings.TrimSpace(description),
		Category:    category,
		Amount:      amount,
	}
	rec.ID = l.NextID()
	if err := rec.Validate(); err != nil {
		return core.ExpenseRecord{}, err
	}
	if amount.RequiresConfirmation() && !confirmed {
		return core.ExpenseRecord{}, core.ErrConfirmationRequired
	}
	l.records = append(l.records, rec)
	return rec, nil
}

// Edit replaces the changed fields of the record with the given id,
// re-validating only what changed. Returns core.ErrNotFound if the id
// does not exist. Nothing is mutated when validation fails.
func (l *Ledger) Edit(id string, change Change, confirmed bool) (core.ExpenseRecord, error) {
	i := l.indexOf(id)
	if i < 0 {
		return core.ExpenseRecord{}, fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}
	rec := l.records[i]
	if change.Date != nil {
		if err := change.Date.Validate(); err != nil {
			return core.ExpenseRecord{}, err
		}
		rec.Date = *change.Date
	}
	if change.Description != nil {
		desc := strings.TrimSpace(*change.Description)
		if desc == "" {
			return core.ExpenseRecord{}, core.ErrEmptyDescription
		}
		rec.Description = desc
	}
	if change.Category != nil {
		if err := change.Category.Validate(); err != nil {
			return core.ExpenseRecord{}, err
		}
		rec.Category = *change.Category
	}
	if change.Amount != nil {
		if err := change.Amount.Validate(); err != nil {
			return core.ExpenseRecord{}, err
		}
		if change.Amount.RequiresConfirmation() && !confirmed {
			return core.ExpenseRecord{}, core.ErrConfirmationRequired
		}
		rec.Amount = *change.Amount
	}
	l.records[i] = rec
	return rec, nil
}

// Delete removes the record with the given id. Hard delete, no undo.
func (l *Ledger) Delete(id string) error {
	i := l.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}
	l.records = append(l.records[:i], l.records[i+1:]...)
	return nil
}

// FilterByDateRange returns records with start <= date <= end, in
// ledger order.
func (l *Ledger) FilterByDateRange(start, end core.Date) []core.ExpenseRecord {
	var out []core.ExpenseRecord
	for _, r := range l.records {
		if r.Date.Before(start.Time) || r.Date.After(end.Time) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// FilterByCategory returns records with an exact category match, in
// ledger order.
func (l *Ledger) FilterByCategory(c core.Category) []core.ExpenseRecord {
	var out []core.ExpenseRecord
	for _, r := range l.records {
		if r.Category == c {
			out = append(out, r)
		}
	}
	return out
}

// SearchDescription returns records whose description contains the term,
// case-insensitively, in ledger order.
func (l *Ledger) SearchDescription(term string) []core.ExpenseRecord {
	term = strings.ToLower(strings.TrimSpace(term))
	var out []core.ExpenseRecord
	for _, r := range l.records {
		if strings.Contains(strings.ToLower(r.Description), term) {
			out = append(out, r)
		}
	}
	return out
}

// NextID computes the successor of the maximum numeric suffix among
// current ids, zero-padded to at least three digits. If no id carries a
// parsable suffix the count+1 fallback applies, so corrupted ids never
// break id assignment. Deleting the newest record shrinks the maximum,
// so its id can be reassigned; ids are unique at any moment, not
// across time.
func (l *Ledger) NextID() string {
	maxSuffix := 0
	parsable := false
	for _, r := range l.records {
		n, ok := parseSuffix(r.ID)
		if !ok {
			continue
		}
		parsable = true
		if n > maxSuffix {
			maxSuffix = n
		}
	}
	next := len(l.records) + 1
	if parsable {
		next = maxSuffix + 1
	}
	id := formatID(next)
	// The count+1 fallback can land on an existing non-standard id.
	for l.indexOf(id) >= 0 {
		next++
		id = formatID(next)
	}
	return id
}

func (l *Ledger) indexOf(id string) int {
	for i, r := range l.records {
		if strings.EqualFold(r.ID, id) {
			return i
		}
	}
	return -1
}

func formatID(n int) string {
	return fmt.Sprintf("%s%03d", idPrefix, n)
}

func parseSuffix(id string) (int, bool) {
	if !strings.HasPrefix(id, idPrefix) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(id, idPrefix))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

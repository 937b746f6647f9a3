// Package services composes the ledger, the record store and the
// preference store into the operations the interaction layer calls.
// Every mutation validates fully in memory, applies, and then persists
// in the same logical step.
package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"tally/internal/config"
	"tally/internal/core"
	"tally/internal/ledger"
	applog "tally/internal/log"
	"tally/internal/stats"
	"tally/internal/storage"
)

// Tracker orchestrates ledger operations and their persistence.
type Tracker struct {
	ledger     *ledger.Ledger
	store      storage.RecordStore
	prefsStore *config.PrefsStore
	prefs      config.Preferences
	layout     string
	logger     *applog.Logger
	now        func() time.Time
}

// AddInput carries the raw field values for a new expense. Date may be
// blank, meaning today. Category accepts either the category name or
// its 1-based menu position.
type AddInput struct {
	Date        string
	Description string
	Category    string
	Amount      string
	Confirmed   bool
}

// AddResult is the outcome of a successful add. BudgetWarning is set
// when a monthly budget exists and the current month now exceeds it.
type AddResult struct {
	Record        core.ExpenseRecord
	BudgetWarning *stats.BudgetStatus
}

// Summary is the full derived-statistics snapshot.
type Summary struct {
	Count        int
	Total        core.Money
	Average      core.Money
	Max          core.Money
	Budget       *stats.BudgetStatus
	ByCategory   []stats.CategoryRollup
	RecentMonths []stats.MonthRollup
	Top          []core.ExpenseRecord
}

// NewTracker hydrates the ledger from the store. A store that cannot be
// read comes back empty by the storage contract, so startup never fails
// on corrupt data.
func NewTracker(ctx context.Context, store storage.RecordStore, prefsStore *config.PrefsStore, logger *applog.Logger) (*Tracker, error) {
	prefs := prefsStore.Load()
	layout, err := prefs.DateLayout()
	if err != nil {
		return nil, err
	}
	records, err := store.Load(ctx)
	if err != nil {
		return nil, &storage.StoreError{Op: applog.OpLoad, Err: err}
	}
	t := &Tracker{
		ledger:     ledger.FromRecords(records),
		store:      store,
		prefsStore: prefsStore,
		prefs:      prefs,
		layout:     layout,
		logger:     logger.WithComponent(applog.ComponentTracker),
		now:        time.Now,
	}
	t.logger.Info("Ledger hydrated",
		applog.FieldOperation, applog.OpStartup,
		applog.FieldRecordCount, t.ledger.Len())
	return t, nil
}

// WithClock overrides the time source, for tests.
func (t *Tracker) WithClock(clock func() time.Time) *Tracker {
	t.now = clock
	return t
}

// AddExpense validates, appends and persists a new expense.
func (t *Tracker) AddExpense(ctx context.Context, in AddInput) (AddResult, error) {
	date, err := t.parseDate(in.Date)
	if err != nil {
		return AddResult{}, err
	}
	category, err := t.parseCategory(in.Category)
	if err != nil {
		return AddResult{}, err
	}
	amount, err := core.ParseMoney(in.Amount)
	if err != nil {
		return AddResult{}, err
	}

	rec, err := t.ledger.Add(date, in.Description, category, amount, in.Confirmed)
	if err != nil {
		return AddResult{}, err
	}
	if err := t.persist(ctx); err != nil {
		return AddResult{Record: rec}, err
	}

	t.logger.Info("Expense added",
		applog.FieldOperation, applog.OpAdd,
		applog.FieldRecordID, rec.ID,
		applog.FieldCategory, string(rec.Category),
		applog.FieldAmount, rec.Amount.String())

	result := AddResult{Record: rec}
	if t.prefs.MonthlyBudget != nil {
		status := stats.BudgetForMonth(t.ledger.All(), *t.prefs.MonthlyBudget, t.now())
		if status.OverBudget {
			result.BudgetWarning = &status
		}
	}
	return result, nil
}

// EditExpense replaces a single field of an existing expense. Field is
// one of date, description, category, amount.
func (t *Tracker) EditExpense(ctx context.Context, id, field, value string, confirmed bool) (core.ExpenseRecord, error) {
	var change ledger.Change
	switch strings.ToLower(strings.TrimSpace(field)) {
	case "date":
		date, err := t.parseDate(value)
		if err != nil {
			return core.ExpenseRecord{}, err
		}
		change.Date = &date
	case "description":
		change.Description = &value
	case "category":
		category, err := t.parseCategory(value)
		if err != nil {
			return core.ExpenseRecord{}, err
		}
		change.Category = &category
	case "amount":
		amount, err := core.ParseMoney(value)
		if err != nil {
			return core.ExpenseRecord{}, err
		}
		change.Amount = &amount
	default:
		return core.ExpenseRecord{}, fmt.Errorf("unknown field %q (want date, description, category or amount)", field)
	}

	rec, err := t.ledger.Edit(id, change, confirmed)
	if err != nil {
		return core.ExpenseRecord{}, err
	}
	if err := t.persist(ctx); err != nil {
		return rec, err
	}
	t.logger.Info("Expense updated",
		applog.FieldOperation, applog.OpEdit,
		applog.FieldRecordID, rec.ID)
	return rec, nil
}

// DeleteExpense removes an expense and persists the ledger. The
// confirmation prompt is the caller's concern; deletion here is final.
func (t *Tracker) DeleteExpense(ctx context.Context, id string) error {
	if err := t.ledger.Delete(id); err != nil {
		return err
	}
	if err := t.persist(ctx); err != nil {
		return err
	}
	t.logger.Info("Expense deleted",
		applog.FieldOperation, applog.OpDelete,
		applog.FieldRecordID, id)
	return nil
}

// Records returns the full ledger snapshot in ledger order.
func (t *Tracker) Records() []core.ExpenseRecord {
	return t.ledger.All()
}

func (t *Tracker) Count() int {
	return t.ledger.Len()
}

// Get looks up a single record by id.
func (t *Tracker) Get(id string) (core.ExpenseRecord, error) {
	rec, ok := t.ledger.Get(id)
	if !ok {
		return core.ExpenseRecord{}, fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}
	return rec, nil
}

// FindByDateRange filters records with start <= date <= end, both
// rendered in the configured date format.
func (t *Tracker) FindByDateRange(start, end string) ([]core.ExpenseRecord, error) {
	from, err := t.parseDate(start)
	if err != nil {
		return nil, err
	}
	to, err := t.parseDate(end)
	if err != nil {
		return nil, err
	}
	return t.ledger.FilterByDateRange(from, to), nil
}

// FindByCategory filters records by exact category.
func (t *Tracker) FindByCategory(name string) ([]core.ExpenseRecord, error) {
	category, err := t.parseCategory(name)
	if err != nil {
		return nil, err
	}
	return t.ledger.FilterByCategory(category), nil
}

// Search filters records by case-insensitive description substring.
func (t *Tracker) Search(term string) []core.ExpenseRecord {
	return t.ledger.SearchDescription(term)
}

// Summarize assembles the derived-statistics snapshot: overall totals,
// budget status, category rollup, the last six months and the five
// largest expenses.
func (t *Tracker) Summarize() Summary {
	records := t.ledger.All()
	s := Summary{
		Count:        len(records),
		Total:        stats.TotalSpent(records),
		Average:      stats.AverageExpense(records),
		Max:          stats.MaxExpense(records),
		ByCategory:   stats.ByCategory(records),
		RecentMonths: stats.LastMonths(stats.ByMonth(records), 6),
		Top:          stats.TopN(records, 5),
	}
	if t.prefs.MonthlyBudget != nil {
		status := stats.BudgetForMonth(records, *t.prefs.MonthlyBudget, t.now())
		s.Budget = &status
	}
	return s
}

// SetBudget updates the monthly budget and persists preferences
// immediately. Zero or blank disables the budget.
func (t *Tracker) SetBudget(amount string) error {
	trimmed := strings.TrimSpace(amount)
	if trimmed == "" || trimmed == "0" {
		t.prefs.MonthlyBudget = nil
	} else {
		budget, err := core.ParseMoney(trimmed)
		if err != nil {
			return err
		}
		t.prefs.MonthlyBudget = &budget
	}
	if err := t.prefsStore.Save(t.prefs); err != nil {
		return fmt.Errorf("budget kept in memory only: %w", err)
	}
	return nil
}

// Preferences returns the current user preferences.
func (t *Tracker) Preferences() config.Preferences {
	return t.prefs
}

// DateLayout is the Go layout for the configured date format.
func (t *Tracker) DateLayout() string {
	return t.layout
}

// Close releases the underlying store.
func (t *Tracker) Close() error {
	if t.store != nil {
		return t.store.Close()
	}
	return nil
}

// persist writes the full ledger. On failure the in-memory state is
// kept; the caller is told the persisted state is stale.
func (t *Tracker) persist(ctx context.Context) error {
	if err := t.store.Save(ctx, t.ledger.All()); err != nil {
		t.logger.Error("Ledger not persisted, in-memory state kept",
			applog.FieldOperation, applog.OpSave,
			applog.FieldError, err)
		return fmt.Errorf("persist ledger: %w", err)
	}
	return nil
}

func (t *Tracker) parseDate(s string) (core.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return core.DateOf(t.now()), nil
	}
	parsed, err := time.Parse(t.layout, s)
	if err != nil {
		return core.Date{}, fmt.Errorf("%w: %q does not match format %s", core.ErrInvalidDate, s, t.prefs.DateFormat)
	}
	return core.DateOf(parsed), nil
}

func (t *Tracker) parseCategory(s string) (core.Category, error) {
	if pos, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return core.CategoryAt(pos)
	}
	return core.ParseCategory(s)
}

// Package stats computes derived statistics over a snapshot of ledger
// records. Every function is pure: no mutation, no I/O, identical
// results for identical input.
package stats

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"tally/internal/core"
)

// CategoryRollup is the per-category aggregate.
type CategoryRollup struct {
	Category   core.Category
	Total      core.Money
	Count      int
	Percentage float64 // share of TotalSpent, 0 when total is zero
}

// MonthRollup is the per-calendar-month aggregate, keyed "2006-01".
type MonthRollup struct {
	Month string
	Total core.Money
}

// BudgetStatus compares current-month spend against the configured
// monthly budget. Remaining is negative when over budget.
type BudgetStatus struct {
	Budget     core.Money
	Spent      core.Money
	Remaining  core.Money
	OverBudget bool
}

// TotalSpent sums all amounts.
func TotalSpent(records []core.ExpenseRecord) core.Money {
	total := core.Money{}
	for _, r := range records {
		total = total.Plus(r.Amount)
	}
	return total
}

// AverageExpense is the arithmetic mean. Zero for an empty snapshot;
// callers that need to distinguish should guard on len(records).
func AverageExpense(records []core.ExpenseRecord) core.Money {
	if len(records) == 0 {
		return core.Money{}
	}
	total := TotalSpent(records)
	return core.NewMoney(total.Decimal.DivRound(decimal.NewFromInt(int64(len(records))), 4))
}

// MaxExpense is the largest single amount.
func MaxExpense(records []core.ExpenseRecord) core.Money {
	max := core.Money{}
	for _, r := range records {
		if r.Amount.Decimal.GreaterThan(max.Decimal) {
			max = r.Amount
		}
	}
	return max
}

// MonthTotal sums the amounts dated in the same year-month as today.
func MonthTotal(records []core.ExpenseRecord, today time.Time) core.Money {
	total := core.Money{}
	for _, r := range records {
		if r.Date.SameMonth(today) {
			total = total.Plus(r.Amount)
		}
	}
	return total
}

// ByCategory rolls records up per category, sorted by total descending.
// Ties keep first-encountered category order.
func ByCategory(records []core.ExpenseRecord) []CategoryRollup {
	index := map[core.Category]int{}
	var rollups []CategoryRollup
	for _, r := range records {
		i, ok := index[r.Category]
		if !ok {
			i = len(rollups)
			index[r.Category] = i
			rollups = append(rollups, CategoryRollup{Category: r.Category})
		}
		rollups[i].Total = rollups[i].Total.Plus(r.Amount)
		rollups[i].Count++
	}
	sort.SliceStable(rollups, func(a, b int) bool {
		return rollups[a].Total.Decimal.GreaterThan(rollups[b].Total.Decimal)
	})
	total := TotalSpent(records)
	if total.Decimal.Sign() > 0 {
		for i := range rollups {
			share := rollups[i].Total.Decimal.Div(total.Decimal)
			rollups[i].Percentage = share.InexactFloat64() * 100
		}
	}
	return rollups
}

// ByMonth rolls records up per calendar month, chronologically ascending.
func ByMonth(records []core.ExpenseRecord) []MonthRollup {
	index := map[string]int{}
	var rollups []MonthRollup
	for _, r := range records {
		key := r.Date.YearMonth()
		i, ok := index[key]
		if !ok {
			i = len(rollups)
			index[key] = i
			rollups = append(rollups, MonthRollup{Month: key})
		}
		rollups[i].Total = rollups[i].Total.Plus(r.Amount)
	}
	// "2006-01" keys sort chronologically as strings.
	sort.Slice(rollups, func(a, b int) bool {
		return rollups[a].Month < rollups[b].Month
	})
	return rollups
}

// LastMonths takes the suffix of a chronological month rollup.
func LastMonths(rollups []MonthRollup, n int) []MonthRollup {
	if n <= 0 || n >= len(rollups) {
		return rollups
	}
	return rollups[len(rollups)-n:]
}

// TopN returns the n largest records by amount, ties broken by original
// ledger order.
func TopN(records []core.ExpenseRecord, n int) []core.ExpenseRecord {
	out := make([]core.ExpenseRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Amount.Decimal.GreaterThan(out[b].Amount.Decimal)
	})
	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// BudgetForMonth compares the current-month spend against the budget.
func BudgetForMonth(records []core.ExpenseRecord, budget core.Money, today time.Time) BudgetStatus {
	spent := MonthTotal(records, today)
	remaining := budget.Minus(spent)
	return BudgetStatus{
		Budget:     budget,
		Spent:      spent,
		Remaining:  remaining,
		OverBudget: remaining.Decimal.Sign() < 0,
	}
}

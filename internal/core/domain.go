package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	CategoryFood          Category = "Food & Dining"
	CategoryTransport     Category = "Transportation"
	CategoryEntertainment Category = "Entertainment"
	CategoryShopping      Category = "Shopping"
	CategoryBills         Category = "Bills & Utilities"
	CategoryHealthcare    Category = "Healthcare"
	CategoryEducation     Category = "Education"
	CategoryGroceries     Category = "Groceries"
	CategoryOther         Category = "Other"
)

type (
	// Category is one of the fixed set of expense categories.
	Category string

	Date struct {
		time.Time
	}

	// ExpenseRecord is a single ledger entry.
	ExpenseRecord struct {
		ID          string
		Date        Date
		Description string
		Category    Category
		Amount      Money
	}
)

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrInvalidCategory  = errors.New("invalid category")

	// ErrNotFound is returned when a referenced expense id does not exist.
	ErrNotFound = errors.New("expense not found")

	// ErrConfirmationRequired is returned when an amount exceeds the
	// large-amount threshold and the caller has not confirmed it.
	ErrConfirmationRequired = errors.New("large amount requires confirmation")
)

// categories holds the enum in menu display order.
var categories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryEntertainment,
	CategoryShopping,
	CategoryBills,
	CategoryHealthcare,
	CategoryEducation,
	CategoryGroceries,
	CategoryOther,
}

// Categories returns the fixed category set in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// ParseCategory matches a name against the fixed category set.
func ParseCategory(s string) (Category, error) {
	name := strings.TrimSpace(s)
	for _, c := range categories {
		if strings.EqualFold(name, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

// CategoryAt returns the category at the given 1-based menu position.
func CategoryAt(pos int) (Category, error) {
	if pos < 1 || pos > len(categories) {
		return "", fmt.Errorf("%w: selection %d out of range 1-%d", ErrInvalidCategory, pos, len(categories))
	}
	return categories[pos-1], nil
}

func (c Category) Validate() error {
	for _, known := range categories {
		if c == known {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidCategory, string(c))
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time to day granularity.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// YearMonth returns the calendar month key, e.g. "2024-01".
func (d Date) YearMonth() string {
	return d.Format("2006-01")
}

// SameMonth reports whether d falls in the same year and month as t.
func (d Date) SameMonth(t time.Time) bool {
	return d.Year() == t.Year() && d.Month() == t.Month()
}

func (r ExpenseRecord) Validate() error {
	if err := r.Date.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(r.Description)) == 0 {
		return ErrEmptyDescription
	}
	if err := r.Category.Validate(); err != nil {
		return err
	}
	if err := r.Amount.Validate(); err != nil {
		return err
	}
	return nil
}

// IsValidation reports whether err belongs to the validation error kind,
// as opposed to not-found, confirmation or storage failures.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrEmptyDescription) ||
		errors.Is(err, ErrInvalidCategory)
}

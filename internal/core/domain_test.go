package core

import (
	"errors"
	"testing"
	"time"
)

func TestParseCategory(t *testing.T) {
	cases := []struct {
		in   string
		want Category
		ok   bool
	}{
		{"Food & Dining", CategoryFood, true},
		{"food & dining", CategoryFood, true},
		{" Groceries ", CategoryGroceries, true},
		{"Other", CategoryOther, true},
		{"Snacks", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseCategory(tc.in)
		if tc.ok {
			if err != nil || got != tc.want {
				t.Fatalf("ParseCategory(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidCategory) {
			t.Fatalf("ParseCategory(%q) expected ErrInvalidCategory, got %v", tc.in, err)
		}
	}
}

func TestCategoryAt(t *testing.T) {
	first, err := CategoryAt(1)
	if err != nil || first != CategoryFood {
		t.Fatalf("CategoryAt(1) = %v, %v", first, err)
	}
	last, err := CategoryAt(9)
	if err != nil || last != CategoryOther {
		t.Fatalf("CategoryAt(9) = %v, %v", last, err)
	}
	for _, pos := range []int{0, 10, -1} {
		if _, err := CategoryAt(pos); !errors.Is(err, ErrInvalidCategory) {
			t.Fatalf("CategoryAt(%d) expected ErrInvalidCategory, got %v", pos, err)
		}
	}
}

func TestCategoriesOrder(t *testing.T) {
	cats := Categories()
	if len(cats) != 9 {
		t.Fatalf("expected 9 categories, got %d", len(cats))
	}
	if cats[0] != CategoryFood || cats[8] != CategoryOther {
		t.Fatalf("unexpected ordering: %v", cats)
	}
}

func TestDateValidate(t *testing.T) {
	if err := NewDate(2024, 1, 15).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Date{Time: time.Time{}}).Validate(); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate for zero time")
	}
}

func TestDateYearMonth(t *testing.T) {
	if got := NewDate(2024, 1, 15).YearMonth(); got != "2024-01" {
		t.Fatalf("YearMonth = %q", got)
	}
	d := NewDate(2024, 3, 31)
	if !d.SameMonth(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected same month")
	}
	if d.SameMonth(time.Date(2023, 3, 31, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("different year must not match")
	}
}

func TestExpenseRecordValidate(t *testing.T) {
	good := ExpenseRecord{
		ID:          "EXP001",
		Date:        NewDate(2024, 1, 15),
		Description: "Coffee",
		Category:    CategoryFood,
		Amount:      MoneyFromFloat(4.50),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name string
		rec  ExpenseRecord
		want error
	}{
		{"zero date", ExpenseRecord{Description: "a", Category: CategoryFood, Amount: MoneyFromFloat(1)}, ErrInvalidDate},
		{"blank description", ExpenseRecord{Date: NewDate(2024, 1, 1), Description: "  ", Category: CategoryFood, Amount: MoneyFromFloat(1)}, ErrEmptyDescription},
		{"free-form category", ExpenseRecord{Date: NewDate(2024, 1, 1), Description: "a", Category: "Misc", Amount: MoneyFromFloat(1)}, ErrInvalidCategory},
		{"zero amount", ExpenseRecord{Date: NewDate(2024, 1, 1), Description: "a", Category: CategoryFood}, ErrInvalidAmount},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.rec.Validate()
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if !IsValidation(err) {
				t.Fatalf("expected validation kind for %v", err)
			}
		})
	}
}

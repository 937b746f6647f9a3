package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"tally/internal/core"
	applog "tally/internal/log"
)

func testLogger() *applog.Logger {
	return applog.New(applog.Config{Handler: slog.NewTextHandler(io.Discard, nil)})
}

func prefsPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "config.json")
}

func TestDefaultPreferences(t *testing.T) {
	p := DefaultPreferences()
	if p.CurrencySymbol != "₹" {
		t.Errorf("currency = %q", p.CurrencySymbol)
	}
	if p.MonthlyBudget != nil {
		t.Errorf("budget must default to unset")
	}
	if p.DateFormat != "%Y-%m-%d" {
		t.Errorf("date format = %q", p.DateFormat)
	}
	layout, err := p.DateLayout()
	if err != nil {
		t.Fatalf("DateLayout: %v", err)
	}
	if layout != "2006-01-02" {
		t.Errorf("layout = %q, want 2006-01-02", layout)
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	s := NewPrefsStore(prefsPath(t), testLogger())
	got := s.Load()
	if got != DefaultPreferences() {
		t.Fatalf("expected defaults, got %+v", got)
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := prefsPath(t)
	content := `{"currency_symbol": "$", "monthly_budget": 500.50}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got := NewPrefsStore(path, testLogger()).Load()
	if got.CurrencySymbol != "$" {
		t.Errorf("currency = %q, want $", got.CurrencySymbol)
	}
	if got.MonthlyBudget == nil || !got.MonthlyBudget.Equal(core.MoneyFromFloat(500.50)) {
		t.Errorf("budget = %v", got.MonthlyBudget)
	}
	// Key absent from the document keeps its default.
	if got.DateFormat != "%Y-%m-%d" {
		t.Errorf("date format = %q", got.DateFormat)
	}
}

func TestLoadCorruptFileYieldsDefaults(t *testing.T) {
	path := prefsPath(t)
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got := NewPrefsStore(path, testLogger()).Load()
	if got != DefaultPreferences() {
		t.Fatalf("expected defaults, got %+v", got)
	}
}

func TestLoadBadDateFormatFallsBack(t *testing.T) {
	path := prefsPath(t)
	content := `{"currency_symbol": "$", "date_format": "%Q"}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got := NewPrefsStore(path, testLogger()).Load()
	if got.DateFormat != "%Y-%m-%d" {
		t.Errorf("date format = %q, want default", got.DateFormat)
	}
	if got.CurrencySymbol != "$" {
		t.Errorf("other keys must survive, currency = %q", got.CurrencySymbol)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := prefsPath(t)
	s := NewPrefsStore(path, testLogger())

	budget := core.MoneyFromFloat(1500)
	want := Preferences{
		CurrencySymbol: "€",
		MonthlyBudget:  &budget,
		DateFormat:     "%d/%m/%Y",
	}
	if err := s.Save(want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got := s.Load()
	if got.CurrencySymbol != want.CurrencySymbol || got.DateFormat != want.DateFormat {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.MonthlyBudget == nil || !got.MonthlyBudget.Equal(budget) {
		t.Fatalf("budget = %v", got.MonthlyBudget)
	}

	layout, err := got.DateLayout()
	if err != nil {
		t.Fatalf("DateLayout: %v", err)
	}
	if layout != "02/01/2006" {
		t.Errorf("layout = %q", layout)
	}
}

func TestSaveNilBudgetPersistsNull(t *testing.T) {
	path := prefsPath(t)
	s := NewPrefsStore(path, testLogger())
	if err := s.Save(DefaultPreferences()); err != nil {
		t.Fatalf("save: %v", err)
	}
	got := s.Load()
	if got.MonthlyBudget != nil {
		t.Fatalf("budget = %v, want unset", got.MonthlyBudget)
	}
}

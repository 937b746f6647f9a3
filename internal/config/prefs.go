package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ncruces/go-strftime"

	"tally/internal/core"
	applog "tally/internal/log"
)

// Preferences holds the user-facing settings persisted in the config
// document. MonthlyBudget nil means no budget is set.
type Preferences struct {
	CurrencySymbol string      `json:"currency_symbol"`
	MonthlyBudget  *core.Money `json:"monthly_budget"`
	DateFormat     string      `json:"date_format"`
}

// DefaultPreferences are the hardcoded defaults persisted values are
// merged over.
func DefaultPreferences() Preferences {
	return Preferences{
		CurrencySymbol: "₹",
		MonthlyBudget:  nil,
		DateFormat:     "%Y-%m-%d",
	}
}

// DateLayout converts the strftime-style DateFormat into a Go time
// layout for parsing and formatting dates at the I/O boundary.
func (p Preferences) DateLayout() (string, error) {
	layout, err := strftime.Layout(p.DateFormat)
	if err != nil {
		return "", fmt.Errorf("date format %q: %w", p.DateFormat, err)
	}
	return layout, nil
}

// PrefsStore loads and saves preferences. Load failures degrade to
// defaults and are logged, never fatal; save failures are reported to
// the caller.
type PrefsStore struct {
	path   string
	logger *applog.Logger
}

func NewPrefsStore(path string, logger *applog.Logger) *PrefsStore {
	return &PrefsStore{
		path:   path,
		logger: logger.WithComponent(applog.ComponentConfig),
	}
}

// Load merges the persisted document over the defaults. A missing or
// corrupt file yields pure defaults.
func (s *PrefsStore) Load() Preferences {
	prefs := DefaultPreferences()
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("Could not read preferences, using defaults",
				applog.FieldPath, s.path, applog.FieldError, err)
		}
		return prefs
	}
	if err := json.Unmarshal(data, &prefs); err != nil {
		s.logger.Warn("Corrupt preferences file, using defaults",
			applog.FieldPath, s.path, applog.FieldError, err)
		return DefaultPreferences()
	}
	if _, err := prefs.DateLayout(); err != nil {
		s.logger.Warn("Unsupported date format in preferences, using default",
			applog.FieldError, err)
		prefs.DateFormat = DefaultPreferences().DateFormat
	}
	return prefs
}

// Save writes the full preferences document.
func (s *PrefsStore) Save(prefs Preferences) error {
	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write preferences %s: %w", s.path, err)
	}
	return nil
}

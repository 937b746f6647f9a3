package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Settings is the process-level configuration, loaded from the
// environment. User-facing preferences (currency, budget, date format)
// live in Preferences and are persisted separately.
type Settings struct {
	// Directories
	DataDir    string
	BackupDir  string
	ReportsDir string

	// Storage backend selection
	DataBackend  string
	SQLiteDBPath string

	// Google Sheets export (optional)
	SheetsSpreadsheetID string
	SheetsSheetName     string

	// Logging
	LogLevel string
}

// LoadSettings reads settings from the environment with defaults
// matching the original data layout.
func LoadSettings() *Settings {
	return &Settings{
		DataDir:    getEnv("TALLY_DATA_DIR", "data"),
		BackupDir:  getEnv("TALLY_BACKUP_DIR", "backups"),
		ReportsDir: getEnv("TALLY_REPORTS_DIR", "reports"),

		DataBackend:  getEnv("TALLY_BACKEND", "csv"),
		SQLiteDBPath: getEnv("TALLY_SQLITE_PATH", "data/tally.db"),

		SheetsSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		SheetsSheetName:     getEnv("GOOGLE_SHEET_NAME", "Expenses"),

		LogLevel: getEnv("TALLY_LOG_LEVEL", "info"),
	}
}

// Validate validates the settings and returns an error if invalid
func (s *Settings) Validate() error {
	var errs []string

	validBackends := []string{"csv", "sqlite", "memory"}
	valid := false
	for _, b := range validBackends {
		if s.DataBackend == b {
			valid = true
			break
		}
	}
	if !valid {
		errs = append(errs, fmt.Sprintf("invalid data backend '%s': must be one of %v", s.DataBackend, validBackends))
	}

	if s.DataBackend == "sqlite" && s.SQLiteDBPath == "" {
		errs = append(errs, "SQLite database path cannot be empty when using sqlite backend")
	}

	for _, dir := range []string{s.DataDir, s.BackupDir, s.ReportsDir} {
		if dir == "" {
			errs = append(errs, "directories cannot be empty")
			continue
		}
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				errs = append(errs, fmt.Sprintf("cannot create directory '%s': %v", dir, err))
			}
		}
	}

	switch s.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("invalid log level '%s'", s.LogLevel))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// DataFile is the primary ledger file path.
func (s *Settings) DataFile() string {
	return filepath.Join(s.DataDir, "expenses.csv")
}

// PrefsFile is the user preferences file path.
func (s *Settings) PrefsFile() string {
	return filepath.Join(s.DataDir, "config.json")
}

// ReportFile is the per-category summary report path.
func (s *Settings) ReportFile() string {
	return filepath.Join(s.ReportsDir, "summary_report.csv")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

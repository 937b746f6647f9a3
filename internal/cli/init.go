// Package cli provides common initialization for the tally command.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"tally/internal/backend"
	"tally/internal/config"
	applog "tally/internal/log"
)

// SetupLogger initializes structured logging at the given level and
// sets it as the default logger.
func SetupLogger(level string) *applog.Logger {
	lvl := slog.LevelInfo
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	logger := applog.New(applog.Config{
		Level:     lvl,
		Component: applog.ComponentApp,
		Handler:   slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}),
	})
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateSettings loads settings and validates them.
// Exits the process on validation failure.
func LoadAndValidateSettings(logger *applog.Logger) *config.Settings {
	settings := config.LoadSettings()
	if err := settings.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}
	return settings
}

// InitStore builds the configured record store.
// Exits the process on failure.
func InitStore(ctx context.Context, logger *applog.Logger, settings *config.Settings, dateLayout string) *backend.Result {
	cfg := backend.Config{
		Type:         backend.Type(settings.DataBackend),
		DataFile:     settings.DataFile(),
		BackupDir:    settings.BackupDir,
		DateLayout:   dateLayout,
		SQLiteDBPath: settings.SQLiteDBPath,
	}
	result, err := backend.NewFactory(logger).Create(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize storage backend",
			applog.FieldBackend, settings.DataBackend,
			applog.FieldError, err)
		os.Exit(1)
	}
	return result
}

// Package cli consolidates the initialization steps shared by the three
// binaries: logger setup, .env loading, configuration, and store access.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/VBWEBcorp/Gestion-clients-vbweb/internal/config"
	"github.com/VBWEBcorp/Gestion-clients-vbweb/internal/storage"
)

// SetupLogger initializes structured logging and sets it as the default.
func SetupLogger() *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development. Errors are ignored
// since the file is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration or exits on validation failure.
func LoadAndValidateConfig(logger *slog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// InitStore opens the SQLite-backed ledger store or exits on failure. The
// caller owns the returned handle and must Close it on shutdown.
func InitStore(logger *slog.Logger, dbPath string) *storage.Repository {
	repo, err := storage.NewRepository(dbPath)
	if err != nil {
		logger.Error("Failed to open ledger store", "error", err, "path", dbPath)
		os.Exit(1)
	}
	return repo
}

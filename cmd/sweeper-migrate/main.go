package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"github.com/vancomm/sweeper/internal/config"
	"github.com/vancomm/sweeper/internal/database"
)

func main() {
	_ = godotenv.Load()

	var logger *slog.Logger
	if config.Development() {
		logger = slog.New(tint.NewHandler(os.Stderr, nil))
	} else {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}

	url, err := config.DbURL()
	if err != nil {
		logger.Error("no database configured", slog.Any("error", err))
		os.Exit(1)
	}

	version, dirty, err := database.Migrate(url, database.Migrations)
	if err != nil {
		logger.Error("failed to migrate", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("migration successful", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
}

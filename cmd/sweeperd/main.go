package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"github.com/vancomm/sweeper/internal/app"
	"github.com/vancomm/sweeper/internal/config"
	"github.com/vancomm/sweeper/internal/database"
	"github.com/vancomm/sweeper/internal/mines"
)

func newLogger() *slog.Logger {
	if config.Development() {
		return slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, nil))
}

func main() {
	// a missing .env is fine, the environment may already be set
	envErr := godotenv.Load()

	logger := newLogger()
	mines.Log = logger.With(slog.String("component", "mines"))
	if envErr != nil && !os.IsNotExist(envErr) {
		logger.Warn("unable to load .env", slog.Any("error", envErr))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a := app.New(logger, database.Migrations)

	if err := a.Start(ctx); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

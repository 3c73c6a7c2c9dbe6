package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/sweeper/internal/config"
	"github.com/vancomm/sweeper/internal/database"
	"github.com/vancomm/sweeper/internal/middleware"
	"github.com/vancomm/sweeper/internal/telemetry"
)

const shutdownTimeout = 30 * time.Second

type App struct {
	logger     *slog.Logger
	router     *http.ServeMux
	db         *pgxpool.Pool // nil without a results ledger
	ws         *config.WebSocket
	game       *config.Game
	migrations fs.FS
}

func New(logger *slog.Logger, migrations fs.FS) *App {
	return &App{
		logger:     logger,
		router:     http.NewServeMux(),
		migrations: migrations,
	}
}

func (a *App) setup(ctx context.Context) error {
	if config.DatabaseConfigured() {
		db, err := database.ConnectAndMigrate(ctx, a.migrations)
		if err != nil {
			return fmt.Errorf("unable to connect to db: %w", err)
		}
		a.db = db
	} else {
		a.logger.Warn("no database configured, game results will not be recorded")
	}

	ws, err := config.NewWebSocket()
	if err != nil {
		return err
	}
	a.ws = ws

	game, err := config.NewGame()
	if err != nil {
		return err
	}
	a.game = game

	a.loadRoutes()
	return nil
}

func (a *App) Start(ctx context.Context) error {
	if telemetry.Enabled() {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			return fmt.Errorf("unable to set up telemetry: %w", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := shutdown(ctx); err != nil {
				a.logger.Warn("unable to flush traces", slog.Any("error", err))
			}
		}()
	}

	if err := a.setup(ctx); err != nil {
		return err
	}
	if a.db != nil {
		defer a.db.Close()
	}

	addr := config.Addr()
	server := &http.Server{
		Addr: addr,
		Handler: middleware.Wrap(
			a.router,
			middleware.Cors(config.AllowedOrigins()),
			middleware.Logging(a.logger),
			middleware.Recover(a.logger),
		),
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	a.logger.Info("server listening", slog.String("addr", addr))

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(ctx)
	})

	return g.Wait()
}

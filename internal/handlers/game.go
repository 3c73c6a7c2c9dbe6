package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vancomm/sweeper/internal/command"
	"github.com/vancomm/sweeper/internal/config"
	"github.com/vancomm/sweeper/internal/mines"
	"github.com/vancomm/sweeper/internal/repository"
	"github.com/vancomm/sweeper/internal/telemetry"
	"github.com/vancomm/sweeper/internal/timer"
)

// ResultStore is the results ledger. *repository.Queries implements it.
type ResultStore interface {
	CreateGameResult(context.Context, repository.CreateGameResultParams) (*repository.GameResult, error)
	GetBestTimes(context.Context, repository.BestTimeFilter) ([]repository.BestTime, error)
}

// GameHandler owns the one game session of the process. Every command goes
// through mu, so the session only ever sees a single caller.
type GameHandler struct {
	logger   *slog.Logger
	results  ResultStore // nil when no database is configured
	ws       *config.WebSocket
	defaults *config.Game
	tracer   trace.Tracer

	mu      sync.Mutex
	session *mines.Session
	clock   *timer.Stopwatch

	subsMu sync.Mutex
	subs   map[*websocket.Conn]struct{}
}

func NewGameHandler(
	logger *slog.Logger,
	results ResultStore,
	ws *config.WebSocket,
	defaults *config.Game,
	rnd mines.Rand,
) *GameHandler {
	handler := &GameHandler{
		logger:   logger,
		results:  results,
		ws:       ws,
		defaults: defaults,
		tracer:   telemetry.Tracer("game"),
		session:  mines.NewSession(rnd),
		clock:    timer.NewStopwatch(),
		subs:     make(map[*websocket.Conn]struct{}),
	}

	handler.clock.Observe(handler.session.NewGame(
		defaults.Width, defaults.Height, defaults.MineCount,
	))

	return handler
}

// snapshot must be called with mu held.
func (g *GameHandler) snapshot() *GameDTO {
	p := g.session.Params()
	return &GameDTO{
		Grid:      g.session.Grid(),
		Width:     p.Width,
		Height:    p.Height,
		MineCount: p.MineCount,
		Remaining: g.session.RemainingMineCount(),
		GameOver:  g.session.IsGameOver(),
		Won:       g.session.Won(),
		ElapsedMs: g.clock.Elapsed().Milliseconds(),
	}
}

func (g *GameHandler) current() *GameDTO {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshot()
}

// execute applies cmd to the session and fans the resulting events out to
// the stopwatch, the results ledger and every WebSocket subscriber.
func (g *GameHandler) execute(ctx context.Context, cmd command.Command) (*UpdateDTO, error) {
	ctx, span := g.tracer.Start(ctx, "game.execute", trace.WithAttributes(
		attribute.String("command.verb", string(cmd.Verb)),
		attribute.IntSlice("command.args", cmd.Args),
	))
	defer span.End()

	g.mu.Lock()
	events, err := cmd.Execute(g.session)
	if err != nil {
		g.mu.Unlock()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	g.clock.Observe(events)
	update := &UpdateDTO{Events: events, Game: g.snapshot()}

	var result *repository.CreateGameResultParams
	if ended, ok := mines.Find(events, mines.GameEnded); ok {
		started := g.clock.StartedAt()
		result = &repository.CreateGameResultParams{
			GameParams: g.session.Params(),
			Won:        ended.Won,
			StartedAt:  started,
			EndedAt:    started.Add(g.clock.Elapsed()),
		}
	}
	g.mu.Unlock()

	span.SetAttributes(attribute.Int("game.events", len(events)))

	if result != nil {
		g.logger.Info("game ended",
			slog.Bool("won", result.Won),
			slog.Any("params", result.GameParams),
			slog.Duration("playtime", result.EndedAt.Sub(result.StartedAt)),
		)
		g.record(ctx, *result)
	}

	g.broadcast(update)
	return update, nil
}

func (g *GameHandler) record(ctx context.Context, params repository.CreateGameResultParams) {
	if g.results == nil {
		return
	}
	if _, err := g.results.CreateGameResult(ctx, params); err != nil {
		g.logger.Error("unable to record game result", slog.Any("error", err))
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, mines.ErrOutOfBounds):
		return http.StatusBadRequest
	case errors.Is(err, mines.ErrNoGame):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (g *GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseNewGameDTO(r.URL.Query())
	if err != nil {
		sendError(w, g.logger, http.StatusBadRequest, err)
		return
	}

	update, err := g.execute(r.Context(), dto.Command(g.defaults))
	if err != nil {
		sendError(w, g.logger, statusFor(err), err)
		return
	}

	sendJSON(w, g.logger, http.StatusOK, update)
}

func (g *GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, g.logger, http.StatusOK, g.current())
}

func (g *GameHandler) MakeAMove(w http.ResponseWriter, r *http.Request) {
	cmd, err := ParseMoveDTO(r.URL.Query())
	if err != nil {
		sendError(w, g.logger, http.StatusBadRequest, err)
		return
	}

	update, err := g.execute(r.Context(), cmd)
	if err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			g.logger.Error("unable to apply move", slog.Any("error", err))
		}
		sendError(w, g.logger, statusFor(err), err)
		return
	}

	sendJSON(w, g.logger, http.StatusOK, update)
}

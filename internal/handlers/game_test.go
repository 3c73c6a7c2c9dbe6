package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/sweeper/internal/config"
	"github.com/vancomm/sweeper/internal/mines"
	"github.com/vancomm/sweeper/internal/repository"
)

type fakeResults struct {
	mu      sync.Mutex
	created []repository.CreateGameResultParams
	filter  repository.BestTimeFilter
	times   []repository.BestTime
	err     error
}

func (f *fakeResults) CreateGameResult(
	_ context.Context, params repository.CreateGameResultParams,
) (*repository.GameResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, params)
	return &repository.GameResult{Won: params.Won}, f.err
}

func (f *fakeResults) GetBestTimes(
	_ context.Context, filter repository.BestTimeFilter,
) ([]repository.BestTime, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filter = filter
	return f.times, f.err
}

func newTestHandler(t *testing.T, results ResultStore) *GameHandler {
	t.Helper()
	ws, err := config.NewWebSocket()
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	defaults := &config.Game{Width: 9, Height: 9, MineCount: 10}
	return NewGameHandler(logger, results, ws, defaults, rand.New(rand.NewPCG(1, 2)))
}

func do(t *testing.T, h http.HandlerFunc, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func eventKinds(events []mines.Event) []mines.EventKind {
	ks := make([]mines.EventKind, len(events))
	for i, e := range events {
		ks[i] = e.Kind
	}
	return ks
}

func TestFetchDefaultGame(t *testing.T) {
	h := newTestHandler(t, nil)

	rec := do(t, h.Fetch, http.MethodGet, "/game")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	game := decode[GameDTO](t, rec)
	assert.Equal(t, 9, game.Width)
	assert.Equal(t, 9, game.Height)
	assert.Equal(t, 10, game.MineCount)
	assert.Equal(t, 10, game.Remaining)
	assert.Len(t, game.Grid, 81)
	assert.False(t, game.GameOver)
}

func TestNewGame(t *testing.T) {
	h := newTestHandler(t, nil)

	rec := do(t, h.NewGame, http.MethodPost, "/game?width=16&height=8&mine_count=500")
	require.Equal(t, http.StatusOK, rec.Code)

	update := decode[UpdateDTO](t, rec)
	assert.Equal(t, []mines.Event{
		{Kind: mines.GameStarted, Count: 127},
		{Kind: mines.CounterChanged, Count: 127},
	}, update.Events)
	assert.Equal(t, 16, update.Game.Width)
	assert.Equal(t, 8, update.Game.Height)
	assert.Equal(t, 127, update.Game.MineCount)
}

func TestNewGameDefaults(t *testing.T) {
	h := newTestHandler(t, nil)

	rec := do(t, h.NewGame, http.MethodPost, "/game?width=5")
	require.Equal(t, http.StatusOK, rec.Code)

	update := decode[UpdateDTO](t, rec)
	assert.Equal(t, 5, update.Game.Width)
	assert.Equal(t, 9, update.Game.Height)
	assert.Equal(t, 10, update.Game.MineCount)
}

func TestNewGameBadQuery(t *testing.T) {
	h := newTestHandler(t, nil)

	rec := do(t, h.NewGame, http.MethodPost, "/game?width=wide")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[map[string]string](t, rec), "error")
}

func TestMakeAMoveWinsAndRecords(t *testing.T) {
	results := &fakeResults{}
	h := newTestHandler(t, results)
	require.Equal(t, http.StatusOK, do(t, h.NewGame, http.MethodPost, "/game?width=1&height=2&mine_count=1").Code)

	rec := do(t, h.MakeAMove, http.MethodPost, "/game/move?move=open&x=0&y=0")
	require.Equal(t, http.StatusOK, rec.Code)

	update := decode[UpdateDTO](t, rec)
	assert.Equal(t, []mines.EventKind{
		mines.FirstCellOpened,
		mines.Revealed,
		mines.Victory,
		mines.MineSolved,
		mines.CounterChanged,
		mines.GameEnded,
	}, eventKinds(update.Events))
	assert.True(t, update.Game.GameOver)
	assert.True(t, update.Game.Won)
	assert.Equal(t, mines.Grid{1, mines.CorrectFlag}, update.Game.Grid)

	require.Len(t, results.created, 1)
	created := results.created[0]
	assert.True(t, created.Won)
	assert.Equal(t, mines.GameParams{Width: 1, Height: 2, MineCount: 1}, created.GameParams)
	assert.False(t, created.StartedAt.IsZero())
	assert.False(t, created.EndedAt.Before(created.StartedAt))

	rec = do(t, h.MakeAMove, http.MethodPost, "/game/move?move=flag&x=0&y=1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[UpdateDTO](t, rec).Events)
	assert.Len(t, results.created, 1)
}

func TestMakeAMoveFlag(t *testing.T) {
	h := newTestHandler(t, nil)

	rec := do(t, h.MakeAMove, http.MethodPost, "/game/move?move=f&x=3&y=4")
	require.Equal(t, http.StatusOK, rec.Code)

	update := decode[UpdateDTO](t, rec)
	assert.Equal(t, []mines.Event{
		{Kind: mines.FlagPlaced, Point: mines.Point{X: 3, Y: 4}},
		{Kind: mines.CounterChanged, Count: 9},
	}, update.Events)
	assert.Equal(t, mines.Flag, update.Game.Grid[4*9+3])
}

func TestMakeAMoveBadRequests(t *testing.T) {
	h := newTestHandler(t, nil)

	for _, target := range []string{
		"/game/move?move=open&x=9&y=0",
		"/game/move?move=open&x=-1&y=0",
		"/game/move?move=dig&x=1&y=1",
		"/game/move?move=open&x=1",
		"/game/move?x=1&y=1",
	} {
		rec := do(t, h.MakeAMove, http.MethodPost, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}

	game := h.current()
	for _, status := range game.Grid {
		assert.Equal(t, mines.Unknown, status)
	}
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(&mines.OutOfBoundsError{}))
	assert.Equal(t, http.StatusConflict, statusFor(mines.ErrNoGame))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("boom")))
}

func TestBestTimes(t *testing.T) {
	t.Run("no ledger", func(t *testing.T) {
		h := newTestHandler(t, nil)
		rec := do(t, h.BestTimes, http.MethodGet, "/results")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("filtered", func(t *testing.T) {
		results := &fakeResults{times: []repository.BestTime{
			{GameResultId: 1, Width: 9, Height: 9, MineCount: 10, PlaytimeMs: 1234},
		}}
		h := newTestHandler(t, results)

		rec := do(t, h.BestTimes, http.MethodGet, "/results?width=9&height=9&mine_count=10&limit=5")
		require.Equal(t, http.StatusOK, rec.Code)

		assert.Equal(t, results.times, decode[[]repository.BestTime](t, rec))
		assert.Equal(t, repository.BestTimeFilter{
			GameParams: &mines.GameParams{Width: 9, Height: 9, MineCount: 10},
			Limit:      5,
		}, results.filter)
	})

	t.Run("empty", func(t *testing.T) {
		results := &fakeResults{}
		h := newTestHandler(t, results)

		rec := do(t, h.BestTimes, http.MethodGet, "/results?width=9")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
		assert.Nil(t, results.filter.GameParams)
		assert.Equal(t, 100, results.filter.Limit)
	})

	t.Run("store error", func(t *testing.T) {
		h := newTestHandler(t, &fakeResults{err: errors.New("db down")})
		rec := do(t, h.BestTimes, http.MethodGet, "/results")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestConnectWS(t *testing.T) {
	h := newTestHandler(t, nil)
	server := httptest.NewServer(http.HandlerFunc(h.ConnectWS))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var initial UpdateDTO
	require.NoError(t, conn.ReadJSON(&initial))
	assert.Empty(t, initial.Events)
	assert.Equal(t, 9, initial.Game.Width)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("n 1 2 1\no 0 1")))

	var started UpdateDTO
	require.NoError(t, conn.ReadJSON(&started))
	assert.Equal(t, mines.GameStarted, started.Events[0].Kind)

	var opened UpdateDTO
	require.NoError(t, conn.ReadJSON(&opened))
	assert.Contains(t, eventKinds(opened.Events), mines.Victory)
	assert.True(t, opened.Game.Won)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("o 5 5")))
	var failure map[string]string
	require.NoError(t, conn.ReadJSON(&failure))
	assert.Contains(t, failure["error"], "outside")

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("dance")))
	failure = nil
	require.NoError(t, conn.ReadJSON(&failure))
	assert.Contains(t, failure["error"], "unknown command")
}

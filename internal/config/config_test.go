package config

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGameDefaults(t *testing.T) {
	g, err := NewGame()
	require.NoError(t, err)
	assert.Equal(t, Game{Width: 9, Height: 9, MineCount: 10}, *g)
}

func TestNewGameFromEnv(t *testing.T) {
	t.Setenv("GAME_WIDTH", "30")
	t.Setenv("GAME_HEIGHT", "16")
	t.Setenv("GAME_MINE_COUNT", "99")
	t.Setenv("GAME_SEED", "42")

	g, err := NewGame()
	require.NoError(t, err)
	assert.Equal(t, Game{Width: 30, Height: 16, MineCount: 99, Seed: 42}, *g)
}

func TestNewGameInvalidEnv(t *testing.T) {
	t.Setenv("GAME_WIDTH", "wide")

	_, err := NewGame()
	assert.Error(t, err)
}

func TestPort(t *testing.T) {
	t.Setenv("APP_PORT", "")
	assert.Equal(t, ":8080", Addr())

	t.Setenv("APP_PORT", "9000")
	assert.Equal(t, ":9000", Addr())
}

func TestDevelopment(t *testing.T) {
	t.Setenv("DEVELOPMENT", "0")
	assert.False(t, Development())

	t.Setenv("DEVELOPMENT", "1")
	assert.True(t, Development())
}

func TestDatabaseConfigured(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgresql://u:p@localhost:5432/db")
	assert.True(t, DatabaseConfigured())

	url, err := DbURL()
	require.NoError(t, err)
	assert.Equal(t, "postgresql://u:p@localhost:5432/db", url)
}

func TestDatabaseURL(t *testing.T) {
	c := Database{
		Username: "sweeper",
		Password: "p@ss word",
		Host:     "db",
		Port:     5432,
		DBName:   "sweeper",
		SSLMode:  "disable",
	}
	assert.Equal(t,
		"postgresql://sweeper:p%40ss+word@db:5432/sweeper?sslmode=disable",
		c.URL(),
	)
}

func TestNewDatabasePasswordFile(t *testing.T) {
	f := filepath.Join(t.TempDir(), "password")
	require.NoError(t, os.WriteFile(f, []byte("secret\n"), 0o600))

	t.Setenv("POSTGRES_USER", "sweeper")
	t.Setenv("POSTGRES_PASSWORD", "")
	t.Setenv("POSTGRES_PASSWORD_FILE", f)
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_DB", "sweeper")

	c, err := NewDatabase()
	require.NoError(t, err)
	assert.Equal(t, "secret", c.Password)
	assert.Equal(t, uint16(5432), c.Port)
	assert.Equal(t, "disable", c.SSLMode)
}

func TestNewDatabaseMissing(t *testing.T) {
	t.Setenv("POSTGRES_USER", "")
	t.Setenv("POSTGRES_HOST", "")

	_, err := NewDatabase()
	assert.Error(t, err)
}

func TestWebSocketOrigins(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/game/connect", nil)
	req.Header.Set("Origin", "https://sweeper.example")

	t.Setenv("WS_ALLOWED_ORIGINS", "")
	ws, err := NewWebSocket()
	require.NoError(t, err)
	assert.True(t, ws.Upgrader.CheckOrigin(req))

	t.Setenv("WS_ALLOWED_ORIGINS", "https://other.example, https://sweeper.example")
	ws, err = NewWebSocket()
	require.NoError(t, err)
	assert.True(t, ws.Upgrader.CheckOrigin(req))

	req.Header.Set("Origin", "https://evil.example")
	assert.False(t, ws.Upgrader.CheckOrigin(req))
}

func TestAllowedOrigins(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	assert.Empty(t, AllowedOrigins())

	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example ,,https://b.example")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, AllowedOrigins())
}

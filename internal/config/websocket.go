package config

import (
	"net/http"
	"os"
	"slices"

	"github.com/gorilla/websocket"
)

type WebSocket struct {
	Upgrader websocket.Upgrader
	// ReadLimit caps a single client message in bytes.
	ReadLimit int64
}

// NewWebSocket accepts any origin unless WS_ALLOWED_ORIGINS lists them,
// comma separated.
func NewWebSocket() (*WebSocket, error) {
	allowed := splitList(os.Getenv("WS_ALLOWED_ORIGINS"))

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowed) == 0 {
				return true
			}
			return slices.Contains(allowed, r.Header.Get("Origin"))
		},
	}

	ws := &WebSocket{
		Upgrader:  upgrader,
		ReadLimit: 4096,
	}

	return ws, nil
}

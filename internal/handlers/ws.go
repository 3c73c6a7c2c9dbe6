package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/vancomm/sweeper/internal/command"
)

func (g *GameHandler) subscribe(conn *websocket.Conn) {
	g.subsMu.Lock()
	defer g.subsMu.Unlock()
	g.subs[conn] = struct{}{}
}

func (g *GameHandler) unsubscribe(conn *websocket.Conn) {
	g.subsMu.Lock()
	defer g.subsMu.Unlock()
	delete(g.subs, conn)
}

// send serializes writes; gorilla connections allow one writer at a time.
func (g *GameHandler) send(conn *websocket.Conn, v any) error {
	g.subsMu.Lock()
	defer g.subsMu.Unlock()
	return conn.WriteJSON(v)
}

func (g *GameHandler) broadcast(update *UpdateDTO) {
	g.subsMu.Lock()
	defer g.subsMu.Unlock()
	for conn := range g.subs {
		if err := conn.WriteJSON(update); err != nil {
			g.logger.Warn("unable to push update", slog.Any("error", err))
		}
	}
}

// ConnectWS streams updates to the client and accepts commands, one per
// line, in the format understood by [command.Parse].
func (g *GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	conn, err := g.ws.Upgrader.Upgrade(w, r, nil) // headers sent here
	if err != nil {
		g.logger.Error("unable to upgrade", slog.Any("error", err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(g.ws.ReadLimit)

	g.logger.Debug("established WS connection", slog.String("remoteAddr", r.RemoteAddr))

	g.subscribe(conn)
	defer g.unsubscribe(conn)

	if err := g.send(conn, &UpdateDTO{Game: g.current()}); err != nil {
		g.logger.Warn("unable to send initial state", slog.Any("error", err))
		return
	}

	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				g.logger.Warn("abnormal ws break", slog.Any("error", err))
			}
			return
		}
		if mt != websocket.TextMessage {
			return
		}

		for _, line := range command.Lines(string(message)) {
			g.logger.Debug(fmt.Sprintf("\t> %s", line))

			cmd, err := command.Parse(line)
			if err == nil {
				_, err = g.execute(r.Context(), cmd)
			}
			if err != nil {
				if err := g.send(conn, newErrorDTO(err)); err != nil {
					g.logger.Warn("unable to send error", slog.Any("error", err))
					return
				}
				break
			}
		}
	}
}

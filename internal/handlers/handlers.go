package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// errorDTO is the body of every failed request, HTTP or WebSocket.
type errorDTO struct {
	Error string `json:"error"`
}

func newErrorDTO(err error) errorDTO {
	return errorDTO{Error: err.Error()}
}

// sendJSON encodes v before touching the response so an encoding failure
// can still turn into a 500.
func sendJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		logger.Error("unable to encode response", slog.Any("error", err))
		status = http.StatusInternalServerError
		payload, _ = json.Marshal(errorDTO{Error: "unable to encode response"})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(payload); err != nil {
		logger.Warn("unable to write response", slog.Any("error", err))
	}
}

func sendError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	sendJSON(w, logger, status, newErrorDTO(err))
}

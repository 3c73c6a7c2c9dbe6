package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/vancomm/sweeper/internal/repository"
)

var errNoLedger = errors.New("results are not recorded on this server")

func (g *GameHandler) BestTimes(w http.ResponseWriter, r *http.Request) {
	if g.results == nil {
		sendError(w, g.logger, http.StatusServiceUnavailable, errNoLedger)
		return
	}

	dto, err := ParseResultsDTO(r.URL.Query())
	if err != nil {
		sendError(w, g.logger, http.StatusBadRequest, err)
		return
	}

	limit := dto.Limit
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	times, err := g.results.GetBestTimes(r.Context(), repository.BestTimeFilter{
		GameParams: dto.GameParams(),
		Limit:      limit,
	})
	if err != nil {
		g.logger.Error("unable to fetch best times", slog.Any("error", err))
		sendError(w, g.logger, http.StatusInternalServerError, errors.New("unable to fetch best times"))
		return
	}
	if times == nil {
		times = []repository.BestTime{}
	}

	sendJSON(w, g.logger, http.StatusOK, times)
}

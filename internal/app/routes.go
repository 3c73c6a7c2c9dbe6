package app

import (
	"hash/maphash"
	"math/rand/v2"
	"path"

	"github.com/vancomm/sweeper/internal/config"
	"github.com/vancomm/sweeper/internal/handlers"
	"github.com/vancomm/sweeper/internal/repository"
)

// createRand seeds from seed, or randomly when seed is 0.
func createRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(
			new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
		))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

func (a *App) loadRoutes() {
	var results handlers.ResultStore
	if a.db != nil {
		results = repository.New(a.db)
	}

	game := handlers.NewGameHandler(
		a.logger, results, a.ws, a.game, createRand(a.game.Seed),
	)

	base := "/" + config.BasePath()
	route := func(method, p string) string {
		return method + " " + path.Join(base, p)
	}

	a.router.HandleFunc(route("POST", "game"), game.NewGame)
	a.router.HandleFunc(route("GET", "game"), game.Fetch)
	a.router.HandleFunc(route("POST", "game/move"), game.MakeAMove)
	a.router.HandleFunc(route("GET", "game/connect"), game.ConnectWS)
	a.router.HandleFunc(route("GET", "results"), game.BestTimes)
}

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Game holds the parameters used when a new game request leaves some out.
type Game struct {
	Width     int    `env:"GAME_WIDTH" envDefault:"9"`
	Height    int    `env:"GAME_HEIGHT" envDefault:"9"`
	MineCount int    `env:"GAME_MINE_COUNT" envDefault:"10"`
	Seed      uint64 `env:"GAME_SEED"` // 0 picks a random seed
}

func NewGame() (*Game, error) {
	var g Game
	if err := env.Parse(&g); err != nil {
		return nil, fmt.Errorf("parse game env: %w", err)
	}
	return &g, nil
}

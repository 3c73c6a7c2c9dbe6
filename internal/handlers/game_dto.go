package handlers

import (
	"fmt"
	"net/url"

	"github.com/gorilla/schema"

	"github.com/vancomm/sweeper/internal/command"
	"github.com/vancomm/sweeper/internal/config"
	"github.com/vancomm/sweeper/internal/mines"
)

var decoder = func() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}()

// NewGameDTO fields are optional; missing ones fall back to the configured
// defaults.
type NewGameDTO struct {
	Width     *int `schema:"width"`
	Height    *int `schema:"height"`
	MineCount *int `schema:"mine_count"`
}

func ParseNewGameDTO(src url.Values) (NewGameDTO, error) {
	var dto NewGameDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

func (dto NewGameDTO) Command(defaults *config.Game) command.Command {
	pick := func(v *int, def int) int {
		if v != nil {
			return *v
		}
		return def
	}
	return command.Command{
		Verb: command.NewGame,
		Args: []int{
			pick(dto.Width, defaults.Width),
			pick(dto.Height, defaults.Height),
			pick(dto.MineCount, defaults.MineCount),
		},
	}
}

type MoveDTO struct {
	Move string `schema:"move,required"`
	X    int    `schema:"x,required"`
	Y    int    `schema:"y,required"`
}

var moveVerbs = map[string]command.Verb{
	"open":  command.Open,
	"o":     command.Open,
	"flag":  command.Flag,
	"f":     command.Flag,
	"chord": command.Chord,
	"c":     command.Chord,
}

func ParseMoveDTO(src url.Values) (command.Command, error) {
	var dto MoveDTO
	if err := decoder.Decode(&dto, src); err != nil {
		return command.Command{}, err
	}
	verb, ok := moveVerbs[dto.Move]
	if !ok {
		return command.Command{}, fmt.Errorf("unknown move %q", dto.Move)
	}
	return command.Command{Verb: verb, Args: []int{dto.X, dto.Y}}, nil
}

type ResultsDTO struct {
	Width     *int `schema:"width"`
	Height    *int `schema:"height"`
	MineCount *int `schema:"mine_count"`
	Limit     int  `schema:"limit"`
}

func ParseResultsDTO(src url.Values) (ResultsDTO, error) {
	var dto ResultsDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

// GameParams is set only when all three dimensions are given.
func (dto ResultsDTO) GameParams() *mines.GameParams {
	if dto.Width == nil || dto.Height == nil || dto.MineCount == nil {
		return nil
	}
	return &mines.GameParams{
		Width: *dto.Width, Height: *dto.Height, MineCount: *dto.MineCount,
	}
}

type GameDTO struct {
	Grid      mines.Grid `json:"grid"`
	Width     int        `json:"width"`
	Height    int        `json:"height"`
	MineCount int        `json:"mine_count"`
	Remaining int        `json:"remaining"`
	GameOver  bool       `json:"game_over"`
	Won       bool       `json:"won"`
	ElapsedMs int64      `json:"elapsed_ms"`
}

// UpdateDTO is sent after every applied command.
type UpdateDTO struct {
	Events []mines.Event `json:"events"`
	Game   *GameDTO      `json:"game"`
}

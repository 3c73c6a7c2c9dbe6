package mines

import (
	"log/slog"
)

var Log *slog.Logger = slog.Default()

type GameParams struct {
	Width     int `json:"width"`
	Height    int `json:"height"`
	MineCount int `json:"mine_count"`
}

func (p GameParams) Unpack() (w int, h int, mc int) {
	return p.Width, p.Height, p.MineCount
}

// Session runs one game at a time. It is not safe for concurrent use.
type Session struct {
	rnd   Rand
	board *Board

	hasOpenedFirstCell bool
	isGameOver         bool
	won                bool
	exploded           *Point
	remaining          int // mines minus flags, display only
}

func NewSession(rnd Rand) *Session {
	return &Session{rnd: rnd}
}

// NewGame discards the current board and starts over. The parameters are
// clamped, see [NewBoard].
func (s *Session) NewGame(width, height, mineCount int) []Event {
	board := NewBoard(width, height, mineCount, s.rnd)
	if err := board.PlaceMines(); err != nil {
		// unreachable: nothing is excluded and mineCount < width*height
		panic(err)
	}
	board.RecomputeAllNeighborCounts()

	*s = Session{
		rnd:       s.rnd,
		board:     board,
		remaining: board.MineCount(),
	}

	Log.Debug("new game", slog.Any("params", s.Params()))

	return []Event{
		{Kind: GameStarted, Count: board.MineCount()},
		{Kind: CounterChanged, Count: s.remaining},
	}
}

func (s *Session) Board() *Board { return s.board }

func (s *Session) Params() GameParams {
	if s.board == nil {
		return GameParams{}
	}
	return GameParams{
		Width:     s.board.Width(),
		Height:    s.board.Height(),
		MineCount: s.board.MineCount(),
	}
}

func (s *Session) IsGameOver() bool        { return s.isGameOver }
func (s *Session) Won() bool               { return s.won }
func (s *Session) RemainingMineCount() int { return s.remaining }

func (s *Session) Grid() Grid {
	if s.board == nil {
		return nil
	}
	return gridOf(s.board, s.isGameOver, s.won, s.exploded)
}

func (s *Session) cellAt(x, y int) (*Cell, error) {
	if s.board == nil {
		return nil, ErrNoGame
	}
	c := s.board.Cell(x, y)
	if c == nil {
		return nil, &OutOfBoundsError{
			Point: Point{X: x, Y: y},
			Width: s.board.Width(), Height: s.board.Height(),
		}
	}
	return c, nil
}

func (s *Session) OpenCell(x, y int) ([]Event, error) {
	if _, err := s.cellAt(x, y); err != nil {
		return nil, err
	}
	if s.isGameOver {
		return nil, nil
	}

	var events []Event
	firstOpen := !s.hasOpenedFirstCell
	if firstOpen {
		s.hasOpenedFirstCell = true
		events = append(events, Event{Kind: FirstCellOpened, Point: Point{X: x, Y: y}})
	}

	return s.apply(events, Reveal(s.board, Point{X: x, Y: y}, firstOpen)), nil
}

// apply folds reveal events into session state and appends whatever the
// outcome requires the caller to show.
func (s *Session) apply(events, revealed []Event) []Event {
	before := s.remaining
	for _, e := range revealed {
		events = append(events, e)
		switch e.Kind {
		case FlagCleared:
			s.remaining++
		case Detonated:
			s.isGameOver = true
			p := e.Point
			s.exploded = &p
			for _, c := range s.board.mines {
				if c.Point != p {
					events = append(events, Event{
						Kind: MineExposed, Point: c.Point, Flagged: c.IsFlagged,
					})
				}
			}
		case Victory:
			s.isGameOver = true
			s.won = true
			s.remaining = 0
			for _, c := range s.board.mines {
				events = append(events, Event{Kind: MineSolved, Point: c.Point})
			}
		}
	}

	if s.remaining != before {
		events = append(events, Event{Kind: CounterChanged, Count: s.remaining})
	}
	if s.isGameOver {
		events = append(events, Event{Kind: GameEnded, Won: s.won})
		Log.Debug("game over", slog.Bool("won", s.won))
	}
	return events
}

func (s *Session) ToggleFlag(x, y int) ([]Event, error) {
	c, err := s.cellAt(x, y)
	if err != nil {
		return nil, err
	}
	if c.IsRevealed || s.isGameOver {
		return nil, nil
	}

	c.IsFlagged = !c.IsFlagged
	kind := FlagRemoved
	if c.IsFlagged {
		kind = FlagPlaced
		s.remaining--
	} else {
		s.remaining++
	}

	return []Event{
		{Kind: kind, Point: c.Point},
		{Kind: CounterChanged, Count: s.remaining},
	}, nil
}

// ChordCell opens every unflagged neighbor of a revealed cell once the
// number of flags around it matches its mine count.
func (s *Session) ChordCell(x, y int) ([]Event, error) {
	c, err := s.cellAt(x, y)
	if err != nil {
		return nil, err
	}
	if !c.IsRevealed || c.AdjacentMines == 0 || s.isGameOver {
		return nil, nil
	}

	var (
		flags int
		todo  []*Cell
	)
	for _, n := range s.board.NeighborsOf(x, y) {
		if n.IsFlagged {
			flags++
		} else if !n.IsRevealed {
			todo = append(todo, n)
		}
	}
	if flags != c.AdjacentMines {
		return nil, nil
	}

	var events []Event
	for _, n := range todo {
		events = s.apply(events, Reveal(s.board, n.Point, false))
		if s.isGameOver {
			break
		}
	}
	return events, nil
}

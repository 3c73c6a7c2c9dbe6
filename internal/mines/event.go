package mines

import (
	"fmt"
	"strings"
)

type EventKind int8

const (
	GameStarted EventKind = iota
	FirstCellOpened
	FlagPlaced
	FlagRemoved
	FlagCleared // flag removed because the cell got revealed
	Revealed
	Detonated
	Victory
	MineExposed
	MineSolved
	CounterChanged
	GameEnded
)

var eventKindNames = [...]string{
	GameStarted:     "game_started",
	FirstCellOpened: "first_cell_opened",
	FlagPlaced:      "flag_placed",
	FlagRemoved:     "flag_removed",
	FlagCleared:     "flag_cleared",
	Revealed:        "revealed",
	Detonated:       "detonated",
	Victory:         "victory",
	MineExposed:     "mine_exposed",
	MineSolved:      "mine_solved",
	CounterChanged:  "counter_changed",
	GameEnded:       "game_ended",
}

func (k EventKind) String() string {
	if 0 <= k && int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// EventKind implements [encoding.TextMarshaler]
func (k EventKind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(eventKindNames) {
		return nil, fmt.Errorf("unknown event kind %d", int(k))
	}
	return []byte(eventKindNames[k]), nil
}

// EventKind implements [encoding.TextUnmarshaler]
func (k *EventKind) UnmarshalText(text []byte) error {
	for i, name := range eventKindNames {
		if strings.EqualFold(name, string(text)) {
			*k = EventKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown event kind %q", text)
}

// Event describes one observable change. Count carries the adjacent mine
// count for Revealed, the remaining mine counter for CounterChanged and the
// mine count for GameStarted.
type Event struct {
	Kind EventKind `json:"kind"`
	Point
	Count   int  `json:"count,omitempty"`
	Won     bool `json:"won,omitempty"`
	Flagged bool `json:"flagged,omitempty"`
}

func (e Event) String() string {
	switch e.Kind {
	case Revealed, CounterChanged, GameStarted:
		return fmt.Sprintf("%s %s (%d)", e.Kind, e.Point, e.Count)
	case GameEnded:
		return fmt.Sprintf("%s won=%t", e.Kind, e.Won)
	default:
		return fmt.Sprintf("%s %s", e.Kind, e.Point)
	}
}

// Find returns the first event of the given kind.
func Find(events []Event, kind EventKind) (Event, bool) {
	for _, e := range events {
		if e.Kind == kind {
			return e, true
		}
	}
	return Event{}, false
}

// Package command parses the line-based move language shared by the
// terminal client and the WebSocket endpoint.
//
//	n W H M   start a new game
//	o X Y     open a cell
//	f X Y     toggle a flag
//	c X Y     chord around a revealed cell
//	g         fetch the current state
package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vancomm/sweeper/internal/mines"
)

type Verb string

const (
	Get     Verb = "g"
	NewGame Verb = "n"
	Open    Verb = "o"
	Flag    Verb = "f"
	Chord   Verb = "c"
)

// Maps known commands to number of arguments
var commandNargs = map[Verb]int{
	Get:     0,
	NewGame: 3,
	Open:    2,
	Flag:    2,
	Chord:   2,
}

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrNargs          = errors.New("invalid number of arguments")
)

type Command struct {
	Verb Verb
	Args []int
}

func Parse(line string) (Command, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return Command{}, ErrUnknownCommand
	}

	verb := Verb(strings.ToLower(parts[0]))
	nargs, ok := commandNargs[verb]
	if !ok {
		return Command{}, fmt.Errorf("%w %q", ErrUnknownCommand, parts[0])
	}
	if nargs != len(parts)-1 {
		return Command{}, fmt.Errorf(
			"%w: %s takes %d, got %d", ErrNargs, verb, nargs, len(parts)-1,
		)
	}

	args := make([]int, nargs)
	for i, s := range parts[1:] {
		v, err := strconv.Atoi(s)
		if err != nil {
			return Command{}, fmt.Errorf("argument %d must be an int", i+1)
		}
		args[i] = v
	}
	return Command{Verb: verb, Args: args}, nil
}

// Execute applies c to s and returns the resulting events.
func (c Command) Execute(s *mines.Session) ([]mines.Event, error) {
	switch c.Verb {
	case Get:
		return nil, nil
	case NewGame:
		return s.NewGame(c.Args[0], c.Args[1], c.Args[2]), nil
	case Open:
		return s.OpenCell(c.Args[0], c.Args[1])
	case Flag:
		return s.ToggleFlag(c.Args[0], c.Args[1])
	case Chord:
		return s.ChordCell(c.Args[0], c.Args[1])
	}
	return nil, ErrUnknownCommand
}

// Lines splits a multi-line message into trimmed, non-empty command lines.
func Lines(message string) []string {
	var lines []string
	for _, line := range strings.Split(message, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

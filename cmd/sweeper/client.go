package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/sweeper/internal/command"
	"github.com/vancomm/sweeper/internal/mines"
	"github.com/vancomm/sweeper/internal/timer"
)

const usage = `commands:
  n W H M   new game
  o X Y     open a cell
  f X Y     toggle a flag
  c X Y     chord around a number
  g         show the board
  q         quit`

var errQuit = errors.New("quit")

type client struct {
	out     io.Writer
	session *mines.Session
	clock   *timer.Stopwatch
}

func newClient(out io.Writer, rnd mines.Rand) *client {
	return &client{
		out:     out,
		session: mines.NewSession(rnd),
		clock:   timer.NewStopwatch(),
	}
}

func (c *client) run(in io.Reader) error {
	fmt.Fprintln(c.out, usage)
	c.prompt()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		for _, line := range command.Lines(scanner.Text()) {
			if err := c.handle(line); errors.Is(err, errQuit) {
				return nil
			}
		}
		c.prompt()
	}
	return scanner.Err()
}

func (c *client) prompt() {
	fmt.Fprint(c.out, "> ")
}

// handle runs one command line and prints the outcome. Only errQuit is
// returned; command errors are shown to the player.
func (c *client) handle(line string) error {
	switch strings.ToLower(line) {
	case "q", "quit", "exit":
		return errQuit
	case "h", "help", "?":
		fmt.Fprintln(c.out, usage)
		return nil
	}

	cmd, err := command.Parse(line)
	if err != nil {
		fmt.Fprintln(c.out, "error:", err)
		return nil
	}

	events, err := cmd.Execute(c.session)
	if err != nil {
		log.WithField("line", line).Debug("rejected: ", err)
		fmt.Fprintln(c.out, "error:", err)
		return nil
	}
	c.clock.Observe(events)

	for _, e := range events {
		log.WithFields(logrus.Fields{"kind": e.Kind.String(), "cell": e.Point.String()}).Debug(e.String())
	}

	c.render(events)
	return nil
}

func (c *client) render(events []mines.Event) {
	board := c.session.Board()
	if board == nil {
		return
	}
	fmt.Fprint(c.out, c.session.Grid().ToString(board.Width()))
	fmt.Fprintf(c.out, "mines left: %d  time: %ds\n",
		c.session.RemainingMineCount(), int(c.clock.Elapsed().Seconds()))

	if ended, ok := mines.Find(events, mines.GameEnded); ok {
		if ended.Won {
			fmt.Fprintln(c.out, "You won!")
		} else {
			fmt.Fprintln(c.out, "Boom. Game over.")
		}
		log.WithFields(logrus.Fields{
			"won":      ended.Won,
			"playtime": c.clock.Elapsed().String(),
		}).Info("game ended")
	}
}

package mines

import "log/slog"

// Reveal opens the cell at p and cascades through connected cells with no
// adjacent mines. When firstOpen is set and p holds a mine, the mine is
// moved elsewhere first, so the first opened cell of a game is always safe.
//
// Reveal does not know about game-over state; callers must not invoke it
// once the game has ended. Revealing an already revealed cell yields no
// events.
func Reveal(b *Board, p Point, firstOpen bool) []Event {
	target := b.Cell(p.X, p.Y)
	if target == nil || target.IsRevealed {
		return nil
	}

	if firstOpen && target.IsMine {
		if b.RelocateMine(p) {
			target.AdjacentMines = 0
			b.RecomputeAllNeighborCounts()
		} else {
			Log.Warn("first cell is a mine but it could not be relocated", slog.String("cell", p.String()))
		}
	}

	var events []Event
	stack := []*Cell{target}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if c.IsRevealed {
			continue
		}

		c.IsRevealed = true
		if c.IsFlagged {
			c.IsFlagged = false
			events = append(events, Event{Kind: FlagCleared, Point: c.Point})
		}

		if c.IsMine {
			return append(events, Event{Kind: Detonated, Point: c.Point})
		}

		if c.AdjacentMines == 0 {
			for _, n := range b.NeighborsOf(c.X, c.Y) {
				if !n.IsMine && !n.IsRevealed {
					stack = append(stack, n)
				}
			}
		}
		events = append(events, Event{Kind: Revealed, Point: c.Point, Count: c.AdjacentMines})
	}

	if b.AllSafeCellsRevealed() {
		events = append(events, Event{Kind: Victory, Point: p})
	}
	return events
}

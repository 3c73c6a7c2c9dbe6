package mines

import (
	"fmt"
	"strconv"
	"strings"
)

type CellStatus int8

const (
	Unknown       CellStatus = -2
	Flag          CellStatus = -1
	CorrectFlag   CellStatus = 64 // post-game-over
	ExplodedMine  CellStatus = 65
	WrongFlag     CellStatus = 66
	UnflaggedMine CellStatus = 67
	// 0-8 for an open cell with given number of mined neighbors
)

func (s CellStatus) String() string {
	switch s {
	case Unknown:
		return "."
	case Flag:
		return "F"
	case 0, 1, 2, 3, 4, 5, 6, 7, 8:
		if s == 0 {
			return " "
		}
		return strconv.Itoa(int(s))
	case CorrectFlag:
		return "*"
	case ExplodedMine:
		return "X"
	case WrongFlag:
		return "x"
	case UnflaggedMine:
		return "@"
	default:
		return "!"
	}
}

// Grid is what a player may see of a board, row-major.
type Grid []CellStatus

func (g Grid) ToString(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			i := y*width + x
			if i >= len(g) {
				break
			}
			fmt.Fprint(&b, g[i].String()+" ")
		}
		fmt.Fprint(&b, "\n")

	}
	return b.String()
}

// gridOf projects a board onto player knowledge. While the game runs only
// revealed counts and flags are visible; once it is over every mine and
// every misplaced flag is shown too.
func gridOf(b *Board, over, won bool, exploded *Point) Grid {
	g := make(Grid, len(b.cells))
	for i := range b.cells {
		c := &b.cells[i]
		switch {
		case c.IsRevealed && !c.IsMine:
			g[i] = CellStatus(c.AdjacentMines)
		case !over && c.IsFlagged:
			g[i] = Flag
		case !over:
			g[i] = Unknown
		case exploded != nil && c.Point == *exploded:
			g[i] = ExplodedMine
		case c.IsMine && (won || c.IsFlagged):
			g[i] = CorrectFlag
		case c.IsMine:
			g[i] = UnflaggedMine
		case c.IsFlagged:
			g[i] = WrongFlag
		default:
			g[i] = Unknown
		}
	}
	return g
}

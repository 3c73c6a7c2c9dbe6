package mines

import "fmt"

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Point implements [fmt.Stringer]
func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.X, p.Y)
}

// Cell holds the state of one grid position. Its coordinates never change
// once the board is built.
type Cell struct {
	Point
	IsMine        bool
	IsRevealed    bool
	IsFlagged     bool
	AdjacentMines int // valid only after a full neighbor recompute
}

func newCell(x, y int) *Cell {
	return &Cell{Point: Point{X: x, Y: y}}
}

package mines

import (
	"fmt"
	"log/slog"
)

const (
	MinSide = 1
	MaxSide = 100
)

// Rand is the source of randomness for mine placement and relocation.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

type Board struct {
	width, height, mineCount int

	cells []Cell  // row-major, i = y*width + x
	mines []*Cell // iteration only, cells own the state
	rnd   Rand
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// NewBoard allocates an empty width x height board. Out-of-range
// dimensions are clamped: sides to [MinSide, MaxSide], mine count to
// [1, width*height-1]. A 1x1 board gets no mines at all since it has
// room for no safe cell otherwise.
func NewBoard(width, height, mineCount int, rnd Rand) *Board {
	w := clamp(width, MinSide, MaxSide)
	h := clamp(height, MinSide, MaxSide)
	m := clamp(mineCount, 1, w*h-1)
	if w*h == 1 {
		m = 0
	}
	if w != width || h != height || m != mineCount {
		Log.Debug("clamped board dimensions",
			slog.Any("requested", [3]int{width, height, mineCount}),
			slog.Any("clamped", [3]int{w, h, m}),
		)
	}

	b := &Board{
		width:     w,
		height:    h,
		mineCount: m,
		cells:     make([]Cell, w*h),
		rnd:       rnd,
	}
	for y := range h {
		for x := range w {
			b.cells[y*w+x] = *newCell(x, y)
		}
	}
	return b
}

func (b *Board) Width() int     { return b.width }
func (b *Board) Height() int    { return b.height }
func (b *Board) MineCount() int { return b.mineCount }

func (b *Board) InBounds(x, y int) bool {
	return 0 <= x && x < b.width && 0 <= y && y < b.height
}

// Cell returns nil for coordinates outside the grid.
func (b *Board) Cell(x, y int) *Cell {
	if !b.InBounds(x, y) {
		return nil
	}
	return &b.cells[y*b.width+x]
}

// Mines lists mine coordinates in placement order.
func (b *Board) Mines() []Point {
	points := make([]Point, len(b.mines))
	for i, c := range b.mines {
		points[i] = c.Point
	}
	return points
}

// PlaceMines clears any previous placement and puts exactly MineCount mines
// on distinct cells not listed in excluded. Candidates are drawn without
// replacement, so it always terminates in O(width*height).
func (b *Board) PlaceMines(excluded ...Point) error {
	skip := make(map[Point]struct{}, len(excluded))
	for _, p := range excluded {
		skip[p] = struct{}{}
	}

	candidates := make([]int, 0, len(b.cells))
	for i := range b.cells {
		if _, ok := skip[b.cells[i].Point]; !ok {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) < b.mineCount {
		return fmt.Errorf(
			"cannot place %d mines: only %d cells are not excluded",
			b.mineCount, len(candidates),
		)
	}

	for i := range b.cells {
		b.cells[i].IsMine = false
	}
	b.mines = b.mines[:0]

	k := len(candidates)
	for range b.mineCount {
		i := b.rnd.IntN(k)
		c := &b.cells[candidates[i]]
		c.IsMine = true
		b.mines = append(b.mines, c)
		k--
		candidates[i] = candidates[k]
	}
	return nil
}

var neighborOffsets = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// NeighborsOf returns the up to 8 Chebyshev-adjacent cells of (x, y),
// clipped at the edges, always in the same order.
func (b *Board) NeighborsOf(x, y int) []*Cell {
	neighbors := make([]*Cell, 0, len(neighborOffsets))
	for _, d := range neighborOffsets {
		if c := b.Cell(x+d[0], y+d[1]); c != nil {
			neighbors = append(neighbors, c)
		}
	}
	return neighbors
}

func (b *Board) RecomputeAllNeighborCounts() {
	for i := range b.cells {
		c := &b.cells[i]
		c.AdjacentMines = 0
		for _, n := range b.NeighborsOf(c.X, c.Y) {
			if n.IsMine {
				c.AdjacentMines++
			}
		}
	}
}

// RelocateMine moves the mine at from onto a random cell that is neither a
// mine nor revealed. It reports false and changes nothing if from is not a
// mine or no such cell exists. Neighbor counts are stale afterwards.
func (b *Board) RelocateMine(from Point) bool {
	src := b.Cell(from.X, from.Y)
	if src == nil || !src.IsMine {
		return false
	}

	var targets []*Cell
	for i := range b.cells {
		if c := &b.cells[i]; !c.IsMine && !c.IsRevealed {
			targets = append(targets, c)
		}
	}
	if len(targets) == 0 {
		return false
	}

	dst := targets[b.rnd.IntN(len(targets))]
	dst.IsMine = true
	src.IsMine = false
	src.AdjacentMines = 0
	for i, c := range b.mines {
		if c == src {
			b.mines[i] = dst
			break
		}
	}

	Log.Debug("relocated mine", slog.String("from", from.String()), slog.String("to", dst.Point.String()))
	return true
}

func (b *Board) AllSafeCellsRevealed() bool {
	for i := range b.cells {
		if c := &b.cells[i]; !c.IsMine && !c.IsRevealed {
			return false
		}
	}
	return true
}

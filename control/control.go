// Package control computes which player controls each square of an Og
// board.
//
// A square is controlled by a player if that player's marble sits on it, or
// if it is empty and every one of its orthogonal neighbors is controlled by
// that same player. Control spreads until nothing changes.
//
// We don't store control in the board itself; it is derived scratch data
// that must be recomputed whenever the board changes.
package control

import (
	"github.com/domino14/og/board"
)

// A Map holds, for every square, Empty or the player that controls it.
type Map struct {
	grid board.Board
}

// At returns the controller of row, col. Bounds are the caller's job.
func (m Map) At(row, col int) board.Cell {
	return m.grid.At(row, col)
}

// AsBoard returns the map as a board, with every controlled square holding
// its controller's marble.
func (m Map) AsBoard() board.Board {
	return m.grid
}

func (m Map) Equals(o *Map) bool {
	return m.grid.Equals(&o.grid)
}

// Controlled returns the number of squares controlled by player.
func (m Map) Controlled(player board.Cell) int {
	return m.grid.Count(player)
}

func (m Map) ToDisplayText() string {
	return m.grid.ToDisplayText()
}

// Resolver computes the control map for a board snapshot. It must not
// modify the board it is given.
type Resolver interface {
	Resolve(b board.Board) Map
}

// FixedPoint rescans the whole board until a pass makes no change.
// Changes made during a pass are visible to squares examined later in the
// same pass, so control can ripple across the board in a single sweep.
type FixedPoint struct{}

func (FixedPoint) Resolve(b board.Board) Map {
	m := Map{grid: b}
	changed := true
	for changed {
		changed = false
		for _, p := range board.Positions() {
			if m.grid.At(p.Row, p.Col) != board.Empty {
				continue
			}
			if owner := unanimousNeighbor(&m.grid, p.Row, p.Col); owner != board.Empty {
				m.grid.SetUnchecked(p.Row, p.Col, owner)
				changed = true
			}
		}
	}
	return m
}

// unanimousNeighbor returns the player controlling every neighbor of row,
// col, or Empty if the neighbors disagree or any of them is uncontrolled.
func unanimousNeighbor(g *board.Board, row, col int) board.Cell {
	ns := board.OrthogonalNeighbors(row, col)
	if len(ns) == 0 {
		return board.Empty
	}
	first := g.At(ns[0].Row, ns[0].Col)
	if first == board.Empty {
		return board.Empty
	}
	for _, n := range ns[1:] {
		if g.At(n.Row, n.Col) != first {
			return board.Empty
		}
	}
	return first
}

// Compute resolves control with the FixedPoint resolver.
func Compute(b board.Board) Map {
	return FixedPoint{}.Resolve(b)
}

// Package board contains the Og game board: a fixed 4x4 grid of cells,
// each holding no marble, a Black marble or a White marble.
package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

const (
	// Dim is the length of a side of the board.
	Dim = 4
	// Size is the number of cells on the board.
	Size = Dim * Dim
)

var (
	ErrInvalidCoordinate = errors.New("coordinate is off the board")
	ErrBadBoardText      = errors.New("could not parse board text")
)

// A Cell is the state of a single square on the board.
type Cell uint8

const (
	Empty Cell = iota
	Black
	White
)

// Symbol returns the single-character display symbol for the cell.
func (c Cell) Symbol() byte {
	switch c {
	case Black:
		return 'B'
	case White:
		return 'W'
	}
	return '.'
}

func (c Cell) String() string {
	switch c {
	case Black:
		return "Black"
	case White:
		return "White"
	}
	return "Empty"
}

// Opponent returns the other player. Empty has no opponent.
func (c Cell) Opponent() Cell {
	switch c {
	case Black:
		return White
	case White:
		return Black
	}
	return Empty
}

// IsPlayer is true for Black and White.
func (c Cell) IsPlayer() bool {
	return c == Black || c == White
}

// CellFromSymbol is the inverse of Symbol.
func CellFromSymbol(s byte) (Cell, bool) {
	switch s {
	case '.':
		return Empty, true
	case 'B', 'b':
		return Black, true
	case 'W', 'w':
		return White, true
	}
	return Empty, false
}

// Position is a (row, column) pair, 0-indexed.
type Position struct {
	Row int
	Col int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

// Valid is true if the position lies on the board.
func (p Position) Valid() bool {
	return InBounds(p.Row, p.Col)
}

func InBounds(row, col int) bool {
	return row >= 0 && row < Dim && col >= 0 && col < Dim
}

// Board is a value type. Assigning a Board copies all of its cells, so a
// copy never shares storage with the original.
type Board struct {
	squares [Size]Cell
}

// NewBoard returns an empty board.
func NewBoard() Board {
	return Board{}
}

// At returns the cell at row, col. The caller guarantees the bounds.
func (b Board) At(row, col int) Cell {
	return b.squares[row*Dim+col]
}

// Get is a bounds-checked version of At.
func (b Board) Get(row, col int) (Cell, error) {
	if !InBounds(row, col) {
		return Empty, fmt.Errorf("%w: (%d, %d)", ErrInvalidCoordinate, row, col)
	}
	return b.At(row, col), nil
}

// Set writes a cell at row, col.
func (b *Board) Set(row, col int, c Cell) error {
	if !InBounds(row, col) {
		return fmt.Errorf("%w: (%d, %d)", ErrInvalidCoordinate, row, col)
	}
	b.set(row, col, c)
	return nil
}

func (b *Board) set(row, col int, c Cell) {
	b.squares[row*Dim+col] = c
}

// SetUnchecked writes a cell without validating the coordinates. It is meant
// for tight loops whose bounds come from Positions or OrthogonalNeighbors.
func (b *Board) SetUnchecked(row, col int, c Cell) {
	b.set(row, col, c)
}

// Copy returns an independent copy of the board.
func (b Board) Copy() Board {
	return b
}

func (b Board) Equals(other *Board) bool {
	return b.squares == other.squares
}

// Count returns the number of cells holding c.
func (b Board) Count(c Cell) int {
	return lo.Count(b.squares[:], c)
}

// Full is true when no cell is Empty.
func (b Board) Full() bool {
	return !lo.Contains(b.squares[:], Empty)
}

// Positions lists every position on the board in row-major order.
func Positions() []Position {
	return allPositions[:]
}

var allPositions = func() [Size]Position {
	var ps [Size]Position
	for i := range ps {
		ps[i] = Position{Row: i / Dim, Col: i % Dim}
	}
	return ps
}()

// EmptyPositions lists the Empty positions of the board in row-major order.
func (b Board) EmptyPositions() []Position {
	return lo.Filter(Positions(), func(p Position, _ int) bool {
		return b.At(p.Row, p.Col) == Empty
	})
}

// OrthogonalNeighbors returns the neighbors of row, col that exist on the
// board, in the order up, down, left, right.
func OrthogonalNeighbors(row, col int) []Position {
	return neighborTable[row*Dim+col]
}

var neighborTable = func() [Size][]Position {
	var t [Size][]Position
	for _, p := range Positions() {
		r, c := p.Row, p.Col
		ns := make([]Position, 0, 4)
		if r > 0 {
			ns = append(ns, Position{r - 1, c})
		}
		if r < Dim-1 {
			ns = append(ns, Position{r + 1, c})
		}
		if c > 0 {
			ns = append(ns, Position{r, c - 1})
		}
		if c < Dim-1 {
			ns = append(ns, Position{r, c + 1})
		}
		t[r*Dim+c] = ns
	}
	return t
}()

// ToDisplayText renders each row as space-separated cell symbols, followed
// by a blank line.
func (b Board) ToDisplayText() string {
	var str strings.Builder
	for r := 0; r < Dim; r++ {
		for c := 0; c < Dim; c++ {
			if c > 0 {
				str.WriteByte(' ')
			}
			str.WriteByte(b.At(r, c).Symbol())
		}
		str.WriteByte('\n')
	}
	str.WriteByte('\n')
	return str.String()
}

func (b Board) String() string {
	return b.ToDisplayText()
}

// FromDisplayText parses the output of ToDisplayText. Whitespace is
// ignored, so "B... .W.. .... ...." is also accepted.
func FromDisplayText(s string) (Board, error) {
	var b Board
	i := 0
	for j := 0; j < len(s); j++ {
		ch := s[j]
		if ch == ' ' || ch == '\n' || ch == '\t' || ch == '\r' {
			continue
		}
		cell, ok := CellFromSymbol(ch)
		if !ok {
			return Board{}, fmt.Errorf("%w: unexpected symbol %q", ErrBadBoardText, ch)
		}
		if i >= Size {
			return Board{}, fmt.Errorf("%w: more than %d cells", ErrBadBoardText, Size)
		}
		b.squares[i] = cell
		i++
	}
	if i != Size {
		return Board{}, fmt.Errorf("%w: got %d cells, need %d", ErrBadBoardText, i, Size)
	}
	return b, nil
}

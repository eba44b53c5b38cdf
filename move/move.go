// Package move holds the representation of an Og placement.
package move

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/domino14/og/board"
)

var ErrBadCoords = errors.New("coordinates must look like <row>,<col> or <row> <col>")

// Move is a placement of a marble on an Empty cell.
type Move struct {
	Row int
	Col int
}

func NewMove(row, col int) *Move {
	return &Move{Row: row, Col: col}
}

func FromPosition(p board.Position) *Move {
	return &Move{Row: p.Row, Col: p.Col}
}

func (m *Move) Position() board.Position {
	return board.Position{Row: m.Row, Col: m.Col}
}

// String formats the move as a (row, col) tuple.
func (m *Move) String() string {
	if m == nil {
		return "None"
	}
	return fmt.Sprintf("(%d, %d)", m.Row, m.Col)
}

// ShortDescription includes the player making the move.
func (m *Move) ShortDescription(player board.Cell) string {
	return fmt.Sprintf("%c %d,%d", player.Symbol(), m.Row, m.Col)
}

// Equals compares two possibly-nil moves.
func (m *Move) Equals(o *Move) bool {
	if m == nil || o == nil {
		return m == o
	}
	return m.Row == o.Row && m.Col == o.Col
}

// FromCoords parses "2,3", "2 3" or "(2, 3)". It does not check that the
// coordinates are on the board.
func FromCoords(s string) (*Move, error) {
	s = strings.Trim(strings.TrimSpace(s), "()")
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' '
	})
	if len(fields) != 2 {
		return nil, fmt.Errorf("%w: %q", ErrBadCoords, s)
	}
	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrBadCoords, s)
	}
	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrBadCoords, s)
	}
	return NewMove(row, col), nil
}

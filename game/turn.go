package game

import (
	"fmt"
	"strings"

	"github.com/domino14/og/board"
	"github.com/domino14/og/move"
)

// Turn is one ply: a placement plus every square it caused to be filled.
type Turn struct {
	Player     board.Cell
	Move       move.Move
	Filled     []board.Position
	ScoreAfter int

	before board.Board
}

func (t Turn) String() string {
	s := t.Move.ShortDescription(t.Player)
	if len(t.Filled) == 0 {
		return s
	}
	fills := make([]string, len(t.Filled))
	for i, p := range t.Filled {
		fills[i] = fmt.Sprintf("%d,%d", p.Row, p.Col)
	}
	return s + " +fill " + strings.Join(fills, " ")
}

package game

import (
	"errors"
	"fmt"

	"github.com/domino14/og/board"
	"github.com/domino14/og/control"
)

var (
	ErrInvalidMove   = errors.New("square is already occupied")
	ErrInvalidPlayer = errors.New("only Black or White can place a marble")
	ErrGameOver      = errors.New("game is over")
)

// An Applier places marbles and then resolves every auto-fill the placement
// causes. The zero value uses the control.FixedPoint resolver.
type Applier struct {
	Resolver control.Resolver
}

func (a Applier) resolver() control.Resolver {
	if a.Resolver == nil {
		return control.FixedPoint{}
	}
	return a.Resolver
}

// Apply places player's marble at row, col on a copy of b, and then keeps
// filling every empty square that player controls until the board stops
// changing. The board passed in is never modified. On error the zero board
// is returned.
func (a Applier) Apply(b board.Board, player board.Cell, row, col int) (board.Board, error) {
	nb, _, err := a.apply(b, player, row, col, false)
	return nb, err
}

// ApplyWithFills is Apply, but also returns the squares that were
// auto-filled, in the order they were filled.
func (a Applier) ApplyWithFills(b board.Board, player board.Cell, row, col int) (board.Board, []board.Position, error) {
	return a.apply(b, player, row, col, true)
}

func (a Applier) apply(b board.Board, player board.Cell, row, col int,
	trackFills bool) (board.Board, []board.Position, error) {

	if !player.IsPlayer() {
		return board.Board{}, nil, fmt.Errorf("%w: got %v", ErrInvalidPlayer, player)
	}
	cur, err := b.Get(row, col)
	if err != nil {
		return board.Board{}, nil, err
	}
	if cur != board.Empty {
		return board.Board{}, nil, fmt.Errorf("%w: (%d, %d) holds %v", ErrInvalidMove, row, col, cur)
	}

	nb := b.Copy()
	nb.SetUnchecked(row, col, player)

	var fills []board.Position
	res := a.resolver()
	ctrl := res.Resolve(nb)
	for {
		filled := false
		for _, p := range board.Positions() {
			if nb.At(p.Row, p.Col) == board.Empty && ctrl.At(p.Row, p.Col) == player {
				nb.SetUnchecked(p.Row, p.Col, player)
				filled = true
				if trackFills {
					fills = append(fills, p)
				}
			}
		}
		if !filled {
			break
		}
		ctrl = res.Resolve(nb)
	}
	return nb, fills, nil
}

// ApplyMove uses the default Applier.
func ApplyMove(b board.Board, player board.Cell, row, col int) (board.Board, error) {
	return Applier{}.Apply(b, player, row, col)
}

// IsGameOver is true when every square holds a marble.
func IsGameOver(b board.Board) bool {
	return b.Full()
}

// Score is the number of Black marbles minus the number of White marbles.
// Positive favors Black.
func Score(b board.Board) int {
	return b.Count(board.Black) - b.Count(board.White)
}

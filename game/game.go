// Package game encapsulates the rules of Og: placing a marble, filling the
// squares a player comes to control, and scoring the board. The Game type
// keeps track of a game in progress and its history.
package game

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/og/board"
	"github.com/domino14/og/move"
)

// Game is a game in progress. Black moves first.
type Game struct {
	board   board.Board
	onturn  board.Cell
	history []Turn
	applier Applier
}

// NewGame starts a game on an empty board.
func NewGame() *Game {
	return &Game{board: board.NewBoard(), onturn: board.Black}
}

// NewGameFromBoard starts a game from an arbitrary position with onturn to
// move.
func NewGameFromBoard(b board.Board, onturn board.Cell) (*Game, error) {
	if !onturn.IsPlayer() {
		return nil, ErrInvalidPlayer
	}
	return &Game{board: b, onturn: onturn}, nil
}

// SetApplier swaps the rules engine used to play moves.
func (g *Game) SetApplier(a Applier) {
	g.applier = a
}

func (g *Game) Applier() Applier {
	return g.applier
}

func (g *Game) Board() board.Board {
	return g.board
}

func (g *Game) PlayerOnTurn() board.Cell {
	return g.onturn
}

// Playing is true while there is at least one empty square.
func (g *Game) Playing() bool {
	return !IsGameOver(g.board)
}

func (g *Game) Score() int {
	return Score(g.board)
}

// Turn returns the number of moves played so far.
func (g *Game) Turn() int {
	return len(g.history)
}

func (g *Game) History() []Turn {
	return g.history
}

// PlayMove places a marble for the player on turn and passes the turn.
func (g *Game) PlayMove(m *move.Move) (*Turn, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: no move given", ErrInvalidMove)
	}
	if !g.Playing() {
		return nil, ErrGameOver
	}
	nb, fills, err := g.applier.ApplyWithFills(g.board, g.onturn, m.Row, m.Col)
	if err != nil {
		return nil, err
	}
	t := Turn{
		Player:     g.onturn,
		Move:       *m,
		Filled:     fills,
		ScoreAfter: Score(nb),
		before:     g.board,
	}
	g.history = append(g.history, t)
	g.board = nb
	g.onturn = g.onturn.Opponent()
	log.Debug().Str("move", t.String()).Int("score", t.ScoreAfter).Msg("played-move")
	return &g.history[len(g.history)-1], nil
}

// Undo takes back the last move.
func (g *Game) Undo() error {
	if len(g.history) == 0 {
		return errors.New("no moves to undo")
	}
	last := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]
	g.board = last.before
	g.onturn = last.Player
	return nil
}

package game

import (
	"errors"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/og/board"
	"github.com/domino14/og/move"
)

func TestPlayAlternatesTurns(t *testing.T) {
	is := is.New(t)
	g := NewGame()
	is.Equal(g.PlayerOnTurn(), board.Black)
	is.True(g.Playing())

	turn, err := g.PlayMove(move.NewMove(1, 1))
	is.NoErr(err)
	is.Equal(turn.Player, board.Black)
	is.Equal(turn.ScoreAfter, 1)
	is.Equal(g.PlayerOnTurn(), board.White)

	_, err = g.PlayMove(move.NewMove(1, 1))
	is.True(errors.Is(err, ErrInvalidMove))
	// a failed move leaves the turn where it was
	is.Equal(g.PlayerOnTurn(), board.White)
	is.Equal(g.Turn(), 1)

	_, err = g.PlayMove(move.NewMove(2, 2))
	is.NoErr(err)
	is.Equal(g.PlayerOnTurn(), board.Black)
	is.Equal(g.Score(), 0)
	is.Equal(len(g.History()), 2)
}

func TestTurnRecordsFills(t *testing.T) {
	is := is.New(t)
	b, err := board.FromDisplayText(". B .. .... .... ....")
	is.NoErr(err)
	g, err := NewGameFromBoard(b, board.Black)
	is.NoErr(err)
	turn, err := g.PlayMove(move.NewMove(1, 0))
	is.NoErr(err)
	is.Equal(len(turn.Filled), 1)
	is.Equal(turn.String(), "B 1,0 +fill 0,0")
	is.Equal(turn.ScoreAfter, 3)
}

func TestUndo(t *testing.T) {
	is := is.New(t)
	g := NewGame()
	is.True(g.Undo() != nil)

	_, err := g.PlayMove(move.NewMove(0, 1))
	is.NoErr(err)
	_, err = g.PlayMove(move.NewMove(3, 3))
	is.NoErr(err)
	after2 := g.Board()

	_, err = g.PlayMove(move.NewMove(1, 0))
	is.NoErr(err)
	is.Equal(g.Board().At(0, 0), board.Black)

	is.NoErr(g.Undo())
	b := g.Board()
	is.True(b.Equals(&after2))
	is.Equal(g.PlayerOnTurn(), board.Black)
	is.Equal(g.Turn(), 2)
}

func TestPlayNilMove(t *testing.T) {
	is := is.New(t)
	g := NewGame()
	_, err := g.PlayMove(nil)
	is.True(errors.Is(err, ErrInvalidMove))
	is.Equal(g.Turn(), 0)
	is.Equal(g.PlayerOnTurn(), board.Black)
}

func TestPlayToTheEnd(t *testing.T) {
	is := is.New(t)
	g := NewGame()
	for g.Playing() {
		b := g.Board()
		empties := b.EmptyPositions()
		_, err := g.PlayMove(move.FromPosition(empties[0]))
		is.NoErr(err)
	}
	_, err := g.PlayMove(move.NewMove(0, 0))
	is.True(errors.Is(err, ErrGameOver))
	is.True(strings.Contains(g.ToDisplayText(), "Game over"))
}

func TestNewGameFromBoardNeedsPlayer(t *testing.T) {
	is := is.New(t)
	_, err := NewGameFromBoard(board.NewBoard(), board.Empty)
	is.True(errors.Is(err, ErrInvalidPlayer))
}

func TestDisplayText(t *testing.T) {
	is := is.New(t)
	g := NewGame()
	_, err := g.PlayMove(move.NewMove(0, 0))
	is.NoErr(err)
	txt := g.ToDisplayText()
	lines := strings.Split(txt, "\n")
	is.Equal(lines[0], "B . . .   Turn 1")
	is.Equal(lines[1], ". . . .   Score: +1")
	is.Equal(lines[2], ". . . .   White to move")
	is.Equal(lines[3], ". . . .   Last: B 0,0")
}

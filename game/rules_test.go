package game

import (
	"errors"
	"math/rand"
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/domino14/og/board"
	"github.com/domino14/og/control"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func mustBoard(t *testing.T, s string) board.Board {
	t.Helper()
	b, err := board.FromDisplayText(s)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestFirstMoveDoesNotCascade(t *testing.T) {
	is := is.New(t)
	b := board.NewBoard()
	nb, err := ApplyMove(b, board.Black, 1, 1)
	is.NoErr(err)
	is.Equal(nb.At(1, 1), board.Black)
	is.Equal(nb.Count(board.Empty), board.Size-1)

	ctrl := control.Compute(nb)
	is.Equal(ctrl.Controlled(board.Black), 1)
	is.Equal(ctrl.At(1, 1), board.Black)
	// the original board is untouched
	is.Equal(b.Count(board.Empty), board.Size)
}

func TestPlacementFillsControlledCorner(t *testing.T) {
	is := is.New(t)
	b := mustBoard(t, `
		. B . .
		. . . .
		. . . .
		. . . .`)
	nb, fills, err := Applier{}.ApplyWithFills(b, board.Black, 1, 0)
	is.NoErr(err)
	is.Equal(nb.At(0, 0), board.Black)
	is.Equal(nb.Count(board.Black), 3)
	assert.Equal(t, []board.Position{{Row: 0, Col: 0}}, fills)
}

func TestPlacementFillsSeveralSquares(t *testing.T) {
	is := is.New(t)
	b := mustBoard(t, `
		. W . W
		W . W .
		. W . .
		. . . .`)
	nb, fills, err := Applier{}.ApplyWithFills(b, board.White, 2, 3)
	is.NoErr(err)
	// (0,0), (0,2), (1,1) and (1,3) are all surrounded by White now.
	assert.Equal(t, []board.Position{{Row: 0, Col: 0}, {Row: 0, Col: 2}, {Row: 1, Col: 1}, {Row: 1, Col: 3}}, fills)
	expected := mustBoard(t, `
		W W W W
		W W W W
		. W . W
		. . . .`)
	is.True(nb.Equals(&expected))
	is.Equal(Score(nb), -10)
}

func TestOpponentControlIsNotFilled(t *testing.T) {
	is := is.New(t)
	b := mustBoard(t, `
		. . . .
		. . . .
		. . . W
		. . W .`)
	nb, err := ApplyMove(b, board.Black, 0, 0)
	is.NoErr(err)
	is.Equal(nb.At(3, 3), board.Empty)
	is.Equal(control.Compute(nb).At(3, 3), board.White)

	nb, err = ApplyMove(nb, board.White, 0, 3)
	is.NoErr(err)
	is.Equal(nb.At(3, 3), board.White)
}

func TestApplyErrors(t *testing.T) {
	is := is.New(t)
	b := mustBoard(t, `
		B . . .
		. . . .
		. . . .
		. . . .`)
	_, err := ApplyMove(b, board.White, 0, 0)
	is.True(errors.Is(err, ErrInvalidMove))

	_, err = ApplyMove(b, board.White, 4, 0)
	is.True(errors.Is(err, board.ErrInvalidCoordinate))

	_, err = ApplyMove(b, board.White, 0, -1)
	is.True(errors.Is(err, board.ErrInvalidCoordinate))

	_, err = ApplyMove(b, board.Empty, 1, 1)
	is.True(errors.Is(err, ErrInvalidPlayer))

	nb, err := ApplyMove(b, board.Black, 0, 0)
	is.True(err != nil)
	is.True(nb.Equals(&board.Board{}))
}

type countingResolver struct {
	calls int
}

func (c *countingResolver) Resolve(b board.Board) control.Map {
	c.calls++
	return control.Compute(b)
}

func TestApplierUsesResolver(t *testing.T) {
	is := is.New(t)
	cr := &countingResolver{}
	a := Applier{Resolver: cr}
	_, err := a.Apply(board.NewBoard(), board.Black, 2, 2)
	is.NoErr(err)
	is.Equal(cr.calls, 1)

	b := mustBoard(t, `
		. B . .
		. . . .
		. . . .
		. . . .`)
	cr.calls = 0
	_, err = a.Apply(b, board.Black, 1, 0)
	is.NoErr(err)
	// one resolution after the placement, one after the fill
	is.Equal(cr.calls, 2)
}

func TestApplyIsMonotone(t *testing.T) {
	is := is.New(t)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		b := board.NewBoard()
		for _, p := range board.Positions() {
			b.SetUnchecked(p.Row, p.Col, board.Cell(rng.Intn(3)))
		}
		empties := b.EmptyPositions()
		if len(empties) == 0 {
			continue
		}
		p := empties[rng.Intn(len(empties))]
		player := board.Black
		if rng.Intn(2) == 1 {
			player = board.White
		}
		nb, err := ApplyMove(b, player, p.Row, p.Col)
		is.NoErr(err)
		is.True(nb.Count(board.Empty) < b.Count(board.Empty))
		for _, q := range board.Positions() {
			before := b.At(q.Row, q.Col)
			after := nb.At(q.Row, q.Col)
			if before != board.Empty {
				is.Equal(before, after)
			} else if after != board.Empty {
				// only the mover ever gains squares
				is.Equal(after, player)
			}
		}
	}
}

func TestScoreMatchesManualCount(t *testing.T) {
	is := is.New(t)
	rng := rand.New(rand.NewSource(3))
	b := board.NewBoard()
	player := board.Black
	for !IsGameOver(b) {
		empties := b.EmptyPositions()
		p := empties[rng.Intn(len(empties))]
		var err error
		b, err = ApplyMove(b, player, p.Row, p.Col)
		is.NoErr(err)
		player = player.Opponent()

		black, white := 0, 0
		for _, q := range board.Positions() {
			switch b.At(q.Row, q.Col) {
			case board.Black:
				black++
			case board.White:
				white++
			}
		}
		s := Score(b)
		is.Equal(s, black-white)
		is.True(s >= -board.Size && s <= board.Size)
	}
	is.True(IsGameOver(b))
}

func TestIsGameOver(t *testing.T) {
	is := is.New(t)
	is.True(!IsGameOver(board.NewBoard()))
	full := mustBoard(t, "BBBB BBBB WWWW WWWW")
	is.True(IsGameOver(full))
	is.Equal(Score(full), 0)
	is.Equal(Score(mustBoard(t, "BBBB BBBB BBBB BBBB")), 16)
	is.Equal(Score(mustBoard(t, "WWWW WWWW WWWW WWWW")), -16)
}

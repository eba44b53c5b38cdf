package automatic

import (
	"context"
	"errors"
	"fmt"

	"lukechampine.com/frand"

	"github.com/domino14/og/game"
	"github.com/domino14/og/move"
	"github.com/domino14/og/search"
)

const (
	MinimaxBot   = "minimax"
	AlphaBetaBot = "alphabeta"
	RandomBot    = "random"
)

var (
	ErrUnknownBot = errors.New("unknown bot")
	errNoMove     = errors.New("search returned no move")
)

// A Bot picks a move for the player on turn.
type Bot interface {
	Name() string
	ChooseMove(ctx context.Context, g *game.Game) (*move.Move, error)
}

type searchBot struct {
	algo   search.Algorithm
	solver *search.Solver
}

func (b *searchBot) Name() string {
	return b.algo.String()
}

func (b *searchBot) ChooseMove(ctx context.Context, g *game.Game) (*move.Move, error) {
	res, err := b.solver.Best(ctx, b.algo, g.Board(), g.PlayerOnTurn())
	if err != nil {
		return nil, err
	}
	if res.Move == nil {
		return nil, errNoMove
	}
	return res.Move, nil
}

// randomBot plays a uniformly random empty square. An RNG is not safe for
// concurrent use, so every bot owns one.
type randomBot struct {
	rng *frand.RNG
}

func (b *randomBot) Name() string {
	return RandomBot
}

func (b *randomBot) ChooseMove(ctx context.Context, g *game.Game) (*move.Move, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	bd := g.Board()
	empties := bd.EmptyPositions()
	if len(empties) == 0 {
		return nil, game.ErrGameOver
	}
	return move.FromPosition(empties[b.rng.Intn(len(empties))]), nil
}

// NewBot makes a bot by name. Search bots look depth plies ahead, on a
// single thread. A non-nil seed makes a random bot repeatable.
func NewBot(name string, depth int, seed *[32]byte) (Bot, error) {
	switch name {
	case RandomBot:
		if seed == nil {
			return &randomBot{rng: frand.New()}, nil
		}
		return &randomBot{rng: frand.NewCustom(seed[:], 1024, 12)}, nil
	}
	algo, err := search.ParseAlgorithm(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBot, name)
	}
	if depth < 1 {
		return nil, fmt.Errorf("bot %s needs a depth of at least 1, got %d", name, depth)
	}
	s := search.NewSolver(nil)
	s.SetMaxDepth(depth)
	return &searchBot{algo: algo, solver: s}, nil
}

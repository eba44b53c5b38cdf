package search

import (
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/og/board"
	"github.com/domino14/og/game"
	"github.com/domino14/og/move"
)

// parallelRoot searches the children of the root concurrently. Each child
// gets a full window, so its value is exact and the children can be reduced
// in row-major order exactly as the sequential search would. Alpha-beta
// will usually visit more nodes this way than sequentially.
func (sr *searcher) parallelRoot(b board.Board, player board.Cell, maxDepth, threads int) (Result, error) {
	if err := sr.visit(); err != nil {
		return Result{}, err
	}
	if isLeaf(b, 0, maxDepth) {
		return Result{Score: game.Score(b)}, nil
	}

	candidates := b.EmptyPositions()
	values := make([]int, len(candidates))

	g, gctx := errgroup.WithContext(sr.ctx)
	g.SetLimit(threads)
	for i, p := range candidates {
		i, p := i, p
		g.Go(func() error {
			child, err := sr.applier.Apply(b, player, p.Row, p.Col)
			if err != nil {
				return err
			}
			// share the node counter, but not the root hook
			helper := &searcher{ctx: gctx, applier: sr.applier, algo: sr.algo}
			var val int
			if sr.algo == AlphaBeta {
				_, val, err = helper.alphabeta(child, player.Opponent(), -Infinity, Infinity, 1, maxDepth)
			} else {
				_, val, err = helper.minimax(child, player.Opponent(), 1, maxDepth)
			}
			sr.nodes.Add(helper.nodes.Load())
			values[i] = val
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	log.Debug().Int("candidates", len(candidates)).Int("threads", threads).Msg("parallel-root-done")

	best := initialValue(player)
	var bestPos board.Position
	for i, p := range candidates {
		if sr.rootHook != nil {
			sr.rootHook(p, values[i])
		}
		if improves(player, values[i], best) {
			best = values[i]
			bestPos = p
		}
	}
	return Result{Move: move.FromPosition(bestPos), Score: best}, nil
}

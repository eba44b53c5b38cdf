// Package search picks Og moves by depth-limited game-tree search. Black
// maximizes the score and White minimizes it.
//
// Two algorithms are provided: plain minimax, and minimax with alpha-beta
// pruning. Both return the same move and score for the same position; the
// pruning variant just looks at fewer nodes.
package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/og/board"
	"github.com/domino14/og/config"
	"github.com/domino14/og/game"
	"github.com/domino14/og/move"
)

// Infinity is larger than any score that can occur on the board.
const Infinity = board.Size + 1

var (
	ErrSearchCancelled  = errors.New("search cancelled")
	ErrUnknownAlgorithm = errors.New("unknown search algorithm")
)

type Algorithm int

const (
	Minimax Algorithm = iota
	AlphaBeta
)

func (a Algorithm) String() string {
	switch a {
	case Minimax:
		return "minimax"
	case AlphaBeta:
		return "alphabeta"
	}
	return "unknown"
}

func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "minimax", "mm":
		return Minimax, nil
	case "alphabeta", "alpha-beta", "ab":
		return AlphaBeta, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}

// Result is the outcome of a search. Move is nil when the root itself is a
// leaf: the board is full or the depth limit is zero.
type Result struct {
	Move  *move.Move
	Score int
	// Nodes is the number of positions visited, the root included.
	Nodes uint64
}

// Solver searches positions. A Solver may be reused; each search keeps its
// own node count.
type Solver struct {
	applier   game.Applier
	maxDepth  int
	threads   int
	lastNodes atomic.Uint64

	logStream io.Writer
}

// NewSolver makes a solver from the config's max-depth and threads. A nil
// config gives the defaults.
func NewSolver(cfg *config.Config) *Solver {
	s := &Solver{maxDepth: config.DefaultMaxDepth, threads: config.DefaultThreads}
	if cfg != nil {
		s.maxDepth = cfg.GetInt(config.ConfigMaxDepth)
		s.threads = cfg.GetInt(config.ConfigThreads)
	}
	if s.threads < 1 {
		s.threads = 1
	}
	return s
}

func (s *Solver) SetApplier(a game.Applier) {
	s.applier = a
}

func (s *Solver) SetThreads(t int) {
	if t < 1 {
		t = 1
	}
	s.threads = t
}

func (s *Solver) Threads() int {
	return s.threads
}

func (s *Solver) SetMaxDepth(d int) {
	s.maxDepth = d
}

// MaxDepth is the depth used by Best.
func (s *Solver) MaxDepth() int {
	return s.maxDepth
}

// SetLogStream makes every search write a YAML record to w.
func (s *Solver) SetLogStream(w io.Writer) {
	s.logStream = w
}

// Nodes returns the node count of the last finished search.
func (s *Solver) Nodes() uint64 {
	return s.lastNodes.Load()
}

// Minimax searches with plain minimax.
func (s *Solver) Minimax(ctx context.Context, b board.Board, player board.Cell, maxDepth int) (Result, error) {
	return s.Search(ctx, Minimax, b, player, maxDepth)
}

// AlphaBeta searches with alpha-beta pruning.
func (s *Solver) AlphaBeta(ctx context.Context, b board.Board, player board.Cell, maxDepth int) (Result, error) {
	return s.Search(ctx, AlphaBeta, b, player, maxDepth)
}

// Best searches to the solver's own max depth.
func (s *Solver) Best(ctx context.Context, algo Algorithm, b board.Board, player board.Cell) (Result, error) {
	return s.Search(ctx, algo, b, player, s.maxDepth)
}

// Search finds the best move for player on b, looking maxDepth plies ahead.
func (s *Solver) Search(ctx context.Context, algo Algorithm, b board.Board,
	player board.Cell, maxDepth int) (Result, error) {

	if !player.IsPlayer() {
		return Result{}, game.ErrInvalidPlayer
	}
	if algo != Minimax && algo != AlphaBeta {
		return Result{}, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, algo)
	}
	if maxDepth < 0 {
		return Result{}, fmt.Errorf("max depth must not be negative, got %d", maxDepth)
	}
	log.Debug().Str("algorithm", algo.String()).
		Str("player", player.String()).
		Int("max-depth", maxDepth).
		Int("threads", s.threads).
		Msg("search-config")

	tstart := time.Now()
	sr := &searcher{ctx: ctx, applier: s.applier, algo: algo}
	var rootValues []rootValue
	if s.logStream != nil {
		sr.rootHook = func(p board.Position, v int) {
			rootValues = append(rootValues, rootValue{p, v})
		}
	}

	var res Result
	var err error
	if s.threads > 1 {
		res, err = sr.parallelRoot(b, player, maxDepth, s.threads)
	} else {
		res, err = sr.root(b, player, maxDepth)
	}
	res.Nodes = sr.nodes.Load()
	s.lastNodes.Store(res.Nodes)
	if err != nil {
		return Result{}, err
	}
	elapsed := time.Since(tstart)
	log.Info().
		Str("algorithm", algo.String()).
		Str("move", res.Move.String()).
		Int("score", res.Score).
		Uint64("nodes", res.Nodes).
		Float64("time-elapsed-sec", elapsed.Seconds()).
		Msg("search-returning")

	if s.logStream != nil {
		if err := s.writeLog(algo, b, player, maxDepth, res, rootValues, elapsed); err != nil {
			log.Err(err).Msg("search-log-error")
		}
	}
	return res, nil
}

type rootValue struct {
	pos   board.Position
	value int
}

// searcher holds the state of a single search.
type searcher struct {
	ctx     context.Context
	applier game.Applier
	algo    Algorithm
	nodes   atomic.Uint64
	// rootHook, if set, sees the value of every root candidate.
	rootHook func(board.Position, int)
}

// visit counts a node and checks for cancellation.
func (sr *searcher) visit() error {
	sr.nodes.Add(1)
	if err := sr.ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrSearchCancelled, err)
	}
	return nil
}

func (sr *searcher) root(b board.Board, player board.Cell, maxDepth int) (Result, error) {
	var pos *board.Position
	var val int
	var err error
	if sr.algo == AlphaBeta {
		pos, val, err = sr.alphabeta(b, player, -Infinity, Infinity, 0, maxDepth)
	} else {
		pos, val, err = sr.minimax(b, player, 0, maxDepth)
	}
	if err != nil {
		return Result{}, err
	}
	res := Result{Score: val}
	if pos != nil {
		res.Move = move.FromPosition(*pos)
	}
	return res, nil
}

func isLeaf(b board.Board, depth, maxDepth int) bool {
	return depth >= maxDepth || game.IsGameOver(b)
}

// initialValue is the worst possible value for player.
func initialValue(player board.Cell) int {
	if player == board.Black {
		return -Infinity
	}
	return Infinity
}

// improves reports whether val is strictly better than best for player.
// Ties keep the move found first.
func improves(player board.Cell, val, best int) bool {
	if player == board.Black {
		return val > best
	}
	return val < best
}

// MinimaxSearch searches b with a default single-threaded solver.
func MinimaxSearch(b board.Board, player board.Cell, maxDepth int) (Result, error) {
	return NewSolver(nil).Minimax(context.Background(), b, player, maxDepth)
}

// AlphaBetaSearch searches b with a default single-threaded solver.
func AlphaBetaSearch(b board.Board, player board.Cell, maxDepth int) (Result, error) {
	return NewSolver(nil).AlphaBeta(context.Background(), b, player, maxDepth)
}

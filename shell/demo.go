package shell

import (
	"context"
	"fmt"
	"strings"

	"github.com/domino14/og/board"
	"github.com/domino14/og/game"
	"github.com/domino14/og/search"
)

var demoLabels = map[search.Algorithm]string{
	search.Minimax:   "minimax",
	search.AlphaBeta: "alpha-beta",
}

func (sc *ShellController) demo(cmd *shellcmd) (*Response, error) {
	depth, err := cmd.options.IntDefault("depth", sc.solver.MaxDepth())
	if err != nil {
		return nil, err
	}
	out, err := runDemo(context.Background(), sc.solver, depth)
	if err != nil {
		return nil, err
	}
	return msg(out), nil
}

// runDemo searches the opening move for Black, plays it, then searches
// White's reply, once with each algorithm. Each algorithm starts from an
// empty board and each search reports its own node count.
func runDemo(ctx context.Context, s *search.Solver, depth int) (string, error) {
	var str strings.Builder
	for i, algo := range []search.Algorithm{search.Minimax, search.AlphaBeta} {
		if i > 0 {
			str.WriteString("\n")
		}
		label := demoLabels[algo]
		b := board.NewBoard()
		for j, player := range []board.Cell{board.Black, board.White} {
			res, err := s.Search(ctx, algo, b, player, depth)
			if err != nil {
				return "", err
			}
			ordinal := "first"
			if j == 1 {
				ordinal = "second"
			}
			fmt.Fprintf(&str, "%s %s player has value %d\n", label, ordinal, res.Score)
			fmt.Fprintf(&str, "%s examined %d nodes\n", label, res.Nodes)
			fmt.Fprintf(&str, "next move: %v\n", res.Move)
			if j == 0 && res.Move != nil {
				b, err = game.ApplyMove(b, player, res.Move.Row, res.Move.Col)
				if err != nil {
					return "", err
				}
			}
		}
	}
	return str.String(), nil
}

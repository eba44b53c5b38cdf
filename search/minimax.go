package search

import (
	"github.com/domino14/og/board"
	"github.com/domino14/og/game"
)

// thanks Wikipedia:
/*
function minimax(node, depth, maximizingPlayer) is
    if depth = 0 or node is a terminal node then
        return the heuristic value of node
    if maximizingPlayer then
        value := −∞
        for each child of node do
            value := max(value, minimax(child, depth − 1, FALSE))
        return value
    else (* minimizing player *)
        value := +∞
        for each child of node do
            value := min(value, minimax(child, depth − 1, TRUE))
        return value
*/

// minimax returns the best square for player and its value. The square is
// nil at a leaf.
func (sr *searcher) minimax(b board.Board, player board.Cell, depth, maxDepth int) (*board.Position, int, error) {
	if err := sr.visit(); err != nil {
		return nil, 0, err
	}
	if isLeaf(b, depth, maxDepth) {
		return nil, game.Score(b), nil
	}

	best := initialValue(player)
	var bestPos *board.Position
	for _, p := range board.Positions() {
		p := p
		if b.At(p.Row, p.Col) != board.Empty {
			continue
		}
		// Apply works on its own copy, so b is safe for the next sibling.
		child, err := sr.applier.Apply(b, player, p.Row, p.Col)
		if err != nil {
			return nil, 0, err
		}
		_, val, err := sr.minimax(child, player.Opponent(), depth+1, maxDepth)
		if err != nil {
			return nil, 0, err
		}
		if depth == 0 && sr.rootHook != nil {
			sr.rootHook(p, val)
		}
		if improves(player, val, best) {
			best = val
			bestPos = &p
		}
	}
	return bestPos, best, nil
}

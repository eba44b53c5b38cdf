package search

import (
	"github.com/domino14/og/board"
	"github.com/domino14/og/game"
)

// thanks Wikipedia:
/*
function alphabeta(node, depth, α, β, maximizingPlayer) is
    if depth = 0 or node is a terminal node then
        return the heuristic value of node
    if maximizingPlayer then
        value := −∞
        for each child of node do
            value := max(value, alphabeta(child, depth − 1, α, β, FALSE))
            α := max(α, value)
            if α ≥ β then
                break (* β cut-off *)
        return value
    else
        value := +∞
        for each child of node do
            value := min(value, alphabeta(child, depth − 1, α, β, TRUE))
            β := min(β, value)
            if α ≥ β then
                break (* α cut-off *)
        return value
*/

// alphabeta is minimax with pruning. Once beta <= alpha no other square at
// this node is tried; the best square found so far is still returned.
func (sr *searcher) alphabeta(b board.Board, player board.Cell, α, β int,
	depth, maxDepth int) (*board.Position, int, error) {

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
		child, err := sr.applier.Apply(b, player, p.Row, p.Col)
		if err != nil {
			return nil, 0, err
		}
		_, val, err := sr.alphabeta(child, player.Opponent(), α, β, depth+1, maxDepth)
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
		if player == board.Black {
			α = max(α, val)
		} else {
			β = min(β, val)
		}
		if β <= α {
			break
		}
	}
	return bestPos, best, nil
}

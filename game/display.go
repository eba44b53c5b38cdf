package game

import (
	"fmt"
	"strings"
)

// ToDisplayText shows the board with the side to move, the score and the
// last few turns next to it.
func (g *Game) ToDisplayText() string {
	bt := strings.Split(strings.TrimRight(g.board.ToDisplayText(), "\n"), "\n")
	hpadding := 3

	side := []string{
		fmt.Sprintf("Turn %d", g.Turn()),
		fmt.Sprintf("Score: %+d", g.Score()),
	}
	if g.Playing() {
		side = append(side, fmt.Sprintf("%v to move", g.onturn))
	} else {
		side = append(side, "Game over: "+resultText(g.Score()))
	}
	if n := len(g.history); n > 0 {
		side = append(side, "Last: "+g.history[n-1].String())
	}

	var str strings.Builder
	for i, row := range bt {
		str.WriteString(row)
		if i < len(side) {
			str.WriteString(strings.Repeat(" ", hpadding))
			str.WriteString(side[i])
		}
		str.WriteString("\n")
	}
	str.WriteString("\n")
	return str.String()
}

func resultText(score int) string {
	switch {
	case score > 0:
		return "Black wins"
	case score < 0:
		return "White wins"
	}
	return "draw"
}

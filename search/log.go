package search

import (
	"time"

	"gopkg.in/yaml.v3"

	"github.com/domino14/og/board"
	"github.com/domino14/og/move"
)

// LogCandidate is one root move and the value the search gave it. With
// sequential alpha-beta the value may only be a bound.
type LogCandidate struct {
	Move  string `json:"move" yaml:"move"`
	Value int    `json:"value" yaml:"value"`
}

// LogSearch is one entry in the search log stream.
type LogSearch struct {
	Algorithm  string         `json:"algorithm" yaml:"algorithm"`
	Player     string         `json:"player" yaml:"player"`
	MaxDepth   int            `json:"max-depth" yaml:"max-depth"`
	Board      string         `json:"board" yaml:"board"`
	Candidates []LogCandidate `json:"candidates" yaml:"candidates"`
	Best       string         `json:"best" yaml:"best"`
	Score      int            `json:"score" yaml:"score"`
	Nodes      uint64         `json:"nodes" yaml:"nodes"`
	ElapsedSec float64        `json:"elapsed-sec" yaml:"elapsed-sec"`
}

func (s *Solver) writeLog(algo Algorithm, b board.Board, player board.Cell, maxDepth int,
	res Result, rvs []rootValue, elapsed time.Duration) error {

	entry := LogSearch{
		Algorithm:  algo.String(),
		Player:     player.String(),
		MaxDepth:   maxDepth,
		Board:      b.ToDisplayText(),
		Candidates: make([]LogCandidate, len(rvs)),
		Best:       res.Move.String(),
		Score:      res.Score,
		Nodes:      res.Nodes,
		ElapsedSec: elapsed.Seconds(),
	}
	for i, rv := range rvs {
		entry.Candidates[i] = LogCandidate{Move: move.FromPosition(rv.pos).String(), Value: rv.value}
	}
	// Each write is a one-element list so the stream as a whole stays a
	// valid YAML list.
	out, err := yaml.Marshal([]LogSearch{entry})
	if err != nil {
		return err
	}
	_, err = s.logStream.Write(out)
	return err
}

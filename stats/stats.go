// Package stats keeps running statistics over finished games.
package stats

import (
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/aybabtme/uniplot/histogram"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/domino14/og/board"
)

const Epsilon = 1e-6

func FuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Statistic is a running mean and variance (Welford's algorithm).
type Statistic struct {
	n    int
	last float64
	mean float64
	m2   float64
}

func (s *Statistic) Push(val float64) {
	s.n++
	s.last = val
	delta := val - s.mean
	s.mean += delta / float64(s.n)
	s.m2 += delta * (val - s.mean)
}

func (s *Statistic) Mean() float64 {
	return s.mean
}

// Variance is the sample variance; it is 0 with fewer than two values.
func (s *Statistic) Variance() float64 {
	if s.n < 2 {
		return 0
	}
	return s.m2 / float64(s.n-1)
}

func (s *Statistic) Stdev() float64 {
	return math.Sqrt(s.Variance())
}

func (s *Statistic) StandardError() float64 {
	if s.n == 0 {
		return 0
	}
	return math.Sqrt(s.Variance() / float64(s.n))
}

func (s *Statistic) Last() float64 {
	return s.last
}

func (s *Statistic) Iterations() int {
	return s.n
}

// Interval returns the confidence interval of the mean at the given
// confidence (0 to 100 percent).
func (s *Statistic) Interval(confidence float64) (float64, float64) {
	half := ZVal(confidence) * s.StandardError()
	return s.mean - half, s.mean + half
}

// ZVal returns the two-tailed Z-value for a confidence of 0 to 100 percent.
func ZVal(confidence float64) float64 {
	dist := distuv.UnitNormal
	return dist.Quantile((1 + confidence/100) / 2)
}

// Tally counts results of finished games. The margin is the final score,
// Black's marbles minus White's. It is safe for concurrent use.
type Tally struct {
	sync.Mutex
	blackWins int
	whiteWins int
	draws     int
	margin    Statistic
	margins   []float64
}

// Add records the final score of one game.
func (t *Tally) Add(score int) {
	t.Lock()
	defer t.Unlock()
	switch {
	case score > 0:
		t.blackWins++
	case score < 0:
		t.whiteWins++
	default:
		t.draws++
	}
	t.margin.Push(float64(score))
	t.margins = append(t.margins, float64(score))
}

// Wins returns the number of games won by player.
func (t *Tally) Wins(player board.Cell) int {
	t.Lock()
	defer t.Unlock()
	switch player {
	case board.Black:
		return t.blackWins
	case board.White:
		return t.whiteWins
	}
	return 0
}

func (t *Tally) Draws() int {
	t.Lock()
	defer t.Unlock()
	return t.draws
}

func (t *Tally) Games() int {
	t.Lock()
	defer t.Unlock()
	return t.margin.Iterations()
}

// Margin returns a copy of the score margin statistic.
func (t *Tally) Margin() Statistic {
	t.Lock()
	defer t.Unlock()
	return t.margin
}

// Summary is a human-readable report of the tally.
func (t *Tally) Summary() string {
	t.Lock()
	defer t.Unlock()
	lo, hi := t.margin.Interval(95)
	return fmt.Sprintf("Games: %d\nBlack wins: %d\nWhite wins: %d\nDraws: %d\n"+
		"Mean margin: %.3f ± %.3f (95%% CI %.3f to %.3f)\n",
		t.margin.Iterations(), t.blackWins, t.whiteWins, t.draws,
		t.margin.Mean(), (hi-lo)/2, lo, hi)
}

// Histogram draws the distribution of margins to w, in at most bins bars.
func (t *Tally) Histogram(w io.Writer, bins int) error {
	t.Lock()
	defer t.Unlock()
	if len(t.margins) == 0 {
		_, err := io.WriteString(w, "no games\n")
		return err
	}
	hist := histogram.Hist(bins, t.margins)
	return histogram.Fprint(w, hist, histogram.Linear(40))
}

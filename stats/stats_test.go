package stats

import (
	"bytes"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/og/board"
)

func TestRunningStat(t *testing.T) {
	is := is.New(t)
	type tc struct {
		scores []int
		mean   float64
		stdev  float64
	}
	cases := []tc{
		{[]int{10, 12, 23, 23, 16, 23, 21, 16}, 18, 5.2372293656638},
		{[]int{14, 35, 71, 124, 10, 24, 55, 33, 87, 19}, 47.2, 36.937785531891},
		{[]int{-3, 3}, 0, math.Sqrt(18)},
		{[]int{1}, 1, 0},
		{[]int{}, 0, 0},
		{[]int{1, 1}, 1, 0},
	}
	for _, c := range cases {
		s := &Statistic{}
		for _, score := range c.scores {
			s.Push(float64(score))
		}
		is.True(FuzzyEqual(s.Mean(), c.mean))
		is.True(FuzzyEqual(s.Stdev(), c.stdev))
		is.Equal(s.Iterations(), len(c.scores))
	}
}

func TestZVal(t *testing.T) {
	is := is.New(t)
	is.True(math.Abs(ZVal(95)-1.959964) < 1e-5)
	is.True(math.Abs(ZVal(99)-2.575829) < 1e-5)
	is.True(FuzzyEqual(ZVal(0), 0))
}

func TestInterval(t *testing.T) {
	is := is.New(t)
	s := &Statistic{}
	for _, v := range []float64{2, 4, 4, 4, 5, 5, 7, 9} {
		s.Push(v)
	}
	lo, hi := s.Interval(95)
	is.True(FuzzyEqual((lo+hi)/2, 5))
	is.True(FuzzyEqual(hi-s.Mean(), ZVal(95)*s.StandardError()))
	is.Equal(s.Last(), 9.0)
}

func TestTally(t *testing.T) {
	is := is.New(t)
	var tally Tally
	var wg sync.WaitGroup
	for _, score := range []int{4, -2, 0, 6, -16, 2} {
		score := score
		wg.Add(1)
		go func() {
			defer wg.Done()
			tally.Add(score)
		}()
	}
	wg.Wait()
	is.Equal(tally.Games(), 6)
	is.Equal(tally.Wins(board.Black), 3)
	is.Equal(tally.Wins(board.White), 2)
	is.Equal(tally.Wins(board.Empty), 0)
	is.Equal(tally.Draws(), 1)
	m := tally.Margin()
	is.True(FuzzyEqual(m.Mean(), -1))
}

func TestTallySummary(t *testing.T) {
	is := is.New(t)
	var tally Tally
	tally.Add(2)
	tally.Add(2)
	is.Equal(tally.Summary(), "Games: 2\nBlack wins: 2\nWhite wins: 0\nDraws: 0\n"+
		"Mean margin: 2.000 ± 0.000 (95% CI 2.000 to 2.000)\n")
}

func TestTallyHistogram(t *testing.T) {
	is := is.New(t)
	var tally Tally
	var buf bytes.Buffer
	is.NoErr(tally.Histogram(&buf, 5))
	is.Equal(buf.String(), "no games\n")

	for _, score := range []int{-4, -2, 0, 0, 2, 2, 2, 6} {
		tally.Add(score)
	}
	buf.Reset()
	is.NoErr(tally.Histogram(&buf, 5))
	is.True(len(strings.TrimSpace(buf.String())) > 0)
	is.True(len(strings.Split(strings.TrimSpace(buf.String()), "\n")) > 1)
}

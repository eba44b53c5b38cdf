package automatic

// Data collection for automatic games.

import (
	"context"
	"encoding/binary"
	"encoding/csv"
	"errors"
	"expvar"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync/atomic"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/og/stats"
)

var (
	GamesPlayed *expvar.Int
	IsPlaying   *expvar.Int
)

// playing guards StartCompVComp; IsPlaying only mirrors it for expvar.
var playing atomic.Bool

func init() {
	GamesPlayed = expvar.NewInt("ogGamesPlayed")
	IsPlaying = expvar.NewInt("ogIsPlaying")
}

var (
	turnLogHeader   = []string{"gameID", "turn", "player", "bot", "move", "filled", "score"}
	resultLogHeader = []string{"gameID", "black", "white", "score", "turns"}
)

var ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")

// Options configures a batch of automatic games.
type Options struct {
	Games   int
	Threads int
	Black   string
	White   string
	// Depth is the search depth of minimax and alphabeta bots.
	Depth int
	// Seed makes random bots repeatable. Every bot in the batch derives its
	// own seed from it.
	Seed *[32]byte
	// TurnLog and ResultLog receive CSV records when not nil.
	TurnLog   io.Writer
	ResultLog io.Writer
}

func (o Options) validate() error {
	if o.Games < 1 {
		return fmt.Errorf("need at least one game, got %d", o.Games)
	}
	if o.Threads < 1 {
		return fmt.Errorf("need at least one thread, got %d", o.Threads)
	}
	for _, name := range []string{o.Black, o.White} {
		if _, err := NewBot(name, o.Depth, nil); err != nil {
			return err
		}
	}
	return nil
}

// seedFor derives the seed of one bot in one game by hashing the batch
// seed with the game ID, the bot's side and a word counter.
func (o Options) seedFor(gameID, idx int) *[32]byte {
	if o.Seed == nil {
		return nil
	}
	buf := make([]byte, 32+8+8+1)
	copy(buf, o.Seed[:])
	binary.LittleEndian.PutUint64(buf[32:], uint64(gameID))
	binary.LittleEndian.PutUint64(buf[40:], uint64(idx))
	var s [32]byte
	for k := 0; k < 4; k++ {
		buf[48] = byte(k)
		binary.LittleEndian.PutUint64(s[k*8:], xxhash.Sum64(buf))
	}
	return &s
}

// StartCompVComp plays opts.Games games, opts.Threads at a time, and
// returns once every game is finished or one of them fails.
func StartCompVComp(ctx context.Context, opts Options) (*stats.Tally, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if !playing.CompareAndSwap(false, true) {
		return nil, ErrAlreadyPlaying
	}
	defer playing.Store(false)
	IsPlaying.Add(1)
	defer IsPlaying.Add(-1)
	log.Debug().Msgf("Starting %v games, %v threads", opts.Games, opts.Threads)

	turnChan := make(chan []string, 100)
	resultChan := make(chan []string, 100)
	loggerDone := make(chan error, 1)
	go func() {
		loggerDone <- writeLogs(opts.TurnLog, opts.ResultLog, turnChan, resultChan)
	}()

	tally := &stats.Tally{}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Threads)
	for i := 1; i <= opts.Games; i++ {
		if gctx.Err() != nil {
			log.Info().Msg("Got stop signal, exiting soon...")
			break
		}
		i := i
		g.Go(func() error {
			black, err := NewBot(opts.Black, opts.Depth, opts.seedFor(i, 0))
			if err != nil {
				return err
			}
			white, err := NewBot(opts.White, opts.Depth, opts.seedFor(i, 1))
			if err != nil {
				return err
			}
			r := NewGameRunner(i, black, white)
			if opts.TurnLog != nil {
				r.SetLogChan(turnChan)
			}
			score, err := r.PlayFullGame(gctx)
			if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}
			tally.Add(score)
			GamesPlayed.Add(1)
			resultChan <- []string{strconv.Itoa(i), black.Name(), white.Name(),
				strconv.Itoa(score), strconv.Itoa(r.Game().Turn())}
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		// stopped before queueing every game
		err = ctx.Err()
	}
	close(turnChan)
	close(resultChan)
	if lerr := <-loggerDone; err == nil {
		err = lerr
	}
	if err != nil {
		return nil, err
	}
	log.Info().Int("games", tally.Games()).Msg("All games finished.")
	return tally, nil
}

// writeLogs drains both channels until they are closed. A nil writer
// discards its records.
func writeLogs(turnLog, resultLog io.Writer, turns, results <-chan []string) error {
	var tw, rw *csv.Writer
	if turnLog != nil {
		tw = csv.NewWriter(turnLog)
		tw.Write(turnLogHeader)
	}
	if resultLog != nil {
		rw = csv.NewWriter(resultLog)
		rw.Write(resultLogHeader)
	}
	for turns != nil || results != nil {
		select {
		case rec, ok := <-turns:
			if !ok {
				turns = nil
				continue
			}
			if tw != nil {
				tw.Write(rec)
			}
		case rec, ok := <-results:
			if !ok {
				results = nil
				continue
			}
			if rw != nil {
				rw.Write(rec)
			}
		}
	}
	var errs []error
	for _, w := range []*csv.Writer{tw, rw} {
		if w != nil {
			w.Flush()
			errs = append(errs, w.Error())
		}
	}
	return errors.Join(errs...)
}

// AnalyzeLogFile reads a result log written by StartCompVComp and
// summarizes it.
func AnalyzeLogFile(filepath string) (string, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return "", err
	}
	defer file.Close()
	return AnalyzeResults(file)
}

// AnalyzeResults is AnalyzeLogFile for any reader.
func AnalyzeResults(rd io.Reader) (string, error) {
	r := csv.NewReader(rd)
	r.FieldsPerRecord = len(resultLogHeader)
	tally := &stats.Tally{}
	var black, white string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if record[0] == resultLogHeader[0] {
			continue
		}
		black, white = record[1], record[2]
		score, err := strconv.Atoi(record[3])
		if err != nil {
			return "", fmt.Errorf("bad score on game %s: %w", record[0], err)
		}
		tally.Add(score)
	}
	if tally.Games() == 0 {
		return "", errors.New("no games found in log")
	}
	return fmt.Sprintf("Black: %s\nWhite: %s\n", black, white) + tally.Summary(), nil
}

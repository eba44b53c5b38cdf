// Package automatic plays computer-versus-computer games of Og, for
// comparing bots and for gathering statistics.
package automatic

import (
	"context"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/domino14/og/board"
	"github.com/domino14/og/game"
)

// GameRunner plays a single game between two bots.
type GameRunner struct {
	game    *game.Game
	gameID  int
	bots    [2]Bot
	logchan chan<- []string
}

// NewGameRunner sets up a fresh game. Black moves first.
func NewGameRunner(gameID int, black, white Bot) *GameRunner {
	return &GameRunner{
		game:   game.NewGame(),
		gameID: gameID,
		bots:   [2]Bot{black, white},
	}
}

// SetLogChan makes the runner send one turn log record per move to ch.
func (r *GameRunner) SetLogChan(ch chan<- []string) {
	r.logchan = ch
}

func (r *GameRunner) Game() *game.Game {
	return r.game
}

func (r *GameRunner) botFor(player board.Cell) Bot {
	if player == board.White {
		return r.bots[1]
	}
	return r.bots[0]
}

// PlayBestTurn asks the bot on turn for a move and plays it.
func (r *GameRunner) PlayBestTurn(ctx context.Context) error {
	player := r.game.PlayerOnTurn()
	bot := r.botFor(player)
	m, err := bot.ChooseMove(ctx, r.game)
	if err != nil {
		return err
	}
	turn, err := r.game.PlayMove(m)
	if err != nil {
		return err
	}
	if r.logchan != nil {
		r.logchan <- []string{
			strconv.Itoa(r.gameID),
			strconv.Itoa(r.game.Turn()),
			player.String(),
			bot.Name(),
			m.String(),
			strconv.Itoa(len(turn.Filled)),
			strconv.Itoa(turn.ScoreAfter),
		}
	}
	return nil
}

// PlayFullGame plays until the board is full and returns the final score.
func (r *GameRunner) PlayFullGame(ctx context.Context) (int, error) {
	for r.game.Playing() {
		if err := r.PlayBestTurn(ctx); err != nil {
			return 0, err
		}
	}
	log.Debug().Int("game", r.gameID).Int("score", r.game.Score()).
		Int("turns", r.game.Turn()).Msg("game-over")
	return r.game.Score(), nil
}

package shell

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/domino14/og/automatic"
	"github.com/domino14/og/board"
	"github.com/domino14/og/config"
	"github.com/domino14/og/game"
	"github.com/domino14/og/move"
	"github.com/domino14/og/search"
)

type Response struct {
	message string
}

// Message is the text to show the user.
func (r *Response) Message() string {
	return r.message
}

type CmdOptions map[string][]string

func (c CmdOptions) String(key string) string {
	v := c[key]
	if len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c CmdOptions) Int(key string) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return 0, errors.New(key + " not found in options")
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultI, nil
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) Bool(key string) bool {
	v := c[key]
	if len(v) == 0 {
		return false
	}
	return strings.ToLower(v[0]) == "true"
}

func msg(message string) *Response {
	return &Response{message: message}
}

func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	a := sc.game.Applier()
	sc.game = game.NewGame()
	sc.game.SetApplier(a)
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("play <row> <col>")
	}
	m, err := move.FromCoords(strings.Join(cmd.args, " "))
	if err != nil {
		return nil, err
	}
	return sc.commit(m)
}

func (sc *ShellController) commit(m *move.Move) (*Response, error) {
	turn, err := sc.game.PlayMove(m)
	if err != nil {
		return nil, err
	}
	return msg("Played " + turn.String() + "\n\n" + sc.game.ToDisplayText()), nil
}

func (sc *ShellController) undo(cmd *shellcmd) (*Response, error) {
	if err := sc.game.Undo(); err != nil {
		return nil, err
	}
	return msg(sc.game.ToDisplayText()), nil
}

type searchParams struct {
	depth   int
	threads int
}

func (sc *ShellController) searchPrepare(cmd *shellcmd) (*searchParams, error) {
	depth, err := cmd.options.IntDefault("depth", sc.solver.MaxDepth())
	if err != nil {
		return nil, err
	}
	threads, err := cmd.options.IntDefault("threads", sc.solver.Threads())
	if err != nil {
		return nil, err
	}
	if threads < 1 {
		return nil, errors.New("threads must be at least 1")
	}
	return &searchParams{depth: depth, threads: threads}, nil
}

func (sc *ShellController) runSearch(algo search.Algorithm, params *searchParams) (search.Result, error) {
	oldThreads := sc.solver.Threads()
	sc.solver.SetThreads(params.threads)
	defer sc.solver.SetThreads(oldThreads)
	return sc.solver.Search(context.Background(), algo, sc.game.Board(),
		sc.game.PlayerOnTurn(), params.depth)
}

func (sc *ShellController) solve(cmd *shellcmd, algo search.Algorithm) (*Response, error) {
	params, err := sc.searchPrepare(cmd)
	if err != nil {
		return nil, err
	}
	res, err := sc.runSearch(algo, params)
	if err != nil {
		return nil, err
	}
	p := message.NewPrinter(language.English)
	return msg(p.Sprintf("%v (depth %d): best move for %v is %v, value %d, %d nodes examined",
		algo, params.depth, sc.game.PlayerOnTurn(), res.Move.String(), res.Score, res.Nodes)), nil
}

func (sc *ShellController) best(cmd *shellcmd) (*Response, error) {
	if !sc.game.Playing() {
		return nil, game.ErrGameOver
	}
	algo := search.AlphaBeta
	if a := cmd.options.String("algo"); a != "" {
		var err error
		algo, err = search.ParseAlgorithm(a)
		if err != nil {
			return nil, err
		}
	}
	params, err := sc.searchPrepare(cmd)
	if err != nil {
		return nil, err
	}
	res, err := sc.runSearch(algo, params)
	if err != nil {
		return nil, err
	}
	if res.Move == nil {
		return nil, errors.New("search found no move; is the depth at least 1?")
	}
	return sc.commit(res.Move)
}

func (sc *ShellController) load(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("load <board>, for example: load B... .W.. .... ....")
	}
	b, err := board.FromDisplayText(strings.Join(cmd.args, " "))
	if err != nil {
		return nil, err
	}
	onturn := board.Black
	switch strings.ToLower(cmd.options.String("turn")) {
	case "", "black", "b":
	case "white", "w":
		onturn = board.White
	default:
		return nil, errors.New("turn must be black or white")
	}
	g, err := game.NewGameFromBoard(b, onturn)
	if err != nil {
		return nil, err
	}
	g.SetApplier(sc.game.Applier())
	sc.game = g
	return msg(sc.game.ToDisplayText()), nil
}

var settableKeys = []string{config.ConfigMaxDepth, config.ConfigThreads}

func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		settings := sc.config.SanitizedSettings()
		keys := lo.Keys(settings)
		sort.Strings(keys)
		var str strings.Builder
		str.WriteString("Settings:\n")
		for _, k := range keys {
			fmt.Fprintf(&str, "  %s: %v\n", k, settings[k])
		}
		return msg(str.String()), nil
	}
	if len(cmd.args) != 2 {
		return nil, errors.New("set <key> <value>")
	}
	key, value := cmd.args[0], cmd.args[1]
	if !lo.Contains(settableKeys, key) {
		return nil, fmt.Errorf("cannot set %s; settable keys are %s", key, strings.Join(settableKeys, ", "))
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, err
	}

	sc.config.Lock()
	defer sc.config.Unlock()
	old := sc.config.GetInt(key)
	sc.config.Set(key, n)
	if err := sc.config.Validate(); err != nil {
		sc.config.Set(key, old)
		return nil, err
	}
	switch key {
	case config.ConfigMaxDepth:
		sc.solver.SetMaxDepth(n)
	case config.ConfigThreads:
		sc.solver.SetThreads(n)
	}
	return msg(fmt.Sprintf("%s set to %d", key, n)), nil
}

func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) > 0 {
		switch cmd.args[0] {
		case "analyze":
			if len(cmd.args) != 2 {
				return nil, errors.New("autoplay analyze <logfile>")
			}
			out, err := automatic.AnalyzeLogFile(cmd.args[1])
			if err != nil {
				return nil, err
			}
			return msg(out), nil
		default:
			return nil, errors.New("don't recognize " + cmd.args[0])
		}
	}

	opts := automatic.Options{
		Black: automatic.AlphaBetaBot,
		White: automatic.RandomBot,
	}
	var err error
	if opts.Games, err = cmd.options.IntDefault("games", sc.config.GetInt(config.ConfigAutoplayGames)); err != nil {
		return nil, err
	}
	if opts.Depth, err = cmd.options.IntDefault("depth", sc.solver.MaxDepth()); err != nil {
		return nil, err
	}
	if opts.Threads, err = cmd.options.IntDefault("threads", sc.solver.Threads()); err != nil {
		return nil, err
	}
	if b := cmd.options.String("black"); b != "" {
		opts.Black = b
	}
	if w := cmd.options.String("white"); w != "" {
		opts.White = w
	}
	if fn := cmd.options.String("logfile"); fn != "" {
		f, err := os.Create(fn)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		opts.ResultLog = f
	}
	if fn := cmd.options.String("turnlog"); fn != "" {
		f, err := os.Create(fn)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		opts.TurnLog = f
	}

	sc.showMessage(fmt.Sprintf("Playing %d games, %s (Black) vs %s (White)...",
		opts.Games, opts.Black, opts.White))
	tally, err := automatic.StartCompVComp(context.Background(), opts)
	if err != nil {
		return nil, err
	}
	out := tally.Summary()
	if cmd.options.Bool("histogram") {
		var str strings.Builder
		if err := tally.Histogram(&str, 9); err != nil {
			return nil, err
		}
		out += "\nMargins:\n" + str.String()
	}
	return msg(out), nil
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return usage()
	}
	return usageTopic(cmd.args[0])
}

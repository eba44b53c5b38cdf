// Package shell is an interactive command line for playing and analyzing
// games of Og.
package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/og/config"
	"github.com/domino14/og/game"
	"github.com/domino14/og/search"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
)

type ShellController struct {
	l      *readline.Instance
	config *config.Config
	out    io.Writer

	game      *game.Game
	solver    *search.Solver
	searchLog *os.File
}

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func writeln(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func (sc *ShellController) showMessage(msg string) {
	writeln(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

// NewShellController sets up a controller reading from the terminal.
func NewShellController(cfg *config.Config) *ShellController {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mog>\033[0m ",
		HistoryFile:     "/tmp/og-readline.tmp",
		AutoComplete:    NewShellCompleter(),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc := newController(cfg, l.Stderr())
	sc.l = l
	if err := sc.openSearchLog(); err != nil {
		sc.showError(err)
	}
	return sc
}

func newController(cfg *config.Config, out io.Writer) *ShellController {
	return &ShellController{
		config: cfg,
		out:    out,
		game:   game.NewGame(),
		solver: search.NewSolver(cfg),
	}
}

func (sc *ShellController) openSearchLog() error {
	fn := sc.config.GetString(config.ConfigSearchLog)
	if fn == "" {
		return nil
	}
	f, err := os.Create(fn)
	if err != nil {
		return fmt.Errorf("opening search log: %w", err)
	}
	sc.searchLog = f
	sc.solver.SetLogStream(f)
	log.Info().Str("file", fn).Msg("logging searches")
	return nil
}

// extractFields splits a line into a command, its arguments and its
// options. An option is a field starting with a dash, followed by its
// value; negative numbers are arguments.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := CmdOptions{}
	for idx := 1; idx < len(fields); idx++ {
		f := fields[idx]
		if strings.HasPrefix(f, "-") && !isNumber(f) {
			if idx == len(fields)-1 {
				return nil, errWrongOptionSyntax
			}
			key := f[1:]
			options[key] = append(options[key], fields[idx+1])
			idx++
			continue
		}
		args = append(args, f)
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

func isNumber(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}

// ProcessLine runs a single command line.
func (sc *ShellController) ProcessLine(line string) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	return sc.handle(cmd)
}

func (sc *ShellController) handle(cmd *shellcmd) (*Response, error) {
	switch cmd.cmd {
	case "new", "n":
		return sc.newGame(cmd)
	case "show", "s":
		return sc.show(cmd)
	case "play", "p":
		return sc.play(cmd)
	case "undo", "u":
		return sc.undo(cmd)
	case "minimax", "mm":
		return sc.solve(cmd, search.Minimax)
	case "alphabeta", "ab":
		return sc.solve(cmd, search.AlphaBeta)
	case "best", "aiplay":
		return sc.best(cmd)
	case "demo":
		return sc.demo(cmd)
	case "autoplay":
		return sc.autoplay(cmd)
	case "load":
		return sc.load(cmd)
	case "set":
		return sc.set(cmd)
	case "help":
		return sc.help(cmd)
	default:
		msg := fmt.Sprintf("command %v not found", strconv.Quote(cmd.cmd))
		log.Info().Msg(msg)
		return nil, errors.New(msg)
	}
}

// Execute runs one line given on the command line. The caller is
// responsible for shutting down afterwards.
func (sc *ShellController) Execute(line string) {
	if line == "exit" {
		return
	}
	resp, err := sc.ProcessLine(line)
	if err != nil {
		sc.showError(err)
	} else if resp != nil {
		sc.showMessage(resp.message)
	}
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)

		if line == "exit" || line == "bye" {
			sig <- syscall.SIGINT
			break
		}
		if line == "" {
			continue
		}
		resp, err := sc.ProcessLine(line)
		if err != nil {
			sc.showError(err)
		} else if resp != nil {
			sc.showMessage(resp.message)
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}

// Cleanup closes anything the controller opened.
func (sc *ShellController) Cleanup() {
	if sc.searchLog != nil {
		if err := sc.searchLog.Close(); err != nil {
			log.Err(err).Msg("closing-search-log")
		}
	}
}

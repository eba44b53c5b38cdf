package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct{}

func NewShellCompleter() *ShellCompleter {
	return &ShellCompleter{}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string
	Args    []string
}

var searchOptions = []string{"-depth", "-threads"}

var commandMetadata = map[string]CommandMetadata{
	"minimax":   {Options: searchOptions},
	"alphabeta": {Options: searchOptions},
	"best":      {Options: append([]string{"-algo"}, searchOptions...)},
	"demo":      {Options: []string{"-depth"}},
	"load":      {Options: []string{"-turn"}},
	"autoplay": {
		Options: []string{"-games", "-black", "-white", "-depth", "-threads", "-logfile", "-turnlog", "-histogram"},
		Args:    []string{"analyze"},
	},
	"set":  {Args: settableKeys},
	"help": {Args: []string{"play", "load", "minimax", "autoplay", "set"}},
}

var commandNames = []string{
	"new", "show", "play", "undo", "load", "minimax", "alphabeta", "best",
	"demo", "autoplay", "set", "help", "exit",
}

var botNames = []string{"minimax", "alphabeta", "random"}

// Do implements the readline.AutoCompleter interface.
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	fields, err := shellquote.Split(text)
	if err != nil {
		// unterminated quote and the like
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}
		var lastCompleteField string
		if endsWithSpace {
			lastCompleteField = fields[len(fields)-1]
		} else if len(fields) > 1 {
			lastCompleteField = fields[len(fields)-2]
		}

		switch lastCompleteField {
		case "-black", "-white":
			completions = botNames
		case "-algo":
			completions = botNames[:2]
		case "-turn":
			completions = []string{"black", "white"}
		case "-histogram":
			completions = []string{"true", "false"}
		}

		if completions == nil {
			if metadata, exists := commandMetadata[cmdName]; exists {
				if strings.HasPrefix(prefix, "-") || len(metadata.Args) == 0 {
					completions = metadata.Options
				} else {
					completions = metadata.Args
				}
			}
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			matches = append(matches, []rune(completion[len(prefix):]))
		}
	}
	return matches, len(prefix)
}

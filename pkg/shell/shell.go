// Package shell runs an interactive readline loop over a command
// dispatcher: tab completion and '?' help both come from the
// dispatcher's suggestion engine, and every entered line is executed
// against the tree.
package shell

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/psaab/cmdgraph/pkg/dispatch"
)

// ErrExit stops the loop cleanly when returned by a command.
var ErrExit = errors.New("exit")

// Config configures a Shell. Dispatcher is required; everything else
// has a usable default.
type Config struct {
	Dispatcher *dispatch.Dispatcher
	// Source is the caller identity commands run as.
	Source dispatch.Source
	Prompt string
	// HistoryFile persists input history across sessions. Empty
	// disables history.
	HistoryFile string
	Stdin       io.ReadCloser
	Stdout      io.Writer
	Stderr      io.Writer
	Logger      *slog.Logger
	// SuggestTimeout bounds each completion computation.
	SuggestTimeout time.Duration
}

// Shell is one interactive session.
type Shell struct {
	dispatcher     *dispatch.Dispatcher
	source         dispatch.Source
	prompt         string
	historyFile    string
	stdin          io.ReadCloser
	out            io.Writer
	errOut         io.Writer
	logger         *slog.Logger
	suggestTimeout time.Duration

	rl *readline.Instance
}

// New creates a shell from cfg.
func New(cfg Config) (*Shell, error) {
	if cfg.Dispatcher == nil {
		return nil, errors.New("shell: dispatcher is required")
	}
	s := &Shell{
		dispatcher:     cfg.Dispatcher,
		source:         cfg.Source,
		prompt:         cfg.Prompt,
		historyFile:    cfg.HistoryFile,
		stdin:          cfg.Stdin,
		out:            cfg.Stdout,
		errOut:         cfg.Stderr,
		logger:         cfg.Logger,
		suggestTimeout: cfg.SuggestTimeout,
	}
	if s.prompt == "" {
		s.prompt = "> "
	}
	if s.out == nil {
		s.out = os.Stdout
	}
	if s.errOut == nil {
		s.errOut = os.Stderr
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.suggestTimeout <= 0 {
		s.suggestTimeout = 2 * time.Second
	}
	return s, nil
}

func (s *Shell) stdout() io.Writer {
	if s.rl != nil {
		return s.rl.Stdout()
	}
	return s.out
}

// Run reads, completes and executes lines until EOF or a command
// returns ErrExit. Empty lines are skipped; command errors are printed
// and the loop continues.
func (s *Shell) Run() error {
	cfg := &readline.Config{
		Prompt:          s.prompt,
		HistoryFile:     s.historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    &completer{sh: s},
		Stdin:           s.stdin,
		Stdout:          s.out,
		Stderr:          s.errOut,
		Listener:        readline.FuncListener(s.helpListener),
	}
	rl, err := readline.NewEx(cfg)
	if err != nil {
		return fmt.Errorf("shell: readline: %w", err)
	}
	defer rl.Close()
	s.rl = rl

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			if err == io.EOF {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		s.logger.Debug("executing command", "line", line)
		result, err := s.dispatcher.Execute(line, s.source)
		if err != nil {
			if errors.Is(err, ErrExit) {
				return nil
			}
			fmt.Fprintf(s.errOut, "error: %v\n", err)
			continue
		}
		s.logger.Debug("command finished", "line", line, "result", result)
	}
}

// helpListener intercepts '?' and prints the completions for the line
// so far instead of inserting the character.
func (s *Shell) helpListener(line []rune, pos int, key rune) ([]rune, int, bool) {
	if key != '?' || pos < 1 {
		return line, pos, false
	}
	// Strip the '?' that readline already inserted.
	cleanLine := make([]rune, 0, len(line)-1)
	cleanLine = append(cleanLine, line[:pos-1]...)
	cleanLine = append(cleanLine, line[pos:]...)
	text := string(cleanLine[:pos-1])

	suggestions := s.complete(text, len(text))
	if suggestions.IsEmpty() {
		fmt.Fprintln(s.stdout(), "  (no help available)")
		return cleanLine, pos - 1, true
	}
	WriteHelp(s.stdout(), HelpCandidates(suggestions))
	return cleanLine, pos - 1, true
}

// Package cli implements the interactive grammar-validation session for satsh.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/mattn/go-isatty"

	"github.com/mjelva/satsh/pkg/cmdtree"
	"github.com/mjelva/satsh/pkg/config"
)

// Session is one interactive validation session over a grammar tree.
// The grammar is read-only; the session owns only the two navigation
// pointers and the derived prompt prefix.
type Session struct {
	cfg     config.Config
	grammar *cmdtree.Tree
	log     *slog.Logger

	current    cmdtree.NodeID
	prev       cmdtree.NodeID
	hasPrev    bool
	pathPrefix string

	in  io.Reader
	out io.Writer
	rl  *readline.Instance
}

// New validates cfg and prepares a session positioned at the grammar root.
func New(cfg config.Config, grammar *cmdtree.Tree, log *slog.Logger) (*Session, error) {
	if cfg.Prompt == "" {
		return nil, config.ErrEmptyPrompt
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Session{
		cfg:     cfg,
		grammar: grammar,
		log:     log,
		current: grammar.Root(),
		in:      os.Stdin,
		out:     os.Stdout,
	}, nil
}

var errExit = errors.New("exit")

// Run reads and resolves lines until exit, quit, or end of input.
// A terminal gets the readline UI; piped input gets a plain line loop.
func (s *Session) Run() error {
	if f, ok := s.in.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return s.runReadline()
	}
	return s.runPlain()
}

func (s *Session) runReadline() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          s.prompt(),
		HistoryFile:     s.cfg.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    &treeCompleter{s: s},
		Listener:        s.helpListener(),
	})
	if err != nil {
		return fmt.Errorf("readline init: %w", err)
	}
	s.rl = rl
	defer rl.Close()

	fmt.Fprintln(s.out, "satsh - command grammar validator")
	fmt.Fprintln(s.out, "Type '?' for possible completions")
	fmt.Fprintln(s.out)

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			if err != io.EOF {
				s.log.Warn("input stream failed", "err", err)
			}
			return nil
		}
		if err := s.dispatch(line); err != nil {
			if errors.Is(err, errExit) {
				return nil
			}
			return err
		}
		rl.SetPrompt(s.prompt())
	}
}

func (s *Session) runPlain() error {
	scanner := bufio.NewScanner(s.in)
	for {
		fmt.Fprint(s.out, s.prompt())
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				s.log.Warn("input stream failed", "err", err)
			}
			fmt.Fprintln(s.out)
			return nil
		}
		if err := s.dispatch(scanner.Text()); err != nil {
			if errors.Is(err, errExit) {
				return nil
			}
			return err
		}
	}
}

// dispatch resolves one input line. Blank lines re-prompt, exit and quit
// end the session, cd lines navigate, everything else is matched.
func (s *Session) dispatch(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "exit" || trimmed == "quit":
		return errExit
	case fields[0] == "cd":
		s.changeRoot(trimmed)
	default:
		s.handleInput(trimmed)
	}
	return nil
}

// handleInput matches the line's tokens against the grammar from the
// current root and prints exactly one of the two terminal outcomes.
func (s *Session) handleInput(line string) {
	cmds := commandsFrom(strings.Fields(line))
	seq, final := s.matchSequence(s.current, cmds)

	matched := seq.SubtreeCount(seq.Root())
	below := s.grammar.SubtreeCount(final)
	s.log.Debug("sequence resolved",
		"tokens", len(cmds), "matched", matched, "below", below)

	if matched == len(cmds) && below == 0 {
		fmt.Fprintln(s.out, "ACCEPTED")
		return
	}
	fmt.Fprintln(s.out, "USAGE")
	s.printUsage(seq, final)
}

// prompt is the navigated path prefix followed by the configured literal.
func (s *Session) prompt() string {
	return s.pathPrefix + s.cfg.Prompt
}

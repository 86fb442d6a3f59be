// Package config holds the runtime configuration for a satsh session.
package config

import "errors"

// Config carries everything the session needs at startup. The grammar
// itself is loaded separately by cmdtree.ImportFile.
type Config struct {
	// Prompt is the literal printed after the navigated path prefix.
	// An empty prompt is a fatal configuration error.
	Prompt string

	// GrammarFile is the path of the YAML command grammar document.
	GrammarFile string

	// HistoryFile is where readline persists line history.
	HistoryFile string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// LogFile, when set, receives session diagnostics instead of stderr.
	LogFile string
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Prompt:      "$: ",
		GrammarFile: "grammar.yml",
		HistoryFile: "/tmp/satsh_history",
		LogLevel:    "info",
	}
}

var (
	// ErrEmptyPrompt means the session must not start.
	ErrEmptyPrompt = errors.New("empty prompt not allowed")

	// ErrNoGrammarFile means there is nothing to validate against.
	ErrNoGrammarFile = errors.New("grammar file not set")
)

// Validate checks the startup invariants.
func (c Config) Validate() error {
	if c.Prompt == "" {
		return ErrEmptyPrompt
	}
	if c.GrammarFile == "" {
		return ErrNoGrammarFile
	}
	return nil
}

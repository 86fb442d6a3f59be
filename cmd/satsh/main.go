// satsh validates operator-typed command lines against a hierarchical
// command grammar loaded from a YAML document, with path-like navigation
// through the grammar before a command is typed.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mjelva/satsh/pkg/cli"
	"github.com/mjelva/satsh/pkg/cmdtree"
	"github.com/mjelva/satsh/pkg/config"
	"github.com/mjelva/satsh/pkg/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "satsh: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := config.Default()
	cmd := &cobra.Command{
		Use:           "satsh",
		Short:         "Validate operator command lines against a command grammar",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfg)
		},
	}
	f := cmd.Flags()
	f.StringVar(&cfg.GrammarFile, "grammar", cfg.GrammarFile, "YAML command grammar file")
	f.StringVar(&cfg.Prompt, "prompt", cfg.Prompt, "prompt literal shown after the navigated path")
	f.StringVar(&cfg.HistoryFile, "history", cfg.HistoryFile, "readline history file")
	f.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	f.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "write diagnostics to this file instead of stderr")
	return cmd
}

func run(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	var logw io.Writer = os.Stderr
	if cfg.LogFile != "" {
		fw, err := logging.NewFileWriter(logging.FileConfig{Path: cfg.LogFile})
		if err != nil {
			return err
		}
		defer fw.Close()
		logw = fw
	}
	log := logging.New(level, logw)

	grammar, err := cmdtree.ImportFile(cfg.GrammarFile)
	if err != nil {
		return err
	}
	log.Info("grammar loaded", "file", cfg.GrammarFile, "commands", grammar.Len()-1)

	sess, err := cli.New(cfg, grammar, log)
	if err != nil {
		return err
	}
	return sess.Run()
}

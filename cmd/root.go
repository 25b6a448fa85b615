// Package cmd implements the quire command line.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/JackWReid/quire/buffer"
	"github.com/JackWReid/quire/internal/config"
	"github.com/JackWReid/quire/internal/log"
	"github.com/JackWReid/quire/internal/spell"
)

var version = "dev"

// app carries state shared by every subcommand once config is loaded.
type app struct {
	cfgFile string
	cfg     config.Config
	log     *slog.Logger
	checker *spell.Checker
}

func newRootCmd() *cobra.Command {
	a := &app{log: log.Discard()}

	root := &cobra.Command{
		Use:           "quire",
		Short:         "Inspect and edit text files with grapheme-aware highlighting",
		Long:          `quire loads text files into a line-oriented buffer, highlights numbers, literals, keywords, search matches and misspellings, and applies scripted edits.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}
	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "",
		"config file (default: ./.quire.yaml or ~/.config/quire/config.yaml)")

	root.AddCommand(
		newViewCmd(a),
		newFindCmd(a),
		newStatsCmd(a),
		newEditCmd(a),
		newConfigCmd(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, used, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	opts := cfg.LoggerOptions()
	opts.Writer = cmd.ErrOrStderr()
	a.log = log.New(opts)
	a.log.Debug("loaded config", "path", used)
	return nil
}

// open loads path with the highlight and spelling settings from config.
func (a *app) open(path string) (*buffer.Document, error) {
	opts := []buffer.Option{buffer.WithLogger(a.log)}
	if !a.cfg.Highlight.Enabled {
		opts = append(opts, buffer.WithHighlightOptions(buffer.HighlightOptions{}))
	}

	if a.cfg.Highlight.Spelling && a.cfg.Spell.Dictionary != "" {
		if a.checker == nil {
			c, err := spell.Load(a.cfg.Spell.Dictionary, a.cfg.Spell.Depth)
			if err != nil {
				return nil, err
			}
			a.log.Debug("loaded dictionary", "path", a.cfg.Spell.Dictionary, "words", c.Len())
			a.checker = c
		}
		opts = append(opts, buffer.WithWordChecker(a.checker))
	}

	d, err := buffer.Open(path, opts...)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Execute runs the root command.
func Execute() error {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "quire: %v\n", err)
		return err
	}
	return nil
}

// SetVersion sets the version string (called from main with ldflags).
func SetVersion(v string) {
	version = v
}

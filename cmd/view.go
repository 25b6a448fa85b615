package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JackWReid/quire/internal/render"
	"github.com/JackWReid/quire/internal/terminal"
)

type viewOptions struct {
	search      string
	color       string
	width       int
	lineNumbers bool
	wrap        bool
	status      bool
}

func newViewCmd(a *app) *cobra.Command {
	var opts viewOptions
	cmd := &cobra.Command{
		Use:   "view FILE",
		Short: "Print a file with highlighting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runView(cmd, args[0], opts)
		},
	}
	cmd.Flags().StringVarP(&opts.search, "search", "s", "", "highlight every occurrence of this text")
	cmd.Flags().StringVar(&opts.color, "color", "", "when to color output: auto, always or never (default from config)")
	cmd.Flags().IntVarP(&opts.width, "width", "w", 0, "truncate rows to this many cells (default from config or terminal)")
	cmd.Flags().BoolVarP(&opts.lineNumbers, "line-numbers", "n", false, "prefix rows with line numbers")
	cmd.Flags().BoolVar(&opts.wrap, "wrap", false, "soft-wrap long rows at spaces instead of truncating")
	cmd.Flags().BoolVar(&opts.status, "status", false, "print a status bar after the text")
	return cmd
}

func (a *app) runView(cmd *cobra.Command, path string, opts viewOptions) error {
	mode := a.cfg.ColorMode()
	if opts.color != "" {
		m, err := terminal.ParseColorMode(opts.color)
		if err != nil {
			return err
		}
		mode = m
	}

	d, err := a.open(path)
	if err != nil {
		return err
	}
	if opts.search != "" {
		d.Highlight(opts.search)
	}

	term := terminal.New(os.Stdout)
	width := a.cfg.Render.Width
	if opts.width > 0 {
		width = opts.width
	}
	r := render.New(term.Color(mode), 0)
	r.LineNumbers = opts.lineNumbers
	r.Wrap = opts.wrap
	// Only a real terminal gets truncated unless a width was asked for.
	if width > 0 || term.IsTerminal() {
		r.Width = term.Width(width)
	}

	out := cmd.OutOrStdout()
	if _, err := fmt.Fprint(out, r.Document(d)); err != nil {
		return err
	}
	if opts.status {
		left, right := render.Status(d)
		if opts.search != "" {
			right = fmt.Sprintf("%d matches | %s", len(d.Matches(opts.search)), right)
		}
		_, err = fmt.Fprintln(out, r.StatusBar(left, right, term.Width(width)))
	}
	return err
}

package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JackWReid/quire/buffer"
)

var errNoMatch = errors.New("no match")

type findOptions struct {
	at       string
	backward bool
	all      bool
}

func newFindCmd(a *app) *cobra.Command {
	var opts findOptions
	cmd := &cobra.Command{
		Use:   "find FILE QUERY",
		Short: "Print the ROW:COL of QUERY in FILE",
		Long: `Search FILE for QUERY and print its position as 1-based ROW:COL, where COL
counts grapheme clusters. Without --all only the first match from --at is printed.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runFind(cmd, args[0], args[1], opts)
		},
	}
	cmd.Flags().StringVar(&opts.at, "at", "", "start position as ROW:COL (1-based)")
	cmd.Flags().BoolVarP(&opts.backward, "backward", "b", false, "search towards the start of the file")
	cmd.Flags().BoolVarP(&opts.all, "all", "a", false, "print every non-overlapping match")
	return cmd
}

func (a *app) runFind(cmd *cobra.Command, path, query string, opts findOptions) error {
	d, err := a.open(path)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if opts.all {
		ms := d.Matches(query)
		if len(ms) == 0 {
			return fmt.Errorf("%w for %q", errNoMatch, query)
		}
		for _, m := range ms {
			fmt.Fprintln(out, formatPosition(m.Start()))
		}
		return nil
	}

	start := buffer.Position{}
	if opts.backward {
		start = buffer.Position{X: 0, Y: d.Len()}
	}
	if opts.at != "" {
		if start, err = parsePosition(opts.at); err != nil {
			return err
		}
	}

	dir := buffer.Forward
	if opts.backward {
		dir = buffer.Backward
	}
	p, ok := d.Find(query, start, dir)
	if !ok {
		return fmt.Errorf("%w for %q", errNoMatch, query)
	}
	fmt.Fprintln(out, formatPosition(p))
	return nil
}

// parsePosition parses a 1-based "ROW:COL" into a Position.
func parsePosition(s string) (buffer.Position, error) {
	row, col, ok := strings.Cut(s, ":")
	if !ok {
		return buffer.Position{}, fmt.Errorf("invalid position %q: want ROW:COL", s)
	}
	y, err := strconv.Atoi(row)
	if err != nil || y < 1 {
		return buffer.Position{}, fmt.Errorf("invalid row in %q", s)
	}
	x, err := strconv.Atoi(col)
	if err != nil || x < 1 {
		return buffer.Position{}, fmt.Errorf("invalid column in %q", s)
	}
	return buffer.Position{X: x - 1, Y: y - 1}, nil
}

func formatPosition(p buffer.Position) string {
	return fmt.Sprintf("%d:%d", p.Y+1, p.X+1)
}

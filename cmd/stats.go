package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JackWReid/quire/buffer"
	"github.com/JackWReid/quire/internal/spell"
)

// Stats summarises a document.
type Stats struct {
	Lines    int
	Words    int
	Clusters int
	Bytes    int
	Tags     map[buffer.Tag]int
	Spelling []spell.Error
}

// collectStats counts rows, words, clusters, bytes including terminators
// and highlighted columns per tag.
func collectStats(d *buffer.Document) Stats {
	s := Stats{Lines: d.Len(), Words: d.WordCount(), Tags: make(map[buffer.Tag]int)}
	for y := 0; y < d.Len(); y++ {
		row := d.Row(y)
		s.Clusters += row.Len()
		s.Bytes += len(row.String()) + 1
		for _, t := range row.Tags() {
			if t != buffer.TagNone {
				s.Tags[t]++
			}
		}
	}
	s.Spelling = spell.Errors(d)
	return s
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats FILE",
		Short: "Print line, cluster and highlight counts for FILE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.open(args[0])
			if err != nil {
				return err
			}
			s := collectStats(d)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "file:       %s\n", d.Filename())
			fmt.Fprintf(out, "filetype:   %s\n", d.FileType().Name)
			fmt.Fprintf(out, "lines:      %d\n", s.Lines)
			fmt.Fprintf(out, "words:      %d\n", s.Words)
			fmt.Fprintf(out, "clusters:   %d\n", s.Clusters)
			fmt.Fprintf(out, "bytes:      %d\n", s.Bytes)
			for t := buffer.TagNumber; t <= buffer.TagMisspelled; t++ {
				if n := s.Tags[t]; n > 0 {
					fmt.Fprintf(out, "%-11s %d\n", t.String()+":", n)
				}
			}
			for _, e := range s.Spelling {
				fmt.Fprintf(out, "misspelled: %s at %s\n", e.Word, formatPosition(buffer.Position{X: e.StartCol, Y: e.Row}))
			}
			return nil
		},
	}
}

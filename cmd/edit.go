package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/JackWReid/quire/buffer"
)

// Step is one operation of an edit script. Row and Col are 1-based; Col
// may be one past the last cluster to address the end of the row.
type Step struct {
	Op    string `yaml:"op"` // "insert", "delete" or "newline"
	Row   int    `yaml:"row"`
	Col   int    `yaml:"col"`
	Text  string `yaml:"text,omitempty"`  // insert only
	Count int    `yaml:"count,omitempty"` // delete only, default 1
}

// loadScript reads a YAML list of steps from path.
func loadScript(path string) ([]Step, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	var steps []Step
	if err := yaml.Unmarshal(data, &steps); err != nil {
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	for i, s := range steps {
		if err := s.validate(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return steps, nil
}

func (s Step) validate() error {
	switch s.Op {
	case "insert", "delete", "newline":
	default:
		return fmt.Errorf("unknown op %q", s.Op)
	}
	if s.Row < 1 || s.Col < 1 {
		return fmt.Errorf("row and col are 1-based, got %d:%d", s.Row, s.Col)
	}
	if s.Count < 0 {
		return fmt.Errorf("negative count %d", s.Count)
	}
	return nil
}

// apply runs s against d. Inserted text advances the cursor by the clusters
// it adds, so a combining mark stays on the cluster before it. A line
// terminator ("\r\n" counts as one) moves the cursor to the start of the
// next row.
func (s Step) apply(d *buffer.Document) {
	at := buffer.Position{X: s.Col - 1, Y: s.Row - 1}
	switch s.Op {
	case "insert":
		for _, r := range strings.ReplaceAll(s.Text, "\r\n", "\n") {
			before := d.RowLen(at.Y)
			d.Insert(at, r)
			if r == '\n' || r == '\r' {
				at = buffer.Position{X: 0, Y: at.Y + 1}
				continue
			}
			if d.RowLen(at.Y) > before {
				at.X++
			}
		}
	case "delete":
		n := s.Count
		if n == 0 {
			n = 1
		}
		for range n {
			d.Delete(at)
		}
	case "newline":
		d.InsertNewline(at)
	}
}

func newEditCmd(a *app) *cobra.Command {
	var scriptPath, output string
	cmd := &cobra.Command{
		Use:   "edit FILE",
		Short: "Apply a YAML edit script to FILE",
		Long: `Apply the steps in a YAML edit script to FILE and save the result.

Example script:

  - op: insert
    row: 1
    col: 1
    text: "// header\n"
  - op: delete
    row: 3
    col: 5
    count: 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, err := loadScript(scriptPath)
			if err != nil {
				return err
			}
			d, err := a.open(args[0])
			if err != nil {
				return err
			}
			for _, s := range steps {
				s.apply(d)
			}
			if !d.IsDirty() && output == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "no changes to %s\n", d.Filename())
				return nil
			}
			if output != "" {
				err = d.SaveAs(output)
			} else {
				err = d.Save()
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "applied %d steps, wrote %s (%d lines)\n", len(steps), d.Filename(), d.Len())
			return nil
		},
	}
	cmd.Flags().StringVarP(&scriptPath, "script", "s", "", "YAML edit script")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this path instead of FILE")
	_ = cmd.MarkFlagRequired("script")
	return cmd
}

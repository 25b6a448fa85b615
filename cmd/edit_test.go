package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JackWReid/quire/buffer"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestEdit(t *testing.T) {
	dir := setup(t)
	path := writeFile(t, dir, "a.txt", "hello world\nsecond\n")
	script := writeFile(t, dir, "s.yaml", `
- op: insert
  row: 1
  col: 1
  text: "> "
- op: newline
  row: 1
  col: 8
- op: delete
  row: 2
  col: 1
- op: delete
  row: 2
  col: 6
`)

	out, _, err := run(t, "edit", path, "--script", script)
	require.NoError(t, err)
	assert.Contains(t, out, "applied 4 steps")
	assert.Equal(t, "> hello\nworldsecond\n", readFile(t, path))
}

func TestEditOutput(t *testing.T) {
	dir := setup(t)
	path := writeFile(t, dir, "a.txt", "one\n")
	dest := filepath.Join(dir, "b.txt")
	script := writeFile(t, dir, "s.yaml", "- op: insert\n  row: 1\n  col: 4\n  text: \"\\ntwo\"\n")

	_, _, err := run(t, "edit", path, "-s", script, "-o", dest)
	require.NoError(t, err)
	assert.Equal(t, "one\n", readFile(t, path), "source untouched")
	assert.Equal(t, "one\ntwo\n", readFile(t, dest))
}

func TestEditNoChanges(t *testing.T) {
	dir := setup(t)
	path := writeFile(t, dir, "a.txt", "one\n")
	script := writeFile(t, dir, "s.yaml", "- op: delete\n  row: 5\n  col: 1\n")

	out, _, err := run(t, "edit", path, "-s", script)
	require.NoError(t, err)
	assert.Contains(t, out, "no changes")
}

func TestEditScriptErrors(t *testing.T) {
	dir := setup(t)
	path := writeFile(t, dir, "a.txt", "one\n")

	tests := []struct {
		name   string
		script string
		errMsg string
	}{
		{"unknown op", "- op: replace\n  row: 1\n  col: 1\n", "unknown op"},
		{"zero row", "- op: delete\n  row: 0\n  col: 1\n", "1-based"},
		{"negative count", "- op: delete\n  row: 1\n  col: 1\n  count: -1\n", "negative count"},
		{"not a list", "op: insert\n", "parsing script"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script := writeFile(t, dir, "s.yaml", tt.script)
			_, _, err := run(t, "edit", path, "-s", script)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	_, _, err := run(t, "edit", path)
	require.Error(t, err, "--script is required")
}

func TestStepApply(t *testing.T) {
	d := buffer.New()
	Step{Op: "insert", Row: 1, Col: 1, Text: "ab\ncd"}.apply(d)
	assert.Equal(t, "ab\ncd", d.Text())

	Step{Op: "delete", Row: 1, Col: 1, Count: 5}.apply(d)
	assert.Equal(t, "", d.Text(), "deleting at the end of a row joins the next")
	assert.Equal(t, 1, d.Len())
}

func TestStepApply_CombiningMark(t *testing.T) {
	d, err := buffer.Read(strings.NewReader("ab\n"))
	require.NoError(t, err)

	Step{Op: "insert", Row: 1, Col: 1, Text: "e\u0301!"}.apply(d)
	assert.Equal(t, "e\u0301!ab", d.Text(), "the mark joins e without moving the cursor")
	assert.Equal(t, 4, d.RowLen(0))
}

func TestStepApply_CRLF(t *testing.T) {
	d, err := buffer.Read(strings.NewReader("ab\n"))
	require.NoError(t, err)

	Step{Op: "insert", Row: 1, Col: 2, Text: "X\r\nY"}.apply(d)
	assert.Equal(t, "aX\nYb", d.Text())

	Step{Op: "insert", Row: 2, Col: 1, Text: "\r"}.apply(d)
	assert.Equal(t, "aX\n\nYb", d.Text(), "a lone CR still breaks the row")
}

func TestEditCombiningAndCRLF(t *testing.T) {
	dir := setup(t)
	path := writeFile(t, dir, "a.txt", "ab\n")
	script := writeFile(t, dir, "s.yaml", "- op: insert\n  row: 1\n  col: 1\n  text: \"e\\u0301!\"\n- op: insert\n  row: 1\n  col: 4\n  text: \"X\\r\\nY\"\n")

	_, _, err := run(t, "edit", path, "-s", script)
	require.NoError(t, err)
	assert.Equal(t, "e\u0301!aX\nYb\n", readFile(t, path))
}

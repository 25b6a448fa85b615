package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JackWReid/quire/buffer"
)

func TestFind(t *testing.T) {
	dir := setup(t)
	path := writeFile(t, dir, "a.txt", "hello\nworld hello\n")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"first", nil, "1:1\n"},
		{"all", []string{"--all"}, "1:1\n2:7\n"},
		{"backward from end", []string{"--backward"}, "2:7\n"},
		{"from position", []string{"--at", "1:2"}, "2:7\n"},
		{"backward from position", []string{"-b", "--at", "2:7"}, "1:1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"find", path, "hello"}, tt.args...)
			out, _, err := run(t, args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestFindGraphemeColumns(t *testing.T) {
	dir := setup(t)
	path := writeFile(t, dir, "a.txt", "e\u0301tude x\n")

	out, _, err := run(t, "find", path, "x")
	require.NoError(t, err)
	assert.Equal(t, "1:7\n", out)
}

func TestFindNoMatch(t *testing.T) {
	dir := setup(t)
	path := writeFile(t, dir, "a.txt", "hello\n")

	_, _, err := run(t, "find", path, "bye")
	require.ErrorIs(t, err, errNoMatch)

	_, _, err = run(t, "find", "--all", path, "bye")
	require.ErrorIs(t, err, errNoMatch)
}

func TestParsePosition(t *testing.T) {
	p, err := parsePosition("3:5")
	require.NoError(t, err)
	assert.Equal(t, buffer.Position{X: 4, Y: 2}, p)
	assert.Equal(t, "3:5", formatPosition(p))

	for _, bad := range []string{"", "3", "0:1", "1:0", "a:b", "1:-2"} {
		_, err := parsePosition(bad)
		assert.Error(t, err, bad)
	}
}

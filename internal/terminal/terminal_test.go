package terminal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempFile(t *testing.T) *os.File {
	t.Helper()
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		in   string
		want ColorMode
	}{
		{"", ColorAuto},
		{"auto", ColorAuto},
		{"Always", ColorAlways},
		{" never ", ColorNever},
	}
	for _, tt := range tests {
		got, err := ParseColorMode(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.NotEmpty(t, got.String())
	}

	_, err := ParseColorMode("sometimes")
	require.Error(t, err)
}

func TestFileIsNotTerminal(t *testing.T) {
	term := New(tempFile(t))
	assert.False(t, term.IsTerminal())

	_, _, ok := term.Size()
	assert.False(t, ok)
}

func TestWidth(t *testing.T) {
	term := New(tempFile(t))
	assert.Equal(t, 42, term.Width(42))
	assert.Equal(t, DefaultWidth, term.Width(0))
	assert.Equal(t, DefaultWidth, term.Width(-1))
}

func TestColor(t *testing.T) {
	term := New(tempFile(t))
	assert.True(t, term.Color(ColorAlways))
	assert.False(t, term.Color(ColorNever))
	assert.False(t, term.Color(ColorAuto), "auto never colors a plain file")
}

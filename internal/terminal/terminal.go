// Package terminal probes the output terminal for size and color support.
package terminal

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// DefaultWidth is used when the output is not a terminal or its size cannot
// be queried.
const DefaultWidth = 80

// ColorMode controls when ANSI colors are emitted.
type ColorMode int

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

func (m ColorMode) String() string {
	switch m {
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return "auto"
	}
}

// ParseColorMode parses "auto", "always" or "never". The empty string is
// treated as auto.
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("unknown color mode %q", s)
	}
}

// Terminal describes an output file.
type Terminal struct {
	fd    int
	isTTY bool
}

// New probes f.
func New(f *os.File) *Terminal {
	fd := int(f.Fd())
	return &Terminal{fd: fd, isTTY: term.IsTerminal(fd)}
}

// IsTerminal reports whether the output is attached to a terminal.
func (t *Terminal) IsTerminal() bool { return t.isTTY }

// Size returns the terminal dimensions. ok is false when the output is not
// a terminal or the query failed.
func (t *Terminal) Size() (width, height int, ok bool) {
	if !t.isTTY {
		return 0, 0, false
	}
	w, h, err := term.GetSize(t.fd)
	if err != nil || w <= 0 {
		return 0, 0, false
	}
	return w, h, true
}

// Width returns the configured width when positive, otherwise the terminal
// width, falling back to DefaultWidth.
func (t *Terminal) Width(configured int) int {
	if configured > 0 {
		return configured
	}
	if w, _, ok := t.Size(); ok {
		return w
	}
	return DefaultWidth
}

// Color reports whether output should be colored under mode. Auto colors
// terminals unless NO_COLOR is set.
func (t *Terminal) Color(mode ColorMode) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return t.isTTY && os.Getenv("NO_COLOR") == ""
	}
}

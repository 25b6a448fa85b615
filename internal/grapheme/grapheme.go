// Package grapheme provides grapheme cluster helpers for column arithmetic.
//
// All columns in quire count extended grapheme clusters, never bytes or
// runes. "e\u0301" is one column, and so is a ZWJ family emoji. The helpers
// here translate between byte offsets in a Go string and cluster indices.
package grapheme

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Split returns the grapheme clusters of text in order.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	out := make([]string, 0, len(text))
	state := -1
	for len(text) > 0 {
		var cluster string
		cluster, text, _, state = uniseg.StepString(text, state)
		out = append(out, cluster)
	}
	return out
}

// Count returns the number of grapheme clusters in text.
func Count(text string) int {
	return uniseg.GraphemeClusterCount(text)
}

// Join concatenates clusters into a single string.
func Join(clusters []string) string {
	return strings.Join(clusters, "")
}

// Offset converts a cluster index to a byte offset.
// Returns 0 for idx <= 0 and len(text) when idx is past the last cluster.
func Offset(text string, idx int) int {
	if idx <= 0 {
		return 0
	}
	n := 0
	state := -1
	rest := text
	for len(rest) > 0 {
		_, rest, _, state = uniseg.StepString(rest, state)
		n++
		if n == idx {
			return len(text) - len(rest)
		}
	}
	return len(text)
}

// Index converts a byte offset to a cluster index. The second result is
// false when offset does not fall on a cluster boundary.
func Index(text string, offset int) (int, bool) {
	if offset <= 0 {
		return 0, offset == 0
	}
	n := 0
	pos := 0
	state := -1
	rest := text
	for len(rest) > 0 {
		if pos == offset {
			return n, true
		}
		if pos > offset {
			return n - 1, false
		}
		var cluster string
		cluster, rest, _, state = uniseg.StepString(rest, state)
		pos += len(cluster)
		n++
	}
	if pos > offset {
		return n - 1, false
	}
	return n, pos == offset
}

// Slice returns the substring covering clusters [start, end).
func Slice(text string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end <= start {
		return ""
	}
	return text[Offset(text, start):Offset(text, end)]
}

// Width returns the number of terminal cells cluster occupies.
func Width(cluster string) int {
	if cluster == "\t" {
		return 1
	}
	return runewidth.StringWidth(cluster)
}

// IsDigit reports whether cluster is a single ASCII digit.
func IsDigit(cluster string) bool {
	return len(cluster) == 1 && cluster[0] >= '0' && cluster[0] <= '9'
}

// IsSeparator reports whether cluster is a single ASCII punctuation or
// whitespace character.
func IsSeparator(cluster string) bool {
	if len(cluster) != 1 {
		return false
	}
	c := cluster[0]
	switch {
	case c == ' ', c == '\t', c == '\n', c == '\r', c == '\f', c == '\v':
		return true
	case c >= '!' && c <= '/', c >= ':' && c <= '@', c >= '[' && c <= '`', c >= '{' && c <= '~':
		return true
	}
	return false
}

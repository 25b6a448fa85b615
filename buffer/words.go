package buffer

import (
	"unicode"
	"unicode/utf8"
)

// Words returns the words of row l as column ranges. A word is a run of
// clusters starting with a letter, digit or underscore.
func (l *Line) Words() []Match {
	var out []Match
	start := -1
	for i, c := range l.Clusters(0, l.length) {
		r, _ := utf8.DecodeRuneInString(c)
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			out = append(out, Match{StartCol: start, EndCol: i})
			start = -1
		}
	}
	if start >= 0 {
		out = append(out, Match{StartCol: start, EndCol: l.length})
	}
	return out
}

// Words returns every word in the document in row order.
func (d *Document) Words() []Match {
	var out []Match
	for y, row := range d.rows {
		for _, w := range row.Words() {
			w.Row = y
			out = append(out, w)
		}
	}
	return out
}

// WordCount returns the number of words in the document.
func (d *Document) WordCount() int {
	n := 0
	for _, row := range d.rows {
		n += len(row.Words())
	}
	return n
}

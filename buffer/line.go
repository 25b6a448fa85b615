package buffer

import (
	"strings"

	"github.com/JackWReid/quire/internal/grapheme"
)

// Line is a single row of text without its line terminator.
//
// length always equals the number of grapheme clusters in text and is
// recomputed after every mutation. tags holds one entry per cluster; any
// mutation resets the tags from the first changed column to TagNone, so
// Highlight must be called again to restore semantic tags.
type Line struct {
	text   string
	length int
	tags   []Tag
}

// NewLine returns a Line holding s. s must not contain a line terminator.
func NewLine(s string) *Line {
	l := &Line{text: s, length: grapheme.Count(s)}
	l.tags = make([]Tag, l.length)
	return l
}

func (l *Line) clone() *Line {
	return &Line{text: l.text, length: l.length, tags: l.Tags()}
}

// Len returns the number of grapheme clusters in the line.
func (l *Line) Len() int { return l.length }

// IsEmpty reports whether the line has no content.
func (l *Line) IsEmpty() bool { return l.length == 0 }

// String returns the raw content.
func (l *Line) String() string { return l.text }

// Bytes returns the raw content as bytes.
func (l *Line) Bytes() []byte { return []byte(l.text) }

// Tags returns a copy of the tags from the last highlight pass.
func (l *Line) Tags() []Tag {
	out := make([]Tag, len(l.tags))
	copy(out, l.tags)
	return out
}

// TagAt returns the tag of column at, or TagNone when out of range.
func (l *Line) TagAt(at int) Tag {
	if at < 0 || at >= len(l.tags) {
		return TagNone
	}
	return l.tags[at]
}

// Clusters returns the grapheme clusters in columns [start, end), clamped
// to the line.
func (l *Line) Clusters(start, end int) []string {
	end = clampInt(end, 0, l.length)
	start = clampInt(start, 0, end)
	if start == end {
		return nil
	}
	return grapheme.Split(grapheme.Slice(l.text, start, end))
}

// Render returns the text of columns [start, end) with every tab replaced
// by a single space. end is clamped to Len and start to end.
func (l *Line) Render(start, end int) string {
	var sb strings.Builder
	for _, c := range l.Clusters(start, end) {
		if c == "\t" {
			sb.WriteByte(' ')
			continue
		}
		sb.WriteString(c)
	}
	return sb.String()
}

// Insert inserts r before column at. Columns at or past the end append.
func (l *Line) Insert(at int, r rune) {
	if at < 0 {
		at = 0
	}
	if at >= l.length {
		at = l.length
		l.text += string(r)
	} else {
		off := grapheme.Offset(l.text, at)
		l.text = l.text[:off] + string(r) + l.text[off:]
	}
	l.recount(at)
}

// Delete removes the cluster at column at. Out-of-range columns are ignored.
func (l *Line) Delete(at int) {
	if at < 0 || at >= l.length {
		return
	}
	start := grapheme.Offset(l.text, at)
	end := grapheme.Offset(l.text, at+1)
	l.text = l.text[:start] + l.text[end:]
	l.recount(at)
}

// Append moves the content of other onto the end of l. other is left empty.
func (l *Line) Append(other *Line) {
	if other == nil {
		return
	}
	from := l.length
	l.text += other.text
	other.text, other.length, other.tags = "", 0, nil
	l.recount(from)
}

// Split truncates l to its first at clusters and returns the remainder as
// a new Line. The remainder is empty when at >= Len.
func (l *Line) Split(at int) *Line {
	at = clampInt(at, 0, l.length)
	off := grapheme.Offset(l.text, at)
	rest := NewLine(l.text[off:])
	l.text = l.text[:off]
	l.recount(at)
	return rest
}

// Find returns the column of the first occurrence of query scanning from
// column from: forward searches columns >= from, backward searches the
// text before from and returns the last occurrence there.
func (l *Line) Find(query string, from int, dir SearchDirection) (int, bool) {
	m, ok := l.find(query, from, dir)
	return m.start, ok
}

func (l *Line) find(query string, from int, dir SearchDirection) (span, bool) {
	if query == "" || from < 0 || from > l.length {
		return span{}, false
	}
	lo, hi := 0, len(l.text)
	if dir == Forward {
		lo = grapheme.Offset(l.text, from)
	} else {
		hi = grapheme.Offset(l.text, from)
	}

	if dir == Forward {
		for lo < hi {
			i := strings.Index(l.text[lo:hi], query)
			if i < 0 {
				break
			}
			if m, ok := l.clusterSpan(lo+i, len(query)); ok {
				return m, true
			}
			lo += i + 1
		}
		return span{}, false
	}

	for hi > lo {
		i := strings.LastIndex(l.text[lo:hi], query)
		if i < 0 {
			break
		}
		if m, ok := l.clusterSpan(lo+i, len(query)); ok {
			return m, true
		}
		hi = lo + i + len(query) - 1
	}
	return span{}, false
}

// clusterSpan maps a byte range to columns. Ranges that start or end inside
// a cluster are rejected.
func (l *Line) clusterSpan(off, n int) (span, bool) {
	start, ok := grapheme.Index(l.text, off)
	if !ok {
		return span{}, false
	}
	end, ok := grapheme.Index(l.text, off+n)
	if !ok {
		return span{}, false
	}
	return span{start: start, end: end}, true
}

// matches returns every non-overlapping occurrence of word, left to right.
func (l *Line) matches(word string) []span {
	var out []span
	at := 0
	for {
		m, ok := l.find(word, at, Forward)
		if !ok {
			return out
		}
		out = append(out, m)
		at = m.end
	}
}

// Highlight recomputes every tag. Occurrences of word are tagged TagMatch
// and take precedence over all other categories; an empty word matches
// nothing.
func (l *Line) Highlight(opts HighlightOptions, word string) {
	var ms []span
	if word != "" {
		ms = l.matches(word)
	}
	l.tags = classify(grapheme.Split(l.text), opts, ms)
}

// recount refreshes the cached length and resets tags from column from.
func (l *Line) recount(from int) {
	l.length = grapheme.Count(l.text)
	from = clampInt(from, 0, l.length)
	if from > len(l.tags) {
		from = len(l.tags)
	}
	tags := make([]Tag, l.length)
	copy(tags, l.tags[:from])
	l.tags = tags
}

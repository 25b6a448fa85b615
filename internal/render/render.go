// Package render turns highlighted buffer rows into terminal output.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/JackWReid/quire/buffer"
	"github.com/JackWReid/quire/internal/grapheme"
)

const (
	reset     = "\x1b[0m"
	reverse   = "\x1b[7m"
	underline = "\x1b[4;31m"
)

// palette maps tags to SGR sequences. TagNone renders with the terminal's
// default attributes.
var palette = map[buffer.Tag]string{
	buffer.TagNumber:           fg(220, 163, 163),
	buffer.TagMatch:            fg(38, 139, 210),
	buffer.TagString:           fg(211, 54, 130),
	buffer.TagCharacter:        fg(108, 113, 196),
	buffer.TagComment:          fg(133, 153, 0),
	buffer.TagPrimaryKeyword:   fg(181, 137, 0),
	buffer.TagSecondaryKeyword: fg(42, 161, 152),
	buffer.TagMisspelled:       underline,
}

func fg(r, g, b int) string {
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", r, g, b)
}

// Color returns the SGR sequence for tag, or "" for TagNone.
func Color(tag buffer.Tag) string { return palette[tag] }

// Renderer builds output for a document into a single buffer.
type Renderer struct {
	// Color enables ANSI escapes.
	Color bool
	// Width caps the number of terminal cells per row. Zero disables
	// truncation.
	Width int
	// LineNumbers prefixes every row with its 1-based index.
	LineNumbers bool
	// Wrap soft-wraps rows longer than Width instead of truncating them.
	Wrap bool

	buf strings.Builder
}

// New returns a Renderer.
func New(color bool, width int) *Renderer {
	return &Renderer{Color: color, Width: width}
}

// Document renders every row of d followed by a newline.
func (r *Renderer) Document(d *buffer.Document) string {
	r.buf.Reset()
	gutter := len(strconv.Itoa(d.Len()))
	for y := 0; y < d.Len(); y++ {
		row := d.Row(y)
		width := r.Width
		prefix := ""
		if r.LineNumbers {
			prefix = fmt.Sprintf("%*d ", gutter, y+1)
			if width > 0 {
				width = max(width-len(prefix), 0)
			}
		}

		segs := []Segment{{Start: 0, End: row.Len()}}
		if r.Wrap && width > 0 {
			segs = Wrap(row, width)
		}
		for i, seg := range segs {
			if i > 0 && prefix != "" {
				prefix = strings.Repeat(" ", len(prefix))
			}
			r.buf.WriteString(prefix)
			r.writeSegment(row, seg, width)
			r.buf.WriteByte('\n')
		}
	}
	return r.buf.String()
}

// Line renders a single row without a trailing newline.
func (r *Renderer) Line(l *buffer.Line) string {
	r.buf.Reset()
	r.writeSegment(l, Segment{Start: 0, End: l.Len()}, r.Width)
	return r.buf.String()
}

func (r *Renderer) writeSegment(l *buffer.Line, seg Segment, width int) {
	tags := l.Tags()
	visible := 0
	current := buffer.TagNone
	for i, c := range l.Clusters(seg.Start, seg.End) {
		col := seg.Start + i
		if c == "\t" {
			c = " "
		}
		w := grapheme.Width(c)
		if width > 0 && visible+w > width {
			break
		}
		if r.Color {
			tag := buffer.TagNone
			if col < len(tags) {
				tag = tags[col]
			}
			if tag != current {
				if current != buffer.TagNone {
					r.buf.WriteString(reset)
				}
				r.buf.WriteString(Color(tag))
				current = tag
			}
		}
		r.buf.WriteString(c)
		visible += w
	}
	if current != buffer.TagNone {
		r.buf.WriteString(reset)
	}
}

// Segment is a column range of a row produced by Wrap.
type Segment struct {
	Start, End int
}

// Wrap soft-wraps l into segments of at most width cells, breaking at the
// last space that fits. The space at a break belongs to neither segment.
// Rows without a usable space are hard-broken. An empty row yields one
// empty segment.
func Wrap(l *buffer.Line, width int) []Segment {
	clusters := l.Clusters(0, l.Len())
	if len(clusters) == 0 || width <= 0 {
		return []Segment{{Start: 0, End: len(clusters)}}
	}

	var out []Segment
	start := 0
	for start < len(clusters) {
		end, cells := start, 0
		for end < len(clusters) {
			w := grapheme.Width(clusters[end])
			if cells+w > width {
				break
			}
			cells += w
			end++
		}
		if end == len(clusters) {
			out = append(out, Segment{Start: start, End: end})
			break
		}
		if end == start {
			// A single cluster wider than the row.
			out = append(out, Segment{Start: start, End: start + 1})
			start++
			continue
		}

		brk := -1
		for i := end; i > start; i-- {
			if clusters[i] == " " {
				brk = i
				break
			}
		}
		if brk < 0 {
			out = append(out, Segment{Start: start, End: end})
			start = end
			continue
		}
		out = append(out, Segment{Start: start, End: brk})
		start = brk + 1
	}
	return out
}

// StatusBar renders a reverse-video bar of the given width with left and
// right aligned segments. The left segment is truncated first.
func (r *Renderer) StatusBar(left, right string, width int) string {
	r.buf.Reset()
	if r.Color {
		r.buf.WriteString(reverse)
	}

	rw := grapheme.Width(right)
	if grapheme.Width(left)+rw >= width {
		left = Truncate(left, max(width-rw-1, 0))
	}
	gap := max(width-grapheme.Width(left)-rw, 0)

	r.buf.WriteString(left)
	r.buf.WriteString(strings.Repeat(" ", gap))
	r.buf.WriteString(right)
	if r.Color {
		r.buf.WriteString(reset)
	}
	return r.buf.String()
}

// Status returns the left and right status segments for d.
func Status(d *buffer.Document) (string, string) {
	name := d.Filename()
	if name == "" {
		name = "[No Name]"
	}
	if d.IsDirty() {
		name += " [+]"
	}
	return " " + name, fmt.Sprintf("%s | %d lines | %d words ", d.FileType().Name, d.Len(), d.WordCount())
}

// Truncate returns s cut to at most maxWidth terminal cells. ANSI CSI
// sequences are copied through without counting. Cutting styled text appends
// a reset.
func Truncate(s string, maxWidth int) string {
	var b strings.Builder
	visible := 0
	cut := false
	for i := 0; i < len(s); {
		if s[i] == '\x1b' && i+1 < len(s) && s[i+1] == '[' {
			start := i
			i += 2
			for i < len(s) && !isTerminator(s[i]) {
				i++
			}
			if i < len(s) {
				i++
			}
			b.WriteString(s[start:i])
			continue
		}
		c, _, _, _ := uniseg.FirstGraphemeClusterInString(s[i:], -1)
		end := i + len(c)
		if next := strings.IndexByte(s[i:end], '\x1b'); next > 0 {
			end = i + next
		}
		c = s[i:end]
		w := grapheme.Width(c)
		if visible+w > maxWidth {
			cut = true
			break
		}
		b.WriteString(c)
		visible += w
		i = end
	}
	if cut && strings.Contains(s, "\x1b[") {
		b.WriteString(reset)
	}
	return b.String()
}

func isTerminator(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

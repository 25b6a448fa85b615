package buffer

import (
	"bufio"
	"bytes"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/JackWReid/quire/internal/log"
)

// Document holds the text as an ordered slice of Lines plus the dirty flag
// and the optional backing filename.
type Document struct {
	rows     []*Line
	dirty    bool
	filename string
	fileType FileType

	override *HighlightOptions
	checker  WordChecker
	word     string

	log *slog.Logger
}

// Option configures a Document at construction.
type Option func(*Document)

// WithLogger sets the logger for load and save events.
func WithLogger(l *slog.Logger) Option {
	return func(d *Document) {
		if l != nil {
			d.log = l
		}
	}
}

// WithHighlightOptions replaces the options derived from the file type.
func WithHighlightOptions(opts HighlightOptions) Option {
	return func(d *Document) {
		d.override = &opts
	}
}

// WithWordChecker enables spell checking for prose file types.
func WithWordChecker(c WordChecker) Option {
	return func(d *Document) {
		d.checker = c
	}
}

// New returns an empty, unnamed document.
func New(opts ...Option) *Document {
	d := &Document{fileType: plainFileType, log: log.Discard()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Open reads the file at path into a new Document. The file type is
// detected from the path's extension.
func Open(path string, opts ...Option) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	text, err := decode(data)
	if err != nil {
		return nil, &IOError{Op: "decode", Path: path, Err: err}
	}

	d := New(opts...)
	d.filename = path
	d.fileType = DetectFileType(path)
	d.rows = splitLines(text)
	d.Highlight("")
	d.log.Debug("opened document", "path", path, "rows", len(d.rows), "filetype", d.fileType.Name)
	return d, nil
}

// Read loads a new unnamed Document from r.
func Read(r io.Reader, opts ...Option) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &IOError{Op: "read", Err: err}
	}
	text, err := decode(data)
	if err != nil {
		return nil, &IOError{Op: "decode", Err: err}
	}

	d := New(opts...)
	d.rows = splitLines(text)
	d.Highlight("")
	d.log.Debug("read document", "rows", len(d.rows))
	return d, nil
}

// decode strips a UTF-8 byte order mark, converts UTF-16 sources that carry
// one, and rejects anything that is not valid UTF-8.
func decode(data []byte) (string, error) {
	out, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), data)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(out) {
		return "", ErrInvalidEncoding
	}
	return string(out), nil
}

// splitLines splits on "\n", dropping a trailing "\r" from every line.
// A final terminator does not start another row.
func splitLines(text string) []*Line {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	parts := strings.Split(text, "\n")
	rows := make([]*Line, 0, len(parts))
	for _, p := range parts {
		rows = append(rows, NewLine(strings.TrimSuffix(p, "\r")))
	}
	return rows
}

// Save writes every row followed by "\n" to the backing file, replacing its
// contents. An unnamed document is left untouched and no error is returned.
// The dirty flag is cleared only when the write succeeds.
func (d *Document) Save() error {
	if d.filename == "" {
		d.log.Debug("save skipped: document has no filename")
		return nil
	}
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		return &IOError{Op: "save", Path: d.filename, Err: err}
	}
	if err := os.WriteFile(d.filename, buf.Bytes(), 0644); err != nil {
		return &IOError{Op: "save", Path: d.filename, Err: err}
	}
	d.dirty = false
	d.log.Debug("saved document", "path", d.filename, "rows", len(d.rows), "bytes", buf.Len())
	return nil
}

// SaveAs assigns filename and saves to it.
func (d *Document) SaveAs(filename string) error {
	d.SetFilename(filename)
	return d.Save()
}

// WriteTo writes every row followed by "\n" to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for _, row := range d.rows {
		m, err := bw.WriteString(row.text)
		n += int64(m)
		if err != nil {
			return n, err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return n, err
		}
		n++
	}
	return n, bw.Flush()
}

// Text returns the rows joined by "\n" without a trailing terminator.
func (d *Document) Text() string {
	parts := make([]string, len(d.rows))
	for i, row := range d.rows {
		parts[i] = row.text
	}
	return strings.Join(parts, "\n")
}

// Filename returns the backing filename, empty for a new buffer.
func (d *Document) Filename() string { return d.filename }

// SetFilename assigns the backing filename and re-detects the file type.
// Rows are re-highlighted for the new type.
func (d *Document) SetFilename(filename string) {
	d.filename = filename
	d.fileType = DetectFileType(filename)
	d.Highlight(d.word)
}

// FileType returns the detected file type.
func (d *Document) FileType() FileType { return d.fileType }

// SetHighlightOptions replaces the options derived from the file type and
// re-highlights every row.
func (d *Document) SetHighlightOptions(opts HighlightOptions) {
	d.override = &opts
	d.Highlight(d.word)
}

// HighlightOptions returns the options rows are highlighted with.
func (d *Document) HighlightOptions() HighlightOptions {
	opts := d.fileType.Options
	if d.override != nil {
		opts = *d.override
	}
	if d.checker != nil && d.fileType.Prose && opts.Spelling == nil {
		opts.Spelling = d.checker
	}
	return opts
}

// Row returns a copy of the line at row y, or nil when y is out of range.
// Mutating the copy does not change the document; edits go through the
// Document so the dirty flag stays accurate.
func (d *Document) Row(y int) *Line {
	if y < 0 || y >= len(d.rows) {
		return nil
	}
	return d.rows[y].clone()
}

// RowLen returns the length of row y, or 0 when y is out of range.
func (d *Document) RowLen(y int) int {
	if y < 0 || y >= len(d.rows) {
		return 0
	}
	return d.rows[y].Len()
}

// Len returns the number of rows.
func (d *Document) Len() int { return len(d.rows) }

// IsEmpty reports whether the document has no rows.
func (d *Document) IsEmpty() bool { return len(d.rows) == 0 }

// IsDirty reports whether there are changes since the last successful save.
func (d *Document) IsDirty() bool { return d.dirty }

func isLineTerminator(r rune) bool {
	return r == '\n' || r == '\r'
}

// Insert inserts r at at. A line terminator splits the row instead. Y one
// past the last row appends a new row; any other out-of-range Y is ignored.
func (d *Document) Insert(at Position, r rune) {
	if isLineTerminator(r) {
		d.InsertNewline(at)
		return
	}
	if at.Y < 0 || at.Y > len(d.rows) {
		return
	}
	if at.Y == len(d.rows) {
		row := NewLine("")
		row.Insert(0, r)
		d.rows = append(d.rows, row)
	} else {
		d.rows[at.Y].Insert(at.X, r)
	}
	d.dirty = true
	d.highlightRow(at.Y)
}

// Delete removes the cluster at at. At the end of any row but the last the
// next row is joined onto this one.
func (d *Document) Delete(at Position) {
	if at.Y < 0 || at.Y >= len(d.rows) {
		return
	}
	row := d.rows[at.Y]
	if at.X == row.Len() && at.Y+1 < len(d.rows) {
		row.Append(d.rows[at.Y+1])
		d.rows = slices.Delete(d.rows, at.Y+1, at.Y+2)
		d.dirty = true
		d.highlightRow(at.Y)
		return
	}
	if at.X < 0 || at.X >= row.Len() {
		return
	}
	row.Delete(at.X)
	d.dirty = true
	d.highlightRow(at.Y)
}

// InsertNewline splits row at.Y at column at.X; the suffix becomes the next
// row. Y one past the last row appends an empty row.
func (d *Document) InsertNewline(at Position) {
	if at.Y < 0 || at.Y > len(d.rows) {
		return
	}
	if at.Y == len(d.rows) {
		d.rows = append(d.rows, NewLine(""))
		d.dirty = true
		return
	}
	rest := d.rows[at.Y].Split(at.X)
	d.rows = slices.Insert(d.rows, at.Y+1, rest)
	d.dirty = true
	d.highlightRow(at.Y)
	d.highlightRow(at.Y + 1)
}

// Find searches for query starting at at. Forward scans from at to the end
// of the document; backward scans from at towards the start. Subsequent
// rows are searched from their start (forward) or end (backward).
func (d *Document) Find(query string, at Position, dir SearchDirection) (Position, bool) {
	if query == "" || len(d.rows) == 0 || at.Y < 0 {
		return Position{}, false
	}

	if dir == Forward {
		x := at.X
		for y := at.Y; y < len(d.rows); y++ {
			if col, ok := d.rows[y].Find(query, x, Forward); ok {
				return Position{X: col, Y: y}, true
			}
			x = 0
		}
		return Position{}, false
	}

	y := at.Y
	x := at.X
	if y >= len(d.rows) {
		y = len(d.rows) - 1
		x = d.rows[y].Len()
	}
	x = clampInt(x, 0, d.rows[y].Len())
	for ; y >= 0; y-- {
		if col, ok := d.rows[y].Find(query, x, Backward); ok {
			return Position{X: col, Y: y}, true
		}
		if y > 0 {
			x = d.rows[y-1].Len()
		}
	}
	return Position{}, false
}

// FindFirst returns the first occurrence of query in the document.
func (d *Document) FindFirst(query string) (Position, bool) {
	return d.Find(query, Position{}, Forward)
}

// Matches returns every non-overlapping occurrence of query, in document
// order.
func (d *Document) Matches(query string) []Match {
	if query == "" {
		return nil
	}
	var out []Match
	for y, row := range d.rows {
		for _, m := range row.matches(query) {
			out = append(out, Match{Row: y, StartCol: m.start, EndCol: m.end})
		}
	}
	return out
}

// Highlight re-highlights every row, tagging occurrences of word as
// matches. The word is kept so edited rows are re-highlighted with it.
func (d *Document) Highlight(word string) {
	d.word = word
	opts := d.HighlightOptions()
	for _, row := range d.rows {
		row.Highlight(opts, word)
	}
}

// SearchWord returns the word passed to the last Highlight call.
func (d *Document) SearchWord() string { return d.word }

func (d *Document) highlightRow(y int) {
	if y >= 0 && y < len(d.rows) {
		d.rows[y].Highlight(d.HighlightOptions(), d.word)
	}
}

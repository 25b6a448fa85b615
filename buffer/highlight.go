package buffer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/JackWReid/quire/internal/grapheme"
)

// Tag is the highlight category of a single grapheme column.
type Tag uint8

const (
	TagNone Tag = iota
	TagNumber
	TagMatch
	TagString
	TagCharacter
	TagComment
	TagPrimaryKeyword
	TagSecondaryKeyword
	TagMisspelled
)

var tagNames = [...]string{
	TagNone:             "none",
	TagNumber:           "number",
	TagMatch:            "match",
	TagString:           "string",
	TagCharacter:        "character",
	TagComment:          "comment",
	TagPrimaryKeyword:   "keyword1",
	TagSecondaryKeyword: "keyword2",
	TagMisspelled:       "misspelled",
}

func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return "unknown"
}

// WordChecker reports whether a word is spelled correctly.
type WordChecker interface {
	CheckWord(word string) bool
}

// HighlightOptions selects which lexical categories Line.Highlight assigns.
// The zero value tags everything TagNone except search matches.
type HighlightOptions struct {
	Numbers    bool
	Strings    bool
	Characters bool
	Comments   bool

	PrimaryKeywords   []string
	SecondaryKeywords []string

	// Spelling, when set, tags untagged words it rejects as TagMisspelled.
	Spelling WordChecker
}

// span is a half-open column range.
type span struct {
	start, end int
}

// classify computes one tag per cluster. Columns covered by matches are
// TagMatch and are skipped by every other rule; the separator state is not
// advanced across them.
func classify(clusters []string, opts HighlightOptions, matches []span) []Tag {
	n := len(clusters)
	tags := make([]Tag, n)
	matched := make([]bool, n)
	for _, m := range matches {
		for i := m.start; i < m.end && i < n; i++ {
			tags[i] = TagMatch
			matched[i] = true
		}
	}

	fill := func(from, to int, t Tag) {
		for i := from; i < to; i++ {
			if !matched[i] {
				tags[i] = t
			}
		}
	}

	prevSep := true
	i := 0
	for i < n {
		if matched[i] {
			i++
			continue
		}
		c := clusters[i]
		prev := TagNone
		if i > 0 {
			prev = tags[i-1]
		}

		if opts.Characters && c == "'" {
			if end, ok := charLiteralEnd(clusters, i); ok {
				fill(i, end, TagCharacter)
				i = end
				prevSep = true
				continue
			}
		}
		if opts.Comments && c == "/" && i+1 < n && clusters[i+1] == "/" {
			fill(i, n, TagComment)
			break
		}
		if opts.Strings && c == `"` {
			end := stringEnd(clusters, i)
			fill(i, end, TagString)
			i = end
			prevSep = true
			continue
		}

		if opts.Numbers {
			digit := grapheme.IsDigit(c) && (prevSep || prev == TagNumber)
			dot := c == "." && prev == TagNumber
			if digit || dot {
				tags[i] = TagNumber
				prevSep = grapheme.IsSeparator(c)
				i++
				continue
			}
		}

		if prevSep {
			if k := keywordAt(clusters, i, opts.PrimaryKeywords); k > 0 {
				fill(i, i+k, TagPrimaryKeyword)
				i += k
				prevSep = false
				continue
			}
			if k := keywordAt(clusters, i, opts.SecondaryKeywords); k > 0 {
				fill(i, i+k, TagSecondaryKeyword)
				i += k
				prevSep = false
				continue
			}
		}

		prevSep = grapheme.IsSeparator(c)
		i++
	}

	if opts.Spelling != nil {
		markMisspelled(clusters, tags, opts.Spelling)
	}
	return tags
}

// charLiteralEnd matches 'x' and '\x' starting at i.
func charLiteralEnd(clusters []string, i int) (int, bool) {
	closing := i + 2
	if i+1 < len(clusters) && clusters[i+1] == `\` {
		closing = i + 3
	}
	if closing < len(clusters) && clusters[closing] == "'" {
		return closing + 1, true
	}
	return 0, false
}

// stringEnd returns the column after the closing quote of the string that
// opens at i, or the line length when it is unterminated.
func stringEnd(clusters []string, i int) int {
	j := i + 1
	for j < len(clusters) {
		switch clusters[j] {
		case `\`:
			j += 2
			continue
		case `"`:
			return j + 1
		}
		j++
	}
	return len(clusters)
}

// keywordAt returns the length of the keyword starting at column i, or 0.
// A keyword must be followed by a separator or the end of the line.
func keywordAt(clusters []string, i int, keywords []string) int {
	for _, kw := range keywords {
		k := grapheme.Count(kw)
		if k == 0 || i+k > len(clusters) {
			continue
		}
		if grapheme.Join(clusters[i:i+k]) != kw {
			continue
		}
		if i+k == len(clusters) || grapheme.IsSeparator(clusters[i+k]) {
			return k
		}
	}
	return 0
}

// markMisspelled tags words the checker rejects. Only words whose columns
// are all still TagNone are considered, so literals, comments and matches
// keep their tags. Words of two letters or fewer and all-caps words are
// skipped.
func markMisspelled(clusters []string, tags []Tag, checker WordChecker) {
	for _, w := range extractWords(clusters) {
		if w.end-w.start <= 2 {
			continue
		}
		untagged := true
		for i := w.start; i < w.end; i++ {
			if tags[i] != TagNone {
				untagged = false
				break
			}
		}
		if !untagged || isAllUpper(w.word) {
			continue
		}
		if !checker.CheckWord(w.word) {
			for i := w.start; i < w.end; i++ {
				tags[i] = TagMisspelled
			}
		}
	}
}

type wordSpan struct {
	word       string
	start, end int
}

// extractWords returns runs of letters, allowing apostrophes inside a word.
func extractWords(clusters []string) []wordSpan {
	var words []wordSpan
	var sb strings.Builder
	start := -1
	flush := func(end int) {
		if start >= 0 {
			words = append(words, wordSpan{word: sb.String(), start: start, end: end})
			start = -1
			sb.Reset()
		}
	}
	for i, c := range clusters {
		r, _ := utf8.DecodeRuneInString(c)
		if unicode.IsLetter(r) || (r == '\'' && start >= 0) {
			if start < 0 {
				start = i
			}
			sb.WriteString(c)
			continue
		}
		flush(i)
	}
	flush(len(clusters))
	return words
}

func isAllUpper(word string) bool {
	for _, r := range word {
		if unicode.IsLetter(r) && !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

// Package spell checks words against a dictionary using a fuzzy model.
package spell

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sajari/fuzzy"

	"github.com/JackWReid/quire/buffer"
)

// DefaultDepth is the edit distance the model corrects within.
const DefaultDepth = 2

// Checker implements buffer.WordChecker over a trained word list.
type Checker struct {
	model *fuzzy.Model
	words int
}

var _ buffer.WordChecker = (*Checker)(nil)

// New trains a checker from a newline-separated word list.
func New(r io.Reader, depth int) (*Checker, error) {
	if depth <= 0 {
		depth = DefaultDepth
	}
	model := fuzzy.NewModel()
	model.SetDepth(depth)

	c := &Checker{model: model}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		word := strings.TrimSpace(sc.Text())
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		model.TrainWord(strings.ToLower(word))
		c.words++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading word list: %w", err)
	}
	return c, nil
}

// Load trains a checker from the word list at path.
func Load(path string, depth int) (*Checker, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dictionary: %w", err)
	}
	defer f.Close()
	return New(f, depth)
}

// Len returns the number of words the checker was trained on.
func (c *Checker) Len() int { return c.words }

// CheckWord returns true if the word is spelled correctly.
func (c *Checker) CheckWord(word string) bool {
	if word == "" {
		return true
	}
	lower := strings.ToLower(word)
	// SpellCheck returns the word itself when it is in the dictionary.
	return c.model.SpellCheck(lower) == lower
}

// Suggest returns corrections for word, best first.
func (c *Checker) Suggest(word string) []string {
	return c.model.Suggestions(strings.ToLower(word), false)
}

// Error is a misspelled word found in a document.
type Error struct {
	Row      int
	StartCol int
	EndCol   int
	Word     string
}

// Errors collects the runs tagged buffer.TagMisspelled by the last
// highlight pass over d.
func Errors(d *buffer.Document) []Error {
	var out []Error
	for y := 0; y < d.Len(); y++ {
		row := d.Row(y)
		tags := row.Tags()
		for i := 0; i < len(tags); {
			if tags[i] != buffer.TagMisspelled {
				i++
				continue
			}
			start := i
			for i < len(tags) && tags[i] == buffer.TagMisspelled {
				i++
			}
			out = append(out, Error{
				Row:      y,
				StartCol: start,
				EndCol:   i,
				Word:     strings.Join(row.Clusters(start, i), ""),
			})
		}
	}
	return out
}

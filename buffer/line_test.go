package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	combining = "e\u0301"
	family    = "\U0001F468\u200d\U0001F469\u200d\U0001F467\u200d\U0001F466"
	flag      = "\U0001F1FA\U0001F1F8"
)

func TestNewLine_LengthCountsGraphemes(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"ascii", "hello", 5},
		{"combining accent", "h" + combining + "llo", 5},
		{"zwj family", "a" + family + "b", 3},
		{"flag", flag, 1},
		{"cjk", "世界", 2},
		{"tab", "a\tb", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLine(tt.text)
			assert.Equal(t, tt.want, l.Len())
			assert.Len(t, l.Tags(), tt.want)
			assert.Equal(t, tt.want == 0, l.IsEmpty())
			assert.Equal(t, tt.text, l.String())
			assert.Equal(t, []byte(tt.text), l.Bytes())
		})
	}
}

func TestLineRender(t *testing.T) {
	l := NewLine("a\tb" + combining + "cd")

	assert.Equal(t, "a b"+combining+"cd", l.Render(0, 100))
	assert.Equal(t, " b", l.Render(1, 3))
	assert.Equal(t, combining+"c", l.Render(3, 5))
	assert.Equal(t, "", l.Render(4, 2), "start is clamped to end")
	assert.Equal(t, "", l.Render(10, 20))
	assert.Equal(t, "a\tb"+combining+"cd", l.String(), "render must not change the content")
}

func TestLineInsert(t *testing.T) {
	l := NewLine("hello")

	l.Insert(0, 'H')
	assert.Equal(t, "Hhello", l.String())

	l.Insert(6, '!')
	assert.Equal(t, "Hhello!", l.String())

	l.Insert(3, '-')
	assert.Equal(t, "Hhe-llo!", l.String())

	l.Insert(100, '?')
	assert.Equal(t, "Hhe-llo!?", l.String())
	assert.Equal(t, 9, l.Len())
}

func TestLineInsert_NeverSplitsCluster(t *testing.T) {
	l := NewLine("a" + family + combining)

	l.Insert(2, 'x')
	assert.Equal(t, "a"+family+"x"+combining, l.String())
	assert.Equal(t, 4, l.Len())

	l.Insert(1, 'y')
	assert.Equal(t, "ay"+family+"x"+combining, l.String())
	assert.Equal(t, 5, l.Len())
}

func TestLineDelete(t *testing.T) {
	l := NewLine("a" + combining + family + "b")

	l.Delete(1)
	assert.Equal(t, "a"+family+"b", l.String())
	assert.Equal(t, 3, l.Len())

	l.Delete(1)
	assert.Equal(t, "ab", l.String())

	l.Delete(2)
	l.Delete(-1)
	assert.Equal(t, "ab", l.String(), "out-of-range delete is a no-op")
	assert.Equal(t, 2, l.Len())
}

func TestLineAppend(t *testing.T) {
	l := NewLine("abc")
	other := NewLine("d" + combining)

	l.Append(other)
	assert.Equal(t, "abcd"+combining, l.String())
	assert.Equal(t, 5, l.Len())
	assert.Len(t, l.Tags(), 5)

	assert.True(t, other.IsEmpty(), "appended line is consumed")
	assert.Equal(t, "", other.String())

	l.Append(nil)
	assert.Equal(t, 5, l.Len())
}

func TestLineSplit(t *testing.T) {
	l := NewLine("abcdef")

	rest := l.Split(3)
	assert.Equal(t, "abc", l.String())
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, "def", rest.String())
	assert.Equal(t, 3, rest.Len())
}

func TestLineSplit_Bounds(t *testing.T) {
	l := NewLine("ab")
	rest := l.Split(10)
	assert.Equal(t, "ab", l.String())
	assert.True(t, rest.IsEmpty())

	l = NewLine("ab")
	rest = l.Split(0)
	assert.True(t, l.IsEmpty())
	assert.Equal(t, "ab", rest.String())
}

func TestLineSplit_Graphemes(t *testing.T) {
	l := NewLine(combining + family + flag)

	rest := l.Split(1)
	assert.Equal(t, combining, l.String())
	assert.Equal(t, family+flag, rest.String())
	assert.Equal(t, 2, rest.Len())
}

func TestLineFind(t *testing.T) {
	l := NewLine("hello world")

	tests := []struct {
		name  string
		query string
		from  int
		dir   SearchDirection
		want  int
		found bool
	}{
		{"forward from start", "lo", 0, Forward, 3, true},
		{"forward skips earlier", "o", 5, Forward, 7, true},
		{"forward at match", "o", 4, Forward, 4, true},
		{"forward past match", "lo", 4, Forward, 0, false},
		{"backward before from", "o", 7, Backward, 4, true},
		{"backward includes end", "o", 11, Backward, 7, true},
		{"backward needs whole match before from", "wor", 8, Backward, 0, false},
		{"empty query", "", 0, Forward, 0, false},
		{"from past end", "o", 12, Forward, 0, false},
		{"negative from", "o", -1, Forward, 0, false},
		{"absent", "xyz", 0, Forward, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := l.Find(tt.query, tt.from, tt.dir)
			require.Equal(t, tt.found, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestLineFind_ReturnsGraphemeColumn(t *testing.T) {
	l := NewLine(family + combining + "abc" + family + "abc")

	got, ok := l.Find("abc", 0, Forward)
	require.True(t, ok)
	assert.Equal(t, 2, got)

	got, ok = l.Find("abc", 3, Forward)
	require.True(t, ok)
	assert.Equal(t, 6, got)

	got, ok = l.Find("abc", l.Len(), Backward)
	require.True(t, ok)
	assert.Equal(t, 6, got)
}

func TestLineFind_SkipsMatchInsideCluster(t *testing.T) {
	// "e" is the base of the combining cluster and must not match on its own.
	l := NewLine("x" + combining + "ye")

	got, ok := l.Find("e", 0, Forward)
	require.True(t, ok)
	assert.Equal(t, 3, got)

	got, ok = l.Find("e", l.Len(), Backward)
	require.True(t, ok)
	assert.Equal(t, 3, got)

	_, ok = l.Find("e", 3, Backward)
	assert.False(t, ok)
}

func TestLineMutation_ResetsTags(t *testing.T) {
	l := NewLine("12 34")
	l.Highlight(HighlightOptions{Numbers: true}, "")
	require.Equal(t, []Tag{TagNumber, TagNumber, TagNone, TagNumber, TagNumber}, l.Tags())

	l.Insert(3, 'x')
	assert.Equal(t, []Tag{TagNumber, TagNumber, TagNone, TagNone, TagNone, TagNone}, l.Tags())

	l.Highlight(HighlightOptions{Numbers: true}, "")
	l.Delete(0)
	assert.Equal(t, []Tag{TagNone, TagNone, TagNone, TagNone, TagNone}, l.Tags())

	l.Highlight(HighlightOptions{Numbers: true}, "")
	rest := l.Split(1)
	assert.Equal(t, []Tag{TagNumber}, l.Tags())
	assert.Equal(t, []Tag{TagNone, TagNone, TagNone, TagNone}, rest.Tags())
}

func TestLineTagAt(t *testing.T) {
	l := NewLine("a1")
	l.Highlight(HighlightOptions{Numbers: true}, "a")

	assert.Equal(t, TagMatch, l.TagAt(0))
	assert.Equal(t, TagNumber, l.TagAt(1), "separator state is not advanced across a match")
	assert.Equal(t, TagNone, l.TagAt(-1))
	assert.Equal(t, TagNone, l.TagAt(2))
}

func TestLineClusters(t *testing.T) {
	l := NewLine("a" + family + "\tb")

	assert.Equal(t, []string{"a", family, "\t", "b"}, l.Clusters(0, 4))
	assert.Equal(t, []string{family, "\t"}, l.Clusters(1, 3))
	assert.Nil(t, l.Clusters(3, 1))
	assert.Equal(t, []string{"b"}, l.Clusters(3, 99))
}

// Package buffer implements the line-oriented document model behind the quire
// editor: a Document is an ordered slice of Lines, each Line owns its text,
// its grapheme length and a per-grapheme highlight tag sequence.
//
// Coordinates are 0-based Positions{X, Y}. Y is a row index and X is a column
// counted in extended grapheme clusters, never bytes or runes. X == RowLen(Y)
// is the end-of-row cursor slot.
//
// Out-of-range positions are never errors: edits at them are no-ops and
// reads are clamped. Only Open, Read and Save return errors, and those are
// always *IOError values.
//
// A Document is not safe for concurrent use.
package buffer

package buffer

import "fmt"

// Position addresses a grapheme column X within row Y.
type Position struct {
	X int
	Y int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Y, p.X)
}

// Before reports whether p sorts before q in document order.
func (p Position) Before(q Position) bool {
	if p.Y != q.Y {
		return p.Y < q.Y
	}
	return p.X < q.X
}

// SearchDirection selects which way Find scans.
type SearchDirection int

const (
	Forward SearchDirection = iota
	Backward
)

func (d SearchDirection) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return "unknown"
	}
}

// Match is one occurrence of a query: row and the half-open column range
// [StartCol, EndCol).
type Match struct {
	Row      int
	StartCol int
	EndCol   int
}

// Start returns the position of the first column of the match.
func (m Match) Start() Position {
	return Position{X: m.StartCol, Y: m.Row}
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

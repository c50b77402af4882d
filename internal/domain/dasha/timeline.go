package dasha

import (
	"math"
	"sort"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Chain: the active node at every level
// ─────────────────────────────────────────────────────────────────────────────

// Chain is the root-to-leaf list of periods containing one instant.  An empty
// chain means the instant lies outside every root; it is a value, not an
// error.
type Chain []*PeriodNode

// Empty reports whether no period is active.
func (c Chain) Empty() bool { return len(c) == 0 }

// Lords returns the lord at each level.
func (c Chain) Lords() []string {
	out := make([]string, len(c))
	for i, n := range c {
		out[i] = n.lord
	}
	return out
}

// Deepest returns the innermost active period, or nil for an empty chain.
func (c Chain) Deepest() *PeriodNode {
	if len(c) == 0 {
		return nil
	}
	return c[len(c)-1]
}

// At returns the node at level, or nil when the chain is shallower.
func (c Chain) At(level int) *PeriodNode {
	if level < 0 || level >= len(c) {
		return nil
	}
	return c[level]
}

// ActiveChain descends the forest choosing, at each level, the unique node
// whose [Start, End) contains t.  Siblings are sorted and contiguous, so each
// level is a binary search.
func ActiveChain(f Forest, t time.Time) Chain {
	var chain Chain
	level := []*PeriodNode(f)
	for len(level) > 0 {
		n := find(level, t)
		if n == nil {
			break
		}
		chain = append(chain, n)
		level = n.children
	}
	return chain
}

// find returns the node in sorted nodes that contains t, or nil.
func find(nodes []*PeriodNode, t time.Time) *PeriodNode {
	i := sort.Search(len(nodes), func(i int) bool { return nodes[i].end.After(t) })
	if i < len(nodes) && nodes[i].Contains(t) {
		return nodes[i]
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Progress
// ─────────────────────────────────────────────────────────────────────────────

// Progress returns the elapsed fraction of n at t as an integer percentage:
//
//	clamp(0, 100, round(100 * (t - start) / (end - start)))
//
// Instants before the period give 0, after it give 100.
func Progress(n *PeriodNode, t time.Time) int {
	if n == nil {
		return 0
	}
	total := n.end.Sub(n.start)
	if total <= 0 {
		return 0
	}
	pct := math.Round(100 * float64(t.Sub(n.start)) / float64(total))
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	default:
		return int(pct)
	}
}

// Remaining returns how much of n is left after t, never negative.
func Remaining(n *PeriodNode, t time.Time) time.Duration {
	if n == nil || !t.Before(n.end) {
		return 0
	}
	if t.Before(n.start) {
		return n.Duration()
	}
	return n.end.Sub(t)
}

// ─────────────────────────────────────────────────────────────────────────────
// Navigation
// ─────────────────────────────────────────────────────────────────────────────

// NextSibling returns the period after n under the same parent (for a root,
// the next root).  ok is false when n is the last of its siblings; the
// search never climbs into the parent's sibling.
func NextSibling(n *PeriodNode) (next *PeriodNode, ok bool) {
	if n == nil || n.index+1 >= len(n.siblings) {
		return nil, false
	}
	return n.siblings[n.index+1], true
}

// PrevSibling mirrors NextSibling.
func PrevSibling(n *PeriodNode) (prev *PeriodNode, ok bool) {
	if n == nil || n.index == 0 || len(n.siblings) == 0 {
		return nil, false
	}
	return n.siblings[n.index-1], true
}

// RangeSlice returns children[center-before : center+after+1] clamped to the
// slice bounds.  A center outside the slice is clamped first; negative
// before/after count as zero.  The result is a fresh slice.
func RangeSlice(children []*PeriodNode, center, before, after int) []*PeriodNode {
	if len(children) == 0 {
		return []*PeriodNode{}
	}
	if center < 0 {
		center = 0
	}
	if center >= len(children) {
		center = len(children) - 1
	}
	if before < 0 {
		before = 0
	}
	if after < 0 {
		after = 0
	}
	lo := center - before
	if lo < 0 {
		lo = 0
	}
	hi := center + after + 1
	if hi > len(children) {
		hi = len(children)
	}
	out := make([]*PeriodNode, hi-lo)
	copy(out, children[lo:hi])
	return out
}

// Window returns the siblings of n around it, before earlier and after later.
func Window(n *PeriodNode, before, after int) []*PeriodNode {
	if n == nil {
		return []*PeriodNode{}
	}
	return RangeSlice(n.siblings, n.index, before, after)
}

// ─────────────────────────────────────────────────────────────────────────────
// ActivePeriod: flattened view of a chain entry
// ─────────────────────────────────────────────────────────────────────────────

// ActivePeriod is a chain entry rendered for output.
type ActivePeriod struct {
	Level     int       `json:"level"`
	LevelName string    `json:"level_name"`
	Lord      string    `json:"lord"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Progress  int       `json:"progress"`
	NextLord  string    `json:"next_lord,omitempty"`
}

// Describe flattens c at instant t.
func (c Chain) Describe(t time.Time) []ActivePeriod {
	out := make([]ActivePeriod, len(c))
	for i, n := range c {
		ap := ActivePeriod{
			Level:     n.level,
			LevelName: n.LevelName(),
			Lord:      n.lord,
			Start:     n.start,
			End:       n.end,
			Progress:  Progress(n, t),
		}
		if next, ok := NextSibling(n); ok {
			ap.NextLord = next.lord
		}
		out[i] = ap
	}
	return out
}

//Personal.AI order the ending

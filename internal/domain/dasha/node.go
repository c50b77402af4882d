// Package dasha models a Vimshottari-style period hierarchy as an immutable
// forest of nested time intervals and answers "which period is running at
// instant t" at every level.
//
// Trees are built once from an upstream payload and never mutated; every
// query is a pure function of (forest, instant).
package dasha

import (
	"fmt"
	"strings"
	"time"
)

// levelNames are the conventional names of the first five levels.
var levelNames = []string{"Mahadasha", "Antardasha", "Pratyantardasha", "Sookshma", "Prana"}

// LevelName returns the name of level (0 = Mahadasha).  Levels beyond the
// fifth render as "Level N" with N 1-based.
func LevelName(level int) string {
	if level >= 0 && level < len(levelNames) {
		return levelNames[level]
	}
	return fmt.Sprintf("Level %d", level+1)
}

// ─────────────────────────────────────────────────────────────────────────────
// PeriodSpec: construction input
// ─────────────────────────────────────────────────────────────────────────────

// PeriodSpec describes one period and its sub-periods before the tree is
// linked.  Intervals are half-open: [Start, End).
type PeriodSpec struct {
	Lord     string
	Start    time.Time
	End      time.Time
	Children []PeriodSpec
}

// ─────────────────────────────────────────────────────────────────────────────
// PeriodNode
// ─────────────────────────────────────────────────────────────────────────────

// PeriodNode is one linked node of a period tree.  Fields are unexported so
// that a built tree cannot be altered; use the accessors.
type PeriodNode struct {
	lord     string
	start    time.Time
	end      time.Time
	level    int
	index    int
	children []*PeriodNode

	// parent is a back-reference only; ownership runs parent → children.
	parent *PeriodNode
	// siblings is the parent's children slice, or the forest's root slice for
	// a root node.
	siblings []*PeriodNode
}

// Lord returns the ruling lord of the period.
func (n *PeriodNode) Lord() string { return n.lord }

// Start returns the inclusive start instant.
func (n *PeriodNode) Start() time.Time { return n.start }

// End returns the exclusive end instant.
func (n *PeriodNode) End() time.Time { return n.end }

// Duration returns End - Start.
func (n *PeriodNode) Duration() time.Duration { return n.end.Sub(n.start) }

// Level returns the depth of the node, 0 for a root.
func (n *PeriodNode) Level() int { return n.level }

// LevelName returns the conventional name of the node's level.
func (n *PeriodNode) LevelName() string { return LevelName(n.level) }

// Index returns the node's position among its siblings.
func (n *PeriodNode) Index() int { return n.index }

// Parent returns the enclosing period, or nil for a root.
func (n *PeriodNode) Parent() *PeriodNode { return n.parent }

// IsLeaf reports whether the node has no sub-periods.
func (n *PeriodNode) IsLeaf() bool { return len(n.children) == 0 }

// Children returns a copy of the ordered sub-periods.
func (n *PeriodNode) Children() []*PeriodNode {
	out := make([]*PeriodNode, len(n.children))
	copy(out, n.children)
	return out
}

// Siblings returns a copy of the slice the node lives in (its parent's
// children, or the forest roots).
func (n *PeriodNode) Siblings() []*PeriodNode {
	out := make([]*PeriodNode, len(n.siblings))
	copy(out, n.siblings)
	return out
}

// Contains reports whether t lies in [Start, End).
func (n *PeriodNode) Contains(t time.Time) bool {
	return !t.Before(n.start) && t.Before(n.end)
}

// Path returns the lords from the root down to n, e.g. "Saturn/Mercury".
func (n *PeriodNode) Path() string {
	var lords []string
	for cur := n; cur != nil; cur = cur.parent {
		lords = append(lords, cur.lord)
	}
	for i, j := 0, len(lords)-1; i < j; i, j = i+1, j-1 {
		lords[i], lords[j] = lords[j], lords[i]
	}
	return strings.Join(lords, "/")
}

// Depth returns the number of levels in the subtree rooted at n (1 for a leaf).
func (n *PeriodNode) Depth() int {
	best := 0
	for _, c := range n.children {
		if d := c.Depth(); d > best {
			best = d
		}
	}
	return best + 1
}

// String renders the node for logs.
func (n *PeriodNode) String() string {
	return fmt.Sprintf("%s %s [%s, %s)", n.LevelName(), n.Path(),
		n.start.Format(time.RFC3339), n.end.Format(time.RFC3339))
}

// ─────────────────────────────────────────────────────────────────────────────
// Forest
// ─────────────────────────────────────────────────────────────────────────────

// Forest is the ordered list of root periods (one per Mahadasha).
type Forest []*PeriodNode

// NewPeriod links a single tree from spec.  The result is not validated; run
// Validate on trees from untrusted payloads.
func NewPeriod(spec PeriodSpec) *PeriodNode {
	return NewForest([]PeriodSpec{spec})[0]
}

// NewForest links every spec into a tree and returns the roots in input order.
func NewForest(specs []PeriodSpec) Forest {
	roots := make([]*PeriodNode, len(specs))
	for i := range specs {
		roots[i] = link(specs[i], nil, 0, i)
	}
	for _, r := range roots {
		r.siblings = roots
	}
	return Forest(roots)
}

func link(spec PeriodSpec, parent *PeriodNode, level, index int) *PeriodNode {
	n := &PeriodNode{
		lord:   spec.Lord,
		start:  spec.Start,
		end:    spec.End,
		level:  level,
		index:  index,
		parent: parent,
	}
	if len(spec.Children) > 0 {
		n.children = make([]*PeriodNode, len(spec.Children))
		for i := range spec.Children {
			n.children[i] = link(spec.Children[i], n, level+1, i)
		}
		for _, c := range n.children {
			c.siblings = n.children
		}
	}
	return n
}

// Depth returns the maximum depth over all roots, 0 for an empty forest.
func (f Forest) Depth() int {
	best := 0
	for _, r := range f {
		if d := r.Depth(); d > best {
			best = d
		}
	}
	return best
}

// Span returns the earliest start and latest end covered by the forest.
// ok is false for an empty forest.
func (f Forest) Span() (start, end time.Time, ok bool) {
	if len(f) == 0 {
		return time.Time{}, time.Time{}, false
	}
	start, end = f[0].start, f[0].end
	for _, r := range f[1:] {
		if r.start.Before(start) {
			start = r.start
		}
		if r.end.After(end) {
			end = r.end
		}
	}
	return start, end, true
}

//Personal.AI order the ending

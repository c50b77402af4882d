package dasha

import (
	"fmt"
	"strings"
	"time"

	"github.com/turtacn/Jyotish-Intelligence/pkg/errors"
)

// Validate checks a single tree:
//
//   - every node has Start < End and a non-blank lord
//   - a node's children tile it exactly: first.Start == parent.Start,
//     child[i].End == child[i+1].Start, last.End == parent.End
//
// Problems with one node's own interval are CodeInvalidPeriod; a gap,
// overlap or overhang among children is CodeTilingViolation.
func Validate(root *PeriodNode) error {
	if root == nil {
		return errors.New(errors.CodeInvalidPeriod, "nil period")
	}
	return validateNode(root)
}

func validateNode(n *PeriodNode) error {
	if strings.TrimSpace(n.lord) == "" {
		return errors.New(errors.CodeInvalidPeriod, "period has no lord").WithDetail(n.String())
	}
	if !n.start.Before(n.end) {
		return errors.New(errors.CodeInvalidPeriod, "period start must precede end").WithDetail(n.String())
	}
	if len(n.children) == 0 {
		return nil
	}

	first, last := n.children[0], n.children[len(n.children)-1]
	if !first.start.Equal(n.start) {
		return errors.TilingViolation(fmt.Sprintf("%s: first child %s starts at %s, parent at %s",
			n.Path(), first.lord, stamp(first.start), stamp(n.start)))
	}
	for i := 0; i+1 < len(n.children); i++ {
		a, b := n.children[i], n.children[i+1]
		if !a.end.Equal(b.start) {
			kind := "gap"
			if a.end.After(b.start) {
				kind = "overlap"
			}
			return errors.TilingViolation(fmt.Sprintf("%s: %s between %s (ends %s) and %s (starts %s)",
				n.Path(), kind, a.lord, stamp(a.end), b.lord, stamp(b.start)))
		}
	}
	if !last.end.Equal(n.end) {
		return errors.TilingViolation(fmt.Sprintf("%s: last child %s ends at %s, parent at %s",
			n.Path(), last.lord, stamp(last.end), stamp(n.end)))
	}

	for _, c := range n.children {
		if err := validateNode(c); err != nil {
			return err
		}
	}
	return nil
}

// ValidateForest validates every tree and additionally requires roots to be
// ordered by start and non-overlapping.  Gaps between roots are allowed; an
// instant in a gap simply has no active period.
func ValidateForest(f Forest) error {
	for i, r := range f {
		if err := Validate(r); err != nil {
			return err
		}
		if i > 0 && r.start.Before(f[i-1].end) {
			return errors.TilingViolation(fmt.Sprintf("roots %s and %s overlap or are out of order",
				f[i-1].lord, r.lord))
		}
	}
	return nil
}

func stamp(t time.Time) string { return t.Format(time.RFC3339) }

//Personal.AI order the ending

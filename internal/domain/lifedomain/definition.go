// Package lifedomain fuses house strengths, the active period chain and
// current transits into per-domain scores and verdicts (career, wealth,
// relationships, health, spiritual).
package lifedomain

import (
	"math"
	"sort"
	"strings"

	"github.com/turtacn/Jyotish-Intelligence/internal/domain/zodiac"
	"github.com/turtacn/Jyotish-Intelligence/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Aggregation
// ─────────────────────────────────────────────────────────────────────────────

// Aggregate combines the per-house values of one domain into one value.
// It is applied to the percentages and to the raw points alike.
type Aggregate func(values []float64) float64

// Identity passes the first value through.  Used for single-house domains
// where the most relevant house alone decides.
func Identity(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return values[0]
}

// Mean is the arithmetic mean.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Min returns the weakest value.
func Min(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := values[0]
	for _, v := range values[1:] {
		m = math.Min(m, v)
	}
	return m
}

// Max returns the strongest value.
func Max(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := values[0]
	for _, v := range values[1:] {
		m = math.Max(m, v)
	}
	return m
}

var aggregates = map[string]Aggregate{
	"identity": Identity,
	"mean":     Mean,
	"min":      Min,
	"max":      Max,
}

// AggregateByName resolves a configured aggregation name.  An empty name
// yields nil, which ScoreDomain treats as "identity for one house, mean
// otherwise".
func AggregateByName(name string) (Aggregate, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, nil
	}
	agg, ok := aggregates[name]
	if !ok {
		return nil, errors.Newf(errors.CodeInvalidParam, "unknown aggregate %q", name)
	}
	return agg, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Definition
// ─────────────────────────────────────────────────────────────────────────────

// Definition names a life domain, the houses that describe it and the
// planets (karakas) that signify it regardless of house.
type Definition struct {
	Name      string               `json:"name" mapstructure:"name" yaml:"name"`
	Houses    []zodiac.HouseNumber `json:"houses" mapstructure:"houses" yaml:"houses"`
	Karakas   []string             `json:"karakas" mapstructure:"karakas" yaml:"karakas"`
	Aggregate string               `json:"aggregate,omitempty" mapstructure:"aggregate" yaml:"aggregate,omitempty"`
}

// Validate checks that the definition has a name, at least one valid house,
// and a known aggregate.
func (d Definition) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return errors.New(errors.CodeInvalidParam, "domain definition needs a name")
	}
	if len(d.Houses) == 0 {
		return errors.New(errors.CodeInvalidParam, "domain definition needs at least one house").WithDetail(d.Name)
	}
	for _, h := range d.Houses {
		if !h.Valid() {
			return errors.Newf(errors.CodeInvalidHouse, "house %d out of range", int(h)).WithDetail(d.Name)
		}
	}
	_, err := AggregateByName(d.Aggregate)
	return err
}

// DefaultDefinitions returns the five standard domains.
func DefaultDefinitions() []Definition {
	return []Definition{
		{Name: "career", Houses: []zodiac.HouseNumber{10}, Karakas: planets(zodiac.Sun, zodiac.Saturn, zodiac.Mercury), Aggregate: "identity"},
		{Name: "wealth", Houses: []zodiac.HouseNumber{2, 11}, Karakas: planets(zodiac.Jupiter, zodiac.Venus), Aggregate: "mean"},
		{Name: "relationships", Houses: []zodiac.HouseNumber{7}, Karakas: planets(zodiac.Venus, zodiac.Jupiter), Aggregate: "identity"},
		{Name: "health", Houses: []zodiac.HouseNumber{1, 6}, Karakas: planets(zodiac.Sun, zodiac.Mars), Aggregate: "mean"},
		{Name: "spiritual", Houses: []zodiac.HouseNumber{9, 12}, Karakas: planets(zodiac.Jupiter, zodiac.Ketu), Aggregate: "mean"},
	}
}

// SelectDefinitions filters defs by name, case-insensitively, keeping the
// order of defs.  An empty names list selects everything.
func SelectDefinitions(defs []Definition, names []string) ([]Definition, error) {
	if len(names) == 0 {
		return defs, nil
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[strings.ToLower(strings.TrimSpace(n))] = true
	}
	var out []Definition
	for _, d := range defs {
		key := strings.ToLower(d.Name)
		if want[key] {
			out = append(out, d)
			delete(want, key)
		}
	}
	if len(want) > 0 {
		missing := make([]string, 0, len(want))
		for n := range want {
			missing = append(missing, n)
		}
		sort.Strings(missing)
		return nil, errors.New(errors.CodeNotFound, "unknown life domain").WithDetail(strings.Join(missing, ", "))
	}
	return out, nil
}

func planets(ps ...zodiac.Planet) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = string(p)
	}
	return out
}

//Personal.AI order the ending

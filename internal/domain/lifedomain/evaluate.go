package lifedomain

import (
	"fmt"
	"strings"

	"github.com/turtacn/Jyotish-Intelligence/internal/domain/dasha"
	"github.com/turtacn/Jyotish-Intelligence/internal/domain/strength"
	"github.com/turtacn/Jyotish-Intelligence/internal/domain/zodiac"
)

// Input is everything Evaluate needs for one chart at one instant.
type Input struct {
	Ascendant   zodiac.Sign
	Natal       []float64
	Transits    []Transit
	Chain       dasha.Chain
	Calibration strength.Calibration
	Tiers       strength.TierTable
}

// Verdict is the evaluated state of one life domain.
type Verdict struct {
	DomainScore
	Houses   []zodiac.HouseNumber `json:"houses"`
	Karakas  []string             `json:"karakas"`
	Transits []AnnotatedTransit   `json:"transits"`
	// SupportingLords are active period lords that are karakas of the domain
	// or rule one of its houses, outermost first.
	SupportingLords  []string `json:"supporting_lords"`
	SupportivePeriod bool     `json:"supportive_period"`
	Summary          string   `json:"summary"`
}

// Evaluate scores every definition against in.  The period chain and the
// transits annotate a verdict; they never change its score.
func Evaluate(in Input, defs []Definition) ([]Verdict, error) {
	scores, err := HouseScores(in.Natal, in.Ascendant)
	if err != nil {
		return nil, err
	}
	lords := in.Chain.Lords()

	out := make([]Verdict, 0, len(defs))
	for _, def := range defs {
		if err := def.Validate(); err != nil {
			return nil, err
		}
		agg, _ := AggregateByName(def.Aggregate)

		ds, err := ScoreDomain(def.Name, def.Houses, scores, in.Calibration, in.Tiers, agg)
		if err != nil {
			return nil, err
		}
		transits, err := TransitsInHouses(in.Transits, in.Ascendant, def.Houses, def.Karakas)
		if err != nil {
			return nil, err
		}
		supporting := supportingLords(lords, def, in.Ascendant)

		v := Verdict{
			DomainScore:      ds,
			Houses:           def.Houses,
			Karakas:          def.Karakas,
			Transits:         transits,
			SupportingLords:  supporting,
			SupportivePeriod: len(supporting) > 0,
		}
		v.Summary = summarize(v)
		out = append(out, v)
	}
	return out, nil
}

// supportingLords returns the distinct chain lords that signify def.
func supportingLords(lords []string, def Definition, asc zodiac.Sign) []string {
	rulers := make([]string, 0, len(def.Houses))
	for _, h := range def.Houses {
		rulers = append(rulers, string(zodiac.RulerOf(zodiac.SignOnHouse(h, asc))))
	}

	out := []string{}
	seen := map[string]bool{}
	for _, lord := range lords {
		key := zodiac.Canonicalize(lord)
		if seen[key] {
			continue
		}
		if isKaraka(lord, def.Karakas) || isKaraka(lord, rulers) {
			out = append(out, lord)
			seen[key] = true
		}
	}
	return out
}

func summarize(v Verdict) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s (%d%%)", v.Name, v.Tier, v.Score)
	if v.SupportivePeriod {
		fmt.Fprintf(&b, ", supported by %s period", strings.Join(v.SupportingLords, "/"))
	}
	if n := len(v.Transits); n > 0 {
		fmt.Fprintf(&b, ", %d relevant transit(s)", n)
	}
	return b.String()
}

//Personal.AI order the ending

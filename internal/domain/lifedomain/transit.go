package lifedomain

import (
	"github.com/turtacn/Jyotish-Intelligence/internal/domain/zodiac"
	"github.com/turtacn/Jyotish-Intelligence/pkg/types/chart"
)

// Transit is a body currently passing through a sign.
type Transit struct {
	Name       string `json:"name"`
	Sign       string `json:"sign"`
	Retrograde bool   `json:"retrograde"`
}

// AnnotatedTransit is a transit with the house it occupies from the
// ascendant and whether it signifies the domain being evaluated.
type AnnotatedTransit struct {
	Transit
	House    zodiac.HouseNumber `json:"house"`
	IsKaraka bool               `json:"is_karaka"`
}

// TransitsFromPayload converts wire placements.
func TransitsFromPayload(ps []chart.Placement) []Transit {
	out := make([]Transit, len(ps))
	for i, p := range ps {
		out[i] = Transit{Name: p.Name, Sign: p.Sign, Retrograde: p.Retrograde}
	}
	return out
}

// TransitsInHouses keeps the transits that fall in one of targetHouses or
// whose name is one of karakas, annotating each with its house and karaka
// flag.  Input order is preserved.  An unresolvable sign fails the call.
func TransitsInHouses(transits []Transit, ascendant zodiac.Sign, targetHouses []zodiac.HouseNumber, karakas []string) ([]AnnotatedTransit, error) {
	targets := make(map[zodiac.HouseNumber]bool, len(targetHouses))
	for _, h := range targetHouses {
		targets[h] = true
	}

	out := make([]AnnotatedTransit, 0, len(transits))
	for _, tr := range transits {
		sign, err := zodiac.ParseSign(tr.Sign)
		if err != nil {
			return nil, err
		}
		h := zodiac.HouseOfSign(sign, ascendant)
		karaka := isKaraka(tr.Name, karakas)
		if !targets[h] && !karaka {
			continue
		}
		out = append(out, AnnotatedTransit{Transit: tr, House: h, IsKaraka: karaka})
	}
	return out, nil
}

func isKaraka(name string, karakas []string) bool {
	for _, k := range karakas {
		if zodiac.SamePlanet(name, k) {
			return true
		}
	}
	return false
}

//Personal.AI order the ending

package dasha

import (
	"github.com/turtacn/Jyotish-Intelligence/pkg/types/chart"
)

// FromPayload links and validates the period forest carried by an upstream
// payload.  Instants are normalized to UTC.
func FromPayload(periods []chart.Period) (Forest, error) {
	f := NewForest(specsOf(periods))
	if err := ValidateForest(f); err != nil {
		return nil, err
	}
	return f, nil
}

func specsOf(periods []chart.Period) []PeriodSpec {
	if len(periods) == 0 {
		return nil
	}
	out := make([]PeriodSpec, len(periods))
	for i, p := range periods {
		out[i] = PeriodSpec{
			Lord:     p.Lord,
			Start:    p.Start.UTC(),
			End:      p.End.UTC(),
			Children: specsOf(p.Children),
		}
	}
	return out
}

//Personal.AI order the ending

package lifedomain

import (
	"math"

	"github.com/turtacn/Jyotish-Intelligence/internal/domain/strength"
	"github.com/turtacn/Jyotish-Intelligence/internal/domain/zodiac"
	"github.com/turtacn/Jyotish-Intelligence/pkg/errors"
)

// HouseScores re-indexes a sign-ordered strength table (Aries first) into
// house order:
//
//	scores[h-1] = natal[(ascendant + h - 1) mod 12]
func HouseScores(natal []float64, ascendant zodiac.Sign) ([]float64, error) {
	if len(natal) != zodiac.SignCount {
		return nil, errors.Newf(errors.CodeInvalidStrengthTable,
			"strength table must have %d entries, got %d", zodiac.SignCount, len(natal))
	}
	scores := make([]float64, zodiac.HouseCount)
	for h := zodiac.HouseNumber(1); h <= zodiac.HouseCount; h++ {
		scores[h-1] = natal[zodiac.SignOnHouse(h, ascendant).Index()]
	}
	return scores, nil
}

// HouseRow is one house with its sign and classified strength.
type HouseRow struct {
	House  zodiac.HouseNumber `json:"house"`
	Sign   string             `json:"sign"`
	Label  string             `json:"label"`
	Types  []zodiac.HouseType `json:"types"`
	Ruler  string             `json:"ruler"`
	Points float64            `json:"points"`
	Score  int                `json:"score"`
	Tier   strength.Tier      `json:"tier"`
}

// HouseTable classifies all twelve houses of a chart.
func HouseTable(natal []float64, ascendant zodiac.Sign, cal strength.Calibration, tiers strength.TierTable) ([]HouseRow, error) {
	scores, err := HouseScores(natal, ascendant)
	if err != nil {
		return nil, err
	}
	rows := make([]HouseRow, zodiac.HouseCount)
	for i, pts := range scores {
		h := zodiac.HouseNumber(i + 1)
		s, err := strength.Classify(pts, cal, tiers)
		if err != nil {
			return nil, err
		}
		sign := zodiac.SignOnHouse(h, ascendant)
		rows[i] = HouseRow{
			House:  h,
			Sign:   sign.String(),
			Label:  zodiac.DomainLabel(h),
			Types:  zodiac.HouseTypes(h),
			Ruler:  string(zodiac.RulerOf(sign)),
			Points: pts,
			Score:  s.Percent,
			Tier:   s.Tier,
		}
	}
	return rows, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// DomainScore
// ─────────────────────────────────────────────────────────────────────────────

// Contribution is one house's share of a domain score.
type Contribution struct {
	House   zodiac.HouseNumber `json:"house"`
	Label   string             `json:"label"`
	Points  float64            `json:"points"`
	Percent int                `json:"percent"`
}

// DomainScore is the combined strength of one life domain.
type DomainScore struct {
	Name          string         `json:"name"`
	Score         int            `json:"score"`
	Points        float64        `json:"points"`
	Tier          strength.Tier  `json:"tier"`
	Contributions []Contribution `json:"contributions"`
}

// ScoreDomain normalizes each of houses' scores with cal, combines them with
// agg and buckets the result with tiers.  A nil agg means Identity for a
// single house and Mean otherwise.  houseScores must be in house order.
func ScoreDomain(name string, houses []zodiac.HouseNumber, houseScores []float64,
	cal strength.Calibration, tiers strength.TierTable, agg Aggregate) (DomainScore, error) {

	if len(houses) == 0 {
		return DomainScore{}, errors.New(errors.CodeInvalidParam, "domain has no houses").WithDetail(name)
	}
	if len(houseScores) != zodiac.HouseCount {
		return DomainScore{}, errors.Newf(errors.CodeInvalidStrengthTable,
			"house scores must have %d entries, got %d", zodiac.HouseCount, len(houseScores))
	}
	if err := cal.Validate(); err != nil {
		return DomainScore{}, err
	}
	if err := tiers.Validate(); err != nil {
		return DomainScore{}, err
	}
	if agg == nil {
		agg = Mean
		if len(houses) == 1 {
			agg = Identity
		}
	}

	contribs := make([]Contribution, len(houses))
	points := make([]float64, len(houses))
	percents := make([]float64, len(houses))
	for i, h := range houses {
		if !h.Valid() {
			return DomainScore{}, errors.Newf(errors.CodeInvalidHouse, "house %d out of range", int(h)).WithDetail(name)
		}
		pts := houseScores[h-1]
		pct, err := strength.Normalize(pts, cal)
		if err != nil {
			return DomainScore{}, err
		}
		contribs[i] = Contribution{House: h, Label: zodiac.DomainLabel(h), Points: pts, Percent: pct}
		points[i] = pts
		percents[i] = float64(pct)
	}

	score := clampPercent(math.Round(agg(percents)))
	combined := agg(points)
	return DomainScore{
		Name:          name,
		Score:         score,
		Points:        combined,
		Tier:          tiers.TierFor(combined, score),
		Contributions: contribs,
	}, nil
}

func clampPercent(v float64) int {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return int(v)
	}
}

//Personal.AI order the ending

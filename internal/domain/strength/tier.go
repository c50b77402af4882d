package strength

import (
	"fmt"

	"github.com/turtacn/Jyotish-Intelligence/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Tier enumeration
// ─────────────────────────────────────────────────────────────────────────────

// Tier is a qualitative strength bucket.
type Tier string

const (
	TierExcellent   Tier = "Excellent"
	TierGood        Tier = "Good"
	TierModerate    Tier = "Moderate"
	TierChallenging Tier = "Challenging"

	TierStrong Tier = "Strong"
	TierStable Tier = "Stable"
	TierWeak   Tier = "Weak"
)

// Basis selects which value a TierTable is read against.
type Basis string

const (
	// BasisPercent reads thresholds against the normalized 0–100 value.
	BasisPercent Basis = "percent"
	// BasisPoints reads thresholds against the raw strength points.
	BasisPoints Basis = "points"
)

// ─────────────────────────────────────────────────────────────────────────────
// TierTable
// ─────────────────────────────────────────────────────────────────────────────

// Threshold assigns Tier to every value >= Min.
type Threshold struct {
	Min  float64 `json:"min" mapstructure:"min" yaml:"min"`
	Tier Tier    `json:"tier" mapstructure:"tier" yaml:"tier"`
}

// TierTable is an ordered threshold list.  Thresholds must be strictly
// descending by Min; values below the last threshold fall to Floor.
type TierTable struct {
	Name       string      `json:"name" mapstructure:"name" yaml:"name"`
	Basis      Basis       `json:"basis" mapstructure:"basis" yaml:"basis"`
	Thresholds []Threshold `json:"thresholds" mapstructure:"thresholds" yaml:"thresholds"`
	Floor      Tier        `json:"floor" mapstructure:"floor" yaml:"floor"`
}

// CoarseTiers is the percent-based scheme: ≥80 Excellent, ≥60 Good,
// ≥40 Moderate, else Challenging.
func CoarseTiers() TierTable {
	return TierTable{
		Name:  "coarse",
		Basis: BasisPercent,
		Thresholds: []Threshold{
			{Min: 80, Tier: TierExcellent},
			{Min: 60, Tier: TierGood},
			{Min: 40, Tier: TierModerate},
		},
		Floor: TierChallenging,
	}
}

// FineTiers is the raw-points scheme: ≥30 Strong, ≥25 Stable, else Weak.
func FineTiers() TierTable {
	return TierTable{
		Name:  "fine",
		Basis: BasisPoints,
		Thresholds: []Threshold{
			{Min: 30, Tier: TierStrong},
			{Min: 25, Tier: TierStable},
		},
		Floor: TierWeak,
	}
}

// Validate checks basis, ordering and floor.
func (t TierTable) Validate() error {
	switch t.Basis {
	case BasisPercent, BasisPoints:
	default:
		return errors.New(errors.CodeInvalidTierTable, "unknown tier basis").
			WithDetail(fmt.Sprintf("table %q basis %q", t.Name, t.Basis))
	}
	if t.Floor == "" {
		return errors.New(errors.CodeInvalidTierTable, "tier table needs a floor tier").WithDetail(t.Name)
	}
	for i, th := range t.Thresholds {
		if th.Tier == "" {
			return errors.New(errors.CodeInvalidTierTable, "threshold without tier").
				WithDetail(fmt.Sprintf("table %q index %d", t.Name, i))
		}
		if i > 0 && th.Min >= t.Thresholds[i-1].Min {
			return errors.New(errors.CodeInvalidTierTable, "thresholds must be strictly descending").
				WithDetail(fmt.Sprintf("table %q index %d: %g >= %g", t.Name, i, th.Min, t.Thresholds[i-1].Min))
		}
	}
	return nil
}

// TierOf returns the first tier whose threshold value meets, else the floor.
// value must already be on the table's basis.
func (t TierTable) TierOf(value float64) Tier {
	for _, th := range t.Thresholds {
		if value >= th.Min {
			return th.Tier
		}
	}
	return t.Floor
}

// TierOf buckets a percentage with table.  Kept as a free function for call
// sites that hold a percentage only.
func TierOf(percentage float64, table TierTable) Tier {
	return table.TierOf(percentage)
}

// ─────────────────────────────────────────────────────────────────────────────
// Score: points, percentage and tier in one value
// ─────────────────────────────────────────────────────────────────────────────

// Score is a classified strength reading.
type Score struct {
	Points  float64 `json:"points"`
	Percent int     `json:"percent"`
	Tier    Tier    `json:"tier"`
}

// Classify normalizes points with cal and buckets the result with table,
// reading the table against points or percent according to its Basis.
func Classify(points float64, cal Calibration, table TierTable) (Score, error) {
	pct, err := Normalize(points, cal)
	if err != nil {
		return Score{}, err
	}
	if err := table.Validate(); err != nil {
		return Score{}, err
	}
	return Score{Points: points, Percent: pct, Tier: table.TierFor(points, pct)}, nil
}

// TierFor picks the value matching the table's basis and buckets it.
func (t TierTable) TierFor(points float64, percent int) Tier {
	if t.Basis == BasisPoints {
		return t.TierOf(points)
	}
	return t.TierOf(float64(percent))
}

//Personal.AI order the ending

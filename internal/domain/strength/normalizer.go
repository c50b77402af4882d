// Package strength converts raw per-house strength points (Ashtakavarga-style
// scores) into bounded percentages and qualitative tiers.
//
// Calibrations and tier tables are always supplied by the caller; nothing in
// this package hardcodes a point range.
package strength

import (
	"math"

	"github.com/turtacn/Jyotish-Intelligence/pkg/errors"
)

// Calibration is the raw-point range that maps onto 0–100%.
type Calibration struct {
	Min float64 `json:"min" mapstructure:"min" yaml:"min"`
	Max float64 `json:"max" mapstructure:"max" yaml:"max"`
}

// Validate fails with CodeDegenerateCalibration when Max <= Min or either
// bound is not a finite number.
func (c Calibration) Validate() error {
	if math.IsNaN(c.Min) || math.IsNaN(c.Max) || math.IsInf(c.Min, 0) || math.IsInf(c.Max, 0) || c.Max <= c.Min {
		return errors.DegenerateCalibration(c.Min, c.Max)
	}
	return nil
}

// Normalize maps points onto a 0–100 percentage:
//
//	clamp(0, 100, round(100 * (points - min) / (max - min)))
//
// A degenerate calibration is a configuration error and is returned as such.
func Normalize(points float64, cal Calibration) (int, error) {
	if err := cal.Validate(); err != nil {
		return 0, err
	}
	pct := math.Round(100 * (points - cal.Min) / (cal.Max - cal.Min))
	return clampPercent(pct), nil
}

// NormalizeAll normalizes every value in points with the same calibration.
func NormalizeAll(points []float64, cal Calibration) ([]int, error) {
	if err := cal.Validate(); err != nil {
		return nil, err
	}
	out := make([]int, len(points))
	for i, p := range points {
		out[i] = clampPercent(math.Round(100 * (p - cal.Min) / (cal.Max - cal.Min)))
	}
	return out, nil
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

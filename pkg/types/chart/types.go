// Package chart defines the wire payloads consumed by the analysis engine:
// a natal chart with its precomputed strength table, the upstream period
// tree and a set of current transits.
//
// The engine never computes positions itself; every value here arrives from
// an upstream ephemeris service or a file produced by one.
package chart

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/turtacn/Jyotish-Intelligence/pkg/errors"
)

// Placement is one body in one sign.  Used for natal planets and transits.
type Placement struct {
	Name       string  `json:"name" yaml:"name" validate:"required"`
	Sign       string  `json:"sign" yaml:"sign" validate:"required"`
	Degree     float64 `json:"degree,omitempty" yaml:"degree,omitempty" validate:"gte=0,lt=30"`
	Retrograde bool    `json:"retrograde,omitempty" yaml:"retrograde,omitempty"`
	Nakshatra  string  `json:"nakshatra,omitempty" yaml:"nakshatra,omitempty"`
}

// Period is one node of the upstream period tree.  Intervals are half-open.
type Period struct {
	Lord     string    `json:"lord" yaml:"lord" validate:"required"`
	Start    time.Time `json:"start" yaml:"start" validate:"required"`
	End      time.Time `json:"end" yaml:"end" validate:"required,gtfield=Start"`
	Children []Period  `json:"children,omitempty" yaml:"children,omitempty" validate:"omitempty,dive"`
}

// Chart is a natal chart.  Strength holds the per-sign strength points
// indexed by sign (Aries = 0), i.e. a Sarvashtakavarga table.
type Chart struct {
	Name      string      `json:"name,omitempty" yaml:"name,omitempty"`
	Ascendant string      `json:"ascendant" yaml:"ascendant" validate:"required"`
	Planets   []Placement `json:"planets,omitempty" yaml:"planets,omitempty" validate:"omitempty,dive"`
	Strength  []float64   `json:"strength" yaml:"strength" validate:"len=12,dive,gte=0"`
	Dasha     []Period    `json:"dasha,omitempty" yaml:"dasha,omitempty" validate:"omitempty,dive"`
}

// AnalysisRequest asks for a life-domain analysis of Chart at instant At.
// A zero At means "now" as seen by the service clock.
type AnalysisRequest struct {
	Chart       Chart       `json:"chart" yaml:"chart"`
	Transits    []Placement `json:"transits,omitempty" yaml:"transits,omitempty" validate:"omitempty,dive"`
	At          time.Time   `json:"at,omitempty" yaml:"at,omitempty"`
	Calibration string      `json:"calibration,omitempty" yaml:"calibration,omitempty"`
	TierScheme  string      `json:"tier_scheme,omitempty" yaml:"tier_scheme,omitempty" validate:"omitempty,max=32"`
	Domains     []string    `json:"domains,omitempty" yaml:"domains,omitempty"`
}

// HousesRequest asks for the 12 house strengths of one chart.
type HousesRequest struct {
	Ascendant   string    `json:"ascendant" yaml:"ascendant" validate:"required"`
	Strength    []float64 `json:"strength" yaml:"strength" validate:"len=12,dive,gte=0"`
	Calibration string    `json:"calibration,omitempty" yaml:"calibration,omitempty"`
	TierScheme  string    `json:"tier_scheme,omitempty" yaml:"tier_scheme,omitempty" validate:"omitempty,max=32"`
}

// DashaRequest asks for the active period chain at At.
type DashaRequest struct {
	Dasha  []Period  `json:"dasha" yaml:"dasha" validate:"required,min=1,dive"`
	At     time.Time `json:"at,omitempty" yaml:"at,omitempty"`
	Window int       `json:"window,omitempty" yaml:"window,omitempty" validate:"gte=0,lte=12"`
}

var validate = validator.New()

// Validate runs struct-tag validation on any payload of this package and
// converts failures to CodeValidation.
func Validate(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		return validationError(err)
	}
	return nil
}

// Validate checks the chart payload.
func (c *Chart) Validate() error { return Validate(c) }

// Validate checks the request payload.
func (r *AnalysisRequest) Validate() error { return Validate(r) }

// Validate checks the request payload.
func (r *HousesRequest) Validate() error { return Validate(r) }

// Validate checks the request payload.
func (r *DashaRequest) Validate() error { return Validate(r) }

func validationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Wrap(err, errors.CodeValidation, "invalid payload")
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
	}
	return errors.New(errors.CodeValidation, "invalid payload").WithDetail(strings.Join(fields, "; "))
}

//Personal.AI order the ending

package chart

import (
	"encoding/json"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/turtacn/Jyotish-Intelligence/pkg/errors"
)

// DateLayout is the calendar-date form accepted wherever an instant is.
const DateLayout = "2006-01-02"

// ParseInstant reads an RFC 3339 timestamp or a bare YYYY-MM-DD date (UTC
// midnight).  An empty string is the zero time.
func ParseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, errors.InvalidParam("instant must be RFC 3339 or YYYY-MM-DD").WithDetail(s)
	}
	return t, nil
}

// instant decodes a JSON string through ParseInstant.
type instant time.Time

func (i *instant) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := ParseInstant(s)
	if err != nil {
		return err
	}
	*i = instant(t)
	return nil
}

// placementAliases are the alternate field names upstream ephemeris feeds
// use for a placement.
type placementAliases struct {
	ZodiacSign   string `json:"zodiac_sign" yaml:"zodiac_sign"`
	IsRetrograde *bool  `json:"is_retrograde" yaml:"is_retrograde"`
}

func (a placementAliases) apply(p *Placement) {
	if p.Sign == "" {
		p.Sign = a.ZodiacSign
	}
	if a.IsRetrograde != nil && *a.IsRetrograde {
		p.Retrograde = true
	}
}

// UnmarshalJSON accepts both sign/retrograde and zodiac_sign/is_retrograde.
func (p *Placement) UnmarshalJSON(data []byte) error {
	type plain Placement
	aux := struct {
		*plain
		placementAliases
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	aux.placementAliases.apply(p)
	return nil
}

// UnmarshalYAML accepts the same spellings as UnmarshalJSON.
func (p *Placement) UnmarshalYAML(node *yaml.Node) error {
	type plain Placement
	aux := struct {
		plain            `yaml:",inline"`
		placementAliases `yaml:",inline"`
	}{}
	if err := node.Decode(&aux); err != nil {
		return err
	}
	*p = Placement(aux.plain)
	aux.placementAliases.apply(p)
	return nil
}

// UnmarshalJSON accepts RFC 3339 or YYYY-MM-DD bounds.
func (p *Period) UnmarshalJSON(data []byte) error {
	type plain Period
	aux := struct {
		*plain
		Start instant `json:"start"`
		End   instant `json:"end"`
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	p.Start, p.End = time.Time(aux.Start), time.Time(aux.End)
	return nil
}

// UnmarshalJSON accepts RFC 3339 or YYYY-MM-DD for at.
func (r *AnalysisRequest) UnmarshalJSON(data []byte) error {
	type plain AnalysisRequest
	aux := struct {
		*plain
		At instant `json:"at"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.At = time.Time(aux.At)
	return nil
}

// UnmarshalJSON accepts RFC 3339 or YYYY-MM-DD for at.
func (r *DashaRequest) UnmarshalJSON(data []byte) error {
	type plain DashaRequest
	aux := struct {
		*plain
		At instant `json:"at"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.At = time.Time(aux.At)
	return nil
}

//Personal.AI order the ending

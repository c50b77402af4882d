package zodiac

import (
	"github.com/turtacn/Jyotish-Intelligence/pkg/errors"
)

// SignCount is the number of zodiac signs.  All ordinal arithmetic on signs is
// performed modulo SignCount.
const SignCount = 12

// Sign is one of the 12 zodiac signs, identified by its ordinal 0–11 with
// Aries at 0.
type Sign int

const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

// signNames is the canonical display form of each sign in ordinal order.
var signNames = [SignCount]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// signIndex maps Canonicalize(name) → ordinal.
var signIndex = func() map[string]int {
	m := make(map[string]int, SignCount)
	for i, n := range signNames {
		m[Canonicalize(n)] = i
	}
	return m
}()

// IndexOf resolves a sign name to its ordinal.  Matching is case-insensitive
// and ignores whitespace and punctuation (see Canonicalize); there is no fuzzy
// matching.  Unresolvable names fail with CodeUnknownSign.
func IndexOf(name string) (int, error) {
	if i, ok := signIndex[Canonicalize(name)]; ok {
		return i, nil
	}
	return 0, errors.UnknownSign(name)
}

// NameOf returns the canonical name of the sign at index.  The index is taken
// modulo 12 first, so negative or overflowed results of house arithmetic are
// accepted.
func NameOf(index int) string {
	return signNames[mod12(index)]
}

// ParseSign is IndexOf returning a typed Sign.
func ParseSign(name string) (Sign, error) {
	i, err := IndexOf(name)
	if err != nil {
		return 0, err
	}
	return Sign(i), nil
}

// SignAt returns the Sign at index modulo 12.
func SignAt(index int) Sign { return Sign(mod12(index)) }

// String returns the canonical sign name.
func (s Sign) String() string { return NameOf(int(s)) }

// Index returns the ordinal of s in [0, 12).
func (s Sign) Index() int { return mod12(int(s)) }

// Add returns the sign n places after s, wrapping around the zodiac.
func (s Sign) Add(n int) Sign { return SignAt(int(s) + n) }

// AllSigns returns the 12 signs in zodiac order starting with Aries.
func AllSigns() []Sign {
	out := make([]Sign, SignCount)
	for i := range out {
		out[i] = Sign(i)
	}
	return out
}

// ─────────────────────────────────────────────────────────────────────────────
// Planets and sign rulers
// ─────────────────────────────────────────────────────────────────────────────

// Planet names a graha as it appears in period lords, transits, and karaka
// lists.  Comparisons go through SamePlanet so payload spelling does not matter.
type Planet string

const (
	Sun     Planet = "Sun"
	Moon    Planet = "Moon"
	Mars    Planet = "Mars"
	Mercury Planet = "Mercury"
	Jupiter Planet = "Jupiter"
	Venus   Planet = "Venus"
	Saturn  Planet = "Saturn"
	Rahu    Planet = "Rahu"
	Ketu    Planet = "Ketu"
)

// SamePlanet reports whether two planet names refer to the same body.
func SamePlanet(a, b string) bool {
	return Canonicalize(a) == Canonicalize(b)
}

var signRulers = [SignCount]Planet{
	Mars, Venus, Mercury, Moon, Sun, Mercury,
	Venus, Mars, Jupiter, Saturn, Saturn, Jupiter,
}

// RulerOf returns the classical lord of s.
func RulerOf(s Sign) Planet {
	return signRulers[s.Index()]
}

//Personal.AI order the ending

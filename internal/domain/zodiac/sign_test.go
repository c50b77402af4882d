package zodiac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/Jyotish-Intelligence/pkg/errors"
)

func TestCanonicalize(t *testing.T) {
	cases := map[string]string{
		"Leo":              "leo",
		"  SCORPIO \t":     "scorpio",
		"Purva Phalguni":   "purvaphalguni",
		"purva-phalguni":   "purvaphalguni",
		"Mīna":             "mina",
		"Sagittarius (9)":  "sagittarius9",
		"":                 "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Canonicalize(in), "input %q", in)
	}
}

func TestIndexOf_AllCanonicalNames(t *testing.T) {
	for i, name := range signNames {
		got, err := IndexOf(name)
		require.NoError(t, err)
		assert.Equal(t, i, got)
	}
}

func TestIndexOf_CaseAndWhitespaceInsensitive(t *testing.T) {
	for _, in := range []string{"leo", "LEO", " Leo ", "\tleO\n"} {
		got, err := IndexOf(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, 4, got)
	}
}

func TestIndexOf_Unknown(t *testing.T) {
	for _, in := range []string{"", "Ophiuchus", "Leoo", "Unknown"} {
		_, err := IndexOf(in)
		require.Error(t, err, "input %q", in)
		assert.True(t, errors.IsUnknownSign(err))
	}
}

func TestNameOf_WrapsModulo12(t *testing.T) {
	assert.Equal(t, "Aries", NameOf(0))
	assert.Equal(t, "Pisces", NameOf(11))
	assert.Equal(t, "Aries", NameOf(12))
	assert.Equal(t, "Pisces", NameOf(-1))
	assert.Equal(t, "Leo", NameOf(-8))
	assert.Equal(t, "Leo", NameOf(4+12*7))
}

func TestRoundTrip_NameOfIndexOf(t *testing.T) {
	for _, name := range signNames {
		for _, variant := range []string{name, Canonicalize(name), "  " + name + "  "} {
			i, err := IndexOf(variant)
			require.NoError(t, err)
			assert.Equal(t, name, NameOf(i))
		}
	}
}

func TestSign_Helpers(t *testing.T) {
	assert.Equal(t, "Leo", Leo.String())
	assert.Equal(t, Scorpio, Leo.Add(3))
	assert.Equal(t, Gemini, Leo.Add(-2))
	assert.Equal(t, Aries, Pisces.Add(1))
	assert.Len(t, AllSigns(), SignCount)
	assert.Equal(t, Aries, AllSigns()[0])

	s, err := ParseSign("capricorn")
	require.NoError(t, err)
	assert.Equal(t, Capricorn, s)
}

func TestRulerOf(t *testing.T) {
	assert.Equal(t, Mars, RulerOf(Aries))
	assert.Equal(t, Sun, RulerOf(Leo))
	assert.Equal(t, Mars, RulerOf(Scorpio))
	assert.Equal(t, Saturn, RulerOf(Aquarius))
	assert.Equal(t, Jupiter, RulerOf(Pisces))
}

func TestSamePlanet(t *testing.T) {
	assert.True(t, SamePlanet("Saturn", " saturn"))
	assert.False(t, SamePlanet("Saturn", "Sun"))
}

func TestNakshatraIndexOf(t *testing.T) {
	i, err := NakshatraIndexOf("purva phalguni")
	require.NoError(t, err)
	assert.Equal(t, 10, i)

	i, err = NakshatraIndexOf("Moola")
	require.NoError(t, err)
	assert.Equal(t, "Mula", NakshatraName(i))

	_, err = NakshatraIndexOf("Abhijit")
	assert.True(t, errors.IsUnknownSign(err))

	for idx, name := range nakshatraNames {
		got, err := NakshatraIndexOf(name)
		require.NoError(t, err)
		assert.Equal(t, idx, got)
	}
}

func TestNakshatraLord(t *testing.T) {
	assert.Equal(t, Ketu, NakshatraLord(0))
	assert.Equal(t, Ketu, NakshatraLord(9))
	assert.Equal(t, Ketu, NakshatraLord(18))
	assert.Equal(t, Mercury, NakshatraLord(26))
	assert.Equal(t, Saturn, NakshatraLord(7))
	assert.Equal(t, "Revati", NakshatraName(-1))
}

//Personal.AI order the ending

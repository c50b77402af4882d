package zodiac

import (
	"fmt"

	"github.com/turtacn/Jyotish-Intelligence/pkg/errors"
)

// NakshatraCount is the number of lunar mansions.
const NakshatraCount = 27

var nakshatraNames = [NakshatraCount]string{
	"Ashwini", "Bharani", "Krittika", "Rohini", "Mrigashira", "Ardra",
	"Punarvasu", "Pushya", "Ashlesha", "Magha", "Purva Phalguni", "Uttara Phalguni",
	"Hasta", "Chitra", "Swati", "Vishakha", "Anuradha", "Jyeshtha",
	"Mula", "Purva Ashadha", "Uttara Ashadha", "Shravana", "Dhanishta", "Shatabhisha",
	"Purva Bhadrapada", "Uttara Bhadrapada", "Revati",
}

// vimshottariSequence is the nine-lord cycle that repeats three times across
// the nakshatras starting at Ashwini.
var vimshottariSequence = [9]Planet{Ketu, Venus, Sun, Moon, Mars, Rahu, Jupiter, Saturn, Mercury}

// nakshatraAliases lists transliterations seen in upstream payloads.
var nakshatraAliases = map[string]int{
	"aswini":          0,
	"mrigasira":       4,
	"mrigasirsha":     4,
	"aslesha":         8,
	"purvaphalguna":   10,
	"uttaraphalguna":  11,
	"chitta":          13,
	"svati":           14,
	"visakha":         15,
	"jyestha":         17,
	"moola":           18,
	"purvashadha":     19,
	"uttarashadha":    20,
	"sravana":         21,
	"dhanishtha":      22,
	"shravishtha":     22,
	"satabhisha":      23,
	"shatabhishak":    23,
	"purvabhadra":     24,
	"uttarabhadra":    25,
}

var nakshatraIndex = func() map[string]int {
	m := make(map[string]int, NakshatraCount+len(nakshatraAliases))
	for i, n := range nakshatraNames {
		m[Canonicalize(n)] = i
	}
	for alias, i := range nakshatraAliases {
		m[alias] = i
	}
	return m
}()

// NakshatraIndexOf resolves a nakshatra name (or a known transliteration) to
// its ordinal 0–26 using the same Canonicalize folding as IndexOf.
func NakshatraIndexOf(name string) (int, error) {
	if i, ok := nakshatraIndex[Canonicalize(name)]; ok {
		return i, nil
	}
	return 0, errors.New(errors.CodeUnknownSign, "unknown nakshatra").WithDetail(fmt.Sprintf("%q", name))
}

// NakshatraName returns the canonical name at index modulo 27.
func NakshatraName(index int) string {
	m := index % NakshatraCount
	if m < 0 {
		m += NakshatraCount
	}
	return nakshatraNames[m]
}

// NakshatraLord returns the Vimshottari lord of the nakshatra at index.
func NakshatraLord(index int) Planet {
	m := index % NakshatraCount
	if m < 0 {
		m += NakshatraCount
	}
	return vimshottariSequence[m%len(vimshottariSequence)]
}

//Personal.AI order the ending

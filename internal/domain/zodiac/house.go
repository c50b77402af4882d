package zodiac

import (
	"fmt"

	"github.com/turtacn/Jyotish-Intelligence/pkg/errors"
)

// HouseNumber is a 1-based house, 1–12, where house 1 is the reference
// (ascendant) sign.
type HouseNumber int

// HouseCount is the number of houses.
const HouseCount = 12

// Valid reports whether h lies in [1, 12].
func (h HouseNumber) Valid() bool { return h >= 1 && h <= HouseCount }

// String renders the house as "H10".
func (h HouseNumber) String() string { return fmt.Sprintf("H%d", int(h)) }

// NewHouseNumber validates n and returns it as a HouseNumber.
func NewHouseNumber(n int) (HouseNumber, error) {
	h := HouseNumber(n)
	if !h.Valid() {
		return 0, errors.New(errors.CodeInvalidHouse, "house number out of range").
			WithDetail(fmt.Sprintf("got %d, expected 1..12", n))
	}
	return h, nil
}

// HouseOfSign returns the house occupied by target when reference rises:
//
//	house = ((index(target) - index(reference) + 12) mod 12) + 1
func HouseOfSign(target, reference Sign) HouseNumber {
	return HouseNumber(mod12(target.Index()-reference.Index()+SignCount) + 1)
}

// HouseOf is HouseOfSign over sign names.  It fails with CodeUnknownSign when
// either name does not resolve.  Every sign→house conversion in the engine
// goes through this function.
func HouseOf(targetSign, referenceSign string) (HouseNumber, error) {
	target, err := ParseSign(targetSign)
	if err != nil {
		return 0, err
	}
	reference, err := ParseSign(referenceSign)
	if err != nil {
		return 0, errors.Wrap(err, errors.CodeUnknown, "resolving reference sign")
	}
	return HouseOfSign(target, reference), nil
}

// SignOnHouse is the inverse of HouseOfSign: the sign occupying house h when
// ascendant rises.  h is not range-checked; it wraps modulo 12.
func SignOnHouse(h HouseNumber, ascendant Sign) Sign {
	return ascendant.Add(int(h) - 1)
}

// ─────────────────────────────────────────────────────────────────────────────
// House classification
// ─────────────────────────────────────────────────────────────────────────────

// HouseType is a classical house grouping.
type HouseType string

const (
	// HouseKendra marks the angular houses 1, 4, 7, 10.
	HouseKendra HouseType = "Kendra"
	// HouseTrikona marks the trines 1, 5, 9.
	HouseTrikona HouseType = "Trikona"
	// HouseDusthana marks the difficult houses 6, 8, 12.
	HouseDusthana HouseType = "Dusthana"
	// HouseOther is used when a house belongs to none of the groups above.
	HouseOther HouseType = "Other"
)

var (
	kendraHouses   = map[HouseNumber]bool{1: true, 4: true, 7: true, 10: true}
	trikonaHouses  = map[HouseNumber]bool{1: true, 5: true, 9: true}
	dusthanaHouses = map[HouseNumber]bool{6: true, 8: true, 12: true}
)

// HouseTypes returns the groups h belongs to in the fixed order Kendra,
// Trikona, Dusthana.  House 1 is both Kendra and Trikona.  A house in no group
// yields exactly [Other].
func HouseTypes(h HouseNumber) []HouseType {
	var out []HouseType
	if kendraHouses[h] {
		out = append(out, HouseKendra)
	}
	if trikonaHouses[h] {
		out = append(out, HouseTrikona)
	}
	if dusthanaHouses[h] {
		out = append(out, HouseDusthana)
	}
	if len(out) == 0 {
		out = append(out, HouseOther)
	}
	return out
}

// HasType reports whether h belongs to group t.
func HasType(h HouseNumber, t HouseType) bool {
	for _, ht := range HouseTypes(h) {
		if ht == t {
			return true
		}
	}
	return false
}

// houseLabels is the fixed house → life-domain label table, index 0 = house 1.
var houseLabels = [HouseCount]string{
	"Self & Personality",
	"Wealth & Family",
	"Courage & Siblings",
	"Home & Mother",
	"Children & Creativity",
	"Health & Service",
	"Partnerships",
	"Transformation & Longevity",
	"Fortune & Dharma",
	"Career & Status",
	"Gains & Networks",
	"Liberation & Losses",
}

// DomainLabel returns the life-domain label of h, or "" for an invalid house.
func DomainLabel(h HouseNumber) string {
	if !h.Valid() {
		return ""
	}
	return houseLabels[h-1]
}

//Personal.AI order the ending

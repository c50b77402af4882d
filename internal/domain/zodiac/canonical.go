// Package zodiac holds the fixed catalogues of the engine: the 12 signs, the
// 27 nakshatras, sign rulers, and the house arithmetic that maps a sign to a
// house number relative to a reference (ascendant) sign.
//
// Everything here is a pure function over constant tables and is safe for
// concurrent use.
package zodiac

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Canonicalize folds a catalogue name into its lookup key: Unicode marks are
// stripped after NFD decomposition ("Mīna" → "mina"), letters are lowercased,
// and every rune that is not a letter or digit is dropped ("Purva Phalguni",
// "purva-phalguni" and "PurvaPhalguni" all become "purvaphalguni").
//
// It is the single normalization used by every catalogue in this package.
func Canonicalize(name string) string {
	decomposed := norm.NFD.String(name)
	var sb strings.Builder
	sb.Grow(len(decomposed))
	for _, r := range decomposed {
		switch {
		case unicode.Is(unicode.Mn, r):
			continue
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(unicode.ToLower(r))
		}
	}
	return sb.String()
}

// mod12 returns i modulo 12 in the range [0, 12).
func mod12(i int) int {
	m := i % SignCount
	if m < 0 {
		m += SignCount
	}
	return m
}

//Personal.AI order the ending

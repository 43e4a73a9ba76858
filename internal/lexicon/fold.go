// Package lexicon holds the locale-specific word tables (month names, keyword
// classes, legal-entity suffixes, address tokens) used by the extractors and
// validators. Tables are keyed by language code so new locales are additive.
package lexicon

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldChain = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Letters that carry no combining mark and survive NFD untouched.
var foldReplacer = strings.NewReplacer(
	"ł", "l", "Ł", "L",
	"ß", "ss",
	"ø", "o", "Ø", "O",
	"đ", "d", "Đ", "D",
	"æ", "ae", "Æ", "AE",
)

// Fold strips diacritics so that "września" and "wrzesnia" compare equal.
// Input that fails normalization is returned with only the replacer applied.
func Fold(s string) string {
	folded, _, err := transform.String(foldChain, s)
	if err != nil {
		folded = s
	}
	return foldReplacer.Replace(folded)
}

// NormalizeToken lowers and folds a token for table lookup.
func NormalizeToken(s string) string {
	return strings.ToLower(Fold(strings.TrimSpace(s)))
}

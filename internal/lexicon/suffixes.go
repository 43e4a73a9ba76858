package lexicon

// Legal-entity suffixes that mark a string as a company name. Keyed by
// language so new jurisdictions are a table edit, not a code change.
var legalSuffixes = map[string][]string{
	"pl": {"sp. z o.o.", "sp. z o. o.", "spółka z o.o.", "s.a.", "sp.j.", "sp. j.", "sp.k.", "s.c.", "p.p.h.u.", "f.h.u."},
	"en": {"ltd", "ltd.", "limited", "llc", "llp", "inc", "inc.", "corp", "corp.", "plc", "co.", "company"},
	"de": {"gmbh", "gmbh & co. kg", "ag", "kg", "ohg", "ug", "e.k.", "e.v."},
}

// LegalSuffixes returns the folded suffix table for the given languages,
// longest first.
func LegalSuffixes(langs []string) []string {
	return collect(func(lang string) []string { return legalSuffixes[lang] }, langs)
}

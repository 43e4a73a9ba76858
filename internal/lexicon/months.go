package lexicon

import (
	"sort"
	"time"
)

// monthForms lists every accepted spelling of a month per language: full
// forms (Polish needs both nominative and genitive) and abbreviations, in
// native spelling. Folded variants are derived, never listed.
var monthForms = map[string]map[time.Month][]string{
	"pl": {
		time.January:   {"styczeń", "stycznia", "sty"},
		time.February:  {"luty", "lutego", "lut"},
		time.March:     {"marzec", "marca", "mar"},
		time.April:     {"kwiecień", "kwietnia", "kwi"},
		time.May:       {"maj", "maja"},
		time.June:      {"czerwiec", "czerwca", "cze"},
		time.July:      {"lipiec", "lipca", "lip"},
		time.August:    {"sierpień", "sierpnia", "sie"},
		time.September: {"wrzesień", "września", "wrz"},
		time.October:   {"październik", "października", "paź", "paz"},
		time.November:  {"listopad", "listopada", "lis"},
		time.December:  {"grudzień", "grudnia", "gru"},
	},
	"en": {
		time.January:   {"january", "jan"},
		time.February:  {"february", "feb"},
		time.March:     {"march", "mar"},
		time.April:     {"april", "apr"},
		time.May:       {"may"},
		time.June:      {"june", "jun"},
		time.July:      {"july", "jul"},
		time.August:    {"august", "aug"},
		time.September: {"september", "sep", "sept"},
		time.October:   {"october", "oct"},
		time.November:  {"november", "nov"},
		time.December:  {"december", "dec"},
	},
	"de": {
		time.January:   {"januar", "jan"},
		time.February:  {"februar", "feb"},
		time.March:     {"märz", "mär"},
		time.April:     {"april", "apr"},
		time.May:       {"mai"},
		time.June:      {"juni", "jun"},
		time.July:      {"juli", "jul"},
		time.August:    {"august", "aug"},
		time.September: {"september", "sep"},
		time.October:   {"oktober", "okt"},
		time.November:  {"november", "nov"},
		time.December:  {"dezember", "dez"},
	},
}

// MonthLookup returns name -> month for the given languages, keyed by
// normalized (lowercased, diacritic-folded) spelling. Both the native and the
// folded spelling of every form resolve.
func MonthLookup(langs []string) map[string]time.Month {
	out := make(map[string]time.Month, 64)
	for _, lang := range NormalizeLanguages(langs) {
		for month, forms := range monthForms[lang] {
			for _, form := range forms {
				out[form] = month
				out[NormalizeToken(form)] = month
			}
		}
	}
	return out
}

// MonthNames returns every accepted spelling (native and folded) for the
// given languages, longest first so regexp alternation prefers full forms
// over abbreviations.
func MonthNames(langs []string) []string {
	lookup := MonthLookup(langs)
	names := make([]string, 0, len(lookup))
	for name := range lookup {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	return names
}

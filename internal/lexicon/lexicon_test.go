package lexicon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFold(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"września", "wrzesnia"},
		{"Łódź", "Lodz"},
		{"Müller", "Muller"},
		{"Straße", "Strasse"},
		{"zażółć gęślą jaźń", "zazolc gesla jazn"},
		{"plain ascii", "plain ascii"},
		{"", ""},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Fold(tc.in), "Fold(%q)", tc.in)
	}
}

func TestNormalizeToken(t *testing.T) {
	assert.Equal(t, "termin platnosci", NormalizeToken("  Termin Płatności "))
	assert.Equal(t, "do zaplaty", NormalizeToken("DO ZAPŁATY"))
}

func TestNormalizeLanguages(t *testing.T) {
	tests := []struct {
		name  string
		hints []string
		want  []string
	}{
		{"regions stripped", []string{"pl-PL", "de_DE"}, []string{"pl", "de"}},
		{"case folded and deduped", []string{"EN", "en"}, []string{"en"}},
		{"empty enables all", nil, []string{"pl", "en", "de"}},
		{"unknown only enables all", []string{"xx", "fr"}, []string{"pl", "en", "de"}},
		{"unknown mixed with known is dropped", []string{"xx", "pl"}, []string{"pl"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeLanguages(tc.hints))
		})
	}
}

func TestMonthFirst(t *testing.T) {
	assert.True(t, MonthFirst("en"))
	assert.False(t, MonthFirst("pl"))
	assert.False(t, MonthFirst("de"))
}

func TestMonthLookup(t *testing.T) {
	lookup := MonthLookup([]string{"pl", "en", "de"})

	// native and folded spellings both resolve
	assert.Equal(t, time.September, lookup["września"])
	assert.Equal(t, time.September, lookup["wrzesnia"])
	assert.Equal(t, time.January, lookup["stycznia"])
	assert.Equal(t, time.January, lookup["sty"])
	assert.Equal(t, time.March, lookup["märz"])
	assert.Equal(t, time.March, lookup["marz"])
	assert.Equal(t, time.December, lookup["december"])

	_, known := lookup["notamonth"]
	assert.False(t, known)
}

func TestMonthNamesLongestFirst(t *testing.T) {
	names := MonthNames([]string{"pl"})
	require.NotEmpty(t, names)
	for i := 1; i < len(names); i++ {
		assert.GreaterOrEqual(t, len(names[i-1]), len(names[i]))
	}
}

func TestKeywords(t *testing.T) {
	due := Keywords(KeywordAmountDue, []string{"pl"})
	assert.Contains(t, due, "do zaplaty")
	assert.Contains(t, due, "razem do zaplaty")

	// longest-first so multi-word phrases win over their prefixes
	for i := 1; i < len(due); i++ {
		assert.GreaterOrEqual(t, len(due[i-1]), len(due[i]))
	}

	headers := DocumentHeaders([]string{"pl", "en"})
	assert.Contains(t, headers, "faktura vat")
	assert.Contains(t, headers, "invoice")
}

func TestCurrencyMarkers(t *testing.T) {
	markers := CurrencyMarkers(nil)
	assert.Equal(t, "PLN", markers["pln"])
	assert.Equal(t, "PLN", markers["zł"])
	assert.Equal(t, "PLN", markers["zl"]) // folded symbol resolves too
	assert.Equal(t, "EUR", markers["€"])

	only := CurrencyMarkers([]string{"eur"})
	assert.Equal(t, "EUR", only["eur"])
	_, hasPLN := only["pln"]
	assert.False(t, hasPLN)

	// malformed hints are skipped
	assert.Empty(t, CurrencyMarkers([]string{"toolong", "x"}))
}

func TestLegalSuffixes(t *testing.T) {
	suffixes := LegalSuffixes(nil)
	assert.Contains(t, suffixes, "sp. z o.o.")
	assert.Contains(t, suffixes, "ltd")
	assert.Contains(t, suffixes, "gmbh")
}

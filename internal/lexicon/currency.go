package lexicon

import "strings"

// DefaultCurrencyCodes is used when the caller passes no currency hints.
var DefaultCurrencyCodes = []string{"PLN", "EUR", "USD", "GBP", "CHF", "CZK"}

// currencySymbols maps symbols seen next to amounts to ISO 4217 codes.
var currencySymbols = map[string]string{
	"zł": "PLN",
	"€":  "EUR",
	"$":  "USD",
	"£":  "GBP",
	"kč": "CZK",
}

// CurrencyMarkers returns every token that signals a currency for the given
// ISO-code hints: the codes themselves (upper- and lowercase lookup is the
// caller's concern; markers are returned lowercased) plus their symbols.
// Empty hints fall back to DefaultCurrencyCodes.
func CurrencyMarkers(hints []string) map[string]string {
	codes := hints
	if len(codes) == 0 {
		codes = DefaultCurrencyCodes
	}
	markers := make(map[string]string, len(codes)*2)
	for _, c := range codes {
		code := strings.ToUpper(strings.TrimSpace(c))
		if len(code) != 3 {
			continue
		}
		markers[strings.ToLower(code)] = code
		for sym, symCode := range currencySymbols {
			if symCode == code {
				// both the native symbol and its folded form resolve, since
				// scanners fold text before lookup
				markers[sym] = code
				markers[NormalizeToken(sym)] = code
			}
		}
	}
	return markers
}

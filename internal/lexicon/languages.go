package lexicon

import "strings"

// Supported language codes, in table order.
var supportedLanguages = []string{"pl", "en", "de"}

// NormalizeLanguages maps free-form hints ("pl-PL", "EN") to supported codes.
// Unknown hints are dropped; an empty or fully-unknown hint list enables all
// supported languages, which is the safe default for mixed-language scans.
func NormalizeLanguages(hints []string) []string {
	seen := make(map[string]struct{}, len(hints))
	out := make([]string, 0, len(hints))
	for _, h := range hints {
		code := strings.ToLower(strings.TrimSpace(h))
		if i := strings.IndexAny(code, "-_"); i > 0 {
			code = code[:i]
		}
		if !isSupported(code) {
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	if len(out) == 0 {
		return append([]string(nil), supportedLanguages...)
	}
	return out
}

func isSupported(code string) bool {
	for _, s := range supportedLanguages {
		if s == code {
			return true
		}
	}
	return false
}

// MonthFirst reports whether the language conventionally writes the month
// name before the day ("January 31, 2024").
func MonthFirst(lang string) bool { return lang == "en" }

package validate

import "strings"

// IBAN lengths per country code, full string including the prefix.
var ibanLengths = map[string]int{
	"PL": 28, "DE": 22, "GB": 22, "FR": 27, "NL": 18,
	"CZ": 24, "SK": 24, "ES": 24, "IT": 27, "AT": 20,
	"BE": 16, "CH": 21, "SE": 24, "NO": 15, "LT": 20,
}

// domesticCountry is the one country whose bare national account numbers
// (digits only, no prefix) are accepted; the prefix is synthesized before
// the checksum runs so an invalid bare number still fails.
const domesticCountry = "PL"

// domesticAccountDigits is the bare national account length for
// domesticCountry (check digits included).
const domesticAccountDigits = 26

// ValidateIBAN strips whitespace and accepts either a full IBAN with a known
// country prefix and the correct length for that country, or a bare domestic
// account number of the expected digit count. Both paths must pass the
// standard mod-97 checksum (remainder 1 after rearrangement).
func ValidateIBAN(s string) bool {
	cleaned := stripSpaces(strings.ToUpper(s))
	if cleaned == "" {
		return false
	}
	if isLetter(cleaned[0]) {
		if len(cleaned) < 4 || !isLetter(cleaned[1]) {
			return false
		}
		want, known := ibanLengths[cleaned[:2]]
		if !known || len(cleaned) != want {
			return false
		}
		return ibanMod97(cleaned) == 1
	}
	if !allDigits(cleaned) || len(cleaned) != domesticAccountDigits {
		return false
	}
	return ibanMod97(domesticCountry+cleaned) == 1
}

// ibanMod97 moves the first four characters to the end, converts letters to
// their 10..35 values, and reduces the resulting number mod 97 digit by
// digit. Non-alphanumeric input yields 0, which never validates.
func ibanMod97(iban string) int {
	rearranged := iban[4:] + iban[:4]
	rem := 0
	for i := 0; i < len(rearranged); i++ {
		c := rearranged[i]
		switch {
		case c >= '0' && c <= '9':
			rem = (rem*10 + int(c-'0')) % 97
		case c >= 'A' && c <= 'Z':
			v := int(c-'A') + 10
			rem = (rem*100 + v) % 97
		default:
			return 0
		}
	}
	return rem
}

func stripSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\n', '\r', '-':
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isLetter(c byte) bool { return c >= 'A' && c <= 'Z' }

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

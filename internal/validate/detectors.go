// Package validate holds the stateless field classifiers and checksum
// validators used to gate extraction candidates. Every function is safe on
// arbitrary input: no panics, only booleans and bounded floats.
package validate

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	reDateLike       = regexp.MustCompile(`\b\d{1,4}[./-]\d{1,2}[./-]\d{2,4}\b`)
	reAmountNumber   = regexp.MustCompile(`^-?\d{1,3}(?:[ .,]\d{3})*(?:[.,]\d{1,2})?$|^-?\d+(?:[.,]\d{1,2})?$`)
	reCurrencyMarker = regexp.MustCompile(`^(?:[A-Za-z]{3}|zł|€|\$|£)$`)
	reNIPLabel       = regexp.MustCompile(`(?i)\bNIP\b[:.\s]*[0-9](?:[0-9 -]*[0-9])?`)
	reDigitGroups    = regexp.MustCompile(`^[0-9](?:[0-9 -]*[0-9])?$`)
)

// LooksLikeDate reports whether s contains a numeric date-shaped substring.
func LooksLikeDate(s string) bool { return reDateLike.MatchString(s) }

// LooksLikeAmount reports whether s is a monetary amount, optionally trailed
// or led by a currency token.
func LooksLikeAmount(s string) bool {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) == 0 || len(fields) > 3 {
		return false
	}
	sawNumber := false
	for _, f := range fields {
		switch {
		case reAmountNumber.MatchString(f):
			sawNumber = true
		case reCurrencyMarker.MatchString(f):
		default:
			return false
		}
	}
	return sawNumber
}

// LooksLikeAccountNumber reports whether s is a long digit run, optionally
// grouped by spaces or dashes, of account-number size.
func LooksLikeAccountNumber(s string) bool {
	s = strings.TrimSpace(s)
	if !reDigitGroups.MatchString(s) {
		return false
	}
	return countDigits(s) >= 16
}

// LooksLikeNIP reports whether s is either labeled as a tax identifier or is
// a bare 10-digit run with typical NIP grouping.
func LooksLikeNIP(s string) bool {
	s = strings.TrimSpace(s)
	if reNIPLabel.MatchString(s) {
		return true
	}
	return reDigitGroups.MatchString(s) && countDigits(s) == 10
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

func isPurelyNumeric(s string) bool {
	sawDigit := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			sawDigit = true
		case unicode.IsSpace(r), r == '.', r == ',', r == '-', r == '/':
		default:
			return false
		}
	}
	return sawDigit
}

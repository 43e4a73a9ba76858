package validate

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/thepesz/dueasy-sub004/internal/lexicon"
)

// InvoiceNumberLimits bounds the accepted length of a document number.
type InvoiceNumberLimits struct {
	Min int
	Max int
}

// DefaultInvoiceNumberLimits matches what invoices in the supported locales
// actually carry.
var DefaultInvoiceNumberLimits = InvoiceNumberLimits{Min: 3, Max: 30}

// Validator evaluates candidate strings against the lexicons of a fixed
// language set. It is immutable after construction and safe for concurrent
// use.
type Validator struct {
	headers      map[string]struct{}
	suffixes     []string
	streets      map[string]struct{}
	cities       map[string]struct{}
	deductions   []string
	invoiceLimit InvoiceNumberLimits
}

// New builds a validator for the given language hints (empty hints enable
// every supported language).
func New(langs []string) *Validator {
	v := &Validator{
		headers:      make(map[string]struct{}),
		streets:      make(map[string]struct{}),
		cities:       make(map[string]struct{}),
		suffixes:     lexicon.LegalSuffixes(langs),
		deductions:   lexicon.Keywords(lexicon.KeywordDeduction, langs),
		invoiceLimit: DefaultInvoiceNumberLimits,
	}
	for _, h := range lexicon.DocumentHeaders(langs) {
		v.headers[h] = struct{}{}
	}
	for _, s := range lexicon.StreetPrefixes(langs) {
		v.streets[s] = struct{}{}
	}
	for _, c := range lexicon.CityNames(langs) {
		v.cities[c] = struct{}{}
	}
	return v
}

// vendorNameBoost is the increment granted for a recognized legal-entity
// suffix.
const vendorNameBoost = 0.2

// IsValidVendorName reports whether s is plausible as a vendor name: at
// least three characters, not purely numeric, not a document-type header,
// and not shaped like a date, amount, account number, or tax identifier.
func (v *Validator) IsValidVendorName(s string) bool {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) < 3 {
		return false
	}
	if isPurelyNumeric(s) {
		return false
	}
	if _, header := v.headers[lexicon.NormalizeToken(s)]; header {
		return false
	}
	if LooksLikeDate(s) || LooksLikeAmount(s) || LooksLikeAccountNumber(s) || LooksLikeNIP(s) {
		return false
	}
	return true
}

// VendorNameConfidenceBoost returns a positive increment when s carries a
// recognized legal-entity suffix, else zero.
func (v *Validator) VendorNameConfidenceBoost(s string) float64 {
	folded := lexicon.NormalizeToken(s)
	for _, suffix := range v.suffixes {
		if strings.HasSuffix(folded, suffix) || strings.Contains(folded, " "+suffix+" ") {
			return vendorNameBoost
		}
	}
	return 0
}

var reStreetHouse = regexp.MustCompile(`^\p{L}[\p{L} .\-']{1,}\s\d{1,4}[A-Za-z]?(?:[/\-]\d{1,4}[A-Za-z]?)?$`)

// IsValidAddressComponent reports whether s is plausible as a fragment of a
// postal address: a postal code, a street-prefixed line, a street name with
// house number, or a bare known city name.
func (v *Validator) IsValidAddressComponent(s string) bool {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) < 3 {
		return false
	}
	for _, re := range lexicon.PostalCodePatterns() {
		if re.MatchString(strings.ToUpper(s)) {
			return true
		}
	}
	folded := lexicon.NormalizeToken(s)
	if _, city := v.cities[folded]; city {
		return true
	}
	if first, _, ok := strings.Cut(folded, " "); ok {
		if _, street := v.streets[first]; street {
			return true
		}
	}
	return reStreetHouse.MatchString(s)
}

// ValidateInvoiceNumber reports whether s fits the configured length band,
// contains a digit, and is distinguishable from a bare account number.
func (v *Validator) ValidateInvoiceNumber(s string) bool {
	s = strings.TrimSpace(s)
	n := utf8.RuneCountInString(s)
	if n < v.invoiceLimit.Min || n > v.invoiceLimit.Max {
		return false
	}
	if strings.ContainsAny(s, " \t") {
		return false
	}
	if !strings.ContainsAny(s, "0123456789") {
		return false
	}
	if LooksLikeAccountNumber(s) {
		return false
	}
	return true
}

// ContainsDeductionKeywords reports whether s mentions a discount, advance,
// or other reduction; such lines must not win the amount slot.
func (v *Validator) ContainsDeductionKeywords(s string) bool {
	folded := lexicon.NormalizeToken(s)
	for _, kw := range v.deductions {
		if strings.Contains(folded, kw) {
			return true
		}
	}
	return false
}

package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidVendorName(t *testing.T) {
	v := New(nil)

	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"company with suffix", "ACME Industries Ltd.", true},
		{"person", "Jan Kowalski", true},
		{"polish company", "Zakład Energetyczny Sp. z o.o.", true},
		{"too short", "AB", false},
		{"document header", "FAKTURA VAT", false},
		{"document header lowercase", "invoice", false},
		{"date", "15.01.2024", false},
		{"amount", "1 230,00 zł", false},
		{"pure digits", "1234567", false},
		{"account number", "61109010140000071219812874", false},
		{"labeled tax id", "NIP: 768-000-24-66", false},
		{"bare tax id", "768-000-24-66", false},
		{"empty", "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, v.IsValidVendorName(tc.in))
		})
	}
}

func TestVendorNameConfidenceBoost(t *testing.T) {
	v := New(nil)

	assert.InDelta(t, 0.2, v.VendorNameConfidenceBoost("ACME Industries Ltd."), 1e-9)
	assert.InDelta(t, 0.2, v.VendorNameConfidenceBoost("Zakład Energetyczny sp. z o.o."), 1e-9)
	assert.InDelta(t, 0.2, v.VendorNameConfidenceBoost("Beispiel GmbH"), 1e-9)
	assert.Zero(t, v.VendorNameConfidenceBoost("Jan Kowalski"))
	assert.Zero(t, v.VendorNameConfidenceBoost(""))
}

func TestIsValidAddressComponent(t *testing.T) {
	v := New(nil)

	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"polish postal code with city", "00-950 Warszawa", true},
		{"german postal code", "10115 Berlin", true},
		{"uk postal code", "SW1A 1AA", true},
		{"street prefix line", "ul. Marszałkowska 1", true},
		{"street with house number", "Main Street 5", true},
		{"street with unit", "Lipowa 12/3", true},
		{"bare city", "Kraków", true},
		{"too short", "AB", false},
		{"digit run", "12345678", false},
		{"plain word", "hello", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, v.IsValidAddressComponent(tc.in))
		})
	}
}

func TestValidateInvoiceNumber(t *testing.T) {
	v := New(nil)

	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"typical", "FV/2024/0042", true},
		{"numeric with year", "2024-0042", true},
		{"short code", "A01", true},
		{"too short", "A1", false},
		{"no digit", "FAKTURA", false},
		{"contains whitespace", "FV 2024", false},
		{"account number shaped", "61109010140000071219812874", false},
		{"too long", "0123456789012345678901234567890", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, v.ValidateInvoiceNumber(tc.in))
		})
	}
}

func TestContainsDeductionKeywords(t *testing.T) {
	v := New(nil)

	assert.True(t, v.ContainsDeductionKeywords("Rabat 10%"))
	assert.True(t, v.ContainsDeductionKeywords("Zaliczka: 500,00"))
	assert.True(t, v.ContainsDeductionKeywords("Early payment discount"))
	assert.False(t, v.ContainsDeductionKeywords("Do zapłaty: 1230,00"))
}

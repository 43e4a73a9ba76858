package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLooksLikeDate(t *testing.T) {
	assert.True(t, LooksLikeDate("15.01.2024"))
	assert.True(t, LooksLikeDate("2024-01-15"))
	assert.True(t, LooksLikeDate("termin: 15/01/2024"))
	assert.False(t, LooksLikeDate("ACME Industries"))
	assert.False(t, LooksLikeDate("1230,00"))
}

func TestLooksLikeAmount(t *testing.T) {
	assert.True(t, LooksLikeAmount("1230,00"))
	assert.True(t, LooksLikeAmount("1 230,00 zł"))
	assert.True(t, LooksLikeAmount("PLN 1.230,00"))
	assert.True(t, LooksLikeAmount("-42.50"))
	assert.False(t, LooksLikeAmount("ACME Industries Ltd."))
	assert.False(t, LooksLikeAmount("faktura 1230,00 brutto razem"))
	assert.False(t, LooksLikeAmount("zł"))
	assert.False(t, LooksLikeAmount(""))
}

func TestLooksLikeAccountNumber(t *testing.T) {
	assert.True(t, LooksLikeAccountNumber("61109010140000071219812874"))
	assert.True(t, LooksLikeAccountNumber("61 1090 1014 0000 0712 1981 2874"))
	assert.True(t, LooksLikeAccountNumber("1234-5678-9012-3456"))
	assert.False(t, LooksLikeAccountNumber("7680002466"))
	assert.False(t, LooksLikeAccountNumber("konto 61109010140000071219812874"))
}

func TestLooksLikeNIP(t *testing.T) {
	assert.True(t, LooksLikeNIP("NIP: 768-000-24-66"))
	assert.True(t, LooksLikeNIP("nip 7680002466"))
	assert.True(t, LooksLikeNIP("7680002466"))
	assert.True(t, LooksLikeNIP("768-000-24-66"))
	assert.False(t, LooksLikeNIP("768000246"))
	assert.False(t, LooksLikeNIP("ACME Industries"))
}

package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateNIPChecksum(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"valid bare", "7680002466", true},
		{"valid bare second", "5260250274", true},
		{"valid with dashes", "768-000-24-66", true},
		{"valid with spaces", "526 025 02 74", true},
		{"all zeros", "0000000000", false},
		{"remainder ten", "1234567890", false},
		{"wrong check digit", "7680002467", false},
		{"nine digits", "768000246", false},
		{"eleven digits", "76800024661", false},
		{"letter inside", "76800A2466", false},
		{"empty", "", false},
		{"separators only", "-- --", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ValidateNIPChecksum(tc.in))
		})
	}
}

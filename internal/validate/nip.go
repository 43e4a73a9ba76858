package validate

// Checksum weights for the first nine digits of a NIP.
var nipWeights = [9]int{6, 5, 7, 2, 3, 4, 5, 6, 7}

// ValidateNIPChecksum strips separators and verifies the weighted-sum mod 11
// checksum of a 10-digit Polish tax identifier. A weighted sum with
// remainder 10 is rejected outright: no valid checksum digit exists for it.
func ValidateNIPChecksum(s string) bool {
	digits := make([]int, 0, 10)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			if len(digits) == 10 {
				return false
			}
			digits = append(digits, int(c-'0'))
		case c == ' ', c == '-', c == '.', c == '\t':
		default:
			return false
		}
	}
	if len(digits) != 10 {
		return false
	}
	sum := 0
	nonZero := false
	for i, w := range nipWeights {
		sum += digits[i] * w
		if digits[i] != 0 {
			nonZero = true
		}
	}
	// An all-zero identifier satisfies the arithmetic but is never issued.
	if !nonZero {
		return false
	}
	rem := sum % 11
	if rem == 10 {
		return false
	}
	return rem == digits[9]
}

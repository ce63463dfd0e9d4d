// Package phone normalizes Saudi phone numbers so that numbers entered in the
// mobile app and numbers reported by the commerce platform can be compared.
package phone

import "strings"

const countryCode = "966"

// maxLen caps a normalized number at country code + 9 subscriber digits.
const maxLen = 12

// Normalize converts a raw phone string into a canonical form: non-digits are
// removed, international/domestic prefixes are collapsed and the Saudi country
// code is prepended when the number is recognizably a domestic mobile number.
// Unrecognized shapes are returned digits-only, truncated to 12 characters.
// Normalize is idempotent.
func Normalize(raw string) string {
	digits := digitsOnly(raw)
	trimmed := strings.TrimLeft(digits, "0")

	switch {
	case strings.HasPrefix(trimmed, countryCode):
		if len(trimmed) > maxLen {
			return trimmed[:maxLen]
		}
		return trimmed
	case strings.HasPrefix(digits, "0") && len(digits) >= 10:
		// domestic form 05XXXXXXXX
		return countryCode + digits[len(digits)-9:]
	case len(trimmed) == 9 && strings.HasPrefix(trimmed, "5"):
		// bare mobile number without any prefix
		return countryCode + trimmed
	default:
		if len(trimmed) > maxLen {
			return trimmed[:maxLen]
		}
		return trimmed
	}
}

// Last9 returns the last 9 digits of the given phone string. It is used for
// fuzzy matching against stored numbers whose normalization may differ.
// For inputs with at least 9 digits the result is always exactly 9 characters.
func Last9(raw string) string {
	digits := digitsOnly(raw)
	if len(digits) <= 9 {
		return digits
	}
	return digits[len(digits)-9:]
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

package utils

import "strings"

// PhoneDigits strips every non-digit from raw and reports whether what is
// left is a 10 digit number. A leading "+1" country code is dropped.
func PhoneDigits(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)

	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	if strings.HasPrefix(raw, "+1") {
		if len(digits) != 11 {
			return digits, false
		}
		digits = digits[1:]
	}
	return digits, len(digits) == 10
}

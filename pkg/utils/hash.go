package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashString creates a SHA-256 hash of the input string.
// Used to correlate log lines for a phone number without logging the number.
func HashString(input string) string {
	h := sha256.New()
	h.Write([]byte(input))

	return hex.EncodeToString(h.Sum(nil))
}

// ShortHash returns the first 12 hex characters of HashString
func ShortHash(input string) string {
	return HashString(input)[:12]
}

package services

import (
	"errors"
	"unicode/utf8"
)

// MaxErrorDetailLength bounds destination error text returned to callers.
// Destination response bodies are untrusted and can be large.
const MaxErrorDetailLength = 200

// ErrPrimaryNotConfigured is returned when no appointment inbox endpoint is set
var ErrPrimaryNotConfigured = errors.New("appointment inbox endpoint is not configured")

// PrimaryDeliveryError is returned when the appointment inbox rejects a
// request or cannot be reached
type PrimaryDeliveryError struct {
	Detail string
	Err    error
}

func (e *PrimaryDeliveryError) Error() string {
	return "primary delivery failed: " + e.Detail
}

func (e *PrimaryDeliveryError) Unwrap() error {
	return e.Err
}

// truncate cuts s to at most MaxErrorDetailLength runes.
func truncate(s string) string {
	if utf8.RuneCountInString(s) <= MaxErrorDetailLength {
		return s
	}
	const ellipsis = "..."
	runes := []rune(s)
	return string(runes[:MaxErrorDetailLength-len(ellipsis)]) + ellipsis
}

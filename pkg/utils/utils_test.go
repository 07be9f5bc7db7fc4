package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhoneDigits_Valid(t *testing.T) {
	inputs := []string{
		"5551234567",
		"555-123-4567",
		"(555) 123-4567",
		"555 123 4567",
		"555.123.4567",
		"+1 555 123 4567",
		"+1 (555) 123-4567",
		" +15551234567 ",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			digits, ok := PhoneDigits(in)
			assert.True(t, ok)
			assert.Equal(t, "5551234567", digits)
		})
	}
}

func TestPhoneDigits_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"555-1234",
		"555123456",
		"55512345678",
		"15551234567",
		"+44 20 7946 0958 1",
		"+1 555 123 456",
		"phone",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, ok := PhoneDigits(in)
			assert.False(t, ok)
		})
	}
}

func TestHashString(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", HashString(""))
	assert.Equal(t, HashString("5551234567"), HashString("5551234567"))
	assert.NotEqual(t, HashString("5551234567"), HashString("5551234568"))
	assert.Len(t, ShortHash("5551234567"), 12)
}

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	ok, reason := ValidatePassword("abc")
	assert.False(t, ok)
	assert.Equal(t, "Password must be at least 8 characters", reason)

	ok, reason = ValidatePassword("abcdefg1")
	assert.False(t, ok)
	assert.Equal(t, "Password must contain an uppercase letter", reason)

	ok, reason = ValidatePassword("ABCDEFG1")
	assert.False(t, ok)
	assert.Equal(t, "Password must contain a lowercase letter", reason)

	ok, reason = ValidatePassword("Abcdefgh")
	assert.False(t, ok)
	assert.Equal(t, "Password must contain a digit", reason)

	ok, reason = ValidatePassword("Abcdefg1")
	assert.True(t, ok)
	assert.Empty(t, reason)
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("farmer@farmlink.tt"))
	assert.True(t, ValidateEmail("a.b+c@sub-domain.example.com"))
	assert.False(t, ValidateEmail("not-an-email"))
	assert.False(t, ValidateEmail("missing@tld"))
	assert.False(t, ValidateEmail("@nobody.tt"))
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "scriptalert(1)/script", SanitizeInput(`<script>alert("1")</script>`))
	assert.Equal(t, "OBrien Farms", SanitizeInput("  O'Brien <Farms>  "))
	assert.Equal(t, "plain text", SanitizeInput("  plain text "))
	assert.Equal(t, "", SanitizeInput(""))
}

func TestValidateLocation(t *testing.T) {
	assert.True(t, ValidateLocation("43.6,-79.4"))
	assert.True(t, ValidateLocation("10.6918, -61.2225"))
	assert.False(t, ValidateLocation("not,coords"))
	assert.False(t, ValidateLocation(""))
	assert.False(t, ValidateLocation("10.0"))
	assert.False(t, ValidateLocation("10.0,-61.0,5.0"))
}

func TestParseLocation(t *testing.T) {
	lat, lon, ok := ParseLocation("10.6918,-61.2225")
	assert.True(t, ok)
	assert.InDelta(t, 10.6918, lat, 1e-9)
	assert.InDelta(t, -61.2225, lon, 1e-9)

	_, _, ok = ParseLocation("garbage")
	assert.False(t, ok)
}

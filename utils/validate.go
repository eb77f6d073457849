package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	upperRe = regexp.MustCompile(`[A-Z]`)
	lowerRe = regexp.MustCompile(`[a-z]`)
	digitRe = regexp.MustCompile(`[0-9]`)
	emailRe = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)
	stripRe = regexp.MustCompile(`[<>"']`)
)

// ValidatePassword returns the first failing rule's message.
func ValidatePassword(password string) (bool, string) {
	if len(password) < 8 {
		return false, "Password must be at least 8 characters"
	}
	if !upperRe.MatchString(password) {
		return false, "Password must contain an uppercase letter"
	}
	if !lowerRe.MatchString(password) {
		return false, "Password must contain a lowercase letter"
	}
	if !digitRe.MatchString(password) {
		return false, "Password must contain a digit"
	}
	return true, ""
}

func ValidateEmail(email string) bool {
	return emailRe.MatchString(email)
}

// SanitizeInput strips angle brackets and quotes, then surrounding whitespace.
func SanitizeInput(text string) string {
	if text == "" {
		return text
	}
	return strings.TrimSpace(stripRe.ReplaceAllString(text, ""))
}

// ValidateLocation accepts exactly "lat,lon" with both halves parseable as floats.
func ValidateLocation(location string) bool {
	if location == "" {
		return false
	}
	parts := strings.Split(location, ",")
	if len(parts) != 2 {
		return false
	}
	if _, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64); err != nil {
		return false
	}
	if _, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64); err != nil {
		return false
	}
	return true
}

// ParseLocation returns the coordinate pair for a valid location string.
func ParseLocation(location string) (lat, lon float64, ok bool) {
	parts := strings.Split(location, ",")
	if len(parts) != 2 {
		return 0, 0, false
	}
	lat, errLat := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lon, errLon := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errLat != nil || errLon != nil {
		return 0, 0, false
	}
	return lat, lon, true
}

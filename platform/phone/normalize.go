// Package phone provides libphonenumber backed utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// NormalizeE164 formats a phone number to E.164 using region as the default
// region for numbers without a leading "+". If parsing or validation fails, it
// returns the trimmed input.
func NormalizeE164(input, region string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed
	}

	number, err := phonenumbers.Parse(trimmed, strings.ToUpper(region))
	if err != nil {
		return trimmed
	}

	if !phonenumbers.IsValidNumber(number) {
		return trimmed
	}

	return phonenumbers.Format(number, phonenumbers.E164)
}

// IsValid reports whether libphonenumber accepts the number for region.
func IsValid(input, region string) bool {
	number, err := phonenumbers.Parse(strings.TrimSpace(input), strings.ToUpper(region))
	if err != nil {
		return false
	}
	return phonenumbers.IsValidNumber(number)
}

// FormatInternational renders the number in INTERNATIONAL format
// (e.g. "+254 712 345678"). ok is false when the input does not parse.
func FormatInternational(input, region string) (string, bool) {
	number, err := phonenumbers.Parse(strings.TrimSpace(input), strings.ToUpper(region))
	if err != nil {
		return "", false
	}
	return phonenumbers.Format(number, phonenumbers.INTERNATIONAL), true
}

// RegionForNumber returns the lowercase region id that libphonenumber assigns
// to an international number, or "" if it cannot be determined.
func RegionForNumber(input string) string {
	number, err := phonenumbers.Parse(strings.TrimSpace(input), "")
	if err != nil {
		return ""
	}
	return strings.ToLower(phonenumbers.GetRegionCodeForNumber(number))
}

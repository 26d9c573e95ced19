package provider

import "strings"

// NormalizePhone rewrites a phone number to international digit form using
// the configured country code: a leading zero is replaced by the country
// code, a bare national number gets the code prefixed, and numbers already
// carrying the code (with or without "+") pass through unchanged.
func NormalizePhone(phone, countryCode string) string {
	p := strings.TrimSpace(phone)
	p = strings.TrimPrefix(p, "+")

	if strings.HasPrefix(p, "0") {
		return countryCode + p[1:]
	}
	if !strings.HasPrefix(p, countryCode) {
		return countryCode + p
	}
	return p
}

// NormalizePhoneE164 is NormalizePhone with a leading "+", the form the
// Twilio APIs require.
func NormalizePhoneE164(phone, countryCode string) string {
	return "+" + NormalizePhone(phone, countryCode)
}

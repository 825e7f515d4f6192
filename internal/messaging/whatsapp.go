// Package messaging builds outbound click-to-chat links. It holds no state
// and never touches the document.
package messaging

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"
)

// LinkBuilder produces wa.me deep links with a default country code
// prepended to national numbers.
type LinkBuilder struct {
	countryCode string
}

// NewLinkBuilder constructs a builder. countryCode defaults to 55.
func NewLinkBuilder(countryCode string) *LinkBuilder {
	if countryCode == "" {
		countryCode = "55"
	}
	return &LinkBuilder{countryCode: countryCode}
}

// Build returns a wa.me URL for the phone and message text.
func (b *LinkBuilder) Build(phone, message string) (string, error) {
	normalized, err := b.Normalize(phone)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("https://wa.me/%s?text=%s", normalized, url.QueryEscape(message)), nil
}

// Normalize strips formatting from a phone number and prepends the default
// country code when it is missing.
func (b *LinkBuilder) Normalize(phone string) (string, error) {
	digits := digitsOnly(phone)
	if digits == "" {
		return "", fmt.Errorf("phone %q contains no digits", phone)
	}
	if strings.HasPrefix(digits, b.countryCode) {
		return digits, nil
	}
	return b.countryCode + digits, nil
}

func digitsOnly(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

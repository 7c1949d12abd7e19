// Package whatsapp builds wa.me chat links from the phone numbers stored on
// clients, defaulting to the Italian country code.
package whatsapp

import (
	"net/url"
	"strings"
)

const baseURL = "https://wa.me/"

// FormatPhone normalizes a phone number to +<country><number>.
func FormatPhone(phone string) string {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '+' {
			return r
		}
		return -1
	}, phone)
	if cleaned == "" {
		return ""
	}

	switch {
	case strings.HasPrefix(cleaned, "+39"):
		return cleaned
	case strings.HasPrefix(cleaned, "39") && len(cleaned) > 10:
		return "+" + cleaned
	case strings.HasPrefix(cleaned, "0"):
		return "+39" + cleaned[1:]
	case len(cleaned) >= 9 && !strings.HasPrefix(cleaned, "+"):
		return "+39" + cleaned
	case strings.HasPrefix(cleaned, "+"):
		return cleaned
	default:
		return "+" + cleaned
	}
}

// URL returns the chat link for phone, with an optional prefilled message.
func URL(phone, text string) string {
	formatted := FormatPhone(phone)
	u := baseURL + strings.Replace(formatted, "+", "", 1)
	if text != "" {
		u += "?text=" + encodeComponent(text)
	}
	return u
}

// componentUnescaper undoes the query escaping of the marks that
// encodeURIComponent leaves alone, and turns "+" back into %20.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeComponent percent-encodes s with the encodeURIComponent character
// set: only letters, digits and -_.!~*'() stay literal.
func encodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

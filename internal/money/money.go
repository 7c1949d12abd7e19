// Package money parses and formats the free-text prices and budgets stored on
// CRM records ("€ 250.000", "250,000", "250000").
package money

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Italian)

// ParseAmount strips "€", "." and "," and reads the leading number, ignoring
// any trailing text ("300000 trattabili" is 300000). ok is false when no
// number can be read.
func ParseAmount(s string) (float64, bool) {
	clean := strings.NewReplacer("€", "", ".", "", ",", "").Replace(s)
	clean = strings.TrimLeftFunc(clean, unicode.IsSpace)

	end := 0
	if end < len(clean) && (clean[end] == '+' || clean[end] == '-') {
		end++
	}
	digits := 0
	for end < len(clean) && clean[end] >= '0' && clean[end] <= '9' {
		end++
		digits++
	}
	if digits == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(clean[:end], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FormatNumber groups thousands with dots. Values that are not plain numbers
// once separators are removed are returned unchanged.
func FormatNumber(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	clean := strings.NewReplacer(".", "", ",", "").Replace(s)
	n, err := strconv.ParseInt(clean, 10, 64)
	if err != nil {
		return s
	}
	return printer.Sprintf("%d", n)
}

// FormatCurrency is FormatNumber prefixed with the euro sign.
func FormatCurrency(s string) string {
	f := FormatNumber(s)
	if f == "" {
		return ""
	}
	return "€ " + f
}

// Unformat removes the euro sign, spaces and thousands dots.
func Unformat(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '€' || r == '.' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

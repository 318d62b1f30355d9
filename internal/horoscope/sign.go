package horoscope

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Sign is a trimmed, lower-cased zodiac sign name.
type Sign string

// NormalizeSign trims and lower-cases raw. The set of twelve signs is not enforced here.
func NormalizeSign(raw string) (Sign, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrValidation
	}
	return Sign(strings.ToLower(trimmed)), nil
}

// Capitalized upper-cases the first rune and leaves the rest untouched.
func (s Sign) Capitalized() string {
	r, size := utf8.DecodeRuneInString(string(s))
	if r == utf8.RuneError {
		return string(s)
	}
	return string(unicode.ToUpper(r)) + string(s)[size:]
}

func (s Sign) String() string {
	return string(s)
}

package tei

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CleanTitle strips leading characters up to the first letter and
// capitalizes the rest. GROBID often leaves section numbers or bullets in
// front of keywords and headings: "21 Test" becomes "Test", "123" becomes "".
func CleanTitle(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimLeftFunc(s, func(r rune) bool { return !unicode.IsLetter(r) })
	return Capitalize(s)
}

// Capitalize upper-cases the first rune and lower-cases the remainder.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	// Casers are stateful; build one per call.
	return string(unicode.ToTitle(r)) + cases.Lower(language.Und).String(s[size:])
}

// isUpper reports whether s has at least one cased rune and no lower or
// title case runes.
func isUpper(s string) bool {
	cased := false
	for _, r := range s {
		switch {
		case unicode.IsLower(r), unicode.IsTitle(r):
			return false
		case unicode.IsUpper(r):
			cased = true
		}
	}
	return cased
}

// isLower reports whether s has at least one cased rune and no upper or
// title case runes.
func isLower(s string) bool {
	cased := false
	for _, r := range s {
		switch {
		case unicode.IsUpper(r), unicode.IsTitle(r):
			return false
		case unicode.IsLower(r):
			cased = true
		}
	}
	return cased
}

func isASCIILetter(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

package extract

import (
	"strings"
	"unicode"
)

// Clean strips punctuation and symbols, keeping letters, digits, underscores
// and whitespace, then collapses whitespace runs into single spaces.
func Clean(s string) string {
	kept := strings.Map(func(r rune) rune {
		if isWordRune(r) || isSpace(r) {
			return r
		}
		return -1
	}, s)

	return strings.Join(strings.FieldsFunc(kept, isSpace), " ")
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// isSpace also treats the ASCII information separators as whitespace
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

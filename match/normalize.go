package match

import (
	"strings"
	"unicode"
)

// lineBreaks flattens every line break style to a single space
var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// Normalize joins the lines of text with single spaces and lowercases every
// rune. The mapping is rune for rune, so offsets into the result are stable.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	return strings.Map(unicode.ToLower, lineBreaks.Replace(text))
}

// normalizeRunes returns the normalized text as runes for offset arithmetic
func normalizeRunes(text string) []rune {
	return []rune(Normalize(text))
}

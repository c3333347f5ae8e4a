package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent lowercases an identifier and drops its separators after
// splitting CamelCase words, e.g. "XMLParser" and "xml_parser" both
// become "xmlparser".
func NormalizeIdent(s string) string {
	return strings.ToLower(strings.Join(Tokenize(s), ""))
}

// Tokenize splits an identifier into words on separators ('_', '-', ' ',
// '.') and CamelCase boundaries:
//   - "customerName" -> ["customer", "Name"]
//   - "XMLParser" -> ["XML", "Parser"]
//   - "is_active" -> ["is", "active"]
func Tokenize(s string) []string {
	var (
		tokens  []string
		current strings.Builder
	)

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}

		if i > 0 && startsWord(runes, i) {
			flush()
		}

		current.WriteRune(r)
	}

	flush()

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}

// startsWord reports a CamelCase boundary before runes[i]: a lower to
// upper transition, or the last capital of an acronym followed by a
// lowercase rune.
func startsWord(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) || isSeparator(prev) {
		return false
	}

	if !unicode.IsUpper(prev) {
		return true
	}

	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}

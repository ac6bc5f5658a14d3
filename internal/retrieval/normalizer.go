// Package retrieval implements manual lookup and deterministic relevance
// ranking for the help assistant.
package retrieval

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxKeywords bounds scoring cost for rambling queries.
const maxKeywords = 8

// NormalizeText lowercases s, strips punctuation, and collapses whitespace.
// Letters, digits, the navigation arrow and hyphen survive; everything else
// becomes a space. Unicode-aware so Arabic content normalizes cleanly.
func NormalizeText(s string) string {
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '→' || r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// BuildKeywords normalizes the query and extracts up to maxKeywords tokens.
// Tokens of two runes or fewer are dropped; they are stopword-like noise in
// both English and Arabic. Order is insertion order but carries no meaning
// downstream.
func BuildKeywords(query string) []string {
	var keywords []string
	for _, tok := range strings.Fields(NormalizeText(query)) {
		if utf8.RuneCountInString(tok) <= 2 {
			continue
		}
		keywords = append(keywords, tok)
		if len(keywords) == maxKeywords {
			break
		}
	}
	return keywords
}

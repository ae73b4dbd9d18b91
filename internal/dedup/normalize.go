package dedup

import (
	"strings"
	"unicode"
)

// NormalizeText canonicalizes text for hashing and tokenization: lowercase,
// drop every character that is not an ASCII letter, digit or whitespace,
// collapse whitespace runs to a single space, trim. Deterministic and
// locale-independent; non-ASCII letters are dropped rather than folded.
func NormalizeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// tokenize splits normalized text into words with stopwords removed.
func tokenize(text string, stopwords map[string]struct{}) []string {
	fields := strings.Fields(NormalizeText(text))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, stop := stopwords[f]; stop {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// tokenSet returns the distinct tokens of text as a set.
func tokenSet(text string, stopwords map[string]struct{}) map[string]struct{} {
	tokens := tokenize(text, stopwords)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// Package textnorm normalizes free text so that corpus questions and user
// queries land in the same token space.
package textnorm

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMinTokenLength is the shortest token kept by Tokenize.
const DefaultMinTokenLength = 2

const (
	capitalSigma = 'Σ'
	finalSigma   = 'ς'
)

// Normalize lower-cases text and drops every rune that is neither a letter,
// a number nor whitespace. Whitespace is kept as-is, including runs of it.
//
// A capital sigma that ends a word lowers to the final form ς. The ASCII
// separators U+001C..U+001F count as whitespace.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text))
	for i, r := range runes {
		lr := unicode.ToLower(r)
		if r == capitalSigma && endsWord(runes, i) {
			lr = finalSigma
		}
		if keep(lr) {
			b.WriteRune(lr)
		}
	}
	return b.String()
}

// endsWord reports whether runes[i] follows a letter and is not followed by one.
func endsWord(runes []rune, i int) bool {
	if i == 0 || !unicode.IsLetter(runes[i-1]) {
		return false
	}
	return i+1 == len(runes) || !unicode.IsLetter(runes[i+1])
}

func keep(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || isSpace(r)
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// Tokenize splits normalized text on whitespace and keeps tokens of at least
// minLen runes. A minLen below 1 is treated as 1.
func Tokenize(normalized string, minLen int) []string {
	if minLen < 1 {
		minLen = 1
	}
	fields := strings.FieldsFunc(normalized, isSpace)
	if len(fields) == 0 {
		return nil
	}
	out := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) < minLen {
			continue
		}
		out = append(out, f)
	}
	return out
}

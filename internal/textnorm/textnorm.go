// Package textnorm canonicalizes typed answers and expected-answer variants
// so they can be compared independently of case, punctuation and spacing.
package textnorm

import (
	"strings"
	"unicode"
)

// VariantSeparator delimits alternative spellings in an expected answer.
const VariantSeparator = "/"

// isWordRune reports whether r is a Latin or Cyrillic letter or an ASCII digit.
func isWordRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r >= 'а' && r <= 'я', r >= 'А' && r <= 'Я', r == 'ё', r == 'Ё':
		return true
	}
	return false
}

// Normalize returns the canonical form of s: every run of characters that are
// not letters or digits becomes a single space, the result is trimmed and
// lowercased.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pendingSpace := false
	for _, r := range s {
		if !isWordRune(r) {
			pendingSpace = b.Len() > 0
			continue
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// NormalizeCompact is Normalize with all whitespace removed, so "ice cream",
// "ice-cream" and "icecream" compare equal.
func NormalizeCompact(s string) string {
	return strings.ReplaceAll(Normalize(s), " ", "")
}

// SplitVariants splits expected on "/" and normalizes each variant.
// Variants that normalize to the empty string are dropped.
func SplitVariants(expected string) []string {
	if expected == "" {
		return nil
	}
	parts := strings.Split(expected, VariantSeparator)
	variants := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := Normalize(p); v != "" {
			variants = append(variants, v)
		}
	}
	return variants
}

// CheckVariants reports whether answer matches any variant of expected.
// An empty expected value never matches.
func CheckVariants(answer, expected string) bool {
	if expected == "" {
		return false
	}
	norm := Normalize(answer)
	for _, v := range strings.Split(expected, VariantSeparator) {
		if Normalize(v) == norm {
			return true
		}
	}
	return false
}

// FirstVariant returns the first "/"-separated variant of expected, trimmed
// but otherwise as written.
func FirstVariant(expected string) string {
	first, _, _ := strings.Cut(expected, VariantSeparator)
	return strings.TrimSpace(first)
}

package engine

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeRune canonicalizes a character for comparison: accents are
// stripped (NFD, combining marks removed) and the result is uppercased.
func NormalizeRune(r rune) rune {
	// transform.Chain keeps state, so each call gets its own chain.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	s, _, err := transform.String(t, string(r))
	if err != nil || s == "" {
		return unicode.ToUpper(r)
	}
	base, _ := utf8.DecodeRuneInString(s)
	return unicode.ToUpper(base)
}

// NormalizeLetter normalizes the first character of s. Empty input yields 0.
func NormalizeLetter(s string) rune {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError {
		return 0
	}
	return NormalizeRune(r)
}

// IsVowel reports whether a normalized letter is one of A, E, I, O, U.
func IsVowel(r rune) bool {
	switch r {
	case 'A', 'E', 'I', 'O', 'U':
		return true
	}
	return false
}

// IsConsonant reports whether a normalized rune is a letter and not a vowel.
func IsConsonant(r rune) bool {
	return unicode.IsLetter(r) && !IsVowel(r)
}

// PhraseLetters returns the distinct normalized letters of text.
// Spaces, apostrophes and punctuation are never part of the set.
func PhraseLetters(text string) map[rune]struct{} {
	set := make(map[rune]struct{})
	for _, r := range text {
		n := NormalizeRune(r)
		if unicode.IsLetter(n) {
			set[n] = struct{}{}
		}
	}
	return set
}

// CountLetter counts the characters of text equal to letter after normalization.
func CountLetter(text string, letter rune) int {
	count := 0
	for _, r := range text {
		if r == ' ' {
			continue
		}
		if NormalizeRune(r) == letter {
			count++
		}
	}
	return count
}

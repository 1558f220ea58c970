package text

import "unicode"

// IsWordChar reports whether r counts as a word character for whole-word
// matching: a Unicode letter, a digit, or the underscore.
func IsWordChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// IsLetterOrDigit reports whether r is a Unicode letter or digit. Word
// selection expands across these; unlike whole-word matching it excludes
// the underscore.
func IsLetterOrDigit(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

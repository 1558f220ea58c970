// Package text provides search normalization and word classification for
// page text.
//
// This package turns raw extracted text into the normalized form used for
// matching, while preserving a lossless mapping back to the original
// character offsets.
//
// # Normalization
//
// [Normalize] collapses whitespace runs, trims the ends, and optionally
// strips diacritical marks and folds case:
//
//	view := text.Normalize("  Crème  Brûlée ", text.Options{})
//	// view.Normalized == "creme brulee"
//
// The returned [NormalizedView] carries an index map with exactly one entry
// per normalized character, each holding the character offset in the
// original string that produced it. Multi-character case-fold expansions
// (such as ß to "ss") map every expanded character back to the same source
// offset, so match spans in normalized space always translate to valid
// original spans.
//
// # Word Classification
//
// Two predicates serve the match and selection layers:
//
//   - [IsWordChar] - letter, digit, or underscore; bounds whole-word search
//   - [IsLetterOrDigit] - letter or digit; drives word-selection expansion
package text

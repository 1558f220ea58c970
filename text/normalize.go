package text

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Options controls how text is normalized before matching
type Options struct {
	// MatchCase preserves letter case; when false, characters are
	// case-folded so "WORLD" matches "world"
	MatchCase bool

	// MatchWholeWord restricts matches to whole words bounded by non-word
	// characters. It does not change normalization output; the search
	// layer applies the boundary check.
	MatchWholeWord bool

	// MatchDiacritics preserves diacritical marks; when false, characters
	// are decomposed and combining marks are stripped so "creme" matches
	// "crème"
	MatchDiacritics bool
}

// NormalizedView is the result of normalizing a string: the normalized text
// and an index map with exactly one entry per normalized character. Entry i
// holds the character offset in the original string that produced the i-th
// normalized character. The map is non-decreasing and every entry is a
// valid offset into the original.
type NormalizedView struct {
	Normalized string
	IndexMap   []int
}

// Len returns the normalized length in characters
func (v NormalizedView) Len() int {
	return len(v.IndexMap)
}

// Normalize produces the search-normalized form of text under the given
// options. Whitespace runs collapse to a single space recording the run's
// first original offset; leading and trailing whitespace is trimmed with
// the map corrected; remaining characters are optionally stripped of
// combining marks and case-folded, appending one index-map entry per
// emitted character. Pure function, no side effects.
func Normalize(input string, opts Options) NormalizedView {
	runes := []rune(input)

	out := make([]rune, 0, len(runes))
	indexMap := make([]int, 0, len(runes))

	var folder *cases.Caser
	if !opts.MatchCase {
		c := cases.Fold()
		folder = &c
	}

	i := 0
	for i < len(runes) {
		if unicode.IsSpace(runes[i]) {
			runStart := i
			for i < len(runes) && unicode.IsSpace(runes[i]) {
				i++
			}
			out = append(out, ' ')
			indexMap = append(indexMap, runStart)
			continue
		}

		for _, r := range transformRune(runes[i], opts, folder) {
			out = append(out, r)
			indexMap = append(indexMap, i)
		}
		i++
	}

	// Whitespace runs are already collapsed, so at most one space can
	// remain at either end.
	if len(out) > 0 && out[0] == ' ' {
		out = out[1:]
		indexMap = indexMap[1:]
	}
	if len(out) > 0 && out[len(out)-1] == ' ' {
		out = out[:len(out)-1]
		indexMap = indexMap[:len(indexMap)-1]
	}

	return NormalizedView{
		Normalized: string(out),
		IndexMap:   indexMap,
	}
}

// transformRune applies diacritic stripping and case folding to a single
// source character, returning the emitted characters. A character that is
// itself a combining mark vanishes entirely under stripping.
func transformRune(r rune, opts Options, folder *cases.Caser) []rune {
	var rs []rune

	if opts.MatchDiacritics {
		rs = []rune{r}
	} else {
		for _, d := range norm.NFD.String(string(r)) {
			if unicode.Is(unicode.Mn, d) {
				continue
			}
			rs = append(rs, d)
		}
		if len(rs) == 0 {
			return nil
		}
	}

	if folder != nil {
		var folded []rune
		for _, d := range rs {
			folded = append(folded, []rune(folder.String(string(d)))...)
		}
		rs = folded
	}

	return rs
}

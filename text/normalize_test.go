package text

import (
	"testing"
	"unicode/utf8"
)

func TestNormalize_MapMatchesLength(t *testing.T) {
	inputs := []string{
		"",
		"hello",
		"  Hello   world  ",
		"Crème Brûlée",
		"STRASSE und Straße",
		"tab\tand\nnewline",
		"日本語 テスト",
		"á combining",
		"́",
		"   ",
	}
	optionSets := []Options{
		{},
		{MatchCase: true},
		{MatchDiacritics: true},
		{MatchCase: true, MatchDiacritics: true},
	}

	for _, input := range inputs {
		for _, opts := range optionSets {
			view := Normalize(input, opts)

			if got := utf8.RuneCountInString(view.Normalized); got != len(view.IndexMap) {
				t.Errorf("Normalize(%q, %+v): %d characters but %d map entries",
					input, opts, got, len(view.IndexMap))
			}

			limit := utf8.RuneCountInString(input)
			prev := -1
			for i, idx := range view.IndexMap {
				if idx < 0 || idx >= limit {
					t.Errorf("Normalize(%q, %+v): IndexMap[%d] = %d out of range [0,%d)",
						input, opts, i, idx, limit)
				}
				if idx < prev {
					t.Errorf("Normalize(%q, %+v): IndexMap not non-decreasing at %d", input, opts, i)
				}
				prev = idx
			}
		}
	}
}

func TestNormalize_WhitespaceCollapse(t *testing.T) {
	view := Normalize("a  \t b", Options{MatchCase: true, MatchDiacritics: true})

	if view.Normalized != "a b" {
		t.Fatalf("Normalized = %q, want %q", view.Normalized, "a b")
	}

	// The collapsed space maps to the first original index of the run.
	want := []int{0, 1, 5}
	for i, w := range want {
		if view.IndexMap[i] != w {
			t.Errorf("IndexMap[%d] = %d, want %d", i, view.IndexMap[i], w)
		}
	}
}

func TestNormalize_Trim(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		first int // original offset of the first surviving character
	}{
		{"leading", "   abc", "abc", 3},
		{"trailing", "abc   ", "abc", 0},
		{"both", "  ab  ", "ab", 2},
		{"only whitespace", " \t\n ", "", 0},
		{"empty", "", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := Normalize(tt.input, Options{MatchCase: true, MatchDiacritics: true})
			if view.Normalized != tt.want {
				t.Fatalf("Normalized = %q, want %q", view.Normalized, tt.want)
			}
			if tt.want != "" && view.IndexMap[0] != tt.first {
				t.Errorf("IndexMap[0] = %d, want %d", view.IndexMap[0], tt.first)
			}
		})
	}
}

func TestNormalize_CaseFolding(t *testing.T) {
	view := Normalize("WORLD", Options{MatchDiacritics: true})
	if view.Normalized != "world" {
		t.Errorf("folded = %q, want %q", view.Normalized, "world")
	}

	preserved := Normalize("WORLD", Options{MatchCase: true, MatchDiacritics: true})
	if preserved.Normalized != "WORLD" {
		t.Errorf("case-preserving = %q, want %q", preserved.Normalized, "WORLD")
	}
}

func TestNormalize_FoldExpansion(t *testing.T) {
	// ß folds to "ss"; both emitted characters map to the ß's offset.
	view := Normalize("aß", Options{MatchDiacritics: true})

	if view.Normalized != "ass" {
		t.Fatalf("Normalized = %q, want %q", view.Normalized, "ass")
	}
	want := []int{0, 1, 1}
	for i, w := range want {
		if view.IndexMap[i] != w {
			t.Errorf("IndexMap[%d] = %d, want %d", i, view.IndexMap[i], w)
		}
	}
}

func TestNormalize_DiacriticStripping(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  Options
		want  string
	}{
		{"strip composed", "café", Options{MatchCase: true}, "cafe"},
		{"keep composed", "café", Options{MatchCase: true, MatchDiacritics: true}, "café"},
		{"strip and fold", "Crème Brûlée", Options{}, "creme brulee"},
		{"combining sequence", "áb", Options{MatchCase: true}, "ab"},
		{"lone combining mark", "́", Options{MatchCase: true}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := Normalize(tt.input, tt.opts)
			if view.Normalized != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, view.Normalized, tt.want)
			}
		})
	}
}

func TestNormalize_MapPointsToOriginal(t *testing.T) {
	input := "  Héllo   Wörld "
	view := Normalize(input, Options{})

	if view.Normalized != "hello world" {
		t.Fatalf("Normalized = %q, want %q", view.Normalized, "hello world")
	}

	// Every mapped offset must land on the original character that produced
	// the normalized one; spot-check the word starts.
	runes := []rune(input)
	if runes[view.IndexMap[0]] != 'H' {
		t.Errorf("first character maps to %q, want 'H'", runes[view.IndexMap[0]])
	}
	wStart := view.IndexMap[6]
	if runes[wStart] != 'W' {
		t.Errorf("seventh character maps to %q, want 'W'", runes[wStart])
	}
}

func TestIsWordChar(t *testing.T) {
	tests := []struct {
		r    rune
		want bool
	}{
		{'a', true},
		{'Z', true},
		{'5', true},
		{'_', true},
		{'é', true},
		{'日', true},
		{' ', false},
		{'-', false},
		{'.', false},
		{'\t', false},
	}

	for _, tt := range tests {
		if got := IsWordChar(tt.r); got != tt.want {
			t.Errorf("IsWordChar(%q) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestIsLetterOrDigit(t *testing.T) {
	if !IsLetterOrDigit('a') || !IsLetterOrDigit('7') || !IsLetterOrDigit('語') {
		t.Error("letters and digits should satisfy IsLetterOrDigit")
	}
	if IsLetterOrDigit('_') {
		t.Error("underscore is not a selection word character")
	}
	if IsLetterOrDigit(' ') || IsLetterOrDigit('-') {
		t.Error("separators should not satisfy IsLetterOrDigit")
	}
}

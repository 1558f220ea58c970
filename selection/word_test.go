package selection

import (
	"testing"

	"github.com/tsawler/textlayer/layout"
	"github.com/tsawler/textlayer/model"
)

func TestWordAtSimple(t *testing.T) {
	corpus := twoLineCorpus()

	word, ok := WordAt(corpus, 0, 2)
	if !ok {
		t.Fatal("expected a word at the click position")
	}
	if word.Text != "Hello" {
		t.Errorf("expected word %q, got %q", "Hello", word.Text)
	}
	if word.Start != 0 || word.End != 5 {
		t.Errorf("expected span [0,5), got [%d,%d)", word.Start, word.End)
	}
	if word.Range.Anchor.FragmentIndex != 0 || word.Range.Anchor.CharOffset != 0 {
		t.Errorf("unexpected anchor %+v", word.Range.Anchor)
	}
	if word.Range.Focus.FragmentIndex != 0 || word.Range.Focus.CharOffset != 5 {
		t.Errorf("unexpected focus %+v", word.Range.Focus)
	}
}

func TestWordAtEndOfFragment(t *testing.T) {
	corpus := twoLineCorpus()

	// Clicking just past the last character still picks the word ending
	// there.
	word, ok := WordAt(corpus, 0, 5)
	if !ok {
		t.Fatal("expected a word at the fragment end")
	}
	if word.Text != "Hello" {
		t.Errorf("expected word %q, got %q", "Hello", word.Text)
	}
}

func TestWordAtNonWordCharacter(t *testing.T) {
	corpus := layout.BuildCorpus(1, []model.FragmentInput{
		{Text: "a - b", Rect: model.Rect{X: 0, Y: 0, Width: 50, Height: 12}},
	})

	if _, ok := WordAt(corpus, 0, 2); ok {
		t.Error("expected no word on a dash surrounded by spaces")
	}
}

func TestWordAtStitchesAcrossFragments(t *testing.T) {
	// "frag" and "ment" sit on the same line two units apart, narrower
	// than the average character, so they form one logical word.
	corpus := layout.BuildCorpus(1, []model.FragmentInput{
		{Text: "frag", Rect: model.Rect{X: 0, Y: 0, Width: 40, Height: 12}},
		{Text: "ment", Rect: model.Rect{X: 42, Y: 0, Width: 40, Height: 12}},
	})

	word, ok := WordAt(corpus, 0, 1)
	if !ok {
		t.Fatal("expected a stitched word")
	}
	if word.Text != "fragment" {
		t.Errorf("expected word %q, got %q", "fragment", word.Text)
	}
	// The flat span covers the separator between the fragments.
	if word.Start != 0 || word.End != 9 {
		t.Errorf("expected span [0,9), got [%d,%d)", word.Start, word.End)
	}

	// Clicking the right half lands on the same word.
	word, ok = WordAt(corpus, 1, 2)
	if !ok {
		t.Fatal("expected a stitched word from the right half")
	}
	if word.Text != "fragment" {
		t.Errorf("expected word %q, got %q", "fragment", word.Text)
	}
}

func TestWordAtStitchesMultipleHops(t *testing.T) {
	corpus := layout.BuildCorpus(1, []model.FragmentInput{
		{Text: "con", Rect: model.Rect{X: 0, Y: 0, Width: 30, Height: 12}},
		{Text: "cat", Rect: model.Rect{X: 32, Y: 0, Width: 30, Height: 12}},
		{Text: "enation", Rect: model.Rect{X: 64, Y: 0, Width: 70, Height: 12}},
	})

	word, ok := WordAt(corpus, 1, 1)
	if !ok {
		t.Fatal("expected a stitched word across three fragments")
	}
	if word.Text != "concatenation" {
		t.Errorf("expected word %q, got %q", "concatenation", word.Text)
	}
	if word.Range.Anchor.FragmentIndex != 0 || word.Range.Focus.FragmentIndex != 2 {
		t.Errorf("expected range across fragments 0..2, got %+v", word.Range)
	}
}

func TestWordAtNoStitchAcrossWideGap(t *testing.T) {
	corpus := layout.BuildCorpus(1, []model.FragmentInput{
		{Text: "frag", Rect: model.Rect{X: 0, Y: 0, Width: 40, Height: 12}},
		{Text: "ment", Rect: model.Rect{X: 100, Y: 0, Width: 40, Height: 12}},
	})

	word, ok := WordAt(corpus, 0, 1)
	if !ok {
		t.Fatal("expected a word")
	}
	if word.Text != "frag" {
		t.Errorf("expected the gap to stop stitching, got %q", word.Text)
	}
}

func TestWordAtNoStitchAcrossLines(t *testing.T) {
	corpus := layout.BuildCorpus(1, []model.FragmentInput{
		{Text: "frag", Rect: model.Rect{X: 0, Y: 0, Width: 40, Height: 12}},
		{Text: "ment", Rect: model.Rect{X: 42, Y: 20, Width: 40, Height: 12}},
	})

	word, ok := WordAt(corpus, 0, 1)
	if !ok {
		t.Fatal("expected a word")
	}
	if word.Text != "frag" {
		t.Errorf("expected the line break to stop stitching, got %q", word.Text)
	}
}

func TestWordAtNoStitchOnNonWordBoundary(t *testing.T) {
	corpus := layout.BuildCorpus(1, []model.FragmentInput{
		{Text: "frag", Rect: model.Rect{X: 0, Y: 0, Width: 40, Height: 12}},
		{Text: "-ment", Rect: model.Rect{X: 42, Y: 0, Width: 50, Height: 12}},
	})

	word, ok := WordAt(corpus, 0, 1)
	if !ok {
		t.Fatal("expected a word")
	}
	if word.Text != "frag" {
		t.Errorf("expected the dash to stop stitching, got %q", word.Text)
	}
}

func TestWordAtOutOfRange(t *testing.T) {
	corpus := twoLineCorpus()

	if _, ok := WordAt(corpus, -1, 0); ok {
		t.Error("expected failure for a negative fragment index")
	}
	if _, ok := WordAt(corpus, 99, 0); ok {
		t.Error("expected failure for a fragment index past the end")
	}
	if _, ok := WordAt(nil, 0, 0); ok {
		t.Error("expected failure for a nil corpus")
	}
}

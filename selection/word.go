package selection

import (
	"strings"

	"github.com/tsawler/textlayer/model"
	"github.com/tsawler/textlayer/text"
)

// WordConfig holds configuration for word expansion
type WordConfig struct {
	// LineTolerance is the maximum vertical delta between fragment
	// rectangles still considered the same visual line (default: 3)
	LineTolerance float64

	// GapFactor caps the horizontal gap between adjacent fragments as a
	// multiple of the page's average character width; wider gaps stop
	// word stitching (default: 1.5)
	GapFactor float64
}

// DefaultWordConfig returns sensible default configuration
func DefaultWordConfig() WordConfig {
	return WordConfig{
		LineTolerance: 3.0,
		GapFactor:     1.5,
	}
}

// Word is a resolved word selection. Start and End are character offsets
// into the page's full text and may span fragment separators when the word
// was stitched across fragments; Text carries the logical word with those
// separators removed.
type Word struct {
	Start int
	End   int
	Text  string
	Range model.SelectionRange
}

// WordAt expands the position (fragmentIndex, charOffset) to the word
// around it using the default configuration. ok is false when the position
// touches no word character.
func WordAt(corpus *model.PageTextCorpus, fragmentIndex, charOffset int) (Word, bool) {
	return WordAtWithConfig(corpus, fragmentIndex, charOffset, DefaultWordConfig())
}

// WordAtWithConfig expands a resolved position to the surrounding word.
// Expansion walks letters and digits in both directions and crosses
// fragment boundaries when the neighboring fragment continues the same
// visual line within a small horizontal gap, so words split across
// fragments come back as one logical word.
func WordAtWithConfig(corpus *model.PageTextCorpus, fragmentIndex, charOffset int, config WordConfig) (Word, bool) {
	if corpus == nil || fragmentIndex < 0 || fragmentIndex >= len(corpus.Fragments) {
		return Word{}, false
	}

	runes := []rune(corpus.Fragments[fragmentIndex].Text)
	if len(runes) == 0 {
		return Word{}, false
	}

	// Pick the pivot character: the one at the offset, or the one before
	// it when the click landed just past a word's end.
	pivot := charOffset
	if pivot >= len(runes) {
		pivot = len(runes) - 1
	}
	if pivot < 0 {
		pivot = 0
	}
	if !text.IsLetterOrDigit(runes[pivot]) {
		if pivot == 0 || !text.IsLetterOrDigit(runes[pivot-1]) {
			return Word{}, false
		}
		pivot--
	}

	maxGap := config.GapFactor * corpus.AverageCharWidth()

	startFrag, startOff := expandLeft(corpus, fragmentIndex, pivot, config.LineTolerance, maxGap)
	endFrag, endOff := expandRight(corpus, fragmentIndex, pivot+1, config.LineTolerance, maxGap)

	w := Word{
		Start: corpus.Fragments[startFrag].Start + startOff,
		End:   corpus.Fragments[endFrag].Start + endOff,
		Text:  joinWord(corpus, startFrag, startOff, endFrag, endOff),
		Range: model.SelectionRange{
			Anchor: model.SelectionEndpoint{PageNumber: corpus.PageNumber, FragmentIndex: startFrag, CharOffset: startOff},
			Focus:  model.SelectionEndpoint{PageNumber: corpus.PageNumber, FragmentIndex: endFrag, CharOffset: endOff},
		},
	}
	return w, true
}

// expandLeft walks word characters leftward from (fragIndex, offset),
// hopping to the previous fragment while stitching conditions hold.
func expandLeft(corpus *model.PageTextCorpus, fragIndex, offset int, lineTolerance, maxGap float64) (int, int) {
	for {
		runes := []rune(corpus.Fragments[fragIndex].Text)
		for offset > 0 && text.IsLetterOrDigit(runes[offset-1]) {
			offset--
		}
		if offset > 0 {
			return fragIndex, offset
		}
		prev := fragIndex - 1
		if prev < 0 || !stitchable(corpus.Fragments[prev], corpus.Fragments[fragIndex], lineTolerance, maxGap) {
			return fragIndex, offset
		}
		prevRunes := []rune(corpus.Fragments[prev].Text)
		if len(prevRunes) == 0 || !text.IsLetterOrDigit(prevRunes[len(prevRunes)-1]) {
			return fragIndex, offset
		}
		fragIndex = prev
		offset = len(prevRunes)
	}
}

// expandRight walks word characters rightward from (fragIndex, offset),
// hopping to the next fragment while stitching conditions hold.
func expandRight(corpus *model.PageTextCorpus, fragIndex, offset int, lineTolerance, maxGap float64) (int, int) {
	for {
		runes := []rune(corpus.Fragments[fragIndex].Text)
		for offset < len(runes) && text.IsLetterOrDigit(runes[offset]) {
			offset++
		}
		if offset < len(runes) {
			return fragIndex, offset
		}
		next := fragIndex + 1
		if next >= len(corpus.Fragments) || !stitchable(corpus.Fragments[fragIndex], corpus.Fragments[next], lineTolerance, maxGap) {
			return fragIndex, offset
		}
		nextRunes := []rune(corpus.Fragments[next].Text)
		if len(nextRunes) == 0 || !text.IsLetterOrDigit(nextRunes[0]) {
			return fragIndex, offset
		}
		fragIndex = next
		offset = 0
	}
}

// stitchable reports whether two horizontally adjacent fragments continue
// the same visual line closely enough to carry one word across them.
func stitchable(left, right model.TextFragment, lineTolerance, maxGap float64) bool {
	if absFloat64(left.Rect.Y-right.Rect.Y) > lineTolerance {
		return false
	}
	gap := right.Rect.Left() - left.Rect.Right()
	return gap < maxGap
}

// joinWord concatenates the covered portion of each fragment's text without
// the separators the flat page text inserts between fragments.
func joinWord(corpus *model.PageTextCorpus, startFrag, startOff, endFrag, endOff int) string {
	if startFrag == endFrag {
		runes := []rune(corpus.Fragments[startFrag].Text)
		return string(runes[startOff:endOff])
	}
	var sb strings.Builder
	for i := startFrag; i <= endFrag; i++ {
		runes := []rune(corpus.Fragments[i].Text)
		switch i {
		case startFrag:
			sb.WriteString(string(runes[startOff:]))
		case endFrag:
			sb.WriteString(string(runes[:endOff]))
		default:
			sb.WriteString(string(runes))
		}
	}
	return sb.String()
}

func absFloat64(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

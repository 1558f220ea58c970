package search

import (
	"github.com/tsawler/textlayer/layout"
	"github.com/tsawler/textlayer/model"
	"github.com/tsawler/textlayer/text"
)

// Config holds configuration for the search engine
type Config struct {
	// MatchCase requires exact letter case
	MatchCase bool

	// MatchWholeWord requires matches to be bounded by non-word characters.
	// A word character is a Unicode letter, digit, or underscore.
	MatchWholeWord bool

	// MatchDiacritics requires diacritical marks to match exactly; when
	// false, "creme" finds "crème"
	MatchDiacritics bool

	// AllowOverlappingMatches resumes each scan one character past the
	// previous match start instead of past the whole match, so overlapping
	// occurrences are all reported (default: true)
	AllowOverlappingMatches bool

	// MinRectSize discards highlight rectangles whose width or height
	// falls below this threshold before merging (default: 0.1)
	MinRectSize float64

	// Merge configures per-line rectangle merging for match highlights
	Merge layout.MergeConfig
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		AllowOverlappingMatches: true,
		MinRectSize:             0.1,
		Merge:                   layout.DefaultMergeConfig(),
	}
}

// Engine searches page corpora for query occurrences
type Engine struct {
	config Config
	merger *layout.LineMerger
}

// NewEngine creates a search engine with default configuration
func NewEngine() *Engine {
	return NewEngineWithConfig(DefaultConfig())
}

// NewEngineWithConfig creates a search engine with custom configuration
func NewEngineWithConfig(config Config) *Engine {
	return &Engine{
		config: config,
		merger: layout.NewLineMergerWithConfig(config.Merge),
	}
}

// Config returns the engine's configuration
func (e *Engine) Config() Config {
	return e.config
}

// Search finds every occurrence of query in the page's text. The query and
// the corpus text are normalized with the same options; matched spans are
// mapped back to original character offsets through the index map, and each
// match carries its merged highlight rectangles. An empty or
// all-whitespace query yields no matches.
func (e *Engine) Search(corpus *model.PageTextCorpus, query string) []model.Match {
	if corpus == nil {
		return nil
	}

	opts := text.Options{
		MatchCase:       e.config.MatchCase,
		MatchWholeWord:  e.config.MatchWholeWord,
		MatchDiacritics: e.config.MatchDiacritics,
	}

	queryView := text.Normalize(query, opts)
	if queryView.Normalized == "" {
		return nil
	}
	textView := text.Normalize(corpus.FullText, opts)

	queryRunes := []rune(queryView.Normalized)
	textRunes := []rune(textView.Normalized)
	queryLen := len(queryRunes)

	var matches []model.Match
	from := 0
	for {
		idx := indexRunes(textRunes, queryRunes, from)
		if idx < 0 {
			break
		}

		if e.config.MatchWholeWord && !isWholeWord(textRunes, idx, queryLen) {
			// Rejected candidate: resume just past the candidate start.
			from = idx + 1
			continue
		}

		originalStart := textView.IndexMap[idx]
		originalEnd := textView.IndexMap[idx+queryLen-1] + 1

		matches = append(matches, model.Match{
			PageNumber: corpus.PageNumber,
			Start:      originalStart,
			End:        originalEnd,
			Text:       corpus.TextIn(originalStart, originalEnd),
			Rects:      e.SpanRects(corpus, originalStart, originalEnd),
		})

		if e.config.AllowOverlappingMatches {
			from = idx + 1
		} else {
			from = idx + queryLen
		}
	}

	return matches
}

// SearchAll runs Search over every indexed page, keyed by page number.
// Pages without a corpus are skipped.
func (e *Engine) SearchAll(index *model.DocumentTextIndex, query string) map[int][]model.Match {
	results := make(map[int][]model.Match)
	for _, number := range index.PageNumbers() {
		corpus := index.Page(number)
		if corpus == nil {
			continue
		}
		if matches := e.Search(corpus, query); len(matches) > 0 {
			results[number] = matches
		}
	}
	return results
}

// indexRunes returns the index of the first occurrence of needle in
// haystack at or after from, or -1. Offsets are character positions, which
// is why this works on rune slices rather than delegating to strings.Index.
func indexRunes(haystack, needle []rune, from int) int {
	if from < 0 {
		from = 0
	}
	last := len(haystack) - len(needle)
	for i := from; i <= last; i++ {
		found := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				found = false
				break
			}
		}
		if found {
			return i
		}
	}
	return -1
}

// isWholeWord checks that the characters immediately surrounding the
// candidate span, when present, are non-word characters.
func isWholeWord(runes []rune, idx, length int) bool {
	if idx > 0 && text.IsWordChar(runes[idx-1]) {
		return false
	}
	if after := idx + length; after < len(runes) && text.IsWordChar(runes[after]) {
		return false
	}
	return true
}

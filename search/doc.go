// Package search finds query occurrences in page text and produces
// highlight geometry for them.
//
// The [Engine] normalizes the query and the page corpus with the same
// options, scans the normalized text for every occurrence, maps each match
// back to original character offsets through the normalizer's index map,
// and resolves the matched span into merged per-line rectangles.
//
// # Searching
//
//	engine := search.NewEngine()
//	matches := engine.Search(corpus, "needle")
//	for _, m := range matches {
//		fmt.Println(m.Text, m.Rects)
//	}
//
// Matching behavior is controlled by [Config]:
//
//	config := search.DefaultConfig()
//	config.MatchCase = true
//	config.MatchWholeWord = true
//	engine := search.NewEngineWithConfig(config)
//
// # Overlapping Matches
//
// By default the scan resumes one character past each match start rather
// than past the whole match, so a query like "aa" reports two occurrences
// in "aaa". This mirrors long-standing viewer behavior; set
// Config.AllowOverlappingMatches to false for disjoint occurrences.
//
// # Highlight Geometry
//
// A fragment fully inside a match contributes its rectangle unchanged. A
// fragment the match only partially covers contributes a slice of its
// rectangle proportional to the covered display cells. This is a
// fixed-width-glyph approximation: the engine never sees per-glyph
// metrics, so proportional slicing is the best available estimate.
package search

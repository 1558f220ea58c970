// Package layout builds per-page text indexes and merges fragment geometry
// into line-level highlight rectangles.
//
// This package owns the two structural operations every higher layer relies
// on: turning an ordered fragment sequence into a flat per-page corpus, and
// collapsing many fragment-level rectangles into one rectangle per visual
// line.
//
// # Corpus Building
//
// [BuildCorpus] assembles a [model.PageTextCorpus] from the fragments a
// content source delivers for one page:
//
//	corpus := layout.BuildCorpus(pageNum, fragments)
//	frags := corpus.FragmentsOverlapping(start, end)
//
// Fragment texts are joined with single-space separators and each fragment's
// character offset range into the flat text is recorded as it lands.
//
// # Line Merging
//
// The [LineMerger] groups rectangles whose vertical positions fall within
// a tolerance and emits one bounding rectangle per group:
//
//	merger := layout.NewLineMerger()
//	lineRects := merger.MergeIntoLines(rects)
//
// Custom tolerances go through [MergeConfig]:
//
//	config := layout.DefaultMergeConfig()
//	config.YTolerance = 5.0
//	merger := layout.NewLineMergerWithConfig(config)
package layout

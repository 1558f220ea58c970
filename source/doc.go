// Package source reads paginated documents into positioned text
// fragments.
//
// Two formats are supported: structured-text JSON, where pages hold
// blocks of positioned lines, and hOCR, the HTML dialect OCR engines
// emit, where word boxes carry their coordinates in title attributes.
// [Open] detects the format from the file content and returns a fragment
// source ready for corpus acquisition:
//
//	src, err := source.Open("report.json")
//	if err != nil { ... }
//	count, _ := src.PageCount(ctx)
//
// Sources parse the whole document eagerly; the returned values are safe
// for concurrent page access.
package source

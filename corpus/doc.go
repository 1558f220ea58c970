// Package corpus acquires and caches the per-page text corpus of a
// document.
//
// # Acquisition
//
// An [Acquirer] pulls positioned fragments from a [FragmentSource] page by
// page, in batches with a bounded worker pool, and builds each page's flat
// corpus. A failing page is logged and skipped; the rest of the document
// still loads. Acquisition is incremental, so re-running it after an
// interruption only extracts the missing pages.
//
// # Caching
//
// A [TierCache] consults an ordered list of [Tier] implementations:
// in-process memory ([MemoryTier]), a local SQLite database ([SQLiteTier])
// and a shared HTTP service ([RemoteTier]). Only a tier holding every page
// of a document counts as a hit; partial entries fall through to the next
// tier and ultimately to fresh extraction. All writes happen in the
// background and tier faults are logged, never propagated, so caching can
// only make a document load faster, not fail.
//
// Cache identity comes from [DocumentID], a stable UUID derived from the
// document's absolute path. A [Watcher] can evict entries when the
// underlying file changes on disk.
package corpus

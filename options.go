package textlayer

import (
	"log/slog"

	"github.com/tsawler/textlayer/caret"
	"github.com/tsawler/textlayer/corpus"
	"github.com/tsawler/textlayer/layout"
	"github.com/tsawler/textlayer/search"
	"github.com/tsawler/textlayer/selection"
)

// Option configures a Session. Options are applied in order, so later
// options win when two touch the same setting.
type Option func(*Session)

// WithLogger sets the session logger. Components derive their own loggers
// from it. A nil logger keeps the default.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDocumentID sets the cache identity for the document. Sessions opened
// via Open derive one from the file path; sessions built around a custom
// FragmentSource need this for the tiered cache to engage.
func WithDocumentID(id string) Option {
	return func(s *Session) {
		s.docID = id
	}
}

// WithSourcePath records the backing file path. Open sets it automatically;
// it is what the change watcher observes when WithSourceWatch is enabled.
func WithSourcePath(path string) Option {
	return func(s *Session) {
		s.sourcePath = path
	}
}

// WithSourceWatch enables the file change watcher: when the backing file
// changes on disk, cached and indexed text for the document is dropped so
// the next Load re-extracts.
func WithSourceWatch() Option {
	return func(s *Session) {
		s.watchSource = true
	}
}

// WithCacheTiers installs pre-built cache tiers, consulted in the given
// order on Load and written back to on extraction.
func WithCacheTiers(tiers ...corpus.Tier) Option {
	return func(s *Session) {
		s.tiers = tiers
	}
}

// WithCacheConfig builds cache tiers from a configuration when the session
// is created. A build failure is logged and the session runs uncached;
// caching is never fatal.
func WithCacheConfig(config corpus.CacheConfig) Option {
	return func(s *Session) {
		s.cacheConfig = &config
	}
}

// WithSearchConfig sets the search configuration used by Query
func WithSearchConfig(config search.Config) Option {
	return func(s *Session) {
		s.searchConfig = config
	}
}

// WithMergeConfig sets the rectangle merge tolerances used for both search
// highlights and selection reconstruction
func WithMergeConfig(config layout.MergeConfig) Option {
	return func(s *Session) {
		s.searchConfig.Merge = config
		s.reconConfig.Merge = config
	}
}

// WithAcquireConfig sets batching and concurrency for text acquisition
func WithAcquireConfig(config corpus.AcquireConfig) Option {
	return func(s *Session) {
		s.acquireConfig = config
	}
}

// WithCaretConfig sets caret navigation tolerances
func WithCaretConfig(config caret.Config) Option {
	return func(s *Session) {
		s.caretConfig = config
	}
}

// WithPointConfig sets point resolution tolerances for click placement
func WithPointConfig(config selection.PointConfig) Option {
	return func(s *Session) {
		s.pointConfig = config
	}
}

// WithWordConfig sets word expansion tolerances for double-click selection
func WithWordConfig(config selection.WordConfig) Option {
	return func(s *Session) {
		s.wordConfig = config
	}
}

// WithScheduler replaces the frame scheduler that coalesces selection
// reconstruction. Hosts with their own frame clock install it here.
func WithScheduler(sched selection.Scheduler) Option {
	return func(s *Session) {
		s.scheduler = sched
	}
}

// WithProgressFunc registers a callback invoked after each page is
// extracted during Load. The callback runs on an acquisition worker.
func WithProgressFunc(fn func(corpus.Progress)) Option {
	return func(s *Session) {
		s.onProgress = fn
	}
}

package corpus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/tsawler/textlayer/layout"
	"github.com/tsawler/textlayer/model"
)

// FragmentSource supplies positioned text fragments for a paginated
// document. Implementations are expected to be safe for concurrent
// PageFragments calls.
type FragmentSource interface {
	// PageCount returns the total number of pages in the document
	PageCount(ctx context.Context) (int, error)

	// PageFragments returns the positioned fragments of one page in
	// reading order. Page numbers are 1-based.
	PageFragments(ctx context.Context, pageNumber int) ([]model.FragmentInput, error)
}

// Progress reports acquisition progress after each processed page
type Progress struct {
	Completed int
	Total     int
}

// AcquireConfig holds configuration for corpus acquisition
type AcquireConfig struct {
	// BatchSize is the number of pages grouped per batch; cancellation is
	// checked between batches (default: 8)
	BatchSize int

	// Workers caps concurrent page extractions within a batch (default: 4)
	Workers int
}

// DefaultAcquireConfig returns sensible default configuration
func DefaultAcquireConfig() AcquireConfig {
	return AcquireConfig{
		BatchSize: 8,
		Workers:   4,
	}
}

// Acquirer pulls every page of a document through a FragmentSource and
// builds the flat per-page corpus the search and selection layers work on.
// Acquisition is incremental: pages already present in the index are not
// extracted again.
type Acquirer struct {
	source FragmentSource
	config AcquireConfig
	logger *slog.Logger
}

// NewAcquirer creates an acquirer with default configuration
func NewAcquirer(source FragmentSource, logger *slog.Logger) *Acquirer {
	return NewAcquirerWithConfig(source, logger, DefaultAcquireConfig())
}

// NewAcquirerWithConfig creates an acquirer with custom configuration
func NewAcquirerWithConfig(source FragmentSource, logger *slog.Logger, config AcquireConfig) *Acquirer {
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultAcquireConfig().BatchSize
	}
	if config.Workers <= 0 {
		config.Workers = DefaultAcquireConfig().Workers
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Acquirer{
		source: source,
		config: config,
		logger: logger,
	}
}

// Acquire extracts every missing page into the index. Pages are processed
// in batches with a bounded worker pool; a page whose extraction fails is
// logged and skipped so one bad page never aborts the document. onProgress,
// when non-nil, is called after each processed page. Cancellation is
// honored between batches and surfaces as the context's error.
func (a *Acquirer) Acquire(ctx context.Context, index *model.DocumentTextIndex, onProgress func(Progress)) error {
	total, err := a.source.PageCount(ctx)
	if err != nil {
		return fmt.Errorf("page count: %w", err)
	}

	var pending []int
	for page := 1; page <= total; page++ {
		if !index.HasPage(page) {
			pending = append(pending, page)
		}
	}

	var mu sync.Mutex
	completed := total - len(pending)
	report := func() {
		if onProgress == nil {
			return
		}
		mu.Lock()
		completed++
		p := Progress{Completed: completed, Total: total}
		mu.Unlock()
		onProgress(p)
	}

	for start := 0; start < len(pending); start += a.config.BatchSize {
		if err := ctx.Err(); err != nil {
			return err
		}

		end := start + a.config.BatchSize
		if end > len(pending) {
			end = len(pending)
		}
		a.acquireBatch(ctx, index, pending[start:end], report)
	}
	return nil
}

// acquireBatch extracts one batch of pages with at most Workers in flight.
func (a *Acquirer) acquireBatch(ctx context.Context, index *model.DocumentTextIndex, pages []int, report func()) {
	sem := make(chan struct{}, a.config.Workers)
	var wg sync.WaitGroup

	for _, page := range pages {
		wg.Add(1)
		sem <- struct{}{}
		go func(page int) {
			defer wg.Done()
			defer func() { <-sem }()

			fragments, err := a.source.PageFragments(ctx, page)
			if err != nil {
				a.logger.Warn("page extraction failed",
					slog.Int("page", page),
					slog.String("error", err.Error()))
				report()
				return
			}
			index.SetPage(layout.BuildCorpus(page, fragments))
			report()
		}(page)
	}
	wg.Wait()
}

package corpus

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/tsawler/textlayer/model"
)

// ErrNotFound reports a cache miss for a document.
var ErrNotFound = errors.New("corpus: document not found")

// writeBackTimeout bounds background cache writes so a stalled tier cannot
// pin goroutines forever.
const writeBackTimeout = 30 * time.Second

// PageRecord is the persisted form of one page's extracted text
type PageRecord struct {
	PageNumber int                  `json:"page_number"`
	Text       string               `json:"text"`
	Fragments  []model.TextFragment `json:"fragments"`
}

// Tier is one level of corpus caching. Load returns ErrNotFound on a miss;
// any other error is a tier fault and the caller degrades it to a miss.
type Tier interface {
	// Name identifies the tier in logs
	Name() string

	// Load returns every cached page for a document
	Load(ctx context.Context, docID string) ([]PageRecord, error)

	// Store persists a document's pages, replacing existing entries
	Store(ctx context.Context, docID string, pages []PageRecord) error
}

// remover is implemented by tiers that can evict a document.
type remover interface {
	Delete(ctx context.Context, docID string) error
}

// TierCache consults an ordered list of tiers, fastest first. A document
// counts as cached only when a tier holds every page; partial entries fall
// through to the next tier. Writes happen in the background and tier
// faults never reach the caller, so a broken cache degrades to re-running
// extraction rather than failing the document.
type TierCache struct {
	tiers  []Tier
	logger *slog.Logger
	wg     sync.WaitGroup
}

// NewTierCache creates a cache consulting tiers in the given order
func NewTierCache(logger *slog.Logger, tiers ...Tier) *TierCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &TierCache{
		tiers:  tiers,
		logger: logger,
	}
}

// Tiers returns the configured tiers in consultation order
func (c *TierCache) Tiers() []Tier {
	return c.tiers
}

// Load returns the cached corpus for a document when some tier holds all
// totalPages pages. Tiers are consulted in order; the first complete entry
// wins and is propagated to the tiers before it in the background. Tier
// faults are logged and treated as misses.
func (c *TierCache) Load(ctx context.Context, docID string, totalPages int) ([]*model.PageTextCorpus, bool) {
	for i, tier := range c.tiers {
		records, err := tier.Load(ctx, docID)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			c.logger.Warn("cache tier load failed",
				slog.String("tier", tier.Name()),
				slog.String("doc", docID),
				slog.String("error", err.Error()))
			continue
		}
		if !recordsComplete(records, totalPages) {
			c.logger.Debug("cache tier entry incomplete",
				slog.String("tier", tier.Name()),
				slog.String("doc", docID),
				slog.Int("pages", len(records)),
				slog.Int("total", totalPages))
			continue
		}

		if i > 0 {
			c.storeAsync(docID, records, c.tiers[:i])
		}
		return corporaFromRecords(records), true
	}
	return nil, false
}

// Store writes a document's pages to every tier in the background and
// returns immediately. Failures are logged, never propagated.
func (c *TierCache) Store(docID string, pages []PageRecord) {
	c.storeAsync(docID, pages, c.tiers)
}

// Invalidate evicts a document from every tier that supports eviction.
func (c *TierCache) Invalidate(ctx context.Context, docID string) {
	for _, tier := range c.tiers {
		r, ok := tier.(remover)
		if !ok {
			continue
		}
		if err := r.Delete(ctx, docID); err != nil {
			c.logger.Warn("cache tier eviction failed",
				slog.String("tier", tier.Name()),
				slog.String("doc", docID),
				slog.String("error", err.Error()))
		}
	}
}

// Wait blocks until all background writes have settled. Sessions call it
// on close so pending write-backs are not lost with the process.
func (c *TierCache) Wait() {
	c.wg.Wait()
}

func (c *TierCache) storeAsync(docID string, pages []PageRecord, tiers []Tier) {
	for _, tier := range tiers {
		c.wg.Add(1)
		go func(tier Tier) {
			defer c.wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), writeBackTimeout)
			defer cancel()

			if err := tier.Store(ctx, docID, pages); err != nil {
				c.logger.Warn("cache tier store failed",
					slog.String("tier", tier.Name()),
					slog.String("doc", docID),
					slog.String("error", err.Error()))
			}
		}(tier)
	}
}

// recordsComplete reports whether records cover every page 1..total.
func recordsComplete(records []PageRecord, total int) bool {
	if total <= 0 || len(records) < total {
		return false
	}
	seen := make(map[int]bool, len(records))
	for _, r := range records {
		seen[r.PageNumber] = true
	}
	for page := 1; page <= total; page++ {
		if !seen[page] {
			return false
		}
	}
	return true
}

// corporaFromRecords rebuilds page corpora from their persisted form.
func corporaFromRecords(records []PageRecord) []*model.PageTextCorpus {
	out := make([]*model.PageTextCorpus, 0, len(records))
	for _, r := range records {
		out = append(out, &model.PageTextCorpus{
			PageNumber: r.PageNumber,
			FullText:   r.Text,
			Fragments:  r.Fragments,
		})
	}
	return out
}

// SnapshotIndex captures an index's pages as cache records in page order.
func SnapshotIndex(index *model.DocumentTextIndex) []PageRecord {
	numbers := index.PageNumbers()
	records := make([]PageRecord, 0, len(numbers))
	for _, n := range numbers {
		page := index.Page(n)
		if page == nil {
			continue
		}
		records = append(records, PageRecord{
			PageNumber: page.PageNumber,
			Text:       page.FullText,
			Fragments:  page.Fragments,
		})
	}
	return records
}

package corpus

import (
	"context"
	"sync"
)

// MemoryTier is the in-process cache tier. It is owned by the session that
// creates it and vanishes with it; nothing is shared between sessions.
type MemoryTier struct {
	mu   sync.RWMutex
	docs map[string][]PageRecord
}

var _ Tier = (*MemoryTier)(nil)

// NewMemoryTier creates an empty in-memory tier
func NewMemoryTier() *MemoryTier {
	return &MemoryTier{
		docs: make(map[string][]PageRecord),
	}
}

// Name identifies the tier in logs
func (t *MemoryTier) Name() string { return "memory" }

// Load returns the cached pages for a document
func (t *MemoryTier) Load(_ context.Context, docID string) ([]PageRecord, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	records, ok := t.docs[docID]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]PageRecord, len(records))
	copy(out, records)
	return out, nil
}

// Store replaces the cached pages for a document
func (t *MemoryTier) Store(_ context.Context, docID string, pages []PageRecord) error {
	records := make([]PageRecord, len(pages))
	copy(records, pages)

	t.mu.Lock()
	t.docs[docID] = records
	t.mu.Unlock()
	return nil
}

// Delete evicts a document
func (t *MemoryTier) Delete(_ context.Context, docID string) error {
	t.mu.Lock()
	delete(t.docs, docID)
	t.mu.Unlock()
	return nil
}

// Len returns the number of cached documents
func (t *MemoryTier) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.docs)
}

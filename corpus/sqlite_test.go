package corpus

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLiteTier(t *testing.T) *SQLiteTier {
	t.Helper()

	tier, err := NewSQLiteTier(filepath.Join(t.TempDir(), "corpus.db"))
	require.NoError(t, err)
	t.Cleanup(func() { tier.Close() })
	return tier
}

func TestSQLiteTierRoundTrip(t *testing.T) {
	tier := newTestSQLiteTier(t)
	ctx := context.Background()

	require.NoError(t, tier.Store(ctx, "doc", twoPages()))

	records, err := tier.Load(ctx, "doc")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "first page", records[0].Text)
	require.Len(t, records[0].Fragments, 1)
	assert.Equal(t, 10.0, records[0].Fragments[0].Rect.X)
	assert.Equal(t, 80.0, records[0].Fragments[0].Rect.Width)
	assert.Equal(t, 11, records[1].Fragments[0].End)
}

func TestSQLiteTierMiss(t *testing.T) {
	tier := newTestSQLiteTier(t)

	_, err := tier.Load(context.Background(), "unknown")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteTierUpsert(t *testing.T) {
	tier := newTestSQLiteTier(t)
	ctx := context.Background()

	require.NoError(t, tier.Store(ctx, "doc", []PageRecord{{PageNumber: 1, Text: "draft"}}))
	require.NoError(t, tier.Store(ctx, "doc", []PageRecord{{PageNumber: 1, Text: "final"}}))

	records, err := tier.Load(ctx, "doc")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "final", records[0].Text)
}

func TestSQLiteTierLoadsInPageOrder(t *testing.T) {
	tier := newTestSQLiteTier(t)
	ctx := context.Background()

	require.NoError(t, tier.Store(ctx, "doc", []PageRecord{
		{PageNumber: 3, Text: "three"},
		{PageNumber: 1, Text: "one"},
		{PageNumber: 2, Text: "two"},
	}))

	records, err := tier.Load(ctx, "doc")
	require.NoError(t, err)
	require.Len(t, records, 3)
	for i, record := range records {
		assert.Equal(t, i+1, record.PageNumber)
	}
}

func TestSQLiteTierDelete(t *testing.T) {
	tier := newTestSQLiteTier(t)
	ctx := context.Background()

	require.NoError(t, tier.Store(ctx, "keep", twoPages()))
	require.NoError(t, tier.Store(ctx, "drop", twoPages()))
	require.NoError(t, tier.Delete(ctx, "drop"))

	_, err := tier.Load(ctx, "drop")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = tier.Load(ctx, "keep")
	assert.NoError(t, err, "deleting one document must not touch another")
}

func TestSQLiteTierClear(t *testing.T) {
	tier := newTestSQLiteTier(t)
	ctx := context.Background()

	require.NoError(t, tier.Store(ctx, "a", twoPages()))
	require.NoError(t, tier.Store(ctx, "b", twoPages()))
	require.NoError(t, tier.Clear(ctx))

	_, err := tier.Load(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)

	stats, err := tier.Documents(ctx)
	require.NoError(t, err)
	assert.Empty(t, stats)
}

func TestSQLiteTierDocuments(t *testing.T) {
	tier := newTestSQLiteTier(t)
	ctx := context.Background()

	require.NoError(t, tier.Store(ctx, "short", twoPages()[:1]))
	require.NoError(t, tier.Store(ctx, "long", twoPages()))

	stats, err := tier.Documents(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	byID := make(map[string]DocumentStat, len(stats))
	for _, stat := range stats {
		byID[stat.DocID] = stat
		assert.False(t, stat.UpdatedAt.IsZero())
	}
	assert.Equal(t, 1, byID["short"].Pages)
	assert.Equal(t, 2, byID["long"].Pages)
}

func TestSQLiteTierPersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.db")
	ctx := context.Background()

	tier, err := NewSQLiteTier(path)
	require.NoError(t, err)
	require.NoError(t, tier.Store(ctx, "doc", twoPages()))
	require.NoError(t, tier.Close())

	reopened, err := NewSQLiteTier(path)
	require.NoError(t, err)
	defer reopened.Close()

	records, err := reopened.Load(ctx, "doc")
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrypster/inkwell/pkg/types"
)

func newTestStore(t *testing.T) *EntryStore {
	t.Helper()
	store, err := NewEntryStore(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleEntries() []types.Entry {
	base := time.Date(2026, 3, 12, 9, 30, 0, 0, time.UTC)
	return []types.Entry{
		{
			ID:                 "entry-2",
			Text:               "a wonderful day at work",
			CreatedAt:          base,
			Sentiment:          types.SentimentPositive,
			Themes:             []string{"work"},
			WordCount:          5,
			Suggestions:        []string{"Close the day by noting one thing that went well at work"},
			InsightNote:        "Momentum is building.",
			EmotionalIntensity: 6,
			KeyTopics:          []string{"work"},
			FallbackUsed:       true,
		},
		{
			ID:        "entry-1",
			Text:      "nothing much happened",
			CreatedAt: base.AddDate(0, 0, -1),
			Sentiment: types.SentimentNeutral,
			Themes:    []string{"reflection"},
			WordCount: 3,
		},
	}
}

func TestEntryStoreEmptyDatabase(t *testing.T) {
	store := newTestStore(t)

	entries, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEntryStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	want := sampleEntries()

	require.NoError(t, store.ReplaceAll(ctx, want))

	got, err := store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, want, got)
}

func TestEntryStorePreservesOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)
	var entries []types.Entry
	for _, id := range []string{"c", "a", "b"} {
		entries = append(entries, types.Entry{
			ID:        id,
			Text:      "entry " + id,
			CreatedAt: base,
			Sentiment: types.SentimentNeutral,
		})
	}
	require.NoError(t, store.ReplaceAll(ctx, entries))

	got, err := store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "c", got[0].ID)
	assert.Equal(t, "a", got[1].ID)
	assert.Equal(t, "b", got[2].ID)
}

func TestEntryStoreReplaceSemantics(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.ReplaceAll(ctx, sampleEntries()))

	// Replacing with a smaller collection removes the rest.
	remaining := sampleEntries()[:1]
	require.NoError(t, store.ReplaceAll(ctx, remaining))

	got, err := store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "entry-2", got[0].ID)

	// Replacing with an empty collection clears the table.
	require.NoError(t, store.ReplaceAll(ctx, nil))
	got, err = store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEntryStoreReopen(t *testing.T) {
	dir := t.TempDir()
	dsn := filepath.Join(dir, "journal.db")
	ctx := context.Background()

	store, err := NewEntryStore(dsn)
	require.NoError(t, err)
	require.NoError(t, store.ReplaceAll(ctx, sampleEntries()))
	require.NoError(t, store.Close())

	reopened, err := NewEntryStore(dsn)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleEntries(), got)
}

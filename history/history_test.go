package history

import (
	"context"
	"fmt"
	"testing"
	"time"

	"truthonly/models"
	"truthonly/storage"
	"truthonly/tests"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKV(t *testing.T) storage.KV {
	t.Helper()
	return storage.NewSQLKV(tests.NewTestDB(t))
}

func entry(i int) models.RecentCheckEntry {
	ts := time.Date(2024, 1, 1, 0, 0, i, 0, time.UTC)
	return models.RecentCheckEntry{
		ID:        ts.UnixMilli(),
		Type:      models.InputText,
		Content:   fmt.Sprintf("claim number %d", i),
		Timestamp: ts,
	}
}

func ids(entries []models.RecentCheckEntry) []int64 {
	out := make([]int64, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func TestStoreEvictsOldest(t *testing.T) {
	ctx := context.Background()
	s := NewStore(newKV(t), DefaultPrefix, zerolog.Nop())
	assert.Equal(t, "truthonly-recent-checks", s.Key())

	for i := 1; i <= 11; i++ {
		require.NoError(t, s.Record(ctx, entry(i)))
	}

	got := s.LoadAll(ctx)
	require.Len(t, got, MaxEntries)
	assert.Equal(t, entry(11).ID, got[0].ID, "most recent first")
	assert.Equal(t, entry(2).ID, got[9].ID)
	assert.NotContains(t, ids(got), entry(1).ID, "oldest evicted")
}

func TestStoreDeduplicatesByID(t *testing.T) {
	ctx := context.Background()
	s := NewStore(newKV(t), DefaultPrefix, zerolog.Nop())

	for i := 1; i <= 10; i++ {
		require.NoError(t, s.Record(ctx, entry(i)))
	}
	again := entry(3)
	again.Content = "claim number 3, edited"
	require.NoError(t, s.Record(ctx, again))

	got := s.LoadAll(ctx)
	require.Len(t, got, 10)
	assert.Equal(t, again.ID, got[0].ID)
	assert.Equal(t, "claim number 3, edited", got[0].Content)

	seen := map[int64]int{}
	for _, id := range ids(got) {
		seen[id]++
	}
	for id, n := range seen {
		assert.Equal(t, 1, n, "id %d duplicated", id)
	}
	assert.Equal(t, entry(10).ID, got[1].ID)
}

func TestStorePersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	kv := newKV(t)
	require.NoError(t, NewStore(kv, DefaultPrefix, zerolog.Nop()).Record(ctx, entry(1)))

	got := NewStore(kv, DefaultPrefix, zerolog.Nop()).LoadAll(ctx)
	require.Len(t, got, 1)
	assert.Equal(t, "claim number 1", got[0].Content)
	assert.True(t, entry(1).Timestamp.Equal(got[0].Timestamp))
}

func TestStoreMalformedIsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := newKV(t)
	s := NewStore(kv, DefaultPrefix, zerolog.Nop())

	require.NoError(t, kv.Set(ctx, s.Key(), []byte("{not json")))
	assert.Empty(t, s.LoadAll(ctx))

	// A malformed list is overwritten by the next record.
	require.NoError(t, s.Record(ctx, entry(4)))
	assert.Len(t, s.LoadAll(ctx), 1)
}

func TestStoreAbsentIsEmpty(t *testing.T) {
	s := NewStore(newKV(t), DefaultPrefix, zerolog.Nop())
	got := s.LoadAll(context.Background())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestStoreClear(t *testing.T) {
	ctx := context.Background()
	s := NewStore(newKV(t), DefaultPrefix, zerolog.Nop())
	require.NoError(t, s.Record(ctx, entry(1)))
	require.NoError(t, s.Clear(ctx))
	assert.Empty(t, s.LoadAll(ctx))
}

func TestStoresAreNamespaced(t *testing.T) {
	ctx := context.Background()
	kv := newKV(t)
	a := NewStore(kv, "app-a-", zerolog.Nop())
	b := NewStore(kv, "app-b-", zerolog.Nop())

	require.NoError(t, a.Record(ctx, entry(1)))
	assert.Len(t, a.LoadAll(ctx), 1)
	assert.Empty(t, b.LoadAll(ctx))
}

func TestSearches(t *testing.T) {
	ctx := context.Background()

	t.Run("Dedup by value and bound", func(t *testing.T) {
		s := NewSearches(newKV(t), DefaultPrefix, nil, zerolog.Nop())
		assert.Equal(t, "truthonly-recent-searches", s.Key())

		for i := 0; i < 12; i++ {
			require.NoError(t, s.Record(ctx, fmt.Sprintf("query %d", i)))
		}
		require.NoError(t, s.Record(ctx, "query 5"))

		got := s.LoadAll(ctx)
		require.Len(t, got, MaxEntries)
		assert.Equal(t, "query 5", got[0])
		assert.Equal(t, "query 11", got[1])
		assert.NotContains(t, got, "query 0")
		assert.NotContains(t, got, "query 1")
	})

	t.Run("Blank queries ignored", func(t *testing.T) {
		s := NewSearches(newKV(t), DefaultPrefix, nil, zerolog.Nop())
		require.NoError(t, s.Record(ctx, "   "))
		assert.Empty(t, s.LoadAll(ctx))
	})

	t.Run("Suggest", func(t *testing.T) {
		s := NewSearches(newKV(t), DefaultPrefix, []string{"Climate summit outcomes"}, zerolog.Nop())
		for i := 0; i < 7; i++ {
			require.NoError(t, s.Record(ctx, fmt.Sprintf("recent %d", i)))
		}

		assert.Equal(t, []string{"recent 6", "recent 5", "recent 4", "recent 3", "recent 2"}, s.Suggest(ctx, ""))
		assert.Equal(t, []string{"Climate summit outcomes", "Climate change facts"}, s.Suggest(ctx, "CLIMATE"))
		assert.Empty(t, s.Suggest(ctx, "zebra"))
	})

	t.Run("Clear", func(t *testing.T) {
		s := NewSearches(newKV(t), DefaultPrefix, nil, zerolog.Nop())
		require.NoError(t, s.Record(ctx, "something"))
		require.NoError(t, s.Clear(ctx))
		assert.Empty(t, s.LoadAll(ctx))
	})
}

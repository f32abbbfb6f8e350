package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "journal", "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestInsertAndListRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.Insert(ctx, RunRecord{
		StartedAt:  time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
		Duration:   90 * time.Second,
		Model:      "ollama",
		DocsDir:    "docs",
		Documents:  3,
		Chunks:     12,
		ItemCounts: map[string]int{"products": 5, "issues": 0},
		OutputPath: "output/extracted_data.yaml",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	recs, err := s.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	rec := recs[0]
	assert.Equal(t, id, rec.ID)
	assert.Equal(t, "ollama", rec.Model)
	assert.Equal(t, 3, rec.Documents)
	assert.Equal(t, 12, rec.Chunks)
	assert.Equal(t, 90*time.Second, rec.Duration)
	assert.Equal(t, map[string]int{"products": 5, "issues": 0}, rec.ItemCounts)
	assert.True(t, rec.StartedAt.Equal(time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)))
}

func TestListRecentNewestFirstAndLimited(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := s.Insert(ctx, RunRecord{
			StartedAt: base.Add(time.Duration(i) * time.Hour),
			Model:     "ollama",
		})
		require.NoError(t, err)
	}

	recs, err := s.ListRecent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.True(t, recs[0].StartedAt.After(recs[1].StartedAt))
	assert.True(t, recs[1].StartedAt.After(recs[2].StartedAt))
}

func TestListRecentEmptyJournal(t *testing.T) {
	s := openTestStore(t)

	recs, err := s.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

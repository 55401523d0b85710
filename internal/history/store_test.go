package history

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordRun_RoundTrip(t *testing.T) {
	s := newMemoryStore(t)
	ctx := context.Background()
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	id, err := s.RecordRun(ctx, Run{
		BatchID:      "batch-1",
		Directory:    "repos/acme",
		Framework:    "jest",
		Language:     "javascript",
		Parser:       "jest+eslint",
		Passed:       10,
		Failed:       1,
		Total:        11,
		FailureRatio: 1.0 / 11,
		Accepted:     false,
		CreatedAt:    at,
	})
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err, "generated id should be a UUID")

	runs, err := s.RecentRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	got := runs[0]
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "batch-1", got.BatchID)
	assert.Equal(t, "repos/acme", got.Directory)
	assert.Equal(t, "jest+eslint", got.Parser)
	assert.Equal(t, 10, got.Passed)
	assert.Equal(t, 1, got.Failed)
	assert.Equal(t, 11, got.Total)
	assert.InDelta(t, 1.0/11, got.FailureRatio, 1e-9)
	assert.False(t, got.Accepted)
	assert.True(t, at.Equal(got.CreatedAt))
}

func TestRecentRuns_OrderAndLimit(t *testing.T) {
	s := newMemoryStore(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, dir := range []string{"a", "b", "c"} {
		_, err := s.RecordRun(ctx, Run{Directory: dir, CreatedAt: base.Add(time.Duration(i) * time.Hour)})
		require.NoError(t, err)
	}

	runs, err := s.RecentRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "c", runs[0].Directory)
	assert.Equal(t, "b", runs[1].Directory)
}

func TestRunsForDirectory(t *testing.T) {
	s := newMemoryStore(t)
	ctx := context.Background()

	for _, dir := range []string{"a", "b", "a"} {
		_, err := s.RecordRun(ctx, Run{Directory: dir, Error: "no test results"})
		require.NoError(t, err)
	}

	runs, err := s.RunsForDirectory(ctx, "a")
	require.NoError(t, err)
	assert.Len(t, runs, 2)
	for _, r := range runs {
		assert.Equal(t, "no test results", r.Error)
	}

	none, err := s.RunsForDirectory(ctx, "zzz")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRecordRun_DuplicateID(t *testing.T) {
	s := newMemoryStore(t)
	ctx := context.Background()

	_, err := s.RecordRun(ctx, Run{ID: "fixed", Directory: "a"})
	require.NoError(t, err)
	_, err = s.RecordRun(ctx, Run{ID: "fixed", Directory: "b"})
	assert.Error(t, err)
}

func TestNewStore_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")

	s, err := NewStore(path)
	require.NoError(t, err)
	_, err = s.RecordRun(context.Background(), Run{Directory: "a"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// Reopening keeps earlier runs.
	s, err = NewStore(path)
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, path, s.Path())

	runs, err := s.RecentRuns(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestRecordRun_Concurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := NewStore(path)
	require.NoError(t, err)
	defer s.Close()

	batch := NewBatchID()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.RecordRun(context.Background(), Run{BatchID: batch, Directory: "repo"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	runs, err := s.RecentRuns(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, runs, 16)
}

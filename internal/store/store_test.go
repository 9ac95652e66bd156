package store

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-interaction-service/internal/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "logs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testRecord(query string) *models.InteractionRecord {
	return &models.InteractionRecord{
		Timestamp:   time.Now().Format(time.RFC3339),
		UserQuery:   query,
		AIResponse:  "answer",
		RequestType: models.RequestTypeChat,
	}
}

func TestAppend_AssignsMonotonicIDs(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var last uint
	for i := 0; i < 5; i++ {
		id, err := s.Append(ctx, testRecord(fmt.Sprintf("q%d", i)))
		require.NoError(t, err)
		assert.Greater(t, id, last)
		last = id
	}

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 5, n)
}

func TestAppend_RejectsMissingTimestamp(t *testing.T) {
	s := openTestStore(t)

	rec := testRecord("hello")
	rec.Timestamp = ""
	_, err := s.Append(context.Background(), rec)
	require.Error(t, err)

	var storeErr *Error
	assert.ErrorAs(t, err, &storeErr)

	n, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestTopQueries_OrdersByCountDescending(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, q := range []string{"a", "b", "b", "c", "c", "c"} {
		_, err := s.Append(ctx, testRecord(q))
		require.NoError(t, err)
	}

	top, err := s.TopQueries(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, "c", top[0].UserQuery)
	assert.EqualValues(t, 3, top[0].Count)
	assert.Equal(t, "b", top[1].UserQuery)
	assert.EqualValues(t, 2, top[1].Count)
	assert.Equal(t, "a", top[2].UserQuery)
	assert.EqualValues(t, 1, top[2].Count)
}

func TestTopQueries_TiesBrokenByFirstInsertion(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// "late" and "early" both end with count 2; "early" was seen first.
	for _, q := range []string{"early", "late", "late", "early"} {
		_, err := s.Append(ctx, testRecord(q))
		require.NoError(t, err)
	}

	top, err := s.TopQueries(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "early", top[0].UserQuery)
	assert.Equal(t, "late", top[1].UserQuery)
}

func TestTopQueries_TruncatesToN(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 8; i++ {
		_, err := s.Append(ctx, testRecord(fmt.Sprintf("q%d", i)))
		require.NoError(t, err)
	}

	top, err := s.TopQueries(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, top, 3)
}

func TestTopQueries_NoNormalization(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, q := range []string{"Hello", "hello", "hello "} {
		_, err := s.Append(ctx, testRecord(q))
		require.NoError(t, err)
	}

	top, err := s.TopQueries(ctx, 10)
	require.NoError(t, err)
	// Textually distinct queries are always distinct groups.
	assert.Len(t, top, 3)
}

func TestTopQueries_DuplicateIncrementsExistingGroup(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.Append(ctx, testRecord("repeat"))
	require.NoError(t, err)

	top, err := s.TopQueries(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.EqualValues(t, 1, top[0].Count)

	_, err = s.Append(ctx, testRecord("repeat"))
	require.NoError(t, err)

	top, err = s.TopQueries(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.EqualValues(t, 2, top[0].Count)
}

func TestAppend_ConcurrentWritersLoseNothing(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	const writers = 8
	const perWriter = 10

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				_, err := s.Append(ctx, testRecord(fmt.Sprintf("w%d-q%d", w, i)))
				assert.NoError(t, err)
			}
		}(w)
	}
	wg.Wait()

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, writers*perWriter, n)
}

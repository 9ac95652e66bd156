package analytics

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-interaction-service/internal/models"
	"ai-interaction-service/internal/store"
)

func seedStore(t *testing.T, queries []string) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "logs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	for _, q := range queries {
		_, err := s.Append(context.Background(), &models.InteractionRecord{
			Timestamp:   time.Now().Format(time.RFC3339),
			UserQuery:   q,
			AIResponse:  "r",
			RequestType: models.RequestTypeChat,
		})
		require.NoError(t, err)
	}
	return s
}

func TestMostCommonQueries_ReflectsCurrentState(t *testing.T) {
	s := seedStore(t, []string{"a", "b", "b"})
	agg := New(s)

	top, err := agg.MostCommonQueries(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "b", top[0].UserQuery)

	// No caching: a fresh append shows up on the next call.
	_, err = s.Append(context.Background(), &models.InteractionRecord{
		Timestamp:   time.Now().Format(time.RFC3339),
		UserQuery:   "a",
		RequestType: models.RequestTypeChat,
	})
	require.NoError(t, err)
	_, err = s.Append(context.Background(), &models.InteractionRecord{
		Timestamp:   time.Now().Format(time.RFC3339),
		UserQuery:   "a",
		RequestType: models.RequestTypeChat,
	})
	require.NoError(t, err)

	top, err = agg.MostCommonQueries(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, "a", top[0].UserQuery)
	assert.EqualValues(t, 3, top[0].Count)
}

func TestMostCommonQueries_DefaultsTopN(t *testing.T) {
	var queries []string
	for i := 0; i < 8; i++ {
		queries = append(queries, fmt.Sprintf("q%d", i))
	}
	s := seedStore(t, queries)
	agg := New(s)

	top, err := agg.MostCommonQueries(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, top, DefaultTopN)
}

func TestMostCommonQueries_EmptyLog(t *testing.T) {
	s := seedStore(t, nil)
	agg := New(s)

	top, err := agg.MostCommonQueries(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, top)
}

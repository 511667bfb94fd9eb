package history

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/zlang-app/zlang/internal/model"
)

// newTestSQLite opens a private in-memory database
func newTestSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// Every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

// tickingClock returns increasing timestamps one second apart
func tickingClock() func() time.Time {
	current := fixedNow
	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}

func TestSQLiteRepository_AppendAndList(t *testing.T) {
	ctx := context.Background()
	repo, err := NewSQLiteRepository(ctx, newTestSQLite(t), WithClock(tickingClock()))
	require.NoError(t, err)

	first := &model.HistoryEntry{Input: "Hello", Output: "yo 👋", Direction: model.DirectionToGenZ, Language: model.LanguageEnglish}
	second := &model.HistoryEntry{Input: "it's giving", Output: "It is reminiscent of", Direction: model.DirectionToNormal, Language: model.LanguageBengali}
	require.NoError(t, repo.Append(ctx, first))
	require.NoError(t, repo.Append(ctx, second))
	assert.NotEqual(t, first.ID, second.ID)

	entries, err := repo.List(ctx, ListOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, second.ID, entries[0].ID)
	assert.Equal(t, "It is reminiscent of", entries[0].Output)
	assert.Equal(t, model.DirectionToNormal, entries[0].Direction)
	assert.Equal(t, model.LanguageBengali, entries[0].Language)
	assert.True(t, entries[0].CreatedAt.Equal(second.CreatedAt))
	assert.Equal(t, first.ID, entries[1].ID)
}

func TestSQLiteRepository_TrimsToMaxEntries(t *testing.T) {
	ctx := context.Background()
	repo, err := NewSQLiteRepository(ctx, newTestSQLite(t), WithMaxEntries(3), WithClock(tickingClock()))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		entry := &model.HistoryEntry{Input: fmt.Sprintf("input %d", i), Output: "out", Direction: model.DirectionToGenZ, Language: model.LanguageEnglish}
		require.NoError(t, repo.Append(ctx, entry))
	}

	entries, err := repo.List(ctx, ListOptions{Limit: 10})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "input 4", entries[0].Input)
	assert.Equal(t, "input 2", entries[2].Input)
}

func TestSQLiteRepository_ListFilters(t *testing.T) {
	ctx := context.Background()
	repo, err := NewSQLiteRepository(ctx, newTestSQLite(t), WithClock(tickingClock()))
	require.NoError(t, err)

	for _, d := range []model.Direction{model.DirectionToGenZ, model.DirectionToNormal, model.DirectionToGenZ} {
		require.NoError(t, repo.Append(ctx, &model.HistoryEntry{Input: "x", Output: "y", Direction: d, Language: model.LanguageEnglish}))
	}

	forward, err := repo.List(ctx, ListOptions{Direction: model.DirectionToGenZ})
	require.NoError(t, err)
	assert.Len(t, forward, 2)

	limited, err := repo.List(ctx, ListOptions{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestSQLiteRepository_Clear(t *testing.T) {
	ctx := context.Background()
	db := newTestSQLite(t)
	repo, err := NewSQLiteRepository(ctx, db)
	require.NoError(t, err)

	require.NoError(t, repo.Append(ctx, &model.HistoryEntry{Input: "x", Output: "y", Direction: model.DirectionToGenZ, Language: model.LanguageEnglish}))
	require.NoError(t, repo.Clear(ctx))

	entries, err := repo.List(ctx, ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, entries)

	// Reopening on the same database keeps the existing table
	_, err = NewSQLiteRepository(ctx, db)
	require.NoError(t, err)
}

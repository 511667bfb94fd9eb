//go:build integration

package history_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/zlang-app/zlang/internal/config"
	"github.com/zlang-app/zlang/internal/model"
	"github.com/zlang-app/zlang/internal/repository/history"
)

// setupTestDB starts a PostgreSQL container and applies the embedded migrations
func setupTestDB(t *testing.T) *pgxpool.Pool {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:15",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	databaseURL, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, history.RunMigrations(databaseURL))
	// Second run is a no-op
	require.NoError(t, history.RunMigrations(databaseURL))

	pool, err := config.NewDatabasePool(ctx, &config.Config{History: config.HistoryConfig{DatabaseURL: databaseURL}})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool
}

func TestPostgresRepository_Integration(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()

	repo := history.NewPostgresRepository(pool, history.WithMaxEntries(2))

	inputs := []string{"first", "second", "third"}
	for _, input := range inputs {
		entry := &model.HistoryEntry{Input: input, Output: input + " fr", Direction: model.DirectionToGenZ, Language: model.LanguageEnglish}
		require.NoError(t, repo.Append(ctx, entry))
	}

	entries, err := repo.List(ctx, history.ListOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "third", entries[0].Input)
	assert.Equal(t, "second", entries[1].Input)

	reverse, err := repo.List(ctx, history.ListOptions{Direction: model.DirectionToNormal})
	require.NoError(t, err)
	assert.Empty(t, reverse)

	require.NoError(t, repo.Clear(ctx))
	entries, err = repo.List(ctx, history.ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

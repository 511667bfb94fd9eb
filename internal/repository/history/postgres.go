package history

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/zlang-app/zlang/internal/model"
)

// DBTX is the subset of pgxpool.Pool used by the postgres repository
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// postgresRepository implements Repository on PostgreSQL
type postgresRepository struct {
	db DBTX
	q  queries
	settings
}

// NewPostgresRepository creates a repository backed by PostgreSQL.
// The schema comes from RunMigrations.
func NewPostgresRepository(db DBTX, opts ...Option) Repository {
	s := newSettings(opts)
	return &postgresRepository{
		db:       db,
		q:        queries{sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar), maxEntries: s.maxEntries},
		settings: s,
	}
}

// Append inserts a new entry and trims the oldest ones
func (r *postgresRepository) Append(ctx context.Context, entry *model.HistoryEntry) error {
	entry.ID = r.newID()
	entry.CreatedAt = r.now()

	query, args, err := r.q.insert(entry, entry.CreatedAt)
	if err != nil {
		return err
	}
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return handlePostgreSQLError(err, "append history entry")
	}

	query, args, err = r.q.trim()
	if err != nil {
		return err
	}
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return handlePostgreSQLError(err, "trim history")
	}
	return nil
}

// List retrieves entries newest first
func (r *postgresRepository) List(ctx context.Context, opts ListOptions) ([]*model.HistoryEntry, error) {
	query, args, err := r.q.list(opts)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, handlePostgreSQLError(err, "list history")
	}
	defer rows.Close()

	entries := []*model.HistoryEntry{}
	for rows.Next() {
		var entry model.HistoryEntry
		var direction, language string
		if err := rows.Scan(&entry.ID, &entry.Input, &entry.Output, &direction, &language, &entry.CreatedAt); err != nil {
			return nil, handlePostgreSQLError(err, "scan history entry")
		}
		entry.Direction = model.Direction(direction)
		entry.Language = model.Language(language)
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, handlePostgreSQLError(err, "list history")
	}

	return entries, nil
}

// Clear deletes every entry
func (r *postgresRepository) Clear(ctx context.Context) error {
	query, args, err := r.q.clear()
	if err != nil {
		return err
	}
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return handlePostgreSQLError(err, "clear history")
	}
	return nil
}

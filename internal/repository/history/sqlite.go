package history

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	apperrors "github.com/zlang-app/zlang/internal/errors"
	"github.com/zlang-app/zlang/internal/model"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS history_entries (
		id         TEXT PRIMARY KEY,
		input      TEXT NOT NULL,
		output     TEXT NOT NULL,
		direction  TEXT NOT NULL,
		language   TEXT NOT NULL,
		created_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_history_entries_created_at ON history_entries (created_at DESC)`,
}

// sqliteRepository implements Repository on a local SQLite file.
// created_at is stored as Unix nanoseconds.
type sqliteRepository struct {
	db *sql.DB
	q  queries
	settings
}

// NewSQLiteRepository creates a repository on db, creating the table if needed
func NewSQLiteRepository(ctx context.Context, db *sql.DB, opts ...Option) (Repository, error) {
	for _, stmt := range sqliteSchema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to create history schema")
		}
	}
	s := newSettings(opts)
	return &sqliteRepository{
		db:       db,
		q:        queries{sb: sq.StatementBuilder.PlaceholderFormat(sq.Question), maxEntries: s.maxEntries},
		settings: s,
	}, nil
}

// Append inserts a new entry and trims the oldest ones
func (r *sqliteRepository) Append(ctx context.Context, entry *model.HistoryEntry) error {
	entry.ID = r.newID()
	entry.CreatedAt = r.now()

	query, args, err := r.q.insert(entry, entry.CreatedAt.UnixNano())
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternal, "append history entry")
	}

	query, args, err = r.q.trim()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternal, "trim history")
	}
	return nil
}

// List retrieves entries newest first
func (r *sqliteRepository) List(ctx context.Context, opts ListOptions) ([]*model.HistoryEntry, error) {
	query, args, err := r.q.list(opts)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "list history")
	}
	defer rows.Close()

	entries := []*model.HistoryEntry{}
	for rows.Next() {
		var entry model.HistoryEntry
		var direction, language string
		var createdAt int64
		if err := rows.Scan(&entry.ID, &entry.Input, &entry.Output, &direction, &language, &createdAt); err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeInternal, "scan history entry")
		}
		entry.Direction = model.Direction(direction)
		entry.Language = model.Language(language)
		entry.CreatedAt = time.Unix(0, createdAt).UTC()
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "list history")
	}

	return entries, nil
}

// Clear deletes every entry
func (r *sqliteRepository) Clear(ctx context.Context) error {
	query, args, err := r.q.clear()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternal, "clear history")
	}
	return nil
}

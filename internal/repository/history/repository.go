// Package history stores completed translations, newest first, bounded to a
// fixed number of entries.
package history

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/zlang-app/zlang/internal/model"
)

// DefaultMaxEntries is the number of entries kept when no limit is configured
const DefaultMaxEntries = 50

const tableName = "history_entries"

var columns = []string{"id", "input", "output", "direction", "language", "created_at"}

// Repository defines operations for HistoryEntry persistence
type Repository interface {
	// Append stores entry, assigning its ID and CreatedAt, and drops entries
	// beyond the newest maxEntries
	Append(ctx context.Context, entry *model.HistoryEntry) error

	// List returns entries newest first
	List(ctx context.Context, opts ListOptions) ([]*model.HistoryEntry, error)

	// Clear removes every entry
	Clear(ctx context.Context) error
}

// ListOptions filters List results
type ListOptions struct {
	// Direction restricts results to one direction; empty means all
	Direction model.Direction
	// Limit caps the number of results; <= 0 means maxEntries
	Limit int
}

// Option configures a repository
type Option func(*settings)

type settings struct {
	maxEntries int
	now        func() time.Time
	newID      func() string
}

// WithMaxEntries sets how many entries are kept
func WithMaxEntries(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxEntries = n
		}
	}
}

// WithClock overrides the time source used for CreatedAt
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

func newSettings(opts []Option) settings {
	s := settings{
		maxEntries: DefaultMaxEntries,
		now:        func() time.Time { return time.Now().UTC() },
		newID:      func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// queries builds the SQL shared by every backend
type queries struct {
	sb         sq.StatementBuilderType
	maxEntries int
}

func (q queries) insert(entry *model.HistoryEntry, createdAt any) (string, []any, error) {
	return q.sb.Insert(tableName).
		Columns(columns...).
		Values(entry.ID, entry.Input, entry.Output, string(entry.Direction), string(entry.Language), createdAt).
		ToSql()
}

func (q queries) trim() (string, []any, error) {
	return q.sb.Delete(tableName).
		Where("id NOT IN (SELECT id FROM "+tableName+" ORDER BY created_at DESC, id DESC LIMIT ?)", q.maxEntries).
		ToSql()
}

func (q queries) list(opts ListOptions) (string, []any, error) {
	limit := opts.Limit
	if limit <= 0 || limit > q.maxEntries {
		limit = q.maxEntries
	}
	b := q.sb.Select(columns...).
		From(tableName).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit))
	if opts.Direction != "" {
		b = b.Where(sq.Eq{"direction": string(opts.Direction)})
	}
	return b.ToSql()
}

func (q queries) clear() (string, []any, error) {
	return q.sb.Delete(tableName).ToSql()
}

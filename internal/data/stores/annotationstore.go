package stores

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/colonyops/tms/internal/core/annotation"
	"github.com/colonyops/tms/internal/data/db"
)

// CommentStore caches comment threads per language and string id.
type CommentStore struct {
	db  *db.DB
	now func() time.Time
}

// NewCommentStore creates a new SQLite-backed comment store.
func NewCommentStore(db *db.DB) *CommentStore {
	return &CommentStore{db: db, now: time.Now}
}

// Add appends c to the thread of id.
func (s *CommentStore) Add(ctx context.Context, lang, id string, c annotation.Comment) error {
	_, err := s.db.Conn().ExecContext(ctx, `
		INSERT INTO comments (id, language, string_id, text, author, timestamp, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), lang, id, c.Text, c.Author, c.Timestamp, s.now().UnixNano())
	if err != nil {
		return fmt.Errorf("failed to add comment: %w", err)
	}
	return nil
}

// Replace swaps the cached thread of id for comments, typically after a
// fetch from the backend.
func (s *CommentStore) Replace(ctx context.Context, lang, id string, comments []annotation.Comment) error {
	return retryBusy(ctx, func() error {
		return s.db.WithTx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx,
				`DELETE FROM comments WHERE language = ? AND string_id = ?`, lang, id); err != nil {
				return fmt.Errorf("failed to clear comments: %w", err)
			}

			base := s.now().UnixNano()
			for i, c := range comments {
				_, err := tx.ExecContext(ctx, `
					INSERT INTO comments (id, language, string_id, text, author, timestamp, created_at)
					VALUES (?, ?, ?, ?, ?, ?, ?)`,
					uuid.NewString(), lang, id, c.Text, c.Author, c.Timestamp, base+int64(i))
				if err != nil {
					return fmt.Errorf("failed to save comment: %w", err)
				}
			}
			return nil
		})
	})
}

// List returns the thread of id, oldest first.
func (s *CommentStore) List(ctx context.Context, lang, id string) ([]annotation.Comment, error) {
	rows, err := s.db.Conn().QueryContext(ctx, `
		SELECT text, author, timestamp
		FROM comments
		WHERE language = ? AND string_id = ?
		ORDER BY created_at, rowid`, lang, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	comments := []annotation.Comment{}
	for rows.Next() {
		var c annotation.Comment
		if err := rows.Scan(&c.Text, &c.Author, &c.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// ActivityStore caches activity logs per string id.
type ActivityStore struct {
	db *db.DB
}

// NewActivityStore creates a new SQLite-backed activity store.
func NewActivityStore(db *db.DB) *ActivityStore {
	return &ActivityStore{db: db}
}

// Save replaces the cached log of id.
func (s *ActivityStore) Save(ctx context.Context, id string, entries []annotation.ActivityEntry) error {
	return retryBusy(ctx, func() error {
		return s.db.WithTx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, `DELETE FROM activity WHERE string_id = ?`, id); err != nil {
				return fmt.Errorf("failed to clear activity: %w", err)
			}
			for i, e := range entries {
				_, err := tx.ExecContext(ctx, `
					INSERT INTO activity (string_id, position, action, actor, timestamp)
					VALUES (?, ?, ?, ?, ?)`,
					id, i, e.Action, e.Actor, e.Timestamp)
				if err != nil {
					return fmt.Errorf("failed to save activity: %w", err)
				}
			}
			return nil
		})
	})
}

// List returns the cached log of id in the order it was saved.
func (s *ActivityStore) List(ctx context.Context, id string) ([]annotation.ActivityEntry, error) {
	rows, err := s.db.Conn().QueryContext(ctx, `
		SELECT action, actor, timestamp
		FROM activity
		WHERE string_id = ?
		ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := []annotation.ActivityEntry{}
	for rows.Next() {
		var e annotation.ActivityEntry
		if err := rows.Scan(&e.Action, &e.Actor, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

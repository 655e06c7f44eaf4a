package stores

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/colonyops/tms/internal/core/grid"
	"github.com/colonyops/tms/internal/core/translation"
	"github.com/colonyops/tms/internal/data/db"
)

// RecordStore caches the records of each target language. It also serves as
// the offline grid.Backend: persist effects update the cached rows.
type RecordStore struct {
	db       *db.DB
	comments *CommentStore
	now      func() time.Time
}

var _ grid.Backend = (*RecordStore)(nil)

// NewRecordStore creates a new SQLite-backed record cache.
func NewRecordStore(db *db.DB) *RecordStore {
	return &RecordStore{db: db, comments: NewCommentStore(db), now: time.Now}
}

// SaveRecords replaces every cached record of lang with records, keeping
// their order.
func (s *RecordStore) SaveRecords(ctx context.Context, lang string, records []translation.Record) error {
	return retryBusy(ctx, func() error {
		return s.db.WithTx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, `DELETE FROM records WHERE language = ?`, lang); err != nil {
				return fmt.Errorf("failed to clear records: %w", err)
			}
			for i, r := range records {
				if err := s.insert(ctx, tx, lang, i, r); err != nil {
					return err
				}
			}
			return nil
		})
	})
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Get returns the cached record id of lang, or translation.ErrNotFound.
func (s *RecordStore) Get(ctx context.Context, lang, id string) (translation.Record, error) {
	return getRecord(ctx, s.db.Conn(), lang, id)
}

func getRecord(ctx context.Context, q queryRower, lang, id string) (translation.Record, error) {
	var (
		r      translation.Record
		values string
		status string
	)
	err := q.QueryRowContext(ctx, `
		SELECT string_id, source_value, source_language, target_values, status
		FROM records
		WHERE language = ? AND string_id = ?`, lang, id).
		Scan(&r.StringID, &r.SourceValue, &r.SourceLanguage, &values, &status)
	if IsNotFoundError(err) {
		return translation.Record{}, fmt.Errorf("record %q: %w", id, translation.ErrNotFound)
	}
	if err != nil {
		return translation.Record{}, fmt.Errorf("failed to get record %q: %w", id, err)
	}
	if err := json.Unmarshal([]byte(values), &r.TargetValues); err != nil {
		return translation.Record{}, fmt.Errorf("failed to unmarshal target values of %q: %w", id, err)
	}
	r.Status = translation.Status(status)
	return r, nil
}

// LoadRecords returns the cached records of lang in display order.
func (s *RecordStore) LoadRecords(ctx context.Context, lang string) ([]translation.Record, error) {
	rows, err := s.db.Conn().QueryContext(ctx, `
		SELECT string_id, source_value, source_language, target_values, status
		FROM records
		WHERE language = ?
		ORDER BY position`, lang)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := []translation.Record{}
	for rows.Next() {
		var (
			r      translation.Record
			values string
			status string
		)
		if err := rows.Scan(&r.StringID, &r.SourceValue, &r.SourceLanguage, &values, &status); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		if err := json.Unmarshal([]byte(values), &r.TargetValues); err != nil {
			return nil, fmt.Errorf("failed to unmarshal target values of %q: %w", r.StringID, err)
		}
		r.Status = translation.Status(status)
		records = append(records, r)
	}

	return records, rows.Err()
}

// Languages returns the languages that have cached records.
func (s *RecordStore) Languages(ctx context.Context) ([]string, error) {
	rows, err := s.db.Conn().QueryContext(ctx, `SELECT DISTINCT language FROM records ORDER BY language`)
	if err != nil {
		return nil, fmt.Errorf("failed to list languages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var langs []string
	for rows.Next() {
		var lang string
		if err := rows.Scan(&lang); err != nil {
			return nil, fmt.Errorf("failed to scan language: %w", err)
		}
		langs = append(langs, lang)
	}
	return langs, rows.Err()
}

// AddRecord caches a new record ahead of every existing one. An id that is
// already cached for the language is rejected with translation.ErrDuplicateID.
func (s *RecordStore) AddRecord(ctx context.Context, p grid.RecordAddPayload) error {
	return retryBusy(ctx, func() error {
		return s.db.WithTx(ctx, func(tx *sql.Tx) error {
			_, err := getRecord(ctx, tx, p.Language, p.Record.StringID)
			switch {
			case err == nil:
				return fmt.Errorf("add %q: %w", p.Record.StringID, translation.ErrDuplicateID)
			case !errors.Is(err, translation.ErrNotFound):
				return err
			}

			var first sql.NullInt64
			err = tx.QueryRowContext(ctx, `SELECT MIN(position) FROM records WHERE language = ?`, p.Language).Scan(&first)
			if err != nil {
				return fmt.Errorf("failed to read head position: %w", err)
			}

			pos := 0
			if first.Valid {
				pos = int(first.Int64) - 1
			}
			return s.insert(ctx, tx, p.Language, pos, p.Record)
		})
	})
}

// RemoveRecord drops a cached record. Its comments are kept.
func (s *RecordStore) RemoveRecord(ctx context.Context, p grid.RecordRemovePayload) error {
	res, err := s.db.Conn().ExecContext(ctx,
		`DELETE FROM records WHERE language = ? AND string_id = ?`, p.Language, p.RecordID)
	if err != nil {
		return fmt.Errorf("failed to remove record: %w", err)
	}
	return expectRow(res, "remove", p.RecordID)
}

// ChangeSourceLanguage updates the source language of a string in every
// cached language.
func (s *RecordStore) ChangeSourceLanguage(ctx context.Context, p grid.SourceLanguagePayload) error {
	res, err := s.db.Conn().ExecContext(ctx,
		`UPDATE records SET source_language = ?, updated_at = ? WHERE string_id = ?`,
		p.SourceLanguage, s.now().UnixNano(), p.RecordID)
	if err != nil {
		return fmt.Errorf("failed to update source language: %w", err)
	}
	return expectRow(res, "update source language", p.RecordID)
}

// ChangeTargetValue stores the full list of candidate translations.
func (s *RecordStore) ChangeTargetValue(ctx context.Context, p grid.TargetValuePayload) error {
	values := p.Values
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to marshal target values: %w", err)
	}

	res, err := s.db.Conn().ExecContext(ctx,
		`UPDATE records SET target_values = ?, updated_at = ? WHERE language = ? AND string_id = ?`,
		string(data), s.now().UnixNano(), p.Language, p.RecordID)
	if err != nil {
		return fmt.Errorf("failed to update target values: %w", err)
	}
	return expectRow(res, "update target values", p.RecordID)
}

// ChangeStatus updates the approval status of a cached record.
func (s *RecordStore) ChangeStatus(ctx context.Context, p grid.StatusPayload) error {
	res, err := s.db.Conn().ExecContext(ctx,
		`UPDATE records SET status = ?, updated_at = ? WHERE language = ? AND string_id = ?`,
		string(p.Status), s.now().UnixNano(), p.Language, p.RecordID)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	return expectRow(res, "update status", p.RecordID)
}

// AddComment appends the comment to the cached thread.
func (s *RecordStore) AddComment(ctx context.Context, p grid.CommentPayload) error {
	return s.comments.Add(ctx, p.Language, p.RecordID, p.Comment)
}

func (s *RecordStore) insert(ctx context.Context, tx *sql.Tx, lang string, pos int, r translation.Record) error {
	values := r.TargetValues
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to marshal target values: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO records (language, string_id, position, source_value, source_language, target_values, status, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (language, string_id) DO UPDATE SET
			position = excluded.position,
			source_value = excluded.source_value,
			source_language = excluded.source_language,
			target_values = excluded.target_values,
			status = excluded.status,
			updated_at = excluded.updated_at`,
		lang, r.StringID, pos, r.SourceValue, r.SourceLanguage, string(data), string(r.Status), s.now().UnixNano())
	if err != nil {
		return fmt.Errorf("failed to save record %q: %w", r.StringID, err)
	}
	return nil
}

func expectRow(res sql.Result, op, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s %q: %w", op, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %q: %w", op, id, translation.ErrNotFound)
	}
	return nil
}

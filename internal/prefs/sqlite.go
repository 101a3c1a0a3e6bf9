package prefs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/langcentral/langcentral/internal/common"
	"github.com/langcentral/langcentral/internal/culture"
	"github.com/langcentral/langcentral/internal/dbx"
)

// SQLiteRepository implements Repository for SQLite, the default file-backed
// store.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) GetByUserID(ctx context.Context, id culture.UserID) (*PreferenceRecord, error) {
	query :=
		`SELECT id, user_id, culture_tag, created_at, updated_at FROM user_language_preferences
		 WHERE user_id = ?
		 `

	rec := &PreferenceRecord{}
	var uid int64
	err := r.db.QueryRowContext(ctx, query, int64(id)).
		Scan(&rec.ID, &uid, &rec.CultureTag, &rec.CreatedAt, &rec.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	rec.UserID = culture.UserID(uid)
	return rec, nil
}

func (r *SQLiteRepository) Upsert(ctx context.Context, id culture.UserID, cultureTag string) error {
	query :=
		`INSERT INTO user_language_preferences (user_id, culture_tag)
		 VALUES (?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET culture_tag = excluded.culture_tag, updated_at = datetime('now')
		 `

	_, err := r.db.ExecContext(ctx, query, int64(id), cultureTag)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

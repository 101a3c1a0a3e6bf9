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

// MySQLRepository implements Repository for MySQL/MariaDB.
type MySQLRepository struct {
	db dbx.DBTX
}

func NewMySQLRepository(db dbx.DBTX) *MySQLRepository {
	return &MySQLRepository{db: db}
}

func (r *MySQLRepository) GetByUserID(ctx context.Context, id culture.UserID) (*PreferenceRecord, error) {
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

func (r *MySQLRepository) Upsert(ctx context.Context, id culture.UserID, cultureTag string) error {
	query :=
		`INSERT INTO user_language_preferences (user_id, culture_tag)
		 VALUES (?, ?)
		 ON DUPLICATE KEY UPDATE culture_tag = VALUES(culture_tag), updated_at = CURRENT_TIMESTAMP
		 `

	_, err := r.db.ExecContext(ctx, query, int64(id), cultureTag)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

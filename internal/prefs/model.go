// Package prefs is the persistence gateway for user language preferences.
//
// It defines the Repository contract plus SQLite, Postgres and MySQL
// implementations over dbx.DBTX, and OpenStore, which builds the connection
// from configuration, applies the schema migrations and wipes the credential
// material it consumed.
package prefs

import (
	"time"

	"github.com/langcentral/langcentral/internal/culture"
)

// PreferenceRecord is one persisted language preference.
// At most one record exists per UserID (unique index).
type PreferenceRecord struct {
	ID         int64
	UserID     culture.UserID
	CultureTag string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

package prefs

import (
	"context"

	"github.com/langcentral/langcentral/internal/culture"
)

// Repository describes the preference store operations.
//
// Absence of a record is a normal outcome and is reported as
// common.ErrorNotFound, never as a transport failure. Implementations do not
// retry; a failed call is returned as an error for the caller to log.
// Implementations are safe for concurrent use when backed by *sql.DB.
type Repository interface {
	// GetByUserID returns the persisted preference for id, or
	// common.ErrorNotFound when none exists.
	GetByUserID(ctx context.Context, id culture.UserID) (*PreferenceRecord, error)

	// Upsert inserts a preference for id or, when a record already exists,
	// updates its culture tag and updated-timestamp.
	Upsert(ctx context.Context, id culture.UserID, cultureTag string) error
}

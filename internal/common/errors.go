// Package common defines shared sentinel errors and small utility helpers
// used across the language service layers. Callers should use errors.Is to
// match the sentinel values.
package common

import "errors"

var (
	// Repository/cache-level errors. Absence of a persisted preference is a
	// normal outcome, not a failure, and is always reported as ErrorNotFound.
	ErrorNotFound = errors.New("not found")

	// Culture-specific errors.
	ErrorUnknownCulture = errors.New("unknown culture tag")

	// Generic internal flow control.
	ErrorInternal = errors.New("internal error")
)

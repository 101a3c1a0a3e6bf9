// Package culture provides the value types for user identity and for a
// language/region designator (a canonical BCP 47 tag such as "en-US" plus
// human-readable names).
package culture

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/langcentral/langcentral/internal/common"
)

// UserID is a durable 64-bit identity for a user, stable across reconnects.
// It is assigned by the host platform and never recycled.
type UserID uint64

// Culture is an immutable language/region designator. Two Cultures are equal
// iff their canonical tags are equal; the type is comparable with ==.
//
// The zero value is not a valid culture. Use Parse or MustParse.
type Culture struct {
	tag language.Tag
}

// Parse validates s as a recognized BCP 47 tag in canonical form and returns
// the corresponding Culture.
//
// Matching is exact: lenient spellings ("en-us") and tags containing unknown
// subtags ("xx-ZZ") are rejected with common.ErrorUnknownCulture. This keeps
// the persisted form a strict round-trip of the tag string.
func Parse(s string) (Culture, error) {
	if s == "" {
		return Culture{}, fmt.Errorf("%w: empty tag", common.ErrorUnknownCulture)
	}
	tag, err := language.Parse(s)
	if err != nil {
		return Culture{}, fmt.Errorf("%w: %q", common.ErrorUnknownCulture, s)
	}
	if tag.String() != s {
		return Culture{}, fmt.Errorf("%w: %q is not in canonical form", common.ErrorUnknownCulture, s)
	}
	return Culture{tag: tag}, nil
}

// MustParse is like Parse but panics on error. Intended for constants and
// configuration defaults that are known to be valid.
func MustParse(s string) Culture {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Tag returns the canonical tag string, e.g. "en-US". This is the exact form
// that round-trips through persistence.
func (c Culture) Tag() string {
	return c.tag.String()
}

// NativeName returns the culture's name in its own language,
// e.g. "日本語" for "ja".
func (c Culture) NativeName() string {
	if c.IsZero() {
		return ""
	}
	return display.Self.Name(c.tag)
}

// DisplayName returns the culture's name in English,
// e.g. "Japanese" for "ja".
func (c Culture) DisplayName() string {
	if c.IsZero() {
		return ""
	}
	return display.English.Tags().Name(c.tag)
}

// IsZero reports whether c is the invalid zero value.
func (c Culture) IsZero() bool {
	return c == Culture{}
}

// String implements fmt.Stringer and returns the canonical tag.
func (c Culture) String() string {
	return c.Tag()
}

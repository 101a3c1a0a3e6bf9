package culture

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/langcentral/langcentral/internal/common"
)

func TestParse_CanonicalTags(t *testing.T) {
	for _, tag := range []string{"en", "en-US", "ja", "ja-JP", "de-DE", "fr-FR", "pt-BR"} {
		c, err := Parse(tag)
		require.NoError(t, err, "tag %q", tag)
		assert.Equal(t, tag, c.Tag())
	}
}

func TestParse_RejectsUnknownAndNonCanonical(t *testing.T) {
	for _, tag := range []string{"", "xx-ZZ", "en-us", "EN", "no-such-tag", "en_US"} {
		_, err := Parse(tag)
		require.Error(t, err, "tag %q", tag)
		assert.True(t, errors.Is(err, common.ErrorUnknownCulture), "tag %q: %v", tag, err)
	}
}

func TestCulture_EqualityByTag(t *testing.T) {
	a := MustParse("ja-JP")
	b := MustParse("ja-JP")
	c := MustParse("ja")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestCulture_RoundTripThroughTagString(t *testing.T) {
	orig := MustParse("ja-JP")

	reloaded, err := Parse(orig.Tag())
	require.NoError(t, err)
	assert.Equal(t, orig, reloaded)
	assert.Equal(t, "ja-JP", reloaded.Tag())
}

func TestCulture_Names(t *testing.T) {
	ja := MustParse("ja")
	assert.Equal(t, "日本語", ja.NativeName())
	assert.Equal(t, "Japanese", ja.DisplayName())

	var zero Culture
	assert.True(t, zero.IsZero())
	assert.Equal(t, "", zero.NativeName())
	assert.Equal(t, "", zero.DisplayName())
}

func TestMustParse_PanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() { MustParse("xx-ZZ") })
}

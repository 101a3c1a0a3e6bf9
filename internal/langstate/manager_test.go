package langstate

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/langcentral/langcentral/internal/culture"
)

func TestGet_FallbackWhenAbsent(t *testing.T) {
	m := NewManager(culture.MustParse("en"))

	assert.Equal(t, "en", m.Get(1).Tag())

	_, ok := m.Lookup(1)
	assert.False(t, ok, "fallback must not create an entry")
}

func TestSetThenGet(t *testing.T) {
	m := NewManager(culture.MustParse("en"))
	ja := culture.MustParse("ja-JP")

	m.Set(1, ja)
	assert.Equal(t, ja, m.Get(1))

	// overwrite is unconditional
	de := culture.MustParse("de-DE")
	m.Set(1, de)
	assert.Equal(t, de, m.Get(1))
}

func TestEntriesAreKeyedByIdentityNotSlot(t *testing.T) {
	m := NewManager(culture.MustParse("en"))
	m.Set(76561198000000001, culture.MustParse("fr-FR"))

	// a different identity is unaffected
	assert.Equal(t, "en", m.Get(76561198000000002).Tag())
	assert.Equal(t, "fr-FR", m.Get(76561198000000001).Tag())
}

func TestConcurrentReadersAndWriters(t *testing.T) {
	m := NewManager(culture.MustParse("en"))
	ja := culture.MustParse("ja")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			m.Set(culture.UserID(i), ja)
		}(i)
		go func(i int) {
			defer wg.Done()
			_ = m.Get(culture.UserID(i))
		}(i)
	}
	wg.Wait()

	for i := 0; i < 16; i++ {
		assert.Equal(t, ja, m.Get(culture.UserID(i)))
	}
}

package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountryIsConsumedOnce(t *testing.T) {
	tr := NewTracker()
	tr.Connect(1)
	tr.SetCountry(1, "JP")

	country, ok := tr.TakeCountry(1)
	assert.True(t, ok)
	assert.Equal(t, "JP", country)

	_, ok = tr.TakeCountry(1)
	assert.False(t, ok, "country hint must be cleared after consumption")
}

func TestTakeCountry_NoHint(t *testing.T) {
	tr := NewTracker()
	tr.Connect(1)

	_, ok := tr.TakeCountry(1)
	assert.False(t, ok)
}

func TestIdentityLifecycle(t *testing.T) {
	tr := NewTracker()
	tr.Connect(2)

	_, ok := tr.Identity(2)
	assert.False(t, ok)

	assert.True(t, tr.SetIdentity(2, 76561198000000001))
	user, ok := tr.Identity(2)
	assert.True(t, ok)
	assert.EqualValues(t, 76561198000000001, user)

	// unknown slot
	assert.False(t, tr.SetIdentity(99, 1))
}

func TestRemove_BeforeLoaded(t *testing.T) {
	tr := NewTracker()
	tr.Connect(3)
	tr.SetIdentity(3, 42)

	_, loaded := tr.Remove(3)
	assert.False(t, loaded)
	assert.False(t, tr.Exists(3))
}

func TestRemove_AfterLoaded(t *testing.T) {
	tr := NewTracker()
	tr.Connect(3)
	tr.SetIdentity(3, 42)
	tr.MarkLoaded(3)

	user, loaded := tr.Remove(3)
	assert.True(t, loaded)
	assert.EqualValues(t, 42, user)
}

func TestRemove_UnknownSlot(t *testing.T) {
	tr := NewTracker()

	_, loaded := tr.Remove(7)
	assert.False(t, loaded)
}

func TestConnect_ReplacesStaleSlot(t *testing.T) {
	tr := NewTracker()
	tr.Connect(4)
	tr.SetIdentity(4, 1)
	tr.MarkLoaded(4)

	// host reuses the slot number for a new connection
	tr.Connect(4)
	_, ok := tr.Identity(4)
	assert.False(t, ok, "stale identity must not leak into the new session")
}

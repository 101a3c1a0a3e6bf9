// Package session tracks per-connection transient state, keyed by the
// host's ephemeral slot number. A slot is valid for one connection only.
package session

import "github.com/langcentral/langcentral/internal/culture"

type slot struct {
	country string
	userID  culture.UserID
	hasUser bool
	loaded  bool
}

// Tracker is confined to the main update loop: every method must be called
// from loop context, either a synchronous callback or a rejoined
// continuation. It is not safe for concurrent use and does not need to be.
type Tracker struct {
	slots map[int]*slot
}

func NewTracker() *Tracker {
	return &Tracker{slots: make(map[int]*slot)}
}

// Connect creates the bookkeeping entry for a newly connected slot,
// replacing any stale entry left behind by the host reusing the number.
func (t *Tracker) Connect(id int) {
	t.slots[id] = &slot{}
}

// Exists reports whether the slot is currently connected.
func (t *Tracker) Exists(id int) bool {
	_, ok := t.slots[id]
	return ok
}

// SetCountry records the geolocation-inferred country for the slot.
func (t *Tracker) SetCountry(id int, country string) {
	if s, ok := t.slots[id]; ok {
		s.country = country
	}
}

// TakeCountry returns the inferred country and clears it; the hint is
// consumed exactly once, when the slot is fully initialized.
func (t *Tracker) TakeCountry(id int) (string, bool) {
	s, ok := t.slots[id]
	if !ok || s.country == "" {
		return "", false
	}
	country := s.country
	s.country = ""
	return country, true
}

// SetIdentity records the durable identity resolved for the slot.
// It reports false if the slot does not exist.
func (t *Tracker) SetIdentity(id int, user culture.UserID) bool {
	s, ok := t.slots[id]
	if !ok {
		return false
	}
	s.userID = user
	s.hasUser = true
	return true
}

// Identity returns the durable identity recorded for the slot.
func (t *Tracker) Identity(id int) (culture.UserID, bool) {
	s, ok := t.slots[id]
	if !ok || !s.hasUser {
		return 0, false
	}
	return s.userID, true
}

// MarkLoaded flags the slot's preference load as completed.
func (t *Tracker) MarkLoaded(id int) {
	if s, ok := t.slots[id]; ok {
		s.loaded = true
	}
}

// Remove deallocates the slot and returns its identity together with
// whether the preference load had completed. A load still in flight for a
// removed slot finds Exists false and must no-op.
func (t *Tracker) Remove(id int) (user culture.UserID, loaded bool) {
	s, ok := t.slots[id]
	if !ok {
		return 0, false
	}
	delete(t.slots, id)
	if !s.hasUser {
		return 0, false
	}
	return s.userID, s.loaded
}

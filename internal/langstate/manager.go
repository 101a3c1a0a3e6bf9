// Package langstate holds the authoritative in-memory mapping from durable
// user identity to current culture. It is the only value synchronous call
// sites (commands, chat, any feature needing the user's language) may read.
package langstate

import (
	"sync"

	"github.com/langcentral/langcentral/internal/culture"
)

// Manager is an explicitly constructed state object passed to every
// collaborator that needs it; it is indexed by durable identity, not by
// connection slot, so entries survive a reconnect within the same process.
//
// Reads and writes may come from any execution context, so the mapping is
// guarded internally.
type Manager struct {
	mu       sync.RWMutex
	fallback culture.Culture
	langs    map[culture.UserID]culture.Culture
}

func NewManager(fallback culture.Culture) *Manager {
	return &Manager{
		fallback: fallback,
		langs:    make(map[culture.UserID]culture.Culture),
	}
}

// Get returns the current culture for id. It never fails: an identity with
// no entry yields the configured fallback culture.
func (m *Manager) Get(id culture.UserID) culture.Culture {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.langs[id]; ok {
		return c
	}
	return m.fallback
}

// Lookup returns the mapped culture and whether an entry exists,
// without applying the fallback.
func (m *Manager) Lookup(id culture.UserID) (culture.Culture, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.langs[id]
	return c, ok
}

// Set unconditionally overwrites the culture for id; the new value is
// visible to all subsequent Get calls from any context.
func (m *Manager) Set(id culture.UserID, c culture.Culture) {
	m.mu.Lock()
	m.langs[id] = c
	m.mu.Unlock()
}

// Fallback returns the configured fallback culture.
func (m *Manager) Fallback() culture.Culture {
	return m.fallback
}

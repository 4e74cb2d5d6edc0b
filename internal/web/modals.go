package web

import (
	"sync"
	"time"

	"github.com/desertthunder/stayx/internal/ui"
)

type modalEntry struct {
	store    *ui.MemoryModalStore
	lastSeen time.Time
}

// modalRegistry keeps one modal store per browser client. Idle clients are forgotten.
type modalRegistry struct {
	mu        sync.Mutex
	entries   map[string]*modalEntry
	idleTTL   time.Duration
	lastPrune time.Time
	now       func() time.Time
}

func newModalRegistry() *modalRegistry {
	return &modalRegistry{
		entries: make(map[string]*modalEntry),
		idleTTL: time.Hour,
		now:     time.Now,
	}
}

func (m *modalRegistry) get(clientID string) *ui.MemoryModalStore {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if now.Sub(m.lastPrune) > m.idleTTL {
		for id, e := range m.entries {
			if now.Sub(e.lastSeen) > m.idleTTL {
				delete(m.entries, id)
			}
		}
		m.lastPrune = now
	}

	e, ok := m.entries[clientID]
	if !ok {
		e = &modalEntry{store: ui.NewModalStore()}
		m.entries[clientID] = e
	}
	e.lastSeen = now
	return e.store
}

func (m *modalRegistry) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

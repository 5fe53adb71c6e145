package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/temurag74-ship-it/CA-AirBoard-Dashboard/domain/program"
)

// entry is one session's stored state.
type entry struct {
	state     program.FilterState
	updatedAt time.Time
}

// Manager is the per-browser session registry. Each session owns its own
// FilterState; the loaded table itself is shared read-only elsewhere.
// Sessions untouched for longer than the TTL are pruned lazily on writes.
type Manager struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]*entry
}

// NewManager creates a session manager with the given idle TTL.
func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*entry),
	}
}

// Ensure returns id if it names a live session, otherwise mints a fresh
// session id with full-range (unrestricted) default state.
func (m *Manager) Ensure(id string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id != "" {
		if e, ok := m.sessions[id]; ok {
			e.updatedAt = m.now()
			return id
		}
	}

	id = uuid.NewString()
	m.sessions[id] = &entry{updatedAt: m.now()}
	m.pruneLocked()
	return id
}

// State returns the session's current filter state. Unknown sessions get
// the zero (unrestricted) state.
func (m *Manager) State(id string) program.FilterState {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.sessions[id]; ok {
		return e.state
	}
	return program.FilterState{}
}

// SetState stores the session's latest filter state, creating the session
// if needed so exports can follow a direct link.
func (m *Manager) SetState(id string, state program.FilterState) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[id]
	if !ok {
		e = &entry{}
		m.sessions[id] = e
	}
	e.state = state
	e.updatedAt = m.now()
	m.pruneLocked()
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Manager) pruneLocked() {
	cutoff := m.now().Add(-m.ttl)
	for id, e := range m.sessions {
		if e.updatedAt.Before(cutoff) {
			delete(m.sessions, id)
		}
	}
}

package console

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/awscbba/registry-frontend-sub000/internal/audit"
	"github.com/awscbba/registry-frontend-sub000/internal/registry"
)

// Manager hands out consoles keyed by session id. Each browser session gets
// its own view state and caches over the shared backend client.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Console

	api     registry.API
	auditor *audit.Publisher
	log     *zerolog.Logger
}

func NewManager(api registry.API, auditor *audit.Publisher, log *zerolog.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*Console),
		api:      api,
		auditor:  auditor,
		log:      log,
	}
}

// Open creates a fresh session and returns its console.
func (m *Manager) Open() *Console {
	id := uuid.NewString()
	c := New(id, m.api, m.auditor, m.log)

	m.mu.Lock()
	m.sessions[id] = c
	m.mu.Unlock()

	m.log.Info().Str("session_id", id).Msg("admin session opened")
	return c
}

// Resolve returns the console for the given session id, creating the shared
// default session when the id is empty.
func (m *Manager) Resolve(id string) (*Console, bool) {
	if id == "" {
		id = "default"
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.sessions[id]; ok {
		return c, true
	}
	if id == "default" {
		c := New(id, m.api, m.auditor, m.log)
		m.sessions[id] = c
		return c, true
	}
	return nil, false
}

// Close drops a session.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

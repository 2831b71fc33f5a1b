// Package session wires one storefront engine instance per client session:
// a cart store, a history, a router and a dispatcher over the shared
// catalog. A session is the Go equivalent of one open storefront tab.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/khayr-gifts/khayr/internal/app/cart"
	"github.com/khayr-gifts/khayr/internal/app/dispatch"
	"github.com/khayr-gifts/khayr/internal/app/router"
	"github.com/khayr-gifts/khayr/internal/app/view"
	"github.com/khayr-gifts/khayr/internal/domain"
	"github.com/khayr-gifts/khayr/internal/infra/imageurl"
	"github.com/khayr-gifts/khayr/internal/infra/observability"
)

// DefaultID backs the CLI and any single-client use: one well-known
// session whose cart lands in the original storage slot.
const DefaultID = "default"

// Session is one wired storefront engine.
type Session struct {
	ID         string
	Cart       *cart.Store
	History    *router.MemoryHistory
	Router     *router.Router
	Dispatcher *dispatch.Dispatcher
	CreatedAt  time.Time
}

// Manager creates and tracks sessions over shared collaborators.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	kv       domain.KVStore
	catalog  view.Catalog
	images   imageurl.Formatter
	slot     string
}

// NewManager creates a session manager.
func NewManager(kv domain.KVStore, catalog view.Catalog, images imageurl.Formatter) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		kv:       kv,
		catalog:  catalog,
		images:   images,
		slot:     cart.DefaultSlot,
	}
}

// SetDefaultSlot overrides the storage slot the default session's cart
// persists under. Other sessions derive their slot from it.
func (m *Manager) SetDefaultSlot(slot string) {
	if slot != "" {
		m.slot = slot
	}
}

// Create starts a new session at initialPath and returns it.
func (m *Manager) Create(initialPath string) *Session {
	return m.create(uuid.NewString(), initialPath)
}

// Default returns the well-known default session, creating it on first use.
// Its cart persists under the original slot key so it survives restarts.
func (m *Manager) Default() *Session {
	m.mu.Lock()
	s, ok := m.sessions[DefaultID]
	m.mu.Unlock()
	if ok {
		return s
	}
	return m.create(DefaultID, "/")
}

func (m *Manager) create(id, initialPath string) *Session {
	slot := m.slot
	if id != DefaultID {
		slot = m.slot + ":" + id
	}

	c := cart.New(m.kv, m.catalog, slot)
	h := router.NewMemoryHistory(initialPath)
	renderer := view.NewRenderer(c, m.catalog, m.images)
	rt := router.New(h, renderer)

	s := &Session{
		ID:         id,
		Cart:       c,
		History:    h,
		Router:     rt,
		Dispatcher: dispatch.New(c, rt),
		CreatedAt:  time.Now(),
	}

	m.mu.Lock()
	m.sessions[id] = s
	n := len(m.sessions)
	m.mu.Unlock()

	observability.ActiveSessions.Set(float64(n))
	return s
}

// Get returns the session with the given id, or ErrSessionNotFound.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return s, nil
}

// Close ends a session. Its persisted cart slot is kept — a returning
// client with the same id restores it.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	n := len(m.sessions)
	m.mu.Unlock()
	observability.ActiveSessions.Set(float64(n))
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

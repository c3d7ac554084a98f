package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aretw0/cliching/internal/logging"
	"github.com/aretw0/cliching/pkg/divination"
	"github.com/aretw0/cliching/pkg/ports"
)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates session access, ensuring safe concurrent
// read-modify-write cycles. It uses reference counting to garbage collect
// unused locks.
type Manager struct {
	store ports.SessionStore

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	logger *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a new session Manager over the given store.
func NewManager(store ports.SessionStore, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		locks:  make(map[string]*lockEntry),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire takes the per-session lock, creating it on first use.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	entry, ok := m.locks[sessionID]
	if !ok {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	m.mu.Unlock()

	entry.mu.Lock()
	return entry
}

// release unlocks and drops the entry once nobody waits on it.
func (m *Manager) release(sessionID string, entry *lockEntry) {
	entry.mu.Unlock()

	m.mu.Lock()
	entry.refs--
	if entry.refs == 0 {
		delete(m.locks, sessionID)
	}
	m.mu.Unlock()
}

// Create persists a fresh session under the session lock.
func (m *Manager) Create(ctx context.Context, sessionID string, session *divination.Session) error {
	entry := m.acquire(sessionID)
	defer m.release(sessionID, entry)

	return m.store.Save(ctx, sessionID, session)
}

// Load retrieves the session without taking the write lock.
func (m *Manager) Load(ctx context.Context, sessionID string) (*divination.Session, error) {
	return m.store.Load(ctx, sessionID)
}

// Update loads the session, applies fn and saves the result, holding the
// per-session lock for the whole cycle. An error from fn aborts the update
// and is returned unwrapped, so callers can inspect it with errors.Is.
func (m *Manager) Update(ctx context.Context, sessionID string, fn func(*divination.Session) error) (*divination.Session, error) {
	entry := m.acquire(sessionID)
	defer m.release(sessionID, entry)

	session, err := m.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := fn(session); err != nil {
		return nil, err
	}

	if err := m.store.Save(ctx, sessionID, session); err != nil {
		return nil, err
	}

	m.logger.Debug("session updated", "session_id", sessionID)
	return session, nil
}

// Delete removes the session under the session lock.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	entry := m.acquire(sessionID)
	defer m.release(sessionID, entry)

	return m.store.Delete(ctx, sessionID)
}

// ActiveLocks reports how many session locks are currently held or waited
// on. Mostly useful in tests.
func (m *Manager) ActiveLocks() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.locks)
}

package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

type memoryEntry struct {
	mu      sync.Mutex
	session *Session
	removed bool
}

// MemoryStore keeps sessions in process memory. The map lock only guards
// membership; each session carries its own lock so a slow action on one
// session never stalls another.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*memoryEntry
	now      Clock
	logger   *slog.Logger
}

func NewMemoryStore(now Clock, logger *slog.Logger) *MemoryStore {
	logger.Debug("Initializing in-memory session store")

	return &MemoryStore{
		sessions: make(map[string]*memoryEntry),
		now:      clockOrNow(now),
		logger:   logger,
	}
}

func (m *MemoryStore) Create(ctx context.Context, s *Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[s.ID]; exists {
		return ErrExists
	}
	m.sessions[s.ID] = &memoryEntry{session: s.Clone()}
	return nil
}

func (m *MemoryStore) entry(id string) (*memoryEntry, error) {
	m.mu.RLock()
	e, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return e, nil
}

func (m *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e, err := m.entry(id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.removed {
		return nil, ErrNotFound
	}
	return e.session.Clone(), nil
}

func (m *MemoryStore) Update(ctx context.Context, id string, fn UpdateFunc) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e, err := m.entry(id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.removed {
		return nil, ErrNotFound
	}

	working := e.session.Clone()
	if err := fn(working); err != nil {
		if errors.Is(err, ErrNoChange) {
			return e.session.Clone(), nil
		}
		return nil, err
	}

	working.UpdatedAt = m.now()
	e.session = working
	return working.Clone(), nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	e, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return ErrNotFound
	}

	e.mu.Lock()
	e.removed = true
	e.mu.Unlock()
	return nil
}

func (m *MemoryStore) EvictIdle(ctx context.Context, cutoff time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	evicted := 0
	for id, e := range m.sessions {
		// A held lock means an action is in flight, so the session is not idle.
		if !e.mu.TryLock() {
			continue
		}
		if e.session.UpdatedAt.Before(cutoff) {
			e.removed = true
			delete(m.sessions, id)
			evicted++
		}
		e.mu.Unlock()
	}

	if evicted > 0 {
		m.logger.Debug("Evicted idle sessions", "count", evicted, "remaining", len(m.sessions))
	}
	return evicted, nil
}

func (m *MemoryStore) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions), nil
}

func (m *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (m *MemoryStore) Close() error {
	return nil
}

package locking

import "sync"

// Manager provides named mutual exclusion. Acquire blocks until the lock for
// the given key is free, so operations on the same key are serialized in
// arrival order while different keys proceed independently.
type Manager struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewManager creates a new lock manager
func NewManager() *Manager {
	return &Manager{
		locks: make(map[string]*sync.Mutex),
	}
}

func (m *Manager) lock(key string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.locks[key]
	if !ok {
		l = &sync.Mutex{}
		m.locks[key] = l
	}
	return l
}

// Acquire blocks until the lock for key is held by the caller.
// Locks are never removed; the key space is small (one per symbol).
func (m *Manager) Acquire(key string) {
	m.lock(key).Lock()
}

// Release releases the lock for key. Must follow a matching Acquire.
func (m *Manager) Release(key string) {
	m.lock(key).Unlock()
}

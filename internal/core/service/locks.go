package service

import "sync"

// UserLocks serializes read-modify-write sequences per user. Keys are
// lower-cased emails; the lock for a key is created on first use and kept
// for the life of the process.
type UserLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewUserLocks returns an empty lock table.
func NewUserLocks() *UserLocks {
	return &UserLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the per-user lock for key and returns its unlock function.
func (l *UserLocks) Lock(key string) func() {
	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

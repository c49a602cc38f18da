package service

import "sync"

// UserLocks serializes balance-mutating commands per user id. The store's
// conditional updates guard single rows; this closes the wider
// read-modify-write window between two concurrent requests reading the same
// snapshot (e.g. two collect calls seeing the same last_reward_at).
type UserLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func NewUserLocks() *UserLocks {
	return &UserLocks{locks: make(map[int64]*sync.Mutex)}
}

// Lock acquires the per-user mutex and returns the release func.
func (l *UserLocks) Lock(userID int64) func() {
	l.mu.Lock()
	m, ok := l.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

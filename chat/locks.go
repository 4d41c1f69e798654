package chat

import "sync"

// userLocks serializes exchanges per user. Without this, two overlapping
// exchanges for the same user could interleave their load/append windows and
// corrupt turn order.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[string]*sync.Mutex)}
}

// forUser returns the mutex for userID, creating it on first use. Locks are
// never reclaimed; one mutex per active user is cheap.
func (l *userLocks) forUser(userID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock, ok := l.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[userID] = lock
	}
	return lock
}

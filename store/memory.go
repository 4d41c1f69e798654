package store

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store for tests and API-key-only local runs.
// It honors the same ordering contract as the SQLite backend.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	turns  map[string][]Turn
	users  []User
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{turns: make(map[string][]Turn)}
}

func (s *MemoryStore) AppendTurn(_ context.Context, userID, role, content string) (Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	t := Turn{
		ID:        s.nextID,
		UserID:    userID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	s.turns[userID] = append(s.turns[userID], t)
	return t, nil
}

func (s *MemoryStore) Turns(_ context.Context, userID string) ([]Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns := s.turns[userID]
	copied := make([]Turn, len(turns))
	copy(copied, turns)
	return copied, nil
}

func (s *MemoryStore) CreateUser(_ context.Context, username, email, passwordHash string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Username, username) || strings.EqualFold(u.Email, email) {
			return User{}, ErrDuplicateUser
		}
	}

	s.nextID++
	u := User{
		ID:           s.nextID,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	s.users = append(s.users, u)
	return u, nil
}

func (s *MemoryStore) UserByLogin(_ context.Context, usernameOrEmail string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == usernameOrEmail || u.Email == usernameOrEmail {
			return u, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (s *MemoryStore) Close() error {
	return nil
}

// Package store persists user accounts and conversation turns. Turns form an
// append-only log; the per-user replay order is the durability contract the
// whole conversational memory depends on.
package store

import (
	"context"
	"errors"
	"time"
)

// Turn is one role-tagged message in a user's conversation. Immutable once
// written; the ID is the global append order.
type Turn struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// User is a registered account. The password is only ever held as a bcrypt
// hash.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

var (
	// ErrUserNotFound is returned when no account matches the login.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateUser is returned when the username or email is taken.
	ErrDuplicateUser = errors.New("username or email already registered")
)

// Store defines the interface for persisting users and conversation turns.
// Implementations must support concurrent readers and writers across
// different users without cross-contamination.
type Store interface {
	// AppendTurn durably records one turn, ordered after every previously
	// appended turn.
	AppendTurn(ctx context.Context, userID, role, content string) (Turn, error)

	// Turns returns every turn for the user in original append order.
	// A user with no history gets an empty slice, not an error.
	Turns(ctx context.Context, userID string) ([]Turn, error)

	// CreateUser registers an account with an already-hashed password.
	CreateUser(ctx context.Context, username, email, passwordHash string) (User, error)

	// UserByLogin finds an account by username or email.
	UserByLogin(ctx context.Context, usernameOrEmail string) (User, error)

	// Close releases any resources held by the store.
	Close() error
}

// Package auth issues and validates bearer credentials for the chat API.
package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/faramade/ecotrack/store"
)

var (
	ErrMissingBearer      = errors.New("missing bearer token")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrInvalidUsername    = errors.New("username must be 3-15 characters")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrPasswordTooLong    = errors.New("password exceeds 72 bytes")
)

// DefaultTokenTTL bounds a credential's lifetime.
const DefaultTokenTTL = 45 * time.Minute

var emailPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

// Claims identify the authenticated caller.
type Claims struct {
	Subject string
	UserID  int64
}

type tokenClaims struct {
	UserID int64 `json:"id"`
	jwt.RegisteredClaims
}

// Service implements the access gate: registration, login, token
// verification, and revocation.
type Service struct {
	store   store.Store
	secret  []byte
	ttl     time.Duration
	revoked *Revoker
	now     func() time.Time
}

// NewService builds an access gate signing tokens with secret. A zero ttl
// falls back to DefaultTokenTTL.
func NewService(s store.Store, secret []byte, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Service{
		store:   s,
		secret:  secret,
		ttl:     ttl,
		revoked: NewRevoker(),
		now:     time.Now,
	}
}

// Register creates an account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, username, email, password string) (store.User, error) {
	if len(username) < 3 || len(username) > 15 {
		return store.User{}, ErrInvalidUsername
	}
	if !emailPattern.MatchString(email) {
		return store.User{}, ErrInvalidEmail
	}
	if len(password) > 72 {
		// bcrypt silently truncates beyond 72 bytes; refuse instead.
		return store.User{}, ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return store.User{}, fmt.Errorf("hash password: %w", err)
	}

	return s.store.CreateUser(ctx, username, email, string(hash))
}

// Login authenticates by username or email and returns a signed bearer
// token encoding the subject and user id.
func (s *Service) Login(ctx context.Context, usernameOrEmail, password string) (string, error) {
	user, err := s.store.UserByLogin(ctx, usernameOrEmail)
	if errors.Is(err, store.ErrUserNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := s.now()
	claims := tokenClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify validates a bearer token and returns its claims. Revoked tokens are
// rejected before any signature work.
func (s *Service) Verify(tokenString string) (Claims, error) {
	if tokenString == "" {
		return Claims{}, ErrMissingBearer
	}
	if s.revoked.Revoked(tokenString) {
		return Claims{}, ErrTokenRevoked
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(s.now),
	)
	parsed := &tokenClaims{}
	_, err := parser.ParseWithClaims(tokenString, parsed, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return Claims{}, ErrInvalidToken
	}

	if parsed.Subject == "" || parsed.UserID == 0 {
		return Claims{}, ErrInvalidToken
	}

	return Claims{Subject: parsed.Subject, UserID: parsed.UserID}, nil
}

// Revoke blacklists a token for the rest of the process lifetime. Every
// subsequent Verify of the same token fails, even before natural expiry.
func (s *Service) Revoke(tokenString string) {
	s.revoked.Revoke(tokenString)
}

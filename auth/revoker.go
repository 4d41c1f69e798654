package auth

import "sync"

// Revoker tracks explicitly revoked tokens. The set is process-local: a
// restart forgets revocations, but the tokens it forgot are bounded by their
// own expiry anyway.
type Revoker struct {
	mu     sync.RWMutex
	tokens map[string]struct{}
}

func NewRevoker() *Revoker {
	return &Revoker{tokens: make(map[string]struct{})}
}

func (r *Revoker) Revoke(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = struct{}{}
}

func (r *Revoker) Revoked(token string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tokens[token]
	return ok
}

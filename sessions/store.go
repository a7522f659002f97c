// Package sessions maps opaque session tokens to admin user identities
// with an expiry. The store is injected into the API's auth middleware
// rather than living as ambient framework state.
package sessions

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync"
	"time"
)

// ErrNoSession indicates the token is unknown or expired.
var ErrNoSession = errors.New("no such session")

// Store persists session tokens. Tokens are hashed before storage so a
// store dump never exposes live tokens.
type Store interface {
	// Create issues a fresh token bound to userID for the given ttl.
	Create(ctx context.Context, userID string, ttl time.Duration) (string, error)
	// Get resolves a token to the user it was issued for. Returns
	// ErrNoSession for unknown or expired tokens.
	Get(ctx context.Context, token string) (string, error)
	// Delete revokes a token. Deleting an unknown token is not an error.
	Delete(ctx context.Context, token string) error
}

type memorySession struct {
	userID string
	expiry time.Time
}

// MemoryStore keeps sessions in memory. Suitable for a single-node
// deployment, which is what this site runs as.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memorySession // token hash -> session
}

// NewMemoryStore constructs an in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]memorySession)}
}

// Create issues and stores a new session token.
func (s *MemoryStore) Create(ctx context.Context, userID string, ttl time.Duration) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.sessions[tokenHash(token)] = memorySession{
		userID: userID,
		expiry: time.Now().UTC().Add(ttl),
	}
	s.mu.Unlock()
	return token, nil
}

// Get resolves a token, expiring it lazily if its ttl has passed.
func (s *MemoryStore) Get(ctx context.Context, token string) (string, error) {
	hash := tokenHash(token)

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[hash]
	if !ok {
		return "", ErrNoSession
	}
	if time.Now().UTC().After(session.expiry) {
		delete(s.sessions, hash)
		return "", ErrNoSession
	}
	return session.userID, nil
}

// Delete revokes a token. Idempotent.
func (s *MemoryStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	delete(s.sessions, tokenHash(token))
	s.mu.Unlock()
	return nil
}

func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func tokenHash(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

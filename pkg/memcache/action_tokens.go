// pkg/memcache/action_tokens.go
package mem

import (
	"sync"
	"time"
)

// ActionTokenStore holds short-lived single-use tokens: password resets,
// email verification, newsletter confirmations. Single-process by design;
// tokens survive only as long as the process.
type ActionTokenStore interface {
	Set(token string, subject string, ttl time.Duration)

	// Consume returns the subject for token if not expired and removes the
	// token (single-use). Returns "" if missing/expired.
	Consume(token string) string

	// Peek reads without consuming.
	Peek(token string) (string, bool)
}

type tokenEntry struct {
	subject   string
	expiresAt time.Time
}

type ActionTokens struct {
	mu   sync.RWMutex
	data map[string]tokenEntry
}

func NewActionTokens() *ActionTokens {
	return &ActionTokens{
		data: make(map[string]tokenEntry),
	}
}

func (s *ActionTokens) Set(token string, subject string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[token] = tokenEntry{
		subject:   subject,
		expiresAt: time.Now().Add(ttl),
	}
}

func (s *ActionTokens) Consume(token string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[token]
	if !ok {
		return ""
	}
	if time.Now().After(e.expiresAt) {
		delete(s.data, token) // cleanup expired
		return ""
	}
	delete(s.data, token) // single-use
	return e.subject
}

func (s *ActionTokens) Peek(token string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[token]
	if !ok || time.Now().After(e.expiresAt) {
		return "", false
	}
	return e.subject, true
}

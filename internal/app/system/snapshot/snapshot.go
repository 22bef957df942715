// Package snapshot keeps the last result an admin session fetched for a
// page. Client-side search and sort re-render from it instead of asking
// the backend again, and a page whose batch fails can fall back to the
// session's last complete one.
package snapshot

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"
)

// DefaultTTL bounds how long a session's snapshot is reused.
const DefaultTTL = 10 * time.Minute

// Store maps a session key to its last value. Entries older than the TTL
// are never returned and are dropped on the next Put. It is safe for
// concurrent use.
type Store[T any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry[T]
	now     func() time.Time
}

type entry[T any] struct {
	val T
	at  time.Time
}

// New returns a Store whose entries live for ttl (DefaultTTL when ttl is
// not positive).
func New[T any](ttl time.Duration) *Store[T] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store[T]{ttl: ttl, entries: make(map[string]entry[T]), now: time.Now}
}

// Key derives a store key from the admin token and any qualifiers (a page
// number, a tab). The token itself is not kept.
func Key(token string, parts ...string) string {
	sum := sha256.Sum256([]byte(token + "\x00" + strings.Join(parts, "\x00")))
	return hex.EncodeToString(sum[:])
}

// Put records v for key.
func (s *Store[T]) Put(key string, v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for k, e := range s.entries {
		if now.Sub(e.at) > s.ttl {
			delete(s.entries, k)
		}
	}
	s.entries[key] = entry[T]{val: v, at: now}
}

// Get returns the live value for key.
func (s *Store[T]) Get(key string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok || s.now().Sub(e.at) > s.ttl {
		var zero T
		return zero, false
	}
	return e.val, true
}

// Len reports how many entries are held, expired ones included.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

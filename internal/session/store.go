// Package session keeps per-browser kitchen sessions in memory for the
// lifetime of the process.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/socialchef/leftovers/internal/kitchen"
)

// DefaultTTL matches the lifetime of the session cookie.
const DefaultTTL = 24 * time.Hour

type entry struct {
	session  *kitchen.Session
	lastSeen time.Time
}

// Store maps session IDs to sessions. Nothing survives a restart, and a
// session unused for longer than the TTL is dropped.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	ttl      time.Duration
	now      func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns the session with id and marks it as used. Expired sessions
// are reported as missing.
func (s *Store) Get(id string) (*kitchen.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	now := s.now()
	if now.Sub(e.lastSeen) > s.ttl {
		delete(s.sessions, id)
		return nil, false
	}
	e.lastSeen = now
	return e.session, true
}

// Create starts a new session under a fresh random ID.
func (s *Store) Create() *kitchen.Session {
	sess := kitchen.NewSession(uuid.New().String())
	s.mu.Lock()
	s.sessions[sess.ID] = &entry{session: sess, lastSeen: s.now()}
	s.mu.Unlock()
	return sess
}

// Delete discards the session with id.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Len reports the number of held sessions, expired or not.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep deletes every session idle for longer than the TTL and returns how
// many were removed.
func (s *Store) Sweep() int {
	s.mu.RLock()
	now := s.now()
	var expired []string
	for id, e := range s.sessions {
		if now.Sub(e.lastSeen) > s.ttl {
			expired = append(expired, id)
		}
	}
	s.mu.RUnlock()

	for _, id := range expired {
		s.Delete(id)
	}
	return len(expired)
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				slog.DebugContext(ctx, "Swept expired sessions", "count", n, "remaining", s.Len())
			}
		}
	}
}

package flow

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultSessionTTL is how long an idle session (and its abandoned
// draft) is kept before eviction. An evicted user simply starts over
// from the main menu on next contact.
const DefaultSessionTTL = 2 * time.Hour

type sessionEntry struct {
	session  *Session
	lastSeen time.Time
}

// SessionStore keeps one Session per Telegram user id. Lookups and the
// TTL sweeper may run on different goroutines, so access is guarded;
// the sessions themselves are only ever touched by the update loop.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*sessionEntry
	ttl      time.Duration
}

// NewSessionStore creates a store evicting sessions idle longer than ttl.
func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{
		sessions: make(map[int64]*sessionEntry),
		ttl:      ttl,
	}
}

// Get returns the session for a user, creating an idle one on first
// contact, and marks it as just used.
func (s *SessionStore) Get(userID int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[userID]
	if !ok {
		entry = &sessionEntry{session: NewSession()}
		s.sessions[userID] = entry
	}
	entry.lastSeen = time.Now()
	return entry.session
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep evicts sessions idle longer than the TTL and returns how many
// were removed.
func (s *SessionStore) Sweep() int {
	cutoff := time.Now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, entry := range s.sessions {
		if entry.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// RunSweeper sweeps at the given interval until the context is done.
func (s *SessionStore) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.Sweep(); removed > 0 {
				zap.S().Infof("Evicted %d abandoned session(s)", removed)
			}
		}
	}
}

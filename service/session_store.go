package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"elotec-nettbutikk/models"
)

// SessionStore keeps processed uploads in memory until they expire
type SessionStore struct {
	ttl      time.Duration
	now      func() time.Time
	mu       sync.RWMutex
	sessions map[string]*models.ExportSession
}

// NewSessionStore creates a store whose sessions live for ttl
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*models.ExportSession),
	}
}

// Save stores a session, assigning its ID and creation time
func (s *SessionStore) Save(session *models.ExportSession) {
	session.ID = uuid.NewString()
	session.CreatedAt = s.now()

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()
}

// Get returns a session that has not expired
func (s *SessionStore) Get(id string) (*models.ExportSession, bool) {
	s.mu.RLock()
	session, exists := s.sessions[id]
	s.mu.RUnlock()

	if !exists || s.expired(session) {
		return nil, false
	}
	return session, true
}

// Sweep removes expired sessions and returns how many were removed
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, session := range s.sessions {
		if s.expired(session) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored sessions, expired ones included
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// StartJanitor sweeps expired sessions every interval until ctx is done
func (s *SessionStore) StartJanitor(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := s.Sweep(); removed > 0 {
					log.Printf("🧹 SessionStore: removed %d expired export sessions", removed)
				}
			}
		}
	}()
}

func (s *SessionStore) expired(session *models.ExportSession) bool {
	return s.now().Sub(session.CreatedAt) > s.ttl
}

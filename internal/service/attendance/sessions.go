package attendance

import (
	"sync"
	"time"

	"github.com/asadbek002/checkin-bot/internal/domain/attendance"
)

// sessionStore holds at most one pending reason request per user. It is the
// only mutable state the workflow owns; everything else lives in the record
// store.
type sessionStore struct {
	mu      sync.Mutex
	pending map[int64]attendance.PendingReason
}

func newSessionStore() *sessionStore {
	return &sessionStore{
		pending: make(map[int64]attendance.PendingReason),
	}
}

// Put inserts or replaces the user's pending request.
func (s *sessionStore) Put(p attendance.PendingReason) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[p.UserID] = p
}

// Get returns the user's pending request without consuming it.
func (s *sessionStore) Get(userID int64) (attendance.PendingReason, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pending[userID]
	return p, ok
}

// Take removes and returns the user's pending request.
func (s *sessionStore) Take(userID int64) (attendance.PendingReason, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pending[userID]
	if ok {
		delete(s.pending, userID)
	}
	return p, ok
}

// Sweep drops requests older than maxAge and returns how many were removed.
func (s *sessionStore) Sweep(now time.Time, maxAge time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for userID, p := range s.pending {
		if now.Sub(p.CreatedAt) > maxAge {
			delete(s.pending, userID)
			removed++
		}
	}
	return removed
}
